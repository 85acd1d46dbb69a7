package iq

import (
	"math"
	"testing"
)

func TestNearestNormSelection(t *testing.T) {
	tests := []struct {
		age      int
		wantAge  int
		wantMean float64
	}{
		{5, 6, 50},
		{6, 6, 50},
		{9, 8, 55}, // 9 is equidistant; earlier entry wins
		{11, 10, 60},
		{18, 18, 80},
		{25, 18, 80}, // no extrapolation above the table
		{70, 18, 80},
	}

	for _, tt := range tests {
		norm := nearestNorm(tt.age)
		if norm.age != tt.wantAge || norm.meanScore != tt.wantMean {
			t.Errorf("nearestNorm(%d) = age %d mean %f, want age %d mean %f",
				tt.age, norm.age, norm.meanScore, tt.wantAge, tt.wantMean)
		}
	}
}

func TestCalculateAtNormMean(t *testing.T) {
	// Age 6 norm has mean 50: all domains at 50 z-score to zero, every
	// sub-score lands at 100, and the estimate is dead center.
	c := NewCalculator(6)
	m := c.Calculate(DomainScores{
		Memory: 50, Attention: 50, Processing: 50, ProblemSolving: 50, Reasoning: 50,
	})

	if m.OverallIQ != 100 {
		t.Errorf("overall IQ = %d, want 100", m.OverallIQ)
	}
	if m.Percentile != 50 {
		t.Errorf("percentile = %d, want 50", m.Percentile)
	}
	if m.Confidence != 1 {
		t.Errorf("confidence = %f, want 1 (zero variance)", m.Confidence)
	}
	for _, s := range []float64{
		m.SubScores.Memory, m.SubScores.Attention, m.SubScores.Processing,
		m.SubScores.ProblemSolving, m.SubScores.Reasoning,
	} {
		if math.Abs(s-100) > 1e-9 {
			t.Errorf("sub-score = %f, want 100", s)
		}
	}
}

func TestSubScoreWeighting(t *testing.T) {
	// Age 14: mean 70, sd 15, adjustment 1.0. Raw 85 is z=+1, so the
	// memory sub-score moves by 15 * 0.20 = 3 points.
	c := NewCalculator(14)
	got := c.subScore(85, weightMemory)
	if math.Abs(got-103) > 1e-9 {
		t.Errorf("subScore(85, memory) = %f, want 103", got)
	}

	// Problem solving carries more weight: 15 * 0.25 = 3.75.
	got = c.subScore(85, weightProblemSolving)
	if math.Abs(got-103.75) > 1e-9 {
		t.Errorf("subScore(85, problemSolving) = %f, want 103.75", got)
	}
}

func TestAboveAverageProfile(t *testing.T) {
	// Age 14 norm mean 70: all domains one sd above the mean.
	c := NewCalculator(14)
	m := c.Calculate(DomainScores{
		Memory: 85, Attention: 85, Processing: 85, ProblemSolving: 85, Reasoning: 85,
	})

	// Mean of 103, 102.25, 103, 103.75, 103 = 103.
	if m.OverallIQ != 103 {
		t.Errorf("overall IQ = %d, want 103", m.OverallIQ)
	}
	if m.Percentile <= 50 {
		t.Errorf("percentile = %d, want above 50", m.Percentile)
	}
}

func TestPercentileMonotonic(t *testing.T) {
	prev := 0
	for iqScore := 40.0; iqScore <= 160; iqScore += 5 {
		p := Percentile(iqScore)
		if p < prev {
			t.Fatalf("percentile decreased: %d after %d at IQ %f", p, prev, iqScore)
		}
		prev = p
	}
}

func TestPercentileClamped(t *testing.T) {
	if p := Percentile(250); p != 99 {
		t.Errorf("Percentile(250) = %d, want clamp 99", p)
	}
	if p := Percentile(-50); p != 1 {
		t.Errorf("Percentile(-50) = %d, want clamp 1", p)
	}
}

func TestPercentileKnownValues(t *testing.T) {
	tests := []struct {
		iq   float64
		want int
	}{
		{100, 50},
		{115, 84}, // +1 sd
		{85, 16},  // -1 sd
		{130, 98}, // +2 sd
	}
	for _, tt := range tests {
		if got := Percentile(tt.iq); got != tt.want {
			t.Errorf("Percentile(%f) = %d, want %d", tt.iq, got, tt.want)
		}
	}
}

func TestConfidenceDropsWithDisagreement(t *testing.T) {
	uniform := confidence([]float64{100, 100, 100, 100, 100})
	if uniform != 1 {
		t.Errorf("uniform confidence = %f, want 1", uniform)
	}

	scattered := confidence([]float64{70, 90, 100, 110, 130})
	if scattered >= uniform {
		t.Errorf("scattered confidence %f should be below uniform %f", scattered, uniform)
	}
	if scattered < 0 {
		t.Errorf("confidence %f below 0", scattered)
	}
}

func TestNormalCDFSymmetry(t *testing.T) {
	for _, z := range []float64{0.5, 1, 1.5, 2} {
		sum := normalCDF(z) + normalCDF(-z)
		if math.Abs(sum-1) > 1e-6 {
			t.Errorf("CDF(%f)+CDF(-%f) = %f, want 1", z, z, sum)
		}
	}
	if math.Abs(normalCDF(0)-0.5) > 1e-3 {
		t.Errorf("CDF(0) = %f, want ~0.5", normalCDF(0))
	}
}
