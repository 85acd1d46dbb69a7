package scoring

import (
	"math"
	"testing"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		correct, total int
		want           float64
	}{
		{0, 0, 0}, // no attempts never counts as correct
		{0, 4, 0},
		{2, 4, 0.5},
		{4, 4, 1},
	}

	for _, tt := range tests {
		got := Accuracy(tt.correct, tt.total)
		if got != tt.want {
			t.Errorf("Accuracy(%d, %d) = %f, want %f", tt.correct, tt.total, got, tt.want)
		}
		if got < 0 || got > 1 {
			t.Errorf("Accuracy(%d, %d) = %f out of [0,1]", tt.correct, tt.total, got)
		}
	}
}

func TestConsistencySentinel(t *testing.T) {
	if got := Consistency(nil); got != 1 {
		t.Errorf("Consistency(nil) = %f, want 1", got)
	}
	if got := Consistency([]float64{500}); got != 1 {
		t.Errorf("Consistency(one sample) = %f, want 1", got)
	}
}

func TestConsistency(t *testing.T) {
	// Identical samples have zero variance.
	if got := Consistency([]float64{300, 300, 300}); got != 1 {
		t.Errorf("Consistency(identical) = %f, want 1", got)
	}

	// A moderate spread lands strictly between 0 and 1.
	got := Consistency([]float64{200, 300, 400})
	if got <= 0 || got >= 1 {
		t.Errorf("Consistency(spread) = %f, want in (0,1)", got)
	}

	// Wilder spread scores lower.
	wilder := Consistency([]float64{50, 300, 900})
	if wilder >= got {
		t.Errorf("wider spread consistency %f should be below %f", wilder, got)
	}

	// Zero mean has no meaningful ratio.
	if got := Consistency([]float64{-1, 1}); got != 0 {
		t.Errorf("Consistency(zero mean) = %f, want 0", got)
	}
}

func TestSpeedTerm(t *testing.T) {
	tests := []struct {
		elapsed, threshold, want float64
	}{
		{0, 10, 1},
		{5, 10, 0.5},
		{10, 10, 0},
		{20, 10, 0}, // floored
		{5, 0, 0},   // degenerate threshold
	}

	for _, tt := range tests {
		got := SpeedTerm(tt.elapsed, tt.threshold)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SpeedTerm(%f, %f) = %f, want %f", tt.elapsed, tt.threshold, got, tt.want)
		}
	}
}

func TestComboBonusGrowsAndResets(t *testing.T) {
	var c Combo

	if bonus := c.Record(true); bonus != 0 {
		t.Errorf("first correct bonus = %d, want 0", bonus)
	}
	if bonus := c.Record(true); bonus != 10 {
		t.Errorf("second correct bonus = %d, want 10", bonus)
	}
	if bonus := c.Record(true); bonus != 20 {
		t.Errorf("third correct bonus = %d, want 20", bonus)
	}
	if c.Current() != 3 || c.Best() != 3 {
		t.Errorf("combo state = (%d, %d), want (3, 3)", c.Current(), c.Best())
	}

	if bonus := c.Record(false); bonus != 0 {
		t.Errorf("miss bonus = %d, want 0", bonus)
	}
	if c.Current() != 0 {
		t.Errorf("combo after miss = %d, want 0", c.Current())
	}
	if c.Best() != 3 {
		t.Errorf("best combo after miss = %d, want 3 (preserved)", c.Best())
	}
}
