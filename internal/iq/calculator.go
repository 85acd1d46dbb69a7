// Package iq combines the five cognitive domain scores and the user's age
// into an IQ-style estimate with confidence and percentile.
package iq

import (
	"math"

	"github.com/cognify/backend/internal/models"
)

const (
	iqMean   = 100
	iqStdDev = 15
)

// ageNorm is the reference distribution for raw domain scores at one age.
type ageNorm struct {
	age              int
	meanScore        float64
	stdDev           float64
	adjustmentFactor float64
}

// Norms at two-year steps. Lookup is nearest-neighbor; ages above 18 all
// resolve to the 18-year entry.
var ageNorms = []ageNorm{
	{age: 6, meanScore: 50, stdDev: 15, adjustmentFactor: 1.2},
	{age: 8, meanScore: 55, stdDev: 15, adjustmentFactor: 1.15},
	{age: 10, meanScore: 60, stdDev: 15, adjustmentFactor: 1.1},
	{age: 12, meanScore: 65, stdDev: 15, adjustmentFactor: 1.05},
	{age: 14, meanScore: 70, stdDev: 15, adjustmentFactor: 1.0},
	{age: 16, meanScore: 75, stdDev: 15, adjustmentFactor: 0.95},
	{age: 18, meanScore: 80, stdDev: 15, adjustmentFactor: 0.9},
}

// Domain weights. They sum to 1.0 but note the quirk below: each weight is
// baked into its sub-score and the sub-scores are then averaged equally,
// so the weights shrink deviations rather than mix raw inputs.
const (
	weightMemory         = 0.20
	weightAttention      = 0.15
	weightProcessing     = 0.20
	weightProblemSolving = 0.25
	weightReasoning      = 0.20
)

// DomainScores are the raw per-domain inputs, each nominally 0-100.
type DomainScores struct {
	Memory         float64
	Attention      float64
	Processing     float64
	ProblemSolving float64
	Reasoning      float64
}

// Calculator estimates IQ for a fixed age.
type Calculator struct {
	age  int
	norm ageNorm
}

func NewCalculator(age int) *Calculator {
	return &Calculator{age: age, norm: nearestNorm(age)}
}

func nearestNorm(age int) ageNorm {
	best := ageNorms[0]
	for _, n := range ageNorms[1:] {
		if abs(n.age-age) < abs(best.age-age) {
			best = n
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// subScore z-scores a raw domain score against the age norm and rescales
// it to IQ space, damped by the domain weight and age adjustment.
func (c *Calculator) subScore(raw, weight float64) float64 {
	z := (raw - c.norm.meanScore) / c.norm.stdDev
	return iqMean + z*iqStdDev*weight*c.norm.adjustmentFactor
}

// Calculate produces the full IQ estimate from the domain scores.
func (c *Calculator) Calculate(scores DomainScores) models.IQMetrics {
	sub := models.IQSubScores{
		Memory:         c.subScore(scores.Memory, weightMemory),
		Attention:      c.subScore(scores.Attention, weightAttention),
		Processing:     c.subScore(scores.Processing, weightProcessing),
		ProblemSolving: c.subScore(scores.ProblemSolving, weightProblemSolving),
		Reasoning:      c.subScore(scores.Reasoning, weightReasoning),
	}

	all := []float64{sub.Memory, sub.Attention, sub.Processing, sub.ProblemSolving, sub.Reasoning}
	overall := mean(all)

	return models.IQMetrics{
		OverallIQ:  int(math.Round(overall)),
		SubScores:  sub,
		Confidence: confidence(all),
		Percentile: Percentile(overall),
	}
}

// Percentile converts an IQ score to its percentile rank under the
// standard IQ distribution (mean 100, sd 15), clamped to [1,99].
func Percentile(iqScore float64) int {
	z := (iqScore - iqMean) / iqStdDev
	p := int(math.Round(normalCDF(z) * 100))
	if p < 1 {
		p = 1
	}
	if p > 99 {
		p = 99
	}
	return p
}

// ScorePercentile ranks a raw 0-100 domain score against the age-norm
// distribution for the given age, clamped to [1,99]. This is the
// parametric replacement for comparing against an empirical normative
// sample, which this system does not have.
func ScorePercentile(raw float64, age int) int {
	norm := nearestNorm(age)
	z := (raw - norm.meanScore) / norm.stdDev
	p := int(math.Round(normalCDF(z) * 100))
	if p < 1 {
		p = 1
	}
	if p > 99 {
		p = 99
	}
	return p
}

// confidence shrinks toward zero as the sub-scores disagree:
// max(0, 1 - variance/10000).
func confidence(scores []float64) float64 {
	m := mean(scores)
	var sumSq float64
	for _, s := range scores {
		d := s - m
		sumSq += d * d
	}
	variance := sumSq / float64(len(scores))
	return math.Max(0, 1-variance/10000)
}

func mean(vs []float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// normalCDF approximates the standard normal CDF with the Zelen–Severo
// polynomial, comfortably inside the integer-percent precision needed here.
func normalCDF(z float64) float64 {
	t := 1 / (1 + 0.2316419*math.Abs(z))
	d := 0.3989423 * math.Exp(-z*z/2)
	p := d * t * (0.3193815 + t*(-0.3565638+t*(1.781478+t*(-1.821256+t*1.330274))))
	if z > 0 {
		return 1 - p
	}
	return p
}
