// Package scoring converts raw interaction data from each mini-game into a
// uniform TestResult. Every engine shares the same output contract: a 0-100
// score, accuracy in [0,1], speed as raw elapsed seconds, and a consistency
// fraction. Normalization beyond that is the consumer's job.
package scoring

import "math"

// Accuracy returns correct/total. Zero attempts scores 0 — an unanswered
// test never counts as correct.
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// Consistency measures how stable a series is: 1 - stddev/mean, floored at
// zero. Fewer than two samples gives no variance signal and returns exactly 1.
// A zero mean returns 0.
func Consistency(series []float64) float64 {
	if len(series) < 2 {
		return 1
	}

	var sum float64
	for _, v := range series {
		sum += v
	}
	mean := sum / float64(len(series))
	if mean == 0 {
		return 0
	}

	var sumSquaredDiff float64
	for _, v := range series {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}
	variance := sumSquaredDiff / float64(len(series))

	return math.Max(0, 1-math.Sqrt(variance)/mean)
}

// SpeedTerm normalizes an elapsed duration against a threshold:
// max(0, 1 - elapsed/threshold). Faster is closer to 1.
func SpeedTerm(elapsed, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	return math.Max(0, 1-elapsed/threshold)
}

// Combo tracks consecutive correct responses. The bonus grows with the
// streak and any incorrect response resets it.
type Combo struct {
	current int
	best    int
}

// Record updates the streak for one response and returns the bonus points
// it earned (10 per streak step already held, 0 for a miss).
func (c *Combo) Record(correct bool) int {
	if !correct {
		c.current = 0
		return 0
	}
	bonus := c.current * 10
	c.current++
	if c.current > c.best {
		c.best = c.current
	}
	return bonus
}

func (c *Combo) Current() int { return c.current }
func (c *Combo) Best() int    { return c.best }
