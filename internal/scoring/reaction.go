package scoring

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/cognify/backend/internal/models"
)

// ReactionBand classifies a single reaction time against the difficulty's
// thresholds.
type ReactionBand string

const (
	BandExcellent ReactionBand = "excellent"
	BandGood      ReactionBand = "good"
	BandAverage   ReactionBand = "average"
	BandSlow      ReactionBand = "slow"
)

// ReactionThresholds are the band cutoffs in milliseconds. They tighten as
// difficulty increases, down to hard floors.
type ReactionThresholds struct {
	Excellent float64
	Good      float64
	Average   float64
}

func ThresholdsFor(difficulty float64) ReactionThresholds {
	return ReactionThresholds{
		Excellent: maxF(200, 400-difficulty*30),
		Good:      maxF(300, 600-difficulty*30),
		Average:   maxF(450, 800-difficulty*30),
	}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Band places one reaction time into its qualitative band.
func (t ReactionThresholds) Band(reactionMs float64) ReactionBand {
	switch {
	case reactionMs <= t.Excellent:
		return BandExcellent
	case reactionMs <= t.Good:
		return BandGood
	case reactionMs <= t.Average:
		return BandAverage
	default:
		return BandSlow
	}
}

// StimulusDelay schedules the next stimulus: a randomized wait between 0.5s
// and 2.5s, shrunk as difficulty rises so harder sessions move faster.
func StimulusDelay(difficulty float64, rng *rand.Rand) time.Duration {
	baseMs := 500 + rng.Float64()*2000
	scaled := baseMs / (1 + difficulty*0.1)
	return time.Duration(scaled) * time.Millisecond
}

// Catch is one recorded stimulus response.
type Catch struct {
	ReactionMs float64 `json:"reaction_ms"`
	Precision  float64 `json:"precision"` // [0,1] closeness to target center
	Tracking   float64 `json:"tracking"`  // [0,1] path-following accuracy
}

// ReactionEngine accumulates catches for one reaction/catching attempt and
// keeps the running average and best time as the session progresses.
type ReactionEngine struct {
	difficulty float64
	catches    []Catch
	misses     int
	bestMs     float64
	sumMs      float64
	bands      map[ReactionBand]int
}

func NewReactionEngine(difficulty float64) *ReactionEngine {
	return &ReactionEngine{
		difficulty: difficulty,
		bands:      make(map[ReactionBand]int),
	}
}

// RecordCatch adds one successful response and returns its band.
func (e *ReactionEngine) RecordCatch(c Catch) ReactionBand {
	e.catches = append(e.catches, c)
	e.sumMs += c.ReactionMs
	if e.bestMs == 0 || c.ReactionMs < e.bestMs {
		e.bestMs = c.ReactionMs
	}
	band := ThresholdsFor(e.difficulty).Band(c.ReactionMs)
	e.bands[band]++
	return band
}

// RecordMiss counts a stimulus the user failed to respond to.
func (e *ReactionEngine) RecordMiss() {
	e.misses++
}

// AverageMs returns the running mean reaction time, 0 before any catch.
func (e *ReactionEngine) AverageMs() float64 {
	if len(e.catches) == 0 {
		return 0
	}
	return e.sumMs / float64(len(e.catches))
}

func (e *ReactionEngine) BestMs() float64 {
	return e.bestMs
}

func (e *ReactionEngine) BandCounts() map[ReactionBand]int {
	return e.bands
}

type reactionDetails struct {
	Catches   int                  `json:"catches"`
	Misses    int                  `json:"misses"`
	AverageMs float64              `json:"average_ms"`
	BestMs    float64              `json:"best_ms"`
	Bands     map[ReactionBand]int `json:"bands"`
}

// Finalize closes the attempt. The composite score blends precision,
// tracking, and speed (40% weight on a 1-second reaction baseline);
// accuracy averages precision and tracking; consistency comes from the
// spread of the reaction times.
func (e *ReactionEngine) Finalize() (models.TestResult, error) {
	if len(e.catches) == 0 {
		return models.TestResult{}, fmt.Errorf("no catches recorded")
	}

	n := float64(len(e.catches))
	var sumPrecision, sumTracking float64
	times := make([]float64, len(e.catches))
	for i, c := range e.catches {
		sumPrecision += c.Precision
		sumTracking += c.Tracking
		times[i] = c.ReactionMs
	}

	avgMs := e.sumMs / n
	score := (sumPrecision/n*0.3 + sumTracking/n*0.3 + maxF(0, 1-avgMs/1000)*0.4) * 100

	details, _ := json.Marshal(reactionDetails{
		Catches:   len(e.catches),
		Misses:    e.misses,
		AverageMs: avgMs,
		BestMs:    e.bestMs,
		Bands:     e.bands,
	})

	return models.TestResult{
		Score: score,
		Metrics: models.PerformanceMetrics{
			Accuracy:    (sumPrecision + sumTracking) / (2 * n),
			Speed:       avgMs / 1000,
			Consistency: Consistency(times),
		},
		Details: details,
	}, nil
}
