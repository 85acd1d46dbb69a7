package scoring

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/cognify/backend/internal/models"
)

// GridPositions is the number of cells in the sequence-memory grid.
const GridPositions = 9

var sequenceColors = []string{"red", "blue", "green", "yellow", "purple"}

// SequenceItem is one element of a memory sequence: a color flashed at a
// grid position.
type SequenceItem struct {
	Color    string `json:"color"`
	Position int    `json:"position"`
}

// SequenceEngine administers one sequence-memory attempt: it generates a
// sequence whose length grows with difficulty, capped at 7, and scores the
// user's reproduction by position equality at each index.
type SequenceEngine struct {
	sequence []SequenceItem
}

// NewSequenceEngine generates a sequence of length min(3+difficulty, 7).
func NewSequenceEngine(difficulty float64, rng *rand.Rand) *SequenceEngine {
	length := 3 + int(difficulty)
	if length > 7 {
		length = 7
	}

	seq := make([]SequenceItem, length)
	for i := range seq {
		seq[i] = SequenceItem{
			Color:    sequenceColors[rng.Intn(len(sequenceColors))],
			Position: rng.Intn(GridPositions),
		}
	}
	return &SequenceEngine{sequence: seq}
}

// Sequence returns the generated sequence for display.
func (e *SequenceEngine) Sequence() []SequenceItem {
	return e.sequence
}

type sequenceDetails struct {
	Sequence []SequenceItem `json:"sequence"`
	Response []SequenceItem `json:"response"`
	Correct  int            `json:"correct"`
}

// Score finalizes the attempt. The response must reproduce the full
// sequence; an incomplete reproduction is a precondition violation and the
// attempt stays open. Correctness is position equality at each index, and
// elapsedSeconds is recorded as the raw speed.
func (e *SequenceEngine) Score(response []SequenceItem, elapsedSeconds float64) (models.TestResult, error) {
	if len(response) != len(e.sequence) {
		return models.TestResult{}, fmt.Errorf("incomplete response: got %d of %d items", len(response), len(e.sequence))
	}

	correct := 0
	for i, item := range response {
		if item.Position == e.sequence[i].Position {
			correct++
		}
	}
	accuracy := Accuracy(correct, len(e.sequence))

	details, _ := json.Marshal(sequenceDetails{
		Sequence: e.sequence,
		Response: response,
		Correct:  correct,
	})

	return models.TestResult{
		Score: accuracy * 100,
		Metrics: models.PerformanceMetrics{
			Accuracy:    accuracy,
			Speed:       elapsedSeconds,
			Consistency: accuracy,
		},
		Details: details,
	}, nil
}
