package scoring

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/cognify/backend/internal/models"
)

var (
	patternShapes = []string{"circle", "square", "triangle", "diamond", "star"}
	patternColors = []string{"red", "blue", "green", "yellow", "purple", "orange"}
)

const (
	patternOptions  = 4  // one target + three distractors per round
	patternAttempts = 10 // rounds per attempt
	patternBaseGain = 100
	patternMissCost = 10
)

// PatternElement is one attribute tuple of a pattern configuration.
type PatternElement struct {
	Shape    string `json:"shape"`
	Color    string `json:"color"`
	Position int    `json:"position"`
}

// PatternOption is one presented configuration in a round.
type PatternOption struct {
	Elements []PatternElement `json:"elements"`
	IsTarget bool             `json:"is_target"`
}

// PatternEngine runs the pattern-matching game: each round shows a target
// configuration alongside distractors that differ from it in at least one
// attribute, shuffled. A selection is correct iff it is the exact target
// tuple; a wrong selection costs points and resets the combo.
type PatternEngine struct {
	difficulty float64
	rng        *rand.Rand

	round    []PatternOption
	attempts int
	correct  int
	score    int
	combo    Combo
	streak   int
}

func NewPatternEngine(difficulty float64, rng *rand.Rand) *PatternEngine {
	e := &PatternEngine{difficulty: difficulty, rng: rng}
	e.nextRound()
	return e
}

// Round returns the current shuffled options.
func (e *PatternEngine) Round() []PatternOption {
	return e.round
}

func (e *PatternEngine) nextRound() {
	numElements := 3 + int(e.difficulty)/2
	if numElements > 5 {
		numElements = 5
	}

	target := make([]PatternElement, numElements)
	for i := range target {
		target[i] = PatternElement{
			Shape:    patternShapes[e.rng.Intn(len(patternShapes))],
			Color:    patternColors[e.rng.Intn(len(patternColors))],
			Position: i,
		}
	}

	options := make([]PatternOption, 0, patternOptions)
	options = append(options, PatternOption{Elements: target, IsTarget: true})
	for i := 1; i < patternOptions; i++ {
		options = append(options, PatternOption{Elements: e.distract(target)})
	}

	e.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	e.round = options
}

// distract copies the target and mutates attributes until the copy differs
// in at least one of them.
func (e *PatternEngine) distract(target []PatternElement) []PatternElement {
	variation := make([]PatternElement, len(target))
	for {
		copy(variation, target)
		for i := range variation {
			if e.rng.Float64() < 0.5 {
				if e.rng.Float64() < 0.5 {
					variation[i].Shape = patternShapes[e.rng.Intn(len(patternShapes))]
				} else {
					variation[i].Color = patternColors[e.rng.Intn(len(patternColors))]
				}
			}
		}
		if !elementsEqual(variation, target) {
			return variation
		}
	}
}

func elementsEqual(a, b []PatternElement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Select records the user's choice for the current round and advances to
// the next one. timeLeftSeconds feeds the speed bonus (of a 30 second
// round clock). Returns whether the selection matched the target.
func (e *PatternEngine) Select(optionIndex int, timeLeftSeconds float64) (bool, error) {
	if e.attempts >= patternAttempts {
		return false, fmt.Errorf("attempt limit reached: %d rounds played", patternAttempts)
	}
	if optionIndex < 0 || optionIndex >= len(e.round) {
		return false, fmt.Errorf("option index %d out of range", optionIndex)
	}

	correct := e.round[optionIndex].IsTarget
	if correct {
		timeBonus := int(timeLeftSeconds / 30 * 50)
		e.score += patternBaseGain + timeBonus + e.combo.Record(true)
		e.correct++
		e.streak++
	} else {
		e.combo.Record(false)
		e.streak = 0
		e.score -= patternMissCost
		if e.score < 0 {
			e.score = 0
		}
	}

	e.attempts++
	if e.attempts < patternAttempts {
		e.nextRound()
	}
	return correct, nil
}

func (e *PatternEngine) Attempts() int { return e.attempts }

type patternDetails struct {
	Attempts  int `json:"attempts"`
	Correct   int `json:"correct"`
	RawPoints int `json:"raw_points"`
	BestCombo int `json:"best_combo"`
}

// Finalize closes the attempt and produces the result. At least one round
// must have been played.
func (e *PatternEngine) Finalize(elapsedSeconds float64) (models.TestResult, error) {
	if e.attempts == 0 {
		return models.TestResult{}, fmt.Errorf("no rounds played")
	}

	accuracy := Accuracy(e.correct, e.attempts)
	details, _ := json.Marshal(patternDetails{
		Attempts:  e.attempts,
		Correct:   e.correct,
		RawPoints: e.score,
		BestCombo: e.combo.Best(),
	})

	return models.TestResult{
		Score: accuracy * 100,
		Metrics: models.PerformanceMetrics{
			Accuracy:    accuracy,
			Speed:       elapsedSeconds,
			Consistency: float64(e.streak) / float64(e.attempts),
			Combo:       float64(e.combo.Best()),
		},
		Details: details,
	}, nil
}
