package generator

import (
	"strings"

	"github.com/cognify/backend/internal/models"
)

// StructuralScore holds the individual structural compliance checks for
// one generated challenge.
type StructuralScore struct {
	PromptLengthOK     bool
	OptionsDistinct    bool
	ExplanationPresent bool
	TimeLimitOK        bool
}

// ComputeStructuralScore evaluates structural compliance for a single challenge.
func ComputeStructuralScore(c models.Challenge) StructuralScore {
	promptLen := len(c.Prompt)
	promptOK := promptLen >= 15 && promptLen <= 500

	distinct := true
	seen := make(map[string]bool)
	for _, opt := range c.Options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if key == "" || seen[key] {
			distinct = false
			break
		}
		seen[key] = true
	}

	explOK := true
	if formatsWithOptions[c.Format] {
		explOK = c.Explanation != ""
	}

	timeOK := c.TimeLimit == 0 || (c.TimeLimit >= 5 && c.TimeLimit <= 120)

	return StructuralScore{
		PromptLengthOK:     promptOK,
		OptionsDistinct:    distinct,
		ExplanationPresent: explOK,
		TimeLimitOK:        timeOK,
	}
}

// ComputeQualityScore calculates a composite quality score (0.0-1.0) from
// the four structural checks, each worth 0.25.
func ComputeQualityScore(structural StructuralScore) float64 {
	score := 0.0
	if structural.PromptLengthOK {
		score += 0.25
	}
	if structural.OptionsDistinct {
		score += 0.25
	}
	if structural.ExplanationPresent {
		score += 0.25
	}
	if structural.TimeLimitOK {
		score += 0.25
	}
	return score
}

// ClassifyQuality returns a classification based on the quality score.
// Returns: "reject" (< 0.50), "flagged" (0.50-0.70), "passed" (> 0.70)
func ClassifyQuality(score float64) string {
	if score < 0.50 {
		return "reject"
	}
	if score <= 0.70 {
		return "flagged"
	}
	return "passed"
}

// FilterByQuality drops challenges that fail the structural bar, returning
// the survivors and the number rejected.
func FilterByQuality(challenges []models.Challenge) ([]models.Challenge, int) {
	kept := challenges[:0:0]
	rejected := 0
	for _, c := range challenges {
		if ClassifyQuality(ComputeQualityScore(ComputeStructuralScore(c))) == "reject" {
			rejected++
			continue
		}
		kept = append(kept, c)
	}
	return kept, rejected
}
