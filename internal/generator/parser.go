package generator

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/cognify/backend/internal/models"
)

type GeneratedSet struct {
	Challenges []models.Challenge `json:"challenges"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func ParseResponse(responseBody string) (*GeneratedSet, error) {
	cleaned := stripCodeFences(responseBody)

	var set GeneratedSet
	if err := json.Unmarshal([]byte(cleaned), &set); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateSet(&set); err != nil {
		return nil, err
	}

	return &set, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

var validFormats = map[models.ChallengeFormat]bool{
	models.FormatPatternMatching: true,
	models.FormatSequenceMemory:  true,
	models.FormatReactionTime:    true,
	models.FormatPuzzleSolving:   true,
	models.FormatStoryCompletion: true,
}

// formatsWithOptions are the multiple-choice formats; the others are
// interaction-driven and carry no option list.
var formatsWithOptions = map[models.ChallengeFormat]bool{
	models.FormatPatternMatching: true,
	models.FormatPuzzleSolving:   true,
	models.FormatStoryCompletion: true,
}

func validateSet(set *GeneratedSet) error {
	var errs []string

	if len(set.Challenges) == 0 {
		return &ValidationError{Errors: []string{"no challenges in response"}}
	}

	for i, c := range set.Challenges {
		num := i + 1

		if !validFormats[c.Format] {
			errs = append(errs, fmt.Sprintf("challenge %d: invalid format %q", num, c.Format))
			continue
		}

		if strings.TrimSpace(c.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("challenge %d: empty prompt", num))
		}

		if formatsWithOptions[c.Format] {
			if len(c.Options) < 2 {
				errs = append(errs, fmt.Sprintf("challenge %d: expected at least 2 options, got %d", num, len(c.Options)))
			} else if c.CorrectIndex < 0 || c.CorrectIndex >= len(c.Options) {
				errs = append(errs, fmt.Sprintf("challenge %d: correct_index %d out of range for %d options", num, c.CorrectIndex, len(c.Options)))
			}
			if c.Explanation == "" {
				log.Printf("WARNING: challenge %d missing explanation", num)
			}
		}

		if c.TimeLimit < 0 {
			errs = append(errs, fmt.Sprintf("challenge %d: negative time_limit %d", num, c.TimeLimit))
		}
	}

	checkPromptDiversity(set.Challenges)

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}

// checkPromptDiversity warns if any two prompts share >60% keyword overlap.
func checkPromptDiversity(challenges []models.Challenge) {
	if len(challenges) < 2 {
		return
	}

	tokenSets := make([]map[string]bool, len(challenges))
	for i, c := range challenges {
		tokenSets[i] = tokenize(c.Prompt)
	}

	for i := 0; i < len(challenges); i++ {
		for j := i + 1; j < len(challenges); j++ {
			overlap := jaccardSimilarity(tokenSets[i], tokenSets[j])
			if overlap > 0.60 {
				log.Printf("WARNING: challenges %d and %d have %.0f%% keyword overlap — consider more variety", i+1, j+1, overlap*100)
			}
		}
	}
}

func tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(s)) {
		// Skip very short words (articles, prepositions)
		if len(word) > 3 {
			tokens[word] = true
		}
	}
	return tokens
}

func jaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
