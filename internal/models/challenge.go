package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type ChallengeFormat string

const (
	FormatPatternMatching ChallengeFormat = "pattern_matching"
	FormatSequenceMemory  ChallengeFormat = "sequence_memory"
	FormatReactionTime    ChallengeFormat = "reaction_time"
	FormatPuzzleSolving   ChallengeFormat = "puzzle_solving"
	FormatStoryCompletion ChallengeFormat = "story_completion"
)

type GenerateChallengesRequest struct {
	Age        int          `json:"age"`
	Category   TestCategory `json:"category"`
	Difficulty Difficulty   `json:"difficulty"`
	Count      int          `json:"count"`
}

type GenerateChallengesResponse struct {
	Challenges []Challenge `json:"challenges"`
	Source     string      `json:"source"` // "generated" or "fallback"
	Model      string      `json:"model,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Challenge is one generated (or fallback) task ready for presentation.
type Challenge struct {
	Format       ChallengeFormat `json:"format"`
	Prompt       string          `json:"prompt"`
	Options      []string        `json:"options,omitempty"`
	CorrectIndex int             `json:"correct_index"`
	Explanation  string          `json:"explanation,omitempty"`
	TimeLimit    int             `json:"time_limit,omitempty"` // seconds
}
