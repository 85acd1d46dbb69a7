package generator

import "github.com/cognify/backend/internal/models"

// fallbackBank is the static challenge set served when generation is
// unavailable. One small batch per category, written at medium difficulty.
var fallbackBank = map[models.TestCategory][]models.Challenge{
	models.CategoryMemory: {
		{
			Format:       models.FormatSequenceMemory,
			Prompt:       "Watch the sequence of colored squares, then repeat it in the same order.",
			CorrectIndex: 0,
			TimeLimit:    30,
		},
		{
			Format:       models.FormatPatternMatching,
			Prompt:       "Study the grid of symbols for five seconds. Which symbol was in the top-right corner?",
			Options:      []string{"Circle", "Triangle", "Square", "Star"},
			CorrectIndex: 2,
			Explanation:  "The square occupied the top-right cell of the grid.",
			TimeLimit:    20,
		},
	},
	models.CategoryAttention: {
		{
			Format:       models.FormatPatternMatching,
			Prompt:       "Find the tile that differs from the others: all tiles show two dots except one.",
			Options:      []string{"Tile A", "Tile B", "Tile C", "Tile D"},
			CorrectIndex: 1,
			Explanation:  "Tile B shows three dots while the rest show two.",
			TimeLimit:    15,
		},
		{
			Format:       models.FormatReactionTime,
			Prompt:       "Tap only when the circle turns green. Ignore every other color.",
			CorrectIndex: 0,
			TimeLimit:    30,
		},
	},
	models.CategoryProcessing: {
		{
			Format:       models.FormatReactionTime,
			Prompt:       "Tap the target as soon as it appears anywhere on the screen.",
			CorrectIndex: 0,
			TimeLimit:    30,
		},
		{
			Format:       models.FormatPatternMatching,
			Prompt:       "Which number is largest?",
			Options:      []string{"37", "73", "71", "17"},
			CorrectIndex: 1,
			Explanation:  "73 is the largest of the four numbers.",
			TimeLimit:    10,
		},
	},
	models.CategoryExecutive: {
		{
			Format:       models.FormatPuzzleSolving,
			Prompt:       "Rule: pick the shape whose name does NOT contain the letter R. Options follow.",
			Options:      []string{"Triangle", "Square", "Circle", "Oval"},
			CorrectIndex: 3,
			Explanation:  "Oval is the only name without the letter R.",
			TimeLimit:    20,
		},
		{
			Format:       models.FormatPatternMatching,
			Prompt:       "The rule just switched: now pick the SMALLEST item instead of the largest. Which do you choose?",
			Options:      []string{"Elephant", "Horse", "Cat", "Mouse"},
			CorrectIndex: 3,
			Explanation:  "Under the switched rule the mouse, the smallest animal, is correct.",
			TimeLimit:    15,
		},
	},
	models.CategoryLearning: {
		{
			Format:       models.FormatStoryCompletion,
			Prompt:       "In this game, a 'blick' is any shape with exactly three sides. Which of these is a blick?",
			Options:      []string{"Square", "Triangle", "Circle", "Pentagon"},
			CorrectIndex: 1,
			Explanation:  "A triangle has exactly three sides, matching the stated definition.",
			TimeLimit:    25,
		},
		{
			Format:       models.FormatPuzzleSolving,
			Prompt:       "You just learned that in this puzzle red means go and green means stop. The light turns green. What do you do?",
			Options:      []string{"Go", "Stop", "Wait for red", "Tap twice"},
			CorrectIndex: 1,
			Explanation:  "The inverted rule makes green the stop signal.",
			TimeLimit:    20,
		},
	},
}

// FallbackChallenges returns up to count static challenges for a category,
// cycling the bank when more are requested than it holds.
func FallbackChallenges(category models.TestCategory, count int) []models.Challenge {
	bank := fallbackBank[category]
	if len(bank) == 0 || count <= 0 {
		return nil
	}

	out := make([]models.Challenge, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, bank[i%len(bank)])
	}
	return out
}
