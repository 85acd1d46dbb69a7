package generator

import (
	"fmt"
	"strings"

	"github.com/cognify/backend/internal/models"
)

var categoryFormats = map[models.TestCategory][]models.ChallengeFormat{
	models.CategoryMemory:     {models.FormatSequenceMemory, models.FormatPatternMatching},
	models.CategoryAttention:  {models.FormatPatternMatching, models.FormatReactionTime},
	models.CategoryProcessing: {models.FormatReactionTime, models.FormatPatternMatching},
	models.CategoryExecutive:  {models.FormatPuzzleSolving, models.FormatPatternMatching},
	models.CategoryLearning:   {models.FormatStoryCompletion, models.FormatPuzzleSolving},
}

var categoryGuidance = map[models.TestCategory]string{
	models.CategoryMemory: `
CATEGORY RULES (Memory):
- Each challenge presents material to hold in mind: a sequence, a spatial arrangement, or a set of items
- The question tests recall of that material, not reasoning about it
- Sequences grow with difficulty; never exceed 7 items
- Distractor options must be plausible near-misses (one item swapped or shifted), not random`,

	models.CategoryAttention: `
CATEGORY RULES (Attention):
- Each challenge embeds a target among distractors, or asks which element changed
- The correct answer rewards careful observation, not knowledge
- Distractors should differ from the target in exactly one attribute where possible`,

	models.CategoryProcessing: `
CATEGORY RULES (Processing Speed):
- Challenges must be solvable at a glance once understood — the time limit provides the pressure
- Keep prompts to one short sentence
- Time limits shrink with difficulty; never below 5 seconds`,

	models.CategoryExecutive: `
CATEGORY RULES (Executive Function):
- Challenges involve planning, rule switching, or inhibiting an obvious-but-wrong response
- The correct answer should require applying a stated rule, not spotting a pattern
- State the rule in the prompt explicitly`,

	models.CategoryLearning: `
CATEGORY RULES (Learning):
- Challenges present a novel rule or story fragment and test whether it was absorbed
- The correct answer follows from the presented material alone — no outside knowledge
- Wrong options must be consistent with common prior assumptions the material overrides`,
}

var difficultyGuidance = map[models.Difficulty]string{
	models.DifficultyEasy:   "Use short prompts, 2-3 elements per challenge, and generous time limits (30-60 seconds).",
	models.DifficultyMedium: "Use 3-5 elements per challenge and moderate time limits (15-30 seconds).",
	models.DifficultyHard:   "Use 5-7 elements per challenge, subtle distractors, and tight time limits (5-15 seconds).",
}

// SystemPrompt is the fixed instruction block for challenge generation.
func SystemPrompt() string {
	return `You are a cognitive assessment content designer. You create short, self-contained cognitive challenges for a browser-based assessment platform.

Every challenge must be culturally neutral, language-light, and solvable without specialist knowledge. Never produce content that could distress a test taker.

You respond ONLY with valid JSON matching the requested schema. No markdown, no commentary.`
}

func ageBand(age int) string {
	switch {
	case age < 6:
		return "a preschool child: use very simple words, concrete objects, and pictures described in plain terms"
	case age < 12:
		return "a school-age child: use simple vocabulary and familiar everyday objects"
	case age < 18:
		return "a teenager: plain language is fine, mild abstraction is acceptable"
	case age < 65:
		return "an adult: normal adult vocabulary and abstraction"
	default:
		return "an older adult: normal vocabulary, generous reading time, high-contrast descriptions"
	}
}

// BuildUserPrompt assembles the generation request for one batch.
func BuildUserPrompt(age int, category models.TestCategory, difficulty models.Difficulty, count int) string {
	formats := categoryFormats[category]
	formatNames := make([]string, len(formats))
	for i, f := range formats {
		formatNames[i] = string(f)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d cognitive challenges in the %q category at %s difficulty.\n\n", count, category, difficulty)
	fmt.Fprintf(&b, "The test taker is %s.\n", ageBand(age))
	fmt.Fprintf(&b, "Allowed formats for this category: %s.\n", strings.Join(formatNames, ", "))
	b.WriteString(categoryGuidance[category])
	b.WriteString("\n\n")
	b.WriteString(difficultyGuidance[difficulty])
	b.WriteString(`

Respond with JSON in exactly this shape:
{
  "challenges": [
    {
      "format": "<one of the allowed formats>",
      "prompt": "<the challenge text shown to the test taker>",
      "options": ["<option 1>", "<option 2>", "..."],
      "correct_index": <zero-based index into options>,
      "explanation": "<why the correct option is correct>",
      "time_limit": <seconds allowed>
    }
  ]
}

For sequence_memory and reaction_time formats, omit "options" and set "correct_index" to 0.
Vary the themes across challenges — no two challenges should reuse the same objects or pattern.`)

	return b.String()
}
