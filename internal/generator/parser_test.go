package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/cognify/backend/internal/models"
)

const validResponse = `{
	"challenges": [
		{
			"format": "pattern_matching",
			"prompt": "Which shape continues the alternating circle-square pattern?",
			"options": ["Circle", "Square", "Triangle", "Star"],
			"correct_index": 0,
			"explanation": "The pattern alternates, and the last shape shown was a square.",
			"time_limit": 20
		},
		{
			"format": "sequence_memory",
			"prompt": "Repeat the sequence of four colors in the order shown.",
			"correct_index": 0,
			"time_limit": 30
		}
	]
}`

func TestParseResponseValid(t *testing.T) {
	set, err := ParseResponse(validResponse)
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if len(set.Challenges) != 2 {
		t.Fatalf("challenges = %d, want 2", len(set.Challenges))
	}
	if set.Challenges[0].Format != models.FormatPatternMatching {
		t.Errorf("format = %s, want pattern_matching", set.Challenges[0].Format)
	}
	if len(set.Challenges[0].Options) != 4 {
		t.Errorf("options = %d, want 4", len(set.Challenges[0].Options))
	}
}

func TestParseResponseStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validResponse + "\n```"
	set, err := ParseResponse(fenced)
	if err != nil {
		t.Fatalf("ParseResponse with fences: %v", err)
	}
	if len(set.Challenges) != 2 {
		t.Errorf("challenges = %d, want 2", len(set.Challenges))
	}
}

func TestParseResponseBareFences(t *testing.T) {
	fenced := "```\n" + validResponse + "\n```"
	if _, err := ParseResponse(fenced); err != nil {
		t.Fatalf("ParseResponse with bare fences: %v", err)
	}
}

func TestParseResponseInvalidJSON(t *testing.T) {
	if _, err := ParseResponse("not json at all"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParseResponseEmptySet(t *testing.T) {
	_, err := ParseResponse(`{"challenges": []}`)
	if err == nil {
		t.Fatal("expected error for empty challenge set")
	}
	if !strings.Contains(err.Error(), "no challenges") {
		t.Errorf("error = %v, want mention of empty set", err)
	}
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	_, err := ParseResponse(`{"challenges": [
		{"format": "sudoku", "prompt": "Fill in the grid with the missing numbers.", "correct_index": 0}
	]}`)
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("error = %v, want invalid format", err)
	}
}

func TestValidateRejectsMissingOptions(t *testing.T) {
	_, err := ParseResponse(`{"challenges": [
		{"format": "puzzle_solving", "prompt": "Pick the item matching the stated rule right now.", "options": ["Only one"], "correct_index": 0}
	]}`)
	if err == nil {
		t.Fatal("expected error for too few options")
	}
}

func TestValidateRejectsCorrectIndexOutOfRange(t *testing.T) {
	_, err := ParseResponse(`{"challenges": [
		{"format": "pattern_matching", "prompt": "Which tile differs from the other three tiles?", "options": ["A", "B", "C"], "correct_index": 3, "explanation": "x"}
	]}`)
	if err == nil {
		t.Fatal("expected error for out-of-range correct_index")
	}
}

func TestValidateRejectsEmptyPrompt(t *testing.T) {
	_, err := ParseResponse(`{"challenges": [
		{"format": "sequence_memory", "prompt": "   ", "correct_index": 0}
	]}`)
	if err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestValidateAllowsOptionlessInteractiveFormats(t *testing.T) {
	set, err := ParseResponse(`{"challenges": [
		{"format": "reaction_time", "prompt": "Tap the circle as soon as it turns green.", "correct_index": 0, "time_limit": 30}
	]}`)
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if set.Challenges[0].Format != models.FormatReactionTime {
		t.Errorf("format = %s, want reaction_time", set.Challenges[0].Format)
	}
}

func TestMockClientProducesParsableBatch(t *testing.T) {
	resp, err := NewMockClient().Generate(context.Background(), "", "")
	if err != nil {
		t.Fatalf("mock Generate: %v", err)
	}

	set, err := ParseResponse(resp.Content)
	if err != nil {
		t.Fatalf("mock output failed validation: %v", err)
	}
	if len(set.Challenges) != 5 {
		t.Errorf("mock challenges = %d, want 5", len(set.Challenges))
	}
}

func TestJaccardSimilarity(t *testing.T) {
	a := tokenize("the quick brown fox jumps over fences")
	b := tokenize("the quick brown fox sleeps under fences")
	sim := jaccardSimilarity(a, b)
	if sim <= 0.4 || sim >= 1.0 {
		t.Errorf("similarity = %v, want partial overlap", sim)
	}

	if got := jaccardSimilarity(map[string]bool{}, map[string]bool{}); got != 0 {
		t.Errorf("empty-set similarity = %v, want 0", got)
	}
}
