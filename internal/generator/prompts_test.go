package generator

import (
	"strings"
	"testing"

	"github.com/cognify/backend/internal/models"
)

func TestBuildUserPromptIncludesParameters(t *testing.T) {
	prompt := BuildUserPrompt(8, models.CategoryMemory, models.DifficultyEasy, 5)

	if !strings.Contains(prompt, "Generate 5 cognitive challenges") {
		t.Error("prompt missing count")
	}
	if !strings.Contains(prompt, `"memory"`) {
		t.Error("prompt missing category")
	}
	if !strings.Contains(prompt, "easy difficulty") {
		t.Error("prompt missing difficulty")
	}
	if !strings.Contains(prompt, "school-age child") {
		t.Error("prompt missing age band language")
	}
}

func TestBuildUserPromptListsCategoryFormats(t *testing.T) {
	prompt := BuildUserPrompt(25, models.CategoryLearning, models.DifficultyMedium, 3)

	if !strings.Contains(prompt, "story_completion") {
		t.Error("learning prompt missing story_completion format")
	}
	if strings.Contains(prompt, "reaction_time") {
		t.Error("learning prompt should not offer reaction_time")
	}
}

func TestBuildUserPromptCategoryGuidance(t *testing.T) {
	prompt := BuildUserPrompt(25, models.CategoryExecutive, models.DifficultyHard, 4)

	if !strings.Contains(prompt, "CATEGORY RULES (Executive Function)") {
		t.Error("executive prompt missing category rules")
	}
	if !strings.Contains(prompt, "5-15 seconds") {
		t.Error("hard prompt missing tight time limit guidance")
	}
}

func TestAgeBandBoundaries(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{4, "preschool"},
		{6, "school-age"},
		{11, "school-age"},
		{12, "teenager"},
		{17, "teenager"},
		{18, "adult"},
		{64, "adult"},
		{65, "older adult"},
	}
	for _, tt := range tests {
		if got := ageBand(tt.age); !strings.Contains(got, tt.want) {
			t.Errorf("ageBand(%d) = %q, want mention of %q", tt.age, got, tt.want)
		}
	}
}

func TestSystemPromptDemandsJSON(t *testing.T) {
	if !strings.Contains(SystemPrompt(), "JSON") {
		t.Error("system prompt must demand JSON output")
	}
}

func TestEveryCategoryHasFormatsAndGuidance(t *testing.T) {
	for cat := range models.ValidCategories {
		if len(categoryFormats[cat]) == 0 {
			t.Errorf("category %s has no formats", cat)
		}
		if categoryGuidance[cat] == "" {
			t.Errorf("category %s has no guidance", cat)
		}
	}
}
