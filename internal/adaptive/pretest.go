package adaptive

import (
	"math"

	"github.com/cognify/backend/internal/models"
)

// SettingsFromProfile derives the initial per-category difficulty from the
// pre-test profile. Age sets the base, computer experience shifts it, and
// each reported medical condition eases the processing tests slightly.
// Every category value lands in [1,5].
func SettingsFromProfile(profile models.PretestProfile) models.DifficultySettings {
	var base float64
	switch {
	case profile.Age < 12:
		base = 1
	case profile.Age < 18:
		base = 2
	case profile.Age < 60:
		base = 3
	default:
		base = 2
	}

	var experience float64
	switch profile.ComputerUsage {
	case models.UsageLow:
		experience = -0.5
	case models.UsageHigh:
		experience = 0.5
	}

	medical := float64(len(profile.MedicalConditions)) * -0.2

	timeAllowed := 300
	breakInterval := 900
	if profile.Age < 12 {
		timeAllowed = 450
		breakInterval = 600
	}

	return models.DifficultySettings{
		MemoryDifficulty:     clampLevel(base + experience),
		AttentionDifficulty:  clampLevel(base + experience),
		ProcessingDifficulty: clampLevel(base + experience + medical),
		ExecutiveDifficulty:  clampLevel(base + experience),
		LearningDifficulty:   clampLevel(base + experience),
		TimeAllowed:          timeAllowed,
		BreakInterval:        breakInterval,
	}
}

func clampLevel(v float64) float64 {
	return math.Max(1, math.Min(5, v))
}
