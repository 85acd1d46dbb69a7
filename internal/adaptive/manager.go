package adaptive

import (
	"math"

	"github.com/cognify/backend/internal/models"
)

// PerformancePoint is one entry in a manager's history, derived from a
// completed result at the moment it was applied.
type PerformancePoint struct {
	Accuracy    float64 `json:"accuracy"`
	Speed       float64 `json:"speed"` // normalized to [0,1]
	Consistency float64 `json:"consistency"`
	Complexity  float64 `json:"complexity"` // current level / max level
	StreakCount int     `json:"streak_count"`
}

// Manager owns the difficulty level for a single test category across
// repeated attempts within one assessment session. It is not safe for
// concurrent use; each session holds its own instance.
type Manager struct {
	age        int
	config     Config
	current    float64
	streak     int
	history    []PerformancePoint
}

// NewManager builds a manager for the given age. A zero or negative
// initialDifficulty means "start at the bracket's base level".
func NewManager(age int, initialDifficulty float64) *Manager {
	cfg := ConfigForAge(age)
	current := cfg.BaseLevel
	if initialDifficulty > 0 {
		current = math.Min(math.Max(initialDifficulty, cfg.MinLevel), cfg.MaxLevel)
	}
	return &Manager{
		age:     age,
		config:  cfg,
		current: current,
	}
}

// Update applies one completed result to the difficulty level.
//
// The weighted score combines accuracy and a speed term, both scaled to
// 0-100 so they are comparable with the bracket thresholds. Two results
// at or above the increment threshold are needed before the level moves
// up; a single result at or below the decrement threshold moves it down
// and resets the streak. The increment check wins ties: a score exactly
// at the increment threshold with streak 0 or 1 only accumulates streak.
func (m *Manager) Update(result models.TestResult) {
	speedTerm := math.Max(0, 1-result.Metrics.Speed/10)

	weighted := (result.Metrics.Accuracy*m.config.AccuracyWeight +
		speedTerm*m.config.TimeWeight) * 100

	// History snapshots the state the result was administered under, so
	// the point is recorded before any streak or level adjustment.
	m.history = append(m.history, PerformancePoint{
		Accuracy:    result.Metrics.Accuracy,
		Speed:       speedTerm,
		Consistency: result.Metrics.Consistency,
		Complexity:  m.current / m.config.MaxLevel,
		StreakCount: m.streak,
	})

	if weighted >= m.config.IncrementThreshold {
		m.streak++
	} else if weighted <= m.config.DecrementThreshold {
		m.streak = max(0, m.streak-1)
	}

	if m.streak >= 2 && weighted >= m.config.IncrementThreshold {
		m.increase()
	} else if weighted <= m.config.DecrementThreshold {
		m.decrease()
	}
}

func (m *Manager) increase() {
	// Longer streaks accelerate the climb by 10% per extra step.
	increment := m.config.AdaptiveRate * (1 + float64(m.streak-2)*0.1)
	m.current = math.Min(m.config.MaxLevel, m.current+increment)
}

func (m *Manager) decrease() {
	m.current = math.Max(m.config.MinLevel, m.current-m.config.AdaptiveRate)
	m.streak = 0
}

func (m *Manager) CurrentDifficulty() float64 {
	return m.current
}

func (m *Manager) StreakCount() int {
	return m.streak
}

// History returns the performance points recorded so far, oldest first.
func (m *Manager) History() []PerformancePoint {
	return m.history
}

func (m *Manager) Config() Config {
	return m.config
}

// Level maps the current difficulty ratio to a human-readable label.
func (m *Manager) Level() string {
	ratio := m.current / m.config.MaxLevel
	switch {
	case ratio >= 0.9:
		return "Expert"
	case ratio >= 0.75:
		return "Advanced"
	case ratio >= 0.5:
		return "Intermediate"
	case ratio >= 0.25:
		return "Basic"
	default:
		return "Beginner"
	}
}

// AgeAppropriateSettings returns the presentation settings for the
// manager's age bracket at the current difficulty.
func (m *Manager) AgeAppropriateSettings() AgeSettings {
	return settingsForAge(m.age, m.current)
}
