package adaptive

import (
	"math"
	"testing"

	"github.com/cognify/backend/internal/models"
)

func perfectResult() models.TestResult {
	return models.TestResult{
		Score: 100,
		Metrics: models.PerformanceMetrics{
			Accuracy:    1.0,
			Speed:       0, // speed term normalizes to 1.0
			Consistency: 1.0,
		},
	}
}

func failedResult() models.TestResult {
	return models.TestResult{
		Score: 0,
		Metrics: models.PerformanceMetrics{
			Accuracy:    0,
			Speed:       10, // speed term normalizes to 0
			Consistency: 0.5,
		},
	}
}

func TestNewManagerStartsAtBaseLevel(t *testing.T) {
	ages := []struct {
		age  int
		base float64
	}{
		{4, 1},
		{9, 2},
		{15, 3},
		{25, 4},
		{40, 3},
		{65, 2},
	}

	for _, tt := range ages {
		m := NewManager(tt.age, 0)
		if m.CurrentDifficulty() != tt.base {
			t.Errorf("NewManager(age=%d) difficulty = %f, want %f", tt.age, m.CurrentDifficulty(), tt.base)
		}
	}
}

func TestNewManagerClampsInitialDifficulty(t *testing.T) {
	// Age 25 bracket: min=2, max=10
	m := NewManager(25, 50)
	if m.CurrentDifficulty() != 10 {
		t.Errorf("initial difficulty 50 should clamp to max 10, got %f", m.CurrentDifficulty())
	}

	m = NewManager(25, 0.5)
	if m.CurrentDifficulty() != 2 {
		t.Errorf("initial difficulty 0.5 should clamp to min 2, got %f", m.CurrentDifficulty())
	}
}

func TestStreakBuildsBeforeDifficultyMoves(t *testing.T) {
	m := NewManager(25, 0)
	start := m.CurrentDifficulty()

	// First perfect result builds streak but does not move the level.
	m.Update(perfectResult())
	if m.StreakCount() != 1 {
		t.Errorf("streak after 1 result = %d, want 1", m.StreakCount())
	}
	if m.CurrentDifficulty() != start {
		t.Errorf("difficulty moved after a single result: %f", m.CurrentDifficulty())
	}

	// Second perfect result hits streak 2 and the level begins climbing.
	m.Update(perfectResult())
	if m.StreakCount() != 2 {
		t.Errorf("streak after 2 results = %d, want 2", m.StreakCount())
	}
	if m.CurrentDifficulty() <= start {
		t.Errorf("difficulty should increase at streak 2, got %f", m.CurrentDifficulty())
	}
}

func TestStreakMonotonicOnGoodRun(t *testing.T) {
	m := NewManager(25, 0)
	prev := 0
	for i := 0; i < 5; i++ {
		m.Update(perfectResult())
		if m.StreakCount() != prev+1 {
			t.Fatalf("streak after result %d = %d, want %d", i+1, m.StreakCount(), prev+1)
		}
		prev = m.StreakCount()
	}
}

func TestLevelTransitionsOnSustainedPerformance(t *testing.T) {
	// Age 25: base 4, max 10 → starts at ratio 0.4 = "Basic".
	m := NewManager(25, 0)
	if m.Level() != "Basic" {
		t.Fatalf("initial level = %q, want Basic", m.Level())
	}

	// 4.0 → 4.6 → 5.26 → 5.98 → 6.76 over five perfect results.
	for i := 0; i < 5; i++ {
		m.Update(perfectResult())
	}

	want := 6.76
	if math.Abs(m.CurrentDifficulty()-want) > 0.001 {
		t.Errorf("difficulty after 5 perfect results = %f, want %f", m.CurrentDifficulty(), want)
	}
	if m.Level() != "Intermediate" {
		t.Errorf("level = %q, want Intermediate", m.Level())
	}
}

func TestDifficultyBounds(t *testing.T) {
	m := NewManager(25, 0)
	cfg := m.Config()

	for i := 0; i < 50; i++ {
		m.Update(perfectResult())
		if m.CurrentDifficulty() > cfg.MaxLevel {
			t.Fatalf("difficulty %f exceeded max %f", m.CurrentDifficulty(), cfg.MaxLevel)
		}
	}
	if m.CurrentDifficulty() != cfg.MaxLevel {
		t.Errorf("sustained perfect run should cap at max %f, got %f", cfg.MaxLevel, m.CurrentDifficulty())
	}

	for i := 0; i < 50; i++ {
		m.Update(failedResult())
		if m.CurrentDifficulty() < cfg.MinLevel {
			t.Fatalf("difficulty %f dropped below min %f", m.CurrentDifficulty(), cfg.MinLevel)
		}
	}
	if m.CurrentDifficulty() != cfg.MinLevel {
		t.Errorf("sustained failures should floor at min %f, got %f", cfg.MinLevel, m.CurrentDifficulty())
	}
}

func TestFailureResetsStreak(t *testing.T) {
	m := NewManager(25, 0)
	m.Update(perfectResult())
	m.Update(perfectResult())
	m.Update(perfectResult())
	if m.StreakCount() != 3 {
		t.Fatalf("streak = %d, want 3", m.StreakCount())
	}

	before := m.CurrentDifficulty()
	m.Update(failedResult())
	if m.StreakCount() != 0 {
		t.Errorf("streak after failure = %d, want 0 (reset on decrease)", m.StreakCount())
	}
	if m.CurrentDifficulty() >= before {
		t.Errorf("difficulty should drop after failure, got %f (was %f)", m.CurrentDifficulty(), before)
	}
}

func TestMiddlingScoreLeavesEverythingAlone(t *testing.T) {
	// Age 25 thresholds: increment 70, decrement 45. A weighted score of
	// 60 sits between them: no streak change, no level change.
	m := NewManager(25, 0)
	start := m.CurrentDifficulty()

	result := models.TestResult{
		Metrics: models.PerformanceMetrics{
			Accuracy:    0.6,  // 0.6*0.4*100 = 24
			Speed:       4.0,  // term 0.6 → 0.6*0.6*100 = 36; total 60
			Consistency: 0.8,
		},
	}
	for i := 0; i < 3; i++ {
		m.Update(result)
	}

	if m.StreakCount() != 0 {
		t.Errorf("streak = %d, want 0", m.StreakCount())
	}
	if m.CurrentDifficulty() != start {
		t.Errorf("difficulty = %f, want unchanged %f", m.CurrentDifficulty(), start)
	}
}

func TestHistoryAccumulates(t *testing.T) {
	m := NewManager(25, 0)
	for i := 0; i < 4; i++ {
		m.Update(perfectResult())
	}
	h := m.History()
	if len(h) != 4 {
		t.Fatalf("history length = %d, want 4", len(h))
	}
	// Each point snapshots the state the result was administered under,
	// before the streak and level adjust.
	if h[0].Complexity != 0.4 {
		t.Errorf("first complexity = %f, want 0.4", h[0].Complexity)
	}
	if h[0].StreakCount != 0 {
		t.Errorf("first streak = %d, want pre-update 0", h[0].StreakCount)
	}
	if h[3].StreakCount != 3 {
		t.Errorf("last streak = %d, want pre-update 3", h[3].StreakCount)
	}
}

func TestAgeAppropriateSettings(t *testing.T) {
	tests := []struct {
		age       int
		timeLimit int
		features  int
	}{
		{5, 60, 3},
		{10, 45, 3},
		{15, 30, 2},
		{25, 25, 2},
		{70, 25, 2},
	}

	for _, tt := range tests {
		m := NewManager(tt.age, 0)
		s := m.AgeAppropriateSettings()
		if s.TimeLimit != tt.timeLimit {
			t.Errorf("age %d: time limit = %d, want %d", tt.age, s.TimeLimit, tt.timeLimit)
		}
		if len(s.Features) != tt.features {
			t.Errorf("age %d: features = %v, want %d entries", tt.age, s.Features, tt.features)
		}
		if s.Complexity != m.CurrentDifficulty() {
			t.Errorf("age %d: settings complexity = %f, want current difficulty %f", tt.age, s.Complexity, m.CurrentDifficulty())
		}
	}
}

func TestYoungChildFeatureFlags(t *testing.T) {
	m := NewManager(5, 0)
	s := m.AgeAppropriateSettings()
	want := []string{"hints", "visual_feedback", "simple_patterns"}
	if len(s.Features) != len(want) {
		t.Fatalf("features = %v, want %v", s.Features, want)
	}
	for i, f := range want {
		if s.Features[i] != f {
			t.Errorf("features[%d] = %q, want %q", i, s.Features[i], f)
		}
	}
}
