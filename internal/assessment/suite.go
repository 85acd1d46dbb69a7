package assessment

import (
	"fmt"
	"sync"
	"time"

	"github.com/cognify/backend/internal/adaptive"
	"github.com/cognify/backend/internal/models"
	"github.com/cognify/backend/internal/scoring"
)

// batteryOrder is the fixed administration order: six tests spanning the
// five categories, memory twice since it feeds both the short-term and
// working sub-fields.
var batteryOrder = []struct {
	testID   string
	category models.TestCategory
}{
	{"sequence-recall", models.CategoryMemory},
	{"pattern-match", models.CategoryAttention},
	{"reaction-catch", models.CategoryProcessing},
	{"pattern-shift", models.CategoryExecutive},
	{"sequence-span", models.CategoryMemory},
	{"rule-discovery", models.CategoryLearning},
}

// restEvery is the test count between scheduled breaks.
const restEvery = 2

// Suite runs one user's battery from the pre-test profile through report
// generation. Each category gets its own adaptive manager seeded from the
// pre-test difficulty settings, so difficulty moves independently per
// category as results arrive.
//
// All methods are safe for concurrent use: a client retrying a submission
// can race the original request, and only one of them may win.
type Suite struct {
	profile  models.UserProfile
	settings models.DifficultySettings
	plan     []models.PlannedTest
	started  time.Time

	mu       sync.Mutex
	managers map[models.TestCategory]*adaptive.Manager
	sessions []models.TestSession
	next     int
	report   *models.AssessmentReport
}

// NewSuite derives difficulty settings from the pre-test profile and lays
// out the full test plan.
func NewSuite(profile models.UserProfile, pretest models.PretestProfile) *Suite {
	settings := adaptive.SettingsFromProfile(pretest)

	s := &Suite{
		profile:  profile,
		settings: settings,
		managers: make(map[models.TestCategory]*adaptive.Manager),
		started:  time.Now().UTC(),
	}

	for i, entry := range batteryOrder {
		if _, ok := s.managers[entry.category]; !ok {
			s.managers[entry.category] = adaptive.NewManager(profile.Age, settings.ForCategory(entry.category))
		}
		planned := models.PlannedTest{
			TestID:     entry.testID,
			Category:   entry.category,
			Difficulty: s.managers[entry.category].CurrentDifficulty(),
		}
		if (i+1)%restEvery == 0 && i != len(batteryOrder)-1 {
			planned.BreakAfter = settings.BreakInterval
		}
		s.plan = append(s.plan, planned)
	}

	return s
}

// Settings returns the difficulty settings derived at start.
func (s *Suite) Settings() models.DifficultySettings { return s.settings }

// Plan returns the full planned battery in administration order. The plan
// is fixed at construction and never mutated.
func (s *Suite) Plan() []models.PlannedTest { return s.plan }

// Completed reports whether every planned test has a submitted result.
func (s *Suite) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed()
}

func (s *Suite) completed() bool { return s.next >= len(s.plan) }

// CurrentTest returns the next test awaiting a result, or nil when the
// battery is complete.
func (s *Suite) CurrentTest() *models.PlannedTest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTest()
}

func (s *Suite) currentTest() *models.PlannedTest {
	if s.completed() {
		return nil
	}
	t := s.plan[s.next]
	t.Difficulty = s.managers[t.Category].CurrentDifficulty()
	return &t
}

// Submit records the result for the test currently being administered,
// feeds it to that category's adaptive manager, and advances the battery.
// Results arriving out of order or for an unknown test are rejected, as is
// a duplicate of a submission that already won.
func (s *Suite) Submit(req models.SubmitResultRequest) (models.SubmitResultResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed() {
		return models.SubmitResultResponse{}, fmt.Errorf("submit result: battery already complete")
	}

	current := s.plan[s.next]
	if req.TestID != current.TestID {
		return models.SubmitResultResponse{}, fmt.Errorf("submit result: expected test %q, got %q", current.TestID, req.TestID)
	}

	result := req.Result
	if len(req.Attempts) > 0 {
		reconcileMetrics(&result, req.Attempts)
	}

	mgr := s.managers[current.Category]
	now := time.Now().UTC()
	s.sessions = append(s.sessions, models.TestSession{
		TestID:     current.TestID,
		Category:   current.Category,
		Difficulty: mgr.CurrentDifficulty(),
		Result:     result,
		Attempts:   req.Attempts,
		StartedAt:  now.Add(-time.Duration(result.Metrics.Speed * float64(time.Second))),
		EndedAt:    now,
	})
	mgr.Update(result)

	resp := models.SubmitResultResponse{
		Accepted:      true,
		NewDifficulty: mgr.CurrentDifficulty(),
		Level:         mgr.Level(),
	}
	if current.BreakAfter > 0 {
		resp.BreakSeconds = current.BreakAfter
	}

	s.next++
	if s.completed() {
		resp.Completed = true
		report := s.buildReport()
		resp.Report = &report
		return resp, nil
	}

	next := *s.currentTest()
	resp.NextTest = &next
	return resp, nil
}

// reconcileMetrics recomputes accuracy and consistency from the raw
// attempt record. The client's summary values are advisory at best.
func reconcileMetrics(result *models.TestResult, attempts []models.TestAttempt) {
	correct := 0
	times := make([]float64, 0, len(attempts))
	for _, a := range attempts {
		if a.Correct {
			correct++
		}
		if a.ReactionTime > 0 {
			times = append(times, a.ReactionTime)
		}
	}

	result.Metrics.Accuracy = scoring.Accuracy(correct, len(attempts))
	result.Metrics.Consistency = scoring.Consistency(times)
}

// Sessions returns the completed sessions in administration order.
func (s *Suite) Sessions() []models.TestSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions
}

// Report builds the final report from the recorded sessions. The first
// call caches the result; subsequent calls return the same report, so the
// session date and derived numbers never drift between reads.
func (s *Suite) Report() models.AssessmentReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildReport()
}

func (s *Suite) buildReport() models.AssessmentReport {
	if s.report == nil {
		r := NewAnalyzer(s.sessions, s.profile).Report()
		s.report = &r
	}
	return *s.report
}
