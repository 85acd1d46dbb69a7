package models

import (
	"encoding/json"
	"time"
)

type TestCategory string

const (
	CategoryMemory     TestCategory = "memory"
	CategoryAttention  TestCategory = "attention"
	CategoryProcessing TestCategory = "processing"
	CategoryExecutive  TestCategory = "executive"
	CategoryLearning   TestCategory = "learning"
)

var ValidCategories = map[TestCategory]bool{
	CategoryMemory:     true,
	CategoryAttention:  true,
	CategoryProcessing: true,
	CategoryExecutive:  true,
	CategoryLearning:   true,
}

// PerformanceMetrics is the normalized measurement attached to every
// completed test attempt.
//
// Speed is always raw elapsed seconds at the producer. Consumers that need
// a normalized or millisecond value convert it themselves — producers never
// pre-normalize.
type PerformanceMetrics struct {
	Accuracy    float64 `json:"accuracy"`    // fraction in [0,1]
	Speed       float64 `json:"speed"`       // raw elapsed seconds
	Consistency float64 `json:"consistency"` // fraction in [0,1]; 1 when <2 samples
	Combo       float64 `json:"combo,omitempty"`
}

// TestResult is the output of one completed test attempt. Created once,
// never mutated.
type TestResult struct {
	Score   float64            `json:"score"` // nominally 0-100
	Metrics PerformanceMetrics `json:"metrics"`
	Details json.RawMessage    `json:"details,omitempty"`
}

type TestAttempt struct {
	Timestamp    int64   `json:"timestamp"`
	Correct      bool    `json:"correct"`
	ReactionTime float64 `json:"reaction_time"` // milliseconds
}

// TestSession tags one completed test's result with its category and the
// difficulty it was administered at. Category is the canonical join key for
// all aggregation — never matched by substring.
type TestSession struct {
	TestID     string        `json:"test_id"`
	Category   TestCategory  `json:"category"`
	Difficulty float64       `json:"difficulty"`
	Result     TestResult    `json:"result"`
	Attempts   []TestAttempt `json:"attempts,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	EndedAt    time.Time     `json:"ended_at"`
}

// DifficultySettings is the per-session configuration derived from the
// pre-test profile. One value per test category plus session timing.
type DifficultySettings struct {
	MemoryDifficulty     float64 `json:"memory_difficulty"`
	AttentionDifficulty  float64 `json:"attention_difficulty"`
	ProcessingDifficulty float64 `json:"processing_difficulty"`
	ExecutiveDifficulty  float64 `json:"executive_difficulty"`
	LearningDifficulty   float64 `json:"learning_difficulty"`
	TimeAllowed          int     `json:"time_allowed"`   // seconds
	BreakInterval        int     `json:"break_interval"` // seconds
}

// ForCategory returns the configured difficulty for a test category.
func (s DifficultySettings) ForCategory(cat TestCategory) float64 {
	switch cat {
	case CategoryMemory:
		return s.MemoryDifficulty
	case CategoryAttention:
		return s.AttentionDifficulty
	case CategoryProcessing:
		return s.ProcessingDifficulty
	case CategoryExecutive:
		return s.ExecutiveDifficulty
	case CategoryLearning:
		return s.LearningDifficulty
	default:
		return 1
	}
}

type ComputerUsage string

const (
	UsageLow    ComputerUsage = "low"
	UsageMedium ComputerUsage = "medium"
	UsageHigh   ComputerUsage = "high"
)

// PretestProfile is the read-only record collected before the battery starts.
type PretestProfile struct {
	Age               int           `json:"age"`
	EducationLevel    string        `json:"education_level"`
	ComputerUsage     ComputerUsage `json:"computer_usage"`
	MedicalConditions []string      `json:"medical_conditions"`
}

type UserProfile struct {
	ID                 string `json:"id"`
	Age                int    `json:"age"`
	Education          string `json:"education"`
	Language           string `json:"language"`
	PreviousExperience bool   `json:"previous_experience"`
}

// ── Cognitive profile / report ──────────────────────────

type MemoryCapacity struct {
	ShortTerm float64 `json:"short_term"`
	Working   float64 `json:"working"`
	Visual    float64 `json:"visual"`
}

type AttentionMetrics struct {
	Sustained float64 `json:"sustained"`
	Selective float64 `json:"selective"`
	Divided   float64 `json:"divided"`
}

type ProcessingSpeed struct {
	Reaction  float64 `json:"reaction"`
	Decision  float64 `json:"decision"`
	Cognitive float64 `json:"cognitive"`
}

type ExecutiveFunction struct {
	Planning    float64 `json:"planning"`
	Flexibility float64 `json:"flexibility"`
	Inhibition  float64 `json:"inhibition"`
}

type CognitiveProfile struct {
	MemoryCapacity    MemoryCapacity    `json:"memory_capacity"`
	AttentionMetrics  AttentionMetrics  `json:"attention_metrics"`
	ProcessingSpeed   ProcessingSpeed   `json:"processing_speed"`
	ExecutiveFunction ExecutiveFunction `json:"executive_function"`
}

type IQSubScores struct {
	Memory         float64 `json:"memory"`
	Attention      float64 `json:"attention"`
	Processing     float64 `json:"processing"`
	ProblemSolving float64 `json:"problem_solving"`
	Reasoning      float64 `json:"reasoning"`
}

type IQMetrics struct {
	OverallIQ  int         `json:"overall_iq"`
	SubScores  IQSubScores `json:"sub_scores"`
	Confidence float64     `json:"confidence"` // [0,1]
	Percentile int         `json:"percentile"` // [1,99]
}

// AssessmentReport is the terminal aggregate handed to the report consumer.
type AssessmentReport struct {
	UserID           string             `json:"user_id"`
	SessionDate      time.Time          `json:"session_date"`
	UserProfile      UserProfile        `json:"user_profile"`
	TestSessions     []TestSession      `json:"test_sessions"`
	CognitiveProfile CognitiveProfile   `json:"cognitive_profile"`
	Recommendations  []string           `json:"recommendations"`
	PercentileRanks  map[string]float64 `json:"percentile_ranks"`
	IQMetrics        IQMetrics          `json:"iq_metrics"`
	Interpretations  []string           `json:"interpretations"`
}

// ── API request/response types ──────────────────────────

type StartAssessmentRequest struct {
	Profile PretestProfile `json:"profile"`
}

type StartAssessmentResponse struct {
	AssessmentID int64              `json:"assessment_id"`
	Settings     DifficultySettings `json:"settings"`
	Plan         []PlannedTest      `json:"plan"`
}

type PlannedTest struct {
	TestID     string       `json:"test_id"`
	Category   TestCategory `json:"category"`
	Difficulty float64      `json:"difficulty"`
	BreakAfter int          `json:"break_after,omitempty"` // seconds of rest after this test
}

type SubmitResultRequest struct {
	TestID string     `json:"test_id"`
	Result TestResult `json:"result"`

	// Attempts is the raw per-interaction record. When present the server
	// recomputes accuracy and consistency from it rather than trusting
	// the client's summary.
	Attempts []TestAttempt `json:"attempts,omitempty"`
}

type SubmitResultResponse struct {
	Accepted      bool              `json:"accepted"`
	NextTest      *PlannedTest      `json:"next_test,omitempty"`
	BreakSeconds  int               `json:"break_seconds,omitempty"`
	NewDifficulty float64           `json:"new_difficulty"`
	Level         string            `json:"level"`
	Completed     bool              `json:"completed"`
	Report        *AssessmentReport `json:"report,omitempty"`
}
