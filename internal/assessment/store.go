package assessment

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cognify/backend/internal/models"
)

// Store persists assessments, their sessions, and the final report.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateAssessment records the start of a battery and returns its id.
func (s *Store) CreateAssessment(userID int64, pretest models.PretestProfile, settings models.DifficultySettings) (int64, error) {
	profileJSON, err := json.Marshal(pretest)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal profile: %w", err)
	}
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal settings: %w", err)
	}

	var id int64
	err = s.db.QueryRow(
		`INSERT INTO assessments (user_id, profile, settings) VALUES ($1, $2, $3) RETURNING id`,
		userID, profileJSON, settingsJSON,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create assessment: %w", err)
	}

	return id, nil
}

// SaveSession records one completed test within an assessment.
func (s *Store) SaveSession(assessmentID int64, session models.TestSession) error {
	metricsJSON, err := json.Marshal(session.Result.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	var details interface{}
	if len(session.Result.Details) > 0 {
		details = []byte(session.Result.Details)
	}

	_, err = s.db.Exec(
		`INSERT INTO test_sessions (assessment_id, test_id, category, difficulty, score, metrics, details, started_at, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		assessmentID, session.TestID, string(session.Category), session.Difficulty,
		session.Result.Score, metricsJSON, details, session.StartedAt, session.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// SaveReport stores the final report and marks the assessment complete.
// The unique constraint on assessment_id makes re-saving a no-op update,
// so completing the same battery twice leaves one report.
func (s *Store) SaveReport(assessmentID, userID int64, report models.AssessmentReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO assessment_reports (assessment_id, user_id, report) VALUES ($1, $2, $3)
		 ON CONFLICT (assessment_id) DO UPDATE SET report = EXCLUDED.report`,
		assessmentID, userID, reportJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE assessments SET status = 'completed', completed_at = NOW() WHERE id = $1`,
		assessmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete assessment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit report: %w", err)
	}

	return nil
}

// GetReport loads a stored report by assessment id.
func (s *Store) GetReport(assessmentID int64) (*models.AssessmentReport, error) {
	var reportJSON []byte
	err := s.db.QueryRow(
		`SELECT report FROM assessment_reports WHERE assessment_id = $1`,
		assessmentID,
	).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report models.AssessmentReport
	if err := json.Unmarshal(reportJSON, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}

// AssessmentOwner returns the user that started an assessment, or
// sql.ErrNoRows via the wrapped error when it does not exist.
func (s *Store) AssessmentOwner(assessmentID int64) (int64, error) {
	var userID int64
	err := s.db.QueryRow(
		`SELECT user_id FROM assessments WHERE id = $1`,
		assessmentID,
	).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("failed to look up assessment: %w", err)
	}
	return userID, nil
}
