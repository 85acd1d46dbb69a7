package assessment

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/cognify/backend/internal/auth"
	"github.com/cognify/backend/internal/models"
)

// Handler exposes the battery lifecycle over HTTP. In-flight suites live
// in memory keyed by assessment id; sessions and reports are persisted as
// they arrive, so a completed battery survives a restart.
type Handler struct {
	db    *sql.DB
	store *Store

	mu     sync.Mutex
	active map[int64]*Suite
}

func NewHandler(db *sql.DB) *Handler {
	return &Handler{
		db:     db,
		store:  NewStore(db),
		active: make(map[int64]*Suite),
	}
}

// Start begins a new battery for the authenticated user.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r)

	var req models.StartAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	var age int
	err := h.db.QueryRow(`SELECT age FROM users WHERE id = $1`, userID).Scan(&age)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	// The account age is authoritative; the pre-test questionnaire fills
	// in the rest.
	req.Profile.Age = age

	profile := models.UserProfile{
		ID:                 strconv.FormatInt(userID, 10),
		Age:                age,
		Education:          req.Profile.EducationLevel,
		PreviousExperience: req.Profile.ComputerUsage == models.UsageHigh,
	}

	suite := NewSuite(profile, req.Profile)

	assessmentID, err := h.store.CreateAssessment(userID, req.Profile, suite.Settings())
	if err != nil {
		log.Printf("create assessment: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to start assessment"})
		return
	}

	h.mu.Lock()
	h.active[assessmentID] = suite
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, models.StartAssessmentResponse{
		AssessmentID: assessmentID,
		Settings:     suite.Settings(),
		Plan:         suite.Plan(),
	})
}

// SubmitResult records one test result, returning the adapted difficulty
// and the next test — or the final report when the battery is done.
func (h *Handler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r)

	assessmentID, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid assessment id"})
		return
	}

	var req models.SubmitResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	h.mu.Lock()
	suite, found := h.active[assessmentID]
	h.mu.Unlock()
	if !found {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No active assessment with this id"})
		return
	}

	owner, err := h.store.AssessmentOwner(assessmentID)
	if err != nil || owner != userID {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Assessment belongs to another user"})
		return
	}

	resp, err := suite.Submit(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	// Test ids are unique within a battery, so the accepted submission's
	// session is found by id rather than by position.
	for _, session := range suite.Sessions() {
		if session.TestID == req.TestID {
			if err := h.store.SaveSession(assessmentID, session); err != nil {
				log.Printf("save session: %v", err)
			}
			break
		}
	}

	if resp.Completed {
		if err := h.store.SaveReport(assessmentID, userID, *resp.Report); err != nil {
			log.Printf("save report: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save report"})
			return
		}
		h.mu.Lock()
		delete(h.active, assessmentID)
		h.mu.Unlock()
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetReport returns the stored report for a completed assessment.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r)

	assessmentID, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid assessment id"})
		return
	}

	owner, err := h.store.AssessmentOwner(assessmentID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Assessment not found"})
		return
	}
	if owner != userID {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Assessment belongs to another user"})
		return
	}

	report, err := h.store.GetReport(assessmentID)
	if err != nil {
		log.Printf("get report: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load report"})
		return
	}
	if report == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Report not ready"})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
