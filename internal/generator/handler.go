package generator

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/cognify/backend/internal/models"
)

const defaultChallengeCount = 5

// Handler serves on-demand challenge generation. Generation failures fall
// back to the static bank so the endpoint always returns usable content.
type Handler struct {
	gen *Generator
	db  *sql.DB
}

func NewHandler(gen *Generator, db *sql.DB) *Handler {
	return &Handler{gen: gen, db: db}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateChallengesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if !models.ValidCategories[req.Category] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid category"})
		return
	}
	if req.Age < 1 || req.Age > 129 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "A valid age is required"})
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyMedium
	}
	if req.Difficulty != models.DifficultyEasy && req.Difficulty != models.DifficultyMedium && req.Difficulty != models.DifficultyHard {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid difficulty"})
		return
	}
	if req.Count <= 0 || req.Count > 20 {
		req.Count = defaultChallengeCount
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	resp := h.generate(ctx, req)
	h.saveBatch(req, resp)

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) generate(ctx context.Context, req models.GenerateChallengesRequest) models.GenerateChallengesResponse {
	set, _, err := h.gen.GenerateChallenges(ctx, req)
	if err != nil {
		log.Printf("challenge generation failed, serving fallback: %v", err)
		return models.GenerateChallengesResponse{
			Challenges: FallbackChallenges(req.Category, req.Count),
			Source:     "fallback",
			CreatedAt:  time.Now().UTC(),
		}
	}

	challenges, rejected := FilterByQuality(set.Challenges)
	if rejected > 0 {
		log.Printf("dropped %d low-quality challenges from generated batch", rejected)
	}
	if len(challenges) == 0 {
		log.Print("generated batch entirely rejected, serving fallback")
		return models.GenerateChallengesResponse{
			Challenges: FallbackChallenges(req.Category, req.Count),
			Source:     "fallback",
			CreatedAt:  time.Now().UTC(),
		}
	}

	return models.GenerateChallengesResponse{
		Challenges: challenges,
		Source:     "generated",
		Model:      h.gen.ModelName(),
		CreatedAt:  time.Now().UTC(),
	}
}

// saveBatch records the served batch for later reuse and auditing. Failures
// are logged, not surfaced — persistence is best-effort here.
func (h *Handler) saveBatch(req models.GenerateChallengesRequest, resp models.GenerateChallengesResponse) {
	if h.db == nil {
		return
	}

	challengesJSON, err := json.Marshal(resp.Challenges)
	if err != nil {
		log.Printf("marshal challenge batch: %v", err)
		return
	}

	var model interface{}
	if resp.Model != "" {
		model = resp.Model
	}

	_, err = h.db.Exec(
		`INSERT INTO challenge_batches (category, difficulty, age, count, source, model_used, challenges)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(req.Category), string(req.Difficulty), req.Age, len(resp.Challenges), resp.Source, model, challengesJSON,
	)
	if err != nil {
		log.Printf("save challenge batch: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
