package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/scheduler"
	"github.com/okian/scout/pkg/logger"
)

// Scorer defines the interface for batch scoring operations.
type Scorer interface {
	ScoreAll(ctx context.Context, roleCodes []string, onProgress scheduler.ProgressFunc) ([]model.Player, error)
	CachedScore(ctx context.Context, name, roleCode string) (float64, error)
}

// ScoresHandler handles batch scoring and cached score lookups.
type ScoresHandler struct {
	deps Scorer
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps Scorer) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// scoreRequest selects the roles for a batch job. Empty means every role.
type scoreRequest struct {
	RoleCodes []string `json:"role_codes"`
}

type cachedScoreResponse struct {
	Player string  `json:"player"`
	Role   string  `json:"role"`
	Score  float64 `json:"score"`
}

// HandleScores handles POST /scores (run a job) and
// GET /scores?player=NAME&role=CODE (cached lookup).
func (h *ScoresHandler) HandleScores(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleScoreAll(w, r)
	case http.MethodGet:
		h.handleCachedScore(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ScoresHandler) handleScoreAll(w http.ResponseWriter, r *http.Request) {
	const op = "api.score_all"

	var req scoreRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
	}

	log := logger.Named("api")
	results, err := h.deps.ScoreAll(r.Context(), req.RoleCodes, func(pct int) {
		log.Debug(r.Context(), "scoring progress", logger.Int("percent", pct))
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *ScoresHandler) handleCachedScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.cached_score"

	name := r.URL.Query().Get("player")
	code := r.URL.Query().Get("role")
	if name == "" || code == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	score, err := h.deps.CachedScore(r.Context(), name, code)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, cachedScoreResponse{Player: name, Role: code, Score: score})
}
