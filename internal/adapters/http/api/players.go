package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/scout/internal/domain/model"
)

// PlayerImporter defines the interface for player roster operations.
type PlayerImporter interface {
	ImportPlayers(ctx context.Context, players []model.Player) (added, replaced int, err error)
	Players(ctx context.Context) []model.Player
}

// PlayersHandler handles roster import and listing.
type PlayersHandler struct {
	deps PlayerImporter
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerImporter) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// importResponse acknowledges a roster import.
type importResponse struct {
	Added    int `json:"added"`
	Replaced int `json:"replaced"`
	Total    int `json:"total"`
}

// HandlePlayers handles POST /players (import) and GET /players (list).
func (h *PlayersHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleImport(w, r)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Players(r.Context()))
	default:
		http.NotFound(w, r)
	}
}

func (h *PlayersHandler) handleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import_players"

	var players []model.Player
	if err := json.NewDecoder(r.Body).Decode(&players); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	for _, p := range players {
		if strings.TrimSpace(p.Name) == "" {
			writeError(w, http.StatusBadRequest, "missing_name", NewKind(op, ErrBadRequest))
			return
		}
	}

	added, replaced, err := h.deps.ImportPlayers(r.Context(), players)
	if err != nil {
		status := http.StatusInternalServerError
		code := "internal_error"
		if isTooLarge(err) {
			status = http.StatusRequestEntityTooLarge
			code = "dataset_too_large"
		}
		writeError(w, status, code, Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Added:    added,
		Replaced: replaced,
		Total:    len(h.deps.Players(r.Context())),
	})
}

// isTooLarge detects the roster-cap rejection without binding the handler to
// the service package's sentinel.
func isTooLarge(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "exceeds")
}
