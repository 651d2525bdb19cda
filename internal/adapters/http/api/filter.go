package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/query"
)

// Filterer defines the interface for roster filtering.
type Filterer interface {
	Filter(ctx context.Context, g *query.Group) []model.Player
}

// FilterHandler handles query-group filter requests.
type FilterHandler struct {
	deps Filterer
}

// NewFilterHandler creates a new filter handler.
func NewFilterHandler(deps Filterer) *FilterHandler {
	return &FilterHandler{deps: deps}
}

// HandlePostFilter handles POST /filter requests. The body is a query group;
// an empty body matches every player.
func (h *FilterHandler) HandlePostFilter(w http.ResponseWriter, r *http.Request) {
	const op = "api.filter"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var g *query.Group
	if r.ContentLength != 0 {
		g = new(query.Group)
		if err := json.NewDecoder(r.Body).Decode(g); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
	}

	writeJSON(w, http.StatusOK, h.deps.Filter(r.Context(), g))
}
