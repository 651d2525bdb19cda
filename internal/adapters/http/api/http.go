// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/query"
	"github.com/okian/scout/internal/domain/role"
	"github.com/okian/scout/internal/scheduler"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ImportPlayers merges players into the roster, replacing by name.
	ImportPlayers(ctx context.Context, players []model.Player) (added, replaced int, err error)

	// Read operations expose the roster and the role catalog.
	Players(ctx context.Context) []model.Player
	Roles(ctx context.Context) []role.Role
	RoleByCode(ctx context.Context, code string) (role.Role, error)

	// ScoreAll runs one batch scoring job over the roster.
	ScoreAll(ctx context.Context, roleCodes []string, onProgress scheduler.ProgressFunc) ([]model.Player, error)

	// CachedScore reads a single (player, role) score from the last job.
	CachedScore(ctx context.Context, name, roleCode string) (float64, error)

	// Filter returns the players matching a query group.
	Filter(ctx context.Context, g *query.Group) []model.Player
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	playersHandler *PlayersHandler
	rolesHandler   *RolesHandler
	scoresHandler  *ScoresHandler
	filterHandler  *FilterHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		playersHandler: NewPlayersHandler(deps),
		rolesHandler:   NewRolesHandler(deps),
		scoresHandler:  NewScoresHandler(deps),
		filterHandler:  NewFilterHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandlePlayers, "players"))
	mux.HandleFunc("/roles", MetricsMiddleware(s.rolesHandler.HandleGetRoles, "roles"))
	mux.HandleFunc("/roles/", MetricsMiddleware(s.rolesHandler.HandleGetRole, "role"))
	mux.HandleFunc("/scores", MetricsMiddleware(s.scoresHandler.HandleScores, "scores"))
	mux.HandleFunc("/filter", MetricsMiddleware(s.filterHandler.HandlePostFilter, "filter"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
