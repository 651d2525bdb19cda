package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/scout/internal/domain/role"
)

// RoleCatalog defines the interface for role lookups.
type RoleCatalog interface {
	Roles(ctx context.Context) []role.Role
	RoleByCode(ctx context.Context, code string) (role.Role, error)
}

// RolesHandler handles role catalog requests.
type RolesHandler struct {
	deps RoleCatalog
}

// NewRolesHandler creates a new roles handler.
func NewRolesHandler(deps RoleCatalog) *RolesHandler {
	return &RolesHandler{deps: deps}
}

// HandleGetRoles handles GET /roles requests.
func (h *RolesHandler) HandleGetRoles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Roles(r.Context()))
}

// HandleGetRole handles GET /roles/{code} requests.
func (h *RolesHandler) HandleGetRole(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_role"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/roles/")
	if code == "" || strings.Contains(code, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	found, err := h.deps.RoleByCode(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, found)
}
