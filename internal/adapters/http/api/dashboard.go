package api

import (
	"context"
	"net/http"

	"github.com/okian/hirelens/internal/domain/filter"
	"github.com/okian/hirelens/internal/domain/types"
)

// DashboardDependencies defines the interface for dashboard passes.
type DashboardDependencies interface {
	Dashboard(ctx context.Context, sel filter.Selection) (types.Dashboard, error)
}

// DashboardHandler handles dashboard requests.
type DashboardHandler struct {
	deps DashboardDependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleGetDashboard handles GET /api/dashboard requests.
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dashboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	d, err := h.deps.Dashboard(r.Context(), selectionFromRequest(r))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
