package api

import (
	"context"
	"net/http"

	"github.com/okian/hirelens/internal/domain/types"
)

// FiltersDependencies defines the interface for dropdown options.
type FiltersDependencies interface {
	Filters(ctx context.Context) (types.Filters, error)
}

// FiltersHandler handles filter option requests.
type FiltersHandler struct {
	deps FiltersDependencies
}

// NewFiltersHandler creates a new filters handler.
func NewFiltersHandler(deps FiltersDependencies) *FiltersHandler {
	return &FiltersHandler{deps: deps}
}

// HandleGetFilters handles GET /api/filters requests.
func (h *FiltersHandler) HandleGetFilters(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_filters"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	f, err := h.deps.Filters(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}
