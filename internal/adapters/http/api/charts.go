package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/hirelens/internal/domain/filter"
)

// ChartsDependencies defines the interface for chart images.
type ChartsDependencies interface {
	Chart(ctx context.Context, w io.Writer, name string, sel filter.Selection) error
}

// ChartsHandler handles chart image requests.
type ChartsHandler struct {
	deps ChartsDependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartsDependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// HandleGetChart handles GET /charts/{name}.png requests.
func (h *ChartsHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /charts/
	path := strings.TrimPrefix(r.URL.Path, "/charts/")
	name, ok := strings.CutSuffix(path, ".png")
	if !ok || name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}

	// Render into memory first so a failed pass can still answer with JSON.
	var buf bytes.Buffer
	if err := h.deps.Chart(r.Context(), &buf, name, selectionFromRequest(r)); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
