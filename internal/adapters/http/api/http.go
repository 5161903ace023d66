// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/hirelens/internal/adapters/render"
	service "github.com/okian/hirelens/internal/app"
	"github.com/okian/hirelens/internal/domain/filter"
	"github.com/okian/hirelens/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Dashboard runs one render pass and returns the page model.
	Dashboard(ctx context.Context, sel filter.Selection) (types.Dashboard, error)
	// Filters lists the values each dropdown offers.
	Filters(ctx context.Context) (types.Filters, error)
	// Chart runs one render pass and writes the named chart as PNG.
	Chart(ctx context.Context, w io.Writer, name string, sel filter.Selection) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *DashboardHandler
	filtersHandler   *FiltersHandler
	chartsHandler    *ChartsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: NewDashboardHandler(deps),
		filtersHandler:   NewFiltersHandler(deps),
		chartsHandler:    NewChartsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/dashboard", RequestID(MetricsMiddleware(s.dashboardHandler.HandleGetDashboard, "dashboard")))
	mux.HandleFunc("/api/filters", RequestID(MetricsMiddleware(s.filtersHandler.HandleGetFilters, "filters")))
	mux.HandleFunc("/charts/", RequestID(MetricsMiddleware(s.chartsHandler.HandleGetChart, "charts")))
}

// selectionFromRequest reads the four filters from the query string. Absent
// parameters mean "All".
func selectionFromRequest(r *http.Request) filter.Selection {
	q := r.URL.Query()
	return filter.Selection{
		CompanyTier:        q.Get("company_tier"),
		ExperienceCategory: q.Get("experience_category"),
		CompetitionLevel:   q.Get("competition_level"),
		Status:             q.Get("status"),
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before touching the response so an encoding failure
// still yields a complete 500 body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{
			Code:    "internal_error",
			Message: Wrap("api.encode", err).Error(),
		})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps pipeline errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, filter.ErrInvalidSelection):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, render.ErrUnknownChart):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
