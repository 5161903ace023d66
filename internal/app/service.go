// Package service runs the dashboard pipeline for the HTTP API: it loads the
// candidate table once, filters it per request and aggregates the result.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/hirelens/internal/adapters/render"
	"github.com/okian/hirelens/internal/adapters/repository"
	"github.com/okian/hirelens/internal/domain/aggregate"
	"github.com/okian/hirelens/internal/domain/filter"
	"github.com/okian/hirelens/internal/domain/types"
	"github.com/okian/hirelens/pkg/logger"
	"github.com/okian/hirelens/pkg/metrics"
)

// DataPath is the file the dashboard reads, relative to the working directory.
const DataPath = "cleaned_placement_data.csv"

// ErrNotStarted is returned by passes run before Start succeeded.
var ErrNotStarted = errors.New("service not started")

// Service implements the API dependencies for the placement dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	cache    *repository.Cache
	renderer *render.Renderer

	// Configuration
	dataPath      string
	topFeatures   int
	histogramBins int
	chartWidth    int
	chartHeight   int

	// State
	started   bool
	startedAt time.Time
	rows      int
	options   filter.Options

	passes       atomic.Int64
	failedPasses atomic.Int64
	charts       atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache shares an existing table cache.
func WithCache(c *repository.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithDataPath replaces DataPath. It exists for tests; the binary never sets it.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithTopFeatures sets how many features the importance ranking keeps.
func WithTopFeatures(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topFeatures = n
		}
	}
}

// WithHistogramBins sets the bin count of the score histogram.
func WithHistogramBins(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.histogramBins = n
		}
	}
}

// WithChartSize sets the PNG size in pixels.
func WithChartSize(widthPx, heightPx int) Option {
	return func(s *Service) {
		s.chartWidth = widthPx
		s.chartHeight = heightPx
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath:      DataPath,
		topFeatures:   aggregate.DefaultTopFeatures,
		histogramBins: aggregate.DefaultHistogramBins,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cache == nil {
		s.cache = repository.NewCache(repository.WithLogger(s.logger))
	}
	s.renderer = render.New(render.WithSize(s.chartWidth, s.chartHeight))
	return s
}

// Start loads the candidate table. A load failure is returned as is and the
// service stays stopped; there is no retry.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting dashboard service...", logger.String("path", s.dataPath))

	table, err := s.cache.Get(ctx, s.dataPath)
	if err != nil {
		return fmt.Errorf("service.start: %w", err)
	}

	s.rows = table.Len()
	s.options = filter.OptionsFor(table)
	s.started = true
	s.startedAt = time.Now()

	s.logger.Info(ctx, "dashboard service started",
		logger.Int("rows", s.rows),
		logger.Int("companyTiers", len(s.options.CompanyTier)-1),
		logger.Int("experienceCategories", len(s.options.ExperienceCategory)-1),
		logger.Int("competitionLevels", len(s.options.CompetitionLevel)-1),
	)
	return nil
}

// Stop marks the service as stopped. The loaded table stays cached.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Filters returns the values each dropdown offers.
func (s *Service) Filters(_ context.Context) (types.Filters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return types.Filters{}, ErrNotStarted
	}
	return types.Filters{
		CompanyTier:        s.options.CompanyTier,
		ExperienceCategory: s.options.ExperienceCategory,
		CompetitionLevel:   s.options.CompetitionLevel,
		Status:             s.options.Status,
	}, nil
}

// Dashboard runs one render pass for sel and returns the page model.
func (s *Service) Dashboard(ctx context.Context, sel filter.Selection) (types.Dashboard, error) {
	start := time.Now()
	d, rows, err := s.pass(ctx, sel)
	if errors.Is(err, ErrNotStarted) {
		return types.Dashboard{}, err
	}
	if err != nil {
		s.failedPasses.Add(1)
		s.logger.Error(ctx, "render pass failed",
			logger.String("selection", sel.String()),
			logger.Error(err),
		)
		return types.Dashboard{}, err
	}

	s.passes.Add(1)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordRenderPass(latencyMs, rows)
	s.logger.Debug(ctx, "render pass",
		logger.String("selection", sel.String()),
		logger.Int("rows", rows),
		logger.Float64("durationMs", latencyMs),
	)
	return d, nil
}

// Chart runs a render pass for sel and writes the named chart as PNG to w.
func (s *Service) Chart(ctx context.Context, w io.Writer, name string, sel filter.Selection) error {
	if !render.Known(name) {
		return fmt.Errorf("service.chart: %w: %q", render.ErrUnknownChart, name)
	}
	d, err := s.Dashboard(ctx, sel)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := s.renderer.Render(w, name, d.Charts); err != nil {
		metrics.RecordRenderError("render")
		s.logger.Error(ctx, "chart render failed", logger.String("chart", name), logger.Error(err))
		return fmt.Errorf("service.chart: %w", err)
	}
	s.charts.Add(1)
	metrics.RecordChartRender(name, float64(time.Since(start).Microseconds())/1000)
	return nil
}

// pass is Filter, then every aggregate, then the page model. Any failing
// stage aborts the pass.
func (s *Service) pass(ctx context.Context, sel filter.Selection) (types.Dashboard, int, error) {
	s.mu.RLock()
	started, opts := s.started, s.options
	s.mu.RUnlock()

	if !started {
		return types.Dashboard{}, 0, ErrNotStarted
	}
	if err := sel.Validate(opts); err != nil {
		metrics.RecordRenderError("validate")
		return types.Dashboard{}, 0, fmt.Errorf("service.dashboard: %w", err)
	}

	table, err := s.cache.Get(ctx, s.dataPath)
	if err != nil {
		metrics.RecordRenderError("load")
		return types.Dashboard{}, 0, fmt.Errorf("service.dashboard: %w", err)
	}

	view, err := filter.Apply(table, sel)
	if err != nil {
		return s.stageFailed("filter", err)
	}
	kpis, err := aggregate.ComputeKPIs(view)
	if err != nil {
		return s.stageFailed("kpis", err)
	}
	scatter, err := aggregate.Scatter(view)
	if err != nil {
		return s.stageFailed("scatter", err)
	}
	boxes, err := aggregate.SkillsByStatus(view)
	if err != nil {
		return s.stageFailed("skills", err)
	}
	certs, err := aggregate.CertificationImpact(view)
	if err != nil {
		return s.stageFailed("certifications", err)
	}
	risk, err := aggregate.RiskBuckets(view)
	if err != nil {
		return s.stageFailed("risk", err)
	}
	features, err := aggregate.FeatureImportance(table, s.topFeatures)
	if err != nil {
		return s.stageFailed("importance", err)
	}
	bins, err := aggregate.ScoreHistogram(table, s.histogramBins)
	if err != nil {
		return s.stageFailed("histogram", err)
	}

	return types.Dashboard{
		Title:       pageTitle,
		Description: pageDescription,
		Selection:   selectionDTO(sel),
		Metrics:     metricTiles(kpis),
		Charts: types.Charts{
			Scatter:             scatterDTO(scatter),
			SkillsByStatus:      boxDTO(boxes),
			CertificationImpact: certDTO(certs),
			RiskDistribution:    riskDTO(risk),
			FeatureImportance:   featureDTO(features),
			ScoreHistogram:      binDTO(bins),
		},
		Recommendations: Recommendations(),
		Footer:          pageFooter,
	}, view.Len(), nil
}

func (s *Service) stageFailed(stage string, err error) (types.Dashboard, int, error) {
	metrics.RecordRenderError(stage)
	return types.Dashboard{}, 0, fmt.Errorf("service.dashboard: %s: %w", stage, err)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"dataPath":      s.dataPath,
		"topFeatures":   s.topFeatures,
		"histogramBins": s.histogramBins,
		"renderPasses":  s.passes.Load(),
		"failedPasses":  s.failedPasses.Load(),
		"chartsServed":  s.charts.Load(),
		"cachedTables":  s.cache.Len(),
	}

	if s.started {
		stats["rows"] = s.rows
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		metrics.UpdateTableRows(s.rows)
	}

	return stats
}
