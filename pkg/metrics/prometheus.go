// Package metrics provides Prometheus metrics for the placement analytics service.
package metrics

import (
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Pipeline metrics
	renderPasses       prometheus.Counter
	renderLatency      prometheus.Histogram
	renderErrors       *prometheus.CounterVec
	emptyViews         prometheus.Counter
	filteredRows       prometheus.Gauge
	chartRenders       *prometheus.CounterVec
	chartRenderLatency *prometheus.HistogramVec

	// Loader metrics
	tableRows        prometheus.Gauge
	tableLoadLatency prometheus.Histogram
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager and the custom registry it writes to. The registry
// avoids the default Go metrics.
var (
	globalManager  atomic.Pointer[Manager]             //nolint:gochecknoglobals // intentional global for singleton metrics manager
	customRegistry atomic.Pointer[prometheus.Registry] //nolint:gochecknoglobals // intentional global for metrics registry
)

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	if err := Configure(); err != nil {
		panic(err)
	}
}

// Configure replaces the global metrics with a manager built from opts on a
// fresh registry. Call it once at startup, before serving. On error the
// previous metrics stay in place.
func Configure(opts ...Option) (err error) {
	registry := prometheus.NewRegistry()
	defer func() {
		// Prometheus panics on invalid names, labels and buckets.
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidOption, r)
		}
	}()

	m := NewManager(append(opts, WithPrometheusRegistry(registry))...)
	globalManager.Store(m)
	customRegistry.Store(registry)
	return nil
}

func manager() *Manager { return globalManager.Load() }

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hirelens",
		subsystem:        "dashboard",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.renderPasses = auto.NewCounter(m.counterOpts("render_passes_total",
		"Total number of filter and aggregate passes"))
	m.renderLatency = auto.NewHistogram(m.histogramOpts("render_latency_milliseconds",
		"Duration of a full filter and aggregate pass", m.histogramBuckets))
	m.renderErrors = auto.NewCounterVec(m.counterOpts("render_errors_total",
		"Passes that failed, by pipeline stage"), []string{"stage"})
	m.emptyViews = auto.NewCounter(m.counterOpts("empty_views_total",
		"Passes whose filtered view had no rows"))
	m.filteredRows = auto.NewGauge(m.gaugeOpts("filtered_rows",
		"Row count of the most recent filtered view"))
	m.chartRenders = auto.NewCounterVec(m.counterOpts("chart_renders_total",
		"Rendered chart images by chart"), []string{"chart"})
	m.chartRenderLatency = auto.NewHistogramVec(m.histogramOpts("chart_render_latency_milliseconds",
		"Chart image render duration", m.histogramBuckets), []string{"chart"})

	m.tableRows = auto.NewGauge(m.gaugeOpts("table_rows",
		"Rows in the loaded candidate table"))
	m.tableLoadLatency = auto.NewHistogram(m.histogramOpts("table_load_latency_milliseconds",
		"Time spent reading and parsing the data file", m.histogramBuckets))
	m.cacheHits = auto.NewCounter(m.counterOpts("table_cache_hits_total",
		"Table lookups served from the memo cache"))
	m.cacheMisses = auto.NewCounter(m.counterOpts("table_cache_misses_total",
		"Table lookups that triggered a load"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(m.counterOpts("errors_by_component_total",
		"Total number of errors by component"), []string{"component", "error_type"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total",
		"Total number of errors by type"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts("error_latency_milliseconds",
		"Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes",
		"System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count",
		"Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordRenderPass counts one completed pass and its duration.
func RecordRenderPass(latencyMs float64, rows int) {
	manager().renderPasses.Inc()
	manager().renderLatency.Observe(latencyMs)
	manager().filteredRows.Set(float64(rows))
	if rows == 0 {
		manager().emptyViews.Inc()
	}
}

// RecordRenderError counts a failed pass at the given stage.
func RecordRenderError(stage string) {
	manager().renderErrors.WithLabelValues(stage).Inc()
}

// RecordChartRender counts a rendered chart image.
func RecordChartRender(chart string, latencyMs float64) {
	manager().chartRenders.WithLabelValues(chart).Inc()
	manager().chartRenderLatency.WithLabelValues(chart).Observe(latencyMs)
}

// UpdateTableRows sets the loaded table size.
func UpdateTableRows(count int) {
	manager().tableRows.Set(float64(count))
}

// RecordTableLoadLatency records the data file load time.
func RecordTableLoadLatency(latencyMs float64) {
	manager().tableLoadLatency.Observe(latencyMs)
}

// RecordCacheHit counts a memoised table lookup.
func RecordCacheHit() {
	manager().cacheHits.Inc()
}

// RecordCacheMiss counts a table lookup that loaded the file.
func RecordCacheMiss() {
	manager().cacheMisses.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	manager().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	manager().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error by component.
func RecordErrorByComponent(component, errorType string) {
	manager().errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	manager().errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	manager().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that failed.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	manager().errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	manager().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	manager().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records an average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	manager().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry used for the global metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry.Load()
}

// CounterValue returns the current value of a counter in the global registry.
// name is the metric name without namespace and subsystem, e.g. "render_passes_total".
func CounterValue(name string) (float64, error) {
	m := manager()
	full := prometheus.BuildFQName(m.namespace, m.subsystem, name)
	families, err := GetRegistry().Gather()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrObserveFailed, err)
	}
	for _, mf := range families {
		if mf.GetName() != full {
			continue
		}
		var total float64
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				total += c.GetValue()
			}
		}
		return total, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrNotGathered, full)
}
