// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and HIRELENS_* env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// ReadTimeoutMS and WriteTimeoutMS bound HTTP request handling.
	ReadTimeoutMS  int `koanf:"read_timeout_ms" validate:"min=1"`
	WriteTimeoutMS int `koanf:"write_timeout_ms" validate:"min=1"`

	// ChartWidthPx and ChartHeightPx size rendered chart images.
	ChartWidthPx  int `koanf:"chart_width_px" validate:"min=100,max=4000"`
	ChartHeightPx int `koanf:"chart_height_px" validate:"min=100,max=4000"`

	// HistogramBins is the bin count of the probability score histogram.
	HistogramBins int `koanf:"histogram_bins" validate:"min=1,max=500"`

	// TopFeatures caps the feature importance ranking.
	TopFeatures int `koanf:"top_features" validate:"min=1"`

	// MetricsNamespace and MetricsSubsystem prefix every Prometheus metric.
	MetricsNamespace string `koanf:"metrics_namespace" validate:"omitempty,promname"`
	MetricsSubsystem string `koanf:"metrics_subsystem" validate:"omitempty,promname"`

	// MetricsLatencyBucketsMS overrides the latency histogram buckets. YAML only.
	MetricsLatencyBucketsMS []float64 `koanf:"metrics_latency_buckets_ms" validate:"omitempty,dive,gt=0"`

	// MetricsLabels are constant labels added to every metric. YAML only.
	MetricsLabels map[string]string `koanf:"metrics_labels" validate:"omitempty,dive,keys,promname,endkeys,required"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8501",
		ReadTimeoutMS:  10_000,
		WriteTimeoutMS: 30_000,
		ChartWidthPx:   900,
		ChartHeightPx:  500,
		HistogramBins:  25,
		TopFeatures:    10,

		MetricsNamespace: "hirelens",
		MetricsSubsystem: "dashboard",
	}
}
