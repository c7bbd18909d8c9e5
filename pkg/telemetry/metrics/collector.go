package metrics

import (
	"time"

	"mercator-hq/modellint/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Run status label values.
const (
	StatusClean    = "clean"
	StatusWarnings = "warnings"
	StatusFailed   = "failed"
)

// Collector is the entry point for all Prometheus metrics of a lint process.
// It owns the registry and forwards recordings to the run and locale metric
// groups. When metrics are disabled every Record method is a no-op.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Run metrics
	runMetrics *RunMetrics

	// Per-locale metrics
	localeMetrics *LocaleMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is used.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	defer collector.WriteTextfile(cfg.Telemetry.Metrics.Textfile)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	return &Collector{
		config:        cfg,
		registry:      registry,
		runMetrics:    NewRunMetrics(cfg, registry),
		localeMetrics: NewLocaleMetrics(cfg, registry),
	}
}

// Enabled reports whether recordings are kept.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// RecordRun records the outcome of a whole lint run.
//
// Example:
//
//	collector.RecordRun(metrics.StatusWarnings, 12*time.Millisecond, 4, 0)
func (c *Collector) RecordRun(status string, duration time.Duration, warnings, errors int) {
	if !c.config.Enabled {
		return
	}
	c.runMetrics.RecordRun(status, duration, warnings, errors)
}

// RecordLocale records a validated locale: its phrase count, the number of
// warnings it produced and how long parsing and validation took.
func (c *Collector) RecordLocale(locale string, phrases, findings int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.localeMetrics.RecordLocale(locale, phrases, findings, duration)
}

// RecordFinding counts one warning.
//
// Parameters:
//   - locale: model locale (e.g., "de")
//   - check: check that produced it (e.g., "duplicate-phrases")
//   - code: warning code (e.g., "duplicate-phrase")
func (c *Collector) RecordFinding(locale, check, code string) {
	if !c.config.Enabled {
		return
	}
	c.localeMetrics.findingsTotal.WithLabelValues(locale, check, code).Inc()
}

// RecordLocaleError counts a fatal locale error by error type
// ("syntax", "structural", "io").
func (c *Collector) RecordLocaleError(locale, errorType string) {
	if !c.config.Enabled {
		return
	}
	c.localeMetrics.errorsTotal.WithLabelValues(locale, errorType).Inc()
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
