package metrics

import (
	"time"

	"mercator-hq/modellint/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics tracks whole lint runs.
//
// Metrics:
//   - modellint_runs_total: Total runs by status
//   - modellint_run_duration_seconds: Run duration
//   - modellint_last_run_timestamp_seconds: Unix time the last run finished
//   - modellint_last_run_warnings: Warnings emitted by the last run
//   - modellint_last_run_errors: Locales that failed in the last run
type RunMetrics struct {
	runsTotal        *prometheus.CounterVec
	runDuration      prometheus.Histogram
	lastRunTimestamp prometheus.Gauge
	lastRunWarnings  prometheus.Gauge
	lastRunErrors    prometheus.Gauge
}

// NewRunMetrics creates and registers run metrics with the provided registry.
func NewRunMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RunMetrics {
	rm := &RunMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "runs_total",
				Help:      "Total number of lint runs",
			},
			[]string{"status"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of lint runs in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		lastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time at which the last lint run finished",
			},
		),

		lastRunWarnings: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "last_run_warnings",
				Help:      "Number of warnings emitted by the last lint run",
			},
		),

		lastRunErrors: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "last_run_errors",
				Help:      "Number of locales that failed in the last lint run",
			},
		),
	}

	registry.MustRegister(
		rm.runsTotal,
		rm.runDuration,
		rm.lastRunTimestamp,
		rm.lastRunWarnings,
		rm.lastRunErrors,
	)

	return rm
}

// RecordRun records a finished run.
func (rm *RunMetrics) RecordRun(status string, duration time.Duration, warnings, errors int) {
	rm.runsTotal.WithLabelValues(status).Inc()
	rm.runDuration.Observe(duration.Seconds())
	rm.lastRunTimestamp.SetToCurrentTime()
	rm.lastRunWarnings.Set(float64(warnings))
	rm.lastRunErrors.Set(float64(errors))
}
