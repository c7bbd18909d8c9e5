package metrics

import (
	"time"

	"mercator-hq/modellint/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LocaleMetrics tracks per-locale results.
//
// Metrics:
//   - modellint_findings_total: Warnings by locale, check and code
//   - modellint_locale_errors_total: Fatal locale errors by type
//   - modellint_locale_duration_seconds: Parse and validation time per locale
//   - modellint_model_phrases: Phrase count of the last linted model
//   - modellint_locale_findings: Warnings of the last run per locale
type LocaleMetrics struct {
	findingsTotal  *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	phrases        *prometheus.GaugeVec
	localeFindings *prometheus.GaugeVec
}

// NewLocaleMetrics creates and registers locale metrics with the provided registry.
func NewLocaleMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LocaleMetrics {
	lm := &LocaleMetrics{
		findingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "findings_total",
				Help:      "Total number of lint warnings",
			},
			[]string{"locale", "check", "code"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "locale_errors_total",
				Help:      "Total number of locales that could not be linted",
			},
			[]string{"locale", "type"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "locale_duration_seconds",
				Help:      "Time spent parsing and validating one locale in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"locale"},
		),

		phrases: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "model_phrases",
				Help:      "Number of phrases in the last linted model",
			},
			[]string{"locale"},
		),

		localeFindings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "locale_findings",
				Help:      "Number of warnings in the last run per locale",
			},
			[]string{"locale"},
		),
	}

	registry.MustRegister(
		lm.findingsTotal,
		lm.errorsTotal,
		lm.duration,
		lm.phrases,
		lm.localeFindings,
	)

	return lm
}

// RecordLocale records a validated locale.
func (lm *LocaleMetrics) RecordLocale(locale string, phrases, findings int, duration time.Duration) {
	lm.duration.WithLabelValues(locale).Observe(duration.Seconds())
	lm.phrases.WithLabelValues(locale).Set(float64(phrases))
	lm.localeFindings.WithLabelValues(locale).Set(float64(findings))
}
