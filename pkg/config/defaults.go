package config

import "time"

// Default values for configuration fields.
const (
	// Models defaults
	DefaultModelsDir   = "models"
	DefaultMaxFileSize = int64(10 * 1024 * 1024) // 10MB

	// Lint defaults
	DefaultLintFormat      = "text"
	DefaultLintConcurrency = 1

	// Logging defaults
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "console"

	// Metrics defaults
	DefaultMetricsNamespace = "modellint"

	// Tracing defaults
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingServiceName = "modellint"
	DefaultTracingTimeout     = 10 * time.Second

	// History defaults
	DefaultHistoryDriver        = "sqlite"
	DefaultHistoryPath          = ".modellint/history.db"
	DefaultHistoryRetentionDays = 30
	DefaultHistoryPruneSchedule = "0 3 * * *"
	DefaultHistoryBusyTimeout   = 5 * time.Second

	// Watch defaults
	DefaultWatchDebounce = 200 * time.Millisecond
)

// DefaultDurationBuckets are the run duration histogram buckets in seconds.
var DefaultDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// ApplyDefaults fills zero-valued fields with their defaults.
// Fields that are already set are left unchanged.
func ApplyDefaults(cfg *Config) {
	applyModelsDefaults(&cfg.Models)
	applyLintDefaults(&cfg.Lint)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyHistoryDefaults(&cfg.History)
	applyWatchDefaults(&cfg.Watch)
}

func applyModelsDefaults(cfg *ModelsConfig) {
	if cfg.Dir == "" {
		cfg.Dir = DefaultModelsDir
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
}

func applyLintDefaults(cfg *LintConfig) {
	if cfg.Format == "" {
		cfg.Format = DefaultLintFormat
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultLintConcurrency
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(cfg.Metrics.DurationBuckets) == 0 {
		cfg.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Tracing.Timeout == 0 {
		cfg.Tracing.Timeout = DefaultTracingTimeout
	}
}

func applyHistoryDefaults(cfg *HistoryConfig) {
	if cfg.Driver == "" {
		cfg.Driver = DefaultHistoryDriver
	}
	if cfg.Path == "" {
		cfg.Path = DefaultHistoryPath
	}
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = DefaultHistoryRetentionDays
	}
	if cfg.PruneSchedule == "" {
		cfg.PruneSchedule = DefaultHistoryPruneSchedule
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = DefaultHistoryBusyTimeout
	}
}

func applyWatchDefaults(cfg *WatchConfig) {
	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultWatchDebounce
	}
}

// NewDefaultConfig returns a configuration with all defaults applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
