package config

import "time"

// Config is the root configuration structure for modellint.
// It contains the model location, lint behaviour, telemetry, run history
// and watch mode settings.
type Config struct {
	// Models describes where the per-locale model files live.
	Models ModelsConfig `yaml:"models"`

	// Lint controls which checks run and how results are reported.
	Lint LintConfig `yaml:"lint"`

	// Telemetry contains logging, metrics and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// History configures persistence of lint runs.
	History HistoryConfig `yaml:"history"`

	// Watch configures the watch command.
	Watch WatchConfig `yaml:"watch"`
}

// ModelsConfig describes the model files to lint.
type ModelsConfig struct {
	// Dir is the directory containing one <locale>.json file per locale.
	// Default: "models"
	Dir string `yaml:"dir" validate:"required"`

	// Locales lists the locales to lint. When empty, every *.json file in
	// Dir is linted, in sorted order.
	Locales []string `yaml:"locales" validate:"dive,locale"`

	// MaxFileSize is the largest model file accepted, in bytes.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size" validate:"gt=0"`
}

// LintConfig controls the checks and the report.
type LintConfig struct {
	// Strict makes any warning fail the run.
	// Default: false
	Strict bool `yaml:"strict"`

	// Format is the report format.
	// Options: "text", "json", "csv"
	// Default: "text"
	Format string `yaml:"format" validate:"oneof=text json csv"`

	// Concurrency is the number of locales validated in parallel.
	// Default: 1
	Concurrency int `yaml:"concurrency" validate:"gte=1,lte=64"`

	// DisabledChecks lists checks that are skipped.
	// Options: "duplicate-phrases", "duplicate-entities", "phrase-whitespace",
	// "entity-whitespace", "brackets"
	DisabledChecks []string `yaml:"disabled_checks" validate:"dive,oneof=duplicate-phrases duplicate-entities phrase-whitespace entity-whitespace brackets"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format" validate:"oneof=json text console"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "modellint"
	Namespace string `yaml:"namespace"`

	// Textfile is an optional path where metrics are written after each run
	// in the Prometheus text format, for the node exporter textfile collector.
	Textfile string `yaml:"textfile"`

	// ListenAddress serves /metrics while the watch command runs.
	// Empty disables the endpoint.
	ListenAddress string `yaml:"listen_address" validate:"omitempty,hostname_port"`

	// DurationBuckets defines histogram buckets for run duration (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler is the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler" validate:"oneof=always never ratio"`

	// SampleRatio is the fraction of runs sampled with the "ratio" sampler.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio" validate:"gte=0,lte=1"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "modellint"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS towards the collector.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// HistoryConfig configures persistence of lint runs.
type HistoryConfig struct {
	// Enabled controls whether runs are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Driver selects the SQLite driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo), "memory"
	// Default: "sqlite"
	Driver string `yaml:"driver" validate:"oneof=sqlite sqlite3 memory"`

	// Path is the database file.
	// Default: ".modellint/history.db"
	Path string `yaml:"path"`

	// RetentionDays deletes runs older than this many days.
	// -1 keeps runs forever.
	// Default: 30
	RetentionDays int `yaml:"retention_days" validate:"gte=-1"`

	// MaxRuns keeps at most this many of the newest runs (0 = unlimited).
	// Default: 0
	MaxRuns int `yaml:"max_runs" validate:"gte=0"`

	// PruneSchedule is a cron expression for pruning in long-running mode.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	// Debounce is how long to wait for more file events before re-linting.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`

	// Schedule is an optional cron expression that re-lints periodically.
	Schedule string `yaml:"schedule"`
}
