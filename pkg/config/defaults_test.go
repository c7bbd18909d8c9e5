package config

import (
	"testing"
	"time"
)

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Models: ModelsConfig{Dir: "nlu/models", MaxFileSize: 1024},
		Lint:   LintConfig{Format: "json", Concurrency: 8},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{Level: "debug", Format: "json"},
			Metrics: MetricsConfig{Namespace: "ci", DurationBuckets: []float64{1, 2}},
		},
		History: HistoryConfig{Driver: "sqlite3", Path: "h.db", RetentionDays: -1},
		Watch:   WatchConfig{Debounce: time.Second},
	}

	ApplyDefaults(cfg)

	if cfg.Models.Dir != "nlu/models" || cfg.Models.MaxFileSize != 1024 {
		t.Errorf("Models overwritten: %+v", cfg.Models)
	}
	if cfg.Lint.Format != "json" || cfg.Lint.Concurrency != 8 {
		t.Errorf("Lint overwritten: %+v", cfg.Lint)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Metrics.Namespace != "ci" {
		t.Errorf("Telemetry overwritten: %+v", cfg.Telemetry)
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) != 2 {
		t.Errorf("DurationBuckets overwritten: %v", cfg.Telemetry.Metrics.DurationBuckets)
	}
	if cfg.History.Driver != "sqlite3" || cfg.History.RetentionDays != -1 {
		t.Errorf("History overwritten: %+v", cfg.History)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Watch.Debounce = %v, want 1s", cfg.Watch.Debounce)
	}
}

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"models.dir", cfg.Models.Dir, DefaultModelsDir},
		{"lint.format", cfg.Lint.Format, DefaultLintFormat},
		{"telemetry.logging.level", cfg.Telemetry.Logging.Level, DefaultLogLevel},
		{"telemetry.logging.format", cfg.Telemetry.Logging.Format, DefaultLogFormat},
		{"telemetry.metrics.namespace", cfg.Telemetry.Metrics.Namespace, DefaultMetricsNamespace},
		{"telemetry.tracing.sampler", cfg.Telemetry.Tracing.Sampler, DefaultTracingSampler},
		{"telemetry.tracing.sample_ratio", cfg.Telemetry.Tracing.SampleRatio, DefaultTracingSampleRatio},
		{"telemetry.tracing.timeout", cfg.Telemetry.Tracing.Timeout, DefaultTracingTimeout},
		{"history.path", cfg.History.Path, DefaultHistoryPath},
		{"history.retention_days", cfg.History.RetentionDays, DefaultHistoryRetentionDays},
		{"history.prune_schedule", cfg.History.PruneSchedule, DefaultHistoryPruneSchedule},
		{"history.busy_timeout", cfg.History.BusyTimeout, DefaultHistoryBusyTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_BucketsAreCopied(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Telemetry.Metrics.DurationBuckets[0] = 42

	if DefaultDurationBuckets[0] == 42 {
		t.Error("ApplyDefaults shared the DefaultDurationBuckets slice")
	}
}
