package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of all environment variable overrides.
const EnvPrefix = "MODELLINT_"

// LoadConfig reads the YAML file at path, fills in defaults and validates
// the result. Environment variables are not consulted.
func LoadConfig(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return validated(cfg)
}

// LoadConfigWithEnvOverrides is LoadConfig with MODELLINT_SECTION_FIELD
// environment variables (e.g. MODELLINT_MODELS_DIR) applied on top of the
// file before validation.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg, os.Getenv)
	return validated(cfg)
}

// Load returns the configuration for a command run: path when given,
// otherwise the defaults, with environment overrides applied either way.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadConfigWithEnvOverrides(path)
	}
	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg, os.Getenv)
	return validated(cfg)
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

func validated(cfg *Config) (*Config, error) {
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// envOverride binds one environment variable, without EnvPrefix, to a
// config field. set reports whether the value could be parsed.
type envOverride struct {
	name string
	set  func(cfg *Config, val string) bool
}

var envOverrides = []envOverride{
	{"MODELS_DIR", func(c *Config, v string) bool { c.Models.Dir = v; return true }},
	{"MODELS_LOCALES", func(c *Config, v string) bool { c.Models.Locales = splitList(v); return true }},
	{"MODELS_MAX_FILE_SIZE", intVar(func(c *Config) *int64 { return &c.Models.MaxFileSize })},

	{"LINT_STRICT", boolVar(func(c *Config) *bool { return &c.Lint.Strict })},
	{"LINT_FORMAT", func(c *Config, v string) bool { c.Lint.Format = v; return true }},
	{"LINT_CONCURRENCY", intVar(func(c *Config) *int { return &c.Lint.Concurrency })},
	{"LINT_DISABLED_CHECKS", func(c *Config, v string) bool { c.Lint.DisabledChecks = splitList(v); return true }},

	{"TELEMETRY_LOGGING_LEVEL", func(c *Config, v string) bool { c.Telemetry.Logging.Level = v; return true }},
	{"TELEMETRY_LOGGING_FORMAT", func(c *Config, v string) bool { c.Telemetry.Logging.Format = v; return true }},
	{"TELEMETRY_METRICS_ENABLED", boolVar(func(c *Config) *bool { return &c.Telemetry.Metrics.Enabled })},
	{"TELEMETRY_METRICS_TEXTFILE", func(c *Config, v string) bool { c.Telemetry.Metrics.Textfile = v; return true }},
	{"TELEMETRY_METRICS_LISTEN_ADDRESS", func(c *Config, v string) bool { c.Telemetry.Metrics.ListenAddress = v; return true }},
	{"TELEMETRY_TRACING_ENABLED", boolVar(func(c *Config) *bool { return &c.Telemetry.Tracing.Enabled })},
	{"TELEMETRY_TRACING_ENDPOINT", func(c *Config, v string) bool { c.Telemetry.Tracing.Endpoint = v; return true }},
	{"TELEMETRY_TRACING_SAMPLE_RATIO", func(c *Config, v string) bool {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			c.Telemetry.Tracing.SampleRatio = f
		}
		return err == nil
	}},

	{"HISTORY_ENABLED", boolVar(func(c *Config) *bool { return &c.History.Enabled })},
	{"HISTORY_DRIVER", func(c *Config, v string) bool { c.History.Driver = v; return true }},
	{"HISTORY_PATH", func(c *Config, v string) bool { c.History.Path = v; return true }},
	{"HISTORY_RETENTION_DAYS", intVar(func(c *Config) *int { return &c.History.RetentionDays })},
	{"HISTORY_MAX_RUNS", intVar(func(c *Config) *int { return &c.History.MaxRuns })},

	{"WATCH_DEBOUNCE", func(c *Config, v string) bool {
		d, err := time.ParseDuration(v)
		if err == nil {
			c.Watch.Debounce = d
		}
		return err == nil
	}},
	{"WATCH_SCHEDULE", func(c *Config, v string) bool { c.Watch.Schedule = v; return true }},
}

// applyEnvOverrides copies every non-empty override from getenv into cfg
// and returns the variables whose values could not be parsed. Those leave
// their field unchanged.
func applyEnvOverrides(cfg *Config, getenv func(string) string) (ignored []string) {
	for _, o := range envOverrides {
		val := getenv(EnvPrefix + o.name)
		if val != "" && !o.set(cfg, val) {
			ignored = append(ignored, EnvPrefix+o.name)
		}
	}
	return ignored
}

func boolVar(field func(*Config) *bool) func(*Config, string) bool {
	return func(c *Config, v string) bool {
		b, err := strconv.ParseBool(v)
		if err == nil {
			*field(c) = b
		}
		return err == nil
	}
}

func intVar[T int | int64](field func(*Config) *T) func(*Config, string) bool {
	return func(c *Config, v string) bool {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			*field(c) = T(i)
		}
		return err == nil
	}
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(val string) []string {
	var out []string
	for part := range strings.SplitSeq(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
