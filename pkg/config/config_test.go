package config

import (
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Models.Dir != DefaultModelsDir {
		t.Errorf("Models.Dir = %q, want %q", cfg.Models.Dir, DefaultModelsDir)
	}
	if cfg.Models.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("Models.MaxFileSize = %d, want %d", cfg.Models.MaxFileSize, DefaultMaxFileSize)
	}
	if cfg.Lint.Format != "text" {
		t.Errorf("Lint.Format = %q, want %q", cfg.Lint.Format, "text")
	}
	if cfg.Lint.Concurrency != 1 {
		t.Errorf("Lint.Concurrency = %d, want 1", cfg.Lint.Concurrency)
	}
	if cfg.History.Driver != "sqlite" {
		t.Errorf("History.Driver = %q, want %q", cfg.History.Driver, "sqlite")
	}
	if cfg.Watch.Debounce != 200*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 200ms", cfg.Watch.Debounce)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}
