package logging

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	for _, cfg := range []Config{
		{},
		{Level: "info", Format: "json"},
		{Level: "DEBUG", Format: "text"},
		{Level: "warn", Format: "Console"},
	} {
		cfg.Writer = io.Discard
		if _, err := New(cfg); err != nil {
			t.Errorf("New(%q, %q) error = %v", cfg.Level, cfg.Format, err)
		}
	}

	for _, cfg := range []Config{
		{Level: "loud"},
		{Format: "xml"},
	} {
		if _, err := New(cfg); err == nil {
			t.Errorf("New(%q, %q) succeeded, want error", cfg.Level, cfg.Format)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	emit := map[slog.Level]func(*Logger, string, ...any){
		slog.LevelDebug: (*Logger).Debug,
		slog.LevelInfo:  (*Logger).Info,
		slog.LevelWarn:  (*Logger).Warn,
		slog.LevelError: (*Logger).Error,
	}

	for _, threshold := range []string{"debug", "info", "warn", "error"} {
		floor, err := parseLevel(threshold)
		if err != nil {
			t.Fatal(err)
		}
		for level, log := range emit {
			var buf bytes.Buffer
			logger, err := New(Config{Level: threshold, Format: "json", Writer: &buf})
			if err != nil {
				t.Fatal(err)
			}
			log(logger, "locale linted")

			if got, want := buf.Len() > 0, level >= floor; got != want {
				t.Errorf("threshold %s, %s record written = %v, want %v", threshold, level, got, want)
			}
		}
	}
}

func TestLogger_StructuredFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.With("component", "runner").Info("Run finished",
		"locales", 3,
		"warnings", 7,
		"strict", true,
	)

	output := buf.String()
	for _, field := range []string{`"msg":"Run finished"`, `"component":"runner"`, `"locales":3`, `"warnings":7`, `"strict":true`} {
		if !strings.Contains(output, field) {
			t.Errorf("Expected field %q not found in output: %s", field, output)
		}
	}
}

func TestLogger_ConsoleFormatDropsTime(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "console", Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Info("hello")
	if strings.Contains(buf.String(), "time=") {
		t.Errorf("console output should not contain time: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("console output missing message: %s", buf.String())
	}
}

func TestLogger_Enabled(t *testing.T) {
	logger, err := New(Config{Level: "warn", Writer: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if logger.Enabled(slog.LevelInfo) {
		t.Error("Enabled(info) = true at warn level")
	}
	if !logger.Enabled(slog.LevelError) {
		t.Error("Enabled(error) = false at warn level")
	}
	if Discard().Enabled(slog.LevelError) {
		t.Error("Discard() logger should not be enabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
