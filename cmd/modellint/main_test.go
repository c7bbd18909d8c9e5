package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/modellint/pkg/cli"
)

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

// writeConfig writes a config file into a temporary directory.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modellint.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLint(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantErr    error
		exitCode   int
		wantStdout []string
		wantStderr []string
	}{
		{
			name:       "clean models",
			args:       []string{"lint", "--dir", "testdata/clean"},
			wantStdout: []string{cli.Banner, "1 locale(s), 0 warning(s), 0 error(s)"},
		},
		{
			name:       "warnings do not fail",
			args:       []string{"lint", "--dir", "testdata/models"},
			wantStdout: []string{"2 locale(s), 4 warning(s), 0 error(s)"},
			wantStderr: []string{"🔺 Warning: phrase 'test' is used in both intents 'AlphaIntent' and 'BetaIntent' in 'de' model. "},
		},
		{
			name:     "strict mode fails on warnings",
			args:     []string{"lint", "--dir", "testdata/models", "--strict"},
			wantErr:  cli.ErrStrictWarnings,
			exitCode: cli.ExitFailed,
		},
		{
			name:       "selected locale",
			args:       []string{"lint", "--dir", "testdata/models", "--strict", "en"},
			wantStdout: []string{"1 locale(s), 0 warning(s)"},
		},
		{
			name:       "disabled checks",
			args:       []string{"lint", "--dir", "testdata/models", "--strict", "--disable", "duplicate-phrases,duplicate-entities,phrase-whitespace,brackets"},
			wantStdout: []string{"0 warning(s)"},
		},
		{
			name:       "broken locale fails",
			args:       []string{"lint", "--dir", "testdata/broken"},
			wantErr:    cli.ErrLocaleFailed,
			exitCode:   cli.ExitFailed,
			wantStdout: []string{"2 locale(s), 0 warning(s), 1 error(s)"},
			wantStderr: []string{cli.ErrorPrefix + "fr: [syntax]"},
		},
		{
			name:     "unknown check",
			args:     []string{"lint", "--dir", "testdata/models", "--disable", "spelling"},
			exitCode: cli.ExitConfig,
		},
		{
			name:     "unknown format",
			args:     []string{"lint", "--dir", "testdata/models", "--format", "xml"},
			exitCode: cli.ExitConfig,
		},
		{
			name:     "missing models directory",
			args:     []string{"lint", "--dir", "testdata/absent"},
			exitCode: cli.ExitFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := executeCommand(t, context.Background(), tt.args...)

			if got := cli.ExitCode(err); got != tt.exitCode {
				t.Fatalf("exit code = %d, want %d (err = %v)", got, tt.exitCode, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout, want) {
					t.Errorf("stdout missing %q:\n%s", want, stdout)
				}
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr, want) {
					t.Errorf("stderr missing %q:\n%s", want, stderr)
				}
			}
		})
	}
}

func TestLint_JSONFormat(t *testing.T) {
	stdout, _, err := executeCommand(t, context.Background(), "lint", "--dir", "testdata/models", "--format", "json")
	if err != nil {
		t.Fatalf("lint failed: %v", err)
	}

	var doc struct {
		Status   string `json:"status"`
		Warnings int    `json:"warnings"`
		Results  []struct {
			Locale string `json:"locale"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if doc.Status != "warnings" || doc.Warnings != 4 || len(doc.Results) != 2 {
		t.Errorf("report = %+v", doc)
	}
}

func TestLint_ConfigFile(t *testing.T) {
	textfile := filepath.Join(t.TempDir(), "modellint.prom")
	cfgPath := writeConfig(t, `
models:
  dir: testdata/models
lint:
  strict: true
  format: csv
telemetry:
  metrics:
    enabled: true
    textfile: `+textfile+`
`)

	stdout, _, err := executeCommand(t, context.Background(), "lint", "--config", cfgPath)
	if !errors.Is(err, cli.ErrStrictWarnings) {
		t.Errorf("error = %v, want strict failure from config", err)
	}
	if !strings.HasPrefix(stdout, strings.Join(cli.ReportHeaders, ",")) {
		t.Errorf("expected CSV output, got:\n%s", stdout)
	}

	data, err := os.ReadFile(textfile)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
	if !strings.Contains(string(data), "modellint_runs_total") {
		t.Errorf("textfile missing run counter:\n%s", data)
	}
}

func TestLint_InvalidConfigFile(t *testing.T) {
	cfgPath := writeConfig(t, "lint:\n  concurrency: 0\n  format: xml\n")

	_, _, err := executeCommand(t, context.Background(), "lint", "--config", cfgPath)
	if cli.ExitCode(err) != cli.ExitConfig {
		t.Errorf("error = %v, want config error", err)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, context.Background(), "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	for _, want := range []string{"modellint " + Version, "Git Commit:", "Go Version:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = executeCommand(t, context.Background(), "version", "--short")
	if err != nil {
		t.Fatalf("version --short failed: %v", err)
	}
	if stdout != Version+"\n" {
		t.Errorf("version --short = %q, want %q", stdout, Version+"\n")
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			stdout, _, err := executeCommand(t, context.Background(), "completion", shell)
			if err != nil {
				t.Fatalf("completion %s failed: %v", shell, err)
			}
			if !strings.Contains(stdout, "modellint") {
				t.Errorf("completion script does not mention modellint")
			}
		})
	}

	_, _, err := executeCommand(t, context.Background(), "completion", "tcsh")
	if cli.ExitCode(err) != cli.ExitConfig {
		t.Errorf("unsupported shell error = %v, want config error", err)
	}
}
