package linter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"mercator-hq/modellint/pkg/config"
	"mercator-hq/modellint/pkg/history"
	"mercator-hq/modellint/pkg/history/retention"
	"mercator-hq/modellint/pkg/nlu/validator"
	"mercator-hq/modellint/pkg/telemetry/metrics"
	"mercator-hq/modellint/pkg/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const cleanModel = `{"intents": {"I": {"phrases": ["hello"]}}, "entityTypes": {}}`

func testConfig(dir string) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Models.Dir = dir
	return cfg
}

// writeModels creates a models directory holding one file per locale.
func writeModels(t *testing.T, models map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for locale, content := range models {
		if err := os.WriteFile(ModelPath(dir, locale), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write model: %v", err)
		}
	}
	return dir
}

func newTestRunner(t *testing.T, cfg *config.Config, opts ...Option) *Runner {
	t.Helper()
	runner, err := NewRunner(cfg, opts...)
	if err != nil {
		t.Fatalf("NewRunner() failed: %v", err)
	}
	return runner
}

func TestRunner_Run(t *testing.T) {
	runner := newTestRunner(t, testConfig("testdata/models"))

	report, err := runner.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if report.RunID == "" {
		t.Error("expected a run ID")
	}
	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}
	if report.Results[0].Locale != "de" || report.Results[1].Locale != "en" {
		t.Errorf("locales = %s, %s, want de, en", report.Results[0].Locale, report.Results[1].Locale)
	}
	if got := len(report.Results[0].Findings); got != 4 {
		t.Errorf("de findings = %d, want 4", got)
	}
	if got := len(report.Results[1].Findings); got != 0 {
		t.Errorf("en findings = %d, want 0", got)
	}
	if report.WarningCount() != 4 || report.ErrorCount() != 0 {
		t.Errorf("warnings = %d, errors = %d, want 4, 0", report.WarningCount(), report.ErrorCount())
	}
	if report.Status() != history.StatusWarnings {
		t.Errorf("Status() = %q, want %q", report.Status(), history.StatusWarnings)
	}
}

func TestRunner_LocaleSelection(t *testing.T) {
	tests := []struct {
		name       string
		configured []string
		requested  []string
		want       []string
	}{
		{
			name: "discovered",
			want: []string{"de", "en"},
		},
		{
			name:       "configured",
			configured: []string{"en"},
			want:       []string{"en"},
		},
		{
			name:       "requested overrides configured",
			configured: []string{"en"},
			requested:  []string{"de", "en"},
			want:       []string{"de", "en"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("testdata/models")
			cfg.Models.Locales = tt.configured
			runner := newTestRunner(t, cfg)

			report, err := runner.Run(context.Background(), tt.requested)
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			if len(report.Results) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(report.Results), len(tt.want))
			}
			for i, locale := range tt.want {
				if report.Results[i].Locale != locale {
					t.Errorf("result[%d] locale = %q, want %q", i, report.Results[i].Locale, locale)
				}
			}
		})
	}
}

func TestRunner_FailedLocales(t *testing.T) {
	dir := writeModels(t, map[string]string{
		"a": `{"intents": {`,
		"b": `{"intents": {"I": {"phrases": ["hi "]}}, "entityTypes": {}}`,
		"c": `{"entityTypes": {"t": {"values": ["x", "X"]}}}`,
	})
	runner := newTestRunner(t, testConfig(dir))

	report, err := runner.Run(context.Background(), []string{"a", "b", "c", "missing"})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	tests := []struct {
		locale   string
		errType  string
		findings int
	}{
		{locale: "a", errType: "syntax", findings: 0},
		{locale: "b", errType: "", findings: 1},
		{locale: "c", errType: "structural", findings: 1},
		{locale: "missing", errType: "io", findings: 0},
	}
	for i, tt := range tests {
		res := report.Results[i]
		if res.Locale != tt.locale {
			t.Errorf("result[%d] locale = %q, want %q", i, res.Locale, tt.locale)
			continue
		}
		if got := res.ErrorType(); got != tt.errType {
			t.Errorf("%s: ErrorType() = %q, want %q", tt.locale, got, tt.errType)
		}
		if got := len(res.Findings); got != tt.findings {
			t.Errorf("%s: findings = %d, want %d", tt.locale, got, tt.findings)
		}
	}

	if report.ErrorCount() != 3 {
		t.Errorf("ErrorCount() = %d, want 3", report.ErrorCount())
	}
	if report.Status() != history.StatusFailed {
		t.Errorf("Status() = %q, want %q", report.Status(), history.StatusFailed)
	}
}

func TestRunner_ConcurrencyKeepsOrder(t *testing.T) {
	models := make(map[string]string)
	var locales []string
	for i := 0; i < 12; i++ {
		locale := fmt.Sprintf("l%02d", i)
		models[locale] = cleanModel
		locales = append(locales, locale)
	}
	cfg := testConfig(writeModels(t, models))
	cfg.Lint.Concurrency = 4
	runner := newTestRunner(t, cfg)

	report, err := runner.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	for i, locale := range locales {
		if report.Results[i].Locale != locale {
			t.Errorf("result[%d] locale = %q, want %q", i, report.Results[i].Locale, locale)
		}
	}
	if report.Status() != history.StatusClean {
		t.Errorf("Status() = %q, want clean", report.Status())
	}
}

func TestRunner_DisabledChecks(t *testing.T) {
	cfg := testConfig("testdata/models")
	cfg.Lint.DisabledChecks = []string{"phrase-whitespace", "brackets"}
	runner := newTestRunner(t, cfg)

	report, err := runner.Run(context.Background(), []string{"de"})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	for _, f := range report.Findings() {
		if f.Check == validator.CheckPhraseWhitespace || f.Check == validator.CheckBrackets {
			t.Errorf("disabled check reported %v", f)
		}
	}
	if got := report.WarningCount(); got != 2 {
		t.Errorf("WarningCount() = %d, want 2", got)
	}
}

func TestNewRunner_UnknownCheck(t *testing.T) {
	cfg := testConfig("testdata/models")
	cfg.Lint.DisabledChecks = []string{"spelling"}

	if _, err := NewRunner(cfg); err == nil {
		t.Error("expected error for unknown check")
	}
}

func TestRunner_Cancelled(t *testing.T) {
	runner := newTestRunner(t, testConfig("testdata/models"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunner_History(t *testing.T) {
	store := history.NewMemoryStore()
	pruner := retention.NewPruner(store, retention.Policy{MaxRuns: 2}, nil)
	runner := newTestRunner(t, testConfig("testdata/models"), WithHistory(store, pruner))
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	runner.now = func() time.Time {
		calls++
		return start.Add(time.Duration(calls) * time.Minute)
	}
	ctx := context.Background()

	var last *Report
	for i := 0; i < 3; i++ {
		report, err := runner.Run(ctx, nil)
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		last = report
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2 after pruning", count)
	}

	run, err := store.GetRun(ctx, last.RunID)
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}
	if run.Status != history.StatusWarnings || run.Warnings != 4 {
		t.Errorf("stored status = %q, warnings = %d", run.Status, run.Warnings)
	}
	if len(run.Locales) != 2 || len(run.Locales[0].Findings) != 4 {
		t.Errorf("stored locales = %+v", run.Locales)
	}
}

func TestRunner_HistoryFailureDoesNotFailRun(t *testing.T) {
	store := history.NewMemoryStore()
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	runner := newTestRunner(t, testConfig("testdata/models"), WithHistory(store, nil))

	if _, err := runner.Run(context.Background(), nil); err != nil {
		t.Errorf("Run() failed on history error: %v", err)
	}
}

func TestRunner_Metrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true}, registry)
	dir := writeModels(t, map[string]string{
		"de": `{"intents": {"A": {"phrases": ["x", " y", "{z"]}}}`,
		"fr": `not json`,
	})
	runner := newTestRunner(t, testConfig(dir), WithMetrics(collector))

	if _, err := runner.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	tests := []struct {
		metric string
		want   int
	}{
		{metric: "modellint_runs_total", want: 1},
		{metric: "modellint_findings_total", want: 2},
		{metric: "modellint_locale_errors_total", want: 1},
		{metric: "modellint_model_phrases", want: 1},
	}
	for _, tt := range tests {
		got, err := testutil.GatherAndCount(registry, tt.metric)
		if err != nil {
			t.Fatalf("GatherAndCount(%s) failed: %v", tt.metric, err)
		}
		if got != tt.want {
			t.Errorf("%s series = %d, want %d", tt.metric, got, tt.want)
		}
	}
}

func TestRunner_Tracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tracer, err := tracing.NewWithExporter(&config.TracingConfig{
		Enabled:     true,
		Sampler:     tracing.SamplerAlways,
		ServiceName: "modellint-test",
	}, "test", exporter)
	if err != nil {
		t.Fatalf("NewWithExporter() failed: %v", err)
	}
	runner := newTestRunner(t, testConfig("testdata/models"), WithTracer(tracer))

	if _, err := runner.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if err := tracer.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}

	counts := make(map[string]int)
	for _, span := range exporter.GetSpans() {
		counts[span.Name]++
	}
	if counts[tracing.SpanRun] != 1 || counts[tracing.SpanLocale] != 2 {
		t.Errorf("span counts = %v, want 1 run and 2 locale spans", counts)
	}
}

func TestRunner_Duration(t *testing.T) {
	runner := newTestRunner(t, testConfig("testdata/models"))
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	runner.now = func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * time.Second)
	}

	report, err := runner.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !report.StartedAt.Equal(start) {
		t.Errorf("StartedAt = %v, want %v", report.StartedAt, start)
	}
	if report.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", report.Duration)
	}
}

func TestDiscoverLocales(t *testing.T) {
	dir := writeModels(t, map[string]string{
		"fr":      cleanModel,
		"de":      cleanModel,
		".hidden": cleanModel,
	})
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	locales, err := DiscoverLocales(dir)
	if err != nil {
		t.Fatalf("DiscoverLocales() failed: %v", err)
	}
	if len(locales) != 2 || locales[0] != "de" || locales[1] != "fr" {
		t.Errorf("locales = %v, want [de fr]", locales)
	}
}

func TestDiscoverLocales_Errors(t *testing.T) {
	if _, err := DiscoverLocales(t.TempDir()); !errors.Is(err, ErrNoModels) {
		t.Errorf("empty dir error = %v, want ErrNoModels", err)
	}
	if _, err := DiscoverLocales(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing directory")
	}

	runner := newTestRunner(t, testConfig(t.TempDir()))
	if _, err := runner.Run(context.Background(), nil); !errors.Is(err, ErrNoModels) {
		t.Errorf("Run() error = %v, want ErrNoModels", err)
	}
}

func TestModelPath(t *testing.T) {
	if got := ModelPath("models", "de"); got != filepath.Join("models", "de.json") {
		t.Errorf("ModelPath() = %q", got)
	}
}

type recordingProgress struct {
	mu       sync.Mutex
	total    int
	advanced []string
	finished bool
}

func (p *recordingProgress) Start(total int) { p.total = total }

func (p *recordingProgress) Advance(locale string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advanced = append(p.advanced, locale)
}

func (p *recordingProgress) Finish() { p.finished = true }

func TestRunner_Progress(t *testing.T) {
	progress := &recordingProgress{}
	cfg := testConfig("testdata/models")
	cfg.Lint.Concurrency = 2
	runner := newTestRunner(t, cfg, WithProgress(progress))

	if _, err := runner.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if progress.total != 2 || len(progress.advanced) != 2 || !progress.finished {
		t.Errorf("progress = total %d, advanced %v, finished %v", progress.total, progress.advanced, progress.finished)
	}
}
