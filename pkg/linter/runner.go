package linter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"mercator-hq/modellint/pkg/config"
	"mercator-hq/modellint/pkg/history"
	"mercator-hq/modellint/pkg/history/retention"
	"mercator-hq/modellint/pkg/nlu/parser"
	"mercator-hq/modellint/pkg/nlu/validator"
	"mercator-hq/modellint/pkg/telemetry/logging"
	"mercator-hq/modellint/pkg/telemetry/metrics"
	"mercator-hq/modellint/pkg/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// ModelExt is the file extension of model files.
const ModelExt = ".json"

// ErrNoModels is returned when locale discovery finds no model files.
var ErrNoModels = errors.New("no model files found")

// Runner lints the per-locale model files of a models directory.
// A Runner may be reused for many runs; runs share no state.
type Runner struct {
	dir         string
	locales     []string
	concurrency int

	parser    *parser.Parser
	validator *validator.Validator

	logger   *logging.Logger
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	store    history.Store
	pruner   *retention.Pruner
	progress Progress

	now func() time.Time
}

// Option configures optional Runner collaborators.
type Option func(*Runner)

// WithLogger sets the logger for operational messages.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithMetrics records every run in collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(r *Runner) { r.metrics = collector }
}

// WithTracer creates a span per run and per locale.
func WithTracer(tracer *tracing.Tracer) Option {
	return func(r *Runner) { r.tracer = tracer }
}

// WithHistory saves every run to store and, when pruner is not nil,
// prunes old runs afterwards.
func WithHistory(store history.Store, pruner *retention.Pruner) Option {
	return func(r *Runner) {
		r.store = store
		r.pruner = pruner
	}
}

// Progress receives per-locale progress of a run. Advance may be called
// from several goroutines.
type Progress interface {
	Start(total int)
	Advance(locale string)
	Finish()
}

// WithProgress reports every linted locale to progress.
func WithProgress(progress Progress) Option {
	return func(r *Runner) { r.progress = progress }
}

// NewRunner creates a runner from the models and lint configuration.
func NewRunner(cfg *config.Config, opts ...Option) (*Runner, error) {
	disabled := make([]validator.Check, 0, len(cfg.Lint.DisabledChecks))
	for _, name := range cfg.Lint.DisabledChecks {
		check, err := validator.ParseCheck(name)
		if err != nil {
			return nil, err
		}
		disabled = append(disabled, check)
	}

	concurrency := cfg.Lint.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	r := &Runner{
		dir:         cfg.Models.Dir,
		locales:     cfg.Models.Locales,
		concurrency: concurrency,
		parser:      parser.NewParser().WithMaxFileSize(cfg.Models.MaxFileSize),
		validator:   validator.NewValidatorWithOptions(validator.Options{Disabled: disabled}),
		logger:      logging.Discard(),
		tracer:      tracing.Noop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = metrics.NewCollector(&config.MetricsConfig{}, nil)
	}

	return r, nil
}

// Dir returns the models directory.
func (r *Runner) Dir() string {
	return r.dir
}

// Run lints the given locales. With no locales it uses the configured
// locales, or discovers every model file in the models directory.
//
// A locale that cannot be parsed or has no intents is reported in its
// LocaleResult and never stops the other locales. Results are in locale
// order regardless of concurrency. Run only fails when no locale can be
// determined or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, locales []string) (*Report, error) {
	if len(locales) == 0 {
		locales = r.locales
	}
	if len(locales) == 0 {
		discovered, err := DiscoverLocales(r.dir)
		if err != nil {
			return nil, err
		}
		locales = discovered
	}

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: r.now(),
		ModelsDir: r.dir,
		Results:   make([]LocaleResult, len(locales)),
	}
	ctx = logging.WithRunID(ctx, report.RunID)

	revision, err := DetectRevision(r.dir)
	if err != nil {
		r.logger.DebugContext(ctx, "model revision unavailable", "error", err)
	}
	report.Revision = revision

	ctx, span := r.tracer.StartRun(ctx, tracing.RunInfo{
		ID:        report.RunID,
		ModelsDir: r.dir,
		Revision:  revision,
		Locales:   locales,
	})
	defer span.End()

	r.logger.InfoContext(ctx, "lint run started",
		"models_dir", r.dir,
		"locales", strings.Join(locales, ","),
		"revision", revision,
	)

	if r.progress != nil {
		r.progress.Start(len(locales))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, locale := range locales {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Results[i] = r.lintLocale(gctx, locale)
			if r.progress != nil {
				r.progress.Advance(locale)
			}
			return nil
		})
	}
	err = g.Wait()
	if r.progress != nil {
		r.progress.Finish()
	}
	if err != nil {
		tracing.Fail(span, "", err)
		return nil, fmt.Errorf("lint run cancelled: %w", err)
	}

	report.Duration = r.now().Sub(report.StartedAt)
	tracing.EndRun(span, report.WarningCount(), report.ErrorCount())
	r.metrics.RecordRun(report.Status(), report.Duration, report.WarningCount(), report.ErrorCount())

	r.logger.InfoContext(ctx, "lint run finished",
		"status", report.Status(),
		"warnings", report.WarningCount(),
		"errors", report.ErrorCount(),
		"duration", report.Duration,
	)

	r.record(ctx, report)

	return report, nil
}

// lintLocale parses and validates one locale.
func (r *Runner) lintLocale(ctx context.Context, locale string) LocaleResult {
	file := ModelPath(r.dir, locale)
	result := LocaleResult{Locale: locale, File: file}
	start := time.Now()

	ctx = logging.WithFile(logging.WithLocale(ctx, locale), file)
	ctx, span := r.tracer.StartLocale(ctx, locale, file)
	defer span.End()

	model, err := r.parser.Parse(file)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		r.fail(ctx, span, result)
		return result
	}
	r.logger.DebugContext(ctx, "model parsed",
		"intents", len(model.Intents),
		"entity_types", len(model.EntityTypes),
	)

	collector := validator.NewCollector()
	err = r.validator.Validate(model, locale, collector)
	result.Findings = collector.Findings()
	result.Err = err
	result.Duration = time.Since(start)

	for _, f := range result.Findings {
		r.metrics.RecordFinding(locale, string(f.Check), string(f.Code))
	}
	r.metrics.RecordLocale(locale, model.PhraseCount(), len(result.Findings), result.Duration)

	if err != nil {
		r.fail(ctx, span, result)
		return result
	}

	tracing.EndLocale(span, len(result.Findings))
	r.logger.DebugContext(ctx, "locale validated", "findings", len(result.Findings))
	return result
}

// fail records a fatal locale error.
func (r *Runner) fail(ctx context.Context, span trace.Span, result LocaleResult) {
	errType := result.ErrorType()
	r.metrics.RecordLocaleError(result.Locale, errType)
	tracing.Fail(span, errType, result.Err)
	r.logger.WarnContext(ctx, "locale could not be linted",
		"error_type", errType,
		"error", firstLine(result.Err.Error()),
	)
}

// record saves the report to history and prunes old runs.
// History problems are logged and never fail the run.
func (r *Runner) record(ctx context.Context, report *Report) {
	if r.store == nil {
		return
	}

	if err := r.store.SaveRun(ctx, report.HistoryRun()); err != nil {
		r.logger.ErrorContext(ctx, "failed to save run to history", "error", err)
		return
	}

	if r.pruner != nil {
		if _, err := r.pruner.Prune(ctx); err != nil {
			r.logger.ErrorContext(ctx, "failed to prune history", "error", err)
		}
	}
}

// ModelPath returns the model file of locale inside dir.
func ModelPath(dir, locale string) string {
	return filepath.Join(dir, locale+ModelExt)
}

// DiscoverLocales returns the locale of every model file in dir, sorted.
func DiscoverLocales(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read models directory: %w", err)
	}

	var locales []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ModelExt || strings.HasPrefix(name, ".") {
			continue
		}
		locales = append(locales, strings.TrimSuffix(name, ModelExt))
	}
	if len(locales) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoModels, dir)
	}

	sort.Strings(locales)
	return locales, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
