package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mercator-hq/modellint/pkg/config"

	"github.com/robfig/cron/v3"
)

// Reasons passed to a LintFunc.
const (
	ReasonStartup  = "startup"
	ReasonChange   = "change"
	ReasonSchedule = "schedule"
)

// LintFunc lints the models. Errors are logged and never stop the service.
type LintFunc func(ctx context.Context, reason string) error

// Service re-lints the models on startup, whenever a model file changes,
// and optionally on a cron schedule. Lint runs never overlap.
type Service struct {
	dir    string
	config *config.WatchConfig
	lint   LintFunc
	logger *slog.Logger

	runMu sync.Mutex
	cron  *cron.Cron
	runs  int
	mu    sync.Mutex
}

// NewService creates a watch service for the models in dir.
func NewService(dir string, cfg *config.WatchConfig, lint LintFunc, logger *slog.Logger) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("watch config is nil")
	}
	if lint == nil {
		return nil, errors.New("lint function is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		dir:    dir,
		config: cfg,
		lint:   lint,
		logger: logger.With("component", "watch"),
		cron:   cron.New(),
	}, nil
}

// Run lints once and then watches until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	fwConfig := DefaultFileWatcherConfig()
	fwConfig.Dir = s.dir
	fwConfig.DebounceInterval = s.config.Debounce

	files, err := NewFileWatcher(fwConfig, s.logger)
	if err != nil {
		return err
	}
	defer files.Stop()

	s.trigger(ctx, ReasonStartup)

	if s.config.Schedule != "" {
		if _, err := s.cron.AddFunc(s.config.Schedule, func() { s.trigger(ctx, ReasonSchedule) }); err != nil {
			return fmt.Errorf("invalid watch schedule %q: %w", s.config.Schedule, err)
		}
		s.cron.Start()
		defer func() { <-s.cron.Stop().Done() }()

		s.logger.Info("scheduled lint enabled", "schedule", s.config.Schedule)
	}

	return files.Watch(ctx, func(changed []string) {
		s.logger.Info("model files changed", "files", changed)
		s.trigger(ctx, ReasonChange)
	})
}

// Runs returns how many lint runs have completed.
func (s *Service) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// NextScheduledRun returns the next scheduled lint, or nil without a schedule.
func (s *Service) NextScheduledRun() *time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}

// trigger runs one lint unless ctx is already done.
func (s *Service) trigger(ctx context.Context, reason string) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}

	if err := s.lint(ctx, reason); err != nil {
		s.logger.Error("lint failed", "reason", reason, "error", err)
	}

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
}
