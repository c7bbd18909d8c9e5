package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the pruner on its policy Schedule, a standard five-field
// cron expression such as "0 3 * * *". A prune still running when the next
// one is due is not started twice.
type Scheduler struct {
	pruner *Pruner

	mu   sync.Mutex
	cron *cron.Cron // nil while stopped
}

// NewScheduler returns a stopped scheduler for pruner.
func NewScheduler(pruner *Pruner) *Scheduler {
	return &Scheduler{pruner: pruner}
}

// Start schedules pruning until Stop is called or ctx is cancelled.
// Without a Schedule it does nothing. Starting a running scheduler
// is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	spec := s.pruner.policy.Schedule
	if spec == "" {
		s.pruner.logger.Debug("no prune schedule configured")
		return nil
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", spec, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return nil
	}

	log := cronLogger{s.pruner.logger}
	c := cron.New(
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)
	c.Schedule(schedule, cron.FuncJob(func() {
		if _, err := s.pruner.Prune(ctx); err != nil {
			s.pruner.logger.Error("scheduled pruning failed", "error", err)
		}
	}))
	c.Start()
	s.cron = c

	s.pruner.logger.Info("retention scheduler started",
		"schedule", spec,
		"retention_days", s.pruner.policy.RetentionDays,
		"max_runs", s.pruner.policy.MaxRuns,
	)

	context.AfterFunc(ctx, s.Stop)
	return nil
}

// Stop stops scheduling and waits for a running prune to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
	s.pruner.logger.Info("retention scheduler stopped")
}

// IsRunning reports whether pruning is scheduled.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil
}

// NextRun returns when the next prune is due, or nil while stopped.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}

// cronLogger routes cron's own messages to slog. Routine scheduling
// messages are debug level.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
