package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// DirCheck reports whether dir exists and can be listed.
func DirCheck(dir string) CheckFunc {
	return func(ctx context.Context) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("models directory unreadable: %w", err)
		}
		if len(entries) == 0 {
			return fmt.Errorf("models directory %q is empty", dir)
		}
		return nil
	}
}

// PingCheck adapts a store ping into a check.
func PingCheck(ping func(ctx context.Context) error) CheckFunc {
	return func(ctx context.Context) error {
		if err := ping(ctx); err != nil {
			return fmt.Errorf("history store unreachable: %w", err)
		}
		return nil
	}
}

// RunTracker remembers when the last lint run finished.
// The watch loop calls Finished after every run.
type RunTracker struct {
	mu   sync.RWMutex
	last time.Time
	err  error
}

// Finished records a completed run and its error, if any.
func (t *RunTracker) Finished(at time.Time, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last = at
	t.err = err
}

// Last returns the time of the last run and whether one has completed.
func (t *RunTracker) Last() (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.last, !t.last.IsZero()
}

// Check is unhealthy until a run has completed, or when the last run
// could not be carried out at all.
func (t *RunTracker) Check() CheckFunc {
	return func(ctx context.Context) error {
		t.mu.RLock()
		defer t.mu.RUnlock()

		if t.last.IsZero() {
			return errors.New("no lint run completed yet")
		}
		if t.err != nil {
			return fmt.Errorf("last lint run failed: %w", t.err)
		}
		return nil
	}
}
