package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"mercator-hq/modellint/pkg/config"
)

type lintRecorder struct {
	mu      sync.Mutex
	reasons []string
	calls   chan string
}

func newLintRecorder() *lintRecorder {
	return &lintRecorder{calls: make(chan string, 20)}
}

func (r *lintRecorder) lint(ctx context.Context, reason string) error {
	r.mu.Lock()
	r.reasons = append(r.reasons, reason)
	r.mu.Unlock()
	r.calls <- reason
	return nil
}

func waitForReason(t *testing.T, calls <-chan string, want string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case reason := <-calls:
			if reason == want {
				return
			}
		case <-deadline:
			t.Fatalf("no lint with reason %q", want)
		}
	}
}

func TestNewService_Validation(t *testing.T) {
	rec := newLintRecorder()
	if _, err := NewService("models", nil, rec.lint, nil); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := NewService("models", &config.WatchConfig{}, nil, nil); err == nil {
		t.Error("expected error for nil lint function")
	}
}

func TestService_Run(t *testing.T) {
	dir := t.TempDir()
	rec := newLintRecorder()
	svc, err := NewService(dir, &config.WatchConfig{Debounce: 50 * time.Millisecond}, rec.lint, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	waitForReason(t, rec.calls, ReasonStartup)

	// Wait for watcher to start
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "de.json"), []byte(testModel), 0o644); err != nil {
		t.Fatal(err)
	}
	waitForReason(t, rec.calls, ReasonChange)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if svc.Runs() < 2 {
		t.Errorf("Runs() = %d, want at least 2", svc.Runs())
	}
	if svc.NextScheduledRun() != nil {
		t.Error("expected no scheduled run without a schedule")
	}
}

func TestService_InvalidSchedule(t *testing.T) {
	rec := newLintRecorder()
	svc, err := NewService(t.TempDir(), &config.WatchConfig{Schedule: "every minute"}, rec.lint, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Run(context.Background()); err == nil {
		t.Error("expected error for invalid schedule")
	}
}

func TestService_Schedule(t *testing.T) {
	rec := newLintRecorder()
	svc, err := NewService(t.TempDir(), &config.WatchConfig{Schedule: "@every 1s"}, rec.lint, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Run(ctx) }()

	waitForReason(t, rec.calls, ReasonStartup)
	waitForReason(t, rec.calls, ReasonSchedule)
}
