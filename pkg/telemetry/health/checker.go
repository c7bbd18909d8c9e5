package health

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status values of checks and of the whole process.
const (
	StatusOK        = "ok"
	StatusReady     = "ready"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// DefaultCheckTimeout bounds each readiness check.
const DefaultCheckTimeout = 5 * time.Second

var errCheckTimeout = errors.New("health check timeout")

// CheckFunc returns nil when a dependency of the watch process is usable.
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of one check.
type CheckResult struct {
	Status   string        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration_ms,omitempty"`
}

// HealthStatus is the body of the /health and /ready responses.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Uptime    string                 `json:"uptime,omitempty"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

type namedCheck struct {
	name  string
	check CheckFunc
}

// Checker runs the readiness checks of the watch process: models directory,
// last lint run and history store.
type Checker struct {
	timeout time.Duration
	started time.Time

	mu     sync.RWMutex
	checks []namedCheck // sorted by name
}

// New returns a Checker bounding each check by timeout, or by
// DefaultCheckTimeout when timeout is not positive.
func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Checker{timeout: timeout, started: time.Now()}
}

// RegisterCheck adds check under name, replacing an earlier check of the
// same name.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, found := slices.BinarySearchFunc(c.checks, name, func(nc namedCheck, name string) int {
		switch {
		case nc.name < name:
			return -1
		case nc.name > name:
			return 1
		}
		return 0
	})
	if found {
		c.checks[i].check = check
		return
	}
	c.checks = slices.Insert(c.checks, i, namedCheck{name: name, check: check})
}

// ListChecks returns the registered check names in sorted order.
func (c *Checker) ListChecks() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.checks))
	for i, nc := range c.checks {
		names[i] = nc.name
	}
	return names
}

// CheckLiveness reports that the process is up.
func (c *Checker) CheckLiveness(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    StatusOK,
		Uptime:    time.Since(c.started).Round(time.Second).String(),
		Timestamp: time.Now(),
	}
}

// CheckReadiness runs every check in parallel. The process is ready when
// all of them pass, degraded otherwise.
func (c *Checker) CheckReadiness(ctx context.Context) HealthStatus {
	c.mu.RLock()
	checks := slices.Clone(c.checks)
	c.mu.RUnlock()

	results := make([]CheckResult, len(checks))
	var g errgroup.Group
	for i, nc := range checks {
		g.Go(func() error {
			results[i] = c.run(ctx, nc.check)
			return nil
		})
	}
	_ = g.Wait()

	status := HealthStatus{
		Status:    StatusReady,
		Checks:    make(map[string]CheckResult, len(checks)),
		Timestamp: time.Now(),
	}
	for i, nc := range checks {
		status.Checks[nc.name] = results[i]
		if results[i].Status != StatusOK {
			status.Status = StatusDegraded
		}
	}
	return status
}

// run executes check, giving up after the checker timeout even when the
// check ignores its context.
func (c *Checker) run(ctx context.Context, check CheckFunc) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- check(ctx) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = errCheckTimeout
	}

	result := CheckResult{Status: StatusOK, Duration: time.Since(start)}
	if err != nil {
		result.Status = StatusUnhealthy
		result.Message = err.Error()
	}
	return result
}
