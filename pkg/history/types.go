package history

import (
	"context"
	"time"

	"mercator-hq/modellint/pkg/nlu/validator"
)

// Run statuses.
const (
	StatusClean    = "clean"
	StatusWarnings = "warnings"
	StatusFailed   = "failed"
)

// Run is a stored lint run.
type Run struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	ModelsDir string        `json:"models_dir"`
	Revision  string        `json:"revision,omitempty"` // HEAD commit of the models repository
	Status    string        `json:"status"`
	Warnings  int           `json:"warnings"`
	Errors    int           `json:"errors"`

	// Locales is only populated by GetRun.
	Locales []LocaleRun `json:"locales,omitempty"`
}

// LocaleRun is the stored result of one locale within a run.
type LocaleRun struct {
	Locale    string              `json:"locale"`
	File      string              `json:"file"`
	Error     string              `json:"error,omitempty"`
	ErrorType string              `json:"error_type,omitempty"`
	Findings  []validator.Finding `json:"findings,omitempty"`
}

// Store persists lint runs.
// Implementations must be safe for concurrent use.
type Store interface {
	// SaveRun stores a run with all its locale results.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun returns a run with its locale results, or ErrNotFound.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns up to limit runs, newest first, without locale results.
	// A limit of 0 returns every run.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// Count returns the number of stored runs.
	Count(ctx context.Context) (int64, error)

	// DeleteBefore removes runs started before cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// TrimToCount removes the oldest runs until at most keep remain.
	TrimToCount(ctx context.Context, keep int) (int64, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
