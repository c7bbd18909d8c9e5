package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/modellint/pkg/history"
)

// Policy bounds the run history kept by a store.
type Policy struct {
	RetentionDays int    // runs older than this are deleted; <= 0 keeps them forever
	MaxRuns       int    // newest runs kept; 0 is unlimited
	Schedule      string // cron expression for the Scheduler, e.g. "0 3 * * *"
}

// Pruner applies a Policy to a history store.
type Pruner struct {
	store  history.Store
	policy Policy
	logger *slog.Logger
	now    func() time.Time
}

func NewPruner(store history.Store, policy Policy, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{
		store:  store,
		policy: policy,
		logger: logger.With("component", "history.retention"),
		now:    time.Now,
	}
}

// Prune deletes runs past the retention period, then the oldest runs
// beyond MaxRuns, and reports how many were deleted in total. On error
// the count covers the steps that completed.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if days := p.policy.RetentionDays; days > 0 {
		cutoff := p.now().AddDate(0, 0, -days)
		n, err := p.store.DeleteBefore(ctx, cutoff)
		if err != nil {
			return total, fmt.Errorf("delete runs before %s: %w", cutoff.Format(time.DateOnly), err)
		}
		total += n
		p.logger.Debug("expired runs deleted", "count", n, "cutoff", cutoff)
	}

	if keep := p.policy.MaxRuns; keep > 0 {
		n, err := p.store.TrimToCount(ctx, keep)
		if err != nil {
			return total, fmt.Errorf("trim history to %d runs: %w", keep, err)
		}
		total += n
		p.logger.Debug("surplus runs deleted", "count", n, "max_runs", keep)
	}

	if total > 0 {
		p.logger.Info("history pruned", "deleted", total)
	}
	return total, nil
}
