// Package retention removes old lint runs from the history store.
//
// Pruning happens in two phases: runs older than retention_days are
// deleted, then the newest max_runs are kept. The Scheduler repeats this
// on a cron schedule while the watch command runs.
package retention
