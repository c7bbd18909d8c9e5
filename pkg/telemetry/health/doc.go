// Package health serves liveness and readiness probes for the watch command.
//
// Readiness combines component checks:
//   - models_dir: the models directory is readable and not empty
//   - history: the history store answers a ping (when history is enabled)
//   - last_run: at least one lint run completed
//
// Usage:
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("models_dir", health.DirCheck(cfg.Models.Dir))
//	checker.RegisterCheck("last_run", tracker.Check())
//	health.Register(mux, checker, version, commit)
package health
