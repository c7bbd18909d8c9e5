// Package watch re-lints a models directory while it is being edited.
//
// FileWatcher uses fsnotify to watch the *.json files of the directory and
// reports changed files after a debounce interval, so that an editor saving
// several files at once causes a single lint. Service combines the watcher
// with an optional cron schedule and serializes the resulting lint runs.
//
//	svc, err := watch.NewService(cfg.Models.Dir, &cfg.Watch, lint, logger)
//	if err != nil {
//		return err
//	}
//	return svc.Run(ctx)
package watch
