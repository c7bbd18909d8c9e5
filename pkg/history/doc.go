// Package history persists lint runs so results can be compared over time.
//
// # Storage Backends
//
//   - SQLiteStore: durable storage in a single database file. The "sqlite"
//     driver (modernc.org/sqlite) is pure Go; the "sqlite3" driver
//     (github.com/mattn/go-sqlite3) needs cgo.
//   - MemoryStore: keeps runs for the lifetime of the process. Used in tests
//     and with the "memory" driver.
//
// # Usage
//
//	store, err := history.Open(&cfg.History, logger.Slog())
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	if err := store.SaveRun(ctx, run); err != nil {
//	    return err
//	}
//	runs, err := store.ListRuns(ctx, 10)
//
// Old runs are removed by the retention package, either once after each
// run or on a cron schedule in watch mode.
package history
