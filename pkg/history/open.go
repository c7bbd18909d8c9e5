package history

import (
	"fmt"
	"log/slog"

	"mercator-hq/modellint/pkg/config"
)

// DriverMemory selects MemoryStore.
const DriverMemory = "memory"

// Open creates the store selected by the history configuration.
func Open(cfg *config.HistoryConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, DriverSQLite3, "":
		return NewSQLiteStore(SQLiteConfig{
			Driver:      cfg.Driver,
			Path:        cfg.Path,
			WALMode:     true,
			BusyTimeout: cfg.BusyTimeout,
			Logger:      logger,
		})
	default:
		return nil, fmt.Errorf("unsupported history driver %q", cfg.Driver)
	}
}
