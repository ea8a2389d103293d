package main

import (
	"fmt"

	"verity-hq/scrivener/pkg/audit"
	"verity-hq/scrivener/pkg/audit/storage"
	"verity-hq/scrivener/pkg/config"
)

// openStorage opens the configured audit backend.
func openStorage(cfg *config.Config) (audit.Storage, error) {
	switch cfg.Audit.Backend {
	case "memory":
		return storage.NewMemoryStorage(), nil
	case "sqlite":
		return storage.NewSQLiteStorage(&storage.SQLiteConfig{
			Path:         cfg.Audit.SQLite.Path,
			MaxOpenConns: cfg.Audit.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Audit.SQLite.MaxIdleConns,
			WALMode:      cfg.Audit.SQLite.WALMode,
			BusyTimeout:  cfg.Audit.SQLite.BusyTimeout,
		})
	default:
		return nil, fmt.Errorf("unknown audit backend %q", cfg.Audit.Backend)
	}
}
