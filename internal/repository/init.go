package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/lecture-processor/internal/common"
)

// InitDatabase opens the configured database (or an in-memory SQLite one
// when inmem is set), checks it and migrates the schema.
func InitDatabase(ctx context.Context, cfg *common.Config, inmem bool, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dbCfg := ConfigFromApp(cfg.Database)
	if inmem {
		dbCfg.DSN = "sqlite::memory:"
	}
	store, err := Open(ctx, dbCfg, logger)
	if err != nil {
		return nil, err
	}
	if err := store.HealthCheck(ctx, 3*time.Second); err != nil {
		store.Close()
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
