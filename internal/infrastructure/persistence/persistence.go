// Package persistence provides the snapshot sinks a repository.Store writes
// through to: a JSON file, an embedded SQLite database or Postgres.
package persistence

import (
	"context"
	"fmt"

	"github.com/silkmarket/core/internal/infrastructure/config"
	"github.com/silkmarket/core/internal/infrastructure/database"
	"github.com/silkmarket/core/internal/infrastructure/logger"
	"github.com/silkmarket/core/internal/ports"
)

// Open builds the sink selected by cfg.Storage.Backend. For Postgres the
// migrations are applied first when cfg.Database.AutoMigrate is set.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.SnapshotStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageFile:
		log.Infow("Using JSON file storage", "path", cfg.Storage.Path)
		return NewFileSink(cfg.Storage.Path), nil

	case config.StorageSQLite:
		log.Infow("Using SQLite storage", "path", cfg.Storage.SQLitePath)
		return NewSQLiteSink(ctx, cfg.Storage.SQLitePath)

	case config.StoragePostgres:
		if cfg.Database.AutoMigrate {
			if err := migrateUp(cfg.Database, log); err != nil {
				return nil, err
			}
		}
		db, err := database.New(cfg.Database)
		if err != nil {
			return nil, err
		}
		log.Infow("Using Postgres storage", "host", cfg.Database.Host, "database", cfg.Database.Name)
		return NewPostgresSink(db), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func migrateUp(cfg config.DatabaseConfig, log *logger.Logger) error {
	m, err := database.NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	applied, err := m.Up(0)
	if err != nil {
		return err
	}
	if applied {
		log.Infow("Database migrations applied", "source", cfg.MigrationsURL())
	}
	return nil
}
