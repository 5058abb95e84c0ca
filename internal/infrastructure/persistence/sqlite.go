package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/silkmarket/core/internal/infrastructure/database"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS market_snapshot (
	bucket     TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// NewSQLiteSink opens (or creates) an embedded database file and ensures the
// snapshot table exists.
func NewSQLiteSink(ctx context.Context, path string) (*SQLSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := database.NewSQLite(path)
	if err != nil {
		return nil, err
	}

	if _, err := db.DB.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure snapshot table: %w", err)
	}

	return newSQLSink("sqlite", db), nil
}
