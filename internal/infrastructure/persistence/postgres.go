package persistence

import (
	"github.com/silkmarket/core/internal/infrastructure/database"
)

// NewPostgresSink stores snapshots in Postgres. The market_snapshot table is
// created by the migrations, not here.
func NewPostgresSink(db *database.DB) *SQLSink {
	return newSQLSink("postgres", db)
}
