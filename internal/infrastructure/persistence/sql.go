package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/infrastructure/database"
)

const (
	bucketCocoonRates = "cocoon_rates"
	bucketSilkPrices  = "silk_prices"
	bucketCounters    = "counters"
)

type counters struct {
	NextCocoonID int64 `json:"nextCocoonId"`
	NextSilkID   int64 `json:"nextSilkId"`
}

type bucketRow struct {
	Bucket  string `db:"bucket"`
	Payload []byte `db:"payload"`
}

// SQLSink keeps the dataset in a market_snapshot table with one JSON
// payload per bucket. Every save upserts all buckets in one transaction.
type SQLSink struct {
	name string
	db   *database.DB
}

func newSQLSink(name string, db *database.DB) *SQLSink {
	return &SQLSink{name: name, db: db}
}

func (s *SQLSink) Name() string { return s.name }

// DB exposes the underlying connection for health checks
func (s *SQLSink) DB() *database.DB { return s.db }

func (s *SQLSink) Load(ctx context.Context) (*entities.Dataset, error) {
	var rows []bucketRow
	if err := s.db.DB.SelectContext(ctx, &rows, `SELECT bucket, payload FROM market_snapshot`); err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	if len(rows) == 0 {
		return nil, entities.ErrSnapshotNotFound
	}

	data := entities.NewDataset()
	var ctr counters
	targets := map[string]any{
		bucketCocoonRates: &data.CocoonRates,
		bucketSilkPrices:  &data.SilkPrices,
		bucketCounters:    &ctr,
	}

	for _, row := range rows {
		target, ok := targets[row.Bucket]
		if !ok || len(row.Payload) == 0 {
			continue
		}
		if err := json.Unmarshal(row.Payload, target); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", entities.ErrCorruptSnapshot, row.Bucket, err)
		}
	}

	data.NextCocoonID = ctr.NextCocoonID
	data.NextSilkID = ctr.NextSilkID
	return data, nil
}

func (s *SQLSink) Save(ctx context.Context, data *entities.Dataset) error {
	payloads := make(map[string]string, 3)
	for bucket, v := range map[string]any{
		bucketCocoonRates: data.CocoonRates,
		bucketSilkPrices:  data.SilkPrices,
		bucketCounters:    counters{NextCocoonID: data.NextCocoonID, NextSilkID: data.NextSilkID},
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", bucket, err)
		}
		payloads[bucket] = string(raw)
	}

	query := s.db.DB.Rebind(`INSERT INTO market_snapshot (bucket, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (bucket) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`)

	return s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		for _, bucket := range []string{bucketCocoonRates, bucketSilkPrices, bucketCounters} {
			if _, err := tx.ExecContext(ctx, query, bucket, payloads[bucket]); err != nil {
				return fmt.Errorf("upsert %s: %w", bucket, err)
			}
		}
		return nil
	})
}

func (s *SQLSink) Close() error {
	return s.db.Close()
}
