package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/infrastructure/logger"
	"github.com/silkmarket/core/internal/ports"
)

// Store owns the in-memory dataset and writes a full snapshot after every
// mutation. The in-memory copy is authoritative; the snapshot is only read by Load.
//
// All access is serialized by mu. The write lock is held across the snapshot
// write so concurrent requests cannot hand out the same id.
type Store struct {
	mu        sync.RWMutex
	data      *entities.Dataset
	snapshots ports.SnapshotStore
	logger    *logger.Logger
	now       func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty store writing through to snapshots.
func NewStore(snapshots ports.SnapshotStore, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		data:      entities.NewDataset(),
		snapshots: snapshots,
		logger:    log.WithComponent("store"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store, restores it from snapshots and, when seed is set,
// fills empty collections with sample records.
func Open(ctx context.Context, snapshots ports.SnapshotStore, log *logger.Logger, seed bool, opts ...Option) (*Store, error) {
	s := NewStore(snapshots, log, opts...)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	if seed {
		if err := s.Seed(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Load replaces the in-memory dataset with the persisted snapshot.
//
// A missing snapshot leaves the store empty. A corrupt snapshot is discarded
// with a warning and the store resets to empty with both counters at 1.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.snapshots.Load(ctx)
	switch {
	case err == nil:
		normalize(data)
		s.data = data
		s.logger.Infow("Dataset loaded",
			"sink", s.snapshots.Name(),
			"cocoon_rates", len(data.CocoonRates),
			"silk_prices", len(data.SilkPrices),
		)
	case errors.Is(err, entities.ErrSnapshotNotFound):
		s.data = entities.NewDataset()
		s.logger.Infow("No snapshot found, starting with an empty dataset", "sink", s.snapshots.Name())
	case errors.Is(err, entities.ErrCorruptSnapshot):
		s.data = entities.NewDataset()
		s.logger.Warnw("Snapshot unreadable, previous data discarded", "sink", s.snapshots.Name(), "error", err)
	default:
		return fmt.Errorf("load snapshot: %w", err)
	}
	return nil
}

// Seed inserts the sample records into whichever collection is empty.
func (s *Store) Seed(ctx context.Context) error {
	cocoon := NewCocoonRepository(s)
	if cocoon.Count(ctx) == 0 {
		for _, in := range sampleCocoonRates {
			if _, err := cocoon.Insert(ctx, in); err != nil {
				return fmt.Errorf("seed cocoon rates: %w", err)
			}
		}
		s.logger.Infow("Seeded sample cocoon rates", "count", len(sampleCocoonRates))
	}

	silk := NewSilkRepository(s)
	if silk.Count(ctx) == 0 {
		for _, in := range sampleSilkPrices {
			if _, err := silk.Insert(ctx, in); err != nil {
				return fmt.Errorf("seed silk prices: %w", err)
			}
		}
		s.logger.Infow("Seeded sample silk prices", "count", len(sampleSilkPrices))
	}
	return nil
}

// Snapshot returns a copy of the current dataset.
func (s *Store) Snapshot() *entities.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Close releases the snapshot sink.
func (s *Store) Close() error {
	return s.snapshots.Close()
}

// persist writes the whole dataset. Callers hold the write lock. The
// in-memory change is kept even when the write fails.
func (s *Store) persist(ctx context.Context) error {
	if err := s.snapshots.Save(ctx, s.data.Clone()); err != nil {
		s.logger.Errorw("Snapshot write failed, memory and storage now differ",
			"sink", s.snapshots.Name(),
			"error", err,
		)
		return fmt.Errorf("persist dataset: %w", err)
	}
	return nil
}

func normalize(d *entities.Dataset) {
	if d.CocoonRates == nil {
		d.CocoonRates = []entities.CocoonRate{}
	}
	if d.SilkPrices == nil {
		d.SilkPrices = []entities.SilkPrice{}
	}

	if len(d.CocoonRates) > 0 {
		var maxID int64
		for _, r := range d.CocoonRates {
			maxID = max(maxID, r.ID)
		}
		d.NextCocoonID = maxID + 1
	}
	if len(d.SilkPrices) > 0 {
		var maxID int64
		for _, p := range d.SilkPrices {
			maxID = max(maxID, p.ID)
		}
		d.NextSilkID = maxID + 1
	}

	d.NextCocoonID = max(d.NextCocoonID, 1)
	d.NextSilkID = max(d.NextSilkID, 1)
}

var sampleCocoonRates = []entities.CocoonInput{
	{Location: "Karnataka", Date: "2024-01-15", MaxPrice: 450, AvgPrice: 420, MinPrice: 400, Quantity: 1500},
	{Location: "Karnataka", Date: "2024-01-16", MaxPrice: 460, AvgPrice: 430, MinPrice: 410, Quantity: 1800},
	{Location: "Tamil Nadu", Date: "2024-01-15", MaxPrice: 440, AvgPrice: 410, MinPrice: 390, Quantity: 1200},
	{Location: "Tamil Nadu", Date: "2024-01-16", MaxPrice: 450, AvgPrice: 420, MinPrice: 400, Quantity: 1400},
	{Location: "West Bengal", Date: "2024-01-15", MaxPrice: 470, AvgPrice: 440, MinPrice: 420, Quantity: 2000},
	{Location: "West Bengal", Date: "2024-01-16", MaxPrice: 480, AvgPrice: 450, MinPrice: 430, Quantity: 2200},
}

var sampleSilkPrices = []entities.SilkInput{
	{Location: "Karnataka", Price: 3500, Date: "2024-01-15"},
	{Location: "Karnataka", Price: 3550, Date: "2024-01-16"},
	{Location: "Tamil Nadu", Price: 3450, Date: "2024-01-15"},
	{Location: "Tamil Nadu", Price: 3500, Date: "2024-01-16"},
	{Location: "West Bengal", Price: 3600, Date: "2024-01-15"},
	{Location: "West Bengal", Price: 3650, Date: "2024-01-16"},
}
