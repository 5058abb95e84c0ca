package repository

import (
	"context"

	"github.com/silkmarket/core/internal/domain/aggregate"
	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/ports"
)

// SilkRepositoryImpl implements the SilkRepository interface
type SilkRepositoryImpl struct {
	store *Store
}

// NewSilkRepository creates a new silk price repository
func NewSilkRepository(store *Store) ports.SilkRepository {
	return &SilkRepositoryImpl{store: store}
}

func (r *SilkRepositoryImpl) GetAll(ctx context.Context) []entities.SilkPrice {
	r.store.mu.RLock()
	prices := make([]entities.SilkPrice, len(r.store.data.SilkPrices))
	copy(prices, r.store.data.SilkPrices)
	r.store.mu.RUnlock()

	aggregate.SortSilkPrices(prices)
	return prices
}

func (r *SilkRepositoryImpl) GetByID(ctx context.Context, id int64) (entities.SilkPrice, bool) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.store.data.SilkPrices[i], true
	}
	return entities.SilkPrice{}, false
}

func (r *SilkRepositoryImpl) Insert(ctx context.Context, input entities.SilkInput) (entities.Result, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := entities.SilkPrice{
		ID:        s.data.NextSilkID,
		Location:  input.Location,
		Price:     input.Price,
		Date:      input.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.data.NextSilkID++
	s.data.SilkPrices = append(s.data.SilkPrices, rec)

	if err := s.persist(ctx); err != nil {
		return entities.Result{ID: rec.ID}, err
	}
	return entities.Result{ID: rec.ID, Changes: 1}, nil
}

func (r *SilkRepositoryImpl) Update(ctx context.Context, id int64, patch entities.SilkPatch) (entities.Result, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return entities.Result{Changes: 0}, nil
	}

	rec := &s.data.SilkPrices[i]
	patch.Apply(rec)
	rec.UpdatedAt = s.now()

	if err := s.persist(ctx); err != nil {
		return entities.Result{ID: id}, err
	}
	return entities.Result{ID: id, Changes: 1}, nil
}

func (r *SilkRepositoryImpl) Delete(ctx context.Context, id int64) (entities.Result, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return entities.Result{Changes: 0}, nil
	}
	s.data.SilkPrices = append(s.data.SilkPrices[:i], s.data.SilkPrices[i+1:]...)

	if err := s.persist(ctx); err != nil {
		return entities.Result{ID: id}, err
	}
	return entities.Result{ID: id, Changes: 1}, nil
}

// Locations returns the latest price per location. Equal dates resolve to
// whichever record was inserted first, which depends on insertion history
// rather than on any field of the records.
func (r *SilkRepositoryImpl) Locations(ctx context.Context) []entities.SilkPrice {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return aggregate.LatestSilkByLocation(r.store.data.SilkPrices)
}

func (r *SilkRepositoryImpl) Count(ctx context.Context) int {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.data.SilkPrices)
}

func (r *SilkRepositoryImpl) indexOf(id int64) int {
	for i, rec := range r.store.data.SilkPrices {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
