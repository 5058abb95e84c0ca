package repository

import (
	"context"

	"github.com/silkmarket/core/internal/domain/aggregate"
	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/ports"
)

// CocoonRepositoryImpl implements the CocoonRepository interface
type CocoonRepositoryImpl struct {
	store *Store
}

// NewCocoonRepository creates a new cocoon rate repository
func NewCocoonRepository(store *Store) ports.CocoonRepository {
	return &CocoonRepositoryImpl{store: store}
}

func (r *CocoonRepositoryImpl) GetAll(ctx context.Context) []entities.CocoonRate {
	r.store.mu.RLock()
	rates := make([]entities.CocoonRate, len(r.store.data.CocoonRates))
	copy(rates, r.store.data.CocoonRates)
	r.store.mu.RUnlock()

	aggregate.SortCocoonRates(rates)
	return rates
}

func (r *CocoonRepositoryImpl) GetByID(ctx context.Context, id int64) (entities.CocoonRate, bool) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.store.data.CocoonRates[i], true
	}
	return entities.CocoonRate{}, false
}

func (r *CocoonRepositoryImpl) Insert(ctx context.Context, input entities.CocoonInput) (entities.Result, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := entities.CocoonRate{
		ID:        s.data.NextCocoonID,
		Location:  input.Location,
		Date:      input.Date,
		MaxPrice:  input.MaxPrice,
		AvgPrice:  input.AvgPrice,
		MinPrice:  input.MinPrice,
		Quantity:  input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.data.NextCocoonID++
	s.data.CocoonRates = append(s.data.CocoonRates, rec)

	if err := s.persist(ctx); err != nil {
		return entities.Result{ID: rec.ID}, err
	}
	return entities.Result{ID: rec.ID, Changes: 1}, nil
}

func (r *CocoonRepositoryImpl) Update(ctx context.Context, id int64, patch entities.CocoonPatch) (entities.Result, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return entities.Result{Changes: 0}, nil
	}

	rec := &s.data.CocoonRates[i]
	patch.Apply(rec)
	rec.UpdatedAt = s.now()

	if err := s.persist(ctx); err != nil {
		return entities.Result{ID: id}, err
	}
	return entities.Result{ID: id, Changes: 1}, nil
}

func (r *CocoonRepositoryImpl) Delete(ctx context.Context, id int64) (entities.Result, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return entities.Result{Changes: 0}, nil
	}
	s.data.CocoonRates = append(s.data.CocoonRates[:i], s.data.CocoonRates[i+1:]...)

	if err := s.persist(ctx); err != nil {
		return entities.Result{ID: id}, err
	}
	return entities.Result{ID: id, Changes: 1}, nil
}

func (r *CocoonRepositoryImpl) Locations(ctx context.Context) []entities.LocationSummary {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return aggregate.LocationSummaries(r.store.data.CocoonRates)
}

func (r *CocoonRepositoryImpl) Monthly(ctx context.Context, priceType entities.PriceType) []entities.MonthlyPrice {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return aggregate.MonthlyAverages(r.store.data.CocoonRates, priceType)
}

func (r *CocoonRepositoryImpl) Count(ctx context.Context) int {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.data.CocoonRates)
}

// indexOf must be called with the store lock held.
func (r *CocoonRepositoryImpl) indexOf(id int64) int {
	for i, rec := range r.store.data.CocoonRates {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
