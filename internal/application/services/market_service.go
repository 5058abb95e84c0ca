package services

import (
	"context"
	"fmt"

	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/infrastructure/logger"
	"github.com/silkmarket/core/internal/ports"
)

// CocoonService handles cocoon rate operations
type CocoonService struct {
	repo   ports.CocoonRepository
	logger *logger.Logger
}

// NewCocoonService creates a new cocoon rate service
func NewCocoonService(repo ports.CocoonRepository, logger *logger.Logger) *CocoonService {
	return &CocoonService{
		repo:   repo,
		logger: logger,
	}
}

func (s *CocoonService) List(ctx context.Context) []entities.CocoonRate {
	return s.repo.GetAll(ctx)
}

// Get returns entities.ErrNotFound when no record has id
func (s *CocoonService) Get(ctx context.Context, id int64) (entities.CocoonRate, error) {
	rec, ok := s.repo.GetByID(ctx, id)
	if !ok {
		return entities.CocoonRate{}, entities.ErrNotFound
	}
	return rec, nil
}

func (s *CocoonService) Create(ctx context.Context, req ports.CreateCocoonRequest) (entities.Result, error) {
	res, err := s.repo.Insert(ctx, req.ToInput())
	if err != nil {
		return res, fmt.Errorf("failed to add cocoon rate: %w", err)
	}

	s.logger.LogAdminAction("create", "cocoon_rate", res.ID, map[string]interface{}{
		"location": req.Location,
		"date":     req.Date,
	})
	return res, nil
}

// Update applies the supplied fields. An empty request fails with
// entities.ErrNoFieldsToUpdate and a missing id with entities.ErrNotFound.
func (s *CocoonService) Update(ctx context.Context, id int64, req ports.UpdateCocoonRequest) (entities.Result, error) {
	patch := req.ToPatch()
	if patch.IsEmpty() {
		return entities.Result{}, entities.ErrNoFieldsToUpdate
	}

	res, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return res, fmt.Errorf("failed to update cocoon rate: %w", err)
	}
	if res.Changes == 0 {
		return res, entities.ErrNotFound
	}

	s.logger.LogAdminAction("update", "cocoon_rate", id, nil)
	return res, nil
}

func (s *CocoonService) Delete(ctx context.Context, id int64) (entities.Result, error) {
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return res, fmt.Errorf("failed to delete cocoon rate: %w", err)
	}
	if res.Changes == 0 {
		return res, entities.ErrNotFound
	}

	s.logger.LogAdminAction("delete", "cocoon_rate", id, nil)
	return res, nil
}

func (s *CocoonService) Locations(ctx context.Context) []entities.LocationSummary {
	return s.repo.Locations(ctx)
}

func (s *CocoonService) Monthly(ctx context.Context, priceType entities.PriceType) []entities.MonthlyPrice {
	return s.repo.Monthly(ctx, priceType)
}

// SilkService handles silk price operations
type SilkService struct {
	repo   ports.SilkRepository
	logger *logger.Logger
}

// NewSilkService creates a new silk price service
func NewSilkService(repo ports.SilkRepository, logger *logger.Logger) *SilkService {
	return &SilkService{
		repo:   repo,
		logger: logger,
	}
}

func (s *SilkService) List(ctx context.Context) []entities.SilkPrice {
	return s.repo.GetAll(ctx)
}

func (s *SilkService) Get(ctx context.Context, id int64) (entities.SilkPrice, error) {
	rec, ok := s.repo.GetByID(ctx, id)
	if !ok {
		return entities.SilkPrice{}, entities.ErrNotFound
	}
	return rec, nil
}

func (s *SilkService) Create(ctx context.Context, req ports.CreateSilkRequest) (entities.Result, error) {
	res, err := s.repo.Insert(ctx, req.ToInput())
	if err != nil {
		return res, fmt.Errorf("failed to add silk price: %w", err)
	}

	s.logger.LogAdminAction("create", "silk_price", res.ID, map[string]interface{}{
		"location": req.Location,
		"date":     req.Date,
	})
	return res, nil
}

func (s *SilkService) Update(ctx context.Context, id int64, req ports.UpdateSilkRequest) (entities.Result, error) {
	patch := req.ToPatch()
	if patch.IsEmpty() {
		return entities.Result{}, entities.ErrNoFieldsToUpdate
	}

	res, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return res, fmt.Errorf("failed to update silk price: %w", err)
	}
	if res.Changes == 0 {
		return res, entities.ErrNotFound
	}

	s.logger.LogAdminAction("update", "silk_price", id, nil)
	return res, nil
}

func (s *SilkService) Delete(ctx context.Context, id int64) (entities.Result, error) {
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return res, fmt.Errorf("failed to delete silk price: %w", err)
	}
	if res.Changes == 0 {
		return res, entities.ErrNotFound
	}

	s.logger.LogAdminAction("delete", "silk_price", id, nil)
	return res, nil
}

// Locations returns the most recent price per location
func (s *SilkService) Locations(ctx context.Context) []entities.SilkPrice {
	return s.repo.Locations(ctx)
}
