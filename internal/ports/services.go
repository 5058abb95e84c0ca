package ports

import (
	"context"
	"strings"

	"github.com/silkmarket/core/internal/domain/entities"
)

// CocoonService defines the interface for cocoon rate business logic
type CocoonService interface {
	List(ctx context.Context) []entities.CocoonRate
	Get(ctx context.Context, id int64) (entities.CocoonRate, error)
	Create(ctx context.Context, req CreateCocoonRequest) (entities.Result, error)
	Update(ctx context.Context, id int64, req UpdateCocoonRequest) (entities.Result, error)
	Delete(ctx context.Context, id int64) (entities.Result, error)
	Locations(ctx context.Context) []entities.LocationSummary
	Monthly(ctx context.Context, priceType entities.PriceType) []entities.MonthlyPrice
}

// SilkService defines the interface for silk price business logic
type SilkService interface {
	List(ctx context.Context) []entities.SilkPrice
	Get(ctx context.Context, id int64) (entities.SilkPrice, error)
	Create(ctx context.Context, req CreateSilkRequest) (entities.Result, error)
	Update(ctx context.Context, id int64, req UpdateSilkRequest) (entities.Result, error)
	Delete(ctx context.Context, id int64) (entities.Result, error)
	Locations(ctx context.Context) []entities.SilkPrice
}

// CreateCocoonRequest represents the request to record a cocoon rate
type CreateCocoonRequest struct {
	Location string   `json:"location" validate:"required"`
	Date     string   `json:"date" validate:"required,isodate"`
	MaxPrice *float64 `json:"max_price" validate:"required,gte=0"`
	AvgPrice *float64 `json:"avg_price" validate:"required,gte=0"`
	MinPrice *float64 `json:"min_price" validate:"required,gte=0"`
	Quantity *float64 `json:"quantity" validate:"required,gte=0"`
}

// Normalize trims free-text fields before validation.
func (r *CreateCocoonRequest) Normalize() {
	r.Location = strings.TrimSpace(r.Location)
}

// ToInput converts a validated request into store input.
func (r CreateCocoonRequest) ToInput() entities.CocoonInput {
	return entities.CocoonInput{
		Location: r.Location,
		Date:     r.Date,
		MaxPrice: deref(r.MaxPrice),
		AvgPrice: deref(r.AvgPrice),
		MinPrice: deref(r.MinPrice),
		Quantity: deref(r.Quantity),
	}
}

// UpdateCocoonRequest represents a partial cocoon rate update
type UpdateCocoonRequest struct {
	Location *string  `json:"location" validate:"omitempty,min=1"`
	Date     *string  `json:"date" validate:"omitempty,isodate"`
	MaxPrice *float64 `json:"max_price" validate:"omitempty,gte=0"`
	AvgPrice *float64 `json:"avg_price" validate:"omitempty,gte=0"`
	MinPrice *float64 `json:"min_price" validate:"omitempty,gte=0"`
	Quantity *float64 `json:"quantity" validate:"omitempty,gte=0"`
}

// Normalize trims free-text fields before validation.
func (r *UpdateCocoonRequest) Normalize() {
	r.Location = trimPtr(r.Location)
}

// ToPatch converts a validated request into a store patch.
func (r UpdateCocoonRequest) ToPatch() entities.CocoonPatch {
	return entities.CocoonPatch{
		Location: r.Location,
		Date:     r.Date,
		MaxPrice: r.MaxPrice,
		AvgPrice: r.AvgPrice,
		MinPrice: r.MinPrice,
		Quantity: r.Quantity,
	}
}

// CreateSilkRequest represents the request to record a silk price
type CreateSilkRequest struct {
	Location string   `json:"location" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Date     string   `json:"date" validate:"required,isodate"`
}

// Normalize trims free-text fields before validation.
func (r *CreateSilkRequest) Normalize() {
	r.Location = strings.TrimSpace(r.Location)
}

// ToInput converts a validated request into store input.
func (r CreateSilkRequest) ToInput() entities.SilkInput {
	return entities.SilkInput{
		Location: r.Location,
		Price:    deref(r.Price),
		Date:     r.Date,
	}
}

// UpdateSilkRequest represents a partial silk price update
type UpdateSilkRequest struct {
	Location *string  `json:"location" validate:"omitempty,min=1"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Date     *string  `json:"date" validate:"omitempty,isodate"`
}

// Normalize trims free-text fields before validation.
func (r *UpdateSilkRequest) Normalize() {
	r.Location = trimPtr(r.Location)
}

// ToPatch converts a validated request into a store patch.
func (r UpdateSilkRequest) ToPatch() entities.SilkPatch {
	return entities.SilkPatch{
		Location: r.Location,
		Price:    r.Price,
		Date:     r.Date,
	}
}

// CalculatorRequest carries the five calculator inputs
type CalculatorRequest struct {
	UnitPrice     *float64 `json:"unit_price" validate:"required,gte=0"`
	TotalWeight   *float64 `json:"total_weight" validate:"required,gte=0"`
	BatchCapacity *float64 `json:"batch_capacity" validate:"required,gt=0"`
	YieldPerBatch *float64 `json:"yield_per_batch" validate:"required,gte=0"`
	SellRate      *float64 `json:"sell_rate" validate:"required,gte=0"`
}

// CalculatorResponse is the breakdown returned to API clients
type CalculatorResponse struct {
	MaterialCost float64 `json:"material_cost"`
	Commission   float64 `json:"commission"`
	Transport    float64 `json:"transport"`
	TotalCost    float64 `json:"total_cost"`
	BatchCount   float64 `json:"batch_count"`
	OutputKg     float64 `json:"output_kg"`
	Revenue      float64 `json:"revenue"`
	ProfitLoss   float64 `json:"profit_loss"`
	Percentage   float64 `json:"percentage"`
	Status       string  `json:"status"`
}

// CalculatorService defines the profit/loss calculator
type CalculatorService interface {
	Calculate(req CalculatorRequest) (CalculatorResponse, error)
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
