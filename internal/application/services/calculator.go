package services

import (
	"github.com/shopspring/decimal"

	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/ports"
)

// Outcome labels for a calculation
const (
	StatusProfit    = "profit"
	StatusLoss      = "loss"
	StatusBreakEven = "break-even"
)

var (
	commissionRate = decimal.RequireFromString("0.01")
	transportPerKg = decimal.NewFromInt(2)
	gramsPerKg     = decimal.NewFromInt(1000)
	hundred        = decimal.NewFromInt(100)
)

// CalculatorInput holds the reeling economics of one purchase
type CalculatorInput struct {
	UnitPrice     decimal.Decimal // per kg of cocoons
	TotalWeight   decimal.Decimal // kg of cocoons bought
	BatchCapacity decimal.Decimal // kg of cocoons per reeling batch
	YieldPerBatch decimal.Decimal // grams of silk per batch
	SellRate      decimal.Decimal // per kg of silk
}

// Breakdown is the full cost and revenue picture of a calculation
type Breakdown struct {
	MaterialCost decimal.Decimal
	Commission   decimal.Decimal
	Transport    decimal.Decimal
	TotalCost    decimal.Decimal
	BatchCount   decimal.Decimal
	OutputKg     decimal.Decimal
	Revenue      decimal.Decimal
	ProfitLoss   decimal.Decimal
	Percentage   decimal.Decimal
	Status       string
}

// Calculate computes the profit or loss of buying TotalWeight kg of cocoons
// and selling the reeled silk. Negative inputs and a zero batch capacity are
// rejected with entities.ValidationErrors.
func Calculate(in CalculatorInput) (Breakdown, error) {
	var verrs entities.ValidationErrors
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"unit_price", in.UnitPrice},
		{"total_weight", in.TotalWeight},
		{"batch_capacity", in.BatchCapacity},
		{"yield_per_batch", in.YieldPerBatch},
		{"sell_rate", in.SellRate},
	} {
		if f.value.IsNegative() {
			verrs.Add(f.name, "must be a non-negative number")
		}
	}
	if in.BatchCapacity.IsZero() {
		verrs.Add("batch_capacity", "must be greater than zero")
	}
	if err := verrs.OrNil(); err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{}
	b.MaterialCost = in.UnitPrice.Mul(in.TotalWeight)
	b.Commission = b.MaterialCost.Mul(commissionRate)
	b.Transport = in.TotalWeight.Mul(transportPerKg)
	b.TotalCost = b.MaterialCost.Add(b.Commission).Add(b.Transport)
	b.BatchCount = in.TotalWeight.Div(in.BatchCapacity)
	b.OutputKg = b.BatchCount.Mul(in.YieldPerBatch).Div(gramsPerKg)
	b.Revenue = b.OutputKg.Mul(in.SellRate)
	b.ProfitLoss = b.Revenue.Sub(b.TotalCost)
	if b.TotalCost.IsPositive() {
		b.Percentage = b.ProfitLoss.Div(b.TotalCost).Mul(hundred)
	}

	switch b.ProfitLoss.Sign() {
	case 1:
		b.Status = StatusProfit
	case -1:
		b.Status = StatusLoss
	default:
		b.Status = StatusBreakEven
	}
	return b, nil
}

// CalculatorService exposes Calculate to request handlers
type CalculatorService struct{}

// NewCalculatorService creates a new calculator service
func NewCalculatorService() *CalculatorService {
	return &CalculatorService{}
}

// Calculate runs a validated request through Calculate
func (s *CalculatorService) Calculate(req ports.CalculatorRequest) (ports.CalculatorResponse, error) {
	b, err := Calculate(CalculatorInput{
		UnitPrice:     fromPtr(req.UnitPrice),
		TotalWeight:   fromPtr(req.TotalWeight),
		BatchCapacity: fromPtr(req.BatchCapacity),
		YieldPerBatch: fromPtr(req.YieldPerBatch),
		SellRate:      fromPtr(req.SellRate),
	})
	if err != nil {
		return ports.CalculatorResponse{}, err
	}

	return ports.CalculatorResponse{
		MaterialCost: b.MaterialCost.InexactFloat64(),
		Commission:   b.Commission.InexactFloat64(),
		Transport:    b.Transport.InexactFloat64(),
		TotalCost:    b.TotalCost.InexactFloat64(),
		BatchCount:   b.BatchCount.InexactFloat64(),
		OutputKg:     b.OutputKg.InexactFloat64(),
		Revenue:      b.Revenue.InexactFloat64(),
		ProfitLoss:   b.ProfitLoss.InexactFloat64(),
		Percentage:   b.Percentage.Round(4).InexactFloat64(),
		Status:       b.Status,
	}, nil
}

func fromPtr(f *float64) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*f)
}
