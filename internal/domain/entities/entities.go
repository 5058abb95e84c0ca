package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrCorruptSnapshot  = errors.New("corrupt snapshot")
)

// Date layouts accepted for observation dates
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = time.RFC3339
)

// PriceType selects which cocoon price column a monthly view averages
type PriceType string

const (
	PriceTypeHighest PriceType = "highest"
	PriceTypeAverage PriceType = "average"
	PriceTypeMinimum PriceType = "minimum"
)

// ParsePriceType maps a query value to a PriceType, falling back to average.
func ParsePriceType(s string) PriceType {
	switch PriceType(strings.ToLower(strings.TrimSpace(s))) {
	case PriceTypeHighest:
		return PriceTypeHighest
	case PriceTypeMinimum:
		return PriceTypeMinimum
	default:
		return PriceTypeAverage
	}
}

// CocoonRate is one recorded lot of cocoon prices at a market on a date
type CocoonRate struct {
	ID        int64     `json:"id" db:"id"`
	Location  string    `json:"location" db:"location"`
	Date      string    `json:"date" db:"date"`
	MaxPrice  float64   `json:"max_price" db:"max_price"`
	AvgPrice  float64   `json:"avg_price" db:"avg_price"`
	MinPrice  float64   `json:"min_price" db:"min_price"`
	Quantity  float64   `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Price returns the column selected by t.
func (r CocoonRate) Price(t PriceType) float64 {
	switch t {
	case PriceTypeHighest:
		return r.MaxPrice
	case PriceTypeMinimum:
		return r.MinPrice
	default:
		return r.AvgPrice
	}
}

// Month returns the YYYY-MM prefix of the observation date.
func (r CocoonRate) Month() string {
	return monthOf(r.Date)
}

// SilkPrice is a silk price observation at a market on a date
type SilkPrice struct {
	ID        int64     `json:"id" db:"id"`
	Location  string    `json:"location" db:"location"`
	Price     float64   `json:"price" db:"price"`
	Date      string    `json:"date" db:"date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CocoonInput carries the fields of a new cocoon rate
type CocoonInput struct {
	Location string
	Date     string
	MaxPrice float64
	AvgPrice float64
	MinPrice float64
	Quantity float64
}

// CocoonPatch carries a partial cocoon rate update; nil fields are left unchanged
type CocoonPatch struct {
	Location *string
	Date     *string
	MaxPrice *float64
	AvgPrice *float64
	MinPrice *float64
	Quantity *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p CocoonPatch) IsEmpty() bool {
	return p.Location == nil && p.Date == nil && p.MaxPrice == nil &&
		p.AvgPrice == nil && p.MinPrice == nil && p.Quantity == nil
}

// Apply merges the supplied fields into r.
func (p CocoonPatch) Apply(r *CocoonRate) {
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.MaxPrice != nil {
		r.MaxPrice = *p.MaxPrice
	}
	if p.AvgPrice != nil {
		r.AvgPrice = *p.AvgPrice
	}
	if p.MinPrice != nil {
		r.MinPrice = *p.MinPrice
	}
	if p.Quantity != nil {
		r.Quantity = *p.Quantity
	}
}

// SilkInput carries the fields of a new silk price
type SilkInput struct {
	Location string
	Price    float64
	Date     string
}

// SilkPatch carries a partial silk price update
type SilkPatch struct {
	Location *string
	Price    *float64
	Date     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p SilkPatch) IsEmpty() bool {
	return p.Location == nil && p.Price == nil && p.Date == nil
}

// Apply merges the supplied fields into r.
func (p SilkPatch) Apply(r *SilkPrice) {
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
}

// Result reports the outcome of a store mutation
type Result struct {
	ID      int64 `json:"id,omitempty"`
	Changes int   `json:"changes"`
}

// LocationSummary aggregates every cocoon lot recorded at one location
type LocationSummary struct {
	Location      string  `json:"location"`
	HighestPrice  float64 `json:"highest_price"`
	AveragePrice  float64 `json:"average_price"`
	MinimumPrice  float64 `json:"minimum_price"`
	TotalQuantity float64 `json:"total_quantity"`
	LotCount      int     `json:"lot_count"`
}

// MonthlyPrice is the mean of one price column for a month at a location
type MonthlyPrice struct {
	Month    string  `json:"month"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
}

// Dataset is the complete persisted state of a store
type Dataset struct {
	CocoonRates  []CocoonRate `json:"cocoon_rates"`
	SilkPrices   []SilkPrice  `json:"silk_prices"`
	NextCocoonID int64        `json:"nextCocoonId"`
	NextSilkID   int64        `json:"nextSilkId"`
}

// NewDataset returns an empty dataset with both counters at 1.
func NewDataset() *Dataset {
	return &Dataset{
		CocoonRates:  []CocoonRate{},
		SilkPrices:   []SilkPrice{},
		NextCocoonID: 1,
		NextSilkID:   1,
	}
}

// Clone returns a deep copy safe to hand to a snapshot sink.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		CocoonRates:  make([]CocoonRate, len(d.CocoonRates)),
		SilkPrices:   make([]SilkPrice, len(d.SilkPrices)),
		NextCocoonID: d.NextCocoonID,
		NextSilkID:   d.NextSilkID,
	}
	copy(out.CocoonRates, d.CocoonRates)
	copy(out.SilkPrices, d.SilkPrices)
	return out
}

// ParseDate parses an observation date in either accepted layout.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(DateTimeLayout, s)
}

func monthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
