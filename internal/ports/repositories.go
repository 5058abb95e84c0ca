package ports

import (
	"context"

	"github.com/silkmarket/core/internal/domain/entities"
)

// CocoonRepository defines the interface for cocoon rate data operations
type CocoonRepository interface {
	GetAll(ctx context.Context) []entities.CocoonRate
	GetByID(ctx context.Context, id int64) (entities.CocoonRate, bool)
	Insert(ctx context.Context, input entities.CocoonInput) (entities.Result, error)
	Update(ctx context.Context, id int64, patch entities.CocoonPatch) (entities.Result, error)
	Delete(ctx context.Context, id int64) (entities.Result, error)
	Locations(ctx context.Context) []entities.LocationSummary
	Monthly(ctx context.Context, priceType entities.PriceType) []entities.MonthlyPrice
	Count(ctx context.Context) int
}

// SilkRepository defines the interface for silk price data operations
type SilkRepository interface {
	GetAll(ctx context.Context) []entities.SilkPrice
	GetByID(ctx context.Context, id int64) (entities.SilkPrice, bool)
	Insert(ctx context.Context, input entities.SilkInput) (entities.Result, error)
	Update(ctx context.Context, id int64, patch entities.SilkPatch) (entities.Result, error)
	Delete(ctx context.Context, id int64) (entities.Result, error)
	Locations(ctx context.Context) []entities.SilkPrice
	Count(ctx context.Context) int
}

// SnapshotStore persists and restores the whole dataset in one piece.
//
// Load returns entities.ErrSnapshotNotFound when nothing has been saved yet
// and an error wrapping entities.ErrCorruptSnapshot when saved data cannot be
// decoded.
type SnapshotStore interface {
	Name() string
	Load(ctx context.Context) (*entities.Dataset, error)
	Save(ctx context.Context, data *entities.Dataset) error
	Close() error
}
