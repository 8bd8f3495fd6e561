package ports

import (
	"context"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/material"

	"github.com/shopspring/decimal"
)

// MaterialRepository defines the persistence contract for the Inventory Ledger.
type MaterialRepository interface {
	// Add persists a new material. A duplicate name is reported as errs.ErrValueIsInvalid.
	Add(ctx context.Context, aggregate *material.Material) error

	// Update persists changes with a compare-and-swap on the version.
	Update(ctx context.Context, aggregate *material.Material) error

	Get(ctx context.Context, id kernel.UUID) (*material.Material, error)

	GetForUpdate(ctx context.Context, id kernel.UUID) (*material.Material, error)

	GetByName(ctx context.Context, name string) (*material.Material, error)

	// LockOrSeed locks the material with exactly this name. When there is
	// none it first inserts material.Seed(name), tolerating a concurrent
	// insert of the same name, and reports seeded=true if this call created it.
	LockOrSeed(ctx context.Context, name string) (m *material.Material, seeded bool, err error)

	// ListBelow returns materials whose stock is strictly below threshold, by name.
	ListBelow(ctx context.Context, threshold decimal.Decimal) ([]*material.Material, error)
}
