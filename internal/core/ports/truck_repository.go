package ports

import (
	"context"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/truck"
)

// TruckRepository defines the persistence contract for the Fleet Registry.
type TruckRepository interface {
	// Add persists a new truck. A duplicate plate is reported as errs.ErrValueIsInvalid.
	Add(ctx context.Context, aggregate *truck.Truck) error

	// Update persists changes with a compare-and-swap on the version.
	Update(ctx context.Context, aggregate *truck.Truck) error

	Get(ctx context.Context, id kernel.UUID) (*truck.Truck, error)

	GetForUpdate(ctx context.Context, id kernel.UUID) (*truck.Truck, error)

	GetByPlate(ctx context.Context, plate string) (*truck.Truck, error)

	// LockFirstAvailable locks and returns the oldest idle, unclaimed truck,
	// skipping rows other transactions hold. Returns errs.ErrObjectNotFound
	// when there is none.
	LockFirstAvailable(ctx context.Context) (*truck.Truck, error)
}
