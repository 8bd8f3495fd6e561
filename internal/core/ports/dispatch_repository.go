package ports

import (
	"context"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"
)

// DispatchRepository defines the persistence contract for dispatch aggregates.
type DispatchRepository interface {
	Add(ctx context.Context, aggregate *dispatch.Dispatch) error

	// Update persists changes with a compare-and-swap on the version.
	Update(ctx context.Context, aggregate *dispatch.Dispatch) error

	Get(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error)

	// GetForUpdate locks the dispatch row. Every transition starts here, so
	// two commands on one dispatch serialize on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error)

	// ListByOrderForUpdate locks and returns every dispatch of an order.
	ListByOrderForUpdate(ctx context.Context, orderID kernel.UUID) ([]*dispatch.Dispatch, error)

	// Delete removes the dispatch together with its media and exception records.
	Delete(ctx context.Context, id kernel.UUID) error
}
