package queries

import (
	"errors"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/guard"
)

var ErrListDispatchesQueryIsNotConstructed = errors.New(
	"ListDispatchesQuery must be created via NewListDispatchesQuery constructor",
)

// ListDispatchesQuery lists dispatches newest first. Operators only ever
// see the dispatches assigned to them, whatever operatorID asks for.
type ListDispatchesQuery struct {
	actor      ports.Identity
	statuses   []dispatch.Status
	operatorID *kernel.UUID
	orderID    *kernel.UUID

	guard guard.ConstructorGuard
}

func NewListDispatchesQuery(
	actor ports.Identity,
	statuses []dispatch.Status,
	operatorID, orderID *kernel.UUID,
) (ListDispatchesQuery, error) {
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListDispatchesQuery{}, err
		}
	}
	for _, id := range []*kernel.UUID{operatorID, orderID} {
		if id == nil {
			continue
		}
		if err := id.Validate(); err != nil {
			return ListDispatchesQuery{}, err
		}
	}
	return ListDispatchesQuery{
		actor:      actor,
		statuses:   statuses,
		operatorID: operatorID,
		orderID:    orderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListDispatchesQuery) Validate() error {
	return q.guard.Validate(ErrListDispatchesQueryIsNotConstructed)
}
