package queries

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/guard"
)

var ErrListExceptionsQueryIsNotConstructed = errors.New(
	"ListExceptionsQuery must be created via NewListExceptionsQuery constructor",
)

// ListExceptionsQuery lists exception logs newest first. A nil filter
// matches everything.
type ListExceptionsQuery struct {
	actor      ports.Identity
	dispatchID *kernel.UUID
	resolved   *bool

	guard guard.ConstructorGuard
}

func NewListExceptionsQuery(actor ports.Identity, dispatchID *kernel.UUID, resolved *bool) (ListExceptionsQuery, error) {
	if dispatchID != nil {
		if err := dispatchID.Validate(); err != nil {
			return ListExceptionsQuery{}, err
		}
	}
	return ListExceptionsQuery{
		actor:      actor,
		dispatchID: dispatchID,
		resolved:   resolved,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListExceptionsQuery) Validate() error {
	return q.guard.Validate(ErrListExceptionsQueryIsNotConstructed)
}
