package queries

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrGetDispatchQueryIsNotConstructed = errors.New("GetDispatchQuery must be created via NewGetDispatchQuery constructor")

type GetDispatchQuery struct {
	actor      ports.Identity
	dispatchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDispatchQuery(actor ports.Identity, dispatchID kernel.UUID) (GetDispatchQuery, error) {
	if err := dispatchID.Validate(); err != nil {
		return GetDispatchQuery{}, errs.NewValueIsRequiredErrorWithCause("dispatch", err)
	}
	return GetDispatchQuery{actor: actor, dispatchID: dispatchID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDispatchQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchQueryIsNotConstructed)
}

// DispatchDetails is one dispatch with its evidence and exceptions.
type DispatchDetails struct {
	DispatchView
	Media      []MediaView
	Exceptions []ExceptionView
}
