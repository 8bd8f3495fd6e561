package queries

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/media"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/guard"
)

var ErrListDispatchMediaQueryIsNotConstructed = errors.New(
	"ListDispatchMediaQuery must be created via NewListDispatchMediaQuery constructor",
)

// ListDispatchMediaQuery lists evidence records oldest first, optionally
// for one dispatch and one stage tag.
type ListDispatchMediaQuery struct {
	actor      ports.Identity
	dispatchID *kernel.UUID
	stage      *media.Stage

	guard guard.ConstructorGuard
}

func NewListDispatchMediaQuery(actor ports.Identity, dispatchID *kernel.UUID, stage *media.Stage) (ListDispatchMediaQuery, error) {
	if dispatchID != nil {
		if err := dispatchID.Validate(); err != nil {
			return ListDispatchMediaQuery{}, err
		}
	}
	if stage != nil {
		if err := stage.Validate(); err != nil {
			return ListDispatchMediaQuery{}, err
		}
	}
	return ListDispatchMediaQuery{
		actor:      actor,
		dispatchID: dispatchID,
		stage:      stage,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListDispatchMediaQuery) Validate() error {
	return q.guard.Validate(ErrListDispatchMediaQueryIsNotConstructed)
}
