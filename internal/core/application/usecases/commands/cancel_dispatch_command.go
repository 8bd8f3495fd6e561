package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrCancelDispatchCommandIsNotConstructed = errors.New(
	"CancelDispatchCommand must be created via NewCancelDispatchCommand constructor",
)

// CancelDispatchCommand withdraws an unfinished dispatch and frees its truck.
type CancelDispatchCommand struct {
	actor      ports.Identity
	dispatchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelDispatchCommand(actor ports.Identity, dispatchID kernel.UUID) (CancelDispatchCommand, error) {
	if err := dispatchID.Validate(); err != nil {
		return CancelDispatchCommand{}, errs.NewValueIsRequiredErrorWithCause("dispatch", err)
	}
	return CancelDispatchCommand{
		actor:      actor,
		dispatchID: dispatchID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDispatchCommand) Validate() error {
	return c.guard.Validate(ErrCancelDispatchCommandIsNotConstructed)
}

func (c CancelDispatchCommand) Actor() ports.Identity {
	return c.actor
}

func (c CancelDispatchCommand) DispatchID() kernel.UUID {
	return c.dispatchID
}
