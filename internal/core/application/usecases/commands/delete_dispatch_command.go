package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/guard"
)

var ErrDeleteDispatchCommandIsNotConstructed = errors.New(
	"DeleteDispatchCommand must be created via NewDeleteDispatchCommand constructor",
)

type DeleteDispatchCommand struct {
	actor      ports.Identity
	dispatchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteDispatchCommand(actor ports.Identity, dispatchID kernel.UUID) (DeleteDispatchCommand, error) {
	if err := dispatchID.Validate(); err != nil {
		return DeleteDispatchCommand{}, err
	}
	return DeleteDispatchCommand{
		actor:      actor,
		dispatchID: dispatchID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteDispatchCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDispatchCommandIsNotConstructed)
}

func (c DeleteDispatchCommand) Actor() ports.Identity {
	return c.actor
}

func (c DeleteDispatchCommand) DispatchID() kernel.UUID {
	return c.dispatchID
}
