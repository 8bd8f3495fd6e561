package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/guard"
)

var ErrResolveExceptionCommandIsNotConstructed = errors.New(
	"ResolveExceptionCommand must be created via NewResolveExceptionCommand constructor",
)

type ResolveExceptionCommand struct {
	actor       ports.Identity
	exceptionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewResolveExceptionCommand(actor ports.Identity, exceptionID kernel.UUID) (ResolveExceptionCommand, error) {
	if err := exceptionID.Validate(); err != nil {
		return ResolveExceptionCommand{}, err
	}
	return ResolveExceptionCommand{
		actor:       actor,
		exceptionID: exceptionID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveExceptionCommand) Validate() error {
	return c.guard.Validate(ErrResolveExceptionCommandIsNotConstructed)
}

func (c ResolveExceptionCommand) Actor() ports.Identity {
	return c.actor
}

func (c ResolveExceptionCommand) ExceptionID() kernel.UUID {
	return c.exceptionID
}
