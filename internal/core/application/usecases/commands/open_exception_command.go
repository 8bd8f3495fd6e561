package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrOpenExceptionCommandIsNotConstructed = errors.New(
	"OpenExceptionCommand must be created via NewOpenExceptionCommand constructor",
)

// OpenExceptionCommand logs an incident against a dispatch. It is accepted
// in any dispatch state.
type OpenExceptionCommand struct {
	actor       ports.Identity
	exceptionID kernel.UUID
	dispatchID  kernel.UUID
	description string
	kind        string

	guard guard.ConstructorGuard
}

func NewOpenExceptionCommand(
	actor ports.Identity,
	exceptionID, dispatchID kernel.UUID,
	description, kind string,
) (OpenExceptionCommand, error) {
	var dispatchErr error
	if err := dispatchID.Validate(); err != nil {
		dispatchErr = errs.NewValueIsRequiredErrorWithCause("dispatch", err)
	}
	if err := errors.Join(exceptionID.Validate(), dispatchErr); err != nil {
		return OpenExceptionCommand{}, err
	}

	return OpenExceptionCommand{
		actor:       actor,
		exceptionID: exceptionID,
		dispatchID:  dispatchID,
		description: description,
		kind:        kind,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c OpenExceptionCommand) Validate() error {
	return c.guard.Validate(ErrOpenExceptionCommandIsNotConstructed)
}

func (c OpenExceptionCommand) Actor() ports.Identity {
	return c.actor
}

func (c OpenExceptionCommand) ExceptionID() kernel.UUID {
	return c.exceptionID
}

func (c OpenExceptionCommand) DispatchID() kernel.UUID {
	return c.dispatchID
}

func (c OpenExceptionCommand) Description() string {
	return c.description
}

func (c OpenExceptionCommand) Kind() string {
	return c.kind
}
