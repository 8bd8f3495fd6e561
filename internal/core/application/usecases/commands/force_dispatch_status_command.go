package commands

import (
	"errors"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrForceDispatchStatusCommandIsNotConstructed = errors.New(
	"ForceDispatchStatusCommand must be created via NewForceDispatchStatusCommand constructor",
)

// ForceDispatchStatusCommand sets a dispatch status directly, for
// administrative correction. It skips predecessor checks and stage data but
// fires the in_transit and completed cascades like the staged path does.
type ForceDispatchStatusCommand struct {
	actor      ports.Identity
	dispatchID kernel.UUID
	status     dispatch.Status

	guard guard.ConstructorGuard
}

func NewForceDispatchStatusCommand(
	actor ports.Identity,
	dispatchID kernel.UUID,
	status dispatch.Status,
) (ForceDispatchStatusCommand, error) {
	cmd := ForceDispatchStatusCommand{
		actor:  actor,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}

	var idErr error
	if idErr = dispatchID.Validate(); idErr != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("dispatch", idErr)
	}

	if err := errors.Join(idErr, status.Validate()); err != nil {
		return ForceDispatchStatusCommand{}, err
	}
	cmd.dispatchID = dispatchID

	return cmd, nil
}

func (c ForceDispatchStatusCommand) Validate() error {
	return c.guard.Validate(ErrForceDispatchStatusCommandIsNotConstructed)
}

func (c ForceDispatchStatusCommand) Actor() ports.Identity {
	return c.actor
}

func (c ForceDispatchStatusCommand) DispatchID() kernel.UUID {
	return c.dispatchID
}

func (c ForceDispatchStatusCommand) Status() dispatch.Status {
	return c.status
}
