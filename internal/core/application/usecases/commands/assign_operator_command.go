package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrAssignOperatorCommandIsNotConstructed = errors.New(
	"AssignOperatorCommand must be created via NewAssignOperatorCommand constructor",
)

// AssignOperatorCommand makes a user the operator responsible for a dispatch.
type AssignOperatorCommand struct {
	actor      ports.Identity
	dispatchID kernel.UUID
	operatorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignOperatorCommand(actor ports.Identity, dispatchID, operatorID kernel.UUID) (AssignOperatorCommand, error) {
	var dispatchErr, operatorErr error
	if err := dispatchID.Validate(); err != nil {
		dispatchErr = errs.NewValueIsRequiredErrorWithCause("dispatch", err)
	}
	if err := operatorID.Validate(); err != nil {
		operatorErr = errs.NewValueIsRequiredErrorWithCause("operator", err)
	}
	if err := errors.Join(dispatchErr, operatorErr); err != nil {
		return AssignOperatorCommand{}, err
	}

	return AssignOperatorCommand{
		actor:      actor,
		dispatchID: dispatchID,
		operatorID: operatorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignOperatorCommand) Validate() error {
	return c.guard.Validate(ErrAssignOperatorCommandIsNotConstructed)
}

func (c AssignOperatorCommand) Actor() ports.Identity {
	return c.actor
}

func (c AssignOperatorCommand) DispatchID() kernel.UUID {
	return c.dispatchID
}

func (c AssignOperatorCommand) OperatorID() kernel.UUID {
	return c.operatorID
}
