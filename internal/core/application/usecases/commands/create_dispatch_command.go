package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrCreateDispatchCommandIsNotConstructed = errors.New(
	"CreateDispatchCommand must be created via NewCreateDispatchCommand constructor",
)

// CreateDispatchCommand puts a chosen truck on an order, bypassing
// auto-assignment.
type CreateDispatchCommand struct {
	actor   ports.Identity
	truckID kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateDispatchCommand(actor ports.Identity, truckID, orderID kernel.UUID) (CreateDispatchCommand, error) {
	var truckErr, orderErr error
	if err := truckID.Validate(); err != nil {
		truckErr = errs.NewValueIsRequiredErrorWithCause("truck", err)
	}
	if err := orderID.Validate(); err != nil {
		orderErr = errs.NewValueIsRequiredErrorWithCause("order", err)
	}
	if err := errors.Join(truckErr, orderErr); err != nil {
		return CreateDispatchCommand{}, err
	}

	return CreateDispatchCommand{
		actor:   actor,
		truckID: truckID,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDispatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateDispatchCommandIsNotConstructed)
}

func (c CreateDispatchCommand) Actor() ports.Identity {
	return c.actor
}

func (c CreateDispatchCommand) TruckID() kernel.UUID {
	return c.truckID
}

func (c CreateDispatchCommand) OrderID() kernel.UUID {
	return c.orderID
}
