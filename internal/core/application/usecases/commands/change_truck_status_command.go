package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/truck"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/guard"
)

var ErrChangeTruckStatusCommandIsNotConstructed = errors.New(
	"ChangeTruckStatusCommand must be created via NewChangeTruckStatusCommand constructor",
)

type ChangeTruckStatusCommand struct {
	actor   ports.Identity
	truckID kernel.UUID
	status  truck.Status

	guard guard.ConstructorGuard
}

func NewChangeTruckStatusCommand(
	actor ports.Identity,
	truckID kernel.UUID,
	status truck.Status,
) (ChangeTruckStatusCommand, error) {
	if err := errors.Join(truckID.Validate(), status.Validate()); err != nil {
		return ChangeTruckStatusCommand{}, err
	}
	return ChangeTruckStatusCommand{
		actor:   actor,
		truckID: truckID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeTruckStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeTruckStatusCommandIsNotConstructed)
}

func (c ChangeTruckStatusCommand) Actor() ports.Identity {
	return c.actor
}

func (c ChangeTruckStatusCommand) TruckID() kernel.UUID {
	return c.truckID
}

func (c ChangeTruckStatusCommand) Status() truck.Status {
	return c.status
}
