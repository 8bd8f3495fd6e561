package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateTruckCommandIsNotConstructed = errors.New(
	"CreateTruckCommand must be created via NewCreateTruckCommand constructor",
)

// CreateTruckCommand registers a truck in the fleet. Field rules are
// enforced by the truck aggregate.
type CreateTruckCommand struct {
	actor      ports.Identity
	truckID    kernel.UUID
	plate      string
	capacity   decimal.Decimal
	driverName string

	guard guard.ConstructorGuard
}

func NewCreateTruckCommand(
	actor ports.Identity,
	truckID kernel.UUID,
	plate string,
	capacity decimal.Decimal,
	driverName string,
) (CreateTruckCommand, error) {
	if err := truckID.Validate(); err != nil {
		return CreateTruckCommand{}, err
	}
	return CreateTruckCommand{
		actor:      actor,
		truckID:    truckID,
		plate:      plate,
		capacity:   capacity,
		driverName: driverName,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTruckCommand) Validate() error {
	return c.guard.Validate(ErrCreateTruckCommandIsNotConstructed)
}

func (c CreateTruckCommand) Actor() ports.Identity     { return c.actor }
func (c CreateTruckCommand) TruckID() kernel.UUID      { return c.truckID }
func (c CreateTruckCommand) Plate() string             { return c.plate }
func (c CreateTruckCommand) Capacity() decimal.Decimal { return c.capacity }
func (c CreateTruckCommand) DriverName() string        { return c.driverName }
