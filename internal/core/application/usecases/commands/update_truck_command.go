package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateTruckCommandIsNotConstructed = errors.New(
	"UpdateTruckCommand must be created via NewUpdateTruckCommand constructor",
)

// UpdateTruckCommand replaces the descriptive fields of a truck. Status is
// changed through ChangeTruckStatusCommand only.
type UpdateTruckCommand struct {
	actor      ports.Identity
	truckID    kernel.UUID
	plate      string
	capacity   decimal.Decimal
	driverName string

	guard guard.ConstructorGuard
}

func NewUpdateTruckCommand(
	actor ports.Identity,
	truckID kernel.UUID,
	plate string,
	capacity decimal.Decimal,
	driverName string,
) (UpdateTruckCommand, error) {
	if err := truckID.Validate(); err != nil {
		return UpdateTruckCommand{}, err
	}
	return UpdateTruckCommand{
		actor:      actor,
		truckID:    truckID,
		plate:      plate,
		capacity:   capacity,
		driverName: driverName,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateTruckCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTruckCommandIsNotConstructed)
}

func (c UpdateTruckCommand) Actor() ports.Identity     { return c.actor }
func (c UpdateTruckCommand) TruckID() kernel.UUID      { return c.truckID }
func (c UpdateTruckCommand) Plate() string             { return c.plate }
func (c UpdateTruckCommand) Capacity() decimal.Decimal { return c.capacity }
func (c UpdateTruckCommand) DriverName() string        { return c.driverName }
