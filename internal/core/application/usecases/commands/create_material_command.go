package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateMaterialCommandIsNotConstructed = errors.New(
	"CreateMaterialCommand must be created via NewCreateMaterialCommand constructor",
)

// CreateMaterialCommand opens an inventory ledger entry. An empty unit means
// material.DefaultUnit.
type CreateMaterialCommand struct {
	actor      ports.Identity
	materialID kernel.UUID
	name       string
	stock      decimal.Decimal
	unit       string

	guard guard.ConstructorGuard
}

func NewCreateMaterialCommand(
	actor ports.Identity,
	materialID kernel.UUID,
	name string,
	stock decimal.Decimal,
	unit string,
) (CreateMaterialCommand, error) {
	if err := materialID.Validate(); err != nil {
		return CreateMaterialCommand{}, err
	}
	return CreateMaterialCommand{
		actor:      actor,
		materialID: materialID,
		name:       name,
		stock:      stock,
		unit:       unit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateMaterialCommand) Validate() error {
	return c.guard.Validate(ErrCreateMaterialCommandIsNotConstructed)
}

func (c CreateMaterialCommand) Actor() ports.Identity {
	return c.actor
}

func (c CreateMaterialCommand) MaterialID() kernel.UUID {
	return c.materialID
}

func (c CreateMaterialCommand) Name() string {
	return c.name
}

func (c CreateMaterialCommand) Stock() decimal.Decimal {
	return c.stock
}

func (c CreateMaterialCommand) Unit() string {
	return c.unit
}
