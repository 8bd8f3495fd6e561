package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAdjustMaterialStockCommandIsNotConstructed = errors.New(
	"AdjustMaterialStockCommand must be created via NewAdjustMaterialStockCommand constructor",
)

// AdjustMaterialStockCommand applies a signed delta to a material's stock:
// deliveries in are positive, write-offs negative.
type AdjustMaterialStockCommand struct {
	actor      ports.Identity
	materialID kernel.UUID
	delta      decimal.Decimal

	guard guard.ConstructorGuard
}

func NewAdjustMaterialStockCommand(
	actor ports.Identity,
	materialID kernel.UUID,
	delta decimal.Decimal,
) (AdjustMaterialStockCommand, error) {
	if err := materialID.Validate(); err != nil {
		return AdjustMaterialStockCommand{}, err
	}
	return AdjustMaterialStockCommand{
		actor:      actor,
		materialID: materialID,
		delta:      delta.Round(kernel.QuantityPrecision),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustMaterialStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustMaterialStockCommandIsNotConstructed)
}

func (c AdjustMaterialStockCommand) Actor() ports.Identity {
	return c.actor
}

func (c AdjustMaterialStockCommand) MaterialID() kernel.UUID {
	return c.materialID
}

func (c AdjustMaterialStockCommand) Delta() decimal.Decimal {
	return c.delta
}
