package queries

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is the stock level below which a material counts as low.
var DefaultLowStockThreshold = decimal.NewFromInt(10)

var ErrListMaterialsQueryIsNotConstructed = errors.New(
	"ListMaterialsQuery must be created via NewListMaterialsQuery constructor",
)

// ListMaterialsQuery lists the inventory ledger by name. Every row is
// flagged against threshold; lowStockOnly drops the rest.
type ListMaterialsQuery struct {
	lowStockOnly bool
	threshold    decimal.Decimal

	guard guard.ConstructorGuard
}

func NewListMaterialsQuery(lowStockOnly bool, threshold decimal.Decimal) (ListMaterialsQuery, error) {
	threshold, err := kernel.NonNegativeQuantity("threshold", threshold)
	if err != nil {
		return ListMaterialsQuery{}, err
	}
	return ListMaterialsQuery{lowStockOnly: lowStockOnly, threshold: threshold, guard: guard.NewConstructorGuard()}, nil
}

func (q ListMaterialsQuery) Validate() error {
	return q.guard.Validate(ErrListMaterialsQueryIsNotConstructed)
}
