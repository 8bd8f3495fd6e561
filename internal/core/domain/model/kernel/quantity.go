package kernel

import (
	"fmt"

	"haulage/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// QuantityPrecision is the number of fractional digits kept for tonnages and weights.
const QuantityPrecision = 3

// PositiveQuantity validates that q is strictly greater than zero and
// rounds it to QuantityPrecision.
func PositiveQuantity(paramName string, q decimal.Decimal) (decimal.Decimal, error) {
	if !q.IsPositive() {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(
			paramName, fmt.Errorf("%s is not greater than 0", q.String()))
	}
	return q.Round(QuantityPrecision), nil
}

// NonNegativeQuantity validates that q is zero or greater and rounds it.
func NonNegativeQuantity(paramName string, q decimal.Decimal) (decimal.Decimal, error) {
	if q.IsNegative() {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(
			paramName, fmt.Errorf("%s is negative", q.String()))
	}
	return q.Round(QuantityPrecision), nil
}

// ClampedAdd returns max(0, base+delta) and whether the clamp was applied.
func ClampedAdd(base, delta decimal.Decimal) (decimal.Decimal, bool) {
	sum := base.Add(delta)
	if sum.IsNegative() {
		return decimal.Zero, true
	}
	return sum, false
}
