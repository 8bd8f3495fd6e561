package order

import (
	"errors"
	"strings"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the order book.
//
// Invariants:
//   - id and customerID are valid identifiers
//   - materialType is non-empty and quantity is positive; both are immutable
//   - status is one of the valid statuses
type Order struct {
	kernel.Versioned

	id         kernel.UUID
	customerID kernel.UUID

	// materialType is matched against material names, not a foreign key
	materialType string
	quantity     decimal.Decimal
	status       Status

	guard guard.ConstructorGuard
}

// NewOrder creates a pending order.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, "Coal", decimal.NewFromInt(15))
func NewOrder(id, customerID kernel.UUID, materialType string, quantity decimal.Decimal) (*Order, error) {
	return RestoreOrder(id, customerID, materialType, quantity, Pending, 0)
}

// RestoreOrder rebuilds an order from persisted state.
func RestoreOrder(
	id, customerID kernel.UUID,
	materialType string,
	quantity decimal.Decimal,
	status Status,
	version int64,
) (*Order, error) {
	o := &Order{
		Versioned: kernel.RestoreVersion(version),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setMaterialType(materialType),
		o.setQuantity(quantity),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) MaterialType() string {
	return o.materialType
}

func (o *Order) Quantity() decimal.Decimal {
	return o.quantity
}

func (o *Order) Status() Status {
	return o.status
}

// Start moves a pending order in progress. It reports whether the status changed;
// orders in any other state are left untouched.
func (o *Order) Start() bool {
	if o.status != Pending {
		return false
	}
	o.status = InProgress
	return true
}

// Complete marks the order completed. It reports false when the order was
// already completed, which is what keys the stock deduction to a single
// completion per order.
func (o *Order) Complete() bool {
	if o.status == Completed {
		return false
	}
	o.status = Completed
	return true
}

// RevertToPending undoes Start when the dispatch carrying the order is deleted.
func (o *Order) RevertToPending() bool {
	if o.status != InProgress {
		return false
	}
	o.status = Pending
	return true
}

// ChangeStatus is the administrative override. It bypasses the workflow and
// fires no cascade.
func (o *Order) ChangeStatus(status Status) error {
	return o.setStatus(status)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setMaterialType(materialType string) error {
	materialType = strings.TrimSpace(materialType)
	if materialType == "" {
		return errs.NewValueIsRequiredError("material type")
	}
	o.materialType = materialType
	return nil
}

func (o *Order) setQuantity(quantity decimal.Decimal) error {
	q, err := kernel.PositiveQuantity("quantity", quantity)
	if err != nil {
		return err
	}
	o.quantity = q
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
