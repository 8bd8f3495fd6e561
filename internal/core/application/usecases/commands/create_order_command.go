package commands

import (
	"errors"
	"strings"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrMaterialTypeIsRequired = errs.NewValueIsRequiredError("material type")
)

// CreateOrderCommand represents a request to book a material order for a
// customer. Creating it triggers auto-assignment of the first available truck.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, kernel.NewUUID(), customerID, "Coal", decimal.NewFromInt(20))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	res, err := handler.Handle(ctx, cmd)
//	if res.DispatchID == nil {
//	    // no idle truck; the order waits as pending
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor        ports.Identity
	orderID      kernel.UUID
	customerID   kernel.UUID
	materialType string
	quantity     decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order identity, the customer
// reference, a non-empty material type and a positive quantity.
func NewCreateOrderCommand(
	actor ports.Identity,
	orderID, customerID kernel.UUID,
	materialType string,
	quantity decimal.Decimal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setMaterialType(materialType),
		cmd.setQuantity(quantity),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() ports.Identity {
	return c.actor
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) MaterialType() string {
	return c.materialType
}

func (c CreateOrderCommand) Quantity() decimal.Decimal {
	return c.quantity
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setMaterialType(materialType string) error {
	materialType = strings.TrimSpace(materialType)
	if materialType == "" {
		return ErrMaterialTypeIsRequired
	}

	c.materialType = materialType
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity decimal.Decimal) error {
	q, err := kernel.PositiveQuantity("quantity", quantity)
	if err != nil {
		return err
	}

	c.quantity = q
	return nil
}
