package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/guard"
)

var ErrSaveCustomerCommandIsNotConstructed = errors.New(
	"SaveCustomerCommand must be created via NewCreateCustomerCommand or NewUpdateCustomerCommand",
)

// SaveCustomerCommand creates a customer or replaces an existing one's
// attributes. Which of the two is decided by the constructor used.
type SaveCustomerCommand struct {
	actor      ports.Identity
	customerID kernel.UUID
	name       string
	contact    string
	email      string
	update     bool

	guard guard.ConstructorGuard
}

func NewCreateCustomerCommand(
	actor ports.Identity,
	customerID kernel.UUID,
	name, contact, email string,
) (SaveCustomerCommand, error) {
	return newSaveCustomerCommand(actor, customerID, name, contact, email, false)
}

func NewUpdateCustomerCommand(
	actor ports.Identity,
	customerID kernel.UUID,
	name, contact, email string,
) (SaveCustomerCommand, error) {
	return newSaveCustomerCommand(actor, customerID, name, contact, email, true)
}

func newSaveCustomerCommand(
	actor ports.Identity,
	customerID kernel.UUID,
	name, contact, email string,
	update bool,
) (SaveCustomerCommand, error) {
	if err := customerID.Validate(); err != nil {
		return SaveCustomerCommand{}, err
	}
	return SaveCustomerCommand{
		actor:      actor,
		customerID: customerID,
		name:       name,
		contact:    contact,
		email:      email,
		update:     update,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SaveCustomerCommand) Validate() error {
	return c.guard.Validate(ErrSaveCustomerCommandIsNotConstructed)
}

func (c SaveCustomerCommand) Actor() ports.Identity   { return c.actor }
func (c SaveCustomerCommand) CustomerID() kernel.UUID { return c.customerID }
func (c SaveCustomerCommand) Name() string            { return c.name }
func (c SaveCustomerCommand) Contact() string         { return c.contact }
func (c SaveCustomerCommand) Email() string           { return c.email }
func (c SaveCustomerCommand) IsUpdate() bool          { return c.update }
