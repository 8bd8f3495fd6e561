// Package customer holds the customer directory. Customers are flat
// reference data owned by orders; nothing in the dispatch engine changes them.
package customer

import (
	"errors"
	"net/mail"
	"strings"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var (
	ErrNameIsRequired           = errs.NewValueIsRequiredError("name")
	ErrContactIsRequired        = errs.NewValueIsRequiredError("contact")
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
)

type Customer struct {
	id      kernel.UUID
	name    string
	contact string
	email   string

	guard guard.ConstructorGuard
}

// NewCustomer creates a customer. email may be empty.
func NewCustomer(id kernel.UUID, name, contact, email string) (*Customer, error) {
	c := &Customer{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setContact(contact),
		c.setEmail(email),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func RestoreCustomer(id kernel.UUID, name, contact, email string) (*Customer, error) {
	return NewCustomer(id, name, contact, email)
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID { return c.id }
func (c *Customer) Name() string    { return c.name }
func (c *Customer) Contact() string { return c.contact }
func (c *Customer) Email() string   { return c.email }

// Update replaces all attributes, or none when any is invalid.
func (c *Customer) Update(name, contact, email string) error {
	next := *c
	if err := errors.Join(
		next.setName(name),
		next.setContact(contact),
		next.setEmail(email),
	); err != nil {
		return err
	}
	c.name, c.contact, c.email = next.name, next.contact, next.email
	return nil
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Customer) setContact(contact string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return ErrContactIsRequired
	}
	c.contact = contact
	return nil
}

func (c *Customer) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		c.email = ""
		return nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	c.email = email
	return nil
}
