package commands

import (
	"context"

	"haulage/internal/core/domain/model/customer"
)

type SaveCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
}

func NewSaveCustomerCommandHandler(uowFactory CustomerUoWFactory) SaveCustomerCommandHandler {
	return SaveCustomerCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h SaveCustomerCommandHandler) Handle(ctx context.Context, cmd SaveCustomerCommand) (*customer.Customer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireAdmin("save customer"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CustomerRepository()

	var (
		c   *customer.Customer
		err error
	)
	if cmd.IsUpdate() {
		if c, err = repo.Get(ctx, cmd.CustomerID()); err != nil {
			return nil, err
		}
		if err = c.Update(cmd.Name(), cmd.Contact(), cmd.Email()); err != nil {
			return nil, err
		}
		err = repo.Update(ctx, c)
	} else {
		if c, err = customer.NewCustomer(cmd.CustomerID(), cmd.Name(), cmd.Contact(), cmd.Email()); err != nil {
			return nil, err
		}
		err = repo.Add(ctx, c)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
