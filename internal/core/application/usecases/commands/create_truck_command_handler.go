package commands

import (
	"context"

	"haulage/internal/core/domain/model/truck"
)

type CreateTruckCommandHandler struct {
	uowFactory TruckUoWFactory
}

func NewCreateTruckCommandHandler(uowFactory TruckUoWFactory) CreateTruckCommandHandler {
	return CreateTruckCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle adds an idle, unclaimed truck. A plate already in use is rejected
// by the repository.
func (h CreateTruckCommandHandler) Handle(ctx context.Context, cmd CreateTruckCommand) (*truck.Truck, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireAdmin("create truck"); err != nil {
		return nil, err
	}

	t, err := truck.NewTruck(cmd.TruckID(), cmd.Plate(), cmd.Capacity(), cmd.DriverName())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TruckRepository().Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}
