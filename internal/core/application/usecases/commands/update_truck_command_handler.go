package commands

import (
	"context"

	"haulage/internal/core/domain/model/truck"
)

type UpdateTruckCommandHandler struct {
	uowFactory TruckUoWFactory
}

func NewUpdateTruckCommandHandler(uowFactory TruckUoWFactory) UpdateTruckCommandHandler {
	return UpdateTruckCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateTruckCommandHandler) Handle(ctx context.Context, cmd UpdateTruckCommand) (*truck.Truck, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireAdmin("update truck"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	t, err := uow.TruckRepository().GetForUpdate(ctx, cmd.TruckID())
	if err != nil {
		return nil, err
	}
	if err = t.UpdateDetails(cmd.Plate(), cmd.Capacity(), cmd.DriverName()); err != nil {
		return nil, err
	}
	if err = uow.TruckRepository().Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}
