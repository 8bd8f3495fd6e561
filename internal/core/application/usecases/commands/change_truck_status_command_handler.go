package commands

import (
	"context"

	"haulage/internal/core/domain/model/truck"
)

// ChangeTruckStatusCommandHandler is the fleet management status write. It
// fails with a guard violation while a dispatch holds the truck; from then
// on only the dispatch engine moves it.
type ChangeTruckStatusCommandHandler struct {
	uowFactory TruckUoWFactory
}

func NewChangeTruckStatusCommandHandler(uowFactory TruckUoWFactory) ChangeTruckStatusCommandHandler {
	return ChangeTruckStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ChangeTruckStatusCommandHandler) Handle(ctx context.Context, cmd ChangeTruckStatusCommand) (*truck.Truck, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireAdmin("change truck status"); err != nil {
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
	if err = t.ChangeStatus(cmd.Status()); err != nil {
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
