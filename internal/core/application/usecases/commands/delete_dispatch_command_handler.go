package commands

import (
	"context"
)

// DeleteDispatchCommandHandler deletes a dispatch with its compensating
// rollback: the truck returns to idle and an in-progress order to pending.
type DeleteDispatchCommandHandler struct {
	uowFactory UoWFactory
	engine     Engine
}

func NewDeleteDispatchCommandHandler(uowFactory UoWFactory, engine Engine) DeleteDispatchCommandHandler {
	return DeleteDispatchCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (h DeleteDispatchCommandHandler) Handle(ctx context.Context, cmd DeleteDispatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireAdmin("delete dispatch"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := uow.DispatchRepository().GetForUpdate(ctx, cmd.DispatchID())
	if err != nil {
		return err
	}
	if err = h.engine.rollbackDispatch(ctx, uow, d); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.engine.announceDeleted(ctx, d)
	return nil
}
