package commands

import (
	"context"

	"haulage/internal/core/domain/model/dispatch"
)

// DeleteOrderCommandHandler deletes an order after rolling back every one of
// its dispatches, all in one transaction.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
	engine     Engine
}

func NewDeleteOrderCommandHandler(uowFactory UoWFactory, engine Engine) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireAdmin("delete order"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	dispatches, err := uow.DispatchRepository().ListByOrderForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	for _, d := range dispatches {
		if err = h.engine.rollbackDispatch(ctx, uow, d); err != nil {
			return err
		}
	}

	if _, err = uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID()); err != nil {
		return err
	}
	if err = uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.announce(ctx, cmd, dispatches)
	return nil
}

func (h DeleteOrderCommandHandler) announce(ctx context.Context, cmd DeleteOrderCommand, dispatches []*dispatch.Dispatch) {
	for _, d := range dispatches {
		h.engine.announceDeleted(ctx, d)
	}
	h.engine.Logger.Info().
		Str("order_id", cmd.OrderID().String()).
		Int("dispatches", len(dispatches)).
		Msg("order deleted")
}
