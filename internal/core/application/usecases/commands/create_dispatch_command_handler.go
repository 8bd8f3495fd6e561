package commands

import (
	"context"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/services"
	"haulage/internal/core/ports"
)

type CreateDispatchCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
	engine     Engine
}

func NewCreateDispatchCommandHandler(uowFactory UoWFactory, engine Engine) CreateDispatchCommandHandler {
	return CreateDispatchCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
		engine:     engine,
	}
}

// Handle locks the truck and then the order, and claims the truck for a new
// assigned dispatch. A truck that is in transit or held by another dispatch
// is rejected with a guard violation.
func (h CreateDispatchCommandHandler) Handle(ctx context.Context, cmd CreateDispatchCommand) (*dispatch.Dispatch, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireOperator("create dispatch"); err != nil {
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
	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	d, err := h.dispatcher.Assign(t, o)
	if err != nil {
		return nil, err
	}
	if err = uow.DispatchRepository().Add(ctx, d); err != nil {
		return nil, err
	}
	if err = uow.TruckRepository().Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.engine.publish(ctx, ports.Event{
		Type:        ports.EventDispatchCreated,
		AggregateID: d.ID().String(),
		Data: map[string]any{
			"order_id": o.ID().String(),
			"truck_id": t.ID().String(),
		},
	})
	return d, nil
}
