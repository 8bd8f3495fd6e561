package commands

import (
	"context"
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/truck"
	"haulage/internal/core/domain/services"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"
)

// CreateOrderResult reports the booked order and, when a truck was free,
// the dispatch created for it.
type CreateOrderResult struct {
	OrderID    kernel.UUID
	DispatchID *kernel.UUID
	TruckID    *kernel.UUID
}

// CreateOrderCommandHandler books an order and auto-assigns it in the same
// transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, engine)
//	res, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
	engine     Engine
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, engine Engine) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
		engine:     engine,
	}
}

// Handle saves the order as pending, then locks the oldest idle unclaimed
// truck (skipping trucks other transactions hold) and dispatches the order
// to it. Without a free truck the order is still saved and DispatchID is nil.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}
	if err := cmd.Actor().RequireAdmin("create order"); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID()); err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.MaterialType(), cmd.Quantity())
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	result := CreateOrderResult{OrderID: o.ID()}
	if err = h.autoAssign(ctx, uow, o, &result); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	h.engine.metrics().AutoAssignment(result.DispatchID != nil)
	if result.DispatchID == nil {
		h.engine.Logger.Info().
			Str("order_id", o.ID().String()).
			Msg("no available truck, order left pending")
		h.engine.publish(ctx, ports.Event{
			Type:        ports.EventOrderUnassigned,
			AggregateID: o.ID().String(),
		})
		return result, nil
	}

	h.engine.Logger.Info().
		Str("order_id", o.ID().String()).
		Str("dispatch_id", result.DispatchID.String()).
		Str("truck_id", result.TruckID.String()).
		Msg("order auto-assigned")
	h.engine.publish(ctx, ports.Event{
		Type:        ports.EventDispatchCreated,
		AggregateID: result.DispatchID.String(),
		Data: map[string]any{
			"order_id": o.ID().String(),
			"truck_id": result.TruckID.String(),
		},
	})
	return result, nil
}

func (h *CreateOrderCommandHandler) autoAssign(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	result *CreateOrderResult,
) error {
	t, err := uow.TruckRepository().LockFirstAvailable(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	d, chosen, err := h.dispatcher.Dispatch(o, []*truck.Truck{t})
	if err != nil {
		return err
	}

	if err = uow.DispatchRepository().Add(ctx, d); err != nil {
		return err
	}
	if err = uow.TruckRepository().Update(ctx, chosen); err != nil {
		return err
	}

	dispatchID, truckID := d.ID(), chosen.ID()
	result.DispatchID = &dispatchID
	result.TruckID = &truckID
	return nil
}
