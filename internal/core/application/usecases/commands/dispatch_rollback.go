package commands

import (
	"context"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/services"
	"haulage/internal/core/ports"
)

// rollbackDispatch undoes what a dispatch did to its truck and order and
// deletes it. The dispatch must already be locked; truck and order are
// locked here, keeping the dispatch, truck, order lock order.
func (e Engine) rollbackDispatch(ctx context.Context, uow UoW, d *dispatch.Dispatch) error {
	truckRepo := uow.TruckRepository()
	orderRepo := uow.OrderRepository()

	t, err := truckRepo.GetForUpdate(ctx, d.TruckID())
	if err != nil {
		return err
	}
	o, err := orderRepo.GetForUpdate(ctx, d.OrderID())
	if err != nil {
		return err
	}

	out, err := services.NewDispatchCascade().Rollback(d, t, o)
	if err != nil {
		return err
	}

	if out.TruckChanged {
		if err = truckRepo.Update(ctx, t); err != nil {
			return err
		}
	}
	if out.OrderChanged {
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	return uow.DispatchRepository().Delete(ctx, d.ID())
}

func (e Engine) announceDeleted(ctx context.Context, d *dispatch.Dispatch) {
	e.Logger.Info().
		Str("dispatch_id", d.ID().String()).
		Str("truck_id", d.TruckID().String()).
		Str("order_id", d.OrderID().String()).
		Msg("dispatch deleted and rolled back")
	e.publish(ctx, ports.Event{
		Type:        ports.EventDispatchDeleted,
		AggregateID: d.ID().String(),
		Data: map[string]any{
			"truck_id": d.TruckID().String(),
			"order_id": d.OrderID().String(),
		},
	})
}
