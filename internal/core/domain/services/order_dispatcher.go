package services

import (
	"errors"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/truck"
	"haulage/internal/pkg/errs"
)

// ErrNoAvailableTruck is returned when none of the candidate trucks is idle and unclaimed.
var ErrNoAvailableTruck = errors.New("no available truck")

// OrderDispatcher creates the dispatch for a pending order.
//
// Selection is deliberately simple: the first available truck in the order
// given wins. There is no ranking by capacity or location. Callers pass
// trucks they have already locked, so claiming here cannot race.
//
// Example usage:
//
//	d, chosen, err := services.NewOrderDispatcher().Dispatch(o, lockedTrucks)
//	if errors.Is(err, services.ErrNoAvailableTruck) {
//	    // order stays pending without a dispatch
//	}
type OrderDispatcher struct {
	newID func() kernel.UUID
}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{newID: kernel.NewUUID}
}

// Dispatch creates an assigned dispatch for o on the first available truck
// and claims that truck for it. The order itself stays pending until the
// journey starts.
func (s OrderDispatcher) Dispatch(o *order.Order, trucks []*truck.Truck) (*dispatch.Dispatch, *truck.Truck, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}
	if o.Status() != order.Pending {
		return nil, nil, errs.NewGuardViolationError("dispatch order", o.Status().String(), order.Pending.String())
	}

	chosen, err := s.firstAvailable(trucks)
	if err != nil {
		return nil, nil, err
	}

	d, err := s.Assign(chosen, o)
	if err != nil {
		return nil, nil, err
	}
	return d, chosen, nil
}

// Assign creates an assigned dispatch of t for o and claims t. It is the
// explicit creation path and does not look at the order status.
func (s OrderDispatcher) Assign(t *truck.Truck, o *order.Order) (*dispatch.Dispatch, error) {
	if err := errors.Join(t.Validate(), o.Validate()); err != nil {
		return nil, err
	}

	newID := s.newID
	if newID == nil {
		newID = kernel.NewUUID
	}

	d, err := dispatch.NewDispatch(newID(), t.ID(), o.ID())
	if err != nil {
		return nil, err
	}
	if err = t.Claim(d.ID()); err != nil {
		return nil, err
	}
	return d, nil
}

func (s OrderDispatcher) firstAvailable(trucks []*truck.Truck) (*truck.Truck, error) {
	for _, t := range trucks {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if t.IsAvailable() {
			return t, nil
		}
	}
	return nil, ErrNoAvailableTruck
}
