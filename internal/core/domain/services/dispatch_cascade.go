package services

import (
	"errors"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/material"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/truck"

	"github.com/shopspring/decimal"
)

// ErrMaterialIsRequired is returned by Apply when a completion must deduct
// stock but no material was supplied. Callers check NeedsMaterial first.
var ErrMaterialIsRequired = errors.New("material is required to complete the order")

// Outcome reports which aggregates a cascade changed, so the caller saves
// only those.
type Outcome struct {
	TruckChanged  bool
	OrderChanged  bool
	StockDeducted bool
	// StockClamped is set when the deduction hit zero and discarded the rest.
	StockClamped bool
	Deducted     decimal.Decimal
}

// DispatchCascade applies the effects a dispatch status has on its truck,
// its order and the material ledger.
//
//	in_transit: truck on the road, order pending -> in_progress
//	completed:  order -> completed and stock deducted once, truck parked
//	cancelled:  truck claim released
//
// Each effect checks current state first, so applying the same status twice
// changes nothing the second time.
type DispatchCascade struct{}

func NewDispatchCascade() DispatchCascade {
	return DispatchCascade{}
}

// NeedsMaterial reports whether entering status will deduct stock for o.
func (DispatchCascade) NeedsMaterial(entered dispatch.Status, o *order.Order) bool {
	return entered == dispatch.Completed && o.Status() != order.Completed
}

// Apply fires the cascade for the status d has just entered. m may be nil
// unless NeedsMaterial is true.
func (c DispatchCascade) Apply(
	d *dispatch.Dispatch,
	t *truck.Truck,
	o *order.Order,
	m *material.Material,
) (Outcome, error) {
	var out Outcome
	if err := errors.Join(d.Validate(), t.Validate(), o.Validate()); err != nil {
		return out, err
	}

	switch d.Status() {
	case dispatch.InTransit:
		out.TruckChanged = t.Depart(d.ID())
		out.OrderChanged = o.Start()

	case dispatch.Completed:
		if c.NeedsMaterial(d.Status(), o) {
			if err := m.Validate(); err != nil {
				return out, errors.Join(ErrMaterialIsRequired, err)
			}
			o.Complete()
			out.OrderChanged = true
			out.StockDeducted = true
			out.Deducted = o.Quantity()
			out.StockClamped = m.Deduct(o.Quantity())
		}
		out.TruckChanged = t.Park(d.ID())

	case dispatch.Cancelled:
		out.TruckChanged = t.Release(d.ID())
	}

	return out, nil
}

// Rollback compensates for deleting d: the truck goes back to idle no matter
// what, the claim is dropped if d held it, and an in-progress order returns
// to pending. Auto-assignment is not re-run.
func (DispatchCascade) Rollback(d *dispatch.Dispatch, t *truck.Truck, o *order.Order) (Outcome, error) {
	var out Outcome
	if err := errors.Join(d.Validate(), t.Validate(), o.Validate()); err != nil {
		return out, err
	}
	out.TruckChanged = t.Park(d.ID())
	out.OrderChanged = o.RevertToPending()
	return out, nil
}
