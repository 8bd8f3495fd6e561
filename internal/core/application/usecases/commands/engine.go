package commands

import (
	"context"
	"time"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/material"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/truck"
	"haulage/internal/core/domain/services"
	"haulage/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// EngineMetrics is the part of the metrics sink the dispatch engine reports to.
type EngineMetrics interface {
	TransitionApplied(path, status string)
	StockClamped(material string)
	AutoAssignment(assigned bool)
	EvidenceStored(stage string, err error)
}

// Entry paths into the dispatch state machine, as reported to metrics and events.
const (
	PathStaged = "staged"
	PathForced = "forced"
	PathCancel = "cancel"
)

// Engine carries the collaborators shared by every handler that changes a
// dispatch or creates one.
type Engine struct {
	Clock     kernel.Clock
	Publisher ports.EventPublisher
	Metrics   EngineMetrics
	Logger    zerolog.Logger
}

// TransitionResult describes a committed dispatch status change and the
// cascade it fired.
type TransitionResult struct {
	DispatchID  kernel.UUID
	Status      dispatch.Status
	TruckStatus truck.Status
	OrderStatus order.Status

	StockDeducted bool
	StockClamped  bool
	// MaterialSeeded is set when the order named a material the ledger did
	// not know; it was created at zero stock before the deduction.
	MaterialSeeded bool
	Material       string
	Deducted       decimal.Decimal
	Stock          decimal.Decimal

	// Evidence holds the media records stored with a staged command.
	Evidence []EvidenceRecord
}

// transition loads a dispatch with its truck and order under row locks,
// lets mutate change the dispatch, fires the cascade for the status it
// ended in and saves everything that changed. The caller owns the
// transaction.
func (e Engine) transition(
	ctx context.Context,
	uow UoW,
	dispatchID kernel.UUID,
	mutate func(d *dispatch.Dispatch) error,
) (TransitionResult, error) {
	dispatchRepo := uow.DispatchRepository()
	truckRepo := uow.TruckRepository()
	orderRepo := uow.OrderRepository()

	d, err := dispatchRepo.GetForUpdate(ctx, dispatchID)
	if err != nil {
		return TransitionResult{}, err
	}

	if err = mutate(d); err != nil {
		return TransitionResult{}, err
	}

	t, err := truckRepo.GetForUpdate(ctx, d.TruckID())
	if err != nil {
		return TransitionResult{}, err
	}
	o, err := orderRepo.GetForUpdate(ctx, d.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	cascade := services.NewDispatchCascade()

	var (
		m      *material.Material
		seeded bool
	)
	if cascade.NeedsMaterial(d.Status(), o) {
		m, seeded, err = uow.MaterialRepository().LockOrSeed(ctx, o.MaterialType())
		if err != nil {
			return TransitionResult{}, err
		}
		if seeded {
			e.Logger.Warn().
				Str("material", o.MaterialType()).
				Str("order_id", o.ID().String()).
				Msg("completed order names an unknown material, seeded at zero stock")
		}
	}

	out, err := cascade.Apply(d, t, o, m)
	if err != nil {
		return TransitionResult{}, err
	}

	if err = dispatchRepo.Update(ctx, d); err != nil {
		return TransitionResult{}, err
	}
	if out.TruckChanged {
		if err = truckRepo.Update(ctx, t); err != nil {
			return TransitionResult{}, err
		}
	}
	if out.OrderChanged {
		if err = orderRepo.Update(ctx, o); err != nil {
			return TransitionResult{}, err
		}
	}

	result := TransitionResult{
		DispatchID:     d.ID(),
		Status:         d.Status(),
		TruckStatus:    t.Status(),
		OrderStatus:    o.Status(),
		StockDeducted:  out.StockDeducted,
		StockClamped:   out.StockClamped,
		MaterialSeeded: seeded,
		Deducted:       out.Deducted,
	}
	if out.StockDeducted {
		if err = uow.MaterialRepository().Update(ctx, m); err != nil {
			return TransitionResult{}, err
		}
		result.Material = m.Name()
		result.Stock = m.Stock()
	}

	return result, nil
}

// announce reports a committed transition to metrics and the event bus.
func (e Engine) announce(ctx context.Context, path string, r TransitionResult) {
	e.metrics().TransitionApplied(path, r.Status.String())

	e.Logger.Info().
		Str("dispatch_id", r.DispatchID.String()).
		Str("path", path).
		Str("status", r.Status.String()).
		Str("truck_status", r.TruckStatus.String()).
		Str("order_status", r.OrderStatus.String()).
		Bool("stock_deducted", r.StockDeducted).
		Msg("dispatch transition committed")

	e.publish(ctx, ports.Event{
		Type:        ports.EventDispatchTransition,
		AggregateID: r.DispatchID.String(),
		Data: map[string]any{
			"path":         path,
			"status":       r.Status.String(),
			"truck_status": r.TruckStatus.String(),
			"order_status": r.OrderStatus.String(),
		},
	})

	if r.MaterialSeeded {
		e.publish(ctx, ports.Event{
			Type:        ports.EventMaterialSeeded,
			AggregateID: r.Material,
			Data:        map[string]any{"dispatch_id": r.DispatchID.String()},
		})
	}
	if r.StockClamped {
		e.metrics().StockClamped(r.Material)
		e.Logger.Warn().
			Str("material", r.Material).
			Str("deducted", r.Deducted.String()).
			Msg("stock deduction clamped at zero")
		e.publish(ctx, ports.Event{
			Type:        ports.EventStockClamped,
			AggregateID: r.Material,
			Data: map[string]any{
				"dispatch_id": r.DispatchID.String(),
				"requested":   r.Deducted.String(),
			},
		})
	}
}

// publish is best effort: a failed publish is logged and otherwise ignored.
func (e Engine) publish(ctx context.Context, event ports.Event) {
	if e.Publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.now()
	}
	if err := e.Publisher.Publish(ctx, event); err != nil {
		e.Logger.Warn().Err(err).Str("event", event.Type).Msg("event publish failed")
	}
}

// now is truncated to the microsecond PostgreSQL keeps, so values read back
// compare equal to the ones written.
func (e Engine) now() time.Time {
	clock := e.Clock
	if clock == nil {
		clock = kernel.SystemClock()
	}
	return clock.Now().UTC().Truncate(time.Microsecond)
}

func (e Engine) metrics() EngineMetrics {
	if e.Metrics == nil {
		return noopMetrics{}
	}
	return e.Metrics
}

type noopMetrics struct{}

func (noopMetrics) TransitionApplied(string, string) {}
func (noopMetrics) StockClamped(string)              {}
func (noopMetrics) AutoAssignment(bool)              {}
func (noopMetrics) EvidenceStored(string, error)     {}
