package dispatch

import (
	"errors"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrDispatchIsNotConstructed = errors.New("Dispatch must be created via NewDispatch constructor")

// Dispatch is the aggregate root of the dispatch engine. It pairs one truck
// with one order and records every yard stage the pair goes through: the
// departure, both weighings with their notes, the unload and the completion.
//
// Only Apply moves a dispatch along the staged path; ForceStatus and Cancel
// are the administrative escapes. Truck, order and stock side effects are
// not handled here but by the engine that loads the aggregates together.
//
// Example usage:
//
//	d, err := dispatch.NewDispatch(kernel.NewUUID(), truckID, orderID)
//	if err != nil {
//	    return err
//	}
//	err = d.Apply(dispatch.Transition{Action: dispatch.ActionStartJourney}, clock.Now())
//	if err != nil {
//	    return err
//	}
//	gross := decimal.NewFromInt(35)
//	err = d.Apply(dispatch.Transition{Action: dispatch.ActionWeighIn, Weight: &gross}, clock.Now())
type Dispatch struct {
	kernel.Versioned

	id         kernel.UUID
	truckID    kernel.UUID
	orderID    kernel.UUID
	operatorID *kernel.UUID
	status     Status

	startJourneyTime *time.Time
	departureTime    *time.Time
	weighInTime      *time.Time
	grossWeight      *decimal.Decimal
	weighInNote      string
	unloadTime       *time.Time
	unloadNote       string
	weighOutTime     *time.Time
	tareWeight       *decimal.Decimal
	weighOutNote     string
	completionTime   *time.Time
	arrivalTime      *time.Time

	guard guard.ConstructorGuard
}

// Snapshot is the full persisted state of a dispatch. Repositories build one
// from a row to call Restore and read one back through Dispatch.Snapshot.
type Snapshot struct {
	ID         kernel.UUID
	TruckID    kernel.UUID
	OrderID    kernel.UUID
	OperatorID *kernel.UUID
	Status     Status

	StartJourneyTime *time.Time
	DepartureTime    *time.Time
	WeighInTime      *time.Time
	GrossWeight      *decimal.Decimal
	WeighInNote      string
	UnloadTime       *time.Time
	UnloadNote       string
	WeighOutTime     *time.Time
	TareWeight       *decimal.Decimal
	WeighOutNote     string
	CompletionTime   *time.Time
	ArrivalTime      *time.Time

	Version int64
}

// NewDispatch creates an assigned dispatch of truckID for orderID.
func NewDispatch(id, truckID, orderID kernel.UUID) (*Dispatch, error) {
	return Restore(Snapshot{ID: id, TruckID: truckID, OrderID: orderID, Status: Assigned})
}

// Restore rebuilds a dispatch from its persisted snapshot. Identifiers and
// the status are validated; stage times, weights and notes are taken as
// stored since they were checked when the stage was applied.
//
// Example:
//
//	d, err := dispatch.Restore(dispatch.Snapshot{
//	    ID:      id,
//	    TruckID: truckID,
//	    OrderID: orderID,
//	    Status:  dispatch.Unload,
//	    Version: row.Version,
//	})
func Restore(s Snapshot) (*Dispatch, error) {
	d := &Dispatch{
		Versioned: kernel.RestoreVersion(s.Version),

		startJourneyTime: s.StartJourneyTime,
		departureTime:    s.DepartureTime,
		weighInTime:      s.WeighInTime,
		grossWeight:      s.GrossWeight,
		weighInNote:      s.WeighInNote,
		unloadTime:       s.UnloadTime,
		unloadNote:       s.UnloadNote,
		weighOutTime:     s.WeighOutTime,
		tareWeight:       s.TareWeight,
		weighOutNote:     s.WeighOutNote,
		completionTime:   s.CompletionTime,
		arrivalTime:      s.ArrivalTime,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(s.ID),
		d.setReference("truck", s.TruckID, &d.truckID),
		d.setReference("order", s.OrderID, &d.orderID),
		d.setOperator(s.OperatorID),
		d.setStatus(s.Status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate reports ErrDispatchIsNotConstructed unless d came from
// NewDispatch or Restore.
func (d *Dispatch) Validate() error {
	if d == nil {
		return ErrDispatchIsNotConstructed
	}
	return d.guard.Validate(ErrDispatchIsNotConstructed)
}

// Snapshot copies the current state for persistence, version included.
func (d *Dispatch) Snapshot() Snapshot {
	return Snapshot{
		ID:               d.id,
		TruckID:          d.truckID,
		OrderID:          d.orderID,
		OperatorID:       d.OperatorID(),
		Status:           d.status,
		StartJourneyTime: d.startJourneyTime,
		DepartureTime:    d.departureTime,
		WeighInTime:      d.weighInTime,
		GrossWeight:      d.grossWeight,
		WeighInNote:      d.weighInNote,
		UnloadTime:       d.unloadTime,
		UnloadNote:       d.unloadNote,
		WeighOutTime:     d.weighOutTime,
		TareWeight:       d.tareWeight,
		WeighOutNote:     d.weighOutNote,
		CompletionTime:   d.completionTime,
		ArrivalTime:      d.arrivalTime,
		Version:          d.Version(),
	}
}

// ID identifies the dispatch; evidence, exceptions and events refer to it.
func (d *Dispatch) ID() kernel.UUID {
	return d.id
}

func (d *Dispatch) TruckID() kernel.UUID {
	return d.truckID
}

func (d *Dispatch) OrderID() kernel.UUID {
	return d.orderID
}

// OperatorID is the assigned operator, or nil before AssignOperator.
func (d *Dispatch) OperatorID() *kernel.UUID {
	if d.operatorID == nil {
		return nil
	}
	id := *d.operatorID
	return &id
}

func (d *Dispatch) Status() Status {
	return d.status
}

// GrossWeight is the weigh-in reading, nil until that stage.
func (d *Dispatch) GrossWeight() *decimal.Decimal {
	return d.grossWeight
}

// TareWeight is the weigh-out reading, nil until that stage.
func (d *Dispatch) TareWeight() *decimal.Decimal {
	return d.tareWeight
}

func (d *Dispatch) DepartureTime() *time.Time {
	return d.departureTime
}

func (d *Dispatch) CompletionTime() *time.Time {
	return d.completionTime
}

// NetWeight is gross minus tare, known once both weighings happened.
func (d *Dispatch) NetWeight() (decimal.Decimal, bool) {
	if d.grossWeight == nil || d.tareWeight == nil {
		return decimal.Zero, false
	}
	return d.grossWeight.Sub(*d.tareWeight), true
}

// Apply runs a staged transition at the given instant. On any error the
// dispatch is left exactly as it was.
func (d *Dispatch) Apply(t Transition, at time.Time) error {
	if err := t.Action.Validate(); err != nil {
		return err
	}

	if d.status != t.Action.Requires() {
		return errs.NewGuardViolationError(t.Action.String(), d.status.String(), t.Action.Requires().String())
	}

	switch t.Action {
	case ActionStartJourney:
		d.markDeparted(at)
	case ActionWeighIn:
		gross, err := requireWeight(t.Action, d.status, "gross weight", t.Weight)
		if err != nil {
			return err
		}
		d.grossWeight = &gross
		d.weighInTime = stamp(at)
		d.weighInNote = t.Note
	case ActionUnload:
		d.unloadTime = stamp(at)
		d.unloadNote = t.Note
	case ActionWeighOut:
		tare, err := requireWeight(t.Action, d.status, "tare weight", t.Weight)
		if err != nil {
			return err
		}
		d.tareWeight = &tare
		d.weighOutTime = stamp(at)
		d.weighOutNote = t.Note
	case ActionCompleteJob:
		d.markCompleted(at)
	}

	d.status = t.Action.Target()
	return nil
}

// Cancel withdraws a dispatch that has not finished.
func (d *Dispatch) Cancel() error {
	if d.status.IsTerminal() {
		return errs.NewGuardViolationError("cancel", d.status.String(), "a non-terminal state")
	}
	d.status = Cancelled
	return nil
}

// ForceStatus sets any valid status without checking the predecessor.
// Entering in_transit or completed stamps their times if still unset.
func (d *Dispatch) ForceStatus(status Status, at time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	switch status {
	case InTransit:
		d.markDeparted(at)
	case Completed:
		d.markCompleted(at)
	}

	d.status = status
	return nil
}

// AssignOperator records who works the dispatch. Role checks belong to the caller.
func (d *Dispatch) AssignOperator(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("operator", err)
	}
	d.operatorID = &operatorID
	return nil
}

func (d *Dispatch) markDeparted(at time.Time) {
	if d.startJourneyTime == nil {
		d.startJourneyTime = stamp(at)
	}
	if d.departureTime == nil {
		d.departureTime = stamp(at)
	}
}

func (d *Dispatch) markCompleted(at time.Time) {
	if d.completionTime == nil {
		d.completionTime = stamp(at)
	}
	if d.arrivalTime == nil {
		d.arrivalTime = stamp(at)
	}
}

func requireWeight(action Action, observed Status, param string, w *decimal.Decimal) (decimal.Decimal, error) {
	if w == nil {
		return decimal.Zero, errs.NewGuardViolationErrorWithCause(
			action.String(), observed.String(), errs.NewValueIsRequiredError(param))
	}
	weight, err := kernel.PositiveQuantity(param, *w)
	if err != nil {
		return decimal.Zero, errs.NewGuardViolationErrorWithCause(action.String(), observed.String(), err)
	}
	return weight, nil
}

func stamp(at time.Time) *time.Time {
	t := at.UTC()
	return &t
}

func (d *Dispatch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Dispatch) setReference(param string, id kernel.UUID, dst *kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	*dst = id
	return nil
}

func (d *Dispatch) setOperator(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return d.AssignOperator(*id)
}

func (d *Dispatch) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
