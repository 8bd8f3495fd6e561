package truck

import (
	"errors"
	"strings"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrPlateIsRequired       = errs.NewValueIsRequiredError("plate")
	ErrDriverNameIsRequired  = errs.NewValueIsRequiredError("driver name")
	ErrTruckIsNotConstructed = errors.New("Truck must be created via NewTruck constructor")
)

// Truck is the aggregate root of the Fleet Registry.
//
// Invariants:
//   - plate and driver name are non-empty, capacity is positive
//   - a claimed truck is never handed to a second dispatch
//   - fleet management cannot overwrite the status of a claimed truck
//
// Example usage:
//
//	t, err := truck.NewTruck(kernel.NewUUID(), "KA-01-4471", decimal.NewFromInt(20), "R. Iyer")
//	if err != nil {
//	    return err
//	}
//	if err = t.Claim(dispatchID); err != nil {
//	    // the truck is busy or parked under another dispatch
//	}
type Truck struct {
	kernel.Versioned

	id         kernel.UUID
	plate      string
	capacity   decimal.Decimal
	driverName string
	status     Status
	claimedBy  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewTruck registers an idle, unclaimed truck.
func NewTruck(id kernel.UUID, plate string, capacity decimal.Decimal, driverName string) (*Truck, error) {
	return RestoreTruck(id, plate, capacity, driverName, Idle, nil, 0)
}

// RestoreTruck rebuilds a truck from its persisted row. It runs the same
// checks as NewTruck and additionally accepts the stored status, claim and
// optimistic lock version, so a row that breaks an invariant fails to load
// instead of producing a half-valid aggregate.
//
// Parameters:
//   - status: must be one of the known truck statuses
//   - claimedBy: the dispatch holding the truck, nil when unclaimed
//   - version: the row version checked on the next save
func RestoreTruck(
	id kernel.UUID,
	plate string,
	capacity decimal.Decimal,
	driverName string,
	status Status,
	claimedBy *kernel.UUID,
	version int64,
) (*Truck, error) {
	t := &Truck{
		Versioned: kernel.RestoreVersion(version),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setPlate(plate),
		t.setCapacity(capacity),
		t.setDriverName(driverName),
		t.setStatus(status),
		t.setClaimedBy(claimedBy),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate reports ErrTruckIsNotConstructed for a nil truck or one that
// bypassed NewTruck and RestoreTruck. Repositories call it before saving.
func (t *Truck) Validate() error {
	if t == nil {
		return ErrTruckIsNotConstructed
	}
	return t.guard.Validate(ErrTruckIsNotConstructed)
}

// ID is the truck's registry identifier.
func (t *Truck) ID() kernel.UUID {
	return t.id
}

func (t *Truck) Plate() string {
	return t.plate
}

// Capacity is informational; dispatching does not compare it with order
// quantities.
func (t *Truck) Capacity() decimal.Decimal {
	return t.capacity
}

func (t *Truck) DriverName() string {
	return t.driverName
}

func (t *Truck) Status() Status {
	return t.status
}

// ClaimedBy returns the dispatch holding the truck, or nil.
func (t *Truck) ClaimedBy() *kernel.UUID {
	if t.claimedBy == nil {
		return nil
	}
	id := *t.claimedBy
	return &id
}

// IsAvailable reports whether the dispatcher may hand the truck to a new
// dispatch: idle and not claimed.
func (t *Truck) IsAvailable() bool {
	return t.status == Idle && t.claimedBy == nil
}

func (t *Truck) IsClaimedBy(dispatchID kernel.UUID) bool {
	return t.claimedBy != nil && t.claimedBy.IsEqual(dispatchID)
}

// Claim reserves the truck for a dispatch.
func (t *Truck) Claim(dispatchID kernel.UUID) error {
	if err := dispatchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dispatch", err)
	}
	if !t.IsAvailable() {
		return errs.NewGuardViolationError("claim truck "+t.plate, t.describe(), "idle and unclaimed")
	}
	t.claimedBy = &dispatchID
	return nil
}

// Release drops the claim if dispatchID holds it and reports whether it did.
func (t *Truck) Release(dispatchID kernel.UUID) bool {
	if !t.IsClaimedBy(dispatchID) {
		return false
	}
	t.claimedBy = nil
	return true
}

// Depart puts the truck on the road for dispatchID. An unclaimed truck is
// claimed on the way; a claim held by another dispatch is left alone since
// direct status writes may jump a dispatch into transit. Reports whether
// anything changed.
func (t *Truck) Depart(dispatchID kernel.UUID) bool {
	changed := false
	if t.claimedBy == nil {
		t.claimedBy = &dispatchID
		changed = true
	}
	if t.status != InTransit {
		t.status = InTransit
		changed = true
	}
	return changed
}

// Park returns the truck to idle unconditionally and releases the claim if
// dispatchID holds it.
func (t *Truck) Park(dispatchID kernel.UUID) bool {
	released := t.Release(dispatchID)
	if t.status == Idle {
		return released
	}
	t.status = Idle
	return true
}

// ChangeStatus is the fleet management status write. It is refused while a
// dispatch holds the truck; only the dispatch engine moves claimed trucks.
func (t *Truck) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if t.claimedBy != nil {
		return errs.NewGuardViolationError("change status of truck "+t.plate, t.describe(), "unclaimed")
	}
	t.status = status
	return nil
}

// UpdateDetails replaces the registry attributes. Every argument is validated
// before any is applied.
func (t *Truck) UpdateDetails(plate string, capacity decimal.Decimal, driverName string) error {
	next := *t
	if err := errors.Join(
		next.setPlate(plate),
		next.setCapacity(capacity),
		next.setDriverName(driverName),
	); err != nil {
		return err
	}
	t.plate, t.capacity, t.driverName = next.plate, next.capacity, next.driverName
	return nil
}

func (t *Truck) describe() string {
	if t.claimedBy == nil {
		return t.status.String()
	}
	return t.status.String() + " claimed by dispatch " + t.claimedBy.String()
}

func (t *Truck) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Truck) setPlate(plate string) error {
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return ErrPlateIsRequired
	}
	t.plate = plate
	return nil
}

func (t *Truck) setCapacity(capacity decimal.Decimal) error {
	c, err := kernel.PositiveQuantity("capacity", capacity)
	if err != nil {
		return err
	}
	t.capacity = c
	return nil
}

func (t *Truck) setDriverName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrDriverNameIsRequired
	}
	t.driverName = name
	return nil
}

func (t *Truck) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}

func (t *Truck) setClaimedBy(id *kernel.UUID) error {
	if id == nil {
		t.claimedBy = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("claimed by", err)
	}
	claimed := *id
	t.claimedBy = &claimed
	return nil
}
