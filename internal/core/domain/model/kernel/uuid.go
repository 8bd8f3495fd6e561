package kernel

import (
	"fmt"

	"haulage/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not built by one of the constructors.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies trucks, orders, dispatches and the other aggregates of the
// yard. It wraps github.com/google/uuid so the domain never handles a raw
// identifier.
//
// The zero value is invalid; build one with NewUUID, UUIDFromString or
// UUIDFromBytes. A UUID is an immutable value and safe to share between
// goroutines.
//
// Example usage:
//
//	dispatchID := kernel.NewUUID()
//
//	truckID, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    return errs.NewValueIsInvalidErrorWithCause("truck id", err)
//	}
//	if t.IsClaimedBy(dispatchID) {
//	    // ...
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a random (version 4) identifier for a new aggregate.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the textual form used in URLs, JSON bodies and
// tokens. Any format uuid.Parse accepts is allowed; the nil UUID is rejected
// with ErrUUIDIsNotConstructed.
//
// Example:
//
//	id, err := kernel.UUIDFromString("7b0d4b5e-8f8a-4c55-9d8e-0a1b2c3d4e5f")
//	if err != nil {
//	    return fmt.Errorf("parse order id: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// UUIDFromBytes rebuilds an identifier from its 16 byte form, as stored in
// the uuid columns of the database.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// OptionalUUIDFromBytes converts a nullable column value.
func OptionalUUIDFromBytes(raw *uuid.UUID) (*UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// OptionalBytes is the inverse of OptionalUUIDFromBytes.
func OptionalBytes(id *UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// String renders the canonical hyphenated form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the wrapped value for the persistence adapters. Slice it
// (id.Bytes()[:]) when a []byte is needed.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers name the same aggregate.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value. Aggregate
// constructors call it on every identifier they receive.
//
// Example:
//
//	func (t *Truck) setID(id kernel.UUID) error {
//	    if err := id.Validate(); err != nil {
//	        return err
//	    }
//	    t.id = id
//	    return nil
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText lets UUID appear as a plain string in JSON payloads and events.
func (u UUID) MarshalText() ([]byte, error) {
	return u.id.MarshalText()
}
