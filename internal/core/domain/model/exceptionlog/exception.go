// Package exceptionlog keeps free-text incident notes against a dispatch.
// Exceptions never affect the dispatch, its truck or its order.
package exceptionlog

import (
	"errors"
	"strings"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

// DefaultType is used when an exception is opened without a type tag.
const DefaultType = "General"

var (
	ErrDescriptionIsRequired     = errs.NewValueIsRequiredError("description")
	ErrExceptionIsNotConstructed = errors.New("Exception must be created via NewException constructor")
)

type Exception struct {
	id          kernel.UUID
	dispatchID  kernel.UUID
	description string
	kind        string
	resolved    bool
	resolvedBy  *kernel.UUID
	resolvedAt  *time.Time

	guard guard.ConstructorGuard
}

func NewException(id, dispatchID kernel.UUID, description, kind string) (*Exception, error) {
	return RestoreException(id, dispatchID, description, kind, false, nil, nil)
}

func RestoreException(
	id, dispatchID kernel.UUID,
	description, kind string,
	resolved bool,
	resolvedBy *kernel.UUID,
	resolvedAt *time.Time,
) (*Exception, error) {
	e := &Exception{
		resolved:   resolved,
		resolvedBy: resolvedBy,
		resolvedAt: resolvedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setDispatchID(dispatchID),
		e.setDescription(description),
	); err != nil {
		return nil, err
	}
	e.kind = strings.TrimSpace(kind)
	if e.kind == "" {
		e.kind = DefaultType
	}

	return e, nil
}

func (e *Exception) Validate() error {
	if e == nil {
		return ErrExceptionIsNotConstructed
	}
	return e.guard.Validate(ErrExceptionIsNotConstructed)
}

func (e *Exception) ID() kernel.UUID {
	return e.id
}

func (e *Exception) DispatchID() kernel.UUID {
	return e.dispatchID
}

func (e *Exception) Description() string {
	return e.description
}

func (e *Exception) Type() string {
	return e.kind
}

func (e *Exception) IsResolved() bool {
	return e.resolved
}

func (e *Exception) ResolvedBy() *kernel.UUID {
	return e.resolvedBy
}

func (e *Exception) ResolvedAt() *time.Time {
	return e.resolvedAt
}

// Resolve closes the exception. Resolving a closed exception changes nothing
// and keeps the original resolver; the return value reports whether this
// call did the resolving.
func (e *Exception) Resolve(resolver kernel.UUID, at time.Time) (bool, error) {
	if err := resolver.Validate(); err != nil {
		return false, errs.NewValueIsRequiredErrorWithCause("resolver", err)
	}
	if e.resolved {
		return false, nil
	}
	ts := at.UTC()
	e.resolved = true
	e.resolvedBy = &resolver
	e.resolvedAt = &ts
	return true, nil
}

func (e *Exception) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Exception) setDispatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dispatch", err)
	}
	e.dispatchID = id
	return nil
}

func (e *Exception) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrDescriptionIsRequired
	}
	e.description = description
	return nil
}
