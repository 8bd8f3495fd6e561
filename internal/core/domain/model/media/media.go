// Package media records evidence images attached to a dispatch. Records are
// append-only: once stored they are listed and filtered, never changed.
package media

import (
	"errors"
	"strings"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var (
	ErrReferenceIsRequired   = errs.NewValueIsRequiredError("evidence reference")
	ErrMediaIsNotConstructed = errors.New("Media must be created via NewMedia constructor")
)

// Metadata describes the stored blob. It is kept alongside the record so
// listings do not need to touch the evidence store.
type Metadata struct {
	FileName    string
	ContentType string
	Size        int64
}

type Media struct {
	id          kernel.UUID
	dispatchID  kernel.UUID
	stage       Stage
	reference   string
	uploaderID  *kernel.UUID
	description string
	metadata    Metadata
	createdAt   time.Time

	guard guard.ConstructorGuard
}

func NewMedia(
	id, dispatchID kernel.UUID,
	stage Stage,
	reference string,
	uploaderID *kernel.UUID,
	description string,
	metadata Metadata,
	createdAt time.Time,
) (*Media, error) {
	m := &Media{
		description: strings.TrimSpace(description),
		metadata:    metadata,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}

	var uploaderErr error
	if uploaderID != nil {
		if uploaderErr = uploaderID.Validate(); uploaderErr == nil {
			uploader := *uploaderID
			m.uploaderID = &uploader
		}
	}

	if err := errors.Join(
		m.setID(id),
		m.setDispatchID(dispatchID),
		m.setStage(stage),
		m.setReference(reference),
		uploaderErr,
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Media) Validate() error {
	if m == nil {
		return ErrMediaIsNotConstructed
	}
	return m.guard.Validate(ErrMediaIsNotConstructed)
}

func (m *Media) ID() kernel.UUID {
	return m.id
}

func (m *Media) DispatchID() kernel.UUID {
	return m.dispatchID
}

func (m *Media) Stage() Stage {
	return m.stage
}

// Reference is the opaque key returned by the evidence store.
func (m *Media) Reference() string {
	return m.reference
}

func (m *Media) UploaderID() *kernel.UUID {
	if m.uploaderID == nil {
		return nil
	}
	id := *m.uploaderID
	return &id
}

func (m *Media) Description() string {
	return m.description
}

func (m *Media) Metadata() Metadata {
	return m.metadata
}

func (m *Media) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Media) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Media) setDispatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dispatch", err)
	}
	m.dispatchID = id
	return nil
}

func (m *Media) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	m.stage = stage
	return nil
}

func (m *Media) setReference(reference string) error {
	if strings.TrimSpace(reference) == "" {
		return ErrReferenceIsRequired
	}
	m.reference = reference
	return nil
}
