package ports

import (
	"context"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/media"
)

// EvidenceUpload is one image handed to the evidence store.
type EvidenceUpload struct {
	DispatchID  kernel.UUID
	Stage       media.Stage
	FileName    string
	ContentType string
	Image       []byte
	Description string
	UploaderID  *kernel.UUID
}

// EvidenceStore keeps the image bytes outside the database. Store returns
// an opaque reference that is saved on the media record.
type EvidenceStore interface {
	Store(ctx context.Context, upload EvidenceUpload) (string, error)
}
