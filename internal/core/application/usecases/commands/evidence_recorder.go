package commands

import (
	"context"
	"fmt"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/media"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultUploadConcurrency bounds how many images are stored at once.
const DefaultUploadConcurrency = 4

// EvidenceImage is one uploaded file as received from the transport.
type EvidenceImage struct {
	FileName    string
	ContentType string
	Data        []byte
}

// EvidenceRecord is a stored image and the media record that points to it.
type EvidenceRecord struct {
	MediaID   kernel.UUID
	Stage     media.Stage
	Reference string
	FileName  string
}

// EvidenceRecorder stores evidence images and records each one as its own
// media row. It runs after the stage transition committed: a failed image is
// reported and never undoes the transition or the other images.
type EvidenceRecorder struct {
	store       ports.EvidenceStore
	uowFactory  MediaUoWFactory
	clock       kernel.Clock
	metrics     EngineMetrics
	logger      zerolog.Logger
	concurrency int
}

func NewEvidenceRecorder(
	store ports.EvidenceStore,
	uowFactory MediaUoWFactory,
	engine Engine,
	concurrency int,
) *EvidenceRecorder {
	if concurrency <= 0 {
		concurrency = DefaultUploadConcurrency
	}
	clock := engine.Clock
	if clock == nil {
		clock = kernel.SystemClock()
	}
	return &EvidenceRecorder{
		store:       store,
		uowFactory:  uowFactory,
		clock:       clock,
		metrics:     engine.metrics(),
		logger:      engine.Logger.With().Str("component", "evidence_recorder").Logger(),
		concurrency: concurrency,
	}
}

// Record stores every image concurrently. Stored records come back in input
// order; when some images failed the error is a *errs.PartialUploadFailureError
// listing them and the records slice holds only the successes.
func (r *EvidenceRecorder) Record(
	ctx context.Context,
	dispatchID kernel.UUID,
	stage media.Stage,
	uploaderID *kernel.UUID,
	description string,
	images []EvidenceImage,
) ([]EvidenceRecord, error) {
	if len(images) == 0 {
		return nil, nil
	}

	records := make([]*EvidenceRecord, len(images))
	failures := make([]error, len(images))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, img := range images {
		g.Go(func() error {
			rec, err := r.recordOne(ctx, dispatchID, stage, uploaderID, description, img)
			r.metrics.EvidenceStored(string(stage), err)
			if err != nil {
				failures[i] = err
				return nil
			}
			records[i] = &rec
			return nil
		})
	}
	_ = g.Wait()

	stored := make([]EvidenceRecord, 0, len(images))
	var failed []errs.UploadFailure
	for i := range images {
		if failures[i] != nil {
			failed = append(failed, errs.UploadFailure{Index: i, FileName: images[i].FileName, Cause: failures[i]})
			r.logger.Warn().
				Err(failures[i]).
				Str("dispatch_id", dispatchID.String()).
				Str("stage", string(stage)).
				Str("file", images[i].FileName).
				Msg("evidence image not stored")
			continue
		}
		stored = append(stored, *records[i])
	}

	if len(failed) > 0 {
		return stored, errs.NewPartialUploadFailureError(len(images), failed)
	}
	return stored, nil
}

func (r *EvidenceRecorder) recordOne(
	ctx context.Context,
	dispatchID kernel.UUID,
	stage media.Stage,
	uploaderID *kernel.UUID,
	description string,
	img EvidenceImage,
) (EvidenceRecord, error) {
	if len(img.Data) == 0 {
		return EvidenceRecord{}, errs.NewValueIsRequiredError("image content")
	}

	ref, err := r.store.Store(ctx, ports.EvidenceUpload{
		DispatchID:  dispatchID,
		Stage:       stage,
		FileName:    img.FileName,
		ContentType: img.ContentType,
		Image:       img.Data,
		Description: description,
		UploaderID:  uploaderID,
	})
	if err != nil {
		return EvidenceRecord{}, fmt.Errorf("store image: %w", err)
	}

	m, err := media.NewMedia(kernel.NewUUID(), dispatchID, stage, ref, uploaderID, description, media.Metadata{
		FileName:    img.FileName,
		ContentType: img.ContentType,
		Size:        int64(len(img.Data)),
	}, r.clock.Now())
	if err != nil {
		return EvidenceRecord{}, err
	}

	uow := r.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return EvidenceRecord{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MediaRepository().Add(ctx, m); err != nil {
		return EvidenceRecord{}, fmt.Errorf("record media: %w", err)
	}
	if err = uow.Commit(ctx); err != nil {
		return EvidenceRecord{}, err
	}

	return EvidenceRecord{MediaID: m.ID(), Stage: stage, Reference: ref, FileName: img.FileName}, nil
}
