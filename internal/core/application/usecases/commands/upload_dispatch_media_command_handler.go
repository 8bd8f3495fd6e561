package commands

import (
	"context"
)

type UploadDispatchMediaCommandHandler struct {
	uowFactory MediaUoWFactory
	evidence   *EvidenceRecorder
}

func NewUploadDispatchMediaCommandHandler(
	uowFactory MediaUoWFactory,
	evidence *EvidenceRecorder,
) UploadDispatchMediaCommandHandler {
	return UploadDispatchMediaCommandHandler{
		uowFactory: uowFactory,
		evidence:   evidence,
	}
}

// Handle checks the dispatch exists, then stores each image on its own.
// Stored records are returned even when some images failed.
func (h UploadDispatchMediaCommandHandler) Handle(
	ctx context.Context,
	cmd UploadDispatchMediaCommand,
) ([]EvidenceRecord, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireOperator("upload dispatch media"); err != nil {
		return nil, err
	}

	if err := h.requireDispatch(ctx, cmd); err != nil {
		return nil, err
	}

	return h.evidence.Record(ctx, cmd.DispatchID(), cmd.Stage(), cmd.Actor().ActorID(), cmd.Description(), cmd.Images())
}

func (h UploadDispatchMediaCommandHandler) requireDispatch(ctx context.Context, cmd UploadDispatchMediaCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.DispatchRepository().Get(ctx, cmd.DispatchID())
	return err
}
