package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/media"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var (
	ErrUploadDispatchMediaCommandIsNotConstructed = errors.New(
		"UploadDispatchMediaCommand must be created via NewUploadDispatchMediaCommand constructor",
	)
	ErrImagesAreRequired = errs.NewValueIsRequiredError("images")
)

// UploadDispatchMediaCommand attaches evidence to a dispatch outside of a
// staged step, for example exception photos.
type UploadDispatchMediaCommand struct {
	actor       ports.Identity
	dispatchID  kernel.UUID
	stage       media.Stage
	images      []EvidenceImage
	description string

	guard guard.ConstructorGuard
}

func NewUploadDispatchMediaCommand(
	actor ports.Identity,
	dispatchID kernel.UUID,
	stage media.Stage,
	images []EvidenceImage,
	description string,
) (UploadDispatchMediaCommand, error) {
	var idErr, imagesErr error
	if err := dispatchID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("dispatch", err)
	}
	if len(images) == 0 {
		imagesErr = ErrImagesAreRequired
	}
	if err := errors.Join(idErr, stage.Validate(), imagesErr); err != nil {
		return UploadDispatchMediaCommand{}, err
	}

	return UploadDispatchMediaCommand{
		actor:       actor,
		dispatchID:  dispatchID,
		stage:       stage,
		images:      images,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UploadDispatchMediaCommand) Validate() error {
	return c.guard.Validate(ErrUploadDispatchMediaCommandIsNotConstructed)
}

func (c UploadDispatchMediaCommand) Actor() ports.Identity {
	return c.actor
}

func (c UploadDispatchMediaCommand) DispatchID() kernel.UUID {
	return c.dispatchID
}

func (c UploadDispatchMediaCommand) Stage() media.Stage {
	return c.stage
}

func (c UploadDispatchMediaCommand) Images() []EvidenceImage {
	return c.images
}

func (c UploadDispatchMediaCommand) Description() string {
	return c.description
}
