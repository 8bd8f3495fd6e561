package commands

import (
	"errors"
	"strings"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrApplyDispatchTransitionCommandIsNotConstructed = errors.New(
	"ApplyDispatchTransitionCommand must be created via one of the staged command constructors",
)

// ApplyDispatchTransitionCommand is one staged workflow step on a dispatch:
// start journey, weigh in, unload, weigh out or complete job.
//
// Example:
//
//	cmd, err := NewWeighInCommand(actor, dispatchID, decimal.NewFromInt(35), "slip 1182", images)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrPartialUploadFailure) {
//	    // the weigh-in stands; some images must be uploaded again
//	}
type ApplyDispatchTransitionCommand struct {
	actor       ports.Identity
	dispatchID  kernel.UUID
	transition  dispatch.Transition
	images      []EvidenceImage
	description string

	guard guard.ConstructorGuard
}

func NewStartJourneyCommand(actor ports.Identity, dispatchID kernel.UUID) (ApplyDispatchTransitionCommand, error) {
	return newTransitionCommand(actor, dispatchID, dispatch.Transition{Action: dispatch.ActionStartJourney}, nil, "")
}

// NewWeighInCommand records the gross weight. note is kept on the dispatch;
// images are stored tagged weigh_in.
func NewWeighInCommand(
	actor ports.Identity,
	dispatchID kernel.UUID,
	grossWeight decimal.Decimal,
	note string,
	images []EvidenceImage,
) (ApplyDispatchTransitionCommand, error) {
	return newTransitionCommand(actor, dispatchID, dispatch.Transition{
		Action: dispatch.ActionWeighIn,
		Weight: &grossWeight,
		Note:   note,
	}, images, note)
}

func NewUnloadCommand(
	actor ports.Identity,
	dispatchID kernel.UUID,
	note string,
	images []EvidenceImage,
) (ApplyDispatchTransitionCommand, error) {
	return newTransitionCommand(actor, dispatchID, dispatch.Transition{
		Action: dispatch.ActionUnload,
		Note:   note,
	}, images, note)
}

func NewWeighOutCommand(
	actor ports.Identity,
	dispatchID kernel.UUID,
	tareWeight decimal.Decimal,
	note string,
	images []EvidenceImage,
) (ApplyDispatchTransitionCommand, error) {
	return newTransitionCommand(actor, dispatchID, dispatch.Transition{
		Action: dispatch.ActionWeighOut,
		Weight: &tareWeight,
		Note:   note,
	}, images, note)
}

// NewCompleteJobCommand finishes the dispatch. Images are stored as delivery proof.
func NewCompleteJobCommand(
	actor ports.Identity,
	dispatchID kernel.UUID,
	images []EvidenceImage,
) (ApplyDispatchTransitionCommand, error) {
	return newTransitionCommand(actor, dispatchID, dispatch.Transition{Action: dispatch.ActionCompleteJob}, images, "")
}

// NewApplyDispatchTransitionCommand builds a staged command from an already
// assembled transition. A nil weight on weigh_in or weigh_out is accepted
// here and rejected by the state machine as a guard violation.
func NewApplyDispatchTransitionCommand(
	actor ports.Identity,
	dispatchID kernel.UUID,
	transition dispatch.Transition,
	images []EvidenceImage,
	description string,
) (ApplyDispatchTransitionCommand, error) {
	return newTransitionCommand(actor, dispatchID, transition, images, description)
}

func newTransitionCommand(
	actor ports.Identity,
	dispatchID kernel.UUID,
	transition dispatch.Transition,
	images []EvidenceImage,
	description string,
) (ApplyDispatchTransitionCommand, error) {
	cmd := ApplyDispatchTransitionCommand{
		actor:       actor,
		transition:  transition,
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}

	var imagesErr error
	if len(images) > 0 && !transition.Action.TakesEvidence() {
		imagesErr = errs.NewValueIsInvalidErrorWithCause("images",
			errors.New(transition.Action.String()+" does not take evidence images"))
	}

	if err := errors.Join(
		cmd.setDispatchID(dispatchID),
		transition.Action.Validate(),
		imagesErr,
	); err != nil {
		return ApplyDispatchTransitionCommand{}, err
	}
	cmd.images = images

	return cmd, nil
}

func (c ApplyDispatchTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyDispatchTransitionCommandIsNotConstructed)
}

func (c ApplyDispatchTransitionCommand) Actor() ports.Identity {
	return c.actor
}

func (c ApplyDispatchTransitionCommand) DispatchID() kernel.UUID {
	return c.dispatchID
}

func (c ApplyDispatchTransitionCommand) Transition() dispatch.Transition {
	return c.transition
}

func (c ApplyDispatchTransitionCommand) Images() []EvidenceImage {
	return c.images
}

func (c ApplyDispatchTransitionCommand) Description() string {
	return c.description
}

func (c *ApplyDispatchTransitionCommand) setDispatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dispatch", err)
	}
	c.dispatchID = id
	return nil
}
