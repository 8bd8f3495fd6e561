package commands

import (
	"context"

	"haulage/internal/core/domain/model/dispatch"
)

// ApplyDispatchTransitionCommandHandler runs a staged workflow step.
//
// The step, its cascade onto the truck, the order and the material ledger,
// and all the row writes happen in one transaction. The dispatch row is
// locked first, so of two concurrent calls past the same guard only one
// succeeds; the other sees the new state and gets a guard violation naming
// it. Evidence images are stored after the commit.
type ApplyDispatchTransitionCommandHandler struct {
	uowFactory UoWFactory
	evidence   *EvidenceRecorder
	engine     Engine
}

func NewApplyDispatchTransitionCommandHandler(
	uowFactory UoWFactory,
	evidence *EvidenceRecorder,
	engine Engine,
) ApplyDispatchTransitionCommandHandler {
	return ApplyDispatchTransitionCommandHandler{
		uowFactory: uowFactory,
		evidence:   evidence,
		engine:     engine,
	}
}

// Handle applies the step. The returned result is valid whenever the step
// committed, including when the error is a partial upload failure
// (errs.ErrPartialUploadFailure); any other error means nothing changed.
func (h ApplyDispatchTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyDispatchTransitionCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}
	transition := cmd.Transition()
	if err := cmd.Actor().RequireOperator(transition.Action.String()); err != nil {
		return TransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	at := h.engine.now()
	result, err := h.engine.transition(ctx, uow, cmd.DispatchID(), func(d *dispatch.Dispatch) error {
		return d.Apply(transition, at)
	})
	if err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	h.engine.announce(ctx, PathStaged, result)

	if len(cmd.Images()) == 0 || h.evidence == nil {
		return result, nil
	}

	result.Evidence, err = h.evidence.Record(
		ctx,
		cmd.DispatchID(),
		transition.Action.EvidenceStage(),
		cmd.Actor().ActorID(),
		cmd.Description(),
		cmd.Images(),
	)
	return result, err
}
