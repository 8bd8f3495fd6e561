package commands

import (
	"context"

	"haulage/internal/core/domain/model/dispatch"
)

// ForceDispatchStatusCommandHandler applies a direct status write.
//
// Jumping over states can leave a truck idle while its dispatch is mid
// workflow, or the reverse. That is accepted for corrections; the staged
// commands remain the strict path.
type ForceDispatchStatusCommandHandler struct {
	uowFactory UoWFactory
	engine     Engine
}

func NewForceDispatchStatusCommandHandler(uowFactory UoWFactory, engine Engine) ForceDispatchStatusCommandHandler {
	return ForceDispatchStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (h ForceDispatchStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ForceDispatchStatusCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}
	if err := cmd.Actor().RequireOperator("force dispatch status"); err != nil {
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
		return d.ForceStatus(cmd.Status(), at)
	})
	if err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	h.engine.announce(ctx, PathForced, result)
	return result, nil
}
