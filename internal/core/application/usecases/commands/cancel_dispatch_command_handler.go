package commands

import (
	"context"

	"haulage/internal/core/domain/model/dispatch"
)

// CancelDispatchCommandHandler cancels a dispatch. The truck claim is
// released; the truck status and the order are left as they are.
type CancelDispatchCommandHandler struct {
	uowFactory UoWFactory
	engine     Engine
}

func NewCancelDispatchCommandHandler(uowFactory UoWFactory, engine Engine) CancelDispatchCommandHandler {
	return CancelDispatchCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (h CancelDispatchCommandHandler) Handle(ctx context.Context, cmd CancelDispatchCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}
	if err := cmd.Actor().RequireOperator("cancel dispatch"); err != nil {
		return TransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	result, err := h.engine.transition(ctx, uow, cmd.DispatchID(), (*dispatch.Dispatch).Cancel)
	if err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	h.engine.announce(ctx, PathCancel, result)
	return result, nil
}
