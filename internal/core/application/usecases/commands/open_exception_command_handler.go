package commands

import (
	"context"

	"haulage/internal/core/domain/model/exceptionlog"
)

type OpenExceptionCommandHandler struct {
	uowFactory ExceptionUoWFactory
}

func NewOpenExceptionCommandHandler(uowFactory ExceptionUoWFactory) OpenExceptionCommandHandler {
	return OpenExceptionCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h OpenExceptionCommandHandler) Handle(ctx context.Context, cmd OpenExceptionCommand) (*exceptionlog.Exception, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireOperator("open exception"); err != nil {
		return nil, err
	}

	e, err := exceptionlog.NewException(cmd.ExceptionID(), cmd.DispatchID(), cmd.Description(), cmd.Kind())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.DispatchRepository().Get(ctx, cmd.DispatchID()); err != nil {
		return nil, err
	}
	if err = uow.ExceptionRepository().Add(ctx, e); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return e, nil
}
