package commands

import (
	"context"
	"time"

	"haulage/internal/core/domain/model/exceptionlog"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
)

// ResolveExceptionCommandHandler closes an exception. A second resolve is a
// no-op that keeps the first resolver and timestamp.
type ResolveExceptionCommandHandler struct {
	uowFactory ExceptionUoWFactory
	clock      kernel.Clock
}

func NewResolveExceptionCommandHandler(uowFactory ExceptionUoWFactory, clock kernel.Clock) ResolveExceptionCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock()
	}
	return ResolveExceptionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h ResolveExceptionCommandHandler) Handle(
	ctx context.Context,
	cmd ResolveExceptionCommand,
) (*exceptionlog.Exception, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireAdmin("resolve exception"); err != nil {
		return nil, err
	}
	resolver := cmd.Actor().ActorID()
	if resolver == nil {
		return nil, errs.NewValueIsRequiredError("resolver")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	e, err := uow.ExceptionRepository().GetForUpdate(ctx, cmd.ExceptionID())
	if err != nil {
		return nil, err
	}

	changed, err := e.Resolve(*resolver, h.clock.Now().UTC().Truncate(time.Microsecond))
	if err != nil {
		return nil, err
	}
	if !changed {
		return e, nil
	}
	if err = uow.ExceptionRepository().Update(ctx, e); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return e, nil
}
