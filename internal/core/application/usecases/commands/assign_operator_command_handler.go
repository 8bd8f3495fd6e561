package commands

import (
	"context"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/pkg/errs"
)

type AssignOperatorCommandHandler struct {
	uowFactory UoWFactory
}

func NewAssignOperatorCommandHandler(uowFactory UoWFactory) AssignOperatorCommandHandler {
	return AssignOperatorCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fails with errs.ErrObjectNotFound when the user does not exist and
// with errs.ErrInvalidReference when the user is not an operator.
func (h AssignOperatorCommandHandler) Handle(ctx context.Context, cmd AssignOperatorCommand) (*dispatch.Dispatch, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireOperator("assign operator"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := uow.DispatchRepository().GetForUpdate(ctx, cmd.DispatchID())
	if err != nil {
		return nil, err
	}

	u, err := uow.UserRepository().Get(ctx, cmd.OperatorID())
	if err != nil {
		return nil, err
	}
	if !u.IsOperator() {
		return nil, errs.NewInvalidReferenceError("operator", u.ID(), "user "+u.Username()+" is not an operator")
	}

	if err = d.AssignOperator(u.ID()); err != nil {
		return nil, err
	}
	if err = uow.DispatchRepository().Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return d, nil
}
