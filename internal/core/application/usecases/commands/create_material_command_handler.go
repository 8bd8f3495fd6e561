package commands

import (
	"context"

	"haulage/internal/core/domain/model/material"
)

type CreateMaterialCommandHandler struct {
	uowFactory MaterialUoWFactory
}

func NewCreateMaterialCommandHandler(uowFactory MaterialUoWFactory) CreateMaterialCommandHandler {
	return CreateMaterialCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateMaterialCommandHandler) Handle(ctx context.Context, cmd CreateMaterialCommand) (*material.Material, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireAdmin("create material"); err != nil {
		return nil, err
	}

	m, err := material.NewMaterial(cmd.MaterialID(), cmd.Name(), cmd.Stock(), cmd.Unit())
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

	if err = uow.MaterialRepository().Add(ctx, m); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}
