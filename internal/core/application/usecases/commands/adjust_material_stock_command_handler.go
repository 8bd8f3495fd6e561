package commands

import (
	"context"

	"haulage/internal/core/domain/model/kernel"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// StockAdjustment is the ledger state after a delta was applied.
type StockAdjustment struct {
	MaterialID kernel.UUID
	Name       string
	Stock      decimal.Decimal
	Clamped    bool
}

type AdjustMaterialStockCommandHandler struct {
	uowFactory MaterialUoWFactory
	metrics    EngineMetrics
	logger     zerolog.Logger
}

func NewAdjustMaterialStockCommandHandler(uowFactory MaterialUoWFactory, engine Engine) AdjustMaterialStockCommandHandler {
	return AdjustMaterialStockCommandHandler{
		uowFactory: uowFactory,
		metrics:    engine.metrics(),
		logger:     engine.Logger,
	}
}

// Handle applies the delta under a row lock. A delta larger than the stock
// leaves zero and reports Clamped; it is not an error.
func (h AdjustMaterialStockCommandHandler) Handle(
	ctx context.Context,
	cmd AdjustMaterialStockCommand,
) (StockAdjustment, error) {
	if err := cmd.Validate(); err != nil {
		return StockAdjustment{}, err
	}
	if err := cmd.Actor().RequireAdmin("adjust material stock"); err != nil {
		return StockAdjustment{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StockAdjustment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	m, err := uow.MaterialRepository().GetForUpdate(ctx, cmd.MaterialID())
	if err != nil {
		return StockAdjustment{}, err
	}
	clamped := m.ApplyDelta(cmd.Delta())
	if err = uow.MaterialRepository().Update(ctx, m); err != nil {
		return StockAdjustment{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StockAdjustment{}, err
	}

	if clamped {
		h.metrics.StockClamped(m.Name())
		h.logger.Warn().
			Str("material", m.Name()).
			Str("delta", cmd.Delta().String()).
			Msg("stock adjustment clamped at zero")
	}
	return StockAdjustment{MaterialID: m.ID(), Name: m.Name(), Stock: m.Stock(), Clamped: clamped}, nil
}
