package commands_test

import (
	"testing"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/truck"
	"haulage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forceStatus(t *testing.T, h *engineHarness, id kernel.UUID, status dispatch.Status) (commands.TransitionResult, error) {
	t.Helper()
	cmd, err := commands.NewForceDispatchStatusCommand(admin, id, status)
	require.NoError(t, err)
	return commands.NewForceDispatchStatusCommandHandler(h.uows, h.engine).Handle(t.Context(), cmd)
}

func TestForceDispatchStatus_RepeatedCompletionDeductsOnce(t *testing.T) {
	h := newHarness()
	h.addTruck("T-1", 20)
	sand := h.addMaterial("Sand", 50)
	c := h.addCustomer()
	id := *h.placeOrder(c.ID(), "Sand", 20).DispatchID

	first, err := forceStatus(t, h, id, dispatch.Completed)
	require.NoError(t, err)
	assert.True(t, first.StockDeducted)
	assert.Equal(t, "30", sand.Stock().String())

	_, err = forceStatus(t, h, id, dispatch.InTransit)
	require.NoError(t, err)
	second, err := forceStatus(t, h, id, dispatch.Completed)
	require.NoError(t, err)

	assert.False(t, second.StockDeducted)
	assert.Equal(t, "30", sand.Stock().String())
	assert.Equal(t, order.Completed, second.OrderStatus)
}

func TestForceDispatchStatus_CompletionClampsStockAtZero(t *testing.T) {
	h := newHarness()
	h.addTruck("T-1", 20)
	gravel := h.addMaterial("Gravel", 5)
	c := h.addCustomer()
	id := *h.placeOrder(c.ID(), "Gravel", 8).DispatchID

	res, err := forceStatus(t, h, id, dispatch.Completed)
	require.NoError(t, err)

	assert.True(t, res.StockDeducted)
	assert.True(t, res.StockClamped)
	assert.True(t, gravel.Stock().IsZero())
}

func TestForceDispatchStatus_SkipsStagesWithoutStageData(t *testing.T) {
	h := newHarness()
	t1 := h.addTruck("T-1", 20)
	c := h.addCustomer()
	id := *h.placeOrder(c.ID(), "Coal", 8).DispatchID

	res, err := forceStatus(t, h, id, dispatch.WeighOut)
	require.NoError(t, err)

	d := h.store.dispatches[id]
	assert.Equal(t, dispatch.WeighOut, res.Status)
	assert.Nil(t, d.GrossWeight())
	assert.Nil(t, d.DepartureTime())
	assert.Equal(t, truck.Idle, t1.Status(), "only in_transit and completed cascade")
}

func TestForceDispatchStatus_InTransitStampsOnce(t *testing.T) {
	h := newHarness()
	t1 := h.addTruck("T-1", 20)
	c := h.addCustomer()
	id := *h.placeOrder(c.ID(), "Coal", 8).DispatchID

	res, err := forceStatus(t, h, id, dispatch.InTransit)
	require.NoError(t, err)
	assert.Equal(t, truck.InTransit, t1.Status())
	assert.Equal(t, order.InProgress, res.OrderStatus)

	_, err = forceStatus(t, h, id, dispatch.InTransit)
	require.NoError(t, err)
	assert.Equal(t, noon, *h.store.dispatches[id].DepartureTime())
}

func TestNewForceDispatchStatusCommand_RejectsUnknownStatus(t *testing.T) {
	_, err := commands.NewForceDispatchStatusCommand(admin, kernel.NewUUID(), dispatch.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCancelDispatch_ReleasesClaimOnly(t *testing.T) {
	h := newHarness()
	t1 := h.addTruck("T-1", 20)
	c := h.addCustomer()
	placed := h.placeOrder(c.ID(), "Coal", 8)
	id := *placed.DispatchID

	cmd, err := commands.NewCancelDispatchCommand(operator, id)
	require.NoError(t, err)
	handler := commands.NewCancelDispatchCommandHandler(h.uows, h.engine)

	res, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, dispatch.Cancelled, res.Status)
	assert.True(t, t1.IsAvailable())
	assert.Equal(t, order.Pending, h.store.orders[placed.OrderID].Status())

	_, err = handler.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrGuardViolation)
}
