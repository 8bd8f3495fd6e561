package commands_test

import (
	"testing"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/domain/model/exceptionlog"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/truck"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteDispatch_RollsBackInTransitDispatch(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	t1 := h.addTruck("T-1", 20)
	c := h.addCustomer()
	placed := h.placeOrder(c.ID(), "Coal", 15)
	id := *placed.DispatchID

	start, err := commands.NewStartJourneyCommand(operator, id)
	require.NoError(t, err)
	_, err = h.transitions().Handle(ctx, start)
	require.NoError(t, err)
	require.Equal(t, truck.InTransit, t1.Status())

	e, err := exceptionlog.NewException(kernel.NewUUID(), id, "flat tyre", "")
	require.NoError(t, err)
	require.NoError(t, memExceptions{h.store}.Add(ctx, e))

	cmd, err := commands.NewDeleteDispatchCommand(admin, id)
	require.NoError(t, err)
	require.NoError(t, commands.NewDeleteDispatchCommandHandler(h.uows, h.engine).Handle(ctx, cmd))

	assert.NotContains(t, h.store.dispatches, id)
	assert.Empty(t, h.store.exceptions)
	assert.Equal(t, truck.Idle, t1.Status())
	assert.True(t, t1.IsAvailable())
	assert.Equal(t, order.Pending, h.store.orders[placed.OrderID].Status())
	assert.Contains(t, h.events.types(), ports.EventDispatchDeleted)
}

func TestDeleteDispatch_UnknownDispatch(t *testing.T) {
	h := newHarness()
	cmd, err := commands.NewDeleteDispatchCommand(admin, kernel.NewUUID())
	require.NoError(t, err)

	err = commands.NewDeleteDispatchCommandHandler(h.uows, h.engine).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestDeleteOrder_RollsBackEveryDispatch(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	t1 := h.addTruck("T-1", 20)
	t2 := h.addTruck("T-2", 20)
	c := h.addCustomer()
	placed := h.placeOrder(c.ID(), "Coal", 15)

	explicit, err := commands.NewCreateDispatchCommand(operator, t2.ID(), placed.OrderID)
	require.NoError(t, err)
	_, err = commands.NewCreateDispatchCommandHandler(h.uows, h.engine).Handle(ctx, explicit)
	require.NoError(t, err)
	require.Len(t, h.store.dispatches, 2)

	cmd, err := commands.NewDeleteOrderCommand(admin, placed.OrderID)
	require.NoError(t, err)
	require.NoError(t, commands.NewDeleteOrderCommandHandler(h.uows, h.engine).Handle(ctx, cmd))

	assert.Empty(t, h.store.dispatches)
	assert.Empty(t, h.store.orders)
	assert.True(t, t1.IsAvailable())
	assert.True(t, t2.IsAvailable())
}

func TestDeleteOrder_UnknownOrder(t *testing.T) {
	h := newHarness()
	cmd, err := commands.NewDeleteOrderCommand(admin, kernel.NewUUID())
	require.NoError(t, err)

	err = commands.NewDeleteOrderCommandHandler(h.uows, h.engine).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateDispatch_RejectsClaimedTruck(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	t1 := h.addTruck("T-1", 20)
	c := h.addCustomer()
	placed := h.placeOrder(c.ID(), "Coal", 15)

	cmd, err := commands.NewCreateDispatchCommand(operator, t1.ID(), placed.OrderID)
	require.NoError(t, err)
	_, err = commands.NewCreateDispatchCommandHandler(h.uows, h.engine).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrGuardViolation)
	assert.Len(t, h.store.dispatches, 1)
}

func TestCreateDispatch_UnknownOrderIsNotFound(t *testing.T) {
	h := newHarness()
	t1 := h.addTruck("T-1", 20)

	cmd, err := commands.NewCreateDispatchCommand(operator, t1.ID(), kernel.NewUUID())
	require.NoError(t, err)
	_, err = commands.NewCreateDispatchCommandHandler(h.uows, h.engine).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.True(t, t1.IsAvailable())
}

func TestChangeOrderStatus_OverridesWithoutCascade(t *testing.T) {
	h := newHarness()
	t1 := h.addTruck("T-1", 20)
	c := h.addCustomer()
	placed := h.placeOrder(c.ID(), "Coal", 15)

	cmd, err := commands.NewChangeOrderStatusCommand(admin, placed.OrderID, order.Cancelled)
	require.NoError(t, err)
	o, err := commands.NewChangeOrderStatusCommandHandler(h.uows).Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Cancelled, o.Status())
	assert.True(t, t1.IsClaimedBy(*placed.DispatchID))

	denied, err := commands.NewChangeOrderStatusCommand(operator, placed.OrderID, order.Pending)
	require.NoError(t, err)
	_, err = commands.NewChangeOrderStatusCommandHandler(h.uows).Handle(t.Context(), denied)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}
