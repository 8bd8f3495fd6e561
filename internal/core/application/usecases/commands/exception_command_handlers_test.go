package commands_test

import (
	"testing"
	"time"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/domain/model/exceptionlog"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndResolveException(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	h.addTruck("T-1", 20)
	c := h.addCustomer()
	dispatchID := *h.placeOrder(c.ID(), "Coal", 15).DispatchID
	uows := memFactory[commands.ExceptionUoW]{uow: memUoW{h.store}}

	open, err := commands.NewOpenExceptionCommand(operator, kernel.NewUUID(), dispatchID, "gate closed", "")
	require.NoError(t, err)
	e, err := commands.NewOpenExceptionCommandHandler(uows).Handle(ctx, open)
	require.NoError(t, err)
	assert.Equal(t, exceptionlog.DefaultType, e.Type())
	assert.False(t, e.IsResolved())

	resolve, err := commands.NewResolveExceptionCommand(admin, e.ID())
	require.NoError(t, err)
	resolver := commands.NewResolveExceptionCommandHandler(uows, kernel.FixedClock{At: noon})
	resolved, err := resolver.Handle(ctx, resolve)
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved())
	assert.Equal(t, admin.UserID, *resolved.ResolvedBy())

	otherAdmin := admin
	otherAdmin.UserID = kernel.NewUUID()
	again, err := commands.NewResolveExceptionCommand(otherAdmin, e.ID())
	require.NoError(t, err)
	later := commands.NewResolveExceptionCommandHandler(uows, kernel.FixedClock{At: noon.Add(time.Hour)})
	resolvedAgain, err := later.Handle(ctx, again)

	require.NoError(t, err)
	assert.Equal(t, admin.UserID, *resolvedAgain.ResolvedBy(), "first resolver is kept")
	assert.Equal(t, noon, *resolvedAgain.ResolvedAt())
}

func TestResolveException_RequiresAdmin(t *testing.T) {
	h := newHarness()
	uows := memFactory[commands.ExceptionUoW]{uow: memUoW{h.store}}

	cmd, err := commands.NewResolveExceptionCommand(operator, kernel.NewUUID())
	require.NoError(t, err)
	_, err = commands.NewResolveExceptionCommandHandler(uows, nil).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestOpenException_UnknownDispatch(t *testing.T) {
	h := newHarness()
	uows := memFactory[commands.ExceptionUoW]{uow: memUoW{h.store}}

	cmd, err := commands.NewOpenExceptionCommand(operator, kernel.NewUUID(), kernel.NewUUID(), "lost", "Route")
	require.NoError(t, err)
	_, err = commands.NewOpenExceptionCommandHandler(uows).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOpenException_DescriptionRequired(t *testing.T) {
	h := newHarness()
	h.addTruck("T-1", 20)
	c := h.addCustomer()
	dispatchID := *h.placeOrder(c.ID(), "Coal", 15).DispatchID
	uows := memFactory[commands.ExceptionUoW]{uow: memUoW{h.store}}

	cmd, err := commands.NewOpenExceptionCommand(operator, kernel.NewUUID(), dispatchID, "  ", "")
	require.NoError(t, err)
	_, err = commands.NewOpenExceptionCommandHandler(uows).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, exceptionlog.ErrDescriptionIsRequired)
}
