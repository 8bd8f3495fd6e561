package commands_test

import (
	"context"
	"testing"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/media"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/truck"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCommand(t *testing.T) func(commands.ApplyDispatchTransitionCommand, error) commands.ApplyDispatchTransitionCommand {
	return func(cmd commands.ApplyDispatchTransitionCommand, err error) commands.ApplyDispatchTransitionCommand {
		t.Helper()
		require.NoError(t, err)
		return cmd
	}
}

func TestApplyDispatchTransition_EndToEndCoalDelivery(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	t1 := h.addTruck("T-1", 20)
	coal := h.addMaterial("Coal", 100)
	c := h.addCustomer()
	must := mustCommand(t)

	placed := h.placeOrder(c.ID(), "Coal", 15)
	require.NotNil(t, placed.DispatchID)
	assert.Equal(t, t1.ID(), *placed.TruckID)
	id := *placed.DispatchID
	handler := h.transitions()

	res, err := handler.Handle(ctx, must(commands.NewStartJourneyCommand(operator, id)))
	require.NoError(t, err)
	assert.Equal(t, dispatch.InTransit, res.Status)
	assert.Equal(t, truck.InTransit, res.TruckStatus)
	assert.Equal(t, order.InProgress, res.OrderStatus)

	res, err = handler.Handle(ctx, must(commands.NewWeighInCommand(operator, id, decimal.NewFromInt(35), "slip 1", nil)))
	require.NoError(t, err)
	assert.Equal(t, dispatch.WeighIn, res.Status)
	assert.True(t, decimal.NewFromInt(35).Equal(*h.store.dispatches[id].GrossWeight()))

	res, err = handler.Handle(ctx, must(commands.NewUnloadCommand(operator, id, "", nil)))
	require.NoError(t, err)
	assert.Equal(t, dispatch.Unload, res.Status)

	res, err = handler.Handle(ctx, must(commands.NewWeighOutCommand(operator, id, decimal.NewFromInt(20), "", nil)))
	require.NoError(t, err)
	assert.Equal(t, dispatch.WeighOut, res.Status)
	assert.True(t, decimal.NewFromInt(20).Equal(*h.store.dispatches[id].TareWeight()))

	res, err = handler.Handle(ctx, must(commands.NewCompleteJobCommand(operator, id, nil)))
	require.NoError(t, err)
	assert.Equal(t, dispatch.Completed, res.Status)
	assert.Equal(t, order.Completed, res.OrderStatus)
	assert.Equal(t, truck.Idle, res.TruckStatus)
	assert.True(t, res.StockDeducted)
	assert.False(t, res.StockClamped)
	assert.False(t, res.MaterialSeeded)
	assert.Equal(t, "85", res.Stock.String())
	assert.Equal(t, "85", coal.Stock().String())

	assert.True(t, t1.IsAvailable(), "completion releases the claim")
	net, ok := h.store.dispatches[id].NetWeight()
	require.True(t, ok)
	assert.Equal(t, "15", net.String())
	assert.Equal(t, noon, *h.store.dispatches[id].CompletionTime())
}

func TestApplyDispatchTransition_WeighInOnAssignedIsRejected(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	h.addTruck("T-1", 20)
	c := h.addCustomer()
	id := *h.placeOrder(c.ID(), "Coal", 15).DispatchID
	before := h.store.dispatches[id].Snapshot()

	cmd, err := commands.NewWeighInCommand(operator, id, decimal.NewFromInt(35), "", nil)
	require.NoError(t, err)
	_, err = h.transitions().Handle(ctx, cmd)

	var guardErr *errs.GuardViolationError
	require.ErrorAs(t, err, &guardErr)
	assert.Equal(t, "assigned", guardErr.Observed)
	assert.Equal(t, "in_transit", guardErr.Expected)
	assert.Equal(t, before, h.store.dispatches[id].Snapshot())
}

func TestApplyDispatchTransition_StartJourneyTwiceIsRejected(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	h.addTruck("T-1", 20)
	c := h.addCustomer()
	id := *h.placeOrder(c.ID(), "Coal", 15).DispatchID
	must := mustCommand(t)

	_, err := h.transitions().Handle(ctx, must(commands.NewStartJourneyCommand(operator, id)))
	require.NoError(t, err)
	departed := *h.store.dispatches[id].DepartureTime()

	_, err = h.transitions().Handle(ctx, must(commands.NewStartJourneyCommand(operator, id)))
	require.ErrorIs(t, err, errs.ErrGuardViolation)
	assert.Equal(t, departed, *h.store.dispatches[id].DepartureTime())
	assert.Equal(t, dispatch.InTransit, h.store.dispatches[id].Status())
}

func TestApplyDispatchTransition_UnknownMaterialIsSeededAndClamped(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	h.addTruck("T-1", 20)
	c := h.addCustomer()
	id := *h.placeOrder(c.ID(), "Basalt", 7).DispatchID
	must := mustCommand(t)

	_, err := h.transitions().Handle(ctx, must(commands.NewStartJourneyCommand(operator, id)))
	require.NoError(t, err)

	force := commands.NewForceDispatchStatusCommandHandler(h.uows, h.engine)
	cmd, err := commands.NewForceDispatchStatusCommand(admin, id, dispatch.Completed)
	require.NoError(t, err)
	res, err := force.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.True(t, res.MaterialSeeded)
	assert.True(t, res.StockClamped)
	assert.Equal(t, "Basalt", res.Material)
	assert.True(t, res.Stock.IsZero())
	require.Contains(t, h.store.materials, "Basalt")
	assert.Contains(t, h.events.types(), ports.EventMaterialSeeded)
	assert.Contains(t, h.events.types(), ports.EventStockClamped)
}

func TestApplyDispatchTransition_EvidenceIsStoredPerImage(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	h.addTruck("T-1", 20)
	c := h.addCustomer()
	id := *h.placeOrder(c.ID(), "Coal", 15).DispatchID
	must := mustCommand(t)
	_, err := h.transitions().Handle(ctx, must(commands.NewStartJourneyCommand(operator, id)))
	require.NoError(t, err)

	images := []commands.EvidenceImage{
		{FileName: "front.jpg", ContentType: "image/jpeg", Data: []byte("front")},
		{FileName: "slip.jpg", ContentType: "image/jpeg", Data: []byte("slip")},
	}
	res, err := h.transitions().Handle(ctx, must(commands.NewWeighInCommand(operator, id, decimal.NewFromInt(35), "gate 2", images)))
	require.NoError(t, err)

	require.Len(t, res.Evidence, 2)
	assert.Equal(t, "front.jpg", res.Evidence[0].FileName)
	assert.Equal(t, media.StageWeighIn, res.Evidence[0].Stage)
	require.Len(t, h.store.media, 2)
	for _, m := range h.store.media {
		assert.Equal(t, id, m.DispatchID())
		require.NotNil(t, m.UploaderID())
		assert.Equal(t, operator.UserID, *m.UploaderID())
	}
}

func TestApplyDispatchTransition_PartialUploadFailureKeepsTransition(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	h.addTruck("T-1", 20)
	c := h.addCustomer()
	id := *h.placeOrder(c.ID(), "Coal", 15).DispatchID
	must := mustCommand(t)
	_, err := h.transitions().Handle(ctx, must(commands.NewStartJourneyCommand(operator, id)))
	require.NoError(t, err)

	h.evidence.failOn["broken.jpg"] = true
	images := []commands.EvidenceImage{
		{FileName: "ok.jpg", Data: []byte("ok")},
		{FileName: "broken.jpg", Data: []byte("broken")},
		{FileName: "empty.jpg"},
	}
	res, err := h.transitions().Handle(ctx, must(commands.NewWeighInCommand(operator, id, decimal.NewFromInt(35), "", images)))

	var partial *errs.PartialUploadFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 3, partial.Attempted)
	require.Len(t, partial.Failures, 2)
	assert.Equal(t, 1, partial.Failures[0].Index)
	assert.Equal(t, 2, partial.Failures[1].Index)

	assert.Equal(t, dispatch.WeighIn, res.Status)
	require.Len(t, res.Evidence, 1)
	assert.Equal(t, "ok.jpg", res.Evidence[0].FileName)
	assert.Equal(t, dispatch.WeighIn, h.store.dispatches[id].Status())
}

func TestApplyDispatchTransition_RequiresOperatorOrAdmin(t *testing.T) {
	h := newHarness()
	cmd, err := commands.NewStartJourneyCommand(nobody, kernel.NewUUID())
	require.NoError(t, err)

	_, err = h.transitions().Handle(context.Background(), cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Zero(t, h.store.commits)
}

func TestApplyDispatchTransition_UnknownDispatchIsNotFound(t *testing.T) {
	h := newHarness()
	cmd, err := commands.NewStartJourneyCommand(operator, kernel.NewUUID())
	require.NoError(t, err)

	_, err = h.transitions().Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
