package services_test

import (
	"testing"
	"time"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/material"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/truck"
	"haulage/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	dispatch *dispatch.Dispatch
	truck    *truck.Truck
	order    *order.Order
	material *material.Material
}

func newFixture(t *testing.T, qty, stock int64) fixture {
	t.Helper()
	tr := newTruck(t, "T-1")
	o := newOrder(t, "Coal", qty)
	d, err := services.NewOrderDispatcher().Assign(tr, o)
	require.NoError(t, err)
	m, err := material.NewMaterial(kernel.NewUUID(), "Coal", decimal.NewFromInt(stock), "")
	require.NoError(t, err)
	return fixture{dispatch: d, truck: tr, order: o, material: m}
}

func TestDispatchCascade_InTransit(t *testing.T) {
	f := newFixture(t, 15, 100)
	cascade := services.NewDispatchCascade()
	require.NoError(t, f.dispatch.ForceStatus(dispatch.InTransit, time.Now()))

	out, err := cascade.Apply(f.dispatch, f.truck, f.order, nil)

	require.NoError(t, err)
	assert.True(t, out.TruckChanged)
	assert.True(t, out.OrderChanged)
	assert.Equal(t, truck.InTransit, f.truck.Status())
	assert.Equal(t, order.InProgress, f.order.Status())

	again, err := cascade.Apply(f.dispatch, f.truck, f.order, nil)
	require.NoError(t, err)
	assert.Equal(t, services.Outcome{}, again)
}

func TestDispatchCascade_Completed(t *testing.T) {
	t.Run("deducts stock exactly once", func(t *testing.T) {
		f := newFixture(t, 15, 100)
		cascade := services.NewDispatchCascade()
		require.NoError(t, f.dispatch.ForceStatus(dispatch.Completed, time.Now()))

		require.True(t, cascade.NeedsMaterial(f.dispatch.Status(), f.order))
		out, err := cascade.Apply(f.dispatch, f.truck, f.order, f.material)

		require.NoError(t, err)
		assert.True(t, out.StockDeducted)
		assert.False(t, out.StockClamped)
		assert.True(t, out.Deducted.Equal(decimal.NewFromInt(15)))
		assert.True(t, f.material.Stock().Equal(decimal.NewFromInt(85)))
		assert.Equal(t, order.Completed, f.order.Status())
		assert.True(t, f.truck.IsAvailable())

		require.False(t, cascade.NeedsMaterial(f.dispatch.Status(), f.order))
		out, err = cascade.Apply(f.dispatch, f.truck, f.order, f.material)
		require.NoError(t, err)
		assert.False(t, out.StockDeducted)
		assert.True(t, f.material.Stock().Equal(decimal.NewFromInt(85)))
	})

	t.Run("clamps at zero", func(t *testing.T) {
		f := newFixture(t, 15, 4)
		require.NoError(t, f.dispatch.ForceStatus(dispatch.Completed, time.Now()))

		out, err := services.NewDispatchCascade().Apply(f.dispatch, f.truck, f.order, f.material)

		require.NoError(t, err)
		assert.True(t, out.StockClamped)
		assert.True(t, f.material.Stock().IsZero())
	})

	t.Run("requires material when deduction is due", func(t *testing.T) {
		f := newFixture(t, 15, 4)
		require.NoError(t, f.dispatch.ForceStatus(dispatch.Completed, time.Now()))

		_, err := services.NewDispatchCascade().Apply(f.dispatch, f.truck, f.order, nil)

		require.ErrorIs(t, err, services.ErrMaterialIsRequired)
		assert.Equal(t, order.Pending, f.order.Status())
	})

	t.Run("parks an in-transit truck", func(t *testing.T) {
		f := newFixture(t, 1, 10)
		cascade := services.NewDispatchCascade()
		require.NoError(t, f.dispatch.ForceStatus(dispatch.InTransit, time.Now()))
		_, err := cascade.Apply(f.dispatch, f.truck, f.order, nil)
		require.NoError(t, err)
		require.NoError(t, f.dispatch.ForceStatus(dispatch.Completed, time.Now()))

		out, err := cascade.Apply(f.dispatch, f.truck, f.order, f.material)

		require.NoError(t, err)
		assert.True(t, out.TruckChanged)
		assert.Equal(t, truck.Idle, f.truck.Status())
		assert.Nil(t, f.truck.ClaimedBy())
	})
}

func TestDispatchCascade_Cancelled(t *testing.T) {
	f := newFixture(t, 1, 10)
	require.NoError(t, f.dispatch.Cancel())

	out, err := services.NewDispatchCascade().Apply(f.dispatch, f.truck, f.order, nil)

	require.NoError(t, err)
	assert.True(t, out.TruckChanged)
	assert.True(t, f.truck.IsAvailable())
	assert.Equal(t, order.Pending, f.order.Status())
}

func TestDispatchCascade_OtherStatusesDoNothing(t *testing.T) {
	for _, s := range []dispatch.Status{dispatch.Assigned, dispatch.WeighIn, dispatch.Unload, dispatch.WeighOut} {
		f := newFixture(t, 1, 10)
		require.NoError(t, f.dispatch.ForceStatus(s, time.Now()))

		out, err := services.NewDispatchCascade().Apply(f.dispatch, f.truck, f.order, nil)

		require.NoError(t, err, s.String())
		assert.Equal(t, services.Outcome{}, out, s.String())
	}
}

func TestDispatchCascade_Rollback(t *testing.T) {
	t.Run("in-transit dispatch returns truck and order", func(t *testing.T) {
		f := newFixture(t, 15, 100)
		cascade := services.NewDispatchCascade()
		require.NoError(t, f.dispatch.Apply(dispatch.Transition{Action: dispatch.ActionStartJourney}, time.Now()))
		_, err := cascade.Apply(f.dispatch, f.truck, f.order, nil)
		require.NoError(t, err)

		out, err := cascade.Rollback(f.dispatch, f.truck, f.order)

		require.NoError(t, err)
		assert.True(t, out.TruckChanged)
		assert.True(t, out.OrderChanged)
		assert.True(t, f.truck.IsAvailable())
		assert.Equal(t, order.Pending, f.order.Status())
	})

	t.Run("completed order is left completed", func(t *testing.T) {
		f := newFixture(t, 15, 100)
		f.order.Complete()

		out, err := services.NewDispatchCascade().Rollback(f.dispatch, f.truck, f.order)

		require.NoError(t, err)
		assert.False(t, out.OrderChanged)
		assert.Equal(t, order.Completed, f.order.Status())
		assert.True(t, f.truck.IsAvailable())
	})

	t.Run("foreign claim survives", func(t *testing.T) {
		f := newFixture(t, 1, 1)
		other := kernel.NewUUID()
		require.True(t, f.truck.Release(f.dispatch.ID()))
		require.NoError(t, f.truck.Claim(other))

		_, err := services.NewDispatchCascade().Rollback(f.dispatch, f.truck, f.order)

		require.NoError(t, err)
		assert.True(t, f.truck.IsClaimedBy(other))
	})
}
