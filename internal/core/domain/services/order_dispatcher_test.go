package services_test

import (
	"testing"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/truck"
	"haulage/internal/core/domain/services"
	"haulage/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, material string, qty int64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), material, decimal.NewFromInt(qty))
	require.NoError(t, err)
	return o
}

func newTruck(t *testing.T, plate string) *truck.Truck {
	t.Helper()
	tr, err := truck.NewTruck(kernel.NewUUID(), plate, decimal.NewFromInt(20), "driver "+plate)
	require.NoError(t, err)
	return tr
}

func TestOrderDispatcher_Dispatch(t *testing.T) {
	t.Run("picks the first available truck and claims it", func(t *testing.T) {
		busy := newTruck(t, "T-0")
		require.NoError(t, busy.Claim(kernel.NewUUID()))
		first := newTruck(t, "T-1")
		second := newTruck(t, "T-2")
		o := newOrder(t, "Coal", 15)

		d, chosen, err := services.NewOrderDispatcher().Dispatch(o, []*truck.Truck{busy, first, second})

		require.NoError(t, err)
		assert.Same(t, first, chosen)
		assert.True(t, d.TruckID().IsEqual(first.ID()))
		assert.True(t, d.OrderID().IsEqual(o.ID()))
		assert.True(t, first.IsClaimedBy(d.ID()))
		assert.Equal(t, truck.Idle, first.Status(), "truck status is untouched until the journey starts")
		assert.Equal(t, order.Pending, o.Status())
		assert.True(t, second.IsAvailable())
	})

	t.Run("no available truck", func(t *testing.T) {
		onRoad := newTruck(t, "T-3")
		require.NoError(t, onRoad.ChangeStatus(truck.InTransit))

		d, chosen, err := services.NewOrderDispatcher().Dispatch(newOrder(t, "Coal", 1), []*truck.Truck{onRoad})

		require.ErrorIs(t, err, services.ErrNoAvailableTruck)
		assert.Nil(t, d)
		assert.Nil(t, chosen)
	})

	t.Run("empty fleet", func(t *testing.T) {
		_, _, err := services.NewOrderDispatcher().Dispatch(newOrder(t, "Coal", 1), nil)
		require.ErrorIs(t, err, services.ErrNoAvailableTruck)
	})

	t.Run("order must be pending", func(t *testing.T) {
		o := newOrder(t, "Coal", 1)
		o.Start()

		_, _, err := services.NewOrderDispatcher().Dispatch(o, []*truck.Truck{newTruck(t, "T-4")})
		require.ErrorIs(t, err, errs.ErrGuardViolation)
	})

	t.Run("invalid truck in candidates", func(t *testing.T) {
		_, _, err := services.NewOrderDispatcher().Dispatch(newOrder(t, "Coal", 1), []*truck.Truck{{}})
		require.ErrorIs(t, err, truck.ErrTruckIsNotConstructed)
	})
}

func TestOrderDispatcher_Assign(t *testing.T) {
	tr := newTruck(t, "T-5")
	require.NoError(t, tr.Claim(kernel.NewUUID()))

	_, err := services.NewOrderDispatcher().Assign(tr, newOrder(t, "Sand", 2))

	require.ErrorIs(t, err, errs.ErrGuardViolation)
}
