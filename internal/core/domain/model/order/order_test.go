package order_test

import (
	"testing"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Coal", decimal.NewFromInt(15))
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	id := kernel.NewUUID()
	customerID := kernel.NewUUID()

	t.Run("creates a pending order", func(t *testing.T) {
		o, err := order.NewOrder(id, customerID, "  Coal ", decimal.RequireFromString("15.5"))

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.CustomerID().IsEqual(customerID))
		assert.Equal(t, "Coal", o.MaterialType())
		assert.Equal(t, "15.5", o.Quantity().String())
		assert.Equal(t, order.Pending, o.Status())
		assert.Zero(t, o.Version())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		o, err := order.NewOrder(id, customerID, "Coal", decimal.Zero)

		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("rejects blank material type", func(t *testing.T) {
		_, err := order.NewOrder(id, customerID, "   ", decimal.NewFromInt(1))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("reports every invalid field at once", func(t *testing.T) {
		var zero kernel.UUID

		_, err := order.NewOrder(zero, zero, "", decimal.NewFromInt(-1))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "customer")
		assert.Contains(t, err.Error(), "material type")
		assert.Contains(t, err.Error(), "quantity")
	})
}

func TestRestoreOrder(t *testing.T) {
	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "Sand", decimal.NewFromInt(3), order.InProgress, 7)

	require.NoError(t, err)
	assert.Equal(t, order.InProgress, o.Status())
	assert.Equal(t, int64(7), o.Version())

	_, err = order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "Sand", decimal.NewFromInt(3), order.Unknown, 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestOrder_Validate_ZeroValue(t *testing.T) {
	var o order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())

	var nilOrder *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("start only moves pending orders", func(t *testing.T) {
		o := newPendingOrder(t)

		assert.True(t, o.Start())
		assert.Equal(t, order.InProgress, o.Status())
		assert.False(t, o.Start())
		assert.Equal(t, order.InProgress, o.Status())
	})

	t.Run("complete reports the first completion only", func(t *testing.T) {
		o := newPendingOrder(t)
		o.Start()

		assert.True(t, o.Complete())
		assert.False(t, o.Complete())
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("complete is allowed straight from pending", func(t *testing.T) {
		o := newPendingOrder(t)

		assert.True(t, o.Complete())
	})

	t.Run("revert only undoes in-progress orders", func(t *testing.T) {
		o := newPendingOrder(t)
		assert.False(t, o.RevertToPending())

		o.Start()
		assert.True(t, o.RevertToPending())
		assert.Equal(t, order.Pending, o.Status())

		o.Complete()
		assert.False(t, o.RevertToPending())
		assert.Equal(t, order.Completed, o.Status())
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	o := newPendingOrder(t)

	require.NoError(t, o.ChangeStatus(order.Cancelled))
	assert.Equal(t, order.Cancelled, o.Status())

	require.NoError(t, o.ChangeStatus(order.Pending))
	assert.Equal(t, order.Pending, o.Status())

	require.ErrorIs(t, o.ChangeStatus(order.Unknown), errs.ErrValueIsInvalid)
	assert.Equal(t, order.Pending, o.Status())
}
