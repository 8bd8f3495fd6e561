package kernel_test

import (
	"testing"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositiveQuantity(t *testing.T) {
	t.Run("rounds to three digits", func(t *testing.T) {
		q, err := kernel.PositiveQuantity("quantity", decimal.RequireFromString("15.12345"))

		require.NoError(t, err)
		assert.Equal(t, "15.123", q.String())
	})

	for _, in := range []string{"0", "-1"} {
		t.Run("rejects "+in, func(t *testing.T) {
			_, err := kernel.PositiveQuantity("quantity", decimal.RequireFromString(in))

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "is not greater than 0")
		})
	}
}

func TestNonNegativeQuantity(t *testing.T) {
	q, err := kernel.NonNegativeQuantity("stock", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, q.IsZero())

	_, err = kernel.NonNegativeQuantity("stock", decimal.NewFromInt(-3))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestClampedAdd(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		delta   string
		want    string
		clamped bool
	}{
		{"deduct within stock", "500", "-15", "485", false},
		{"deduct to exactly zero", "15", "-15", "0", false},
		{"deduct beyond stock", "10", "-15", "0", true},
		{"replenish", "0", "7.5", "7.5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := kernel.ClampedAdd(decimal.RequireFromString(tt.base), decimal.RequireFromString(tt.delta))

			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
			assert.Equal(t, tt.clamped, clamped)
		})
	}
}
