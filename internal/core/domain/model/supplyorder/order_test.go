package supplyorder_test

import (
	"testing"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/supplyorder"
	"factory/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T) *supplyorder.SupplyOrder {
	t.Helper()
	order, err := supplyorder.NewSupplyOrder(2, 5, 4, []kernel.Item{{Type: kernel.Part, ID: 30, Quantity: 4}})
	require.NoError(t, err)
	return order
}

func TestNewSupplyOrder(t *testing.T) {
	order := newOrder(t)

	assert.Equal(t, "SO-00002", order.Number())
	assert.Equal(t, supplyorder.Pending, order.Status())

	_, err := supplyorder.NewSupplyOrder(2, 5, 4, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestSupplyOrder_Lifecycle(t *testing.T) {
	t.Run("should fulfill through in progress", func(t *testing.T) {
		order := newOrder(t)
		require.NoError(t, order.Start())
		require.NoError(t, order.Fulfill())
		assert.True(t, order.IsFulfilled())
		require.ErrorIs(t, order.Cancel(), errs.ErrInvalidStateTransition)
	})

	t.Run("should reject from pending", func(t *testing.T) {
		order := newOrder(t)
		require.NoError(t, order.Reject())
		require.ErrorIs(t, order.Start(), errs.ErrInvalidStateTransition)
	})
}

func TestSupplyOrder_RestoreRoundTrip(t *testing.T) {
	order := newOrder(t)
	require.NoError(t, order.Start())

	restored, err := supplyorder.Restore(order.State())
	require.NoError(t, err)
	assert.Equal(t, order.State(), restored.State())
}
