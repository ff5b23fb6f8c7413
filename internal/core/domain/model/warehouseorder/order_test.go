package warehouseorder_test

import (
	"testing"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T) *warehouseorder.WarehouseOrder {
	t.Helper()
	order, err := warehouseorder.NewWarehouseOrder(1, 10, []kernel.Item{{Type: kernel.Module, ID: 4, Quantity: 2}})
	require.NoError(t, err)
	return order
}

func TestNewWarehouseOrder(t *testing.T) {
	order := newOrder(t)

	assert.Equal(t, warehouseorder.Pending, order.Status())
	assert.Equal(t, "WO-0001", order.Number())
	assert.Equal(t, kernel.ID(10), order.CustomerOrderID())
	assert.False(t, order.TriggerScenario().IsSet())
	assert.Nil(t, order.ProductionOrderID())

	_, err := warehouseorder.NewWarehouseOrder(1, 0, []kernel.Item{{Type: kernel.Module, ID: 4, Quantity: 2}})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestWarehouseOrder_Confirm(t *testing.T) {
	t.Run("should set scenario and confirm", func(t *testing.T) {
		order := newOrder(t)

		require.NoError(t, order.Confirm(kernel.ProductionRequired))
		assert.Equal(t, warehouseorder.Confirmed, order.Status())
		assert.Equal(t, kernel.ProductionRequired, order.TriggerScenario())
	})

	t.Run("should reject a second confirmation", func(t *testing.T) {
		order := newOrder(t)
		require.NoError(t, order.Confirm(kernel.DirectFulfillment))

		err := order.Confirm(kernel.DirectFulfillment)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("should reject direct production as a trigger", func(t *testing.T) {
		order := newOrder(t)
		require.ErrorIs(t, order.Confirm(kernel.DirectProduction), errs.ErrValueIsInvalid)
		assert.Equal(t, warehouseorder.Pending, order.Status())
	})
}

func TestWarehouseOrder_ProductionPath(t *testing.T) {
	order := newOrder(t)
	require.NoError(t, order.Confirm(kernel.ProductionRequired))

	require.NoError(t, order.LinkProductionOrder(5))
	require.NoError(t, order.LinkProductionOrder(5), "linking the same production order is idempotent")
	require.ErrorIs(t, order.LinkProductionOrder(6), errs.ErrInvalidStateTransition)

	require.NoError(t, order.AwaitProduction())
	assert.Equal(t, warehouseorder.AwaitingProduction, order.Status())

	assert.True(t, order.MarkReadyForFulfillment())
	assert.Equal(t, warehouseorder.Confirmed, order.Status())
	assert.Equal(t, kernel.DirectFulfillment, order.TriggerScenario())

	require.NoError(t, order.StartFulfillment())
	require.NoError(t, order.Fulfill())
	require.NotNil(t, order.CompletedAt())
	require.ErrorIs(t, order.Fulfill(), errs.ErrInvalidStateTransition)
	assert.False(t, order.MarkReadyForFulfillment())
}

func TestWarehouseOrder_LinkRequiresProductionScenario(t *testing.T) {
	order := newOrder(t)
	require.NoError(t, order.Confirm(kernel.DirectFulfillment))

	require.ErrorIs(t, order.LinkProductionOrder(5), errs.ErrInvalidStateTransition)
}

func TestWarehouseOrder_Override(t *testing.T) {
	t.Run("should require a reason", func(t *testing.T) {
		order := newOrder(t)
		require.ErrorIs(t, order.Override(warehouseorder.Confirmed, " "), errs.ErrValueIsRequired)
	})

	t.Run("should bypass the confirm rule", func(t *testing.T) {
		order := newOrder(t)
		require.NoError(t, order.Confirm(kernel.DirectFulfillment))
		require.NoError(t, order.StartFulfillment())

		require.NoError(t, order.Override(warehouseorder.Confirmed, "operator re-check"))
		assert.Equal(t, warehouseorder.Confirmed, order.Status())
	})

	t.Run("should never set fulfilled", func(t *testing.T) {
		order := newOrder(t)
		require.ErrorIs(t, order.Override(warehouseorder.Fulfilled, "shortcut"), errs.ErrInvalidStateTransition)
	})
}

func TestWarehouseOrder_RestoreRoundTrip(t *testing.T) {
	order := newOrder(t)
	require.NoError(t, order.Confirm(kernel.ProductionRequired))
	require.NoError(t, order.LinkProductionOrder(3))

	restored, err := warehouseorder.Restore(order.State())
	require.NoError(t, err)
	assert.Equal(t, order.State(), restored.State())
}
