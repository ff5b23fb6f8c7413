package controlorder_test

import (
	"testing"
	"time"

	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/plant"
	"factory/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steps() []controlorder.Step {
	start := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	return []controlorder.Step{
		{ItemID: 11, ItemName: "Gear housing", Quantity: 2, StartTime: start, EndTime: start.Add(time.Hour), Duration: time.Hour},
		{ItemID: 12, ItemName: "Gear shaft", Quantity: 2, StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour)},
	}
}

func TestNewControlOrder(t *testing.T) {
	t.Run("should number assembly orders ACO", func(t *testing.T) {
		order, err := controlorder.NewControlOrder(3, 1, 4, plant.Assembly, steps())
		require.NoError(t, err)

		assert.Equal(t, "ACO-0003", order.Number())
		assert.Equal(t, controlorder.Pending, order.Status())
		assert.Equal(t, 2, order.Steps()[1].Sequence)
	})

	t.Run("should number production orders PCO", func(t *testing.T) {
		order, err := controlorder.NewControlOrder(3, 1, 2, plant.Production, steps())
		require.NoError(t, err)
		assert.Equal(t, "PCO-0003", order.Number())
	})

	t.Run("should require steps", func(t *testing.T) {
		_, err := controlorder.NewControlOrder(3, 1, 2, plant.Production, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a step that ends before it starts", func(t *testing.T) {
		bad := steps()
		bad[0].EndTime = bad[0].StartTime.Add(-time.Minute)

		_, err := controlorder.NewControlOrder(3, 1, 2, plant.Production, bad)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestControlOrder_Lifecycle(t *testing.T) {
	t.Run("should dispatch halt resume and complete", func(t *testing.T) {
		order, err := controlorder.NewControlOrder(1, 1, 4, plant.Assembly, steps())
		require.NoError(t, err)

		require.ErrorIs(t, order.Complete(), errs.ErrInvalidStateTransition)
		require.NoError(t, order.Dispatch())
		require.NotNil(t, order.StartedAt())
		require.NoError(t, order.Halt())
		require.NoError(t, order.Resume())
		require.NoError(t, order.Complete())
		assert.True(t, order.IsCompleted())
		require.NotNil(t, order.CompletedAt())
		require.ErrorIs(t, order.Complete(), errs.ErrInvalidStateTransition)
	})

	t.Run("should not dispatch twice", func(t *testing.T) {
		order, err := controlorder.NewControlOrder(1, 1, 4, plant.Assembly, steps())
		require.NoError(t, err)
		require.NoError(t, order.Dispatch())

		require.ErrorIs(t, order.Dispatch(), errs.ErrInvalidStateTransition)
	})
}

func TestControlOrder_RestoreRoundTrip(t *testing.T) {
	order, err := controlorder.NewControlOrder(1, 1, 4, plant.Assembly, steps())
	require.NoError(t, err)
	require.NoError(t, order.Dispatch())

	restored, err := controlorder.Restore(order.State())
	require.NoError(t, err)
	assert.Equal(t, order.State(), restored.State())
}
