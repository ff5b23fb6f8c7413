package kernel_test

import (
	"testing"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should create a valid item", func(t *testing.T) {
		item, err := kernel.NewItem(kernel.Module, 3, 5)
		require.NoError(t, err)
		assert.Equal(t, kernel.Module, item.Type)
		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("should reject non positive quantity", func(t *testing.T) {
		_, err := kernel.NewItem(kernel.Part, 3, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown item type", func(t *testing.T) {
		_, err := kernel.NewItem(kernel.UnknownItemType, 3, 1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParseItemType(t *testing.T) {
	itemType, err := kernel.ParseItemType("PRODUCT")
	require.NoError(t, err)
	assert.Equal(t, kernel.Product, itemType)
	assert.Equal(t, "PRODUCT", itemType.String())

	_, err = kernel.ParseItemType("GADGET")
	require.Error(t, err)
}

func TestTotalQuantity(t *testing.T) {
	items := []kernel.Item{
		{Type: kernel.Product, ID: 1, Quantity: 2},
		{Type: kernel.Product, ID: 2, Quantity: 3},
	}
	assert.Equal(t, 5, kernel.TotalQuantity(items))
	assert.Equal(t, 0, kernel.TotalQuantity(nil))
}

func TestItem_String(t *testing.T) {
	item := kernel.Item{Type: kernel.Module, ID: 12, Quantity: 3}
	assert.Equal(t, "MODULE 12 x3", item.String())
}
