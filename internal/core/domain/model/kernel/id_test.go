package kernel_test

import (
	"testing"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	t.Run("should accept positive ids", func(t *testing.T) {
		require.NoError(t, kernel.ID(1).Validate())
	})

	t.Run("should reject zero and negative ids", func(t *testing.T) {
		require.ErrorIs(t, kernel.ID(0).Validate(), errs.ErrValueIsInvalid)
		require.ErrorIs(t, kernel.ID(-3).Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("should parse decimal ids", func(t *testing.T) {
		id, err := kernel.ParseID("42")
		require.NoError(t, err)
		assert.Equal(t, kernel.ID(42), id)

		_, err = kernel.ParseID("abc")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = kernel.ParseID("0")
		require.Error(t, err)
	})
}

func TestOrderNumber(t *testing.T) {
	tests := []struct {
		prefix string
		width  int
		id     kernel.ID
		want   string
	}{
		{"ORD", 4, 1, "ORD-0001"},
		{"WO", 4, 12, "WO-0012"},
		{"PO", 5, 7, "PO-00007"},
		{"PCO", 4, 12345, "PCO-12345"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, kernel.OrderNumber(tt.prefix, tt.width, tt.id))
		})
	}
}

func TestParseOrderType(t *testing.T) {
	for _, orderType := range kernel.OrderTypes() {
		parsed, err := kernel.ParseOrderType(orderType.String())
		require.NoError(t, err)
		assert.Equal(t, orderType, parsed)
	}

	_, err := kernel.ParseOrderType("invoice")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
