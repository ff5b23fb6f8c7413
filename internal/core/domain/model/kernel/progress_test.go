package kernel_test

import (
	"testing"

	"factory/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		completed  int
		percent    float64
		isComplete bool
	}{
		{"no children is zero percent and never complete", 0, 0, 0, false},
		{"partial progress", 4, 1, 25, false},
		{"all children completed", 3, 3, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := kernel.NewProgress(tt.total, tt.completed)
			assert.InDelta(t, tt.percent, p.Percent(), 0.0001)
			assert.Equal(t, tt.isComplete, p.IsComplete())
		})
	}

	t.Run("should add snapshots", func(t *testing.T) {
		p := kernel.NewProgress(2, 1).Add(kernel.NewProgress(3, 3))
		assert.Equal(t, kernel.NewProgress(5, 4), p)
	})
}
