package plant_test

import (
	"testing"

	"factory/internal/core/domain/model/plant"
	"factory/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("should build the default layout", func(t *testing.T) {
		cfg, err := plant.NewConfig(plant.DefaultSettings())
		require.NoError(t, err)

		assert.Equal(t, 3, cfg.LotSizeThreshold())
		assert.Equal(t, plant.WorkstationID(8), cfg.ModulesDepot())
		assert.Equal(t, plant.WorkstationID(6), cfg.Workstation(plant.FinalAssembly))
	})

	t.Run("should reject a non positive threshold", func(t *testing.T) {
		s := plant.DefaultSettings()
		s.LotSizeThreshold = 0

		_, err := plant.NewConfig(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject overlapping ranges", func(t *testing.T) {
		s := plant.DefaultSettings()
		s.AssemblyRange = plant.Range{From: 3, To: 6}

		_, err := plant.NewConfig(s)
		require.Error(t, err)
	})

	t.Run("should reject a kind mapped outside its category range", func(t *testing.T) {
		s := plant.DefaultSettings()
		s.Workstations = map[plant.Kind]plant.WorkstationID{}
		for k, v := range plant.DefaultSettings().Workstations {
			s.Workstations[k] = v
		}
		s.Workstations[plant.GearAssembly] = 2

		_, err := plant.NewConfig(s)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestConfig_Classify(t *testing.T) {
	cfg := plant.MustDefault()

	tests := []struct {
		id       plant.WorkstationID
		category plant.Category
		ok       bool
	}{
		{1, plant.Production, true},
		{3, plant.Production, true},
		{4, plant.Assembly, true},
		{6, plant.Assembly, true},
		{7, plant.UnknownCategory, false},
		{0, plant.UnknownCategory, false},
	}

	for _, tt := range tests {
		category, ok := cfg.Classify(tt.id)
		assert.Equal(t, tt.category, category, "workstation %d", tt.id)
		assert.Equal(t, tt.ok, ok, "workstation %d", tt.id)
	}
}

func TestKind(t *testing.T) {
	t.Run("should split kinds by category", func(t *testing.T) {
		assert.Equal(t,
			[]plant.Kind{plant.InjectionMolding, plant.PartsPreProduction, plant.PartFinishing},
			plant.KindsOf(plant.Production))
		assert.Equal(t,
			[]plant.Kind{plant.GearAssembly, plant.MotorAssembly, plant.FinalAssembly},
			plant.KindsOf(plant.Assembly))
	})

	t.Run("should know which kinds need inputs", func(t *testing.T) {
		assert.False(t, plant.InjectionMolding.RequiresInputs())
		assert.True(t, plant.PartFinishing.RequiresInputs())
		assert.True(t, plant.FinalAssembly.RequiresInputs())
	})

	t.Run("should round trip names", func(t *testing.T) {
		kind, err := plant.ParseKind("MOTOR_ASSEMBLY")
		require.NoError(t, err)
		assert.Equal(t, plant.MotorAssembly, kind)
		assert.Equal(t, "MAO", kind.OrderPrefix())
	})

	t.Run("should find the kind at a workstation", func(t *testing.T) {
		kind, ok := plant.MustDefault().KindAt(5)
		require.True(t, ok)
		assert.Equal(t, plant.MotorAssembly, kind)
	})
}
