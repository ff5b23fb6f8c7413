package plant

import (
	"errors"
	"fmt"
	"time"

	"factory/internal/pkg/errs"
)

// WorkstationID identifies a physical workstation or depot.
type WorkstationID int

// Range is an inclusive interval of workstation ids.
type Range struct {
	From WorkstationID
	To   WorkstationID
}

func (r Range) Contains(id WorkstationID) bool {
	return id >= r.From && id <= r.To
}

func (r Range) validate(name string) error {
	if r.From <= 0 || r.To < r.From {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("[%d, %d] is not a valid range", r.From, r.To))
	}
	return nil
}

// Settings is the raw, loadable form of a Config.
type Settings struct {
	LotSizeThreshold int
	ProductionRange  Range
	AssemblyRange    Range
	Workstations     map[Kind]WorkstationID
	PlantWarehouse   WorkstationID
	ModulesDepot     WorkstationID
	PartsSupplyDepot WorkstationID
	CallTimeout      time.Duration
}

// DefaultSettings returns the layout of the reference plant.
func DefaultSettings() Settings {
	return Settings{
		LotSizeThreshold: 3,
		ProductionRange:  Range{From: 1, To: 3},
		AssemblyRange:    Range{From: 4, To: 6},
		Workstations: map[Kind]WorkstationID{
			InjectionMolding:   1,
			PartsPreProduction: 2,
			PartFinishing:      3,
			GearAssembly:       4,
			MotorAssembly:      5,
			FinalAssembly:      6,
		},
		PlantWarehouse:   7,
		ModulesDepot:     8,
		PartsSupplyDepot: 9,
		CallTimeout:      5 * time.Second,
	}
}

// Config is the immutable plant configuration.
type Config struct {
	lotSizeThreshold int
	productionRange  Range
	assemblyRange    Range
	workstations     map[Kind]WorkstationID
	plantWarehouse   WorkstationID
	modulesDepot     WorkstationID
	partsSupplyDepot WorkstationID
	callTimeout      time.Duration
}

// NewConfig validates settings and freezes them into a Config. Every kind must be mapped
// to a workstation inside the range of its category.
func NewConfig(s Settings) (Config, error) {
	if s.LotSizeThreshold <= 0 {
		return Config{}, errs.NewValueIsInvalidErrorWithCause(
			"lot size threshold", fmt.Errorf("%d is not greater than 0", s.LotSizeThreshold))
	}
	if err := errors.Join(
		s.ProductionRange.validate("production range"),
		s.AssemblyRange.validate("assembly range"),
	); err != nil {
		return Config{}, err
	}
	if s.ProductionRange.Contains(s.AssemblyRange.From) || s.AssemblyRange.Contains(s.ProductionRange.From) {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("workstation ranges", errors.New("ranges overlap"))
	}

	workstations := make(map[Kind]WorkstationID, len(Kinds()))
	for _, kind := range Kinds() {
		id, ok := s.Workstations[kind]
		if !ok {
			return Config{}, errs.NewValueIsRequiredError("workstation for " + kind.String())
		}
		r := s.ProductionRange
		if kind.Category() == Assembly {
			r = s.AssemblyRange
		}
		if !r.Contains(id) {
			return Config{}, errs.NewValueIsOutOfRangeError("workstation for "+kind.String(), id, r.From, r.To)
		}
		workstations[kind] = id
	}

	if s.CallTimeout <= 0 {
		s.CallTimeout = DefaultSettings().CallTimeout
	}

	return Config{
		lotSizeThreshold: s.LotSizeThreshold,
		productionRange:  s.ProductionRange,
		assemblyRange:    s.AssemblyRange,
		workstations:     workstations,
		plantWarehouse:   s.PlantWarehouse,
		modulesDepot:     s.ModulesDepot,
		partsSupplyDepot: s.PartsSupplyDepot,
		callTimeout:      s.CallTimeout,
	}, nil
}

// MustDefault is the default Config; it is used by tests and by the memory mode.
func MustDefault() Config {
	cfg, err := NewConfig(DefaultSettings())
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c Config) LotSizeThreshold() int { return c.lotSizeThreshold }

func (c Config) PlantWarehouse() WorkstationID { return c.plantWarehouse }

func (c Config) ModulesDepot() WorkstationID { return c.modulesDepot }

func (c Config) PartsSupplyDepot() WorkstationID { return c.partsSupplyDepot }

func (c Config) CallTimeout() time.Duration { return c.callTimeout }

// Workstation returns the fixed workstation of a kind.
func (c Config) Workstation(kind Kind) WorkstationID {
	return c.workstations[kind]
}

// Classify maps a workstation id to its category by numeric range.
func (c Config) Classify(id WorkstationID) (Category, bool) {
	switch {
	case c.productionRange.Contains(id):
		return Production, true
	case c.assemblyRange.Contains(id):
		return Assembly, true
	default:
		return UnknownCategory, false
	}
}

// KindAt returns the kind operated at a workstation.
func (c Config) KindAt(id WorkstationID) (Kind, bool) {
	for kind, ws := range c.workstations {
		if ws == id {
			return kind, true
		}
	}
	return UnknownKind, false
}
