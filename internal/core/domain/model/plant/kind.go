package plant

import (
	"fmt"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"
)

// Category separates manufacturing workstations from assembly workstations.
type Category int

const (
	UnknownCategory Category = iota
	Production
	Assembly
)

func (c Category) String() string {
	switch c {
	case Production:
		return "PRODUCTION"
	case Assembly:
		return "ASSEMBLY"
	default:
		return "UNKNOWN"
	}
}

func (c Category) Validate() error {
	if c != Production && c != Assembly {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

// ParseCategory accepts PRODUCTION or ASSEMBLY.
func ParseCategory(raw string) (Category, error) {
	switch raw {
	case "PRODUCTION":
		return Production, nil
	case "ASSEMBLY":
		return Assembly, nil
	default:
		return UnknownCategory, errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a known category", raw))
	}
}

// Kind is the tag of a workstation order.
type Kind int

const (
	UnknownKind Kind = iota
	InjectionMolding
	PartsPreProduction
	PartFinishing
	GearAssembly
	MotorAssembly
	FinalAssembly
)

type kindInfo struct {
	name           string
	prefix         string
	category       Category
	output         kernel.ItemType
	requiresInputs bool
}

func getKindInfo() map[Kind]kindInfo {
	return map[Kind]kindInfo{
		InjectionMolding: {
			name: "INJECTION_MOLDING", prefix: "IMO", category: Production, output: kernel.Part,
		},
		PartsPreProduction: {
			name: "PARTS_PRE_PRODUCTION", prefix: "PPO", category: Production, output: kernel.Part,
		},
		PartFinishing: {
			name: "PART_FINISHING", prefix: "PFO", category: Production, output: kernel.Part, requiresInputs: true,
		},
		GearAssembly: {
			name: "GEAR_ASSEMBLY", prefix: "GAO", category: Assembly, output: kernel.Module, requiresInputs: true,
		},
		MotorAssembly: {
			name: "MOTOR_ASSEMBLY", prefix: "MAO", category: Assembly, output: kernel.Module, requiresInputs: true,
		},
		FinalAssembly: {
			name: "FINAL_ASSEMBLY", prefix: "FAO", category: Assembly, output: kernel.Product, requiresInputs: true,
		},
	}
}

// Kinds lists every valid kind in workstation order.
func Kinds() []Kind {
	return []Kind{InjectionMolding, PartsPreProduction, PartFinishing, GearAssembly, MotorAssembly, FinalAssembly}
}

// KindsOf lists the kinds belonging to one category.
func KindsOf(category Category) []Kind {
	kinds := make([]Kind, 0, 3)
	for _, kind := range Kinds() {
		if kind.Category() == category {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func ParseKind(raw string) (Kind, error) {
	for kind, info := range getKindInfo() {
		if info.name == raw {
			return kind, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a known workstation kind", raw))
}

func (k Kind) Validate() error {
	if _, ok := getKindInfo()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid workstation kind", k))
	}
	return nil
}

func (k Kind) String() string {
	if info, ok := getKindInfo()[k]; ok {
		return info.name
	}
	return "UNKNOWN"
}

// Category reports whether the kind is a manufacturing or an assembly stage.
func (k Kind) Category() Category {
	return getKindInfo()[k].category
}

// RequiresInputs is true for finishing and assembly stages, which consume parts
// produced elsewhere and therefore pass through the supply gate.
func (k Kind) RequiresInputs() bool {
	return getKindInfo()[k].requiresInputs
}

// OutputItemType is what a workstation of this kind produces.
func (k Kind) OutputItemType() kernel.ItemType {
	return getKindInfo()[k].output
}

// OrderPrefix is the order number prefix of workstation orders of this kind.
func (k Kind) OrderPrefix() string {
	if info, ok := getKindInfo()[k]; ok {
		return info.prefix
	}
	return "WSO"
}
