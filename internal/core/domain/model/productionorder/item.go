package productionorder

import (
	"fmt"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"
)

// WorkstationType tells the scheduler whether an item is manufactured or assembled.
type WorkstationType int

const (
	UnknownWorkstationType WorkstationType = iota
	Manufacturing
	Assembly
)

func (w WorkstationType) String() string {
	switch w {
	case Manufacturing:
		return "MANUFACTURING"
	case Assembly:
		return "ASSEMBLY"
	default:
		return "UNKNOWN"
	}
}

func ParseWorkstationType(raw string) (WorkstationType, error) {
	switch raw {
	case "MANUFACTURING":
		return Manufacturing, nil
	case "ASSEMBLY":
		return Assembly, nil
	default:
		return UnknownWorkstationType, errs.NewValueIsInvalidErrorWithCause(
			"workstation type", fmt.Errorf("%q is not a valid workstation type", raw))
	}
}

// Item is one line of a production order. Only modules and parts are produced.
type Item struct {
	ItemType        kernel.ItemType
	ItemID          kernel.ID
	Quantity        int
	WorkstationType WorkstationType
}

// WorkstationTypeFor is the default routing: modules are assembled, parts manufactured.
func WorkstationTypeFor(itemType kernel.ItemType) WorkstationType {
	if itemType == kernel.Module {
		return Assembly
	}
	return Manufacturing
}

func (i Item) Validate() error {
	if i.ItemType != kernel.Module && i.ItemType != kernel.Part {
		return errs.NewValueIsInvalidErrorWithCause(
			"item type", fmt.Errorf("%s cannot be produced, only MODULE or PART", i.ItemType))
	}
	if err := i.Stock().Validate(); err != nil {
		return err
	}
	if i.WorkstationType != Manufacturing && i.WorkstationType != Assembly {
		return errs.NewValueIsInvalidErrorWithCause("workstation type", fmt.Errorf("%d is not valid", i.WorkstationType))
	}
	return nil
}

// Stock returns the item as a stock quantity.
func (i Item) Stock() kernel.Item {
	return kernel.Item{Type: i.ItemType, ID: i.ItemID, Quantity: i.Quantity}
}
