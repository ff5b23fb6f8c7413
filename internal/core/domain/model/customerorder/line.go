package customerorder

import (
	"fmt"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"
)

// Line is one requested item of a customer order.
type Line struct {
	ItemType          kernel.ItemType
	ItemID            kernel.ID
	Quantity          int
	FulfilledQuantity int
}

// NewLine creates an unfulfilled line.
func NewLine(itemType kernel.ItemType, itemID kernel.ID, quantity int) (Line, error) {
	line := Line{ItemType: itemType, ItemID: itemID, Quantity: quantity}
	if err := line.Validate(); err != nil {
		return Line{}, err
	}
	return line, nil
}

func (l Line) Validate() error {
	if err := l.Item().Validate(); err != nil {
		return err
	}
	if l.FulfilledQuantity < 0 || l.FulfilledQuantity > l.Quantity {
		return errs.NewValueIsOutOfRangeError("fulfilled quantity", l.FulfilledQuantity, 0, l.Quantity)
	}
	return nil
}

// Item returns the requested item and quantity.
func (l Line) Item() kernel.Item {
	return kernel.Item{Type: l.ItemType, ID: l.ItemID, Quantity: l.Quantity}
}

func (l Line) String() string {
	return fmt.Sprintf("%s#%d x%d", l.ItemType, l.ItemID, l.Quantity)
}
