package kernel

import (
	"fmt"

	"factory/internal/pkg/errs"
)

// ItemType classifies what an order line or stock entry refers to.
type ItemType int

const (
	UnknownItemType ItemType = iota
	Product
	Module
	Part
)

func getItemTypeStrings() map[ItemType]string {
	return map[ItemType]string{
		UnknownItemType: "UNKNOWN",
		Product:         "PRODUCT",
		Module:          "MODULE",
		Part:            "PART",
	}
}

// ParseItemType maps the wire representation (PRODUCT, MODULE, PART) to an ItemType.
func ParseItemType(raw string) (ItemType, error) {
	for itemType, str := range getItemTypeStrings() {
		if itemType != UnknownItemType && str == raw {
			return itemType, nil
		}
	}
	return UnknownItemType, errs.NewValueIsInvalidErrorWithCause("item type", fmt.Errorf("%q is not a known item type", raw))
}

func (t ItemType) Validate() error {
	if t != Product && t != Module && t != Part {
		return errs.NewValueIsInvalidErrorWithCause("item type", fmt.Errorf("%d is not a valid item type", t))
	}
	return nil
}

func (t ItemType) String() string {
	if str, ok := getItemTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// Item is a typed quantity of a catalog entry.
type Item struct {
	Type     ItemType
	ID       ID
	Quantity int
}

func NewItem(itemType ItemType, id ID, quantity int) (Item, error) {
	item := Item{Type: itemType, ID: id, Quantity: quantity}
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (i Item) Validate() error {
	if err := i.Type.Validate(); err != nil {
		return err
	}
	if err := i.ID.Validate(); err != nil {
		return err
	}
	if i.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", i.Quantity))
	}
	return nil
}

func (i Item) String() string {
	return fmt.Sprintf("%s %d x%d", i.Type, i.ID, i.Quantity)
}

// TotalQuantity sums the quantity of all items.
func TotalQuantity(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
