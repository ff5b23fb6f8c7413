package kernel

import (
	"fmt"
	"slices"

	"factory/internal/pkg/errs"
)

// OrderType names one level of the order hierarchy in commands, queries, events and metrics.
type OrderType string

const (
	CustomerOrderType    OrderType = "customer_order"
	WarehouseOrderType   OrderType = "warehouse_order"
	ProductionOrderType  OrderType = "production_order"
	ControlOrderType     OrderType = "control_order"
	WorkstationOrderType OrderType = "workstation_order"
	SupplyOrderType      OrderType = "supply_order"
)

func OrderTypes() []OrderType {
	return []OrderType{
		CustomerOrderType,
		WarehouseOrderType,
		ProductionOrderType,
		ControlOrderType,
		WorkstationOrderType,
		SupplyOrderType,
	}
}

func ParseOrderType(raw string) (OrderType, error) {
	t := OrderType(raw)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t OrderType) Validate() error {
	if !slices.Contains(OrderTypes(), t) {
		return errs.NewValueIsInvalidErrorWithCause("order type", fmt.Errorf("%q is not a known order type", string(t)))
	}
	return nil
}

func (t OrderType) String() string {
	return string(t)
}
