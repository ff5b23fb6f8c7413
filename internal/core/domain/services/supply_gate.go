package services

import (
	"fmt"

	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/supplyorder"
	"factory/internal/core/domain/model/workstationorder"
	"factory/internal/pkg/errs"
)

// SupplyGate decides whether work may leave its initial state based on part availability.
// It never polls supply orders; operators start waiting orders once parts arrive.
type SupplyGate struct{}

func NewSupplyGate() SupplyGate {
	return SupplyGate{}
}

// InitialStatus returns PENDING when the kind needs no inputs or every input is in local
// stock, otherwise WAITING_FOR_PARTS together with the missing quantities that a supply
// order has to bring.
func (SupplyGate) InitialStatus(
	kind plant.Kind,
	inputs []kernel.Item,
	local StockSnapshot,
) (workstationorder.Status, []kernel.Item) {
	if !kind.RequiresInputs() || len(inputs) == 0 {
		return workstationorder.Pending, nil
	}

	missing := local.Shortfall(inputs)
	if len(missing) == 0 {
		return workstationorder.Pending, nil
	}
	return workstationorder.WaitingForParts, missing
}

// CanDispatch refuses to move a control order to IN_PROGRESS while it has supply orders
// and none of them is fulfilled. A control order without supply orders is not gated.
func (SupplyGate) CanDispatch(control *controlorder.ControlOrder, supplies []*supplyorder.SupplyOrder) error {
	if err := control.Validate(); err != nil {
		return err
	}
	if len(supplies) == 0 {
		return nil
	}
	for _, supply := range supplies {
		if supply.IsFulfilled() {
			return nil
		}
	}

	return errs.NewInvalidStateTransitionError(
		"control order", control.ID(), control.Status().String(),
		fmt.Sprintf("dispatch (%d supply orders, none fulfilled)", len(supplies)),
	)
}
