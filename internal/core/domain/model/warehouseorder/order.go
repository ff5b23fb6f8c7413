package warehouseorder

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"
)

const entityName = "warehouse order"

var ErrWarehouseOrderIsNotConstructed = errors.New("WarehouseOrder must be created via NewWarehouseOrder constructor")

// WarehouseOrder tracks the modules needed at the Modules depot for one customer order.
type WarehouseOrder struct {
	id                kernel.ID
	number            string
	customerOrderID   kernel.ID
	items             []kernel.Item
	status            Status
	triggerScenario   kernel.Scenario
	productionOrderID *kernel.ID
	createdAt         time.Time
	updatedAt         time.Time
	completedAt       *time.Time
	version           int64

	isConstructed bool
}

func NewWarehouseOrder(id, customerOrderID kernel.ID, items []kernel.Item) (*WarehouseOrder, error) {
	now := time.Now().UTC()
	order := &WarehouseOrder{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerOrderID(customerOrderID),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	order.number = kernel.OrderNumber("WO", 4, id)
	return order, nil
}

func (o *WarehouseOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrWarehouseOrderIsNotConstructed
	}
	return nil
}

func (o *WarehouseOrder) ID() kernel.ID {
	return o.id
}

func (o *WarehouseOrder) Number() string {
	return o.number
}

func (o *WarehouseOrder) CustomerOrderID() kernel.ID {
	return o.customerOrderID
}

func (o *WarehouseOrder) Items() []kernel.Item {
	return slices.Clone(o.items)
}

func (o *WarehouseOrder) Status() Status {
	return o.status
}

// TriggerScenario is NoScenario until the order is confirmed.
func (o *WarehouseOrder) TriggerScenario() kernel.Scenario {
	return o.triggerScenario
}

// ProductionOrderID is the production order raised for this warehouse order, if any.
func (o *WarehouseOrder) ProductionOrderID() *kernel.ID {
	return o.productionOrderID
}

func (o *WarehouseOrder) CreatedAt() time.Time {
	return o.createdAt
}

func (o *WarehouseOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *WarehouseOrder) CompletedAt() *time.Time {
	return o.completedAt
}

func (o *WarehouseOrder) Version() int64 {
	return o.version
}

func (o *WarehouseOrder) IncrementVersion() {
	o.version++
}

// TotalQuantity sums the requested module quantities.
func (o *WarehouseOrder) TotalQuantity() int {
	return kernel.TotalQuantity(o.items)
}

// Confirm records the resolved scenario and moves PENDING to CONFIRMED. A second
// confirmation is rejected rather than silently accepted.
func (o *WarehouseOrder) Confirm(scenario kernel.Scenario) error {
	if scenario != kernel.DirectFulfillment && scenario != kernel.ProductionRequired {
		return errs.NewValueIsInvalidErrorWithCause(
			"trigger scenario", fmt.Errorf("%q cannot trigger a warehouse order", scenario.String()))
	}
	if o.status != Pending {
		return o.rejected("confirm")
	}

	o.status = Confirmed
	o.triggerScenario = scenario
	o.touch()
	return nil
}

// LinkProductionOrder stores the production order raised for this warehouse order.
// Linking the same id again is a no-op; linking a different one is rejected.
func (o *WarehouseOrder) LinkProductionOrder(productionOrderID kernel.ID) error {
	if err := productionOrderID.Validate(); err != nil {
		return err
	}
	if o.productionOrderID != nil {
		if *o.productionOrderID == productionOrderID {
			return nil
		}
		return o.rejected("link another production order to")
	}
	if o.triggerScenario != kernel.ProductionRequired {
		return o.rejected("link a production order to")
	}

	o.productionOrderID = productionOrderID.Ptr()
	o.touch()
	return nil
}

// AwaitProduction parks a confirmed order until its production order completes.
func (o *WarehouseOrder) AwaitProduction() error {
	if o.status != Confirmed || o.productionOrderID == nil {
		return o.rejected("await production for")
	}
	o.status = AwaitingProduction
	o.touch()
	return nil
}

// MarkReadyForFulfillment flips the order to CONFIRMED/DIRECT_FULFILLMENT once the
// produced modules have been credited to the depot. It reports false, without error,
// when the order is in a status that is left untouched.
func (o *WarehouseOrder) MarkReadyForFulfillment() bool {
	switch o.status {
	case AwaitingProduction, Processing, Confirmed:
	default:
		return false
	}

	o.status = Confirmed
	o.triggerScenario = kernel.DirectFulfillment
	o.touch()
	return true
}

// StartFulfillment begins the debit and assembly dispatch of a directly fulfillable order.
func (o *WarehouseOrder) StartFulfillment() error {
	if o.status != Confirmed || o.triggerScenario != kernel.DirectFulfillment {
		return o.rejected("fulfill")
	}
	o.status = Processing
	o.touch()
	return nil
}

// Fulfill completes the order. It happens at most once.
func (o *WarehouseOrder) Fulfill() error {
	if o.status != Processing {
		return o.rejected("complete")
	}
	now := time.Now().UTC()
	o.status = Fulfilled
	o.completedAt = &now
	o.updatedAt = now
	return nil
}

func (o *WarehouseOrder) Reject() error {
	if o.status != Pending && o.status != Confirmed {
		return o.rejected("reject")
	}
	o.status = Rejected
	o.touch()
	return nil
}

func (o *WarehouseOrder) Cancel() error {
	if o.status != Pending && o.status != Confirmed {
		return o.rejected("cancel")
	}
	o.status = Cancelled
	o.touch()
	return nil
}

// Override sets the status directly, bypassing the transition rules. It is reserved for
// operators, must carry a reason and can never mark the order FULFILLED, which only the
// fulfillment path may do.
func (o *WarehouseOrder) Override(target Status, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("override reason")
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if target == Fulfilled || o.status.IsFinal() {
		return o.rejected("override to " + target.String())
	}
	if target == o.status {
		return nil
	}

	o.status = target
	o.touch()
	return nil
}

func (o *WarehouseOrder) rejected(action string) error {
	return errs.NewInvalidStateTransitionError(entityName, o.id, o.status.String(), action)
}

func (o *WarehouseOrder) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *WarehouseOrder) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *WarehouseOrder) setCustomerOrderID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer order id", err)
	}
	o.customerOrderID = id
	return nil
}

func (o *WarehouseOrder) setItems(items []kernel.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = slices.Clone(items)
	return nil
}
