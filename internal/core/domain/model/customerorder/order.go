package customerorder

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"
)

const entityName = "customer order"

var (
	// ErrCustomerOrderIsNotConstructed is returned when a CustomerOrder was not created
	// through NewCustomerOrder or Restore.
	ErrCustomerOrderIsNotConstructed = errors.New("CustomerOrder must be created via NewCustomerOrder constructor")
)

// CustomerOrder is the aggregate root for a customer's request. It owns zero or
// more warehouse orders and production orders, which refer back to it by id only.
type CustomerOrder struct {
	id          kernel.ID
	number      string
	lines       []Line
	status      Status
	scenario    kernel.Scenario
	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time
	version     int64

	isConstructed bool
}

// NewCustomerOrder creates a PENDING order with at least one line.
func NewCustomerOrder(id kernel.ID, lines []Line) (*CustomerOrder, error) {
	now := time.Now().UTC()
	order := &CustomerOrder{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setLines(lines),
	); err != nil {
		return nil, err
	}

	order.number = kernel.OrderNumber("ORD", 4, id)
	return order, nil
}

func (o *CustomerOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrCustomerOrderIsNotConstructed
	}
	return nil
}

func (o *CustomerOrder) ID() kernel.ID {
	return o.id
}

func (o *CustomerOrder) Number() string {
	return o.number
}

func (o *CustomerOrder) Lines() []Line {
	return slices.Clone(o.lines)
}

func (o *CustomerOrder) Status() Status {
	return o.status
}

func (o *CustomerOrder) Scenario() kernel.Scenario {
	return o.scenario
}

func (o *CustomerOrder) CreatedAt() time.Time {
	return o.createdAt
}

func (o *CustomerOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *CustomerOrder) CompletedAt() *time.Time {
	return o.completedAt
}

func (o *CustomerOrder) Version() int64 {
	return o.version
}

// IncrementVersion is called by stores after a successful update.
func (o *CustomerOrder) IncrementVersion() {
	o.version++
}

// TotalQuantity is the aggregate requested quantity across all lines; it drives
// the lot-size decision.
func (o *CustomerOrder) TotalQuantity() int {
	total := 0
	for _, line := range o.lines {
		total += line.Quantity
	}
	return total
}

// ProductLines returns the lines that request finished products.
func (o *CustomerOrder) ProductLines() []Line {
	products := make([]Line, 0, len(o.lines))
	for _, line := range o.lines {
		if line.ItemType == kernel.Product {
			products = append(products, line)
		}
	}
	return products
}

// Confirm moves a PENDING order to CONFIRMED.
func (o *CustomerOrder) Confirm() error {
	if o.status != Pending {
		return o.rejected("confirm")
	}
	o.status = Confirmed
	o.touch()
	return nil
}

// StartProcessing records the routing decision and moves the order to PROCESSING.
// The scenario may still be unset when the order waits for warehouse confirmation.
func (o *CustomerOrder) StartProcessing(scenario kernel.Scenario) error {
	if o.status != Pending && o.status != Confirmed {
		return o.rejected("process")
	}
	o.status = Processing
	o.scenario = scenario
	o.touch()
	return nil
}

// RecordScenario stores the scenario decided further down the hierarchy.
func (o *CustomerOrder) RecordScenario(scenario kernel.Scenario) {
	if o.scenario == scenario {
		return
	}
	o.scenario = scenario
	o.touch()
}

// Complete marks every line fulfilled. children counts the warehouse and final assembly
// orders fulfilling this order; it has to be complete, so an order without any child
// work or with outstanding children stays PROCESSING.
func (o *CustomerOrder) Complete(children kernel.Progress) error {
	if o.status != Processing {
		return o.rejected("complete")
	}
	if !children.IsComplete() {
		return o.rejected(fmt.Sprintf("complete (%d of %d child orders done)", children.Completed, children.Total))
	}
	for i := range o.lines {
		o.lines[i].FulfilledQuantity = o.lines[i].Quantity
	}
	now := time.Now().UTC()
	o.status = Completed
	o.completedAt = &now
	o.updatedAt = now
	return nil
}

func (o *CustomerOrder) Deliver() error {
	if o.status != Completed {
		return o.rejected("deliver")
	}
	o.status = Delivered
	o.touch()
	return nil
}

func (o *CustomerOrder) Cancel() error {
	if o.status != Pending && o.status != Confirmed {
		return o.rejected("cancel")
	}
	o.status = Cancelled
	o.touch()
	return nil
}

func (o *CustomerOrder) rejected(action string) error {
	return errs.NewInvalidStateTransitionError(entityName, o.id, o.status.String(), action)
}

func (o *CustomerOrder) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *CustomerOrder) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *CustomerOrder) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.lines = slices.Clone(lines)
	return nil
}
