package productionorder

import (
	"errors"
	"slices"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"
)

const entityName = "production order"

var ErrProductionOrderIsNotConstructed = errors.New("ProductionOrder must be created via its constructors")

// ProductionOrder is the aggregate root for one manufacturing run. Exactly one of
// sourceWarehouseOrderID and sourceCustomerOrderID is set.
type ProductionOrder struct {
	id                     kernel.ID
	number                 string
	sourceWarehouseOrderID *kernel.ID
	sourceCustomerOrderID  *kernel.ID
	items                  []Item
	priority               Priority
	dueDate                time.Time
	scheduleID             string
	status                 Status
	createdAt              time.Time
	updatedAt              time.Time
	completedAt            *time.Time
	completionSubmittedAt  *time.Time
	version                int64

	isConstructed bool
}

// NewForWarehouseOrder creates a production order that restocks the Modules depot.
func NewForWarehouseOrder(
	id, warehouseOrderID kernel.ID,
	items []Item,
	priority Priority,
	dueDate time.Time,
) (*ProductionOrder, error) {
	if err := warehouseOrderID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("source warehouse order id", err)
	}
	return newProductionOrder(id, warehouseOrderID.Ptr(), nil, items, priority, dueDate)
}

// NewForCustomerOrder creates a production order that delivers to final assembly.
func NewForCustomerOrder(
	id, customerOrderID kernel.ID,
	items []Item,
	priority Priority,
	dueDate time.Time,
) (*ProductionOrder, error) {
	if err := customerOrderID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("source customer order id", err)
	}
	return newProductionOrder(id, nil, customerOrderID.Ptr(), items, priority, dueDate)
}

func newProductionOrder(
	id kernel.ID,
	warehouseOrderID, customerOrderID *kernel.ID,
	items []Item,
	priority Priority,
	dueDate time.Time,
) (*ProductionOrder, error) {
	now := time.Now().UTC()
	order := &ProductionOrder{
		sourceWarehouseOrderID: warehouseOrderID,
		sourceCustomerOrderID:  customerOrderID,
		dueDate:                dueDate,
		status:                 Created,
		createdAt:              now,
		updatedAt:              now,
		isConstructed:          true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setItems(items),
		order.setPriority(priority),
	); err != nil {
		return nil, err
	}

	order.number = kernel.OrderNumber("PO", 5, id)
	return order, nil
}

func (o *ProductionOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrProductionOrderIsNotConstructed
	}
	return nil
}

func (o *ProductionOrder) ID() kernel.ID {
	return o.id
}

func (o *ProductionOrder) Number() string {
	return o.number
}

func (o *ProductionOrder) SourceWarehouseOrderID() *kernel.ID {
	return o.sourceWarehouseOrderID
}

func (o *ProductionOrder) SourceCustomerOrderID() *kernel.ID {
	return o.sourceCustomerOrderID
}

func (o *ProductionOrder) Items() []Item {
	return slices.Clone(o.items)
}

func (o *ProductionOrder) Priority() Priority {
	return o.priority
}

func (o *ProductionOrder) DueDate() time.Time {
	return o.dueDate
}

func (o *ProductionOrder) ScheduleID() string {
	return o.scheduleID
}

func (o *ProductionOrder) Status() Status {
	return o.status
}

func (o *ProductionOrder) IsCompleted() bool {
	return o.status == Completed
}

func (o *ProductionOrder) CreatedAt() time.Time {
	return o.createdAt
}

func (o *ProductionOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *ProductionOrder) CompletedAt() *time.Time {
	return o.completedAt
}

// CompletionSubmittedAt is set once the downstream credit and dispatch ran.
func (o *ProductionOrder) CompletionSubmittedAt() *time.Time {
	return o.completionSubmittedAt
}

func (o *ProductionOrder) Version() int64 {
	return o.version
}

func (o *ProductionOrder) IncrementVersion() {
	o.version++
}

func (o *ProductionOrder) Submit() error {
	if o.status != Created {
		return o.rejected("submit")
	}
	o.status = Submitted
	o.touch()
	return nil
}

// Schedule stores the scheduling service's plan id.
func (o *ProductionOrder) Schedule(scheduleID string) error {
	if scheduleID == "" {
		return errs.NewValueIsRequiredError("schedule id")
	}
	if o.status != Submitted {
		return o.rejected("schedule")
	}
	o.status = Scheduled
	o.scheduleID = scheduleID
	o.touch()
	return nil
}

// Start is a no-op once the order is already running.
func (o *ProductionOrder) Start() error {
	if o.status == InProgress {
		return nil
	}
	if o.status != Scheduled {
		return o.rejected("start")
	}
	o.status = InProgress
	o.touch()
	return nil
}

// Complete marks the run finished. Completing twice is rejected; callers that may see
// repeated triggers check IsCompleted first.
func (o *ProductionOrder) Complete() error {
	if o.status != Scheduled && o.status != InProgress {
		return o.rejected("complete")
	}
	now := time.Now().UTC()
	o.status = Completed
	o.completedAt = &now
	o.updatedAt = now
	return nil
}

// MarkCompletionSubmitted records that the downstream routing ran. It returns false if it
// was already recorded.
func (o *ProductionOrder) MarkCompletionSubmitted() (bool, error) {
	if o.status != Completed {
		return false, o.rejected("submit completion of")
	}
	if o.completionSubmittedAt != nil {
		return false, nil
	}
	now := time.Now().UTC()
	o.completionSubmittedAt = &now
	o.updatedAt = now
	return true, nil
}

func (o *ProductionOrder) Cancel() error {
	if o.status != Created && o.status != Submitted && o.status != Scheduled {
		return o.rejected("cancel")
	}
	o.status = Cancelled
	o.touch()
	return nil
}

func (o *ProductionOrder) rejected(action string) error {
	return errs.NewInvalidStateTransitionError(entityName, o.id, o.status.String(), action)
}

func (o *ProductionOrder) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *ProductionOrder) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *ProductionOrder) setItems(items []Item) error {
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

func (o *ProductionOrder) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}
