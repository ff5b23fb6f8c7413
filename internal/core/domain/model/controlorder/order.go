package controlorder

import (
	"errors"
	"slices"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/pkg/errs"
)

const entityName = "control order"

var ErrControlOrderIsNotConstructed = errors.New("ControlOrder must be created via NewControlOrder constructor")

// ControlOrder owns the workstation orders dispatched for its workstation.
type ControlOrder struct {
	id                kernel.ID
	number            string
	productionOrderID kernel.ID
	workstationID     plant.WorkstationID
	category          plant.Category
	steps             []Step
	status            Status
	startedAt         *time.Time
	createdAt         time.Time
	updatedAt         time.Time
	completedAt       *time.Time
	version           int64

	isConstructed bool
}

// NewControlOrder creates a PENDING control order. Steps are renumbered in the given order.
func NewControlOrder(
	id, productionOrderID kernel.ID,
	workstationID plant.WorkstationID,
	category plant.Category,
	steps []Step,
) (*ControlOrder, error) {
	now := time.Now().UTC()
	order := &ControlOrder{
		workstationID: workstationID,
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	numbered := slices.Clone(steps)
	for i := range numbered {
		numbered[i].Sequence = i + 1
	}

	if err := errors.Join(
		order.setID(id),
		order.setProductionOrderID(productionOrderID),
		order.setCategory(category),
		order.setSteps(numbered),
	); err != nil {
		return nil, err
	}

	order.number = kernel.OrderNumber(numberPrefix(category), 4, id)
	return order, nil
}

func numberPrefix(category plant.Category) string {
	if category == plant.Assembly {
		return "ACO"
	}
	return "PCO"
}

func (o *ControlOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrControlOrderIsNotConstructed
	}
	return nil
}

func (o *ControlOrder) ID() kernel.ID {
	return o.id
}

func (o *ControlOrder) Number() string {
	return o.number
}

func (o *ControlOrder) ProductionOrderID() kernel.ID {
	return o.productionOrderID
}

func (o *ControlOrder) WorkstationID() plant.WorkstationID {
	return o.workstationID
}

func (o *ControlOrder) Category() plant.Category {
	return o.category
}

func (o *ControlOrder) Steps() []Step {
	return slices.Clone(o.steps)
}

func (o *ControlOrder) Status() Status {
	return o.status
}

func (o *ControlOrder) IsCompleted() bool {
	return o.status == Completed
}

func (o *ControlOrder) StartedAt() *time.Time {
	return o.startedAt
}

func (o *ControlOrder) CreatedAt() time.Time {
	return o.createdAt
}

func (o *ControlOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *ControlOrder) CompletedAt() *time.Time {
	return o.completedAt
}

func (o *ControlOrder) Version() int64 {
	return o.version
}

func (o *ControlOrder) IncrementVersion() {
	o.version++
}

// Dispatch moves the order to IN_PROGRESS. Supply gating happens before this call.
func (o *ControlOrder) Dispatch() error {
	if o.status != Pending {
		return o.rejected("dispatch")
	}
	now := time.Now().UTC()
	o.status = InProgress
	o.startedAt = &now
	o.updatedAt = now
	return nil
}

func (o *ControlOrder) Halt() error {
	if o.status != InProgress {
		return o.rejected("halt")
	}
	o.status = Halted
	o.touch()
	return nil
}

func (o *ControlOrder) Resume() error {
	if o.status != Halted {
		return o.rejected("resume")
	}
	o.status = InProgress
	o.touch()
	return nil
}

// Complete records the finish time. A halted order whose children all finished is
// completed as well so that parent and children never disagree.
func (o *ControlOrder) Complete() error {
	if o.status != InProgress && o.status != Halted {
		return o.rejected("complete")
	}
	now := time.Now().UTC()
	o.status = Completed
	o.completedAt = &now
	o.updatedAt = now
	return nil
}

func (o *ControlOrder) Cancel() error {
	if o.status != Pending && o.status != Halted {
		return o.rejected("cancel")
	}
	o.status = Cancelled
	o.touch()
	return nil
}

func (o *ControlOrder) rejected(action string) error {
	return errs.NewInvalidStateTransitionError(entityName, o.id, o.status.String(), action)
}

func (o *ControlOrder) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *ControlOrder) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *ControlOrder) setProductionOrderID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("production order id", err)
	}
	o.productionOrderID = id
	return nil
}

func (o *ControlOrder) setCategory(category plant.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	o.category = category
	return nil
}

func (o *ControlOrder) setSteps(steps []Step) error {
	if len(steps) == 0 {
		return errs.NewValueIsRequiredError("steps")
	}
	for _, step := range steps {
		if err := step.Validate(); err != nil {
			return err
		}
	}
	o.steps = slices.Clone(steps)
	return nil
}
