package workstationorder

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/pkg/errs"
)

const entityName = "workstation order"

var ErrWorkstationOrderIsNotConstructed = errors.New("WorkstationOrder must be created via NewWorkstationOrder constructor")

// References are the optional parent ids of a workstation order. Orders dispatched by a
// control order carry ControlOrderID and ProductionOrderID; final assembly orders raised
// for a customer or warehouse order carry those ids instead.
type References struct {
	ControlOrderID    *kernel.ID
	ProductionOrderID *kernel.ID
	CustomerOrderID   *kernel.ID
	WarehouseOrderID  *kernel.ID
}

// WorkstationOrder is a tagged union over the six workstation kinds.
type WorkstationOrder struct {
	id            kernel.ID
	number        string
	kind          plant.Kind
	workstationID plant.WorkstationID
	output        kernel.Item
	inputs        []kernel.Item
	refs          References
	supplyOrderID *kernel.ID
	status        Status
	actualStart   *time.Time
	actualFinish  *time.Time
	createdAt     time.Time
	updatedAt     time.Time
	version       int64

	isConstructed bool
}

// NewWorkstationOrder creates a PENDING order. The output item type must match what the
// kind produces.
func NewWorkstationOrder(
	id kernel.ID,
	kind plant.Kind,
	workstationID plant.WorkstationID,
	output kernel.Item,
	inputs []kernel.Item,
	refs References,
) (*WorkstationOrder, error) {
	now := time.Now().UTC()
	order := &WorkstationOrder{
		workstationID: workstationID,
		refs:          refs,
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setKind(kind),
		order.setInputs(inputs),
	); err != nil {
		return nil, err
	}
	if err := order.setOutput(output); err != nil {
		return nil, err
	}

	order.number = kernel.OrderNumber(kind.OrderPrefix(), 4, id)
	return order, nil
}

func (o *WorkstationOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrWorkstationOrderIsNotConstructed
	}
	return nil
}

func (o *WorkstationOrder) ID() kernel.ID {
	return o.id
}

func (o *WorkstationOrder) Number() string {
	return o.number
}

func (o *WorkstationOrder) Kind() plant.Kind {
	return o.kind
}

func (o *WorkstationOrder) Category() plant.Category {
	return o.kind.Category()
}

func (o *WorkstationOrder) WorkstationID() plant.WorkstationID {
	return o.workstationID
}

func (o *WorkstationOrder) Output() kernel.Item {
	return o.output
}

func (o *WorkstationOrder) Inputs() []kernel.Item {
	return slices.Clone(o.inputs)
}

func (o *WorkstationOrder) References() References {
	return o.refs
}

func (o *WorkstationOrder) ControlOrderID() *kernel.ID {
	return o.refs.ControlOrderID
}

func (o *WorkstationOrder) SupplyOrderID() *kernel.ID {
	return o.supplyOrderID
}

func (o *WorkstationOrder) Status() Status {
	return o.status
}

func (o *WorkstationOrder) IsCompleted() bool {
	return o.status == Completed
}

func (o *WorkstationOrder) ActualStart() *time.Time {
	return o.actualStart
}

func (o *WorkstationOrder) ActualFinish() *time.Time {
	return o.actualFinish
}

func (o *WorkstationOrder) CreatedAt() time.Time {
	return o.createdAt
}

func (o *WorkstationOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *WorkstationOrder) Version() int64 {
	return o.version
}

func (o *WorkstationOrder) IncrementVersion() {
	o.version++
}

// MarkWaitingForParts stamps the supply order that gates this order.
func (o *WorkstationOrder) MarkWaitingForParts(supplyOrderID kernel.ID) error {
	if err := supplyOrderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("supply order id", err)
	}
	if err := o.apply(EventWaitForParts); err != nil {
		return err
	}
	o.supplyOrderID = supplyOrderID.Ptr()
	return nil
}

// Start accepts PENDING and WAITING_FOR_PARTS. It does not look at the supply order;
// the operator starts once parts have arrived.
func (o *WorkstationOrder) Start() error {
	if err := o.apply(EventStart); err != nil {
		return err
	}
	now := o.updatedAt
	o.actualStart = &now
	return nil
}

func (o *WorkstationOrder) Halt() error {
	return o.apply(EventHalt)
}

// Resume returns a halted order to PENDING.
func (o *WorkstationOrder) Resume() error {
	return o.apply(EventResume)
}

func (o *WorkstationOrder) Complete() error {
	if err := o.apply(EventComplete); err != nil {
		return err
	}
	now := o.updatedAt
	o.actualFinish = &now
	return nil
}

func (o *WorkstationOrder) Abandon() error {
	return o.apply(EventAbandon)
}

func (o *WorkstationOrder) apply(event string) error {
	next, err := fire(o.status, event)
	if err != nil {
		return errs.NewInvalidStateTransitionError(entityName, o.id, o.status.String(), event)
	}
	o.status = next
	o.updatedAt = time.Now().UTC()
	return nil
}

func (o *WorkstationOrder) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *WorkstationOrder) setKind(kind plant.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	o.kind = kind
	return nil
}

func (o *WorkstationOrder) setOutput(output kernel.Item) error {
	if err := output.Validate(); err != nil {
		return err
	}
	if output.Type != o.kind.OutputItemType() {
		return errs.NewValueIsInvalidErrorWithCause("output item type",
			fmt.Errorf("%s produces %s, not %s", o.kind, o.kind.OutputItemType(), output.Type))
	}
	o.output = output
	return nil
}

func (o *WorkstationOrder) setInputs(inputs []kernel.Item) error {
	for _, input := range inputs {
		if err := input.Validate(); err != nil {
			return err
		}
	}
	o.inputs = slices.Clone(inputs)
	return nil
}
