package supplyorder

import (
	"errors"
	"slices"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/pkg/errs"
)

const entityName = "supply order"

var ErrSupplyOrderIsNotConstructed = errors.New("SupplyOrder must be created via NewSupplyOrder constructor")

type SupplyOrder struct {
	id                      kernel.ID
	number                  string
	sourceControlOrderID    kernel.ID
	requestingWorkstationID plant.WorkstationID
	items                   []kernel.Item
	status                  Status
	createdAt               time.Time
	updatedAt               time.Time
	completedAt             *time.Time
	version                 int64

	isConstructed bool
}

func NewSupplyOrder(
	id, sourceControlOrderID kernel.ID,
	requestingWorkstationID plant.WorkstationID,
	items []kernel.Item,
) (*SupplyOrder, error) {
	now := time.Now().UTC()
	order := &SupplyOrder{
		requestingWorkstationID: requestingWorkstationID,
		status:                  Pending,
		createdAt:               now,
		updatedAt:               now,
		isConstructed:           true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setSourceControlOrderID(sourceControlOrderID),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	order.number = kernel.OrderNumber("SO", 5, id)
	return order, nil
}

func (o *SupplyOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrSupplyOrderIsNotConstructed
	}
	return nil
}

func (o *SupplyOrder) ID() kernel.ID {
	return o.id
}

func (o *SupplyOrder) Number() string {
	return o.number
}

func (o *SupplyOrder) SourceControlOrderID() kernel.ID {
	return o.sourceControlOrderID
}

func (o *SupplyOrder) RequestingWorkstationID() plant.WorkstationID {
	return o.requestingWorkstationID
}

func (o *SupplyOrder) Items() []kernel.Item {
	return slices.Clone(o.items)
}

func (o *SupplyOrder) Status() Status {
	return o.status
}

func (o *SupplyOrder) IsFulfilled() bool {
	return o.status == Fulfilled
}

// IsOpen reports whether the order may still be fulfilled.
func (o *SupplyOrder) IsOpen() bool {
	return o.status == Pending || o.status == InProgress
}

func (o *SupplyOrder) CreatedAt() time.Time {
	return o.createdAt
}

func (o *SupplyOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *SupplyOrder) CompletedAt() *time.Time {
	return o.completedAt
}

func (o *SupplyOrder) Version() int64 {
	return o.version
}

func (o *SupplyOrder) IncrementVersion() {
	o.version++
}

func (o *SupplyOrder) Start() error {
	if o.status != Pending {
		return o.rejected("start")
	}
	o.status = InProgress
	o.touch()
	return nil
}

// Fulfill accepts a pending order as well, for depots that hand parts over immediately.
func (o *SupplyOrder) Fulfill() error {
	if o.status != Pending && o.status != InProgress {
		return o.rejected("fulfill")
	}
	now := time.Now().UTC()
	o.status = Fulfilled
	o.completedAt = &now
	o.updatedAt = now
	return nil
}

func (o *SupplyOrder) Reject() error {
	if o.status != Pending && o.status != InProgress {
		return o.rejected("reject")
	}
	o.status = Rejected
	o.touch()
	return nil
}

func (o *SupplyOrder) Cancel() error {
	if o.status != Pending && o.status != InProgress {
		return o.rejected("cancel")
	}
	o.status = Cancelled
	o.touch()
	return nil
}

func (o *SupplyOrder) rejected(action string) error {
	return errs.NewInvalidStateTransitionError(entityName, o.id, o.status.String(), action)
}

func (o *SupplyOrder) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *SupplyOrder) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *SupplyOrder) setSourceControlOrderID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("source control order id", err)
	}
	o.sourceControlOrderID = id
	return nil
}

func (o *SupplyOrder) setItems(items []kernel.Item) error {
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
