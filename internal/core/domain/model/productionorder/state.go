package productionorder

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"
)

// State is the persisted form of a ProductionOrder.
type State struct {
	ID                     kernel.ID
	Number                 string
	SourceWarehouseOrderID *kernel.ID
	SourceCustomerOrderID  *kernel.ID
	Items                  []Item
	Priority               Priority
	DueDate                time.Time
	ScheduleID             string
	Status                 Status
	CreatedAt              time.Time
	UpdatedAt              time.Time
	CompletedAt            *time.Time
	CompletionSubmittedAt  *time.Time
	Version                int64
}

func (o *ProductionOrder) State() State {
	return State{
		ID:                     o.id,
		Number:                 o.number,
		SourceWarehouseOrderID: o.sourceWarehouseOrderID,
		SourceCustomerOrderID:  o.sourceCustomerOrderID,
		Items:                  slices.Clone(o.items),
		Priority:               o.priority,
		DueDate:                o.dueDate,
		ScheduleID:             o.scheduleID,
		Status:                 o.status,
		CreatedAt:              o.createdAt,
		UpdatedAt:              o.updatedAt,
		CompletedAt:            o.completedAt,
		CompletionSubmittedAt:  o.completionSubmittedAt,
		Version:                o.version,
	}
}

// Restore rebuilds a ProductionOrder. Persisted data with zero or two sources can only be
// produced by a bug and is reported as a configuration invariant violation.
func Restore(s State) (*ProductionOrder, error) {
	if (s.SourceWarehouseOrderID == nil) == (s.SourceCustomerOrderID == nil) {
		return nil, errs.NewConfigurationInvariantError(
			fmt.Sprintf("%s %d", entityName, s.ID), "exactly one source order must be set")
	}

	order := &ProductionOrder{
		number:                 s.Number,
		sourceWarehouseOrderID: s.SourceWarehouseOrderID,
		sourceCustomerOrderID:  s.SourceCustomerOrderID,
		dueDate:                s.DueDate,
		scheduleID:             s.ScheduleID,
		createdAt:              s.CreatedAt,
		updatedAt:              s.UpdatedAt,
		completedAt:            s.CompletedAt,
		completionSubmittedAt:  s.CompletionSubmittedAt,
		version:                s.Version,
		isConstructed:          true,
	}

	if err := errors.Join(
		order.setID(s.ID),
		order.setItems(s.Items),
		order.setPriority(s.Priority),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	order.status = s.Status
	return order, nil
}
