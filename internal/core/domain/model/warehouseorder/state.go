package warehouseorder

import (
	"errors"
	"slices"
	"time"

	"factory/internal/core/domain/model/kernel"
)

// State is the persisted form of a WarehouseOrder.
type State struct {
	ID                kernel.ID
	Number            string
	CustomerOrderID   kernel.ID
	Items             []kernel.Item
	Status            Status
	TriggerScenario   kernel.Scenario
	ProductionOrderID *kernel.ID
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
	Version           int64
}

func (o *WarehouseOrder) State() State {
	return State{
		ID:                o.id,
		Number:            o.number,
		CustomerOrderID:   o.customerOrderID,
		Items:             slices.Clone(o.items),
		Status:            o.status,
		TriggerScenario:   o.triggerScenario,
		ProductionOrderID: o.productionOrderID,
		CreatedAt:         o.createdAt,
		UpdatedAt:         o.updatedAt,
		CompletedAt:       o.completedAt,
		Version:           o.version,
	}
}

func Restore(s State) (*WarehouseOrder, error) {
	order := &WarehouseOrder{
		number:            s.Number,
		triggerScenario:   s.TriggerScenario,
		productionOrderID: s.ProductionOrderID,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
		completedAt:       s.CompletedAt,
		version:           s.Version,
		isConstructed:     true,
	}

	if err := errors.Join(
		order.setID(s.ID),
		order.setCustomerOrderID(s.CustomerOrderID),
		order.setItems(s.Items),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	order.status = s.Status
	return order, nil
}
