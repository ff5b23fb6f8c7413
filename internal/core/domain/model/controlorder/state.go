package controlorder

import (
	"errors"
	"slices"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
)

// State is the persisted form of a ControlOrder.
type State struct {
	ID                kernel.ID
	Number            string
	ProductionOrderID kernel.ID
	WorkstationID     plant.WorkstationID
	Category          plant.Category
	Steps             []Step
	Status            Status
	StartedAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
	Version           int64
}

func (o *ControlOrder) State() State {
	return State{
		ID:                o.id,
		Number:            o.number,
		ProductionOrderID: o.productionOrderID,
		WorkstationID:     o.workstationID,
		Category:          o.category,
		Steps:             slices.Clone(o.steps),
		Status:            o.status,
		StartedAt:         o.startedAt,
		CreatedAt:         o.createdAt,
		UpdatedAt:         o.updatedAt,
		CompletedAt:       o.completedAt,
		Version:           o.version,
	}
}

func Restore(s State) (*ControlOrder, error) {
	order := &ControlOrder{
		number:        s.Number,
		workstationID: s.WorkstationID,
		startedAt:     s.StartedAt,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		completedAt:   s.CompletedAt,
		version:       s.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(s.ID),
		order.setProductionOrderID(s.ProductionOrderID),
		order.setCategory(s.Category),
		order.setSteps(s.Steps),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	order.status = s.Status
	return order, nil
}
