package supplyorder

import (
	"errors"
	"slices"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
)

// State is the persisted form of a SupplyOrder.
type State struct {
	ID                      kernel.ID
	Number                  string
	SourceControlOrderID    kernel.ID
	RequestingWorkstationID plant.WorkstationID
	Items                   []kernel.Item
	Status                  Status
	CreatedAt               time.Time
	UpdatedAt               time.Time
	CompletedAt             *time.Time
	Version                 int64
}

func (o *SupplyOrder) State() State {
	return State{
		ID:                      o.id,
		Number:                  o.number,
		SourceControlOrderID:    o.sourceControlOrderID,
		RequestingWorkstationID: o.requestingWorkstationID,
		Items:                   slices.Clone(o.items),
		Status:                  o.status,
		CreatedAt:               o.createdAt,
		UpdatedAt:               o.updatedAt,
		CompletedAt:             o.completedAt,
		Version:                 o.version,
	}
}

func Restore(s State) (*SupplyOrder, error) {
	order := &SupplyOrder{
		number:                  s.Number,
		requestingWorkstationID: s.RequestingWorkstationID,
		createdAt:               s.CreatedAt,
		updatedAt:               s.UpdatedAt,
		completedAt:             s.CompletedAt,
		version:                 s.Version,
		isConstructed:           true,
	}

	if err := errors.Join(
		order.setID(s.ID),
		order.setSourceControlOrderID(s.SourceControlOrderID),
		order.setItems(s.Items),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	order.status = s.Status
	return order, nil
}
