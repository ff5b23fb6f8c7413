package workstationorder

import (
	"errors"
	"slices"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
)

// State is the persisted form of a WorkstationOrder.
type State struct {
	ID            kernel.ID
	Number        string
	Kind          plant.Kind
	WorkstationID plant.WorkstationID
	Output        kernel.Item
	Inputs        []kernel.Item
	References    References
	SupplyOrderID *kernel.ID
	Status        Status
	ActualStart   *time.Time
	ActualFinish  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}

func (o *WorkstationOrder) State() State {
	return State{
		ID:            o.id,
		Number:        o.number,
		Kind:          o.kind,
		WorkstationID: o.workstationID,
		Output:        o.output,
		Inputs:        slices.Clone(o.inputs),
		References:    o.refs,
		SupplyOrderID: o.supplyOrderID,
		Status:        o.status,
		ActualStart:   o.actualStart,
		ActualFinish:  o.actualFinish,
		CreatedAt:     o.createdAt,
		UpdatedAt:     o.updatedAt,
		Version:       o.version,
	}
}

func Restore(s State) (*WorkstationOrder, error) {
	order := &WorkstationOrder{
		number:        s.Number,
		workstationID: s.WorkstationID,
		refs:          s.References,
		supplyOrderID: s.SupplyOrderID,
		actualStart:   s.ActualStart,
		actualFinish:  s.ActualFinish,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		version:       s.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(s.ID),
		order.setKind(s.Kind),
		order.setInputs(s.Inputs),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if err := order.setOutput(s.Output); err != nil {
		return nil, err
	}
	order.status = s.Status
	return order, nil
}
