package customerorder

import (
	"errors"
	"slices"
	"time"

	"factory/internal/core/domain/model/kernel"
)

// State is the persisted form of a CustomerOrder.
type State struct {
	ID          kernel.ID
	Number      string
	Lines       []Line
	Status      Status
	Scenario    kernel.Scenario
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	Version     int64
}

// State captures the aggregate for persistence.
func (o *CustomerOrder) State() State {
	return State{
		ID:          o.id,
		Number:      o.number,
		Lines:       slices.Clone(o.lines),
		Status:      o.status,
		Scenario:    o.scenario,
		CreatedAt:   o.createdAt,
		UpdatedAt:   o.updatedAt,
		CompletedAt: o.completedAt,
		Version:     o.version,
	}
}

// Restore rebuilds a CustomerOrder from persisted state.
func Restore(s State) (*CustomerOrder, error) {
	order := &CustomerOrder{
		number:        s.Number,
		scenario:      s.Scenario,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		completedAt:   s.CompletedAt,
		version:       s.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(s.ID),
		order.setLines(s.Lines),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	order.status = s.Status
	return order, nil
}
