package queries

import (
	"errors"
	"fmt"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"
	"factory/internal/pkg/guard"
)

var ErrGetProgressQueryIsNotConstructed = errors.New(
	"GetProgressQuery must be created via NewGetProgressQuery constructor",
)

// GetProgressQuery reports completion of the children of a control, production or
// customer order.
type GetProgressQuery struct { //nolint:recvcheck //using for validation
	orderType kernel.OrderType
	orderID   kernel.ID

	guard guard.ConstructorGuard
}

func NewGetProgressQuery(orderType kernel.OrderType, orderID kernel.ID) (GetProgressQuery, error) {
	query := GetProgressQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		query.setOrderType(orderType),
		query.setOrderID(orderID),
	); err != nil {
		return GetProgressQuery{}, err
	}

	return query, nil
}

func (q GetProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetProgressQueryIsNotConstructed)
}

func (q GetProgressQuery) OrderType() kernel.OrderType {
	return q.orderType
}

func (q GetProgressQuery) OrderID() kernel.ID {
	return q.orderID
}

func (q *GetProgressQuery) setOrderType(orderType kernel.OrderType) error {
	switch orderType {
	case kernel.ControlOrderType, kernel.ProductionOrderType, kernel.CustomerOrderType:
		q.orderType = orderType
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"order type", fmt.Errorf("progress is not tracked for %q", orderType.String()))
	}
}

func (q *GetProgressQuery) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}
