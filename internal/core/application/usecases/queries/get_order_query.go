package queries

import (
	"errors"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery loads one order of any level of the hierarchy.
//
// Example:
//
//	query, err := NewGetOrderQuery(kernel.ControlOrderType, 12)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderType kernel.OrderType
	orderID   kernel.ID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderType kernel.OrderType, orderID kernel.ID) (GetOrderQuery, error) {
	query := GetOrderQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		query.setOrderType(orderType),
		query.setOrderID(orderID),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderType() kernel.OrderType {
	return q.orderType
}

func (q GetOrderQuery) OrderID() kernel.ID {
	return q.orderID
}

func (q *GetOrderQuery) setOrderType(orderType kernel.OrderType) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	q.orderType = orderType
	return nil
}

func (q *GetOrderQuery) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}
