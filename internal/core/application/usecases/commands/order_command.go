package commands

import (
	"errors"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/guard"
)

var ErrOrderCommandIsNotConstructed = errors.New("OrderCommand must be created via NewOrderCommand constructor")

// OrderCommand addresses a single order by id. It is shared by every operation that
// needs nothing but the order to act on, such as scheduling a production order or
// completing a workstation order.
//
// Example:
//
//	cmd, err := NewOrderCommand(productionOrderID)
//	if err != nil {
//	    return err
//	}
//	result, err := scheduleHandler.Handle(ctx, cmd)
type OrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewOrderCommand(orderID kernel.ID) (OrderCommand, error) {
	cmd := OrderCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setOrderID(orderID); err != nil {
		return OrderCommand{}, err
	}
	return cmd, nil
}

func (c OrderCommand) Validate() error {
	return c.guard.Validate(ErrOrderCommandIsNotConstructed)
}

func (c OrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c *OrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
