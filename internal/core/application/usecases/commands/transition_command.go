package commands

import (
	"errors"
	"fmt"
	"slices"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"
	"factory/internal/pkg/guard"
)

var ErrTransitionCommandIsNotConstructed = errors.New(
	"TransitionCommand must be created via NewTransitionCommand constructor",
)

// OrderType names an order aggregate in commands, events and metrics.
type OrderType = kernel.OrderType

const (
	CustomerOrder    = kernel.CustomerOrderType
	WarehouseOrder   = kernel.WarehouseOrderType
	ProductionOrder  = kernel.ProductionOrderType
	ControlOrder     = kernel.ControlOrderType
	WorkstationOrder = kernel.WorkstationOrderType
	SupplyOrder      = kernel.SupplyOrderType
)

// Action is a plain status transition without side effects beyond the order itself.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionComplete Action = "complete"
	ActionDeliver  Action = "deliver"
	ActionCancel   Action = "cancel"
	ActionReject   Action = "reject"
	ActionHalt     Action = "halt"
	ActionResume   Action = "resume"
	ActionAbandon  Action = "abandon"
	ActionStart    Action = "start"
)

// Transitions that touch stock or other orders have their own commands and are not
// listed here.
func getAllowedActions() map[OrderType][]Action {
	return map[OrderType][]Action{
		CustomerOrder:    {ActionConfirm, ActionComplete, ActionDeliver, ActionCancel},
		WarehouseOrder:   {ActionReject, ActionCancel},
		ProductionOrder:  {ActionCancel},
		ControlOrder:     {ActionHalt, ActionResume, ActionCancel},
		WorkstationOrder: {ActionHalt, ActionResume, ActionAbandon},
		SupplyOrder:      {ActionStart, ActionReject, ActionCancel},
	}
}

// TransitionCommand applies action to one order.
//
// Example:
//
//	cmd, err := NewTransitionCommand(ControlOrder, 12, ActionHalt)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type TransitionCommand struct { //nolint:recvcheck //using for validation
	orderType OrderType
	orderID   kernel.ID
	action    Action

	guard guard.ConstructorGuard
}

func NewTransitionCommand(orderType OrderType, orderID kernel.ID, action Action) (TransitionCommand, error) {
	cmd := TransitionCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(orderType, action),
	); err != nil {
		return TransitionCommand{}, err
	}

	return cmd, nil
}

func (c TransitionCommand) Validate() error {
	return c.guard.Validate(ErrTransitionCommandIsNotConstructed)
}

func (c TransitionCommand) OrderType() OrderType {
	return c.orderType
}

func (c TransitionCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c TransitionCommand) Action() Action {
	return c.action
}

func (c *TransitionCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionCommand) setAction(orderType OrderType, action Action) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	allowed := getAllowedActions()[orderType]
	if !slices.Contains(allowed, action) {
		return errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("%q is not a plain transition of %s", action, orderType))
	}
	c.orderType = orderType
	c.action = action
	return nil
}
