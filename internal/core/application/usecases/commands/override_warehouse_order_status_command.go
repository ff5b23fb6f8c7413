package commands

import (
	"errors"
	"strings"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/pkg/errs"
	"factory/internal/pkg/guard"
)

var ErrOverrideWarehouseOrderStatusCommandIsNotConstructed = errors.New(
	"OverrideWarehouseOrderStatusCommand must be created via NewOverrideWarehouseOrderStatusCommand constructor",
)

// OverrideWarehouseOrderStatusCommand is the operator escape hatch for warehouse orders
// stuck after a failed downstream step. It bypasses the normal transition rules, so
// the operator and a reason are mandatory.
type OverrideWarehouseOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.ID
	target   warehouseorder.Status
	reason   string
	operator string

	guard guard.ConstructorGuard
}

func NewOverrideWarehouseOrderStatusCommand(
	orderID kernel.ID,
	target warehouseorder.Status,
	reason, operator string,
) (OverrideWarehouseOrderStatusCommand, error) {
	cmd := OverrideWarehouseOrderStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setReason(reason),
		cmd.setOperator(operator),
	); err != nil {
		return OverrideWarehouseOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c OverrideWarehouseOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrOverrideWarehouseOrderStatusCommandIsNotConstructed)
}

func (c OverrideWarehouseOrderStatusCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c OverrideWarehouseOrderStatusCommand) Target() warehouseorder.Status {
	return c.target
}

func (c OverrideWarehouseOrderStatusCommand) Reason() string {
	return c.reason
}

func (c OverrideWarehouseOrderStatusCommand) Operator() string {
	return c.operator
}

func (c *OverrideWarehouseOrderStatusCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *OverrideWarehouseOrderStatusCommand) setTarget(target warehouseorder.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *OverrideWarehouseOrderStatusCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}

func (c *OverrideWarehouseOrderStatusCommand) setOperator(operator string) error {
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return errs.NewValueIsRequiredError("operator")
	}
	c.operator = operator
	return nil
}
