package commands

import (
	"errors"
	"slices"

	"factory/internal/core/domain/model/customerorder"
	"factory/internal/pkg/guard"
)

var (
	ErrCreateCustomerOrderCommandIsNotConstructed = errors.New(
		"CreateCustomerOrderCommand must be created via NewCreateCustomerOrderCommand constructor",
	)
	ErrLinesAreRequired = errors.New("at least one order line is required")
)

// CreateCustomerOrderCommand registers a new customer order in PENDING status.
//
// Example:
//
//	line, _ := customerorder.NewLine(kernel.Product, 1, 2)
//	cmd, err := NewCreateCustomerOrderCommand([]customerorder.Line{line})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateCustomerOrderCommand struct { //nolint:recvcheck //using for validation
	lines []customerorder.Line

	guard guard.ConstructorGuard
}

// NewCreateCustomerOrderCommand validates every line and requires at least one.
func NewCreateCustomerOrderCommand(lines []customerorder.Line) (CreateCustomerOrderCommand, error) {
	cmd := CreateCustomerOrderCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setLines(lines); err != nil {
		return CreateCustomerOrderCommand{}, err
	}
	return cmd, nil
}

func (c CreateCustomerOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomerOrderCommandIsNotConstructed)
}

func (c CreateCustomerOrderCommand) Lines() []customerorder.Line {
	return slices.Clone(c.lines)
}

func (c *CreateCustomerOrderCommand) setLines(lines []customerorder.Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	validationErrs := make([]error, 0, len(lines))
	for _, line := range lines {
		validationErrs = append(validationErrs, line.Validate())
	}
	if err := errors.Join(validationErrs...); err != nil {
		return err
	}

	c.lines = slices.Clone(lines)
	return nil
}
