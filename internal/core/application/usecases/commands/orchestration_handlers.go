package commands

import (
	"context"

	"factory/internal/core/application/notification"
	"factory/internal/core/application/orchestration"
	"factory/internal/core/domain/model/kernel"
)

// ProcessCustomerOrderCommandHandler routes a customer order to its scenario.
type ProcessCustomerOrderCommandHandler struct {
	router Router
}

func NewProcessCustomerOrderCommandHandler(router Router) ProcessCustomerOrderCommandHandler {
	return ProcessCustomerOrderCommandHandler{router: router}
}

func (h ProcessCustomerOrderCommandHandler) Handle(
	ctx context.Context,
	cmd OrderCommand,
) (orchestration.RoutingResult, error) {
	if err := cmd.Validate(); err != nil {
		return orchestration.RoutingResult{}, err
	}
	return h.router.RouteCustomerOrder(ctx, cmd.OrderID())
}

// ConfirmWarehouseOrderCommandHandler resolves and confirms a pending warehouse order.
type ConfirmWarehouseOrderCommandHandler struct {
	router Router
}

func NewConfirmWarehouseOrderCommandHandler(router Router) ConfirmWarehouseOrderCommandHandler {
	return ConfirmWarehouseOrderCommandHandler{router: router}
}

func (h ConfirmWarehouseOrderCommandHandler) Handle(
	ctx context.Context,
	cmd OrderCommand,
) (orchestration.RoutingResult, error) {
	if err := cmd.Validate(); err != nil {
		return orchestration.RoutingResult{}, err
	}
	return h.router.ConfirmWarehouseOrder(ctx, cmd.OrderID())
}

// RequestProductionCommandHandler returns the production order of a warehouse order
// that needs production, raising it when missing.
type RequestProductionCommandHandler struct {
	router Router
}

func NewRequestProductionCommandHandler(router Router) RequestProductionCommandHandler {
	return RequestProductionCommandHandler{router: router}
}

func (h RequestProductionCommandHandler) Handle(ctx context.Context, cmd OrderCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	return h.router.RequestProduction(ctx, cmd.OrderID())
}

type FulfillWarehouseOrderCommandHandler struct {
	coordinator Coordinator
}

func NewFulfillWarehouseOrderCommandHandler(coordinator Coordinator) FulfillWarehouseOrderCommandHandler {
	return FulfillWarehouseOrderCommandHandler{coordinator: coordinator}
}

func (h FulfillWarehouseOrderCommandHandler) Handle(
	ctx context.Context,
	cmd OrderCommand,
) (orchestration.FulfillResult, error) {
	if err := cmd.Validate(); err != nil {
		return orchestration.FulfillResult{}, err
	}
	return h.coordinator.FulfillWarehouseOrder(ctx, cmd.OrderID())
}

type ScheduleProductionOrderCommandHandler struct {
	coordinator Coordinator
}

func NewScheduleProductionOrderCommandHandler(coordinator Coordinator) ScheduleProductionOrderCommandHandler {
	return ScheduleProductionOrderCommandHandler{coordinator: coordinator}
}

func (h ScheduleProductionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd OrderCommand,
) (orchestration.ScheduleResult, error) {
	if err := cmd.Validate(); err != nil {
		return orchestration.ScheduleResult{}, err
	}
	return h.coordinator.ScheduleProductionOrder(ctx, cmd.OrderID())
}

// RequestControlOrderSupplyCommandHandler raises the supply orders a PENDING control
// order needs before it can be dispatched.
type RequestControlOrderSupplyCommandHandler struct {
	coordinator Coordinator
}

func NewRequestControlOrderSupplyCommandHandler(coordinator Coordinator) RequestControlOrderSupplyCommandHandler {
	return RequestControlOrderSupplyCommandHandler{coordinator: coordinator}
}

func (h RequestControlOrderSupplyCommandHandler) Handle(
	ctx context.Context,
	cmd OrderCommand,
) (orchestration.SupplyResult, error) {
	if err := cmd.Validate(); err != nil {
		return orchestration.SupplyResult{}, err
	}
	return h.coordinator.RequestControlOrderSupply(ctx, cmd.OrderID())
}

type DispatchControlOrderCommandHandler struct {
	coordinator Coordinator
}

func NewDispatchControlOrderCommandHandler(coordinator Coordinator) DispatchControlOrderCommandHandler {
	return DispatchControlOrderCommandHandler{coordinator: coordinator}
}

func (h DispatchControlOrderCommandHandler) Handle(
	ctx context.Context,
	cmd OrderCommand,
) (orchestration.DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return orchestration.DispatchResult{}, err
	}
	return h.coordinator.DispatchControlOrder(ctx, cmd.OrderID())
}

// SubmitProductionOrderCompletionCommandHandler routes a completed production order to
// the Modules depot or to final assembly. Safe to repeat.
type SubmitProductionOrderCompletionCommandHandler struct {
	coordinator Coordinator
}

func NewSubmitProductionOrderCompletionCommandHandler(
	coordinator Coordinator,
) SubmitProductionOrderCompletionCommandHandler {
	return SubmitProductionOrderCompletionCommandHandler{coordinator: coordinator}
}

func (h SubmitProductionOrderCompletionCommandHandler) Handle(
	ctx context.Context,
	cmd OrderCommand,
) (notification.Report, error) {
	if err := cmd.Validate(); err != nil {
		return notification.Report{}, err
	}
	return h.coordinator.SubmitProductionOrderCompletion(ctx, cmd.OrderID())
}

type CompleteProductionOrderCommandHandler struct {
	propagator Propagator
}

func NewCompleteProductionOrderCommandHandler(propagator Propagator) CompleteProductionOrderCommandHandler {
	return CompleteProductionOrderCommandHandler{propagator: propagator}
}

func (h CompleteProductionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd OrderCommand,
) (orchestration.CompletionResult, error) {
	if err := cmd.Validate(); err != nil {
		return orchestration.CompletionResult{}, err
	}
	return h.propagator.CompleteProductionOrder(ctx, cmd.OrderID())
}

// CompleteWorkstationOrderCommandHandler is the entry point of the completion cascade.
type CompleteWorkstationOrderCommandHandler struct {
	propagator Propagator
}

func NewCompleteWorkstationOrderCommandHandler(propagator Propagator) CompleteWorkstationOrderCommandHandler {
	return CompleteWorkstationOrderCommandHandler{propagator: propagator}
}

func (h CompleteWorkstationOrderCommandHandler) Handle(
	ctx context.Context,
	cmd OrderCommand,
) (orchestration.CompletionResult, error) {
	if err := cmd.Validate(); err != nil {
		return orchestration.CompletionResult{}, err
	}
	return h.propagator.CompleteWorkstationOrder(ctx, cmd.OrderID())
}
