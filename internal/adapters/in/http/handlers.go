// Package http is the REST surface of the factory service. Every route validates its
// input by building a command or query, runs the matching application handler and
// maps domain errors onto status codes.
package http

import (
	"context"

	"factory/internal/core/application/notification"
	"factory/internal/core/application/orchestration"
	"factory/internal/core/application/usecases/commands"
	"factory/internal/core/application/usecases/queries"
	"factory/internal/core/domain/model/kernel"
)

// Handler is satisfied by every command and query handler of the application layer.
type Handler[Q, R any] interface {
	Handle(ctx context.Context, request Q) (R, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[Q, R any] func(ctx context.Context, request Q) (R, error)

func (f HandlerFunc[Q, R]) Handle(ctx context.Context, request Q) (R, error) {
	return f(ctx, request)
}

// Handlers is the set of use cases reachable over HTTP.
type Handlers struct {
	CreateCustomerOrder  Handler[commands.CreateCustomerOrderCommand, commands.CreateCustomerOrderResult]
	ProcessCustomerOrder Handler[commands.OrderCommand, orchestration.RoutingResult]
	Transition           Handler[commands.TransitionCommand, commands.TransitionResult]

	ConfirmWarehouseOrder   Handler[commands.OrderCommand, orchestration.RoutingResult]
	RequestProduction       Handler[commands.OrderCommand, kernel.ID]
	FulfillWarehouseOrder   Handler[commands.OrderCommand, orchestration.FulfillResult]
	OverrideWarehouseStatus Handler[commands.OverrideWarehouseOrderStatusCommand, commands.TransitionResult]

	ScheduleProductionOrder  Handler[commands.OrderCommand, orchestration.ScheduleResult]
	SubmitProductionOrder    Handler[commands.OrderCommand, notification.Report]
	CompleteProductionOrder  Handler[commands.OrderCommand, orchestration.CompletionResult]
	RequestControlSupply     Handler[commands.OrderCommand, orchestration.SupplyResult]
	DispatchControlOrder     Handler[commands.OrderCommand, orchestration.DispatchResult]
	StartWorkstationOrder    Handler[commands.OrderCommand, commands.TransitionResult]
	CompleteWorkstationOrder Handler[commands.OrderCommand, orchestration.CompletionResult]
	FulfillSupplyOrder       Handler[commands.OrderCommand, commands.TransitionResult]

	GetOrder      Handler[queries.GetOrderQuery, queries.OrderView]
	ListOrders    Handler[queries.ListOrdersQuery, []queries.OrderView]
	GetProgress   Handler[queries.GetProgressQuery, queries.GetProgressQueryResponse]
	GetStockLevel Handler[queries.GetStockLevelQuery, queries.GetStockLevelQueryResponse]
}
