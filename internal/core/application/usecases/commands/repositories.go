// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every command is validated by its constructor; handlers either run a single
// transaction against the unit of work or delegate to the orchestration services.
package commands

import (
	"context"

	"factory/internal/core/application/notification"
	"factory/internal/core/application/orchestration"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/ports"
)

// Collaborators of the command handlers. The orchestration package provides the
// production implementations.
type (
	// Router picks fulfillment scenarios.
	Router interface {
		RouteCustomerOrder(ctx context.Context, customerOrderID kernel.ID) (orchestration.RoutingResult, error)
		ConfirmWarehouseOrder(ctx context.Context, warehouseOrderID kernel.ID) (orchestration.RoutingResult, error)
		RequestProduction(ctx context.Context, warehouseOrderID kernel.ID) (kernel.ID, error)
	}

	// Coordinator pushes work down the order hierarchy.
	Coordinator interface {
		ScheduleProductionOrder(ctx context.Context, id kernel.ID) (orchestration.ScheduleResult, error)
		RequestControlOrderSupply(ctx context.Context, controlOrderID kernel.ID) (orchestration.SupplyResult, error)
		DispatchControlOrder(ctx context.Context, controlOrderID kernel.ID) (orchestration.DispatchResult, error)
		SubmitProductionOrderCompletion(ctx context.Context, productionOrderID kernel.ID) (notification.Report, error)
		FulfillWarehouseOrder(ctx context.Context, warehouseOrderID kernel.ID) (orchestration.FulfillResult, error)
	}

	// Propagator pulls completions up the order hierarchy.
	Propagator interface {
		CompleteWorkstationOrder(ctx context.Context, id kernel.ID) (orchestration.CompletionResult, error)
		CompleteProductionOrder(ctx context.Context, id kernel.ID) (orchestration.CompletionResult, error)
	}

	// Notifier runs the best effort ledger movements and event publications that follow
	// a committed change.
	Notifier interface {
		Credit(
			ctx context.Context,
			report *notification.Report,
			workstationID plant.WorkstationID,
			item kernel.Item,
			reason ports.StockReason,
			note string,
		)
		Debit(
			ctx context.Context,
			report *notification.Report,
			workstationID plant.WorkstationID,
			item kernel.Item,
			reason ports.StockReason,
			note string,
		)
		Publish(ctx context.Context, report *notification.Report, event ports.OrderEvent)
	}
)

var (
	_ Router      = (*orchestration.ScenarioRouter)(nil)
	_ Coordinator = (*orchestration.DispatchCoordinator)(nil)
	_ Propagator  = (*orchestration.CompletionPropagator)(nil)
	_ Notifier    = (*notification.Notifier)(nil)
)

// inTransaction runs fn in a fresh unit of work and commits when fn succeeds.
func inTransaction(ctx context.Context, factory ports.UnitOfWorkFactory, fn func(uow ports.UnitOfWork) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
