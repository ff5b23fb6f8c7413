package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request or cascade hop.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// TxManager controls the transaction boundary of a unit of work.
type TxManager interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error
}

// UnitOfWork represents a business transaction boundary. Every repository it hands out
// is bound to the transaction started by Begin.
type UnitOfWork interface {
	TxManager

	CustomerOrderRepository() CustomerOrderRepository
	WarehouseOrderRepository() WarehouseOrderRepository
	ProductionOrderRepository() ProductionOrderRepository
	ControlOrderRepository() ControlOrderRepository
	WorkstationOrderRepository() WorkstationOrderRepository
	SupplyOrderRepository() SupplyOrderRepository
}
