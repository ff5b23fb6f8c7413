package ports

import (
	"context"

	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/supplyorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
)

// Every repository below follows the same rules:
//   - NextID reserves a fresh id from the per type sequence; ids are never reused.
//   - Add stores a new aggregate at version 0.
//   - Update writes only if the stored version equals the aggregate's version and
//     returns errs.ErrConcurrentModification otherwise. On success the aggregate's
//     version is incremented.
//   - Get returns an errs.ObjectNotFoundError for unknown ids.

type CustomerOrderRepository interface {
	NextID(ctx context.Context) (kernel.ID, error)
	Add(ctx context.Context, aggregate *customerorder.CustomerOrder) error
	Update(ctx context.Context, aggregate *customerorder.CustomerOrder) error
	Get(ctx context.Context, id kernel.ID) (*customerorder.CustomerOrder, error)
	FindByStatus(ctx context.Context, status customerorder.Status) ([]*customerorder.CustomerOrder, error)
}

type WarehouseOrderRepository interface {
	NextID(ctx context.Context) (kernel.ID, error)
	Add(ctx context.Context, aggregate *warehouseorder.WarehouseOrder) error
	Update(ctx context.Context, aggregate *warehouseorder.WarehouseOrder) error
	Get(ctx context.Context, id kernel.ID) (*warehouseorder.WarehouseOrder, error)
	FindByCustomerOrderID(ctx context.Context, customerOrderID kernel.ID) ([]*warehouseorder.WarehouseOrder, error)
	FindByStatus(ctx context.Context, status warehouseorder.Status) ([]*warehouseorder.WarehouseOrder, error)
}

type ProductionOrderRepository interface {
	NextID(ctx context.Context) (kernel.ID, error)
	Add(ctx context.Context, aggregate *productionorder.ProductionOrder) error
	Update(ctx context.Context, aggregate *productionorder.ProductionOrder) error
	Get(ctx context.Context, id kernel.ID) (*productionorder.ProductionOrder, error)
	FindByWarehouseOrderID(ctx context.Context, warehouseOrderID kernel.ID) ([]*productionorder.ProductionOrder, error)
	FindByCustomerOrderID(ctx context.Context, customerOrderID kernel.ID) ([]*productionorder.ProductionOrder, error)
	FindByStatus(ctx context.Context, status productionorder.Status) ([]*productionorder.ProductionOrder, error)
}

type ControlOrderRepository interface {
	NextID(ctx context.Context) (kernel.ID, error)
	Add(ctx context.Context, aggregate *controlorder.ControlOrder) error
	Update(ctx context.Context, aggregate *controlorder.ControlOrder) error
	Get(ctx context.Context, id kernel.ID) (*controlorder.ControlOrder, error)
	FindByProductionOrderID(ctx context.Context, productionOrderID kernel.ID) ([]*controlorder.ControlOrder, error)
	FindByStatus(ctx context.Context, status controlorder.Status) ([]*controlorder.ControlOrder, error)
	CountByProductionOrderID(ctx context.Context, productionOrderID kernel.ID) (int, error)
	CountByProductionOrderIDAndStatus(
		ctx context.Context,
		productionOrderID kernel.ID,
		status controlorder.Status,
	) (int, error)
}

type WorkstationOrderRepository interface {
	NextID(ctx context.Context) (kernel.ID, error)
	Add(ctx context.Context, aggregate *workstationorder.WorkstationOrder) error
	Update(ctx context.Context, aggregate *workstationorder.WorkstationOrder) error
	Get(ctx context.Context, id kernel.ID) (*workstationorder.WorkstationOrder, error)
	FindByControlOrderID(ctx context.Context, controlOrderID kernel.ID) ([]*workstationorder.WorkstationOrder, error)
	FindByCustomerOrderID(ctx context.Context, customerOrderID kernel.ID) ([]*workstationorder.WorkstationOrder, error)
	FindByStatus(ctx context.Context, status workstationorder.Status) ([]*workstationorder.WorkstationOrder, error)
	// CountByControlOrderIDAndKind counts the children of one kind under a control order.
	CountByControlOrderIDAndKind(ctx context.Context, controlOrderID kernel.ID, kind plant.Kind) (int, error)
	CountByControlOrderIDKindAndStatus(
		ctx context.Context,
		controlOrderID kernel.ID,
		kind plant.Kind,
		status workstationorder.Status,
	) (int, error)
}

type SupplyOrderRepository interface {
	NextID(ctx context.Context) (kernel.ID, error)
	Add(ctx context.Context, aggregate *supplyorder.SupplyOrder) error
	Update(ctx context.Context, aggregate *supplyorder.SupplyOrder) error
	Get(ctx context.Context, id kernel.ID) (*supplyorder.SupplyOrder, error)
	FindByControlOrderID(ctx context.Context, controlOrderID kernel.ID) ([]*supplyorder.SupplyOrder, error)
	FindByStatus(ctx context.Context, status supplyorder.Status) ([]*supplyorder.SupplyOrder, error)
}
