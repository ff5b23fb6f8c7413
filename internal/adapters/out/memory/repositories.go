package memory

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

type CustomerOrderRepository struct {
	repo[*customerorder.CustomerOrder, customerorder.State]
}

func (r *CustomerOrderRepository) FindByStatus(
	ctx context.Context,
	status customerorder.Status,
) ([]*customerorder.CustomerOrder, error) {
	return r.find(ctx, func(s customerorder.State) bool { return s.Status == status })
}

type WarehouseOrderRepository struct {
	repo[*warehouseorder.WarehouseOrder, warehouseorder.State]
}

func (r *WarehouseOrderRepository) FindByCustomerOrderID(
	ctx context.Context,
	customerOrderID kernel.ID,
) ([]*warehouseorder.WarehouseOrder, error) {
	return r.find(ctx, func(s warehouseorder.State) bool { return s.CustomerOrderID == customerOrderID })
}

func (r *WarehouseOrderRepository) FindByStatus(
	ctx context.Context,
	status warehouseorder.Status,
) ([]*warehouseorder.WarehouseOrder, error) {
	return r.find(ctx, func(s warehouseorder.State) bool { return s.Status == status })
}

type ProductionOrderRepository struct {
	repo[*productionorder.ProductionOrder, productionorder.State]
}

func (r *ProductionOrderRepository) FindByWarehouseOrderID(
	ctx context.Context,
	warehouseOrderID kernel.ID,
) ([]*productionorder.ProductionOrder, error) {
	return r.find(ctx, func(s productionorder.State) bool {
		return s.SourceWarehouseOrderID != nil && *s.SourceWarehouseOrderID == warehouseOrderID
	})
}

func (r *ProductionOrderRepository) FindByCustomerOrderID(
	ctx context.Context,
	customerOrderID kernel.ID,
) ([]*productionorder.ProductionOrder, error) {
	return r.find(ctx, func(s productionorder.State) bool {
		return s.SourceCustomerOrderID != nil && *s.SourceCustomerOrderID == customerOrderID
	})
}

func (r *ProductionOrderRepository) FindByStatus(
	ctx context.Context,
	status productionorder.Status,
) ([]*productionorder.ProductionOrder, error) {
	return r.find(ctx, func(s productionorder.State) bool { return s.Status == status })
}

type ControlOrderRepository struct {
	repo[*controlorder.ControlOrder, controlorder.State]
}

func (r *ControlOrderRepository) FindByProductionOrderID(
	ctx context.Context,
	productionOrderID kernel.ID,
) ([]*controlorder.ControlOrder, error) {
	return r.find(ctx, func(s controlorder.State) bool { return s.ProductionOrderID == productionOrderID })
}

func (r *ControlOrderRepository) FindByStatus(
	ctx context.Context,
	status controlorder.Status,
) ([]*controlorder.ControlOrder, error) {
	return r.find(ctx, func(s controlorder.State) bool { return s.Status == status })
}

func (r *ControlOrderRepository) CountByProductionOrderID(ctx context.Context, productionOrderID kernel.ID) (int, error) {
	return r.count(ctx, func(s controlorder.State) bool { return s.ProductionOrderID == productionOrderID })
}

func (r *ControlOrderRepository) CountByProductionOrderIDAndStatus(
	ctx context.Context,
	productionOrderID kernel.ID,
	status controlorder.Status,
) (int, error) {
	return r.count(ctx, func(s controlorder.State) bool {
		return s.ProductionOrderID == productionOrderID && s.Status == status
	})
}

type WorkstationOrderRepository struct {
	repo[*workstationorder.WorkstationOrder, workstationorder.State]
}

func underControl(s workstationorder.State, controlOrderID kernel.ID) bool {
	return s.References.ControlOrderID != nil && *s.References.ControlOrderID == controlOrderID
}

func (r *WorkstationOrderRepository) FindByControlOrderID(
	ctx context.Context,
	controlOrderID kernel.ID,
) ([]*workstationorder.WorkstationOrder, error) {
	return r.find(ctx, func(s workstationorder.State) bool { return underControl(s, controlOrderID) })
}

func (r *WorkstationOrderRepository) FindByCustomerOrderID(
	ctx context.Context,
	customerOrderID kernel.ID,
) ([]*workstationorder.WorkstationOrder, error) {
	return r.find(ctx, func(s workstationorder.State) bool {
		return s.References.CustomerOrderID != nil && *s.References.CustomerOrderID == customerOrderID
	})
}

func (r *WorkstationOrderRepository) FindByStatus(
	ctx context.Context,
	status workstationorder.Status,
) ([]*workstationorder.WorkstationOrder, error) {
	return r.find(ctx, func(s workstationorder.State) bool { return s.Status == status })
}

func (r *WorkstationOrderRepository) CountByControlOrderIDAndKind(
	ctx context.Context,
	controlOrderID kernel.ID,
	kind plant.Kind,
) (int, error) {
	return r.count(ctx, func(s workstationorder.State) bool {
		return underControl(s, controlOrderID) && s.Kind == kind
	})
}

func (r *WorkstationOrderRepository) CountByControlOrderIDKindAndStatus(
	ctx context.Context,
	controlOrderID kernel.ID,
	kind plant.Kind,
	status workstationorder.Status,
) (int, error) {
	return r.count(ctx, func(s workstationorder.State) bool {
		return underControl(s, controlOrderID) && s.Kind == kind && s.Status == status
	})
}

type SupplyOrderRepository struct {
	repo[*supplyorder.SupplyOrder, supplyorder.State]
}

func (r *SupplyOrderRepository) FindByControlOrderID(
	ctx context.Context,
	controlOrderID kernel.ID,
) ([]*supplyorder.SupplyOrder, error) {
	return r.find(ctx, func(s supplyorder.State) bool { return s.SourceControlOrderID == controlOrderID })
}

func (r *SupplyOrderRepository) FindByStatus(
	ctx context.Context,
	status supplyorder.Status,
) ([]*supplyorder.SupplyOrder, error) {
	return r.find(ctx, func(s supplyorder.State) bool { return s.Status == status })
}
