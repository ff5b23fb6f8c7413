package orderrepo

import (
	"context"

	"gorm.io/gorm"

	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/supplyorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
)

type GormCustomerOrderRepository struct {
	repo[*customerorder.CustomerOrder, customerorder.State, CustomerOrderDTO]
}

func NewGormCustomerOrderRepository(db *gorm.DB) *GormCustomerOrderRepository {
	return &GormCustomerOrderRepository{repo[*customerorder.CustomerOrder, customerorder.State, CustomerOrderDTO]{
		db:       db,
		table:    CustomerOrderDTO{}.TableName(),
		entity:   "customer order",
		toDTO:    customerOrderFromDomain,
		toDomain: customerOrderToDomain,
	}}
}

func (r *GormCustomerOrderRepository) FindByStatus(
	ctx context.Context,
	status customerorder.Status,
) ([]*customerorder.CustomerOrder, error) {
	return r.find(ctx, "status = ?", status.String())
}

type GormWarehouseOrderRepository struct {
	repo[*warehouseorder.WarehouseOrder, warehouseorder.State, WarehouseOrderDTO]
}

func NewGormWarehouseOrderRepository(db *gorm.DB) *GormWarehouseOrderRepository {
	return &GormWarehouseOrderRepository{repo[*warehouseorder.WarehouseOrder, warehouseorder.State, WarehouseOrderDTO]{
		db:       db,
		table:    WarehouseOrderDTO{}.TableName(),
		entity:   "warehouse order",
		toDTO:    warehouseOrderFromDomain,
		toDomain: warehouseOrderToDomain,
	}}
}

func (r *GormWarehouseOrderRepository) FindByCustomerOrderID(
	ctx context.Context,
	customerOrderID kernel.ID,
) ([]*warehouseorder.WarehouseOrder, error) {
	return r.find(ctx, "customer_order_id = ?", int64(customerOrderID))
}

func (r *GormWarehouseOrderRepository) FindByStatus(
	ctx context.Context,
	status warehouseorder.Status,
) ([]*warehouseorder.WarehouseOrder, error) {
	return r.find(ctx, "status = ?", status.String())
}

type GormProductionOrderRepository struct {
	repo[*productionorder.ProductionOrder, productionorder.State, ProductionOrderDTO]
}

func NewGormProductionOrderRepository(db *gorm.DB) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{
		repo[*productionorder.ProductionOrder, productionorder.State, ProductionOrderDTO]{
			db:       db,
			table:    ProductionOrderDTO{}.TableName(),
			entity:   "production order",
			toDTO:    productionOrderFromDomain,
			toDomain: productionOrderToDomain,
		},
	}
}

func (r *GormProductionOrderRepository) FindByWarehouseOrderID(
	ctx context.Context,
	warehouseOrderID kernel.ID,
) ([]*productionorder.ProductionOrder, error) {
	return r.find(ctx, "source_warehouse_order_id = ?", int64(warehouseOrderID))
}

func (r *GormProductionOrderRepository) FindByCustomerOrderID(
	ctx context.Context,
	customerOrderID kernel.ID,
) ([]*productionorder.ProductionOrder, error) {
	return r.find(ctx, "source_customer_order_id = ?", int64(customerOrderID))
}

func (r *GormProductionOrderRepository) FindByStatus(
	ctx context.Context,
	status productionorder.Status,
) ([]*productionorder.ProductionOrder, error) {
	return r.find(ctx, "status = ?", status.String())
}

type GormControlOrderRepository struct {
	repo[*controlorder.ControlOrder, controlorder.State, ControlOrderDTO]
}

func NewGormControlOrderRepository(db *gorm.DB) *GormControlOrderRepository {
	return &GormControlOrderRepository{repo[*controlorder.ControlOrder, controlorder.State, ControlOrderDTO]{
		db:       db,
		table:    ControlOrderDTO{}.TableName(),
		entity:   "control order",
		toDTO:    controlOrderFromDomain,
		toDomain: controlOrderToDomain,
	}}
}

func (r *GormControlOrderRepository) FindByProductionOrderID(
	ctx context.Context,
	productionOrderID kernel.ID,
) ([]*controlorder.ControlOrder, error) {
	return r.find(ctx, "production_order_id = ?", int64(productionOrderID))
}

func (r *GormControlOrderRepository) FindByStatus(
	ctx context.Context,
	status controlorder.Status,
) ([]*controlorder.ControlOrder, error) {
	return r.find(ctx, "status = ?", status.String())
}

func (r *GormControlOrderRepository) CountByProductionOrderID(
	ctx context.Context,
	productionOrderID kernel.ID,
) (int, error) {
	return r.count(ctx, "production_order_id = ?", int64(productionOrderID))
}

func (r *GormControlOrderRepository) CountByProductionOrderIDAndStatus(
	ctx context.Context,
	productionOrderID kernel.ID,
	status controlorder.Status,
) (int, error) {
	return r.count(ctx, "production_order_id = ? AND status = ?", int64(productionOrderID), status.String())
}

type GormWorkstationOrderRepository struct {
	repo[*workstationorder.WorkstationOrder, workstationorder.State, WorkstationOrderDTO]
}

func NewGormWorkstationOrderRepository(db *gorm.DB) *GormWorkstationOrderRepository {
	return &GormWorkstationOrderRepository{
		repo[*workstationorder.WorkstationOrder, workstationorder.State, WorkstationOrderDTO]{
			db:       db,
			table:    WorkstationOrderDTO{}.TableName(),
			entity:   "workstation order",
			toDTO:    workstationOrderFromDomain,
			toDomain: workstationOrderToDomain,
		},
	}
}

func (r *GormWorkstationOrderRepository) FindByControlOrderID(
	ctx context.Context,
	controlOrderID kernel.ID,
) ([]*workstationorder.WorkstationOrder, error) {
	return r.find(ctx, "control_order_id = ?", int64(controlOrderID))
}

func (r *GormWorkstationOrderRepository) FindByCustomerOrderID(
	ctx context.Context,
	customerOrderID kernel.ID,
) ([]*workstationorder.WorkstationOrder, error) {
	return r.find(ctx, "customer_order_id = ?", int64(customerOrderID))
}

func (r *GormWorkstationOrderRepository) FindByStatus(
	ctx context.Context,
	status workstationorder.Status,
) ([]*workstationorder.WorkstationOrder, error) {
	return r.find(ctx, "status = ?", status.String())
}

func (r *GormWorkstationOrderRepository) CountByControlOrderIDAndKind(
	ctx context.Context,
	controlOrderID kernel.ID,
	kind plant.Kind,
) (int, error) {
	return r.count(ctx, "control_order_id = ? AND kind = ?", int64(controlOrderID), kind.String())
}

func (r *GormWorkstationOrderRepository) CountByControlOrderIDKindAndStatus(
	ctx context.Context,
	controlOrderID kernel.ID,
	kind plant.Kind,
	status workstationorder.Status,
) (int, error) {
	return r.count(ctx, "control_order_id = ? AND kind = ? AND status = ?",
		int64(controlOrderID), kind.String(), status.String())
}

type GormSupplyOrderRepository struct {
	repo[*supplyorder.SupplyOrder, supplyorder.State, SupplyOrderDTO]
}

func NewGormSupplyOrderRepository(db *gorm.DB) *GormSupplyOrderRepository {
	return &GormSupplyOrderRepository{repo[*supplyorder.SupplyOrder, supplyorder.State, SupplyOrderDTO]{
		db:       db,
		table:    SupplyOrderDTO{}.TableName(),
		entity:   "supply order",
		toDTO:    supplyOrderFromDomain,
		toDomain: supplyOrderToDomain,
	}}
}

func (r *GormSupplyOrderRepository) FindByControlOrderID(
	ctx context.Context,
	controlOrderID kernel.ID,
) ([]*supplyorder.SupplyOrder, error) {
	return r.find(ctx, "source_control_order_id = ?", int64(controlOrderID))
}

func (r *GormSupplyOrderRepository) FindByStatus(
	ctx context.Context,
	status supplyorder.Status,
) ([]*supplyorder.SupplyOrder, error) {
	return r.find(ctx, "status = ?", status.String())
}
