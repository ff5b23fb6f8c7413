package queries

import (
	"context"

	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/supplyorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
	"factory/internal/core/ports"
)

type ListOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{uowFactory: uowFactory}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	raw := query.Status()

	switch query.OrderType() {
	case kernel.CustomerOrderType:
		status, _ := customerorder.ParseStatus(raw)
		orders, err := uow.CustomerOrderRepository().FindByStatus(ctx, status)
		return views(orders, customerOrderView), err
	case kernel.WarehouseOrderType:
		status, _ := warehouseorder.ParseStatus(raw)
		orders, err := uow.WarehouseOrderRepository().FindByStatus(ctx, status)
		return views(orders, warehouseOrderView), err
	case kernel.ProductionOrderType:
		status, _ := productionorder.ParseStatus(raw)
		orders, err := uow.ProductionOrderRepository().FindByStatus(ctx, status)
		return views(orders, productionOrderView), err
	case kernel.ControlOrderType:
		status, _ := controlorder.ParseStatus(raw)
		orders, err := uow.ControlOrderRepository().FindByStatus(ctx, status)
		return views(orders, controlOrderView), err
	case kernel.WorkstationOrderType:
		status, _ := workstationorder.ParseStatus(raw)
		orders, err := uow.WorkstationOrderRepository().FindByStatus(ctx, status)
		return views(orders, workstationOrderView), err
	default:
		status, _ := supplyorder.ParseStatus(raw)
		orders, err := uow.SupplyOrderRepository().FindByStatus(ctx, status)
		return views(orders, supplyOrderView), err
	}
}

func views[A any](orders []A, view func(A) OrderView) []OrderView {
	if orders == nil {
		return nil
	}
	result := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		result = append(result, view(order))
	}
	return result
}
