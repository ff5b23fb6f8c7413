package queries

import (
	"context"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/ports"
)

// GetOrderQueryHandler maps a stored aggregate to its OrderView.
type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	uow := h.uowFactory.Create()
	id := query.OrderID()

	switch query.OrderType() {
	case kernel.CustomerOrderType:
		order, err := uow.CustomerOrderRepository().Get(ctx, id)
		if err != nil {
			return OrderView{}, err
		}
		return customerOrderView(order), nil
	case kernel.WarehouseOrderType:
		order, err := uow.WarehouseOrderRepository().Get(ctx, id)
		if err != nil {
			return OrderView{}, err
		}
		return warehouseOrderView(order), nil
	case kernel.ProductionOrderType:
		order, err := uow.ProductionOrderRepository().Get(ctx, id)
		if err != nil {
			return OrderView{}, err
		}
		return productionOrderView(order), nil
	case kernel.ControlOrderType:
		order, err := uow.ControlOrderRepository().Get(ctx, id)
		if err != nil {
			return OrderView{}, err
		}
		return controlOrderView(order), nil
	case kernel.WorkstationOrderType:
		order, err := uow.WorkstationOrderRepository().Get(ctx, id)
		if err != nil {
			return OrderView{}, err
		}
		return workstationOrderView(order), nil
	default:
		order, err := uow.SupplyOrderRepository().Get(ctx, id)
		if err != nil {
			return OrderView{}, err
		}
		return supplyOrderView(order), nil
	}
}
