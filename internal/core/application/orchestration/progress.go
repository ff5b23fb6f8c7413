package orchestration

import (
	"context"

	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/ports"
)

// ProgressReader answers read-only progress queries. Snapshots may lag behind a cascade
// that is still running.
type ProgressReader struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewProgressReader(uowFactory ports.UnitOfWorkFactory) ProgressReader {
	return ProgressReader{uowFactory: uowFactory}
}

// ControlOrderProgress counts the workstation orders of a control order.
func (r ProgressReader) ControlOrderProgress(ctx context.Context, id kernel.ID) (kernel.Progress, error) {
	uow := r.uowFactory.Create()
	control, err := uow.ControlOrderRepository().Get(ctx, id)
	if err != nil {
		return kernel.Progress{}, err
	}
	return countWorkstationOrders(ctx, uow.WorkstationOrderRepository(), control)
}

// ProductionOrderProgress counts the control orders of both categories of a production order.
func (r ProgressReader) ProductionOrderProgress(ctx context.Context, id kernel.ID) (kernel.Progress, error) {
	uow := r.uowFactory.Create()
	if _, err := uow.ProductionOrderRepository().Get(ctx, id); err != nil {
		return kernel.Progress{}, err
	}
	return countControlOrders(ctx, uow.ControlOrderRepository(), id)
}

// CustomerProgress aggregates the work done for one customer order.
type CustomerProgress struct {
	CustomerOrderID  kernel.ID
	ProductionOrders kernel.Progress
	ControlOrders    kernel.Progress
	FinalAssembly    kernel.Progress
}

// CustomerOrderProgress follows both production paths of a customer order: production
// orders raised directly and those raised through its warehouse orders.
func (r ProgressReader) CustomerOrderProgress(ctx context.Context, id kernel.ID) (CustomerProgress, error) {
	uow := r.uowFactory.Create()
	if _, err := uow.CustomerOrderRepository().Get(ctx, id); err != nil {
		return CustomerProgress{}, err
	}

	productions, err := uow.ProductionOrderRepository().FindByCustomerOrderID(ctx, id)
	if err != nil {
		return CustomerProgress{}, err
	}
	warehouses, err := uow.WarehouseOrderRepository().FindByCustomerOrderID(ctx, id)
	if err != nil {
		return CustomerProgress{}, err
	}
	for _, warehouse := range warehouses {
		linked, err := uow.ProductionOrderRepository().FindByWarehouseOrderID(ctx, warehouse.ID())
		if err != nil {
			return CustomerProgress{}, err
		}
		productions = append(productions, linked...)
	}

	progress := CustomerProgress{CustomerOrderID: id}
	for _, production := range productions {
		completed := 0
		if production.Status() == productionorder.Completed {
			completed = 1
		}
		progress.ProductionOrders = progress.ProductionOrders.Add(kernel.NewProgress(1, completed))

		controls, err := countControlOrders(ctx, uow.ControlOrderRepository(), production.ID())
		if err != nil {
			return CustomerProgress{}, err
		}
		progress.ControlOrders = progress.ControlOrders.Add(controls)
	}

	orders, err := uow.WorkstationOrderRepository().FindByCustomerOrderID(ctx, id)
	if err != nil {
		return CustomerProgress{}, err
	}
	progress.FinalAssembly = directFinalAssemblyProgress(orders)
	return progress, nil
}

func countControlOrders(ctx context.Context, repo ports.ControlOrderRepository, productionID kernel.ID) (kernel.Progress, error) {
	total, err := repo.CountByProductionOrderID(ctx, productionID)
	if err != nil {
		return kernel.Progress{}, err
	}
	completed, err := repo.CountByProductionOrderIDAndStatus(ctx, productionID, controlorder.Completed)
	if err != nil {
		return kernel.Progress{}, err
	}
	return kernel.NewProgress(total, completed), nil
}
