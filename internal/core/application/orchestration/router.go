package orchestration

import (
	"context"
	"time"

	"go.uber.org/zap"

	"factory/internal/core/application/notification"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/services"
	"factory/internal/core/ports"
	"factory/internal/pkg/errs"
	"factory/internal/pkg/metrics"
)

// ScenarioRouter picks the fulfillment scenario of customer and warehouse orders.
type ScenarioRouter struct {
	uowFactory ports.UnitOfWorkFactory
	cfg        plant.Config
	resolver   services.ScenarioResolver
	catalog    catalog
	stock      stockReader
	notifier   *notification.Notifier
	logger     *zap.Logger
}

func NewScenarioRouter(
	uowFactory ports.UnitOfWorkFactory,
	cfg plant.Config,
	masterdata ports.Masterdata,
	ledger ports.InventoryLedger,
	notifier *notification.Notifier,
	logger *zap.Logger,
) *ScenarioRouter {
	return &ScenarioRouter{
		uowFactory: uowFactory,
		cfg:        cfg,
		resolver:   services.NewScenarioResolver(cfg),
		catalog:    catalog{masterdata: masterdata, timeout: cfg.CallTimeout()},
		stock:      stockReader{ledger: ledger, timeout: cfg.CallTimeout()},
		notifier:   notifier,
		logger:     logger.With(zap.String("component", "scenario-router")),
	}
}

// RoutingResult is the outcome of a routing decision. Scenario stays unset for a
// warehouse order that still awaits confirmation.
type RoutingResult struct {
	Scenario          kernel.Scenario
	WarehouseOrderID  *kernel.ID
	ProductionOrderID *kernel.ID
	Report            notification.Report
}

// RouteCustomerOrder starts processing a PENDING or CONFIRMED customer order. Lots at
// or above the threshold go to direct production; smaller ones get a PENDING warehouse
// order for the modules they need.
func (r *ScenarioRouter) RouteCustomerOrder(ctx context.Context, customerOrderID kernel.ID) (RoutingResult, error) {
	var result RoutingResult

	customer, err := r.uowFactory.Create().CustomerOrderRepository().Get(ctx, customerOrderID)
	if err != nil {
		return result, err
	}
	if customer.Status() != customerorder.Pending && customer.Status() != customerorder.Confirmed {
		return result, errs.NewInvalidStateTransitionError(
			"customer order", customerOrderID, customer.Status().String(), "process")
	}

	lineItems := make([]kernel.Item, 0, len(customer.Lines()))
	for _, line := range customer.Lines() {
		lineItems = append(lineItems, line.Item())
	}
	demand, err := r.catalog.expandProducts(ctx, lineItems)
	if err != nil {
		return result, err
	}

	direct := r.resolver.RequiresDirectProduction(customer.TotalQuantity())
	err = inTransaction(ctx, r.uowFactory, func(uow ports.UnitOfWork) error {
		customers := uow.CustomerOrderRepository()
		customer, err := customers.Get(ctx, customerOrderID)
		if err != nil {
			return err
		}

		if direct {
			result.Scenario = kernel.DirectProduction
			if err = customer.StartProcessing(kernel.DirectProduction); err != nil {
				return err
			}
			id, err := r.addProductionOrder(ctx, uow, func(id kernel.ID) (*productionorder.ProductionOrder, error) {
				return productionorder.NewForCustomerOrder(
					id, customerOrderID, productionItems(demand), productionorder.High, dueDate())
			})
			if err != nil {
				return err
			}
			result.ProductionOrderID = id.Ptr()
		} else {
			if err = customer.StartProcessing(kernel.NoScenario); err != nil {
				return err
			}
			warehouses := uow.WarehouseOrderRepository()
			id, err := warehouses.NextID(ctx)
			if err != nil {
				return err
			}
			warehouse, err := warehouseorder.NewWarehouseOrder(id, customerOrderID, demand)
			if err != nil {
				return err
			}
			if err = warehouses.Add(ctx, warehouse); err != nil {
				return err
			}
			result.WarehouseOrderID = id.Ptr()
		}

		return customers.Update(ctx, customer)
	})
	if err != nil {
		return RoutingResult{}, err
	}

	metrics.RecordTransition(kernel.CustomerOrderType.String(), customerorder.Processing.String())
	r.logger.Info("customer order routed",
		zap.String("customer_order", customer.Number()),
		zap.Int("total_quantity", customer.TotalQuantity()),
		zap.Bool("direct_production", direct),
	)
	r.notifier.Publish(ctx, &result.Report, ports.OrderEvent{
		Type:        ports.EventOrderStatusChanged,
		OrderType:   kernel.CustomerOrderType.String(),
		OrderID:     customer.ID(),
		OrderNumber: customer.Number(),
		Status:      customerorder.Processing.String(),
		Attributes:  map[string]string{"scenario": result.Scenario.String()},
	})
	return result, nil
}

// ConfirmWarehouseOrder resolves the scenario of a PENDING warehouse order against the
// current Modules depot stock and confirms it. A short depot raises a production order
// for the missing quantities, linked to the warehouse order.
func (r *ScenarioRouter) ConfirmWarehouseOrder(ctx context.Context, warehouseOrderID kernel.ID) (RoutingResult, error) {
	var result RoutingResult

	warehouse, err := r.uowFactory.Create().WarehouseOrderRepository().Get(ctx, warehouseOrderID)
	if err != nil {
		return result, err
	}
	if warehouse.Status() != warehouseorder.Pending {
		return result, errs.NewInvalidStateTransitionError(
			"warehouse order", warehouseOrderID, warehouse.Status().String(), "confirm")
	}

	depot, err := r.stock.snapshot(ctx, r.cfg.ModulesDepot(), warehouse.Items())
	if err != nil {
		return result, err
	}
	scenario := r.resolver.ResolveWarehouse(warehouse.Items(), depot)
	missing := depot.Shortfall(warehouse.Items())

	err = inTransaction(ctx, r.uowFactory, func(uow ports.UnitOfWork) error {
		warehouses := uow.WarehouseOrderRepository()
		order, err := warehouses.Get(ctx, warehouseOrderID)
		if err != nil {
			return err
		}
		if err = order.Confirm(scenario); err != nil {
			return err
		}

		customers := uow.CustomerOrderRepository()
		customer, err := customers.Get(ctx, order.CustomerOrderID())
		if err != nil {
			return err
		}
		customer.RecordScenario(scenario)
		if err = customers.Update(ctx, customer); err != nil {
			return err
		}

		if scenario == kernel.ProductionRequired {
			id, err := r.linkProductionOrder(ctx, uow, order, missing)
			if err != nil {
				return err
			}
			result.ProductionOrderID = id.Ptr()
		}

		warehouse = order
		return warehouses.Update(ctx, order)
	})
	if err != nil {
		return RoutingResult{}, err
	}

	result.Scenario = scenario
	result.WarehouseOrderID = warehouse.ID().Ptr()
	metrics.RecordTransition(kernel.WarehouseOrderType.String(), warehouseorder.Confirmed.String())
	r.logger.Info("warehouse order confirmed",
		zap.String("warehouse_order", warehouse.Number()),
		zap.String("trigger_scenario", scenario.String()),
	)
	r.notifier.Publish(ctx, &result.Report, ports.OrderEvent{
		Type:        ports.EventOrderStatusChanged,
		OrderType:   kernel.WarehouseOrderType.String(),
		OrderID:     warehouse.ID(),
		OrderNumber: warehouse.Number(),
		Status:      warehouse.Status().String(),
		Attributes:  map[string]string{"trigger_scenario": scenario.String()},
	})
	return result, nil
}

// RequestProduction returns the production order of a PRODUCTION_REQUIRED warehouse
// order, raising it for the whole order when none is linked yet. Repeated requests
// return the same id.
func (r *ScenarioRouter) RequestProduction(ctx context.Context, warehouseOrderID kernel.ID) (kernel.ID, error) {
	var id kernel.ID
	err := inTransaction(ctx, r.uowFactory, func(uow ports.UnitOfWork) error {
		warehouses := uow.WarehouseOrderRepository()
		order, err := warehouses.Get(ctx, warehouseOrderID)
		if err != nil {
			return err
		}
		if existing := order.ProductionOrderID(); existing != nil {
			id = *existing
			return nil
		}
		if id, err = r.linkProductionOrder(ctx, uow, order, order.Items()); err != nil {
			return err
		}
		return warehouses.Update(ctx, order)
	})
	return id, err
}

// linkProductionOrder raises a production order for items unless one is already linked.
func (r *ScenarioRouter) linkProductionOrder(
	ctx context.Context,
	uow ports.UnitOfWork,
	order *warehouseorder.WarehouseOrder,
	items []kernel.Item,
) (kernel.ID, error) {
	if existing := order.ProductionOrderID(); existing != nil {
		return *existing, nil
	}
	if order.TriggerScenario() != kernel.ProductionRequired {
		return 0, errs.NewInvalidStateTransitionError(
			"warehouse order", order.ID(), order.Status().String(), "request production for")
	}
	if len(items) == 0 {
		items = order.Items()
	}

	id, err := r.addProductionOrder(ctx, uow, func(id kernel.ID) (*productionorder.ProductionOrder, error) {
		return productionorder.NewForWarehouseOrder(
			id, order.ID(), productionItems(items), productionorder.Normal, dueDate())
	})
	if err != nil {
		return 0, err
	}
	if err = order.LinkProductionOrder(id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ScenarioRouter) addProductionOrder(
	ctx context.Context,
	uow ports.UnitOfWork,
	build func(id kernel.ID) (*productionorder.ProductionOrder, error),
) (kernel.ID, error) {
	repo := uow.ProductionOrderRepository()
	id, err := repo.NextID(ctx)
	if err != nil {
		return 0, err
	}
	order, err := build(id)
	if err != nil {
		return 0, err
	}
	if err = repo.Add(ctx, order); err != nil {
		return 0, err
	}
	metrics.RecordTransition(kernel.ProductionOrderType.String(), productionorder.Created.String())
	return id, nil
}

func productionItems(items []kernel.Item) []productionorder.Item {
	converted := make([]productionorder.Item, 0, len(items))
	for _, item := range items {
		converted = append(converted, productionorder.Item{
			ItemType:        item.Type,
			ItemID:          item.ID,
			Quantity:        item.Quantity,
			WorkstationType: productionorder.WorkstationTypeFor(item.Type),
		})
	}
	return converted
}

func dueDate() time.Time {
	return time.Now().UTC().Add(defaultLeadTime)
}
