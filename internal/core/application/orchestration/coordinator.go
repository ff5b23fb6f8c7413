package orchestration

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"

	"factory/internal/core/application/notification"
	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/supplyorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
	"factory/internal/core/domain/services"
	"factory/internal/core/ports"
	"factory/internal/pkg/errs"
	"factory/internal/pkg/metrics"
)

// DispatchCoordinator pushes work down the hierarchy and routes completed production
// orders to the Modules depot or to final assembly.
type DispatchCoordinator struct {
	uowFactory ports.UnitOfWorkFactory
	cfg        plant.Config
	scheduler  ports.SchedulingService
	catalog    catalog
	stock      stockReader
	gate       services.SupplyGate
	notifier   *notification.Notifier
	logger     *zap.Logger
}

func NewDispatchCoordinator(
	uowFactory ports.UnitOfWorkFactory,
	cfg plant.Config,
	scheduler ports.SchedulingService,
	masterdata ports.Masterdata,
	ledger ports.InventoryLedger,
	notifier *notification.Notifier,
	logger *zap.Logger,
) *DispatchCoordinator {
	return &DispatchCoordinator{
		uowFactory: uowFactory,
		cfg:        cfg,
		scheduler:  scheduler,
		catalog:    catalog{masterdata: masterdata, timeout: cfg.CallTimeout()},
		stock:      stockReader{ledger: ledger, timeout: cfg.CallTimeout()},
		gate:       services.NewSupplyGate(),
		notifier:   notifier,
		logger:     logger.With(zap.String("component", "dispatch-coordinator")),
	}
}

// ScheduleResult describes a scheduling round. A failed scheduling call leaves the
// production order SUBMITTED and shows up in Report only.
type ScheduleResult struct {
	ScheduleID    string
	ControlOrders map[plant.WorkstationID]kernel.ID
	Report        notification.Report
}

// ScheduleProductionOrder submits a CREATED or SUBMITTED production order to the
// scheduling service and creates control orders from the returned plan.
func (c *DispatchCoordinator) ScheduleProductionOrder(ctx context.Context, id kernel.ID) (ScheduleResult, error) {
	var result ScheduleResult
	var request ports.ScheduleRequest

	err := inTransaction(ctx, c.uowFactory, func(uow ports.UnitOfWork) error {
		repo := uow.ProductionOrderRepository()
		order, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}

		if order.Status() == productionorder.Created {
			if err = order.Submit(); err != nil {
				return err
			}
		}
		if order.Status() != productionorder.Submitted {
			return errs.NewInvalidStateTransitionError("production order", id, order.Status().String(), "schedule")
		}
		if err = repo.Update(ctx, order); err != nil {
			return err
		}

		if source := order.SourceWarehouseOrderID(); source != nil {
			if err = c.awaitProduction(ctx, uow, *source); err != nil {
				return err
			}
		}

		request = scheduleRequest(order)
		return nil
	})
	if err != nil {
		return result, err
	}

	var plan ports.ScheduledPlan
	c.notifier.Do(ctx, &result.Report, "scheduling.submit", request.OrderNumber, func(ctx context.Context) error {
		var submitErr error
		plan, submitErr = c.scheduler.Submit(ctx, request)
		return submitErr
	})
	if !result.Report.OK() {
		return result, nil
	}

	err = inTransaction(ctx, c.uowFactory, func(uow ports.UnitOfWork) error {
		repo := uow.ProductionOrderRepository()
		order, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err = order.Schedule(plan.ScheduleID); err != nil {
			return err
		}
		return repo.Update(ctx, order)
	})
	if err != nil {
		return result, err
	}
	metrics.RecordTransition(kernel.ProductionOrderType.String(), productionorder.Scheduled.String())
	result.ScheduleID = plan.ScheduleID

	result.ControlOrders, err = c.CreateControlOrdersFromSchedule(ctx, plan, id)
	return result, err
}

// awaitProduction parks the owning warehouse order while its production order runs.
func (c *DispatchCoordinator) awaitProduction(ctx context.Context, uow ports.UnitOfWork, warehouseOrderID kernel.ID) error {
	repo := uow.WarehouseOrderRepository()
	order, err := repo.Get(ctx, warehouseOrderID)
	if err != nil {
		return err
	}
	if order.Status() != warehouseorder.Confirmed || order.ProductionOrderID() == nil {
		return nil
	}
	if err = order.AwaitProduction(); err != nil {
		return err
	}
	return repo.Update(ctx, order)
}

func scheduleRequest(order *productionorder.ProductionOrder) ports.ScheduleRequest {
	items := order.Items()
	lines := make([]ports.ScheduleLineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, ports.ScheduleLineItem{
			ItemType:        item.ItemType,
			ItemID:          item.ItemID,
			Quantity:        item.Quantity,
			WorkstationType: item.WorkstationType.String(),
		})
	}
	return ports.ScheduleRequest{
		OrderNumber: order.Number(),
		Priority:    order.Priority().String(),
		DueDate:     order.DueDate(),
		LineItems:   lines,
	}
}

type taskGroup struct {
	workstationID plant.WorkstationID
	tasks         []ports.ScheduledTask
}

// groupTasks groups tasks by workstation, ordered by workstation id, each group ordered
// by start time.
func groupTasks(tasks []ports.ScheduledTask) []taskGroup {
	byWorkstation := make(map[plant.WorkstationID][]ports.ScheduledTask)
	for _, task := range tasks {
		byWorkstation[task.WorkstationID] = append(byWorkstation[task.WorkstationID], task)
	}

	groups := make([]taskGroup, 0, len(byWorkstation))
	for id, grouped := range byWorkstation {
		sort.SliceStable(grouped, func(i, j int) bool {
			return grouped[i].StartTime.Before(grouped[j].StartTime)
		})
		groups = append(groups, taskGroup{workstationID: id, tasks: grouped})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].workstationID < groups[j].workstationID
	})
	return groups
}

// CreateControlOrdersFromSchedule creates one control order per distinct workstation of
// the plan. A workstation outside both ranges, or whose order cannot be created, is
// logged and skipped without affecting the others. Workstations that already have a
// control order for this production order keep it.
func (c *DispatchCoordinator) CreateControlOrdersFromSchedule(
	ctx context.Context,
	plan ports.ScheduledPlan,
	productionOrderID kernel.ID,
) (map[plant.WorkstationID]kernel.ID, error) {
	reader := c.uowFactory.Create()
	if _, err := reader.ProductionOrderRepository().Get(ctx, productionOrderID); err != nil {
		return nil, err
	}
	existing, err := reader.ControlOrderRepository().FindByProductionOrderID(ctx, productionOrderID)
	if err != nil {
		return nil, err
	}

	created := make(map[plant.WorkstationID]kernel.ID, len(plan.Tasks))
	for _, control := range existing {
		created[control.WorkstationID()] = control.ID()
	}

	for _, group := range groupTasks(plan.Tasks) {
		log := c.logger.With(
			zap.Int64("production_order_id", int64(productionOrderID)),
			zap.Int("workstation_id", int(group.workstationID)),
		)
		if _, ok := created[group.workstationID]; ok {
			continue
		}

		category, ok := c.cfg.Classify(group.workstationID)
		if !ok {
			log.Warn("workstation is outside the production and assembly ranges, skipped")
			continue
		}

		id, err := c.createControlOrder(ctx, productionOrderID, group, category)
		if err != nil {
			log.Error("failed to create control order", zap.Error(err))
			continue
		}
		created[group.workstationID] = id
		metrics.RecordTransition(kernel.ControlOrderType.String(), controlorder.Pending.String())
	}

	return created, nil
}

func (c *DispatchCoordinator) createControlOrder(
	ctx context.Context,
	productionOrderID kernel.ID,
	group taskGroup,
	category plant.Category,
) (kernel.ID, error) {
	steps := make([]controlorder.Step, 0, len(group.tasks))
	for _, task := range group.tasks {
		steps = append(steps, controlorder.Step{
			ItemID:    task.ItemID,
			ItemName:  task.ItemName,
			Quantity:  task.Quantity,
			StartTime: task.StartTime,
			EndTime:   task.EndTime,
			Duration:  task.Duration,
		})
	}

	var id kernel.ID
	err := inTransaction(ctx, c.uowFactory, func(uow ports.UnitOfWork) error {
		repo := uow.ControlOrderRepository()
		next, err := repo.NextID(ctx)
		if err != nil {
			return err
		}
		order, err := controlorder.NewControlOrder(next, productionOrderID, group.workstationID, category, steps)
		if err != nil {
			return err
		}
		id = next
		return repo.Add(ctx, order)
	})
	return id, err
}

// DispatchResult lists the orders created by a control order dispatch.
type DispatchResult struct {
	WorkstationOrders []kernel.ID
	SupplyOrders      []kernel.ID
	Report            notification.Report
}

type plannedWork struct {
	output  kernel.Item
	inputs  []kernel.Item
	status  workstationorder.Status
	missing []kernel.Item
}

// SupplyResult lists the supply orders standing for a PENDING control order.
type SupplyResult struct {
	SupplyOrders []kernel.ID
	Raised       bool
	Report       notification.Report
}

// RequestControlOrderSupply raises one supply order per step of a PENDING control order
// whose inputs are not in local stock at its workstation. Dispatch is then held until
// one of them is fulfilled. A control order that already has supply orders keeps them
// and nothing new is raised.
func (c *DispatchCoordinator) RequestControlOrderSupply(ctx context.Context, controlOrderID kernel.ID) (SupplyResult, error) {
	var result SupplyResult

	control, err := c.uowFactory.Create().ControlOrderRepository().Get(ctx, controlOrderID)
	if err != nil {
		return result, err
	}
	if control.Status() != controlorder.Pending {
		return result, errs.NewInvalidStateTransitionError(
			"control order", controlOrderID, control.Status().String(), "request supply for")
	}
	kind, ok := c.cfg.KindAt(control.WorkstationID())
	if !ok {
		return result, errs.NewConfigurationInvariantError(
			"control order "+control.Number(),
			fmt.Sprintf("workstation %d has no workstation order kind", control.WorkstationID()),
		)
	}

	planned := c.planWork(ctx, control, kind, &result.Report)

	var raised []*supplyorder.SupplyOrder
	err = inTransaction(ctx, c.uowFactory, func(uow ports.UnitOfWork) error {
		control, err := uow.ControlOrderRepository().Get(ctx, controlOrderID)
		if err != nil {
			return err
		}
		if control.Status() != controlorder.Pending {
			return errs.NewInvalidStateTransitionError(
				"control order", controlOrderID, control.Status().String(), "request supply for")
		}

		existing, err := uow.SupplyOrderRepository().FindByControlOrderID(ctx, controlOrderID)
		if err != nil {
			return err
		}
		for _, supply := range existing {
			result.SupplyOrders = append(result.SupplyOrders, supply.ID())
		}
		if len(existing) > 0 {
			return nil
		}

		for _, work := range planned {
			if work.status != workstationorder.WaitingForParts {
				continue
			}
			supply, err := c.raiseSupply(ctx, uow, control, work.missing)
			if err != nil {
				return err
			}
			raised = append(raised, supply)
			result.SupplyOrders = append(result.SupplyOrders, supply.ID())
		}
		return nil
	})
	if err != nil {
		return SupplyResult{}, err
	}

	result.Raised = len(raised) > 0
	for _, supply := range raised {
		c.publishSupplyRaised(ctx, &result.Report, control, supply)
	}
	return result, nil
}

// DispatchControlOrder moves a PENDING control order to IN_PROGRESS and creates one
// workstation order per step. The dispatch is refused while the control order has
// supply orders and none of them is fulfilled. Orders whose inputs are still not in
// local stock start in WAITING_FOR_PARTS behind an open supply order of the control
// order covering them, or behind a newly raised one.
func (c *DispatchCoordinator) DispatchControlOrder(ctx context.Context, controlOrderID kernel.ID) (DispatchResult, error) {
	var result DispatchResult

	control, err := c.uowFactory.Create().ControlOrderRepository().Get(ctx, controlOrderID)
	if err != nil {
		return result, err
	}
	kind, ok := c.cfg.KindAt(control.WorkstationID())
	if !ok {
		return result, errs.NewConfigurationInvariantError(
			"control order "+control.Number(),
			fmt.Sprintf("workstation %d has no workstation order kind", control.WorkstationID()),
		)
	}

	planned := c.planWork(ctx, control, kind, &result.Report)

	var supplies []*supplyorder.SupplyOrder
	err = inTransaction(ctx, c.uowFactory, func(uow ports.UnitOfWork) error {
		controls := uow.ControlOrderRepository()
		control, err := controls.Get(ctx, controlOrderID)
		if err != nil {
			return err
		}
		existing, err := uow.SupplyOrderRepository().FindByControlOrderID(ctx, controlOrderID)
		if err != nil {
			return err
		}
		if err = c.gate.CanDispatch(control, existing); err != nil {
			return err
		}
		open := openSupplies(existing)
		if err = control.Dispatch(); err != nil {
			return err
		}

		production, err := c.startProduction(ctx, uow, control.ProductionOrderID())
		if err != nil {
			return err
		}
		refs := workstationorder.References{
			ControlOrderID:    control.ID().Ptr(),
			ProductionOrderID: production.ID().Ptr(),
			WarehouseOrderID:  production.SourceWarehouseOrderID(),
			CustomerOrderID:   production.SourceCustomerOrderID(),
		}

		for _, work := range planned {
			var linked *supplyorder.SupplyOrder
			if work.status == workstationorder.WaitingForParts {
				linked, open = claimSupply(open, work.missing)
			}
			wsID, supply, err := c.addWorkstationOrder(ctx, uow, control, kind, work, linked, refs)
			if err != nil {
				return err
			}
			result.WorkstationOrders = append(result.WorkstationOrders, wsID)
			if supply != nil {
				supplies = append(supplies, supply)
				result.SupplyOrders = append(result.SupplyOrders, supply.ID())
			}
		}

		return controls.Update(ctx, control)
	})
	if err != nil {
		return DispatchResult{}, err
	}

	metrics.RecordTransition(kernel.ControlOrderType.String(), controlorder.InProgress.String())
	c.notifier.Publish(ctx, &result.Report, ports.OrderEvent{
		Type:        ports.EventOrderStatusChanged,
		OrderType:   kernel.ControlOrderType.String(),
		OrderID:     control.ID(),
		OrderNumber: control.Number(),
		Status:      controlorder.InProgress.String(),
	})
	for _, supply := range supplies {
		c.publishSupplyRaised(ctx, &result.Report, control, supply)
	}

	return result, nil
}

func (c *DispatchCoordinator) publishSupplyRaised(
	ctx context.Context,
	report *notification.Report,
	control *controlorder.ControlOrder,
	supply *supplyorder.SupplyOrder,
) {
	c.notifier.Publish(ctx, report, ports.OrderEvent{
		Type:        ports.EventSupplyOrderRaised,
		OrderType:   kernel.SupplyOrderType.String(),
		OrderID:     supply.ID(),
		OrderNumber: supply.Number(),
		Status:      supply.Status().String(),
		Attributes: map[string]string{
			"control_order":          control.Number(),
			"requesting_workstation": fmt.Sprint(supply.RequestingWorkstationID()),
		},
	})
}

func openSupplies(supplies []*supplyorder.SupplyOrder) []*supplyorder.SupplyOrder {
	open := make([]*supplyorder.SupplyOrder, 0, len(supplies))
	for _, supply := range supplies {
		if supply.IsOpen() {
			open = append(open, supply)
		}
	}
	return open
}

// claimSupply takes the first open supply order that brings any of the missing items.
func claimSupply(
	open []*supplyorder.SupplyOrder,
	missing []kernel.Item,
) (*supplyorder.SupplyOrder, []*supplyorder.SupplyOrder) {
	for i, supply := range open {
		for _, item := range supply.Items() {
			for _, need := range missing {
				if item.Type == need.Type && item.ID == need.ID {
					return supply, slices.Delete(slices.Clone(open), i, i+1)
				}
			}
		}
	}
	return nil, open
}

// planWork resolves inputs and the initial status of every step before any write. A
// failed lookup is recorded and the step is planned without that information.
func (c *DispatchCoordinator) planWork(
	ctx context.Context,
	control *controlorder.ControlOrder,
	kind plant.Kind,
	report *notification.Report,
) []plannedWork {
	steps := control.Steps()
	planned := make([]plannedWork, 0, len(steps))
	for _, step := range steps {
		work := plannedWork{
			output: kernel.Item{Type: kind.OutputItemType(), ID: step.ItemID, Quantity: step.Quantity},
			status: workstationorder.Pending,
		}

		if kind.RequiresInputs() {
			c.notifier.Do(ctx, report, "masterdata.lookup", work.output.String(), func(ctx context.Context) error {
				var err error
				work.inputs, err = c.catalog.components(ctx, work.output)
				return err
			})

			local := services.NewStockSnapshot()
			if len(work.inputs) > 0 {
				c.notifier.Do(ctx, report, "inventory.stock_level", fmt.Sprintf("ws %d", control.WorkstationID()),
					func(ctx context.Context) error {
						snapshot, err := c.stock.snapshot(ctx, control.WorkstationID(), work.inputs)
						if err == nil {
							local = snapshot
						}
						return err
					})
			}
			work.status, work.missing = c.gate.InitialStatus(kind, work.inputs, local)
		}

		planned = append(planned, work)
	}
	return planned
}

// startProduction moves a SCHEDULED production order to IN_PROGRESS with its first dispatch.
func (c *DispatchCoordinator) startProduction(
	ctx context.Context,
	uow ports.UnitOfWork,
	productionOrderID kernel.ID,
) (*productionorder.ProductionOrder, error) {
	repo := uow.ProductionOrderRepository()
	order, err := repo.Get(ctx, productionOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status() != productionorder.Scheduled {
		return order, nil
	}
	if err = order.Start(); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, order); err != nil {
		return nil, err
	}
	metrics.RecordTransition(kernel.ProductionOrderType.String(), productionorder.InProgress.String())
	return order, nil
}

func (c *DispatchCoordinator) addWorkstationOrder(
	ctx context.Context,
	uow ports.UnitOfWork,
	control *controlorder.ControlOrder,
	kind plant.Kind,
	work plannedWork,
	linked *supplyorder.SupplyOrder,
	refs workstationorder.References,
) (kernel.ID, *supplyorder.SupplyOrder, error) {
	orders := uow.WorkstationOrderRepository()
	id, err := orders.NextID(ctx)
	if err != nil {
		return 0, nil, err
	}
	order, err := workstationorder.NewWorkstationOrder(id, kind, control.WorkstationID(), work.output, work.inputs, refs)
	if err != nil {
		return 0, nil, err
	}

	var supply *supplyorder.SupplyOrder
	if work.status == workstationorder.WaitingForParts {
		gating := linked
		if gating == nil {
			supply, err = c.raiseSupply(ctx, uow, control, work.missing)
			if err != nil {
				return 0, nil, err
			}
			gating = supply
		}
		if err = order.MarkWaitingForParts(gating.ID()); err != nil {
			return 0, nil, err
		}
	}

	if err = orders.Add(ctx, order); err != nil {
		return 0, nil, err
	}
	return id, supply, nil
}

func (c *DispatchCoordinator) raiseSupply(
	ctx context.Context,
	uow ports.UnitOfWork,
	control *controlorder.ControlOrder,
	missing []kernel.Item,
) (*supplyorder.SupplyOrder, error) {
	supplies := uow.SupplyOrderRepository()
	id, err := supplies.NextID(ctx)
	if err != nil {
		return nil, err
	}
	supply, err := supplyorder.NewSupplyOrder(id, control.ID(), control.WorkstationID(), missing)
	if err != nil {
		return nil, err
	}
	if err = supplies.Add(ctx, supply); err != nil {
		return nil, err
	}
	return supply, nil
}

// SubmitProductionOrderCompletion routes a COMPLETED production order to its consumer.
// Warehouse sourced orders credit the Modules depot and make their warehouse order ready
// for fulfillment; customer sourced orders credit final assembly and get one
// FINAL_ASSEMBLY workstation order per product line. The routing runs at most once per
// production order; later calls are no-ops with an empty report.
func (c *DispatchCoordinator) SubmitProductionOrderCompletion(
	ctx context.Context,
	productionOrderID kernel.ID,
) (notification.Report, error) {
	var report notification.Report

	reader := c.uowFactory.Create()
	order, err := reader.ProductionOrderRepository().Get(ctx, productionOrderID)
	if err != nil {
		return report, err
	}
	if !order.IsCompleted() {
		return report, errs.NewInvalidStateTransitionError(
			"production order", productionOrderID, order.Status().String(), "submit completion of")
	}
	if order.CompletionSubmittedAt() != nil {
		return report, nil
	}

	switch {
	case order.SourceWarehouseOrderID() != nil:
		return c.routeToModulesDepot(ctx, productionOrderID)
	case order.SourceCustomerOrderID() != nil:
		return c.routeToFinalAssembly(ctx, productionOrderID, *order.SourceCustomerOrderID())
	default:
		return report, errs.NewConfigurationInvariantError(
			"production order "+order.Number(), "neither source warehouse order nor source customer order is set")
	}
}

// claimCompletion marks the production order as routed inside uow. It returns false when
// another caller already did.
func claimCompletion(
	ctx context.Context,
	uow ports.UnitOfWork,
	productionOrderID kernel.ID,
) (*productionorder.ProductionOrder, bool, error) {
	repo := uow.ProductionOrderRepository()
	order, err := repo.Get(ctx, productionOrderID)
	if err != nil {
		return nil, false, err
	}
	claimed, err := order.MarkCompletionSubmitted()
	if err != nil || !claimed {
		return order, false, err
	}
	if err = repo.Update(ctx, order); err != nil {
		return nil, false, err
	}
	return order, true, nil
}

func (c *DispatchCoordinator) routeToModulesDepot(
	ctx context.Context,
	productionOrderID kernel.ID,
) (notification.Report, error) {
	var report notification.Report
	var production *productionorder.ProductionOrder
	var warehouse *warehouseorder.WarehouseOrder
	var claimed, flipped bool

	err := inTransaction(ctx, c.uowFactory, func(uow ports.UnitOfWork) error {
		var err error
		production, claimed, err = claimCompletion(ctx, uow, productionOrderID)
		if err != nil || !claimed {
			return err
		}

		repo := uow.WarehouseOrderRepository()
		warehouse, err = repo.Get(ctx, *production.SourceWarehouseOrderID())
		if err != nil {
			return err
		}
		if flipped = warehouse.MarkReadyForFulfillment(); flipped {
			return repo.Update(ctx, warehouse)
		}
		return nil
	})
	if err != nil || !claimed {
		return report, err
	}

	for _, item := range production.Items() {
		c.notifier.Credit(ctx, &report, c.cfg.ModulesDepot(), item.Stock(), ports.ReasonProduction, production.Number())
	}

	log := c.logger.With(
		zap.String("production_order", production.Number()),
		zap.String("warehouse_order", warehouse.Number()),
		zap.Int64("customer_order_id", int64(warehouse.CustomerOrderID())),
	)
	if !flipped {
		log.Warn("warehouse order left untouched by production completion",
			zap.String("status", warehouse.Status().String()))
		return report, nil
	}

	metrics.RecordTransition(kernel.WarehouseOrderType.String(), warehouseorder.Confirmed.String())
	log.Info("modules credited to depot, customer order ready for fulfillment")
	c.notifier.Publish(ctx, &report, ports.OrderEvent{
		Type:        ports.EventCustomerOrderReady,
		OrderType:   kernel.WarehouseOrderType.String(),
		OrderID:     warehouse.ID(),
		OrderNumber: warehouse.Number(),
		Status:      warehouse.Status().String(),
		Attributes: map[string]string{
			"customer_order_id": warehouse.CustomerOrderID().String(),
			"production_order":  production.Number(),
			"trigger_scenario":  warehouse.TriggerScenario().String(),
		},
	})
	return report, nil
}

func (c *DispatchCoordinator) routeToFinalAssembly(
	ctx context.Context,
	productionOrderID, customerOrderID kernel.ID,
) (notification.Report, error) {
	var report notification.Report

	customer, err := c.uowFactory.Create().CustomerOrderRepository().Get(ctx, customerOrderID)
	if err != nil {
		return report, err
	}
	inputs := c.finalAssemblyInputs(ctx, customer.ProductLines(), &report)

	var production *productionorder.ProductionOrder
	var claimed bool
	var created []*workstationorder.WorkstationOrder
	err = inTransaction(ctx, c.uowFactory, func(uow ports.UnitOfWork) error {
		var err error
		production, claimed, err = claimCompletion(ctx, uow, productionOrderID)
		if err != nil || !claimed {
			return err
		}

		refs := workstationorder.References{
			ProductionOrderID: production.ID().Ptr(),
			CustomerOrderID:   customer.ID().Ptr(),
		}
		created, err = c.addFinalAssemblyOrders(ctx, uow, customer.ProductLines(), inputs, refs)
		return err
	})
	if err != nil || !claimed {
		return report, err
	}

	finalAssembly := c.cfg.Workstation(plant.FinalAssembly)
	for _, item := range production.Items() {
		c.notifier.Credit(ctx, &report, finalAssembly, item.Stock(), ports.ReasonProduction, production.Number())
	}

	c.logger.Info("production credited to final assembly",
		zap.String("production_order", production.Number()),
		zap.String("customer_order", customer.Number()),
		zap.Int("final_assembly_orders", len(created)),
	)
	c.notifier.Publish(ctx, &report, ports.OrderEvent{
		Type:        ports.EventProductionOrderRouted,
		OrderType:   kernel.ProductionOrderType.String(),
		OrderID:     production.ID(),
		OrderNumber: production.Number(),
		Status:      production.Status().String(),
		Attributes: map[string]string{
			"route":          "final_assembly",
			"customer_order": customer.Number(),
		},
	})
	return report, nil
}

// finalAssemblyInputs looks up the modules of every product line. Failed lookups are
// recorded and leave the line without inputs.
func (c *DispatchCoordinator) finalAssemblyInputs(
	ctx context.Context,
	lines []customerorder.Line,
	report *notification.Report,
) map[kernel.ID][]kernel.Item {
	inputs := make(map[kernel.ID][]kernel.Item, len(lines))
	for _, line := range lines {
		item := line.Item()
		c.notifier.Do(ctx, report, "masterdata.lookup", item.String(), func(ctx context.Context) error {
			components, err := c.catalog.components(ctx, item)
			if err == nil {
				inputs[item.ID] = components
			}
			return err
		})
	}
	return inputs
}

func (c *DispatchCoordinator) addFinalAssemblyOrders(
	ctx context.Context,
	uow ports.UnitOfWork,
	lines []customerorder.Line,
	inputs map[kernel.ID][]kernel.Item,
	refs workstationorder.References,
) ([]*workstationorder.WorkstationOrder, error) {
	repo := uow.WorkstationOrderRepository()
	created := make([]*workstationorder.WorkstationOrder, 0, len(lines))
	for _, line := range lines {
		id, err := repo.NextID(ctx)
		if err != nil {
			return nil, err
		}
		order, err := workstationorder.NewWorkstationOrder(
			id,
			plant.FinalAssembly,
			c.cfg.Workstation(plant.FinalAssembly),
			line.Item(),
			inputs[line.ItemID],
			refs,
		)
		if err != nil {
			return nil, err
		}
		if err = repo.Add(ctx, order); err != nil {
			return nil, err
		}
		created = append(created, order)
	}
	return created, nil
}

// FulfillResult lists the final assembly orders dispatched for a warehouse order.
type FulfillResult struct {
	FinalAssemblyOrders []kernel.ID
	Report              notification.Report
}

// FulfillWarehouseOrder starts fulfillment of a CONFIRMED/DIRECT_FULFILLMENT warehouse
// order: modules move from the Modules depot to final assembly and one FINAL_ASSEMBLY
// workstation order is dispatched per product line of the customer order. An order
// without product lines is fulfilled right away.
func (c *DispatchCoordinator) FulfillWarehouseOrder(ctx context.Context, warehouseOrderID kernel.ID) (FulfillResult, error) {
	var result FulfillResult

	reader := c.uowFactory.Create()
	warehouse, err := reader.WarehouseOrderRepository().Get(ctx, warehouseOrderID)
	if err != nil {
		return result, err
	}
	customer, err := reader.CustomerOrderRepository().Get(ctx, warehouse.CustomerOrderID())
	if err != nil {
		return result, err
	}
	inputs := c.finalAssemblyInputs(ctx, customer.ProductLines(), &result.Report)

	err = inTransaction(ctx, c.uowFactory, func(uow ports.UnitOfWork) error {
		repo := uow.WarehouseOrderRepository()
		order, err := repo.Get(ctx, warehouseOrderID)
		if err != nil {
			return err
		}
		if err = order.StartFulfillment(); err != nil {
			return err
		}

		refs := workstationorder.References{
			WarehouseOrderID: order.ID().Ptr(),
			CustomerOrderID:  customer.ID().Ptr(),
		}
		created, err := c.addFinalAssemblyOrders(ctx, uow, customer.ProductLines(), inputs, refs)
		if err != nil {
			return err
		}
		for _, ws := range created {
			result.FinalAssemblyOrders = append(result.FinalAssemblyOrders, ws.ID())
		}
		if len(created) == 0 {
			if err = order.Fulfill(); err != nil {
				return err
			}
		}

		warehouse = order
		return repo.Update(ctx, order)
	})
	if err != nil {
		return FulfillResult{}, err
	}

	finalAssembly := c.cfg.Workstation(plant.FinalAssembly)
	for _, item := range warehouse.Items() {
		c.notifier.Debit(ctx, &result.Report, c.cfg.ModulesDepot(), item, ports.ReasonFulfillment, warehouse.Number())
		c.notifier.Credit(ctx, &result.Report, finalAssembly, item, ports.ReasonSupply, warehouse.Number())
	}

	metrics.RecordTransition(kernel.WarehouseOrderType.String(), warehouse.Status().String())
	c.notifier.Publish(ctx, &result.Report, ports.OrderEvent{
		Type:        ports.EventOrderStatusChanged,
		OrderType:   kernel.WarehouseOrderType.String(),
		OrderID:     warehouse.ID(),
		OrderNumber: warehouse.Number(),
		Status:      warehouse.Status().String(),
	})
	return result, nil
}
