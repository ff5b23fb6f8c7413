package orchestration_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
	"factory/internal/core/ports"
	"factory/internal/pkg/errs"
)

// dispatched schedules and dispatches every control order of a fresh production order.
func (h *harness) dispatched(t *testing.T, tasks ...ports.ScheduledTask) (kernel.ID, map[plant.WorkstationID][]kernel.ID) {
	t.Helper()
	productionID, controls := h.scheduled(t, tasks...)
	orders := make(map[plant.WorkstationID][]kernel.ID, len(controls))
	for ws, id := range controls {
		result, err := h.coordinator.DispatchControlOrder(t.Context(), id)
		require.NoError(t, err)
		orders[ws] = result.WorkstationOrders
	}
	return productionID, orders
}

func TestCompleteWorkstationOrder_ControlCompletesOnlyWhenAllChildrenDo(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	start := time.Now()
	productionID, orders := h.dispatched(t,
		task(1, part21, 4, start),
		task(1, part22, 4, start.Add(time.Hour)),
		task(1, part21, 2, start.Add(2*time.Hour)),
	)
	children := orders[1]
	require.Len(t, children, 3)
	controlID := *h.workstationOrder(t, children[0]).ControlOrderID()

	for i, id := range children[:2] {
		result := h.startAndComplete(t, id)
		assert.False(t, result.Duplicate)
		assert.False(t, result.ControlOrderCompleted)

		progress, err := h.progress.ControlOrderProgress(ctx, controlID)
		require.NoError(t, err)
		assert.Equal(t, kernel.NewProgress(3, i+1), progress)
	}

	control, err := h.repos().ControlOrderRepository().Get(ctx, controlID)
	require.NoError(t, err)
	assert.Equal(t, controlorder.InProgress, control.Status())

	result := h.startAndComplete(t, children[2])
	assert.True(t, result.ControlOrderCompleted)
	assert.True(t, result.ProductionOrderCompleted)
	assert.True(t, result.Report.OK(), result.Report.String())

	control, err = h.repos().ControlOrderRepository().Get(ctx, controlID)
	require.NoError(t, err)
	assert.Equal(t, controlorder.Completed, control.Status())

	production, err := h.repos().ProductionOrderRepository().Get(ctx, productionID)
	require.NoError(t, err)
	assert.Equal(t, productionorder.Completed, production.Status())
	assert.NotNil(t, production.CompletionSubmittedAt())

	produced := h.ledger.creditsAt(1)
	require.Len(t, produced, 3)
	for _, credit := range produced {
		assert.Equal(t, ports.ReasonProduction, credit.Reason)
	}
	assert.Len(t, h.ledger.creditsAt(h.cfg.ModulesDepot()), len(production.Items()))

	warehouse, err := h.repos().WarehouseOrderRepository().Get(ctx, *production.SourceWarehouseOrderID())
	require.NoError(t, err)
	assert.Equal(t, warehouseorder.Confirmed, warehouse.Status())
	assert.Equal(t, kernel.DirectFulfillment, warehouse.TriggerScenario())
}

func TestCompleteWorkstationOrder_DuplicateNotificationIsIgnored(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	_, orders := h.dispatched(t, task(1, part21, 4, time.Now()))
	id := orders[1][0]

	first := h.startAndComplete(t, id)
	assert.False(t, first.Duplicate)
	assert.True(t, first.ControlOrderCompleted)
	depotCredits := len(h.ledger.creditsAt(h.cfg.ModulesDepot()))

	second, err := h.propagator.CompleteWorkstationOrder(ctx, id)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.False(t, second.ControlOrderCompleted)
	assert.False(t, second.ProductionOrderCompleted)

	assert.Len(t, h.ledger.creditsAt(1), 1)
	assert.Len(t, h.ledger.creditsAt(h.cfg.ModulesDepot()), depotCredits)
}

func TestCompleteWorkstationOrder_RejectsOrderThatNeverStarted(t *testing.T) {
	h := newHarness(t)
	_, orders := h.dispatched(t, task(1, part21, 4, time.Now()))

	_, err := h.propagator.CompleteWorkstationOrder(t.Context(), orders[1][0])
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	assert.Empty(t, h.ledger.credits)
}

func TestCompleteWorkstationOrder_LedgerFailureKeepsCompletion(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	_, orders := h.dispatched(t, task(1, part21, 4, time.Now()))
	id := orders[1][0]
	h.start(t, id)
	h.ledger.creditErr = assert.AnError

	result, err := h.propagator.CompleteWorkstationOrder(ctx, id)
	require.NoError(t, err)
	assert.False(t, result.Report.OK())
	assert.True(t, result.ControlOrderCompleted)
	assert.True(t, result.ProductionOrderCompleted)

	failures := result.Report.Failures()
	require.NotEmpty(t, failures)
	assert.True(t, strings.HasPrefix(failures[0].Target, "inventory.credit"), failures[0].Target)
	assert.ErrorIs(t, result.Report.Err(), assert.AnError)

	assert.Equal(t, workstationorder.Completed, h.workstationOrder(t, id).Status())
}

// inProgressProduction stores a started production order together with a dispatched
// control order that has no workstation orders.
func (h *harness) inProgressProduction(t *testing.T) (kernel.ID, kernel.ID) {
	t.Helper()
	ctx := t.Context()
	_, productionID := h.productionRequired(t)

	productions := h.repos().ProductionOrderRepository()
	production, err := productions.Get(ctx, productionID)
	require.NoError(t, err)
	require.NoError(t, production.Submit())
	require.NoError(t, production.Schedule("S-1"))
	require.NoError(t, production.Start())
	require.NoError(t, productions.Update(ctx, production))

	controls := h.repos().ControlOrderRepository()
	id, err := controls.NextID(ctx)
	require.NoError(t, err)
	control, err := controlorder.NewControlOrder(id, productionID, 1, plant.Production, []controlorder.Step{
		{ItemID: part21, Quantity: 1},
	})
	require.NoError(t, err)
	require.NoError(t, control.Dispatch())
	require.NoError(t, controls.Add(ctx, control))
	return productionID, id
}

func TestReconcileControlOrder_WithoutChildrenNeverCompletes(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	productionID, controlID := h.inProgressProduction(t)

	result, err := h.propagator.ReconcileControlOrder(ctx, controlID)
	require.NoError(t, err)
	assert.False(t, result.ControlOrderCompleted)

	progress, err := h.progress.ControlOrderProgress(ctx, controlID)
	require.NoError(t, err)
	assert.Equal(t, kernel.NewProgress(0, 0), progress)
	assert.Zero(t, progress.Percent())

	production, err := h.repos().ProductionOrderRepository().Get(ctx, productionID)
	require.NoError(t, err)
	assert.Equal(t, productionorder.InProgress, production.Status())
}

func TestCompleteProductionOrder_WithoutControlOrdersIsRejected(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	_, productionID := h.productionRequired(t)

	_, err := h.propagator.CompleteProductionOrder(ctx, productionID)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	assert.Contains(t, err.Error(), "0 of 0")

	progress, err := h.progress.ProductionOrderProgress(ctx, productionID)
	require.NoError(t, err)
	assert.Zero(t, progress.Total)
	assert.Zero(t, progress.Percent())

	result, err := h.propagator.ReconcileProductionOrder(ctx, productionID)
	require.NoError(t, err)
	assert.False(t, result.ProductionOrderCompleted)
}

func TestCompleteProductionOrder_ReportsPartialProgress(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	start := time.Now()
	h.ledger.set(4, kernel.Part, part21, 100)
	productionID, orders := h.dispatched(t, task(1, part21, 4, start), task(4, module11, 2, start.Add(time.Hour)))

	result := h.startAndComplete(t, orders[1][0])
	assert.True(t, result.ControlOrderCompleted)
	assert.False(t, result.ProductionOrderCompleted)

	progress, err := h.progress.ProductionOrderProgress(ctx, productionID)
	require.NoError(t, err)
	assert.Equal(t, kernel.NewProgress(2, 1), progress)
	assert.InDelta(t, 50.0, progress.Percent(), 0.001)

	_, err = h.propagator.CompleteProductionOrder(ctx, productionID)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	assert.Contains(t, err.Error(), "1 of 2")

	result = h.startAndComplete(t, orders[4][0])
	assert.True(t, result.ControlOrderCompleted)
	assert.True(t, result.ProductionOrderCompleted)
}

func TestCompleteProductionOrder_RetriesLostRouting(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	warehouse, production := h.addAwaitingWarehouseOrder(t, moduleItems(5, module11, module12))

	result, err := h.propagator.CompleteProductionOrder(ctx, production.ID())
	require.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.Len(t, h.ledger.creditsAt(h.cfg.ModulesDepot()), 2)

	stored, err := h.repos().WarehouseOrderRepository().Get(ctx, warehouse.ID())
	require.NoError(t, err)
	assert.Equal(t, warehouseorder.Confirmed, stored.Status())

	_, err = h.propagator.CompleteProductionOrder(ctx, production.ID())
	require.NoError(t, err)
	assert.Len(t, h.ledger.creditsAt(h.cfg.ModulesDepot()), 2)
}

func TestCompleteWorkstationOrder_FinalAssemblyFulfillsWarehouseOrder(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	customer := h.addCustomerOrder(t, productLine(t, product1, 1))
	routed, err := h.router.RouteCustomerOrder(ctx, customer.ID())
	require.NoError(t, err)
	h.ledger.set(h.cfg.ModulesDepot(), kernel.Module, module11, 5)
	h.ledger.set(h.cfg.ModulesDepot(), kernel.Module, module12, 5)
	_, err = h.router.ConfirmWarehouseOrder(ctx, *routed.WarehouseOrderID)
	require.NoError(t, err)
	fulfilled, err := h.coordinator.FulfillWarehouseOrder(ctx, *routed.WarehouseOrderID)
	require.NoError(t, err)

	result := h.startAndComplete(t, fulfilled.FinalAssemblyOrders[0])
	assert.True(t, result.Report.OK(), result.Report.String())

	warehouse, err := h.repos().WarehouseOrderRepository().Get(ctx, *routed.WarehouseOrderID)
	require.NoError(t, err)
	assert.Equal(t, warehouseorder.Fulfilled, warehouse.Status())
	assert.NotNil(t, warehouse.CompletedAt())

	ready := h.publisher.ofType(ports.EventCustomerOrderReady)
	require.Len(t, ready, 1)
	assert.Equal(t, customer.ID(), ready[0].OrderID)

	stored, err := h.repos().CustomerOrderRepository().Get(ctx, customer.ID())
	require.NoError(t, err)
	assert.Equal(t, customerorder.Processing, stored.Status())

	products := h.ledger.creditsAt(h.cfg.Workstation(plant.FinalAssembly))
	assert.Equal(t, kernel.Item{Type: kernel.Product, ID: product1, Quantity: 1}, products[len(products)-1].Item)

	_, err = h.propagator.CompleteWorkstationOrder(ctx, fulfilled.FinalAssemblyOrders[0])
	require.NoError(t, err)
	assert.Len(t, h.publisher.ofType(ports.EventCustomerOrderReady), 1)
}

func TestCustomerOrderProgress_DirectProduction(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	customer := h.addCustomerOrder(t, productLine(t, product1, 5))
	routed, err := h.router.RouteCustomerOrder(ctx, customer.ID())
	require.NoError(t, err)

	progress, err := h.progress.CustomerOrderProgress(ctx, customer.ID())
	require.NoError(t, err)
	assert.Equal(t, kernel.NewProgress(1, 0), progress.ProductionOrders)
	assert.Zero(t, progress.FinalAssembly.Total)

	h.completeProduction(t, *routed.ProductionOrderID)
	result, err := h.propagator.CompleteProductionOrder(ctx, *routed.ProductionOrderID)
	require.NoError(t, err)
	assert.True(t, result.Duplicate)

	progress, err = h.progress.CustomerOrderProgress(ctx, customer.ID())
	require.NoError(t, err)
	assert.Equal(t, kernel.NewProgress(1, 1), progress.ProductionOrders)
	assert.Equal(t, kernel.NewProgress(1, 0), progress.FinalAssembly)

	orders, err := h.repos().WorkstationOrderRepository().FindByCustomerOrderID(ctx, customer.ID())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	h.startAndComplete(t, orders[0].ID())

	progress, err = h.progress.CustomerOrderProgress(ctx, customer.ID())
	require.NoError(t, err)
	assert.Equal(t, kernel.NewProgress(1, 1), progress.FinalAssembly)
	assert.Len(t, h.publisher.ofType(ports.EventCustomerOrderReady), 1)
}
