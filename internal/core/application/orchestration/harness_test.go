package orchestration_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"factory/internal/adapters/out/memory"
	"factory/internal/core/application/notification"
	"factory/internal/core/application/orchestration"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
	"factory/internal/core/ports"
	"factory/internal/pkg/errs"
)

type movement struct {
	Workstation plant.WorkstationID
	Item        kernel.Item
	Reason      ports.StockReason
	Note        string
}

type stockKey struct {
	workstation plant.WorkstationID
	itemType    kernel.ItemType
	itemID      kernel.ID
}

type fakeLedger struct {
	mu        sync.Mutex
	stock     map[stockKey]int
	credits   []movement
	debits    []movement
	creditErr error
	stockErr  error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{stock: make(map[stockKey]int)}
}

func (l *fakeLedger) set(ws plant.WorkstationID, itemType kernel.ItemType, id kernel.ID, quantity int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stock[stockKey{ws, itemType, id}] = quantity
}

func (l *fakeLedger) CreditStock(
	_ context.Context, ws plant.WorkstationID, item kernel.Item, reason ports.StockReason, note string,
) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.creditErr != nil {
		return l.creditErr
	}
	l.credits = append(l.credits, movement{ws, item, reason, note})
	l.stock[stockKey{ws, item.Type, item.ID}] += item.Quantity
	return nil
}

func (l *fakeLedger) DebitStock(
	_ context.Context, ws plant.WorkstationID, item kernel.Item, reason ports.StockReason, note string,
) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debits = append(l.debits, movement{ws, item, reason, note})
	l.stock[stockKey{ws, item.Type, item.ID}] -= item.Quantity
	return nil
}

func (l *fakeLedger) StockLevel(
	_ context.Context, ws plant.WorkstationID, itemType kernel.ItemType, id kernel.ID,
) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stockErr != nil {
		return 0, l.stockErr
	}
	return l.stock[stockKey{ws, itemType, id}], nil
}

func (l *fakeLedger) creditsAt(ws plant.WorkstationID) []movement {
	l.mu.Lock()
	defer l.mu.Unlock()
	var result []movement
	for _, m := range l.credits {
		if m.Workstation == ws {
			result = append(result, m)
		}
	}
	return result
}

type fakeScheduler struct {
	plan     ports.ScheduledPlan
	err      error
	requests []ports.ScheduleRequest
}

func (s *fakeScheduler) Submit(_ context.Context, request ports.ScheduleRequest) (ports.ScheduledPlan, error) {
	s.requests = append(s.requests, request)
	return s.plan, s.err
}

type fakeMasterdata struct {
	entries map[ports.CatalogKind]map[kernel.ID][]kernel.Item
	err     error
}

func (m *fakeMasterdata) Lookup(_ context.Context, kind ports.CatalogKind, id kernel.ID) (ports.CatalogEntry, error) {
	if m.err != nil {
		return ports.CatalogEntry{}, m.err
	}
	components, ok := m.entries[kind][id]
	if !ok {
		return ports.CatalogEntry{}, errs.NewObjectNotFoundError(string(kind), id)
	}
	return ports.CatalogEntry{Kind: kind, ID: id, Name: string(kind) + " " + id.String(), Components: components}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []ports.OrderEvent
}

func (p *fakePublisher) Publish(_ context.Context, event ports.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) ofType(eventType string) []ports.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var result []ports.OrderEvent
	for _, e := range p.events {
		if e.Type == eventType {
			result = append(result, e)
		}
	}
	return result
}

// Catalog used by the tests:
//
//	product 1 = module 11 x1 + module 12 x2
//	module 11 = part 21 x2, module 12 = part 22 x1
//	part 23   = part 21 x1 (finished from a pre-produced part)
const (
	product1 kernel.ID = 1
	module11 kernel.ID = 11
	module12 kernel.ID = 12
	part21   kernel.ID = 21
	part22   kernel.ID = 22
	part23   kernel.ID = 23
)

func testCatalog() *fakeMasterdata {
	return &fakeMasterdata{entries: map[ports.CatalogKind]map[kernel.ID][]kernel.Item{
		ports.CatalogProduct: {
			product1: {
				{Type: kernel.Module, ID: module11, Quantity: 1},
				{Type: kernel.Module, ID: module12, Quantity: 2},
			},
		},
		ports.CatalogModule: {
			module11: {{Type: kernel.Part, ID: part21, Quantity: 2}},
			module12: {{Type: kernel.Part, ID: part22, Quantity: 1}},
		},
		ports.CatalogPart: {
			part21: nil,
			part22: nil,
			part23: {{Type: kernel.Part, ID: part21, Quantity: 1}},
		},
	}}
}

type harness struct {
	uowFactory  ports.UnitOfWorkFactory
	cfg         plant.Config
	ledger      *fakeLedger
	scheduler   *fakeScheduler
	masterdata  *fakeMasterdata
	publisher   *fakePublisher
	router      *orchestration.ScenarioRouter
	coordinator *orchestration.DispatchCoordinator
	propagator  *orchestration.CompletionPropagator
	progress    orchestration.ProgressReader
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithConfig(t, plant.MustDefault())
}

func newHarnessWithConfig(t *testing.T, cfg plant.Config) *harness {
	t.Helper()

	h := &harness{
		uowFactory: memory.NewUnitOfWorkFactory(memory.NewStore()),
		cfg:        cfg,
		ledger:     newFakeLedger(),
		scheduler:  &fakeScheduler{},
		masterdata: testCatalog(),
		publisher:  &fakePublisher{},
	}

	logger := zap.NewNop()
	notifier := notification.NewNotifier(h.ledger, h.publisher, time.Second, logger)
	h.router = orchestration.NewScenarioRouter(h.uowFactory, h.cfg, h.masterdata, h.ledger, notifier, logger)
	h.coordinator = orchestration.NewDispatchCoordinator(
		h.uowFactory, h.cfg, h.scheduler, h.masterdata, h.ledger, notifier, logger)
	h.propagator = orchestration.NewCompletionPropagator(h.uowFactory, h.coordinator, notifier, logger)
	h.progress = orchestration.NewProgressReader(h.uowFactory)
	return h
}

func (h *harness) repos() ports.UnitOfWork {
	return h.uowFactory.Create()
}

func (h *harness) addCustomerOrder(t *testing.T, lines ...customerorder.Line) *customerorder.CustomerOrder {
	t.Helper()
	ctx := t.Context()
	repo := h.repos().CustomerOrderRepository()
	id, err := repo.NextID(ctx)
	require.NoError(t, err)
	order, err := customerorder.NewCustomerOrder(id, lines)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, order))
	return order
}

func productLine(t *testing.T, id kernel.ID, quantity int) customerorder.Line {
	t.Helper()
	line, err := customerorder.NewLine(kernel.Product, id, quantity)
	require.NoError(t, err)
	return line
}

// addCompletedProductionOrder stores a production order that went through its whole
// lifecycle without control orders.
func (h *harness) addCompletedProductionOrder(
	t *testing.T,
	build func(id kernel.ID) (*productionorder.ProductionOrder, error),
) *productionorder.ProductionOrder {
	t.Helper()
	ctx := t.Context()
	repo := h.repos().ProductionOrderRepository()
	id, err := repo.NextID(ctx)
	require.NoError(t, err)
	order, err := build(id)
	require.NoError(t, err)
	require.NoError(t, order.Submit())
	require.NoError(t, order.Schedule("S-1"))
	require.NoError(t, order.Start())
	require.NoError(t, order.Complete())
	require.NoError(t, repo.Add(ctx, order))
	return order
}

// completeProduction drives a stored production order to COMPLETED.
func (h *harness) completeProduction(t *testing.T, id kernel.ID) {
	t.Helper()
	ctx := t.Context()
	repo := h.repos().ProductionOrderRepository()
	order, err := repo.Get(ctx, id)
	require.NoError(t, err)
	if order.Status() == productionorder.Created {
		require.NoError(t, order.Submit())
	}
	if order.Status() == productionorder.Submitted {
		require.NoError(t, order.Schedule("S-1"))
	}
	if order.Status() == productionorder.Scheduled {
		require.NoError(t, order.Start())
	}
	require.NoError(t, order.Complete())
	require.NoError(t, repo.Update(ctx, order))
}

// addAwaitingWarehouseOrder stores a warehouse order that waits for a completed
// production order of items.
func (h *harness) addAwaitingWarehouseOrder(
	t *testing.T,
	items []productionorder.Item,
) (*warehouseorder.WarehouseOrder, *productionorder.ProductionOrder) {
	t.Helper()
	ctx := t.Context()
	customer := h.addCustomerOrder(t, productLine(t, product1, 2))

	stock := make([]kernel.Item, 0, len(items))
	for _, item := range items {
		stock = append(stock, item.Stock())
	}

	warehouses := h.repos().WarehouseOrderRepository()
	id, err := warehouses.NextID(ctx)
	require.NoError(t, err)
	warehouse, err := warehouseorder.NewWarehouseOrder(id, customer.ID(), stock)
	require.NoError(t, err)
	require.NoError(t, warehouse.Confirm(kernel.ProductionRequired))

	production := h.addCompletedProductionOrder(t, func(id kernel.ID) (*productionorder.ProductionOrder, error) {
		return productionorder.NewForWarehouseOrder(id, warehouse.ID(), items, productionorder.Normal, time.Now())
	})
	require.NoError(t, warehouse.LinkProductionOrder(production.ID()))
	require.NoError(t, warehouse.AwaitProduction())
	require.NoError(t, warehouses.Add(ctx, warehouse))
	return warehouse, production
}

func moduleItems(quantity int, ids ...kernel.ID) []productionorder.Item {
	items := make([]productionorder.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, productionorder.Item{
			ItemType:        kernel.Module,
			ItemID:          id,
			Quantity:        quantity,
			WorkstationType: productionorder.Assembly,
		})
	}
	return items
}

func task(ws plant.WorkstationID, item kernel.ID, quantity int, start time.Time) ports.ScheduledTask {
	return ports.ScheduledTask{
		WorkstationID: ws,
		ItemID:        item,
		ItemName:      "item " + item.String(),
		Quantity:      quantity,
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		Duration:      time.Hour,
	}
}

// startAndComplete runs a workstation order from its initial status to COMPLETED.
func (h *harness) startAndComplete(t *testing.T, id kernel.ID) orchestration.CompletionResult {
	t.Helper()
	h.start(t, id)
	result, err := h.propagator.CompleteWorkstationOrder(t.Context(), id)
	require.NoError(t, err)
	return result
}

func (h *harness) start(t *testing.T, id kernel.ID) {
	t.Helper()
	ctx := t.Context()
	repo := h.repos().WorkstationOrderRepository()
	order, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NoError(t, order.Start())
	require.NoError(t, repo.Update(ctx, order))
}

func (h *harness) workstationOrder(t *testing.T, id kernel.ID) *workstationorder.WorkstationOrder {
	t.Helper()
	order, err := h.repos().WorkstationOrderRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return order
}
