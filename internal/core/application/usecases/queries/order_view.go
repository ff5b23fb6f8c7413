// Package queries contains read-only operations. Handlers read through the unit of work
// without starting a transaction, so results are snapshots that may trail a cascade in
// progress.
package queries

import (
	"strconv"
	"time"

	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/supplyorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
)

// OrderView is the read model shared by every level of the hierarchy. Links holds the
// ids of related orders keyed by their order type; Attributes holds level specific
// values such as priority or workstation kind.
type OrderView struct {
	ID          kernel.ID
	Number      string
	Type        kernel.OrderType
	Status      string
	Items       []ItemView
	Steps       []StepView
	Links       map[kernel.OrderType]kernel.ID
	Attributes  map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	Version     int64
}

type ItemView struct {
	Type     string
	ID       kernel.ID
	Quantity int
	// Role is "output" or "input" for workstation orders and empty elsewhere.
	Role string
}

type StepView struct {
	Sequence  int
	ItemID    kernel.ID
	ItemName  string
	Quantity  int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

func itemViews(items []kernel.Item, role string) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ItemView{Type: item.Type.String(), ID: item.ID, Quantity: item.Quantity, Role: role})
	}
	return views
}

func link(links map[kernel.OrderType]kernel.ID, orderType kernel.OrderType, id *kernel.ID) {
	if id != nil {
		links[orderType] = *id
	}
}

func customerOrderView(o *customerorder.CustomerOrder) OrderView {
	items := make([]kernel.Item, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		items = append(items, line.Item())
	}
	attributes := map[string]string{}
	if o.Scenario().IsSet() {
		attributes["scenario"] = o.Scenario().String()
	}
	return OrderView{
		ID:          o.ID(),
		Number:      o.Number(),
		Type:        kernel.CustomerOrderType,
		Status:      o.Status().String(),
		Items:       itemViews(items, ""),
		Links:       map[kernel.OrderType]kernel.ID{},
		Attributes:  attributes,
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		CompletedAt: o.CompletedAt(),
		Version:     o.Version(),
	}
}

func warehouseOrderView(o *warehouseorder.WarehouseOrder) OrderView {
	links := map[kernel.OrderType]kernel.ID{kernel.CustomerOrderType: o.CustomerOrderID()}
	link(links, kernel.ProductionOrderType, o.ProductionOrderID())
	attributes := map[string]string{}
	if o.TriggerScenario().IsSet() {
		attributes["scenario"] = o.TriggerScenario().String()
	}
	return OrderView{
		ID:          o.ID(),
		Number:      o.Number(),
		Type:        kernel.WarehouseOrderType,
		Status:      o.Status().String(),
		Items:       itemViews(o.Items(), ""),
		Links:       links,
		Attributes:  attributes,
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		CompletedAt: o.CompletedAt(),
		Version:     o.Version(),
	}
}

func productionOrderView(o *productionorder.ProductionOrder) OrderView {
	links := map[kernel.OrderType]kernel.ID{}
	link(links, kernel.WarehouseOrderType, o.SourceWarehouseOrderID())
	link(links, kernel.CustomerOrderType, o.SourceCustomerOrderID())

	items := make([]ItemView, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemView{
			Type:     item.ItemType.String(),
			ID:       item.ItemID,
			Quantity: item.Quantity,
			Role:     item.WorkstationType.String(),
		})
	}

	attributes := map[string]string{
		"priority": o.Priority().String(),
		"due_date": o.DueDate().Format(time.RFC3339),
	}
	if o.ScheduleID() != "" {
		attributes["schedule_id"] = o.ScheduleID()
	}
	if submitted := o.CompletionSubmittedAt(); submitted != nil {
		attributes["completion_submitted_at"] = submitted.Format(time.RFC3339)
	}
	return OrderView{
		ID:          o.ID(),
		Number:      o.Number(),
		Type:        kernel.ProductionOrderType,
		Status:      o.Status().String(),
		Items:       items,
		Links:       links,
		Attributes:  attributes,
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		CompletedAt: o.CompletedAt(),
		Version:     o.Version(),
	}
}

func controlOrderView(o *controlorder.ControlOrder) OrderView {
	steps := make([]StepView, 0, len(o.Steps()))
	for _, step := range o.Steps() {
		steps = append(steps, StepView(step))
	}
	attributes := map[string]string{
		"category":    o.Category().String(),
		"workstation": strconv.Itoa(int(o.WorkstationID())),
	}
	if started := o.StartedAt(); started != nil {
		attributes["started_at"] = started.Format(time.RFC3339)
	}
	return OrderView{
		ID:          o.ID(),
		Number:      o.Number(),
		Type:        kernel.ControlOrderType,
		Status:      o.Status().String(),
		Steps:       steps,
		Links:       map[kernel.OrderType]kernel.ID{kernel.ProductionOrderType: o.ProductionOrderID()},
		Attributes:  attributes,
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		CompletedAt: o.CompletedAt(),
		Version:     o.Version(),
	}
}

func workstationOrderView(o *workstationorder.WorkstationOrder) OrderView {
	refs := o.References()
	links := map[kernel.OrderType]kernel.ID{}
	link(links, kernel.ControlOrderType, refs.ControlOrderID)
	link(links, kernel.ProductionOrderType, refs.ProductionOrderID)
	link(links, kernel.CustomerOrderType, refs.CustomerOrderID)
	link(links, kernel.WarehouseOrderType, refs.WarehouseOrderID)
	link(links, kernel.SupplyOrderType, o.SupplyOrderID())

	items := itemViews([]kernel.Item{o.Output()}, "output")
	items = append(items, itemViews(o.Inputs(), "input")...)

	attributes := map[string]string{
		"kind":        o.Kind().String(),
		"workstation": strconv.Itoa(int(o.WorkstationID())),
	}
	if started := o.ActualStart(); started != nil {
		attributes["actual_start"] = started.Format(time.RFC3339)
	}
	return OrderView{
		ID:          o.ID(),
		Number:      o.Number(),
		Type:        kernel.WorkstationOrderType,
		Status:      o.Status().String(),
		Items:       items,
		Links:       links,
		Attributes:  attributes,
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		CompletedAt: o.ActualFinish(),
		Version:     o.Version(),
	}
}

func supplyOrderView(o *supplyorder.SupplyOrder) OrderView {
	return OrderView{
		ID:          o.ID(),
		Number:      o.Number(),
		Type:        kernel.SupplyOrderType,
		Status:      o.Status().String(),
		Items:       itemViews(o.Items(), ""),
		Links:       map[kernel.OrderType]kernel.ID{kernel.ControlOrderType: o.SourceControlOrderID()},
		Attributes:  map[string]string{"requesting_workstation": strconv.Itoa(int(o.RequestingWorkstationID()))},
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		CompletedAt: o.CompletedAt(),
		Version:     o.Version(),
	}
}
