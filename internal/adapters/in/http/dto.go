package http

import (
	"time"

	"factory/internal/core/application/notification"
	"factory/internal/core/application/orchestration"
	"factory/internal/core/application/usecases/commands"
	"factory/internal/core/application/usecases/queries"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
)

type Error struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

type LineRequest struct {
	ItemType string `json:"itemType"`
	ItemID   int64  `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type NewCustomerOrder struct {
	Lines []LineRequest `json:"lines"`
}

type StatusOverride struct {
	Status   string `json:"status"`
	Reason   string `json:"reason"`
	Operator string `json:"operator"`
}

type Report struct {
	OK       bool     `json:"ok"`
	Failures []string `json:"failures,omitempty"`
}

func toReport(r notification.Report) Report {
	report := Report{OK: r.OK()}
	for _, failure := range r.Failures() {
		report.Failures = append(report.Failures, failure.Target+": "+failure.Err.Error())
	}
	return report
}

type CreatedOrder struct {
	ID     kernel.ID `json:"id"`
	Number string    `json:"number"`
	Report Report    `json:"report"`
}

type Transition struct {
	OrderID     kernel.ID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	Report      Report    `json:"report"`
}

func toTransition(r commands.TransitionResult) Transition {
	return Transition{OrderID: r.OrderID, OrderNumber: r.OrderNumber, Status: r.Status, Report: toReport(r.Report)}
}

type Routing struct {
	Scenario          string     `json:"scenario"`
	WarehouseOrderID  *kernel.ID `json:"warehouseOrderId,omitempty"`
	ProductionOrderID *kernel.ID `json:"productionOrderId,omitempty"`
	Report            Report     `json:"report"`
}

func toRouting(r orchestration.RoutingResult) Routing {
	return Routing{
		Scenario:          r.Scenario.String(),
		WarehouseOrderID:  r.WarehouseOrderID,
		ProductionOrderID: r.ProductionOrderID,
		Report:            toReport(r.Report),
	}
}

type ProductionRequested struct {
	ProductionOrderID kernel.ID `json:"productionOrderId"`
}

type Fulfillment struct {
	FinalAssemblyOrders []kernel.ID `json:"finalAssemblyOrders"`
	Report              Report      `json:"report"`
}

type Schedule struct {
	ScheduleID    string               `json:"scheduleId"`
	ControlOrders map[string]kernel.ID `json:"controlOrders"`
	Report        Report               `json:"report"`
}

func toSchedule(r orchestration.ScheduleResult) Schedule {
	schedule := Schedule{
		ScheduleID:    r.ScheduleID,
		ControlOrders: make(map[string]kernel.ID, len(r.ControlOrders)),
		Report:        toReport(r.Report),
	}
	for workstationID, id := range r.ControlOrders {
		schedule.ControlOrders[workstationKey(workstationID)] = id
	}
	return schedule
}

type Supply struct {
	SupplyOrders []kernel.ID `json:"supplyOrders"`
	Raised       bool        `json:"raised"`
	Report       Report      `json:"report"`
}

type Dispatch struct {
	WorkstationOrders []kernel.ID `json:"workstationOrders"`
	SupplyOrders      []kernel.ID `json:"supplyOrders"`
	Report            Report      `json:"report"`
}

type Completion struct {
	Duplicate                bool   `json:"duplicate"`
	ControlOrderCompleted    bool   `json:"controlOrderCompleted"`
	ProductionOrderCompleted bool   `json:"productionOrderCompleted"`
	Report                   Report `json:"report"`
}

func toCompletion(r orchestration.CompletionResult) Completion {
	return Completion{
		Duplicate:                r.Duplicate,
		ControlOrderCompleted:    r.ControlOrderCompleted,
		ProductionOrderCompleted: r.ProductionOrderCompleted,
		Report:                   toReport(r.Report),
	}
}

type Item struct {
	Type     string    `json:"type"`
	ID       kernel.ID `json:"id"`
	Quantity int       `json:"quantity"`
	Role     string    `json:"role,omitempty"`
}

type Step struct {
	Sequence        int       `json:"sequence"`
	ItemID          kernel.ID `json:"itemId"`
	ItemName        string    `json:"itemName,omitempty"`
	Quantity        int       `json:"quantity"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
}

type Order struct {
	ID          kernel.ID            `json:"id"`
	Number      string               `json:"number"`
	Type        string               `json:"type"`
	Status      string               `json:"status"`
	Items       []Item               `json:"items,omitempty"`
	Steps       []Step               `json:"steps,omitempty"`
	Links       map[string]kernel.ID `json:"links,omitempty"`
	Attributes  map[string]string    `json:"attributes,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	CompletedAt *time.Time           `json:"completedAt,omitempty"`
	Version     int64                `json:"version"`
}

func toOrder(v queries.OrderView) Order {
	order := Order{
		ID:          v.ID,
		Number:      v.Number,
		Type:        v.Type.String(),
		Status:      v.Status,
		Attributes:  v.Attributes,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		CompletedAt: v.CompletedAt,
		Version:     v.Version,
	}
	for _, item := range v.Items {
		order.Items = append(order.Items, Item(item))
	}
	for _, step := range v.Steps {
		order.Steps = append(order.Steps, Step{
			Sequence:        step.Sequence,
			ItemID:          step.ItemID,
			ItemName:        step.ItemName,
			Quantity:        step.Quantity,
			StartTime:       step.StartTime,
			EndTime:         step.EndTime,
			DurationMinutes: int(step.Duration / time.Minute),
		})
	}
	if len(v.Links) > 0 {
		order.Links = make(map[string]kernel.ID, len(v.Links))
		for orderType, id := range v.Links {
			order.Links[orderType.String()] = id
		}
	}
	return order
}

type Progress struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percent    float64 `json:"percent"`
	IsComplete bool    `json:"isComplete"`
}

type OrderProgress struct {
	OrderID   kernel.ID           `json:"orderId"`
	OrderType string              `json:"orderType"`
	Progress  Progress            `json:"progress"`
	Breakdown map[string]Progress `json:"breakdown,omitempty"`
}

func toOrderProgress(r queries.GetProgressQueryResponse) OrderProgress {
	progress := OrderProgress{
		OrderID:   r.OrderID,
		OrderType: r.OrderType.String(),
		Progress:  Progress(r.Progress),
	}
	if len(r.Breakdown) > 0 {
		progress.Breakdown = make(map[string]Progress, len(r.Breakdown))
		for orderType, p := range r.Breakdown {
			progress.Breakdown[orderType.String()] = Progress(p)
		}
	}
	return progress
}

type StockLevel struct {
	WorkstationID plant.WorkstationID `json:"workstationId"`
	ItemType      string              `json:"itemType"`
	ItemID        kernel.ID           `json:"itemId"`
	Quantity      int                 `json:"quantity"`
}
