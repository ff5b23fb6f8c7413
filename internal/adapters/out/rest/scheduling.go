package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/ports"
	"factory/internal/pkg/errs"
)

var _ ports.SchedulingService = (*SchedulingClient)(nil)

type scheduleLineItemDTO struct {
	ItemType        string `json:"itemType"`
	ItemID          int64  `json:"itemId"`
	Quantity        int    `json:"quantity"`
	WorkstationType string `json:"workstationType"`
}

type scheduleRequestDTO struct {
	OrderNumber string                `json:"orderNumber"`
	Priority    string                `json:"priority"`
	DueDate     time.Time             `json:"dueDate"`
	LineItems   []scheduleLineItemDTO `json:"lineItems"`
}

type scheduledTaskDTO struct {
	WorkstationID   int       `json:"workstationId"`
	ItemID          int64     `json:"itemId"`
	ItemName        string    `json:"itemName"`
	Quantity        int       `json:"quantity"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
}

type scheduledPlanDTO struct {
	ScheduleID string             `json:"scheduleId"`
	Tasks      []scheduledTaskDTO `json:"tasks"`
}

// SchedulingClient submits production line items to the scheduling service.
type SchedulingClient struct {
	client
}

func NewSchedulingClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *SchedulingClient {
	return &SchedulingClient{client: newClient(baseURL, "scheduling", httpClient, logger)}
}

func (c *SchedulingClient) Submit(ctx context.Context, request ports.ScheduleRequest) (ports.ScheduledPlan, error) {
	if len(request.LineItems) == 0 {
		return ports.ScheduledPlan{}, errs.NewValueIsRequiredError("line items")
	}

	body := scheduleRequestDTO{
		OrderNumber: request.OrderNumber,
		Priority:    request.Priority,
		DueDate:     request.DueDate.UTC(),
		LineItems:   make([]scheduleLineItemDTO, 0, len(request.LineItems)),
	}
	for _, item := range request.LineItems {
		body.LineItems = append(body.LineItems, scheduleLineItemDTO{
			ItemType:        item.ItemType.String(),
			ItemID:          int64(item.ItemID),
			Quantity:        item.Quantity,
			WorkstationType: item.WorkstationType,
		})
	}

	var resp scheduledPlanDTO
	if err := c.do(ctx, http.MethodPost, "/api/scheduling/schedules", body, &resp); err != nil {
		return ports.ScheduledPlan{}, err
	}
	if resp.ScheduleID == "" {
		return ports.ScheduledPlan{}, fmt.Errorf("scheduling service returned a plan without id for %s", request.OrderNumber)
	}

	plan := ports.ScheduledPlan{
		ScheduleID: resp.ScheduleID,
		Tasks:      make([]ports.ScheduledTask, 0, len(resp.Tasks)),
	}
	for _, task := range resp.Tasks {
		duration := time.Duration(task.DurationMinutes) * time.Minute
		if duration == 0 && !task.EndTime.IsZero() {
			duration = task.EndTime.Sub(task.StartTime)
		}
		plan.Tasks = append(plan.Tasks, ports.ScheduledTask{
			WorkstationID: plant.WorkstationID(task.WorkstationID),
			ItemID:        kernel.ID(task.ItemID),
			ItemName:      task.ItemName,
			Quantity:      task.Quantity,
			StartTime:     task.StartTime,
			EndTime:       task.EndTime,
			Duration:      duration,
		})
	}
	return plan, nil
}
