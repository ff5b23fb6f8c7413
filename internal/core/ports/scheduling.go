package ports

import (
	"context"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
)

type ScheduleLineItem struct {
	ItemType        kernel.ItemType
	ItemID          kernel.ID
	Quantity        int
	WorkstationType string
}

type ScheduleRequest struct {
	OrderNumber string
	Priority    string
	DueDate     time.Time
	LineItems   []ScheduleLineItem
}

// ScheduledTask is one time slot of the plan at a single workstation.
type ScheduledTask struct {
	WorkstationID plant.WorkstationID
	ItemID        kernel.ID
	ItemName      string
	Quantity      int
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

type ScheduledPlan struct {
	ScheduleID string
	Tasks      []ScheduledTask
}

// SchedulingService turns production line items into a time sequenced plan.
type SchedulingService interface {
	Submit(ctx context.Context, request ScheduleRequest) (ScheduledPlan, error)
}
