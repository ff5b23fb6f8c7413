// Package orderrepo maps the order aggregates to relational tables. Collections (lines,
// items, steps) are stored as jsonb columns; everything used for lookups gets its own
// indexed column.
package orderrepo

import (
	"time"

	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/productionorder"
)

// Every DTO has an int64 primary key backed by a sequence named <table>_id_seq, a unique
// order number and an optimistic version column.

type CustomerOrderDTO struct {
	ID          int64                `gorm:"primaryKey;autoIncrement"`
	Number      string               `gorm:"size:32;uniqueIndex"`
	Lines       []customerorder.Line `gorm:"serializer:json;type:jsonb"`
	Status      string               `gorm:"size:32;index"`
	Scenario    string               `gorm:"size:32"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	Version     int64
}

func (CustomerOrderDTO) TableName() string {
	return "customer_orders"
}

type WarehouseOrderDTO struct {
	ID                int64         `gorm:"primaryKey;autoIncrement"`
	Number            string        `gorm:"size:32;uniqueIndex"`
	CustomerOrderID   int64         `gorm:"index"`
	Items             []kernel.Item `gorm:"serializer:json;type:jsonb"`
	Status            string        `gorm:"size:32;index"`
	TriggerScenario   string        `gorm:"size:32"`
	ProductionOrderID *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
	Version           int64
}

func (WarehouseOrderDTO) TableName() string {
	return "warehouse_orders"
}

type ProductionOrderDTO struct {
	ID                     int64                  `gorm:"primaryKey;autoIncrement"`
	Number                 string                 `gorm:"size:32;uniqueIndex"`
	SourceWarehouseOrderID *int64                 `gorm:"index"`
	SourceCustomerOrderID  *int64                 `gorm:"index"`
	Items                  []productionorder.Item `gorm:"serializer:json;type:jsonb"`
	Priority               string                 `gorm:"size:16"`
	DueDate                time.Time
	ScheduleID             string `gorm:"size:64"`
	Status                 string `gorm:"size:32;index"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	CompletedAt            *time.Time
	CompletionSubmittedAt  *time.Time
	Version                int64
}

func (ProductionOrderDTO) TableName() string {
	return "production_orders"
}

type ControlOrderDTO struct {
	ID                int64               `gorm:"primaryKey;autoIncrement"`
	Number            string              `gorm:"size:32;uniqueIndex"`
	ProductionOrderID int64               `gorm:"index"`
	WorkstationID     int                 `gorm:"index"`
	Category          string              `gorm:"size:16"`
	Steps             []controlorder.Step `gorm:"serializer:json;type:jsonb"`
	Status            string              `gorm:"size:32;index"`
	StartedAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
	Version           int64
}

func (ControlOrderDTO) TableName() string {
	return "control_orders"
}

type WorkstationOrderDTO struct {
	ID                int64         `gorm:"primaryKey;autoIncrement"`
	Number            string        `gorm:"size:32;uniqueIndex"`
	Kind              string        `gorm:"size:32;index"`
	WorkstationID     int           `gorm:"index"`
	Output            kernel.Item   `gorm:"serializer:json;type:jsonb"`
	Inputs            []kernel.Item `gorm:"serializer:json;type:jsonb"`
	ControlOrderID    *int64        `gorm:"index"`
	ProductionOrderID *int64
	CustomerOrderID   *int64 `gorm:"index"`
	WarehouseOrderID  *int64
	SupplyOrderID     *int64
	Status            string `gorm:"size:32;index"`
	ActualStart       *time.Time
	ActualFinish      *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int64
}

func (WorkstationOrderDTO) TableName() string {
	return "workstation_orders"
}

type SupplyOrderDTO struct {
	ID                      int64         `gorm:"primaryKey;autoIncrement"`
	Number                  string        `gorm:"size:32;uniqueIndex"`
	SourceControlOrderID    int64         `gorm:"index"`
	RequestingWorkstationID int           `gorm:"index"`
	Items                   []kernel.Item `gorm:"serializer:json;type:jsonb"`
	Status                  string        `gorm:"size:32;index"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
	CompletedAt             *time.Time
	Version                 int64
}

func (SupplyOrderDTO) TableName() string {
	return "supply_orders"
}

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&CustomerOrderDTO{},
		&WarehouseOrderDTO{},
		&ProductionOrderDTO{},
		&ControlOrderDTO{},
		&WorkstationOrderDTO{},
		&SupplyOrderDTO{},
	}
}
