package ports

import (
	"context"
	"time"

	"factory/internal/core/domain/model/kernel"
)

const (
	EventOrderStatusChanged     = "order.status_changed"
	EventCustomerOrderReady     = "customer_order.ready"
	EventWarehouseOrderOverride = "warehouse_order.status_overridden"
	EventProductionOrderRouted  = "production_order.completion_submitted"
	EventSupplyOrderRaised      = "supply_order.raised"
)

// OrderEvent is an outbound notification about an order. Publishing is best effort and
// happens after the local change has been committed.
type OrderEvent struct {
	ID          string
	Type        string
	OrderType   string
	OrderID     kernel.ID
	OrderNumber string
	Status      string
	Attributes  map[string]string
	OccurredAt  time.Time
}

type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
