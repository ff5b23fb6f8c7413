package ports

import (
	"context"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
)

// StockReason is recorded with every ledger movement.
type StockReason string

const (
	ReasonProduction  StockReason = "PRODUCTION"
	ReasonFulfillment StockReason = "FULFILLMENT"
	ReasonConsumption StockReason = "CONSUMPTION"
	ReasonSupply      StockReason = "SUPPLY"
)

// InventoryLedger moves stock of (workstation, item) pairs. Calls express intent and are
// not guaranteed exactly once; callers make sure they issue each movement only once.
type InventoryLedger interface {
	CreditStock(ctx context.Context, workstationID plant.WorkstationID, item kernel.Item, reason StockReason, note string) error
	DebitStock(ctx context.Context, workstationID plant.WorkstationID, item kernel.Item, reason StockReason, note string) error
	// StockLevel returns the quantity on hand; unknown items have zero stock.
	StockLevel(ctx context.Context, workstationID plant.WorkstationID, itemType kernel.ItemType, itemID kernel.ID) (int, error)
}
