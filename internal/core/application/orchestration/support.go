package orchestration

import (
	"context"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/services"
	"factory/internal/core/ports"
)

// defaultLeadTime is the due date offset of production orders raised by routing.
const defaultLeadTime = 7 * 24 * time.Hour

// inTransaction runs fn in a fresh unit of work and commits when fn succeeds.
func inTransaction(ctx context.Context, factory ports.UnitOfWorkFactory, fn func(uow ports.UnitOfWork) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// catalog resolves bills of materials through masterdata.
type catalog struct {
	masterdata ports.Masterdata
	timeout    time.Duration
}

// components returns what item.Quantity units of item are built from.
func (c catalog) components(ctx context.Context, item kernel.Item) ([]kernel.Item, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	entry, err := c.masterdata.Lookup(callCtx, ports.CatalogKindFor(item.Type), item.ID)
	if err != nil {
		return nil, err
	}

	scaled := make([]kernel.Item, 0, len(entry.Components))
	for _, component := range entry.Components {
		component.Quantity *= item.Quantity
		scaled = append(scaled, component)
	}
	return scaled, nil
}

// expandProducts replaces every product by its modules. Items without a composition
// and non-product items pass through unchanged. Equal items are merged in first
// appearance order.
func (c catalog) expandProducts(ctx context.Context, items []kernel.Item) ([]kernel.Item, error) {
	expanded := make([]kernel.Item, 0, len(items))
	for _, item := range items {
		if item.Type != kernel.Product {
			expanded = append(expanded, item)
			continue
		}
		parts, err := c.components(ctx, item)
		if err != nil {
			return nil, err
		}
		if len(parts) == 0 {
			expanded = append(expanded, item)
			continue
		}
		expanded = append(expanded, parts...)
	}
	return mergeItems(expanded), nil
}

func mergeItems(items []kernel.Item) []kernel.Item {
	index := make(map[services.StockKey]int, len(items))
	merged := make([]kernel.Item, 0, len(items))
	for _, item := range items {
		key := services.StockKey{Type: item.Type, ID: item.ID}
		if i, ok := index[key]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// stockReader builds snapshots from the inventory ledger.
type stockReader struct {
	ledger  ports.InventoryLedger
	timeout time.Duration
}

func (r stockReader) snapshot(
	ctx context.Context,
	workstationID plant.WorkstationID,
	items []kernel.Item,
) (services.StockSnapshot, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	snapshot := services.NewStockSnapshot()
	for _, item := range mergeItems(items) {
		level, err := r.ledger.StockLevel(callCtx, workstationID, item.Type, item.ID)
		if err != nil {
			return nil, err
		}
		snapshot.Set(item.Type, item.ID, level)
	}
	return snapshot, nil
}
