package queries

import (
	"context"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/ports"
)

type GetStockLevelQueryResponse struct {
	WorkstationID plant.WorkstationID
	ItemType      kernel.ItemType
	ItemID        kernel.ID
	Quantity      int
}

type GetStockLevelQueryHandler struct {
	ledger ports.InventoryLedger
}

func NewGetStockLevelQueryHandler(ledger ports.InventoryLedger) GetStockLevelQueryHandler {
	return GetStockLevelQueryHandler{ledger: ledger}
}

func (h GetStockLevelQueryHandler) Handle(
	ctx context.Context,
	query GetStockLevelQuery,
) (GetStockLevelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStockLevelQueryResponse{}, err
	}

	quantity, err := h.ledger.StockLevel(ctx, query.WorkstationID(), query.ItemType(), query.ItemID())
	if err != nil {
		return GetStockLevelQueryResponse{}, err
	}
	return GetStockLevelQueryResponse{
		WorkstationID: query.WorkstationID(),
		ItemType:      query.ItemType(),
		ItemID:        query.ItemID(),
		Quantity:      quantity,
	}, nil
}
