package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/ports"
	"factory/internal/pkg/errs"
)

var _ ports.InventoryLedger = (*InventoryClient)(nil)

type stockMovementRequest struct {
	WorkstationID int    `json:"workstationId"`
	ItemType      string `json:"itemType"`
	ItemID        int64  `json:"itemId"`
	Quantity      int    `json:"quantity"`
	Reason        string `json:"reason"`
	Notes         string `json:"notes,omitempty"`
}

type stockLevelResponse struct {
	Quantity int `json:"quantity"`
}

// InventoryClient is the inventory ledger over HTTP.
type InventoryClient struct {
	client
}

func NewInventoryClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *InventoryClient {
	return &InventoryClient{client: newClient(baseURL, "inventory", httpClient, logger)}
}

func (c *InventoryClient) CreditStock(
	ctx context.Context,
	workstationID plant.WorkstationID,
	item kernel.Item,
	reason ports.StockReason,
	note string,
) error {
	return c.move(ctx, "/api/stock/credit", workstationID, item, reason, note)
}

func (c *InventoryClient) DebitStock(
	ctx context.Context,
	workstationID plant.WorkstationID,
	item kernel.Item,
	reason ports.StockReason,
	note string,
) error {
	return c.move(ctx, "/api/stock/debit", workstationID, item, reason, note)
}

// StockLevel treats a 404 as an item the workstation never held.
func (c *InventoryClient) StockLevel(
	ctx context.Context,
	workstationID plant.WorkstationID,
	itemType kernel.ItemType,
	itemID kernel.ID,
) (int, error) {
	var resp stockLevelResponse
	path := fmt.Sprintf("/api/stock/workstations/%d/%s/%d", workstationID, itemType, itemID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return resp.Quantity, nil
}

func (c *InventoryClient) move(
	ctx context.Context,
	path string,
	workstationID plant.WorkstationID,
	item kernel.Item,
	reason ports.StockReason,
	note string,
) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, stockMovementRequest{
		WorkstationID: int(workstationID),
		ItemType:      item.Type.String(),
		ItemID:        int64(item.ID),
		Quantity:      item.Quantity,
		Reason:        string(reason),
		Notes:         note,
	}, nil)
}
