package rest

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/ports"
)

var _ ports.Masterdata = (*MasterdataClient)(nil)

type componentDTO struct {
	ItemType string `json:"itemType"`
	ItemID   int64  `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type catalogEntryDTO struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Components  []componentDTO `json:"components"`
}

// MasterdataClient reads catalog entries; it does not cache.
type MasterdataClient struct {
	client
}

func NewMasterdataClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *MasterdataClient {
	return &MasterdataClient{client: newClient(baseURL, "masterdata", httpClient, logger)}
}

func (c *MasterdataClient) Lookup(ctx context.Context, kind ports.CatalogKind, id kernel.ID) (ports.CatalogEntry, error) {
	if err := id.Validate(); err != nil {
		return ports.CatalogEntry{}, err
	}

	var resp catalogEntryDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/masterdata/%s/%d", kind, id), nil, &resp); err != nil {
		return ports.CatalogEntry{}, err
	}

	entry := ports.CatalogEntry{
		Kind:        kind,
		ID:          id,
		Name:        resp.Name,
		Description: resp.Description,
		Components:  make([]kernel.Item, 0, len(resp.Components)),
	}
	for _, component := range resp.Components {
		itemType, err := kernel.ParseItemType(component.ItemType)
		if err != nil {
			return ports.CatalogEntry{}, fmt.Errorf("%s %d: %w", kind, id, err)
		}
		item, err := kernel.NewItem(itemType, kernel.ID(component.ItemID), component.Quantity)
		if err != nil {
			return ports.CatalogEntry{}, fmt.Errorf("%s %d: %w", kind, id, err)
		}
		entry.Components = append(entry.Components, item)
	}
	return entry, nil
}
