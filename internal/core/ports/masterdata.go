package ports

import (
	"context"

	"factory/internal/core/domain/model/kernel"
)

type CatalogKind string

const (
	CatalogProduct     CatalogKind = "products"
	CatalogModule      CatalogKind = "modules"
	CatalogPart        CatalogKind = "parts"
	CatalogWorkstation CatalogKind = "workstations"
)

// CatalogKindFor maps an item type to the catalog that describes it.
func CatalogKindFor(itemType kernel.ItemType) CatalogKind {
	switch itemType {
	case kernel.Product:
		return CatalogProduct
	case kernel.Module:
		return CatalogModule
	default:
		return CatalogPart
	}
}

// CatalogEntry describes a product, module, part or workstation. Components is the bill
// of materials one unit is built from; it is empty for raw parts.
type CatalogEntry struct {
	Kind        CatalogKind
	ID          kernel.ID
	Name        string
	Description string
	Components  []kernel.Item
}

// Masterdata is the read-heavy catalog lookup.
type Masterdata interface {
	Lookup(ctx context.Context, kind CatalogKind, id kernel.ID) (CatalogEntry, error)
}
