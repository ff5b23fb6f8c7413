package services

import (
	"factory/internal/core/domain/model/kernel"
)

// StockKey identifies an item in a stock snapshot.
type StockKey struct {
	Type kernel.ItemType
	ID   kernel.ID
}

// StockSnapshot holds the quantities on hand at one location at one point in time.
// Missing keys mean zero stock.
type StockSnapshot map[StockKey]int

func NewStockSnapshot() StockSnapshot {
	return StockSnapshot{}
}

func (s StockSnapshot) Set(itemType kernel.ItemType, id kernel.ID, quantity int) StockSnapshot {
	s[StockKey{Type: itemType, ID: id}] = quantity
	return s
}

func (s StockSnapshot) Level(itemType kernel.ItemType, id kernel.ID) int {
	return s[StockKey{Type: itemType, ID: id}]
}

// Shortfall returns, per demanded item, the quantity not covered by the snapshot.
// Repeated items are summed before comparing.
func (s StockSnapshot) Shortfall(demand []kernel.Item) []kernel.Item {
	needed := make(map[StockKey]int, len(demand))
	order := make([]StockKey, 0, len(demand))
	for _, item := range demand {
		key := StockKey{Type: item.Type, ID: item.ID}
		if _, ok := needed[key]; !ok {
			order = append(order, key)
		}
		needed[key] += item.Quantity
	}

	missing := make([]kernel.Item, 0)
	for _, key := range order {
		if short := needed[key] - s[key]; short > 0 {
			missing = append(missing, kernel.Item{Type: key.Type, ID: key.ID, Quantity: short})
		}
	}
	return missing
}

// Covers reports whether every demanded item is fully in stock.
func (s StockSnapshot) Covers(demand []kernel.Item) bool {
	return len(s.Shortfall(demand)) == 0
}
