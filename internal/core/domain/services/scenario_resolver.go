package services

import (
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
)

// ScenarioResolver routes customer orders. Its decisions depend only on its inputs and
// the lot-size threshold, so identical inputs always give the same scenario.
type ScenarioResolver struct {
	cfg plant.Config
}

func NewScenarioResolver(cfg plant.Config) ScenarioResolver {
	return ScenarioResolver{cfg: cfg}
}

// RequiresDirectProduction is true for lots at or above the threshold; those bypass the
// warehouse entirely.
func (r ScenarioResolver) RequiresDirectProduction(totalQuantity int) bool {
	return totalQuantity >= r.cfg.LotSizeThreshold()
}

// Resolve picks the scenario for a customer order of totalQuantity whose warehouse demand
// is demand, given the Modules depot snapshot.
func (r ScenarioResolver) Resolve(totalQuantity int, demand []kernel.Item, modulesDepot StockSnapshot) kernel.Scenario {
	if r.RequiresDirectProduction(totalQuantity) {
		return kernel.DirectProduction
	}
	return r.ResolveWarehouse(demand, modulesDepot)
}

// ResolveWarehouse is the confirmation time decision for an existing warehouse order.
func (r ScenarioResolver) ResolveWarehouse(demand []kernel.Item, modulesDepot StockSnapshot) kernel.Scenario {
	if len(demand) > 0 && modulesDepot.Covers(demand) {
		return kernel.DirectFulfillment
	}
	return kernel.ProductionRequired
}
