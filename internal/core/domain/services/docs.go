// Package services provides domain services that take decisions spanning more than
// one aggregate of the factory order hierarchy.
//
// The package includes:
//   - ScenarioResolver: picks the fulfillment branch of a customer or warehouse order
//   - SupplyGate: decides the initial status of workstation orders and whether a
//     control order may be dispatched given its supply orders
//   - StockSnapshot: the point in time stock levels both services decide on
//
// Services here are pure: they never call the store or external systems. The
// application layer gathers snapshots and applies the decisions.
package services
