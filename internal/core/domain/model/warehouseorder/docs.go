// Package warehouseorder contains the WarehouseOrder aggregate: the need to supply
// modules from the Modules depot for exactly one customer order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Fulfilled
//	   │            │  ▲
//	   │            ▼  │
//	   │     AwaitingProduction
//	   │            │
//	   └────────────┴──> Rejected | Cancelled
//
// Confirm is single use. The only other way to set a status is Override, which is a
// privileged operator action that always carries a reason.
package warehouseorder
