// Package supplyorder contains the SupplyOrder aggregate: a request from a
// workstation to the parts-supply depot for the inputs a workstation order needs.
//
//	Pending ──> InProgress ──> Fulfilled
//	   │            │
//	   └────────────┴──> Rejected | Cancelled
//
// A workstation order refers to its supply order by id; the supply order does not
// own it.
package supplyorder
