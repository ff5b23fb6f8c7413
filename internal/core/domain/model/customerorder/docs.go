// Package customerorder contains the CustomerOrder aggregate, the top of the order
// hierarchy.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Completed ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// Processing may also be entered straight from Pending. Completing a customer
// order is always an explicit action; it never happens as a side effect of
// production or warehouse completion.
package customerorder
