// Package productionorder contains the ProductionOrder aggregate, a unit of
// manufacturing work that is sourced either from a warehouse order (restocking the
// Modules depot) or directly from a customer order (large lots, delivered to final
// assembly).
//
// State transitions:
//
//	Created ──> Submitted ──> Scheduled ──> InProgress ──> Completed
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled
//
// Completion is recorded once; the downstream credit and dispatch that follow it
// are recorded separately through MarkCompletionSubmitted so they also run once.
package productionorder
