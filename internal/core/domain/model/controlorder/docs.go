// Package controlorder contains the ControlOrder aggregate: the dispatch unit that
// groups one workstation's scheduled tasks for one production run. Production
// control orders (PCO) bind to manufacturing workstations, assembly control orders
// (ACO) to assembly workstations; both share this type and differ by Category.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//	   │           │  ▲
//	   │           ▼  │
//	   │         Halted
//	   │           │
//	   └───────────┴──> Cancelled
package controlorder
