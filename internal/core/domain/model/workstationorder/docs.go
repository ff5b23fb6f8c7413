// Package workstationorder contains the WorkstationOrder aggregate, the leaf unit of
// work in the order hierarchy. One type covers all six workstation kinds; the kind
// is a tag that fixes the workstation, the category and what the order produces.
//
// State transitions:
//
//	Pending ──> WaitingForParts ──┐
//	   │                          ▼
//	   └───────────────────> InProgress ──> Completed
//	   ▲                      │
//	   └──── Halted <─────────┘
//
//	any non-final status ──> Abandoned
//
// Resume returns a halted order to Pending; it never jumps straight back into
// InProgress. Transitions are driven by a looplab/fsm machine built from the
// table in machine.go.
package workstationorder
