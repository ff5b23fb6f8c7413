// Package orchestration drives the order hierarchy
// Customer → Warehouse → Production → Control → Workstation.
//
// The package includes:
//   - ScenarioRouter: routes customer orders to direct production or a warehouse order and
//     confirms warehouse orders against the Modules depot stock
//   - DispatchCoordinator: pushes work down the hierarchy and routes completed production
//     orders to their consumer
//   - CompletionPropagator: pulls workstation completions up the hierarchy
//   - ProgressReader: read-only progress snapshots for dashboards
//
// Every hop commits in its own unit of work. Ledger movements, events and further hops
// run after the commit and are best effort; their outcomes are returned as a
// notification.Report instead of an error.
package orchestration
