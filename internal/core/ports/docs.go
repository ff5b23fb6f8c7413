// Package ports defines the contracts between the orchestration core and the
// infrastructure around it: the order store (one repository per order type bound to
// a unit of work), the inventory ledger, the scheduling service, masterdata and the
// event publisher.
//
// Repositories store parent ids only. Walking the hierarchy always means an explicit
// lookup by parent id through the store.
package ports
