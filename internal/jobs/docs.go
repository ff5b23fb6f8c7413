// Package jobs provides scheduled background tasks for the factory service.
//
// The jobs use github.com/robfig/cron/v3 to catch up on completion propagation that
// a failed hop left behind. Every cascade hop commits on its own, so a crash or a
// downstream outage between two hops leaves a parent order waiting for a check that
// never came. The jobs re-run the idempotent checks; an order that is not ready is
// left as it is.
//
// # Available Jobs
//
//  1. ControlOrderReconciliationJob - revisits IN_PROGRESS control orders
//  2. ProductionOrderReconciliationJob - revisits SCHEDULED and IN_PROGRESS production
//     orders and COMPLETED ones whose routing was never recorded
//
// # Usage
//
//	jobManager := jobs.NewJobManager(uowFactory, propagator, "@every 1m", logger)
//	if err := jobManager.StartAll(); err != nil {
//		return fmt.Errorf("start jobs: %w", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs share one cron expression (seconds field enabled) and skip a tick while
// the previous run is still going.
package jobs
