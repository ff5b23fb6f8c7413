package orchestration

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"factory/internal/core/application/notification"
	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
	"factory/internal/core/ports"
	"factory/internal/pkg/errs"
	"factory/internal/pkg/metrics"
)

// propagation hop results as recorded in metrics
const (
	resultCompleted  = "completed"
	resultIncomplete = "incomplete"
	resultSkipped    = "skipped"
	resultFailed     = "failed"
)

// CompletionPropagator pulls workstation completions up the hierarchy. Every level
// checks whether it is already COMPLETED before it mutates anything, so repeated
// notifications for the same order are safe.
type CompletionPropagator struct {
	uowFactory  ports.UnitOfWorkFactory
	coordinator *DispatchCoordinator
	notifier    *notification.Notifier
	logger      *zap.Logger
}

func NewCompletionPropagator(
	uowFactory ports.UnitOfWorkFactory,
	coordinator *DispatchCoordinator,
	notifier *notification.Notifier,
	logger *zap.Logger,
) *CompletionPropagator {
	return &CompletionPropagator{
		uowFactory:  uowFactory,
		coordinator: coordinator,
		notifier:    notifier,
		logger:      logger.With(zap.String("component", "completion-propagator")),
	}
}

// CompletionResult tells which levels changed because of one completion. Duplicate is
// set when the order was already COMPLETED before the call.
type CompletionResult struct {
	Duplicate                bool
	ControlOrderCompleted    bool
	ProductionOrderCompleted bool
	Report                   notification.Report
}

// CompleteWorkstationOrder completes an IN_PROGRESS workstation order, credits its output
// once and propagates upwards. A duplicate notification neither credits again nor
// completes a parent twice, but still re-runs the upward checks so that a hop lost
// earlier is caught up.
func (p *CompletionPropagator) CompleteWorkstationOrder(ctx context.Context, id kernel.ID) (CompletionResult, error) {
	var result CompletionResult
	var order *workstationorder.WorkstationOrder

	err := inTransaction(ctx, p.uowFactory, func(uow ports.UnitOfWork) error {
		repo := uow.WorkstationOrderRepository()
		current, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		order = current
		if current.IsCompleted() {
			result.Duplicate = true
			return nil
		}
		if err = current.Complete(); err != nil {
			return err
		}
		return repo.Update(ctx, current)
	})
	if err != nil {
		return CompletionResult{}, err
	}

	log := p.logger.With(zap.String("workstation_order", order.Number()))
	if result.Duplicate {
		log.Info("workstation order already completed, re-checking parents")
	} else {
		metrics.RecordTransition(kernel.WorkstationOrderType.String(), workstationorder.Completed.String())
		p.notifier.Credit(ctx, &result.Report, order.WorkstationID(), order.Output(), ports.ReasonProduction, order.Number())
		p.notifier.Publish(ctx, &result.Report, ports.OrderEvent{
			Type:        ports.EventOrderStatusChanged,
			OrderType:   kernel.WorkstationOrderType.String(),
			OrderID:     order.ID(),
			OrderNumber: order.Number(),
			Status:      order.Status().String(),
			Attributes:  map[string]string{"kind": order.Kind().String()},
		})
	}

	if controlID := order.ControlOrderID(); controlID != nil {
		err = p.propagateControl(ctx, *controlID, &result)
		return result, err
	}
	if order.Kind() == plant.FinalAssembly && !result.Duplicate {
		p.propagateCustomer(ctx, order, &result.Report)
	}
	return result, nil
}

// ReconcileControlOrder re-runs the upward checks starting at a control order.
func (p *CompletionPropagator) ReconcileControlOrder(ctx context.Context, id kernel.ID) (CompletionResult, error) {
	var result CompletionResult
	if _, err := p.uowFactory.Create().ControlOrderRepository().Get(ctx, id); err != nil {
		return result, err
	}
	err := p.propagateControl(ctx, id, &result)
	return result, err
}

// CompleteProductionOrder completes a production order whose control orders are all
// COMPLETED and routes it. An order that is already COMPLETED short-circuits: only the
// idempotent routing is re-attempted. Unlike the automatic cascade, an incomplete order
// is reported as an invalid transition.
func (p *CompletionPropagator) CompleteProductionOrder(ctx context.Context, id kernel.ID) (CompletionResult, error) {
	var result CompletionResult

	order, err := p.uowFactory.Create().ProductionOrderRepository().Get(ctx, id)
	if err != nil {
		return result, err
	}
	if order.IsCompleted() {
		result.Duplicate = true
	} else {
		progress, err := p.controlProgress(ctx, id)
		if err != nil {
			return result, err
		}
		if !progress.IsComplete() {
			return result, errs.NewInvalidStateTransitionError("production order", id, order.Status().String(),
				fmt.Sprintf("complete (%d of %d control orders completed)", progress.Completed, progress.Total))
		}
	}

	err = p.propagateProduction(ctx, id, &result)
	return result, err
}

// ReconcileProductionOrder re-runs the production level of the cascade.
func (p *CompletionPropagator) ReconcileProductionOrder(ctx context.Context, id kernel.ID) (CompletionResult, error) {
	var result CompletionResult
	if _, err := p.uowFactory.Create().ProductionOrderRepository().Get(ctx, id); err != nil {
		return result, err
	}
	err := p.propagateProduction(ctx, id, &result)
	return result, err
}

func (p *CompletionPropagator) propagateControl(ctx context.Context, controlID kernel.ID, result *CompletionResult) error {
	target := fmt.Sprintf("control_order %d", controlID)

	reader := p.uowFactory.Create()
	control, err := reader.ControlOrderRepository().Get(ctx, controlID)
	if err != nil {
		return p.hopFailed(&result.Report, "control_order", target, err)
	}

	if !control.IsCompleted() {
		progress, countErr := countWorkstationOrders(ctx, reader.WorkstationOrderRepository(), control)
		if countErr != nil {
			p.logger.Error("failed to count workstation orders, control order treated as incomplete",
				zap.String("control_order", control.Number()),
				zap.Error(countErr),
			)
			metrics.RecordPropagationHop("control_order", resultIncomplete)
			return nil
		}
		if !progress.IsComplete() {
			metrics.RecordPropagationHop("control_order", resultIncomplete)
			return nil
		}

		changed, err := p.completeControlOrder(ctx, controlID)
		if err != nil {
			return p.hopFailed(&result.Report, "control_order", target, err)
		}
		result.ControlOrderCompleted = changed
		if changed {
			metrics.RecordPropagationHop("control_order", resultCompleted)
			metrics.RecordTransition(kernel.ControlOrderType.String(), controlorder.Completed.String())
			p.logger.Info("control order completed",
				zap.String("control_order", control.Number()),
				zap.Int("workstation_orders", progress.Total),
			)
			p.notifier.Publish(ctx, &result.Report, ports.OrderEvent{
				Type:        ports.EventOrderStatusChanged,
				OrderType:   kernel.ControlOrderType.String(),
				OrderID:     control.ID(),
				OrderNumber: control.Number(),
				Status:      controlorder.Completed.String(),
			})
		}
	} else {
		metrics.RecordPropagationHop("control_order", resultSkipped)
	}

	return p.propagateProduction(ctx, control.ProductionOrderID(), result)
}

// completeControlOrder reports whether this call made the transition. Losing a race
// against another completion is not an error.
func (p *CompletionPropagator) completeControlOrder(ctx context.Context, id kernel.ID) (bool, error) {
	changed := false
	err := inTransaction(ctx, p.uowFactory, func(uow ports.UnitOfWork) error {
		repo := uow.ControlOrderRepository()
		control, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if control.IsCompleted() {
			return nil
		}
		if err = control.Complete(); err != nil {
			return err
		}
		if err = repo.Update(ctx, control); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if errors.Is(err, errs.ErrConcurrentModification) {
		return p.completedByOther(ctx, func(uow ports.UnitOfWork) (bool, error) {
			control, err := uow.ControlOrderRepository().Get(ctx, id)
			if err != nil {
				return false, err
			}
			return control.IsCompleted(), nil
		}, err)
	}
	return changed, err
}

func (p *CompletionPropagator) propagateProduction(ctx context.Context, productionID kernel.ID, result *CompletionResult) error {
	target := fmt.Sprintf("production_order %d", productionID)

	order, err := p.uowFactory.Create().ProductionOrderRepository().Get(ctx, productionID)
	if err != nil {
		return p.hopFailed(&result.Report, "production_order", target, err)
	}

	if !order.IsCompleted() {
		progress, err := p.controlProgress(ctx, productionID)
		if err != nil {
			return p.hopFailed(&result.Report, "production_order", target, err)
		}
		if !progress.IsComplete() {
			metrics.RecordPropagationHop("production_order", resultIncomplete)
			return nil
		}

		changed, err := p.completeProductionOrder(ctx, productionID)
		if err != nil {
			return p.hopFailed(&result.Report, "production_order", target, err)
		}
		result.ProductionOrderCompleted = changed
		if changed {
			metrics.RecordPropagationHop("production_order", resultCompleted)
			metrics.RecordTransition(kernel.ProductionOrderType.String(), productionorder.Completed.String())
			p.logger.Info("production order completed",
				zap.String("production_order", order.Number()),
				zap.Int("control_orders", progress.Total),
			)
		}
	} else {
		metrics.RecordPropagationHop("production_order", resultSkipped)
	}

	report, err := p.coordinator.SubmitProductionOrderCompletion(ctx, productionID)
	result.Report.Merge(report)
	if err != nil {
		return p.hopFailed(&result.Report, "production_order", target+" routing", err)
	}
	return nil
}

func (p *CompletionPropagator) completeProductionOrder(ctx context.Context, id kernel.ID) (bool, error) {
	changed := false
	err := inTransaction(ctx, p.uowFactory, func(uow ports.UnitOfWork) error {
		repo := uow.ProductionOrderRepository()
		order, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if order.IsCompleted() {
			return nil
		}
		if err = order.Complete(); err != nil {
			return err
		}
		if err = repo.Update(ctx, order); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if errors.Is(err, errs.ErrConcurrentModification) {
		return p.completedByOther(ctx, func(uow ports.UnitOfWork) (bool, error) {
			order, err := uow.ProductionOrderRepository().Get(ctx, id)
			if err != nil {
				return false, err
			}
			return order.IsCompleted(), nil
		}, err)
	}
	return changed, err
}

// completedByOther turns a lost optimistic race into "someone else completed it".
func (p *CompletionPropagator) completedByOther(
	ctx context.Context,
	isCompleted func(ports.UnitOfWork) (bool, error),
	raceErr error,
) (bool, error) {
	done, err := isCompleted(p.uowFactory.Create())
	if err != nil {
		return false, err
	}
	if !done {
		return false, raceErr
	}
	return false, nil
}

func (p *CompletionPropagator) controlProgress(ctx context.Context, productionID kernel.ID) (kernel.Progress, error) {
	return countControlOrders(ctx, p.uowFactory.Create().ControlOrderRepository(), productionID)
}

// propagateCustomer handles final assembly orders dispatched without a control order.
// Once all of them are COMPLETED the processing warehouse orders are fulfilled and the
// customer order is announced as ready. The customer order itself is not completed.
func (p *CompletionPropagator) propagateCustomer(
	ctx context.Context,
	order *workstationorder.WorkstationOrder,
	report *notification.Report,
) {
	customerID := order.References().CustomerOrderID
	if customerID == nil {
		return
	}
	target := fmt.Sprintf("customer_order %d", *customerID)

	reader := p.uowFactory.Create()
	siblings, err := reader.WorkstationOrderRepository().FindByCustomerOrderID(ctx, *customerID)
	if err != nil {
		_ = p.hopFailed(report, "customer_order", target, err)
		return
	}
	if !directFinalAssemblyProgress(siblings).IsComplete() {
		metrics.RecordPropagationHop("customer_order", resultIncomplete)
		return
	}

	var fulfilled []*warehouseorder.WarehouseOrder
	err = inTransaction(ctx, p.uowFactory, func(uow ports.UnitOfWork) error {
		repo := uow.WarehouseOrderRepository()
		orders, err := repo.FindByCustomerOrderID(ctx, *customerID)
		if err != nil {
			return err
		}
		for _, warehouse := range orders {
			if warehouse.Status() != warehouseorder.Processing {
				continue
			}
			if err = warehouse.Fulfill(); err != nil {
				return err
			}
			if err = repo.Update(ctx, warehouse); err != nil {
				return err
			}
			fulfilled = append(fulfilled, warehouse)
		}
		return nil
	})
	if err != nil {
		_ = p.hopFailed(report, "customer_order", target, err)
		return
	}

	customer, err := reader.CustomerOrderRepository().Get(ctx, *customerID)
	if err != nil {
		_ = p.hopFailed(report, "customer_order", target, err)
		return
	}

	metrics.RecordPropagationHop("customer_order", resultCompleted)
	for _, warehouse := range fulfilled {
		metrics.RecordTransition(kernel.WarehouseOrderType.String(), warehouseorder.Fulfilled.String())
		p.notifier.Publish(ctx, report, ports.OrderEvent{
			Type:        ports.EventOrderStatusChanged,
			OrderType:   kernel.WarehouseOrderType.String(),
			OrderID:     warehouse.ID(),
			OrderNumber: warehouse.Number(),
			Status:      warehouse.Status().String(),
		})
	}

	p.logger.Info("final assembly finished, customer order ready",
		zap.String("customer_order", customer.Number()),
		zap.Int("fulfilled_warehouse_orders", len(fulfilled)),
	)
	p.notifier.Publish(ctx, report, ports.OrderEvent{
		Type:        ports.EventCustomerOrderReady,
		OrderType:   kernel.CustomerOrderType.String(),
		OrderID:     customer.ID(),
		OrderNumber: customer.Number(),
		Status:      customer.Status().String(),
		Attributes:  map[string]string{"scenario": customer.Scenario().String()},
	})
}

// hopFailed records a failed upward hop. Configuration invariant violations are
// returned to the caller; everything else is logged and recorded only.
func (p *CompletionPropagator) hopFailed(report *notification.Report, level, target string, err error) error {
	metrics.RecordPropagationHop(level, resultFailed)
	if errors.Is(err, errs.ErrConfigurationInvariantViolation) {
		p.logger.Error("configuration invariant violated during propagation",
			zap.String("target", target),
			zap.Error(err),
		)
		return err
	}
	p.notifier.Hop(report, target, err)
	return nil
}

// countWorkstationOrders sums total and COMPLETED children of a control order per kind of
// its category. A failing kind does not stop the others; its error is returned joined
// with the partial progress.
func countWorkstationOrders(
	ctx context.Context,
	repo ports.WorkstationOrderRepository,
	control *controlorder.ControlOrder,
) (kernel.Progress, error) {
	var progress kernel.Progress
	var failures []error
	for _, kind := range plant.KindsOf(control.Category()) {
		total, err := repo.CountByControlOrderIDAndKind(ctx, control.ID(), kind)
		if err != nil {
			failures = append(failures, fmt.Errorf("count %s orders: %w", kind, err))
			continue
		}
		completed, err := repo.CountByControlOrderIDKindAndStatus(ctx, control.ID(), kind, workstationorder.Completed)
		if err != nil {
			failures = append(failures, fmt.Errorf("count completed %s orders: %w", kind, err))
			continue
		}
		progress = progress.Add(kernel.NewProgress(total, completed))
	}
	return progress, errors.Join(failures...)
}

// directFinalAssemblyProgress counts final assembly orders that have no control order.
func directFinalAssemblyProgress(orders []*workstationorder.WorkstationOrder) kernel.Progress {
	var progress kernel.Progress
	for _, order := range orders {
		if order.Kind() != plant.FinalAssembly || order.ControlOrderID() != nil {
			continue
		}
		if order.Status() == workstationorder.Abandoned {
			continue
		}
		completed := 0
		if order.IsCompleted() {
			completed = 1
		}
		progress = progress.Add(kernel.NewProgress(1, completed))
	}
	return progress
}
