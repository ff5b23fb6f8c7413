package jobs

import (
	"context"

	"go.uber.org/zap"

	"factory/internal/core/application/orchestration"
	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/ports"
	"factory/internal/pkg/metrics"
)

// Reconciler re-runs the upward completion checks.
type Reconciler interface {
	ReconcileControlOrder(ctx context.Context, id kernel.ID) (orchestration.CompletionResult, error)
	ReconcileProductionOrder(ctx context.Context, id kernel.ID) (orchestration.CompletionResult, error)
}

var _ Reconciler = (*orchestration.CompletionPropagator)(nil)

// ControlOrderReconciliationJob completes control orders whose workstation orders are
// all done.
type ControlOrderReconciliationJob struct {
	uowFactory ports.UnitOfWorkFactory
	reconciler Reconciler
	logger     *zap.Logger
}

func NewControlOrderReconciliationJob(
	uowFactory ports.UnitOfWorkFactory,
	reconciler Reconciler,
	logger *zap.Logger,
) *ControlOrderReconciliationJob {
	return &ControlOrderReconciliationJob{
		uowFactory: uowFactory,
		reconciler: reconciler,
		logger:     logger.With(zap.String("component", "control_order_reconciliation_job")),
	}
}

// Run visits every IN_PROGRESS or HALTED control order once. A failure on one order does
// not stop the others.
func (j *ControlOrderReconciliationJob) Run(ctx context.Context) {
	var orders []*controlorder.ControlOrder
	repo := j.uowFactory.Create().ControlOrderRepository()
	for _, status := range []controlorder.Status{controlorder.InProgress, controlorder.Halted} {
		found, err := repo.FindByStatus(ctx, status)
		if err != nil {
			j.logger.Error("cannot list control orders", zap.Stringer("status", status), zap.Error(err))
			return
		}
		orders = append(orders, found...)
	}

	for _, order := range orders {
		result, err := j.reconciler.ReconcileControlOrder(ctx, order.ID())
		metrics.RecordReconciled(kernel.ControlOrderType.String(), err)
		if err != nil {
			j.logger.Warn("reconciliation failed", zap.String("order", order.Number()), zap.Error(err))
			continue
		}
		if result.ControlOrderCompleted {
			j.logger.Info("control order caught up", zap.String("order", order.Number()),
				zap.Bool("production_completed", result.ProductionOrderCompleted))
		}
	}
}

// ProductionOrderReconciliationJob completes production orders whose control orders
// are all done and re-attempts routing that was never recorded.
type ProductionOrderReconciliationJob struct {
	uowFactory ports.UnitOfWorkFactory
	reconciler Reconciler
	logger     *zap.Logger
}

func NewProductionOrderReconciliationJob(
	uowFactory ports.UnitOfWorkFactory,
	reconciler Reconciler,
	logger *zap.Logger,
) *ProductionOrderReconciliationJob {
	return &ProductionOrderReconciliationJob{
		uowFactory: uowFactory,
		reconciler: reconciler,
		logger:     logger.With(zap.String("component", "production_order_reconciliation_job")),
	}
}

func (j *ProductionOrderReconciliationJob) Run(ctx context.Context) {
	repo := j.uowFactory.Create().ProductionOrderRepository()

	var candidates []*productionorder.ProductionOrder
	for _, status := range []productionorder.Status{
		productionorder.Scheduled,
		productionorder.InProgress,
		productionorder.Completed,
	} {
		orders, err := repo.FindByStatus(ctx, status)
		if err != nil {
			j.logger.Error("cannot list production orders", zap.Stringer("status", status), zap.Error(err))
			return
		}
		for _, order := range orders {
			if order.IsCompleted() && order.CompletionSubmittedAt() != nil {
				continue
			}
			candidates = append(candidates, order)
		}
	}

	for _, order := range candidates {
		result, err := j.reconciler.ReconcileProductionOrder(ctx, order.ID())
		metrics.RecordReconciled(kernel.ProductionOrderType.String(), err)
		if err != nil {
			j.logger.Warn("reconciliation failed", zap.String("order", order.Number()), zap.Error(err))
			continue
		}
		if !result.Report.OK() {
			j.logger.Warn("reconciliation left failed steps", zap.String("order", order.Number()),
				zap.Stringer("report", result.Report))
		}
	}
}
