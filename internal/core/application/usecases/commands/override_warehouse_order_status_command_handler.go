package commands

import (
	"context"

	"go.uber.org/zap"

	"factory/internal/core/ports"
	"factory/internal/pkg/metrics"
)

// OverrideWarehouseOrderStatusCommandHandler applies operator overrides. Every override
// is logged at warn level and published so that it shows up in audits.
type OverrideWarehouseOrderStatusCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	notifier   Notifier
	logger     *zap.Logger
}

func NewOverrideWarehouseOrderStatusCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	notifier Notifier,
	logger *zap.Logger,
) OverrideWarehouseOrderStatusCommandHandler {
	return OverrideWarehouseOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With(zap.String("component", "warehouse-override")),
	}
}

func (h OverrideWarehouseOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd OverrideWarehouseOrderStatusCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	var previous string
	var result TransitionResult
	err := inTransaction(ctx, h.uowFactory, func(uow ports.UnitOfWork) error {
		repo := uow.WarehouseOrderRepository()
		order, err := repo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		previous = order.Status().String()
		if err = order.Override(cmd.Target(), cmd.Reason()); err != nil {
			return err
		}
		result = TransitionResult{OrderID: order.ID(), OrderNumber: order.Number(), Status: order.Status().String()}
		return repo.Update(ctx, order)
	})
	if err != nil {
		return TransitionResult{}, err
	}

	metrics.RecordTransition(string(WarehouseOrder), result.Status)
	h.logger.Warn("warehouse order status overridden",
		zap.String("warehouse_order", result.OrderNumber),
		zap.String("from", previous),
		zap.String("to", result.Status),
		zap.String("operator", cmd.Operator()),
		zap.String("reason", cmd.Reason()),
	)
	h.notifier.Publish(ctx, &result.Report, ports.OrderEvent{
		Type:        ports.EventWarehouseOrderOverride,
		OrderType:   string(WarehouseOrder),
		OrderID:     result.OrderID,
		OrderNumber: result.OrderNumber,
		Status:      result.Status,
		Attributes: map[string]string{
			"previous_status": previous,
			"operator":        cmd.Operator(),
			"reason":          cmd.Reason(),
		},
	})
	return result, nil
}
