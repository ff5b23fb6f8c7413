package commands

import (
	"context"

	"go.uber.org/zap"

	"factory/internal/core/domain/model/workstationorder"
	"factory/internal/core/ports"
	"factory/internal/pkg/metrics"
)

// StartWorkstationOrderCommandHandler starts PENDING or WAITING_FOR_PARTS workstation
// orders. The inputs are consumed from the workstation's stock once the start is
// committed.
type StartWorkstationOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	notifier   Notifier
	logger     *zap.Logger
}

func NewStartWorkstationOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	notifier Notifier,
	logger *zap.Logger,
) StartWorkstationOrderCommandHandler {
	return StartWorkstationOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With(zap.String("component", "start-workstation-order")),
	}
}

func (h StartWorkstationOrderCommandHandler) Handle(ctx context.Context, cmd OrderCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	var order *workstationorder.WorkstationOrder
	err := inTransaction(ctx, h.uowFactory, func(uow ports.UnitOfWork) error {
		repo := uow.WorkstationOrderRepository()
		current, err := repo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if err = current.Start(); err != nil {
			return err
		}
		order = current
		return repo.Update(ctx, current)
	})
	if err != nil {
		return TransitionResult{}, err
	}

	result := TransitionResult{OrderID: order.ID(), OrderNumber: order.Number(), Status: order.Status().String()}
	metrics.RecordTransition(string(WorkstationOrder), result.Status)
	h.logger.Info("workstation order started",
		zap.String("workstation_order", order.Number()),
		zap.Int("workstation_id", int(order.WorkstationID())),
		zap.Int("inputs", len(order.Inputs())),
	)

	for _, input := range order.Inputs() {
		h.notifier.Debit(ctx, &result.Report, order.WorkstationID(), input, ports.ReasonConsumption, order.Number())
	}
	h.notifier.Publish(ctx, &result.Report, ports.OrderEvent{
		Type:        ports.EventOrderStatusChanged,
		OrderType:   string(WorkstationOrder),
		OrderID:     order.ID(),
		OrderNumber: order.Number(),
		Status:      result.Status,
		Attributes:  map[string]string{"kind": order.Kind().String()},
	})
	return result, nil
}
