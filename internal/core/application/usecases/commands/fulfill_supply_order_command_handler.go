package commands

import (
	"context"

	"go.uber.org/zap"

	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/supplyorder"
	"factory/internal/core/ports"
	"factory/internal/pkg/metrics"
)

// FulfillSupplyOrderCommandHandler fulfills supply orders: the parts leave the Parts
// supply depot and arrive at the requesting workstation. Workstation orders waiting
// for them are not started automatically.
type FulfillSupplyOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	cfg        plant.Config
	notifier   Notifier
	logger     *zap.Logger
}

func NewFulfillSupplyOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	cfg plant.Config,
	notifier Notifier,
	logger *zap.Logger,
) FulfillSupplyOrderCommandHandler {
	return FulfillSupplyOrderCommandHandler{
		uowFactory: uowFactory,
		cfg:        cfg,
		notifier:   notifier,
		logger:     logger.With(zap.String("component", "fulfill-supply-order")),
	}
}

func (h FulfillSupplyOrderCommandHandler) Handle(ctx context.Context, cmd OrderCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	var order *supplyorder.SupplyOrder
	err := inTransaction(ctx, h.uowFactory, func(uow ports.UnitOfWork) error {
		repo := uow.SupplyOrderRepository()
		current, err := repo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if err = current.Fulfill(); err != nil {
			return err
		}
		order = current
		return repo.Update(ctx, current)
	})
	if err != nil {
		return TransitionResult{}, err
	}

	result := TransitionResult{OrderID: order.ID(), OrderNumber: order.Number(), Status: order.Status().String()}
	metrics.RecordTransition(string(SupplyOrder), result.Status)
	h.logger.Info("supply order fulfilled",
		zap.String("supply_order", order.Number()),
		zap.Int("requesting_workstation", int(order.RequestingWorkstationID())),
	)

	for _, item := range order.Items() {
		h.notifier.Debit(ctx, &result.Report, h.cfg.PartsSupplyDepot(), item, ports.ReasonSupply, order.Number())
		h.notifier.Credit(ctx, &result.Report, order.RequestingWorkstationID(), item, ports.ReasonSupply, order.Number())
	}
	h.notifier.Publish(ctx, &result.Report, ports.OrderEvent{
		Type:        ports.EventOrderStatusChanged,
		OrderType:   string(SupplyOrder),
		OrderID:     order.ID(),
		OrderNumber: order.Number(),
		Status:      result.Status,
	})
	return result, nil
}
