package commands

import (
	"context"

	"go.uber.org/zap"

	"factory/internal/core/application/notification"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
	"factory/internal/core/ports"
	"factory/internal/pkg/metrics"
)

// TransitionResult is the state of the order after a transition.
type TransitionResult struct {
	OrderID     kernel.ID
	OrderNumber string
	Status      string
	Report      notification.Report
}

// TransitionCommandHandler runs plain status transitions in a single transaction and
// announces the new status afterwards.
type TransitionCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	notifier   Notifier
	logger     *zap.Logger
}

func NewTransitionCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	notifier Notifier,
	logger *zap.Logger,
) TransitionCommandHandler {
	return TransitionCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With(zap.String("component", "transition")),
	}
}

func (h TransitionCommandHandler) Handle(ctx context.Context, cmd TransitionCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	var result TransitionResult
	err := inTransaction(ctx, h.uowFactory, func(uow ports.UnitOfWork) error {
		var err error
		result, err = applyTransition(ctx, uow, cmd)
		return err
	})
	if err != nil {
		return TransitionResult{}, err
	}

	metrics.RecordTransition(string(cmd.OrderType()), result.Status)
	h.logger.Info("order transitioned",
		zap.String("order_type", string(cmd.OrderType())),
		zap.String("order", result.OrderNumber),
		zap.String("action", string(cmd.Action())),
		zap.String("status", result.Status),
	)
	h.notifier.Publish(ctx, &result.Report, ports.OrderEvent{
		Type:        ports.EventOrderStatusChanged,
		OrderType:   string(cmd.OrderType()),
		OrderID:     result.OrderID,
		OrderNumber: result.OrderNumber,
		Status:      result.Status,
		Attributes:  map[string]string{"action": string(cmd.Action())},
	})
	return result, nil
}

func applyTransition(ctx context.Context, uow ports.UnitOfWork, cmd TransitionCommand) (TransitionResult, error) {
	id := cmd.OrderID()
	action := cmd.Action()

	switch cmd.OrderType() {
	case CustomerOrder:
		repo := uow.CustomerOrderRepository()
		order, err := repo.Get(ctx, id)
		if err != nil {
			return TransitionResult{}, err
		}
		switch action {
		case ActionConfirm:
			err = order.Confirm()
		case ActionComplete:
			var children kernel.Progress
			if children, err = customerChildren(ctx, uow, id); err == nil {
				err = order.Complete(children)
			}
		case ActionDeliver:
			err = order.Deliver()
		default:
			err = order.Cancel()
		}
		if err == nil {
			err = repo.Update(ctx, order)
		}
		return TransitionResult{OrderID: id, OrderNumber: order.Number(), Status: order.Status().String()}, err

	case WarehouseOrder:
		repo := uow.WarehouseOrderRepository()
		order, err := repo.Get(ctx, id)
		if err != nil {
			return TransitionResult{}, err
		}
		if action == ActionReject {
			err = order.Reject()
		} else {
			err = order.Cancel()
		}
		if err == nil {
			err = repo.Update(ctx, order)
		}
		return TransitionResult{OrderID: id, OrderNumber: order.Number(), Status: order.Status().String()}, err

	case ProductionOrder:
		repo := uow.ProductionOrderRepository()
		order, err := repo.Get(ctx, id)
		if err != nil {
			return TransitionResult{}, err
		}
		if err = order.Cancel(); err == nil {
			err = repo.Update(ctx, order)
		}
		return TransitionResult{OrderID: id, OrderNumber: order.Number(), Status: order.Status().String()}, err

	case ControlOrder:
		repo := uow.ControlOrderRepository()
		order, err := repo.Get(ctx, id)
		if err != nil {
			return TransitionResult{}, err
		}
		switch action {
		case ActionHalt:
			err = order.Halt()
		case ActionResume:
			err = order.Resume()
		default:
			err = order.Cancel()
		}
		if err == nil {
			err = repo.Update(ctx, order)
		}
		return TransitionResult{OrderID: id, OrderNumber: order.Number(), Status: order.Status().String()}, err

	case WorkstationOrder:
		repo := uow.WorkstationOrderRepository()
		order, err := repo.Get(ctx, id)
		if err != nil {
			return TransitionResult{}, err
		}
		switch action {
		case ActionHalt:
			err = order.Halt()
		case ActionResume:
			err = order.Resume()
		default:
			err = order.Abandon()
		}
		if err == nil {
			err = repo.Update(ctx, order)
		}
		return TransitionResult{OrderID: id, OrderNumber: order.Number(), Status: order.Status().String()}, err

	default:
		repo := uow.SupplyOrderRepository()
		order, err := repo.Get(ctx, id)
		if err != nil {
			return TransitionResult{}, err
		}
		switch action {
		case ActionStart:
			err = order.Start()
		case ActionReject:
			err = order.Reject()
		default:
			err = order.Cancel()
		}
		if err == nil {
			err = repo.Update(ctx, order)
		}
		return TransitionResult{OrderID: id, OrderNumber: order.Number(), Status: order.Status().String()}, err
	}
}

// customerChildren counts the orders a customer order waits on: its warehouse orders,
// done once FULFILLED, and its final assembly orders without a control order, done once
// COMPLETED. Cancelled warehouse orders and abandoned assembly orders are withdrawn work.
func customerChildren(ctx context.Context, uow ports.UnitOfWork, customerOrderID kernel.ID) (kernel.Progress, error) {
	var progress kernel.Progress

	warehouses, err := uow.WarehouseOrderRepository().FindByCustomerOrderID(ctx, customerOrderID)
	if err != nil {
		return progress, err
	}
	for _, warehouse := range warehouses {
		if warehouse.Status() == warehouseorder.Cancelled {
			continue
		}
		done := 0
		if warehouse.Status() == warehouseorder.Fulfilled {
			done = 1
		}
		progress = progress.Add(kernel.NewProgress(1, done))
	}

	orders, err := uow.WorkstationOrderRepository().FindByCustomerOrderID(ctx, customerOrderID)
	if err != nil {
		return progress, err
	}
	for _, order := range orders {
		if order.Kind() != plant.FinalAssembly || order.ControlOrderID() != nil ||
			order.Status() == workstationorder.Abandoned {
			continue
		}
		done := 0
		if order.IsCompleted() {
			done = 1
		}
		progress = progress.Add(kernel.NewProgress(1, done))
	}
	return progress, nil
}
