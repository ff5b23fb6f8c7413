package commands

import (
	"context"

	"go.uber.org/zap"

	"factory/internal/core/application/notification"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/ports"
	"factory/internal/pkg/metrics"
)

// CreateCustomerOrderResult identifies the stored order.
type CreateCustomerOrderResult struct {
	ID     kernel.ID
	Number string
	Report notification.Report
}

// CreateCustomerOrderCommandHandler stores new customer orders.
type CreateCustomerOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	notifier   Notifier
	logger     *zap.Logger
}

func NewCreateCustomerOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	notifier Notifier,
	logger *zap.Logger,
) CreateCustomerOrderCommandHandler {
	return CreateCustomerOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With(zap.String("component", "create-customer-order")),
	}
}

// Handle assigns the next id and stores the order. The creation event is published
// after the commit.
func (h CreateCustomerOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateCustomerOrderCommand,
) (CreateCustomerOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateCustomerOrderResult{}, err
	}

	var order *customerorder.CustomerOrder
	err := inTransaction(ctx, h.uowFactory, func(uow ports.UnitOfWork) error {
		repo := uow.CustomerOrderRepository()
		id, err := repo.NextID(ctx)
		if err != nil {
			return err
		}
		order, err = customerorder.NewCustomerOrder(id, cmd.Lines())
		if err != nil {
			return err
		}
		return repo.Add(ctx, order)
	})
	if err != nil {
		return CreateCustomerOrderResult{}, err
	}

	result := CreateCustomerOrderResult{ID: order.ID(), Number: order.Number()}
	metrics.RecordTransition(string(CustomerOrder), order.Status().String())
	h.logger.Info("customer order created",
		zap.String("customer_order", order.Number()),
		zap.Int("lines", len(order.Lines())),
		zap.Int("total_quantity", order.TotalQuantity()),
	)
	h.notifier.Publish(ctx, &result.Report, ports.OrderEvent{
		Type:        ports.EventOrderStatusChanged,
		OrderType:   string(CustomerOrder),
		OrderID:     order.ID(),
		OrderNumber: order.Number(),
		Status:      order.Status().String(),
	})
	return result, nil
}
