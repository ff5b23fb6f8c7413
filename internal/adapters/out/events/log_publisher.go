package events

import (
	"context"

	"go.uber.org/zap"

	"factory/internal/core/ports"
)

var _ ports.EventPublisher = (*LogPublisher)(nil)

// LogPublisher is used when no brokers are configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With(zap.String("component", "event-log"))}
}

func (p *LogPublisher) Publish(_ context.Context, event ports.OrderEvent) error {
	p.logger.Info("order event",
		zap.String("id", event.ID),
		zap.String("type", event.Type),
		zap.String("order_type", event.OrderType),
		zap.String("order", event.OrderNumber),
		zap.String("status", event.Status),
		zap.Any("attributes", event.Attributes),
		zap.Time("occurred_at", event.OccurredAt))
	return nil
}
