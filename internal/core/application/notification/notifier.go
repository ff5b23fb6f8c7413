package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/ports"
	"factory/internal/pkg/metrics"
)

// Notifier performs best effort calls with the configured timeout. Every call is
// recorded in the given report and never returns an error to its caller.
type Notifier struct {
	ledger    ports.InventoryLedger
	publisher ports.EventPublisher
	timeout   time.Duration
	logger    *zap.Logger
}

func NewNotifier(
	ledger ports.InventoryLedger,
	publisher ports.EventPublisher,
	timeout time.Duration,
	logger *zap.Logger,
) *Notifier {
	return &Notifier{
		ledger:    ledger,
		publisher: publisher,
		timeout:   timeout,
		logger:    logger.With(zap.String("component", "notifier")),
	}
}

func (n *Notifier) Credit(
	ctx context.Context,
	report *Report,
	workstationID plant.WorkstationID,
	item kernel.Item,
	reason ports.StockReason,
	note string,
) {
	detail := fmt.Sprintf("ws %d %s", workstationID, item)
	n.Do(ctx, report, "inventory.credit", detail, func(ctx context.Context) error {
		return n.ledger.CreditStock(ctx, workstationID, item, reason, note)
	})
}

func (n *Notifier) Debit(
	ctx context.Context,
	report *Report,
	workstationID plant.WorkstationID,
	item kernel.Item,
	reason ports.StockReason,
	note string,
) {
	detail := fmt.Sprintf("ws %d %s", workstationID, item)
	n.Do(ctx, report, "inventory.debit", detail, func(ctx context.Context) error {
		return n.ledger.DebitStock(ctx, workstationID, item, reason, note)
	})
}

// Publish stamps the event with an id and time when missing and hands it to the publisher.
func (n *Notifier) Publish(ctx context.Context, report *Report, event ports.OrderEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	n.Do(ctx, report, "events.publish", event.Type+" "+event.OrderNumber, func(ctx context.Context) error {
		return n.publisher.Publish(ctx, event)
	})
}

// Hop records an already executed step, typically an upward propagation hop.
func (n *Notifier) Hop(report *Report, target string, err error) {
	if err != nil {
		n.logger.Error("propagation hop failed", zap.String("target", target), zap.Error(err))
	}
	report.Record(target, err)
}

// Do runs fn as a best effort step. target is a low cardinality name such as
// "scheduling.submit"; detail identifies the concrete call.
func (n *Notifier) Do(
	ctx context.Context,
	report *Report,
	target, detail string,
	fn func(context.Context) error,
) {
	callCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	started := time.Now()
	err := fn(callCtx)
	metrics.RecordDownstreamCall(target, err, time.Since(started))

	if err != nil {
		n.logger.Warn("downstream notification failed",
			zap.String("target", target),
			zap.String("detail", detail),
			zap.Error(err),
		)
	}
	report.Record(target+" "+detail, err)
}
