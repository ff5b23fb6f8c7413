// Package events delivers order events to the outside world: Kafka when brokers are
// configured, the process log otherwise.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"factory/internal/core/ports"
)

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

type eventMessage struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	OrderType   string            `json:"orderType"`
	OrderID     int64             `json:"orderId"`
	OrderNumber string            `json:"orderNumber"`
	Status      string            `json:"status"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	OccurredAt  time.Time         `json:"occurredAt"`
}

func toMessage(event ports.OrderEvent) eventMessage {
	return eventMessage{
		ID:          event.ID,
		Type:        event.Type,
		OrderType:   event.OrderType,
		OrderID:     int64(event.OrderID),
		OrderNumber: event.OrderNumber,
		Status:      event.Status,
		Attributes:  event.Attributes,
		OccurredAt:  event.OccurredAt.UTC(),
	}
}

// KafkaPublisher writes one message per event, keyed by order number so that the
// events of an order stay in one partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewProducerConfig returns the producer settings used in production.
func NewProducerConfig(clientID string, timeout time.Duration) *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 0
	config.Producer.Timeout = timeout
	config.Net.DialTimeout = timeout
	return config
}

func NewSyncProducer(brokers []string, config *sarama.Config) (sarama.SyncProducer, error) {
	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("connect to kafka %v: %w", brokers, err)
	}
	return producer, nil
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With(zap.String("component", "kafka-publisher")),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(toMessage(event))
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderNumber),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(event.Type)},
			{Key: []byte("order-type"), Value: []byte(event.OrderType)},
		},
		Timestamp: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}

	p.logger.Debug("event published",
		zap.String("type", event.Type),
		zap.String("order", event.OrderNumber),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
