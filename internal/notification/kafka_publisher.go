package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/segmentio/kafka-go"
)

const Topic = "order-notifications"

// Publisher dispatches notifications by publishing order-outcome events to
// Kafka, keyed by order number so per-order events stay ordered.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

func (p *Publisher) SendConfirmation(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, EventOrderConfirmation, newOrderEvent(order, ""))
}

func (p *Publisher) SendFailureNotice(ctx context.Context, order *domain.Order, failureReason string) error {
	return p.publish(ctx, EventOrderFailed, newOrderEvent(order, failureReason))
}

func (p *Publisher) publish(ctx context.Context, eventType string, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderNumber),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
