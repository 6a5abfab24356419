package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/event"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/metrics"
)

var (
	_ event.Publisher  = (*EventBus)(nil)
	_ event.Subscriber = (*EventBus)(nil)
)

// EventBus encodes domain events as JSON on a Broker
type EventBus struct {
	broker Broker
	logger coreport.Logger
}

// NewEventBus creates an EventBus over broker
func NewEventBus(broker Broker, logger coreport.Logger) *EventBus {
	return &EventBus{broker: broker, logger: logger}
}

// PublishPaymentSucceeded publishes the event on TopicPaymentSucceeded
func (b *EventBus) PublishPaymentSucceeded(ctx context.Context, evt entity.PaymentSucceededEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(entity.TopicPaymentSucceeded, "error").Inc()
		return fmt.Errorf("encode %s event: %w", entity.TopicPaymentSucceeded, err)
	}

	if err := b.broker.Publish(ctx, entity.TopicPaymentSucceeded, payload); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(entity.TopicPaymentSucceeded, "error").Inc()
		return fmt.Errorf("publish %s event: %w", entity.TopicPaymentSucceeded, err)
	}

	metrics.EventsPublishedTotal.WithLabelValues(entity.TopicPaymentSucceeded, "ok").Inc()
	return nil
}

// SubscribePaymentSucceeded decodes events until ctx is done. Undecodable payloads are logged and skipped.
func (b *EventBus) SubscribePaymentSucceeded(ctx context.Context) (<-chan entity.PaymentSucceededEvent, error) {
	msgs, err := b.broker.Subscribe(ctx, []string{entity.TopicPaymentSucceeded})
	if err != nil {
		return nil, err
	}

	out := make(chan entity.PaymentSucceededEvent)
	go func() {
		defer close(out)
		for msg := range msgs {
			var evt entity.PaymentSucceededEvent
			if err := json.Unmarshal(msg.Payload, &evt); err != nil {
				b.logger.Warn("Dropping undecodable event", map[string]any{
					"topic": msg.Topic,
					"error": err.Error(),
				})
				continue
			}
			select {
			case out <- evt:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
