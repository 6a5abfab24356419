package notification

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/event"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/notification"
)

// Consumer turns payment-succeeded events into user notifications.
// Delivery is best effort: a failed notification is logged and dropped.
type Consumer struct {
	subscriber event.Subscriber
	notifier   notification.Notifier
	logger     coreport.Logger
}

// NewConsumer creates a new notification Consumer
func NewConsumer(subscriber event.Subscriber, notifier notification.Notifier, logger coreport.Logger) *Consumer {
	return &Consumer{
		subscriber: subscriber,
		notifier:   notifier,
		logger:     logger,
	}
}

// Run blocks delivering notifications until ctx is done or the subscription closes
func (c *Consumer) Run(ctx context.Context) error {
	events, err := c.subscriber.SubscribePaymentSucceeded(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", entity.TopicPaymentSucceeded, err)
	}

	c.logger.Info("Notification consumer started", map[string]any{"topic": entity.TopicPaymentSucceeded})

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Notification consumer stopped", nil)
			return nil
		case evt, ok := <-events:
			if !ok {
				c.logger.Info("Payment event subscription closed", nil)
				return nil
			}
			c.Handle(ctx, evt)
		}
	}
}

// Handle delivers one event
func (c *Consumer) Handle(ctx context.Context, evt entity.PaymentSucceededEvent) {
	if err := c.notifier.NotifyPaymentSucceeded(ctx, evt); err != nil {
		c.logger.Warn("Failed to deliver payment notification", map[string]any{
			"event_id":   evt.EventID,
			"invoice_id": evt.InvoiceID,
			"user_id":    evt.UserID,
			"error":      fmt.Errorf("%w: %s", errs.ErrNotificationFailed, err.Error()).Error(),
		})
		return
	}

	c.logger.Debug("Payment notification delivered", map[string]any{
		"event_id":   evt.EventID,
		"invoice_id": evt.InvoiceID,
	})
}
