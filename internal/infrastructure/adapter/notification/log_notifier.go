package notification

import (
	"context"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/notification"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/metrics"
)

// LogNotifier records notices in the log when no webhook is configured
type LogNotifier struct {
	logger coreport.Logger
}

var _ notification.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger coreport.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyPaymentSucceeded(ctx context.Context, evt entity.PaymentSucceededEvent) error {
	n.logger.Info("Payment succeeded", map[string]any{
		"event_id":       evt.EventID,
		"payment_id":     evt.PaymentID,
		"invoice_id":     evt.InvoiceID,
		"user_id":        evt.UserID,
		"amount":         evt.Amount,
		"bonus":          evt.Bonus,
		"payment_method": evt.PaymentMethod,
		"message":        successMessage(evt),
	})
	metrics.NotificationsTotal.WithLabelValues("logged").Inc()
	return nil
}
