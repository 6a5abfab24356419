package notification

import (
	"context"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
)

// Notifier delivers the "transaction succeeded" notice for a settled payment
type Notifier interface {
	NotifyPaymentSucceeded(ctx context.Context, event entity.PaymentSucceededEvent) error
}
