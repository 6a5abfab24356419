package event

import (
	"context"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
)

// Publisher emits domain events after the owning transaction commits
type Publisher interface {
	PublishPaymentSucceeded(ctx context.Context, event entity.PaymentSucceededEvent) error
}

// Subscriber delivers decoded payment-succeeded events until ctx is done
type Subscriber interface {
	SubscribePaymentSucceeded(ctx context.Context) (<-chan entity.PaymentSucceededEvent, error)
}
