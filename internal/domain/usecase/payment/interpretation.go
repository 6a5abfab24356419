package payment

import (
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
)

// InterpretationInput is everything needed to decide the local status after verification
type InterpretationInput struct {
	CancelledByUser bool
	FromRedirect    bool
	CurrentStatus   entity.PaymentStatus
	GatewayFailed   bool
	GatewayStatus   entity.GatewayStatus
}

// Interpretation is the decided local status and how the request should proceed
type Interpretation struct {
	Status entity.PaymentStatus
	// Tolerated means the gateway failed but the request reports the current state without writing
	Tolerated bool
	// Fatal means the gateway failed and the request must fail
	Fatal bool
	// CancelledByUser means the status was forced by the caller
	CancelledByUser bool
}

// Interpret maps a verification outcome onto a local payment status.
// A user cancellation takes priority over everything the gateway reported.
func Interpret(in InterpretationInput) Interpretation {
	if in.CancelledByUser {
		return Interpretation{Status: entity.PaymentStatusCancelled, CancelledByUser: true}
	}

	if in.GatewayFailed {
		switch {
		case in.FromRedirect && in.CurrentStatus == entity.PaymentStatusSuccess:
			return Interpretation{Status: entity.PaymentStatusSuccess, Tolerated: true}
		case in.FromRedirect:
			return Interpretation{Status: entity.PaymentStatusProcessing, Tolerated: true}
		case in.CurrentStatus == entity.PaymentStatusProcessing:
			return Interpretation{Status: entity.PaymentStatusProcessing, Tolerated: true}
		default:
			return Interpretation{Status: in.CurrentStatus, Fatal: true}
		}
	}

	return Interpretation{Status: in.GatewayStatus.LocalStatus()}
}

// resolveTransition keeps the current status when the table forbids the move
func resolveTransition(current, target entity.PaymentStatus) (entity.PaymentStatus, bool) {
	if current.CanTransitionTo(target) {
		return target, true
	}
	return current, false
}
