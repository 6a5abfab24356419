package payment

import (
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
)

// Response messages
const (
	MessageAlreadyVerified   = "Payment already verified"
	MessageVerified          = "Payment verified successfully"
	MessagePending           = "Payment is still being processed"
	MessageVerifyPending     = "Payment verification pending"
	MessageCancelled         = "Payment was cancelled"
	MessageCancelledByUser   = "Payment cancelled by user"
	MessageRejectedByGateway = "Payment was rejected by the gateway"
	MessageFailed            = "Payment verification failed"
)

func alreadyVerifiedResult(payment *entity.Payment) *usecase.VerificationResult {
	return &usecase.VerificationResult{
		Status:  entity.ResponseCompleted,
		Message: MessageAlreadyVerified,
		Payment: payment,
	}
}

// toleratedResult reports the current state when the gateway could not be reached
func toleratedResult(payment *entity.Payment, status entity.PaymentStatus, gatewayErr error) *usecase.VerificationResult {
	result := &usecase.VerificationResult{
		Status:  status.ResponseStatus(),
		Message: MessageVerifyPending,
		Payment: payment,
	}
	if status == entity.PaymentStatusSuccess {
		result.Message = MessageAlreadyVerified
	}
	if gatewayErr != nil {
		result.Details = gatewayErr.Error()
	}
	return result
}

func failedResult(payment *entity.Payment, err error) *usecase.VerificationResult {
	result := &usecase.VerificationResult{
		Status:  entity.ResponseFailed,
		Message: MessageFailed,
		Payment: payment,
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

// settledResult describes the persisted outcome of a verification
func settledResult(settlement *Settlement, interp Interpretation, acc *Accumulator) *usecase.VerificationResult {
	payment := settlement.Payment
	result := &usecase.VerificationResult{
		Status:  payment.Status.ResponseStatus(),
		Payment: payment,
	}

	switch payment.Status {
	case entity.PaymentStatusSuccess:
		result.Message = MessageVerified
		if !settlement.Credited {
			result.Message = MessageAlreadyVerified
		}
	case entity.PaymentStatusCancelled:
		switch {
		case interp.CancelledByUser:
			result.Message = MessageCancelledByUser
		case acc != nil && acc.Status.IsTerminalError():
			result.Message = MessageRejectedByGateway
			result.Details = acc.MessageValue()
		default:
			result.Message = MessageCancelled
		}
	default:
		result.Message = MessagePending
	}

	return result
}
