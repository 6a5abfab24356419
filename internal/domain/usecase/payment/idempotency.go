package payment

import (
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
)

// IdempotencyHandler short-circuits verification of payments that are already settled
type IdempotencyHandler struct {
	logger coreport.Logger
}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler(logger coreport.Logger) *IdempotencyHandler {
	return &IdempotencyHandler{
		logger: logger,
	}
}

// CheckSettled returns the "already verified" result when the payment is settled.
// A settled payment is never sent to the gateway or credited again.
func (h *IdempotencyHandler) CheckSettled(payment *entity.Payment) (*usecase.VerificationResult, bool) {
	if !payment.IsSettled() {
		return nil, false
	}

	h.logger.Info("Payment already verified", map[string]any{
		"invoice_id":     payment.InvoiceID,
		"payment_id":     payment.ID,
		"transaction_id": payment.TransactionIDValue(),
	})

	return alreadyVerifiedResult(payment), true
}
