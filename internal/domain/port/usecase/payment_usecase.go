package usecase

import (
	"context"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
)

// VerifyRequest carries the inputs of one verification call, independent of transport
type VerifyRequest struct {
	InvoiceID       string
	FromRedirect    bool
	CancelledByUser bool

	// SessionUserID is the authenticated caller, if any
	SessionUserID *uint64
	// AllowSessionFallback enables adopting the caller's most recent open payment
	AllowSessionFallback bool
}

// VerificationResult is the outcome reported back to the caller
type VerificationResult struct {
	Status  entity.ResponseStatus
	Message string
	Payment *entity.Payment
	Error   string
	Details string
}

// PaymentVerificationUseCase reconciles local payment records with the payment gateway
type PaymentVerificationUseCase interface {
	// Reconcile verifies the payment for req.InvoiceID, persisting the outcome and crediting
	// the owner at most once. On failure the returned result, when non-nil, still carries the
	// payment as last seen so callers can echo it.
	Reconcile(ctx context.Context, req VerifyRequest) (*VerificationResult, error)
}
