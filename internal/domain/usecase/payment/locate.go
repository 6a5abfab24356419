package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
)

// PaymentLocator finds the payment record an invoice refers to and repairs
// records whose transaction ID echoes the invoice ID
type PaymentLocator struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	window       coreport.Duration
}

// NewPaymentLocator creates a new PaymentLocator
func NewPaymentLocator(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
) *PaymentLocator {
	return &PaymentLocator{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		window:       config.withDefaults().SessionFallbackWindow,
	}
}

// Locate resolves the payment for req.InvoiceID. Lookup order:
//  1. invoice ID
//  2. transaction ID equal to the invoice ID, re-keyed onto the invoice ID
//  3. the session user's newest open payment within the fallback window (redirect POSTs only)
//
// The returned payment never has a transaction ID equal to its invoice ID.
func (l *PaymentLocator) Locate(ctx context.Context, req usecase.VerifyRequest) (*entity.Payment, error) {
	payment, err := l.find(ctx, req)
	if err != nil {
		return nil, err
	}

	if payment.HasCorruptTransactionID() {
		if err := l.clearCorruptTransactionID(ctx, payment); err != nil {
			return nil, err
		}
	}

	return payment, nil
}

func (l *PaymentLocator) find(ctx context.Context, req usecase.VerifyRequest) (*entity.Payment, error) {
	repo := l.uow.GetPaymentRepository(ctx)

	payment, err := repo.GetByInvoiceID(ctx, req.InvoiceID)
	if err == nil {
		return payment, nil
	}
	if !errors.Is(err, errs.ErrPaymentNotFound) {
		return nil, err
	}

	payment, err = repo.GetByTransactionID(ctx, req.InvoiceID)
	if err == nil {
		l.logger.Warn("Payment found by transaction ID matching invoice ID, re-keying", map[string]any{
			"invoice_id":        req.InvoiceID,
			"payment_id":        payment.ID,
			"stored_invoice_id": payment.InvoiceID,
		})
		return l.adopt(ctx, repo, payment.ID, req.InvoiceID)
	}
	if !errors.Is(err, errs.ErrPaymentNotFound) {
		return nil, err
	}

	if req.AllowSessionFallback && req.FromRedirect && req.SessionUserID != nil {
		since := l.timeProvider.Now().Add(-l.window.Std())
		payment, err = repo.FindRecentOpenByUser(ctx, *req.SessionUserID, since)
		if err == nil {
			l.logger.Info("Adopting recent session payment for invoice", map[string]any{
				"invoice_id":        req.InvoiceID,
				"payment_id":        payment.ID,
				"user_id":           payment.UserID,
				"stored_invoice_id": payment.InvoiceID,
			})
			return l.adopt(ctx, repo, payment.ID, req.InvoiceID)
		}
		if !errors.Is(err, errs.ErrPaymentNotFound) {
			return nil, err
		}
	}

	l.logger.Info("Payment record not found", map[string]any{
		"invoice_id":       req.InvoiceID,
		"session_fallback": req.AllowSessionFallback && req.SessionUserID != nil,
	})
	return nil, errs.ErrPaymentNotFound
}

// adopt stamps invoiceID onto the payment and reads it back
func (l *PaymentLocator) adopt(
	ctx context.Context,
	repo persistence.PaymentRepository,
	paymentID uint64,
	invoiceID string,
) (*entity.Payment, error) {
	if err := repo.AssignInvoiceID(ctx, paymentID, invoiceID); err != nil {
		return nil, fmt.Errorf("failed to assign invoice ID: %w", err)
	}
	return repo.GetByInvoiceID(ctx, invoiceID)
}

func (l *PaymentLocator) clearCorruptTransactionID(ctx context.Context, payment *entity.Payment) error {
	l.logger.Warn("Clearing transaction ID equal to invoice ID", map[string]any{
		"invoice_id": payment.InvoiceID,
		"payment_id": payment.ID,
	})

	if err := l.uow.GetPaymentRepository(ctx).ClearTransactionID(ctx, payment.ID); err != nil {
		return fmt.Errorf("failed to clear corrupt transaction ID: %w", err)
	}
	payment.TransactionID = nil
	return nil
}
