package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/event"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/persistence"
)

// Settlement is the persisted result of one verification
type Settlement struct {
	// Payment is the record as re-read after the write
	Payment *entity.Payment
	// Credited is true only for the call that moved the payment to Success
	Credited bool
	// Deposit is the credit applied when Credited is true
	Deposit *entity.Deposit
}

// Settler writes verification results and credits users for settled payments
type Settler struct {
	uow             persistence.UnitOfWork
	settingsRepo    persistence.SettingsRepository
	publisher       event.Publisher
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	maxClaimRetries int
}

// NewSettler creates a new Settler
func NewSettler(
	uow persistence.UnitOfWork,
	settingsRepo persistence.SettingsRepository,
	publisher event.Publisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
) *Settler {
	return &Settler{
		uow:             uow,
		settingsRepo:    settingsRepo,
		publisher:       publisher,
		timeProvider:    timeProvider,
		logger:          logger,
		maxClaimRetries: config.withDefaults().MaxClaimRetries,
	}
}

// BuildUpdate computes the fields to write. Every field falls back to the stored value
// when the gateway did not report it; the gateway's charged amount replaces the amount.
func BuildUpdate(payment *entity.Payment, acc *Accumulator, status entity.PaymentStatus) entity.PaymentUpdate {
	update := entity.PaymentUpdate{
		PaymentMethod: payment.PaymentMethod,
		GatewayFee:    payment.GatewayFee,
		Amount:        payment.Amount,
		Name:          payment.Name,
		Email:         payment.Email,
		Status:        status,
		AdminStatus:   payment.AdminStatus,
	}
	if entity.IsUsableTransactionID(payment.TransactionID, payment.InvoiceID) {
		update.TransactionID = payment.TransactionID
	}
	if status != entity.PaymentStatusProcessing {
		update.AdminStatus = entity.AdminStatusFor(status)
	}

	if acc == nil {
		return update
	}

	if acc.TransactionID != nil {
		update.TransactionID = acc.TransactionID
	}
	if acc.PaymentMethod != nil {
		update.PaymentMethod = acc.PaymentMethod
	}
	if acc.Fee != nil {
		fee := entity.NormalizeAmount(*acc.Fee)
		update.GatewayFee = &fee
	}
	if acc.ChargedAmount != nil && !acc.ChargedAmount.IsNegative() {
		update.Amount = entity.NormalizeAmount(*acc.ChargedAmount)
	}
	if acc.FullName != nil {
		update.Name = acc.FullName
	}
	if acc.Email != nil {
		update.Email = acc.Email
	}

	return update
}

// Persist writes update for payment. A Success update claims the payment and credits
// its owner in one transaction; anything else only touches the payment's own fields.
// The record is re-read afterwards and any transaction ID equal to the invoice ID is cleared.
func (s *Settler) Persist(ctx context.Context, payment *entity.Payment, update entity.PaymentUpdate) (*Settlement, error) {
	settlement := &Settlement{}

	if update.Status == entity.PaymentStatusSuccess {
		deposit, err := s.settle(ctx, payment, update)
		if err != nil {
			return nil, err
		}
		if deposit != nil {
			settlement.Credited = true
			settlement.Deposit = deposit
		}
	} else if err := s.record(ctx, payment, update); err != nil {
		return nil, err
	}

	refreshed, err := s.recheck(ctx, payment.InvoiceID)
	if err != nil {
		return nil, err
	}
	settlement.Payment = refreshed

	if settlement.Credited {
		s.publishSucceeded(ctx, refreshed, *settlement.Deposit)
	}

	return settlement, nil
}

// settle runs the claim-and-credit transaction, retrying serialization failures.
// A nil deposit means another call settled the payment first.
func (s *Settler) settle(ctx context.Context, payment *entity.Payment, update entity.PaymentUpdate) (*entity.Deposit, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bonus settings: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxClaimRetries; attempt++ {
		deposit, err := s.claimAndCredit(ctx, payment, update, settings)
		if err == nil {
			return deposit, nil
		}
		lastErr = err

		if !errs.IsRetryableError(err) {
			return nil, err
		}

		s.logger.Warn("Retrying claim-and-credit after serialization failure", map[string]any{
			"invoice_id": payment.InvoiceID,
			"payment_id": payment.ID,
			"attempt":    attempt,
			"error":      err.Error(),
		})
	}

	return nil, lastErr
}

func (s *Settler) claimAndCredit(
	ctx context.Context,
	payment *entity.Payment,
	update entity.PaymentUpdate,
	settings *entity.Settings,
) (*entity.Deposit, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back claim-and-credit transaction", map[string]any{
				"invoice_id": payment.InvoiceID,
				"error":      rbErr.Error(),
			})
		}
	}()

	claimed, err := s.uow.GetPaymentRepository(txCtx).ClaimSuccess(txCtx, payment.InvoiceID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to claim payment: %w", err)
	}
	if !claimed {
		s.logger.Info("Payment was settled by a concurrent verification, skipping credit", map[string]any{
			"invoice_id": payment.InvoiceID,
			"payment_id": payment.ID,
		})
		return nil, nil
	}

	settled := *payment
	settled.Amount = update.Amount

	deposit, err := entity.NewDeposit(&settled, settings.BonusPercentage)
	if err != nil {
		return nil, err
	}

	user, err := s.uow.GetUserRepository(txCtx).ApplyDeposit(txCtx, deposit)
	if errors.Is(err, errs.ErrUserNotFound) {
		// the payment exists; its owner row does not
		return nil, fmt.Errorf("%w: payment %d references missing user %d",
			errs.ErrConstraintViolation, payment.ID, deposit.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to credit user: %w", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit claim-and-credit: %w", err)
	}
	committed = true

	s.logger.Info("Payment settled and user credited", map[string]any{
		"invoice_id":  payment.InvoiceID,
		"payment_id":  payment.ID,
		"user_id":     deposit.UserID,
		"amount":      entity.FormatAmount(deposit.Amount),
		"bonus":       entity.FormatAmount(deposit.Bonus),
		"new_balance": entity.FormatAmount(user.Balance),
	})

	return &deposit, nil
}

// record writes non-financial verification fields
func (s *Settler) record(ctx context.Context, payment *entity.Payment, update entity.PaymentUpdate) error {
	rows, err := s.uow.GetPaymentRepository(ctx).UpdateVerification(ctx, payment.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	if rows == 0 {
		s.logger.Info("Payment was settled concurrently, verification fields left untouched", map[string]any{
			"invoice_id": payment.InvoiceID,
			"payment_id": payment.ID,
		})
		return nil
	}

	s.logger.Debug("Payment verification recorded", map[string]any{
		"invoice_id": payment.InvoiceID,
		"payment_id": payment.ID,
		"status":     string(update.Status),
	})
	return nil
}

// recheck re-reads the payment and clears a transaction ID equal to the invoice ID
func (s *Settler) recheck(ctx context.Context, invoiceID string) (*entity.Payment, error) {
	repo := s.uow.GetPaymentRepository(ctx)

	payment, err := repo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read payment: %w", err)
	}

	if payment.HasCorruptTransactionID() {
		s.logger.Warn("Transaction ID equal to invoice ID found after write, clearing", map[string]any{
			"invoice_id": invoiceID,
			"payment_id": payment.ID,
		})
		if err := repo.ClearTransactionID(ctx, payment.ID); err != nil {
			return nil, fmt.Errorf("failed to clear corrupt transaction ID: %w", err)
		}
		payment.TransactionID = nil
	}

	return payment, nil
}

// publishSucceeded emits the payment-succeeded event. Failures are logged only.
func (s *Settler) publishSucceeded(ctx context.Context, payment *entity.Payment, deposit entity.Deposit) {
	evt := entity.NewPaymentSucceededEvent(payment, deposit, s.timeProvider.Now())

	if err := s.publisher.PublishPaymentSucceeded(ctx, evt); err != nil {
		s.logger.Warn("Failed to publish payment succeeded event", map[string]any{
			"invoice_id": payment.InvoiceID,
			"payment_id": payment.ID,
			"event_id":   evt.EventID,
			"error":      fmt.Errorf("%w: %s", errs.ErrNotificationFailed, err.Error()).Error(),
		})
	}
}
