package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

var _ persistence.PaymentRepository = (*PaymentRepository)(nil)

// PaymentRepository implements PaymentRepository interface using GORM
type PaymentRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewPaymentRepository creates a new PaymentRepository instance
func NewPaymentRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a payment model to an entity
func (r *PaymentRepository) modelToEntity(m *model.Payment) (*entity.Payment, error) {
	status, err := entity.ParsePaymentStatus(m.Status)
	if err != nil {
		r.logger.Error("Stored payment has unknown status", map[string]any{
			"payment_id": m.ID,
			"status":     m.Status,
		})
		return nil, fmt.Errorf("%w: payment %d has status %q", errs.ErrInternalServer, m.ID, m.Status)
	}

	return &entity.Payment{
		ID:            m.ID,
		InvoiceID:     m.InvoiceID,
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Amount:        m.Amount,
		GatewayFee:    m.GatewayFee,
		PaymentMethod: m.PaymentMethod,
		Name:          m.Name,
		Email:         m.Email,
		Status:        status,
		AdminStatus:   entity.AdminStatus(m.AdminStatus),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// updateColumns maps a verification update onto add_funds columns
func (r *PaymentRepository) updateColumns(update entity.PaymentUpdate) map[string]interface{} {
	return map[string]interface{}{
		"transaction_id": update.TransactionID,
		"payment_method": update.PaymentMethod,
		"gateway_fee":    update.GatewayFee,
		"amount":         entity.NormalizeAmount(update.Amount),
		"name":           update.Name,
		"email":          update.Email,
		"status":         string(update.Status),
		"admin_status":   string(update.AdminStatus),
		"updated_at":     r.timeProvider.Now(),
	}
}

// handleDatabaseError standardizes database error handling
func (r *PaymentRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Debug(fmt.Sprintf("Payment not found when %s", operation), fields)
		return errs.ErrPaymentNotFound
	}

	logFields := map[string]any{"error": err.Error()}
	for k, v := range fields {
		logFields[k] = v
	}

	switch r.errorClassifier.Classify(err) {
	case DuplicateKeyError:
		r.logger.Warn(fmt.Sprintf("Duplicate payment when %s", operation), logFields)
		return errs.ErrDuplicatePayment
	case SerializationError:
		r.logger.Warn(fmt.Sprintf("Serialization failure when %s", operation), logFields)
		return fmt.Errorf("%w: %s", errs.ErrSerializationFailure, err.Error())
	case ConstraintError:
		r.logger.Error(fmt.Sprintf("Constraint violation when %s", operation), logFields)
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), logFields)
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

func (r *PaymentRepository) first(ctx context.Context, operation string, fields map[string]any, query string, args ...interface{}) (*entity.Payment, error) {
	var m model.Payment
	result := r.db.WithContext(ctx).Where(query, args...).First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError(operation, result.Error, fields)
	}
	return r.modelToEntity(&m)
}

// GetByInvoiceID retrieves a payment by its invoice ID
func (r *PaymentRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*entity.Payment, error) {
	return r.first(ctx, "getting payment by invoice ID",
		map[string]any{"invoice_id": invoiceID},
		"invoice_id = ?", invoiceID)
}

// GetByTransactionID retrieves a payment by its gateway transaction ID
func (r *PaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	return r.first(ctx, "getting payment by transaction ID",
		map[string]any{"transaction_id": transactionID},
		"transaction_id = ?", transactionID)
}

// FindRecentOpenByUser returns the user's newest in-flight payment created after since
func (r *PaymentRepository) FindRecentOpenByUser(ctx context.Context, userID uint64, since time.Time) (*entity.Payment, error) {
	var m model.Payment
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ? AND created_at >= ?", userID, entity.OpenPaymentStatuses(), since).
		Order("created_at DESC").
		First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("finding recent open payment", result.Error, map[string]any{
			"user_id": userID,
			"since":   since,
		})
	}
	return r.modelToEntity(&m)
}

// AssignInvoiceID stamps invoiceID onto a payment. A transaction ID equal to the new
// invoice ID is cleared in the same statement to satisfy chk_add_funds_txid_not_invoice.
func (r *PaymentRepository) AssignInvoiceID(ctx context.Context, paymentID uint64, invoiceID string) error {
	result := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{
			"invoice_id":     invoiceID,
			"transaction_id": gorm.Expr("CASE WHEN transaction_id = ? THEN NULL ELSE transaction_id END", invoiceID),
			"updated_at":     r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("assigning invoice ID", result.Error, map[string]any{
			"payment_id": paymentID,
			"invoice_id": invoiceID,
		})
	}
	if result.RowsAffected == 0 {
		return errs.ErrPaymentNotFound
	}

	r.logger.Info("Invoice ID assigned to payment", map[string]any{
		"payment_id": paymentID,
		"invoice_id": invoiceID,
	})
	return nil
}

// ClearTransactionID sets transaction_id to NULL
func (r *PaymentRepository) ClearTransactionID(ctx context.Context, paymentID uint64) error {
	result := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{
			"transaction_id": gorm.Expr("NULL"),
			"updated_at":     r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("clearing transaction ID", result.Error, map[string]any{
			"payment_id": paymentID,
		})
	}
	if result.RowsAffected == 0 {
		return errs.ErrPaymentNotFound
	}
	return nil
}

// UpdateVerification writes verification fields unless the payment is already settled
func (r *PaymentRepository) UpdateVerification(ctx context.Context, paymentID uint64, update entity.PaymentUpdate) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ? AND status <> ?", paymentID, string(entity.PaymentStatusSuccess)).
		Updates(r.updateColumns(update))
	if result.Error != nil {
		return 0, r.handleDatabaseError("updating payment verification", result.Error, map[string]any{
			"payment_id": paymentID,
			"status":     string(update.Status),
		})
	}
	return result.RowsAffected, nil
}

// ClaimSuccess conditionally moves the payment to Success.
// Exactly one concurrent caller observes a changed row.
func (r *PaymentRepository) ClaimSuccess(ctx context.Context, invoiceID string, update entity.PaymentUpdate) (bool, error) {
	update.Status = entity.PaymentStatusSuccess
	update.AdminStatus = entity.AdminStatusSuccess

	result := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("invoice_id = ? AND status <> ?", invoiceID, string(entity.PaymentStatusSuccess)).
		Updates(r.updateColumns(update))
	if result.Error != nil {
		return false, r.handleDatabaseError("claiming payment", result.Error, map[string]any{
			"invoice_id": invoiceID,
		})
	}

	claimed := result.RowsAffected == 1
	r.logger.Debug("Payment claim attempted", map[string]any{
		"invoice_id": invoiceID,
		"claimed":    claimed,
	})
	return claimed, nil
}

// ListStale returns in-flight payments created within the window, oldest first
func (r *PaymentRepository) ListStale(ctx context.Context, createdAfter, createdBefore time.Time, limit int) ([]*entity.Payment, error) {
	var models []model.Payment
	result := r.db.WithContext(ctx).
		Where("status IN ? AND created_at BETWEEN ? AND ?", entity.OpenPaymentStatuses(), createdAfter, createdBefore).
		Order("created_at ASC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing stale payments", result.Error, map[string]any{
			"created_after":  createdAfter,
			"created_before": createdBefore,
		})
	}

	payments := make([]*entity.Payment, 0, len(models))
	for i := range models {
		payment, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}
