package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"gorm.io/gorm"
)

// TransactionIDCheckConstraint is the name of the constraint forbidding transaction_id = invoice_id
const TransactionIDCheckConstraint = "chk_add_funds_txid_not_invoice"

// HealTransactionIDs clears transaction IDs that were stored equal to their invoice ID
type HealTransactionIDs struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewHealTransactionIDs creates a new migration instance
func NewHealTransactionIDs(db *gorm.DB, logger coreport.Logger) *HealTransactionIDs {
	return &HealTransactionIDs{
		db:     db,
		logger: logger,
	}
}

// Run heals the rows and installs the constraint, returning the number of rows healed
func (m *HealTransactionIDs) Run(ctx context.Context) (int64, error) {
	m.logger.Info("Healing add_funds rows with echoed transaction IDs", nil)

	result := m.db.WithContext(ctx).Exec(`
		UPDATE add_funds
		SET transaction_id = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE transaction_id = invoice_id
	`)
	if result.Error != nil {
		m.logger.Error("Failed to heal transaction IDs", map[string]any{"error": result.Error.Error()})
		return 0, result.Error
	}
	healed := result.RowsAffected

	exists, err := m.constraintExists(ctx)
	if err != nil {
		return 0, err
	}

	if !exists {
		if err := m.db.WithContext(ctx).Exec(`
			ALTER TABLE add_funds
			ADD CONSTRAINT ` + TransactionIDCheckConstraint + `
			CHECK (transaction_id IS NULL OR transaction_id <> invoice_id)
		`).Error; err != nil {
			m.logger.Error("Failed to add transaction ID check constraint", map[string]any{"error": err.Error()})
			return 0, err
		}
	}

	m.logger.Info("Transaction ID heal completed", map[string]any{
		"rows_healed":        healed,
		"constraint_created": !exists,
	})
	return healed, nil
}

func (m *HealTransactionIDs) constraintExists(ctx context.Context) (bool, error) {
	var count int64
	err := m.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM pg_constraint
		WHERE conname = ?
	`, TransactionIDCheckConstraint).Scan(&count).Error
	if err != nil {
		m.logger.Error("Failed to check constraint existence", map[string]any{"error": err.Error()})
		return false, err
	}
	return count > 0, nil
}
