package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes the models cannot express
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

type indexStatement struct {
	name string
	sql  string
}

var advancedIndexes = []indexStatement{
	{
		// stale sweep scans only in-flight rows by age
		name: "idx_add_funds_open_created_at",
		sql: `CREATE INDEX IF NOT EXISTS idx_add_funds_open_created_at
			ON add_funds (created_at)
			WHERE status IN ('Processing', 'Pending')`,
	},
	{
		name: "idx_add_funds_created_at_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_add_funds_created_at_brin
			ON add_funds USING BRIN (created_at)
			WITH (pages_per_range = 32)`,
	},
	{
		name: "idx_add_funds_settled_user",
		sql: `CREATE INDEX IF NOT EXISTS idx_add_funds_settled_user
			ON add_funds (user_id, created_at)
			WHERE status = 'Success'`,
	},
}

// CreateAdvancedIndexes creates partial and BRIN indexes on add_funds
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	for _, idx := range advancedIndexes {
		if err := m.db.WithContext(ctx).Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreatePerformanceTweaks applies storage settings; failures are logged and ignored
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	tweaks := []string{
		// status and verification fields are rewritten in place
		`ALTER TABLE add_funds SET (fillfactor = 90)`,
		`ALTER TABLE users SET (fillfactor = 90)`,
		`ALTER TABLE add_funds ALTER COLUMN user_id SET STATISTICS 1000`,
	}
	for _, stmt := range tweaks {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			m.logger.Warn("Failed to apply performance tweak", map[string]any{
				"statement": stmt,
				"error":     err.Error(),
			})
		}
	}
}
