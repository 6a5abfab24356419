package migration

import (
	"context"
	"errors"

	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.0.1"

	baseSchemaVersion = "1.0.0"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db               *gorm.DB
	logger           coreport.Logger
	timeProvider     coreport.TimeProvider
	advancedIndexMgr *AdvancedIndexManager
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:               db,
		logger:           logger,
		timeProvider:     timeProvider,
		advancedIndexMgr: NewAdvancedIndexManager(db, logger),
	}
}

// MigrateAll brings the schema to CurrentSchemaVersion. Each version step is recorded
// in migration_versions so a restarted service resumes where it stopped.
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.WithContext(ctx).AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	m.logger.Info("Current database version", map[string]any{
		"version": currentVersion,
	})

	if err := m.runVersionedMigrations(ctx, currentVersion); err != nil {
		m.logger.Error("Failed to run versioned migrations", map[string]any{
			"error":           err.Error(),
			"current_version": currentVersion,
			"target_version":  CurrentSchemaVersion,
		})
		return err
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion gets the latest applied migration version, or "" on a fresh database
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc, id desc").First(&version)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}

	return version.Version, nil
}

// setVersion records a new migration version
func (m *MigrationManager) setVersion(ctx context.Context, version, details string, rowsHealed int64) error {
	migrationVersion := model.MigrationVersion{
		Version:    version,
		AppliedAt:  m.timeProvider.Now(),
		Details:    details,
		RowsHealed: rowsHealed,
	}

	return m.db.WithContext(ctx).Create(&migrationVersion).Error
}

// runVersionedMigrations applies every step after currentVersion in order
func (m *MigrationManager) runVersionedMigrations(ctx context.Context, currentVersion string) error {
	m.logger.Info("Running versioned migrations", map[string]any{
		"from": currentVersion,
		"to":   CurrentSchemaVersion,
	})

	switch currentVersion {
	case "":
		if err := m.migrateBaseSchema(ctx); err != nil {
			return err
		}
		fallthrough
	case baseSchemaVersion:
		if err := m.migrateFrom1_0_0To1_0_1(ctx); err != nil {
			return err
		}
	}

	return nil
}

// migrateBaseSchema creates the tables, indexes and the settings row
func (m *MigrationManager) migrateBaseSchema(ctx context.Context) error {
	m.logger.Info("Auto-migrating database models", nil)

	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(
		&model.User{},
		&model.UserSettings{},
		&model.Payment{},
	); err != nil {
		return err
	}

	if err := m.advancedIndexMgr.CreateAdvancedIndexes(ctx); err != nil {
		return err
	}
	m.advancedIndexMgr.CreatePerformanceTweaks(ctx)

	if err := SeedDefaultSettings(ctx, db, m.timeProvider); err != nil {
		return err
	}

	return m.setVersion(ctx, baseSchemaVersion, "Base schema", 0)
}

// migrateFrom1_0_0To1_0_1 repairs rows whose transaction ID echoes the invoice ID and then
// forbids that state with a CHECK constraint
func (m *MigrationManager) migrateFrom1_0_0To1_0_1(ctx context.Context) error {
	m.logger.Info("Migrating from v1.0.0 to v1.0.1", nil)

	var healed int64
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		heal := NewHealTransactionIDs(tx, m.logger)
		n, err := heal.Run(ctx)
		if err != nil {
			return err
		}
		healed = n
		return nil
	})
	if err != nil {
		return err
	}

	return m.setVersion(ctx, CurrentSchemaVersion, "Heal echoed transaction IDs and add non-collision constraint", healed)
}
