package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var _ persistence.SettingsRepository = (*SettingsRepository)(nil)

// SettingsRepository reads the singleton user_settings row
type SettingsRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewSettingsRepository creates a new SettingsRepository instance
func NewSettingsRepository(db *gorm.DB, logger coreport.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns the deposit settings. A missing row means no bonus is configured.
func (r *SettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	var m model.UserSettings
	err := r.db.WithContext(ctx).First(&m, entity.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User settings row missing, using zero bonus", map[string]any{"settings_id": entity.SettingsID})
		return &entity.Settings{BonusPercentage: decimal.Zero}, nil
	}
	if err != nil {
		r.logger.Error("Failed to load user settings", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	return &entity.Settings{
		BonusPercentage: m.BonusPercentage,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}
