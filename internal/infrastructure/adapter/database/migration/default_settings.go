package migration

import (
	"context"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedDefaultSettings inserts the settings row with no deposit bonus, leaving an existing row untouched
func SeedDefaultSettings(ctx context.Context, db *gorm.DB, timeProvider coreport.TimeProvider) error {
	settings := model.UserSettings{
		ID:              entity.SettingsID,
		BonusPercentage: decimal.Zero,
		UpdatedAt:       timeProvider.Now(),
	}

	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&settings).Error
}
