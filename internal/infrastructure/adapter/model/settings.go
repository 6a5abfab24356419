package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserSettings is the singleton row of deposit configuration
type UserSettings struct {
	ID              uint64          `gorm:"primaryKey"`
	BonusPercentage decimal.Decimal `gorm:"column:bonus_percentage;type:numeric(6,2);not null;default:0"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName specifies the table name for UserSettings
func (UserSettings) TableName() string {
	return "user_settings"
}
