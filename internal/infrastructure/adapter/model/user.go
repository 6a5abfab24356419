package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User holds the balance columns credited by settled payments
type User struct {
	ID           uint64          `gorm:"primaryKey"`
	Balance      decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	BalanceUSD   decimal.Decimal `gorm:"column:balance_usd;type:numeric(20,2);not null;default:0"`
	TotalDeposit decimal.Decimal `gorm:"column:total_deposit;type:numeric(20,2);not null;default:0"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
