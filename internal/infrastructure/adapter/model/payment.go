package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the add-funds record written when a user starts a top-up
type Payment struct {
	ID            uint64           `gorm:"primaryKey;autoIncrement"`
	InvoiceID     string           `gorm:"column:invoice_id;type:varchar(191);uniqueIndex;not null"`
	TransactionID *string          `gorm:"column:transaction_id;type:varchar(191);index"`
	UserID        uint64           `gorm:"column:user_id;not null;index:idx_add_funds_user_created_status,priority:1"`
	Amount        decimal.Decimal  `gorm:"type:numeric(20,2);not null;default:0"`
	GatewayFee    *decimal.Decimal `gorm:"column:gateway_fee;type:numeric(20,2)"`
	PaymentMethod *string          `gorm:"column:payment_method;type:varchar(64)"`
	Name          *string          `gorm:"type:varchar(191)"`
	Email         *string          `gorm:"type:varchar(191)"`
	Status        string           `gorm:"type:varchar(20);not null;default:'Processing';index:idx_add_funds_user_created_status,priority:3"`
	AdminStatus   string           `gorm:"column:admin_status;type:varchar(20);not null;default:'Pending'"`
	CreatedAt     time.Time        `gorm:"not null;index:idx_add_funds_user_created_status,priority:2"`
	UpdatedAt     time.Time        `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "add_funds"
}
