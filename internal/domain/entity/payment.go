package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// Payment represents a user's attempt to fund their account through the payment gateway
type Payment struct {
	ID            uint64           // Internal identifier
	InvoiceID     string           // Gateway-assigned invoice identifier, unique per attempt
	TransactionID *string          // Gateway settlement reference, nil until settled
	UserID        uint64           // Owner of the payment
	Amount        decimal.Decimal  // Amount in origin currency units
	GatewayFee    *decimal.Decimal // Fee charged by the gateway
	PaymentMethod *string          // Gateway channel name
	Name          *string          // Payer-supplied name
	Email         *string          // Payer-supplied email
	Status        PaymentStatus
	AdminStatus   AdminStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPayment creates a payment in Processing state for a freshly issued invoice
func NewPayment(userID uint64, invoiceID string, amount decimal.Decimal, timeProvider coreport.TimeProvider) (*Payment, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, errs.ErrInvalidInvoiceID
	}
	if amount.IsNegative() {
		return nil, errs.ErrNegativeAmount
	}

	now := timeProvider.Now()
	return &Payment{
		InvoiceID:   invoiceID,
		UserID:      userID,
		Amount:      NormalizeAmount(amount),
		Status:      PaymentStatusProcessing,
		AdminStatus: AdminStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// HasCorruptTransactionID reports whether the stored transaction ID echoes the invoice ID
func (p *Payment) HasCorruptTransactionID() bool {
	return p.TransactionID != nil && *p.TransactionID == p.InvoiceID
}

// IsSettled reports whether the payment has already been credited
func (p *Payment) IsSettled() bool {
	return p.Status == PaymentStatusSuccess
}

// TransactionIDValue returns the transaction ID or an empty string
func (p *Payment) TransactionIDValue() string {
	if p.TransactionID == nil {
		return ""
	}
	return *p.TransactionID
}

// IsUsableTransactionID reports whether a gateway transaction ID may be stored for invoiceID
func IsUsableTransactionID(transactionID *string, invoiceID string) bool {
	if transactionID == nil {
		return false
	}
	value := strings.TrimSpace(*transactionID)
	return value != "" && value != invoiceID
}

// PaymentUpdate holds the full set of fields written back after a verification
type PaymentUpdate struct {
	TransactionID *string
	PaymentMethod *string
	GatewayFee    *decimal.Decimal
	Amount        decimal.Decimal
	Name          *string
	Email         *string
	Status        PaymentStatus
	AdminStatus   AdminStatus
}
