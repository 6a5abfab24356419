package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// Verification is the parsed body of one successful verify-by-invoice call.
// Nil fields were absent from the response.
type Verification struct {
	InvoiceID     *string
	TransactionID *string
	PaymentMethod *string
	Status        *string
	Amount        *decimal.Decimal
	ChargedAmount *decimal.Decimal
	Fee           *decimal.Decimal
	FullName      *string
	Email         *string
	Message       *string
}

// PaymentGateway verifies invoices against the external payment gateway
type PaymentGateway interface {
	// CheckConfiguration returns ErrGatewayNotConfigured when credentials or endpoint are missing
	CheckConfiguration() error

	// Verify performs a single verify-by-invoice call.
	// Network failures and non-OK responses return an error wrapping ErrGatewayUnavailable.
	Verify(ctx context.Context, invoiceID string) (*Verification, error)
}
