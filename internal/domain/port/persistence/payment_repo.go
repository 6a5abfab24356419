package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
)

// PaymentRepository defines access to the add-funds payment records
type PaymentRepository interface {
	// GetByInvoiceID retrieves a payment by its invoice ID
	//
	// Possible errors:
	// - ErrPaymentNotFound: If no record has this invoice ID
	// - ErrDatabaseConnection: If database connection fails
	GetByInvoiceID(ctx context.Context, invoiceID string) (*entity.Payment, error)

	// GetByTransactionID retrieves a payment whose transaction ID equals the given value
	//
	// Possible errors:
	// - ErrPaymentNotFound: If no record has this transaction ID
	// - ErrDatabaseConnection: If database connection fails
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)

	// FindRecentOpenByUser returns the newest in-flight payment of a user created after since
	//
	// Possible errors:
	// - ErrPaymentNotFound: If the user has no such payment
	// - ErrDatabaseConnection: If database connection fails
	FindRecentOpenByUser(ctx context.Context, userID uint64, since time.Time) (*entity.Payment, error)

	// AssignInvoiceID stamps invoiceID onto the payment with the given ID
	//
	// Possible errors:
	// - ErrPaymentNotFound: If the payment doesn't exist
	// - ErrDuplicatePayment: If another record already owns invoiceID
	// - ErrDatabaseConnection: If database connection fails
	AssignInvoiceID(ctx context.Context, paymentID uint64, invoiceID string) error

	// ClearTransactionID sets the transaction ID of a payment to NULL
	ClearTransactionID(ctx context.Context, paymentID uint64) error

	// UpdateVerification writes verification details of a payment that is not yet settled.
	// Returns the number of rows changed; 0 means the payment was settled concurrently.
	UpdateVerification(ctx context.Context, paymentID uint64, update entity.PaymentUpdate) (int64, error)

	// ClaimSuccess moves the payment with invoiceID to Success with the given details only if
	// it is not already settled. Returns true when this call performed the transition.
	ClaimSuccess(ctx context.Context, invoiceID string, update entity.PaymentUpdate) (bool, error)

	// ListStale returns in-flight payments created within [createdAfter, createdBefore], oldest first
	ListStale(ctx context.Context, createdAfter, createdBefore time.Time, limit int) ([]*entity.Payment, error)
}
