package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest          = 4000
	CodeInvalidInvoiceID        = 4001
	CodeInvalidAmount           = 4002
	CodeInvalidUserID           = 4003
	CodeConstraintViolation     = 4005
	CodeUnauthenticated         = 4010
	CodeUserNotFound            = 4040
	CodePaymentNotFound         = 4041
	CodeInvalidStatusTransition = 4090
	CodeDuplicatePayment        = 4091
	CodeRateLimited             = 4290

	// 5xxx - Server errors
	CodeInternalServer       = 5000
	CodeGatewayNotConfigured = 5001
	CodeGatewayUnavailable   = 5002
	CodeDatabaseConnection   = 5003
	CodeNotificationFailed   = 5004
)

// Base error types
var (
	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidInvoiceID is returned when the invoice ID is missing or blank
	ErrInvalidInvoiceID = errors.New("invoice ID is required")

	// ErrInvalidAmount is returned when a monetary amount cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a monetary amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidStatus is returned when a stored status is not one of the known values
	ErrInvalidStatus = errors.New("invalid payment status")

	// ErrInvalidStatusTransition is returned when a payment cannot move to the requested status
	ErrInvalidStatusTransition = errors.New("invalid payment status transition")

	// ErrUnauthenticated is returned when no session user can be resolved
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrPaymentNotFound is returned when no payment record matches an invoice
	ErrPaymentNotFound = errors.New("payment record not found")

	// ErrDuplicatePayment is returned when an invoice ID is already bound to another record
	ErrDuplicatePayment = errors.New("payment with this invoice ID already exists")

	// ErrGatewayNotConfigured is returned when the gateway URL or API key is missing
	ErrGatewayNotConfigured = errors.New("payment gateway is not configured")

	// ErrGatewayUnavailable is returned when the gateway cannot be reached or answers with a non-OK status
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrSerializationFailure is returned when a serializable transaction has to be retried
	ErrSerializationFailure = errors.New("transaction serialization failure")

	// ErrNotificationFailed is returned when a best-effort notification could not be delivered
	ErrNotificationFailed = errors.New("notification delivery failed")

	// ErrRateLimited is returned when a client exceeds the request budget
	ErrRateLimited = errors.New("too many requests")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// Kind groups errors by how callers are expected to react to them
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindConfiguration    Kind = "configuration"
	KindGatewayTransient Kind = "gateway_transient"
	KindPersistence      Kind = "persistence"
	KindNotification     Kind = "notification"
	KindInternal         Kind = "internal"
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInvoiceID):
		return CodeInvalidInvoiceID
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, ErrPaymentNotFound):
		return CodePaymentNotFound
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrInvalidStatusTransition):
		return CodeInvalidStatusTransition
	case errors.Is(err, ErrDuplicatePayment):
		return CodeDuplicatePayment
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrGatewayNotConfigured):
		return CodeGatewayNotConfigured
	case errors.Is(err, ErrGatewayUnavailable):
		return CodeGatewayUnavailable
	case errors.Is(err, ErrDatabaseConnection), errors.Is(err, ErrSerializationFailure):
		return CodeDatabaseConnection
	case errors.Is(err, ErrNotificationFailed):
		return CodeNotificationFailed
	default:
		return CodeInternalServer
	}
}

// KindOf classifies an error into the reconciliation error taxonomy
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidInvoiceID), errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrInvalidUserID), errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrNegativeAmount):
		return KindValidation
	case IsNotFoundError(err):
		return KindNotFound
	case errors.Is(err, ErrGatewayNotConfigured):
		return KindConfiguration
	case errors.Is(err, ErrGatewayUnavailable):
		return KindGatewayTransient
	case errors.Is(err, ErrDatabaseConnection), errors.Is(err, ErrConstraintViolation),
		errors.Is(err, ErrSerializationFailure), errors.Is(err, ErrDuplicatePayment):
		return KindPersistence
	case errors.Is(err, ErrNotificationFailed):
		return KindNotification
	default:
		return KindInternal
	}
}

// VerificationError describes a failure of one reconciliation step for an invoice
type VerificationError struct {
	InvoiceID string
	Step      string
	Err       error
}

// Error implements the error interface for VerificationError
func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification of invoice %s failed at %s: %v", e.InvoiceID, e.Step, e.Err)
}

// Unwrap returns the underlying error
func (e *VerificationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *VerificationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "verification_error",
		"error_kind": string(KindOf(e.Err)),
		"invoice_id": e.InvoiceID,
		"step":       e.Step,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewVerificationError wraps err with the invoice and step it occurred in
func NewVerificationError(invoiceID, step string, err error) error {
	return &VerificationError{
		InvoiceID: invoiceID,
		Step:      step,
		Err:       err,
	}
}

// GatewayError provides detailed information about a failed gateway call
type GatewayError struct {
	InvoiceID  string
	Attempt    int
	HTTPStatus int
	Reason     string
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("gateway verify for invoice %s failed on attempt %d with HTTP %d: %s",
			e.InvoiceID, e.Attempt, e.HTTPStatus, e.Reason)
	}
	return fmt.Sprintf("gateway verify for invoice %s failed on attempt %d: %s",
		e.InvoiceID, e.Attempt, e.Reason)
}

// Is checks if the target error is an ErrGatewayUnavailable
func (e *GatewayError) Is(target error) bool {
	return target == ErrGatewayUnavailable
}

// LogFields returns a map of fields for structured logging
func (e *GatewayError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "gateway_error",
		"invoice_id":  e.InvoiceID,
		"attempt":     e.Attempt,
		"http_status": e.HTTPStatus,
		"reason":      e.Reason,
		"error_code":  CodeGatewayUnavailable,
	}
}

// NewGatewayError creates a new detailed gateway error
func NewGatewayError(invoiceID string, attempt, httpStatus int, reason string) error {
	return &GatewayError{
		InvoiceID:  invoiceID,
		Attempt:    attempt,
		HTTPStatus: httpStatus,
		Reason:     reason,
	}
}

// StatusTransitionError describes a rejected payment status change
type StatusTransitionError struct {
	PaymentID uint64
	From      string
	To        string
}

// Error implements the error interface
func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("payment %d cannot move from %s to %s", e.PaymentID, e.From, e.To)
}

// Is checks if the target error is an ErrInvalidStatusTransition
func (e *StatusTransitionError) Is(target error) bool {
	return target == ErrInvalidStatusTransition
}

// LogFields returns a map of fields for structured logging
func (e *StatusTransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "status_transition",
		"payment_id": e.PaymentID,
		"from":       e.From,
		"to":         e.To,
		"error_code": CodeInvalidStatusTransition,
	}
}

// NewStatusTransitionError creates a new status transition error
func NewStatusTransitionError(paymentID uint64, from, to string) error {
	return &StatusTransitionError{PaymentID: paymentID, From: from, To: to}
}

// LogFieldsOf returns structured logging fields for err, using LogFields when available
func LogFieldsOf(err error) map[string]any {
	var lf interface{ LogFields() map[string]any }
	if errors.As(err, &lf) {
		return lf.LogFields()
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrPaymentNotFound)
}

// IsGatewayUnavailableError checks if the error is a transient gateway failure
func IsGatewayUnavailableError(err error) bool {
	return errors.Is(err, ErrGatewayUnavailable)
}

// IsValidationError checks if the error is caused by bad client input
func IsValidationError(err error) bool {
	return KindOf(err) == KindValidation
}

// IsRetryableError checks if the operation that produced err can safely be retried
func IsRetryableError(err error) bool {
	return errors.Is(err, ErrSerializationFailure)
}
