package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
)

// PaymentStatus is the local lifecycle status of a payment record
type PaymentStatus string

// PaymentStatus values
const (
	PaymentStatusProcessing PaymentStatus = "Processing"
	PaymentStatusSuccess    PaymentStatus = "Success"
	PaymentStatusCancelled  PaymentStatus = "Cancelled"
)

// legacyPendingStatus is written by older checkout code for records that are still in flight
const legacyPendingStatus = "Pending"

// AdminStatus is the admin-facing review status of a payment record
type AdminStatus string

// AdminStatus values
const (
	AdminStatusPending   AdminStatus = "Pending"
	AdminStatusSuccess   AdminStatus = "Success"
	AdminStatusCancelled AdminStatus = "Cancelled"
)

// ResponseStatus is the status token reported to verification callers
type ResponseStatus string

// ResponseStatus values
const (
	ResponseCompleted ResponseStatus = "COMPLETED"
	ResponsePending   ResponseStatus = "PENDING"
	ResponseCancelled ResponseStatus = "CANCELLED"
	ResponseFailed    ResponseStatus = "FAILED"
)

// paymentTransitions lists the statuses each status may move to.
// Success is terminal. Cancelled never returns to Processing, but a gateway
// confirmed settlement still wins over an earlier cancellation.
var paymentTransitions = map[PaymentStatus]map[PaymentStatus]bool{
	PaymentStatusProcessing: {
		PaymentStatusProcessing: true,
		PaymentStatusSuccess:    true,
		PaymentStatusCancelled:  true,
	},
	PaymentStatusSuccess: {
		PaymentStatusSuccess: true,
	},
	PaymentStatusCancelled: {
		PaymentStatusCancelled: true,
		PaymentStatusSuccess:   true,
	},
}

// ParsePaymentStatus converts a stored status string into a PaymentStatus
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch strings.TrimSpace(raw) {
	case string(PaymentStatusProcessing), legacyPendingStatus:
		return PaymentStatusProcessing, nil
	case string(PaymentStatusSuccess):
		return PaymentStatusSuccess, nil
	case string(PaymentStatusCancelled):
		return PaymentStatusCancelled, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidStatus, raw)
	}
}

// OpenPaymentStatuses returns the raw stored values of payments that are still in flight
func OpenPaymentStatuses() []string {
	return []string{string(PaymentStatusProcessing), legacyPendingStatus}
}

// CanTransitionTo reports whether a payment in status s may be moved to next
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return paymentTransitions[s][next]
}

// IsTerminal reports whether no further verification can change the status
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess
}

// ResponseStatus maps the local status to the token reported to callers
func (s PaymentStatus) ResponseStatus() ResponseStatus {
	switch s {
	case PaymentStatusSuccess:
		return ResponseCompleted
	case PaymentStatusCancelled:
		return ResponseCancelled
	default:
		return ResponsePending
	}
}

// AdminStatusFor mirrors terminal payment statuses into the admin status
func AdminStatusFor(s PaymentStatus) AdminStatus {
	switch s {
	case PaymentStatusSuccess:
		return AdminStatusSuccess
	case PaymentStatusCancelled:
		return AdminStatusCancelled
	default:
		return AdminStatusPending
	}
}

// GatewayStatus is the status reported by the payment gateway's verify endpoint
type GatewayStatus string

// GatewayStatus values
const (
	GatewayStatusCompleted GatewayStatus = "COMPLETED"
	GatewayStatusSuccess   GatewayStatus = "SUCCESS"
	GatewayStatusPending   GatewayStatus = "PENDING"
	GatewayStatusCancelled GatewayStatus = "CANCELLED"
	GatewayStatusFailed    GatewayStatus = "FAILED"
	GatewayStatusError     GatewayStatus = "ERROR"
	GatewayStatusUnknown   GatewayStatus = "UNKNOWN"
)

// gatewayTransitions maps every gateway status to the local status it resolves to
var gatewayTransitions = map[GatewayStatus]PaymentStatus{
	GatewayStatusCompleted: PaymentStatusSuccess,
	GatewayStatusSuccess:   PaymentStatusSuccess,
	GatewayStatusPending:   PaymentStatusProcessing,
	GatewayStatusCancelled: PaymentStatusCancelled,
	GatewayStatusFailed:    PaymentStatusCancelled,
	GatewayStatusError:     PaymentStatusCancelled,
	GatewayStatusUnknown:   PaymentStatusProcessing,
}

// GatewayStatuses returns every gateway status the service understands
func GatewayStatuses() []GatewayStatus {
	return []GatewayStatus{
		GatewayStatusCompleted,
		GatewayStatusSuccess,
		GatewayStatusPending,
		GatewayStatusCancelled,
		GatewayStatusFailed,
		GatewayStatusError,
		GatewayStatusUnknown,
	}
}

// ParseGatewayStatus normalizes a raw gateway status. Unrecognized values become GatewayStatusUnknown.
func ParseGatewayStatus(raw string) GatewayStatus {
	status := GatewayStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := gatewayTransitions[status]; !ok {
		return GatewayStatusUnknown
	}
	return status
}

// LocalStatus resolves the gateway status into a local payment status
func (g GatewayStatus) LocalStatus() PaymentStatus {
	if status, ok := gatewayTransitions[g]; ok {
		return status
	}
	return PaymentStatusProcessing
}

// IsTerminalError reports whether the gateway rejected the invoice outright
func (g GatewayStatus) IsTerminalError() bool {
	return g == GatewayStatusError
}
