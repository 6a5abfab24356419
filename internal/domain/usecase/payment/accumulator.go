package payment

import (
	"strings"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/gateway"
	"github.com/shopspring/decimal"
)

// Accumulator merges the fields observed across gateway verification attempts.
//
// Merge rules per field:
//   - TransactionID: only values that are non-empty and differ from the invoice ID are kept;
//     a later usable value replaces an earlier one, an unusable one never does.
//   - PaymentMethod, FullName, Email: later non-empty values win.
//   - Fee, ChargedAmount, Message: later non-nil values win.
//   - Status: the status of the latest response that carried one wins.
type Accumulator struct {
	invoiceID string
	responses int

	TransactionID *string
	PaymentMethod *string
	Fee           *decimal.Decimal
	ChargedAmount *decimal.Decimal
	FullName      *string
	Email         *string
	Message       *string
	Status        entity.GatewayStatus
}

// NewAccumulator creates an empty accumulator for invoiceID
func NewAccumulator(invoiceID string) *Accumulator {
	return &Accumulator{
		invoiceID: invoiceID,
		Status:    entity.GatewayStatusUnknown,
	}
}

// Merge folds one successful gateway response into the accumulator
func (a *Accumulator) Merge(v *gateway.Verification) {
	if v == nil {
		return
	}
	a.responses++

	if entity.IsUsableTransactionID(v.TransactionID, a.invoiceID) {
		a.TransactionID = trimmed(v.TransactionID)
	}
	if s := trimmed(v.PaymentMethod); s != nil {
		a.PaymentMethod = s
	}
	if s := trimmed(v.FullName); s != nil {
		a.FullName = s
	}
	if s := trimmed(v.Email); s != nil {
		a.Email = s
	}
	if v.Fee != nil {
		a.Fee = v.Fee
	}
	if v.ChargedAmount != nil {
		a.ChargedAmount = v.ChargedAmount
	}
	if v.Message != nil {
		a.Message = v.Message
	}
	if v.Status != nil {
		a.Status = entity.ParseGatewayStatus(*v.Status)
	}
}

// Responses returns the number of successful responses merged so far
func (a *Accumulator) Responses() int {
	return a.responses
}

// HasResponse reports whether at least one gateway call succeeded
func (a *Accumulator) HasResponse() bool {
	return a.responses > 0
}

// HasUsableTransactionID reports whether a settlement reference has been observed
func (a *Accumulator) HasUsableTransactionID() bool {
	return a.TransactionID != nil
}

// MessageValue returns the last gateway message or an empty string
func (a *Accumulator) MessageValue() string {
	if a.Message == nil {
		return ""
	}
	return *a.Message
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
