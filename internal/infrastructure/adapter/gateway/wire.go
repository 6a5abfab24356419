package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/gateway"
	"github.com/shopspring/decimal"
)

type verifyRequest struct {
	InvoiceID string `json:"invoice_id"`
}

// verifyResponse is the verify-by-invoice body. The gateway is loose with types:
// amounts arrive as numbers or strings and empty strings stand for absent values.
type verifyResponse struct {
	InvoiceID     flexString  `json:"invoice_id"`
	TransactionID flexString  `json:"transaction_id"`
	PaymentMethod flexString  `json:"payment_method"`
	Status        flexString  `json:"status"`
	Amount        flexDecimal `json:"amount"`
	ChargedAmount flexDecimal `json:"charged_amount"`
	Fee           flexDecimal `json:"fee"`
	FullName      flexString  `json:"full_name"`
	Email         flexString  `json:"email"`
	Message       flexString  `json:"message"`
}

func (r verifyResponse) toVerification() *gateway.Verification {
	return &gateway.Verification{
		InvoiceID:     r.InvoiceID.v,
		TransactionID: r.TransactionID.v,
		PaymentMethod: r.PaymentMethod.v,
		Status:        r.Status.v,
		Amount:        r.Amount.v,
		ChargedAmount: r.ChargedAmount.v,
		Fee:           r.Fee.v,
		FullName:      r.FullName.v,
		Email:         r.Email.v,
		Message:       r.Message.v,
	}
}

var jsonNull = []byte("null")

// flexString accepts a JSON string or number; null and "" decode to nil
type flexString struct {
	v *string
}

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		f.v = nil
		return nil
	}

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		s = n.String()
	}

	if s == "" {
		f.v = nil
		return nil
	}
	f.v = &s
	return nil
}

// flexDecimal accepts a JSON number or numeric string; null and "" decode to nil
type flexDecimal struct {
	v *decimal.Decimal
}

func (f *flexDecimal) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	if s.v == nil {
		f.v = nil
		return nil
	}

	d, err := decimal.NewFromString(*s.v)
	if err != nil {
		return fmt.Errorf("invalid decimal %q: %w", *s.v, err)
	}
	f.v = &d
	return nil
}
