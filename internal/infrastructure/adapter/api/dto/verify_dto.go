package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
)

// FlexBool accepts JSON booleans as well as their string forms ("true", "1", ...)
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case bool:
		*b = FlexBool(v)
	case float64:
		*b = v != 0
	case string:
		*b = FlexBool(ParseFlag(v))
	default:
		return fmt.Errorf("cannot use %s as a boolean", string(data))
	}
	return nil
}

// ParseFlag reads loosely formatted boolean flags; anything unrecognised is false
func ParseFlag(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	v, err := strconv.ParseBool(strings.ToLower(s))
	return err == nil && v
}

// VerifyPaymentRequest is the POST /api/payment/verify-payment body
type VerifyPaymentRequest struct {
	InvoiceID       string   `json:"invoice_id"`
	FromRedirect    FlexBool `json:"from_redirect"`
	CancelledByUser FlexBool `json:"cancelled_by_user"`
}

// PaymentResponse is the payment record echoed by the verify endpoints
type PaymentResponse struct {
	ID            uint64  `json:"id"`
	InvoiceID     string  `json:"invoice_id"`
	Amount        string  `json:"amount"`
	Status        string  `json:"status"`
	TransactionID *string `json:"transaction_id"`
	PaymentMethod *string `json:"payment_method"`
	PhoneNumber   *string `json:"phone_number"` // not sourced from the gateway
	GatewayFee    *string `json:"gatewayFee"`
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
	UserID        uint64  `json:"userId"`
}

// VerifyPaymentResponse is the envelope returned by both verify endpoints
type VerifyPaymentResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Payment *PaymentResponse `json:"payment"`
	Error   string           `json:"error,omitempty"`
	Details string           `json:"details,omitempty"`
}

func FromPayment(p *entity.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	resp := &PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		Amount:        entity.FormatAmount(p.Amount),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		PaymentMethod: p.PaymentMethod,
		Name:          p.Name,
		Email:         p.Email,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.UTC().Format(time.RFC3339),
		UserID:        p.UserID,
	}
	if p.GatewayFee != nil {
		fee := entity.FormatAmount(*p.GatewayFee)
		resp.GatewayFee = &fee
	}
	return resp
}

func FromVerificationResult(r *usecase.VerificationResult) VerifyPaymentResponse {
	return VerifyPaymentResponse{
		Status:  string(r.Status),
		Message: r.Message,
		Payment: FromPayment(r.Payment),
		Error:   r.Error,
		Details: r.Details,
	}
}
