package payment

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
)

// maxInvoiceIDLength matches the width of the invoice_id column
const maxInvoiceIDLength = 191

// RequestValidator provides validation for verification requests
type RequestValidator struct{}

// NewRequestValidator creates a new RequestValidator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// Normalize validates req and returns it with a trimmed invoice ID
func (v *RequestValidator) Normalize(req usecase.VerifyRequest) (usecase.VerifyRequest, error) {
	req.InvoiceID = strings.TrimSpace(req.InvoiceID)
	if req.InvoiceID == "" {
		return req, errs.ErrInvalidInvoiceID
	}

	if len(req.InvoiceID) > maxInvoiceIDLength {
		return req, fmt.Errorf("%w: longer than %d characters", errs.ErrInvalidInvoiceID, maxInvoiceIDLength)
	}

	if req.SessionUserID != nil && *req.SessionUserID == 0 {
		req.SessionUserID = nil
	}

	return req, nil
}
