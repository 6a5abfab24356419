package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
)

func TestRequestValidator_Normalize(t *testing.T) {
	validator := NewRequestValidator()

	t.Run("trims invoice id", func(t *testing.T) {
		req, err := validator.Normalize(usecase.VerifyRequest{InvoiceID: "  inv-1\t", FromRedirect: true})
		require.NoError(t, err)
		assert.Equal(t, "inv-1", req.InvoiceID)
		assert.True(t, req.FromRedirect)
	})

	t.Run("missing invoice id", func(t *testing.T) {
		for _, invoice := range []string{"", "   "} {
			_, err := validator.Normalize(usecase.VerifyRequest{InvoiceID: invoice})
			assert.ErrorIs(t, err, errs.ErrInvalidInvoiceID)
		}
	})

	t.Run("overlong invoice id", func(t *testing.T) {
		_, err := validator.Normalize(usecase.VerifyRequest{InvoiceID: strings.Repeat("x", 192)})
		assert.ErrorIs(t, err, errs.ErrInvalidInvoiceID)
	})

	t.Run("zero session user is dropped", func(t *testing.T) {
		zero := uint64(0)
		req, err := validator.Normalize(usecase.VerifyRequest{InvoiceID: "inv", SessionUserID: &zero})
		require.NoError(t, err)
		assert.Nil(t, req.SessionUserID)
	})
}
