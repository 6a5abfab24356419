package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/gateway"
)

func TestAccumulator_Merge(t *testing.T) {
	t.Run("empty accumulator", func(t *testing.T) {
		acc := NewAccumulator("inv-1")

		assert.False(t, acc.HasResponse())
		assert.False(t, acc.HasUsableTransactionID())
		assert.Equal(t, entity.GatewayStatusUnknown, acc.Status)
		assert.Equal(t, "", acc.MessageValue())
	})

	t.Run("nil response is ignored", func(t *testing.T) {
		acc := NewAccumulator("inv-1")
		acc.Merge(nil)
		assert.Equal(t, 0, acc.Responses())
	})

	t.Run("transaction id equal to invoice id is discarded", func(t *testing.T) {
		acc := NewAccumulator("inv-1")
		acc.Merge(&gateway.Verification{TransactionID: ptr("inv-1"), Status: ptr("COMPLETED")})

		assert.True(t, acc.HasResponse())
		assert.False(t, acc.HasUsableTransactionID())
		assert.Equal(t, entity.GatewayStatusCompleted, acc.Status)
	})

	t.Run("later usable values win, unusable ones never overwrite", func(t *testing.T) {
		acc := NewAccumulator("inv-1")
		acc.Merge(&gateway.Verification{
			TransactionID: ptr("TX-1"),
			PaymentMethod: ptr("bkash"),
			Fee:           dec("1.50"),
			FullName:      ptr("Alice"),
			Status:        ptr("PENDING"),
		})
		acc.Merge(&gateway.Verification{
			TransactionID: ptr("inv-1"),
			PaymentMethod: ptr("   "),
			Email:         ptr("alice@example.com"),
			ChargedAmount: dec("101.00"),
			Status:        ptr("COMPLETED"),
		})

		require.True(t, acc.HasUsableTransactionID())
		assert.Equal(t, "TX-1", *acc.TransactionID)
		assert.Equal(t, "bkash", *acc.PaymentMethod)
		assert.Equal(t, "1.5", acc.Fee.String())
		assert.Equal(t, "Alice", *acc.FullName)
		assert.Equal(t, "alice@example.com", *acc.Email)
		assert.Equal(t, "101", acc.ChargedAmount.String())
		assert.Equal(t, entity.GatewayStatusCompleted, acc.Status)
		assert.Equal(t, 2, acc.Responses())
	})

	t.Run("response without status keeps the previous one", func(t *testing.T) {
		acc := NewAccumulator("inv-1")
		acc.Merge(&gateway.Verification{Status: ptr("error"), Message: ptr("Invalid invoice")})
		acc.Merge(&gateway.Verification{PaymentMethod: ptr("nagad")})

		assert.Equal(t, entity.GatewayStatusError, acc.Status)
		assert.Equal(t, "Invalid invoice", acc.MessageValue())
	})

	t.Run("transaction id is trimmed", func(t *testing.T) {
		acc := NewAccumulator("inv-1")
		acc.Merge(&gateway.Verification{TransactionID: ptr("  TX-2 ")})
		require.NotNil(t, acc.TransactionID)
		assert.Equal(t, "TX-2", *acc.TransactionID)
	})
}

func ptr(s string) *string { return &s }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
