package entity

import (
	"testing"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected string
		}{
			{"100.00", "100.00"},
			{"0.01", "0.01"},
			{"1", "1.00"},
			{"1.5", "1.50"},
			{" 1234567.89 ", "1234567.89"},
			{"0", "0.00"},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				amount, err := ParseAmount(tc.input)
				require.NoError(t, err)
				assert.Equal(t, tc.expected, FormatAmount(amount))
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			errorType   error
			description string
		}{
			{"", errs.ErrInvalidAmount, "Empty string"},
			{"   ", errs.ErrInvalidAmount, "Whitespace only"},
			{"-1.00", errs.ErrNegativeAmount, "Negative amount"},
			{"1.234", errs.ErrInvalidAmount, "Too many decimal places"},
			{"abc", errs.ErrInvalidAmount, "Non-numeric"},
			{"1,000.00", errs.ErrInvalidAmount, "Comma as thousands separator"},
			{"1.00.00", errs.ErrInvalidAmount, "Multiple decimal points"},
			{"$100", errs.ErrInvalidAmount, "Currency symbol"},
			{"1e3", errs.ErrInvalidAmount, "Exponent notation"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.ErrorIs(t, err, tc.errorType)
			})
		}
	})
}

func TestCalculateBonus(t *testing.T) {
	testCases := []struct {
		name       string
		amount     string
		percentage string
		expected   string
	}{
		{"ten percent of hundred", "100", "10", "10.00"},
		{"fractional result is rounded", "33.33", "7.5", "2.50"},
		{"zero percentage", "100", "0", "0.00"},
		{"negative percentage", "100", "-5", "0.00"},
		{"zero amount", "0", "10", "0.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bonus := CalculateBonus(decimal.RequireFromString(tc.amount), decimal.RequireFromString(tc.percentage))
			assert.Equal(t, tc.expected, FormatAmount(bonus))
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	assert.Equal(t, "10.13", FormatAmount(NormalizeAmount(decimal.RequireFromString("10.125"))))
	assert.Equal(t, "10.00", FormatAmount(NormalizeAmount(decimal.NewFromInt(10))))
}
