package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	"github.com/shopspring/decimal"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

var hundred = decimal.NewFromInt(100)

// ParseAmount validates a string amount and converts it into a decimal.
// At most two decimal places are accepted and negative values are rejected.
func ParseAmount(amount string) (decimal.Decimal, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return decimal.Zero, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return decimal.Zero, errs.ErrNegativeAmount
	}

	if strings.ContainsAny(amount, "eE") {
		return decimal.Zero, fmt.Errorf("%w: exponent notation not allowed", errs.ErrInvalidAmount)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	if value.Exponent() < -MaxDecimalPlaces {
		return decimal.Zero, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	return value, nil
}

// NormalizeAmount rounds a monetary value to the storage precision
func NormalizeAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MaxDecimalPlaces)
}

// FormatAmount renders an amount with exactly two decimal places
// Example: 10 becomes "10.00", 10.1 becomes "10.10"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MaxDecimalPlaces)
}

// CalculateBonus returns amount * percentage / 100 rounded to cents.
// A non-positive percentage or amount yields no bonus.
func CalculateBonus(amount, percentage decimal.Decimal) decimal.Decimal {
	if !percentage.IsPositive() || !amount.IsPositive() {
		return decimal.Zero
	}
	return amount.Mul(percentage).Div(hundred).Round(MaxDecimalPlaces)
}
