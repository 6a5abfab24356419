package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID is the primary key of the singleton settings row
const SettingsID = 1

// Settings holds the global configuration read at credit time
type Settings struct {
	BonusPercentage decimal.Decimal
	UpdatedAt       time.Time
}

// BonusFor returns the bonus credited on top of a deposit of amount
func (s Settings) BonusFor(amount decimal.Decimal) decimal.Decimal {
	return CalculateBonus(amount, s.BonusPercentage)
}
