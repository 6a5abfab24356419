package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// User represents the balance-bearing part of an account
type User struct {
	ID           uint64          // Unique identifier for the user
	Balance      decimal.Decimal // Working-currency credit, includes bonuses
	BalanceUSD   decimal.Decimal // USD ledger of deposited amounts
	TotalDeposit decimal.Decimal // Lifetime deposited amount
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new user with empty balances
func NewUser(id uint64, timeProvider coreport.TimeProvider) (*User, error) {
	if id == 0 {
		return nil, errs.ErrInvalidUserID
	}

	now := timeProvider.Now()
	return &User{
		ID:           id,
		Balance:      decimal.Zero,
		BalanceUSD:   decimal.Zero,
		TotalDeposit: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Deposit is the balance credit produced by one successful payment
type Deposit struct {
	UserID    uint64
	PaymentID uint64
	Amount    decimal.Decimal
	Bonus     decimal.Decimal
}

// NewDeposit computes the credit for a settled payment using the configured bonus percentage
func NewDeposit(payment *Payment, bonusPercentage decimal.Decimal) (Deposit, error) {
	if payment.UserID == 0 {
		return Deposit{}, errs.ErrInvalidUserID
	}
	if payment.Amount.IsNegative() {
		return Deposit{}, errs.ErrNegativeAmount
	}

	return Deposit{
		UserID:    payment.UserID,
		PaymentID: payment.ID,
		Amount:    payment.Amount,
		Bonus:     CalculateBonus(payment.Amount, bonusPercentage),
	}, nil
}

// BalanceIncrement is the amount added to the working balance
func (d Deposit) BalanceIncrement() decimal.Decimal {
	return d.Amount.Add(d.Bonus)
}

// ApplyDeposit credits the deposit. The bonus only affects Balance.
func (u *User) ApplyDeposit(d Deposit, timeProvider coreport.TimeProvider) error {
	if d.UserID != u.ID {
		return errs.ErrInvalidUserID
	}

	u.Balance = u.Balance.Add(d.BalanceIncrement())
	u.BalanceUSD = u.BalanceUSD.Add(d.Amount)
	u.TotalDeposit = u.TotalDeposit.Add(d.Amount)
	u.UpdatedAt = timeProvider.Now()
	return nil
}
