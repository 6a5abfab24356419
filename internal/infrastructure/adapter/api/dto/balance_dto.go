package dto

import "github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"

// BalanceResponse represents the API response for a user's balances
type BalanceResponse struct {
	UserID       uint64 `json:"userId"`
	Balance      string `json:"balance"`
	BalanceUSD   string `json:"balanceUSD"`
	TotalDeposit string `json:"total_deposit"`
}

// FromBalance converts the domain balance view to its wire form
func FromBalance(b *entity.BalanceResponse) BalanceResponse {
	return BalanceResponse{
		UserID:       b.UserID,
		Balance:      b.Balance,
		BalanceUSD:   b.BalanceUSD,
		TotalDeposit: b.TotalDeposit,
	}
}
