package entity

// BalanceResponse represents the response for the balance endpoint
type BalanceResponse struct {
	UserID       uint64 `json:"userId"`
	Balance      string `json:"balance"`
	BalanceUSD   string `json:"balanceUSD"`
	TotalDeposit string `json:"total_deposit"`
}

// UserToBalanceResponse converts a User entity to a BalanceResponse DTO
func UserToBalanceResponse(user *User) BalanceResponse {
	return BalanceResponse{
		UserID:       user.ID,
		Balance:      FormatAmount(user.Balance),
		BalanceUSD:   FormatAmount(user.BalanceUSD),
		TotalDeposit: FormatAmount(user.TotalDeposit),
	}
}
