package usecase

import (
	"context"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
)

// UserUseCase defines methods for user-related business operations
type UserUseCase interface {
	// GetUserBalance retrieves the user's balances formatted with 2 decimal places
	// This is the main method used by the GET /api/user/{userId}/balance endpoint
	GetUserBalance(ctx context.Context, userID uint64) (*entity.BalanceResponse, error)
}
