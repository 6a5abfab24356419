package persistence

import (
	"context"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user balances
type UserRepository interface {
	// GetByID retrieves a user by ID
	// Used for the GET /api/user/{userId}/balance endpoint
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// ApplyDeposit increments balance, balanceUSD and total_deposit atomically
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	ApplyDeposit(ctx context.Context, deposit entity.Deposit) (*entity.User, error)
}
