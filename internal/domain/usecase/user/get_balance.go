package user

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
)

// UserUseCase implements the user business logic
type UserUseCase struct {
	userRepo     persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserUseCase creates a new user use case instance
func NewUserUseCase(
	userRepo persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) usecase.UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetUserBalance retrieves a user's balances and returns them in the standardized format
func (u *UserUseCase) GetUserBalance(ctx context.Context, userID uint64) (*entity.BalanceResponse, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			u.logger.Warn("User not found", map[string]any{
				"userId": userID,
			})
		} else {
			u.logger.Error("Failed to get user", map[string]any{
				"userId": userID,
				"error":  err.Error(),
			})
		}
		return nil, err
	}

	response := entity.UserToBalanceResponse(user)

	u.logger.Info("User balance retrieved", map[string]any{
		"userId":     userID,
		"balance":    response.Balance,
		"balanceUSD": response.BalanceUSD,
	})

	return &response, nil
}
