package user

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	"github.com/amirhossein-jamali/payment-reconciler/mocks/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/mocks/port/persistence"
)

func TestUserUseCase_GetUserBalance(t *testing.T) {
	t.Run("should return formatted balances for valid user", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		userID := uint64(123)

		mockUserRepo := new(persistence.MockUserRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		user := &entity.User{
			ID:           userID,
			Balance:      decimal.RequireFromString("123.45"),
			BalanceUSD:   decimal.RequireFromString("100"),
			TotalDeposit: decimal.RequireFromString("250.5"),
		}

		mockUserRepo.On("GetByID", ctx, userID).Return(user, nil)
		mockLogger.On("Info", "User balance retrieved", mock.Anything).Return()

		useCase := NewUserUseCase(mockUserRepo, mockTimeProvider, mockLogger)

		// Act
		response, err := useCase.GetUserBalance(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, response)
		assert.Equal(t, userID, response.UserID)
		assert.Equal(t, "123.45", response.Balance)
		assert.Equal(t, "100.00", response.BalanceUSD)
		assert.Equal(t, "250.50", response.TotalDeposit)

		mockUserRepo.AssertExpectations(t)
		mockLogger.AssertExpectations(t)
	})

	t.Run("should return error with invalid user ID", func(t *testing.T) {
		ctx := context.Background()

		mockUserRepo := new(persistence.MockUserRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		useCase := NewUserUseCase(mockUserRepo, mockTimeProvider, mockLogger)

		response, err := useCase.GetUserBalance(ctx, 0)

		assert.Nil(t, response)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		mockUserRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("should return error when user not found", func(t *testing.T) {
		ctx := context.Background()
		userID := uint64(999)

		mockUserRepo := new(persistence.MockUserRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockUserRepo.On("GetByID", ctx, userID).Return(nil, errs.ErrUserNotFound)
		mockLogger.On("Warn", "User not found", mock.Anything).Return()

		useCase := NewUserUseCase(mockUserRepo, mockTimeProvider, mockLogger)

		response, err := useCase.GetUserBalance(ctx, userID)

		assert.Nil(t, response)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		mockUserRepo.AssertExpectations(t)
		mockLogger.AssertExpectations(t)
	})

	t.Run("should return error on database failure", func(t *testing.T) {
		ctx := context.Background()
		userID := uint64(123)
		dbError := errors.New("database connection error")

		mockUserRepo := new(persistence.MockUserRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockUserRepo.On("GetByID", ctx, userID).Return(nil, dbError)
		mockLogger.On("Error", "Failed to get user", mock.Anything).Return()

		useCase := NewUserUseCase(mockUserRepo, mockTimeProvider, mockLogger)

		response, err := useCase.GetUserBalance(ctx, userID)

		assert.Nil(t, response)
		assert.Equal(t, dbError, err)
		mockUserRepo.AssertExpectations(t)
		mockLogger.AssertExpectations(t)
	})
}
