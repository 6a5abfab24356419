package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

var _ persistence.UserRepository = (*UserRepository)(nil)

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a user model to an entity
func (r *UserRepository) modelToEntity(userModel *model.User) *entity.User {
	return &entity.User{
		ID:           userModel.ID,
		Balance:      userModel.Balance,
		BalanceUSD:   userModel.BalanceUSD,
		TotalDeposit: userModel.TotalDeposit,
		CreatedAt:    userModel.CreatedAt,
		UpdatedAt:    userModel.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsSerializationError(err) {
		return fmt.Errorf("%w: %s", errs.ErrSerializationFailure, err.Error())
	}
	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	r.logger.Debug("Getting user by ID", map[string]any{
		"user_id": id,
	})

	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}

	return r.modelToEntity(&userModel), nil
}

// ApplyDeposit increments the balance columns in place and returns the updated user.
// The increment is a single UPDATE so concurrent credits never overwrite each other.
func (r *UserRepository) ApplyDeposit(ctx context.Context, deposit entity.Deposit) (*entity.User, error) {
	r.logger.Debug("Applying deposit", map[string]any{
		"user_id":    deposit.UserID,
		"payment_id": deposit.PaymentID,
		"amount":     entity.FormatAmount(deposit.Amount),
		"bonus":      entity.FormatAmount(deposit.Bonus),
	})

	if deposit.Amount.IsNegative() || deposit.Bonus.IsNegative() {
		return nil, errs.ErrNegativeAmount
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&model.User{}).
		Where("id = ?", deposit.UserID).
		Updates(map[string]interface{}{
			"balance":       gorm.Expr("balance + ?", deposit.BalanceIncrement()),
			"balance_usd":   gorm.Expr("balance_usd + ?", deposit.Amount),
			"total_deposit": gorm.Expr("total_deposit + ?", deposit.Amount),
			"updated_at":    r.timeProvider.Now(),
		})

	if result.Error != nil {
		return nil, r.handleDatabaseError("applying deposit", result.Error, deposit.UserID)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("User not found during deposit", map[string]any{
			"user_id":    deposit.UserID,
			"payment_id": deposit.PaymentID,
		})
		return nil, errs.ErrUserNotFound
	}

	var userModel model.User
	if err := db.First(&userModel, deposit.UserID).Error; err != nil {
		return nil, r.handleDatabaseError("reading credited user", err, deposit.UserID)
	}

	user := r.modelToEntity(&userModel)
	r.logger.Info("Deposit applied", map[string]any{
		"user_id":       user.ID,
		"payment_id":    deposit.PaymentID,
		"new_balance":   entity.FormatAmount(user.Balance),
		"total_deposit": entity.FormatAmount(user.TotalDeposit),
	})
	return user, nil
}
