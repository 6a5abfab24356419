package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func fastRetry(n int) RetryConfig {
	return RetryConfig{MaxRetries: n, RetryInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

func TestRetryOnTransientError(t *testing.T) {
	classifier := repository.NewErrorClassifier()
	log := logger.NewNoopLogger()

	t.Run("retries serialization failures until success", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetry(3), func() error {
			calls++
			if calls < 3 {
				return &pgconn.PgError{Code: "40001"}
			}
			return nil
		}, classifier, log)

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		permanent := &pgconn.PgError{Code: "23514"}
		err := RetryOnTransientError(context.Background(), fastRetry(5), func() error {
			calls++
			return permanent
		}, classifier, log)

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns last error when attempts are exhausted", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetry(2), func() error {
			calls++
			return errors.New("dial tcp: connection refused")
		}, classifier, log)

		assert.ErrorContains(t, err, "connection refused")
		assert.Equal(t, 2, calls)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cfg := RetryConfig{MaxRetries: 3, RetryInterval: time.Hour}

		err := RetryOnTransientError(ctx, cfg, func() error {
			return errors.New("connection reset by peer")
		}, classifier, log)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("zero retries still runs once", func(t *testing.T) {
		calls := 0
		_ = RetryOnTransientError(context.Background(), fastRetry(0), func() error {
			calls++
			return nil
		}, classifier, log)
		assert.Equal(t, 1, calls)
	})
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	cfg := RetryConfig{RetryInterval: 100 * time.Millisecond, MaxInterval: 300 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, calculateBackoffWithJitter(0, cfg))
	assert.Equal(t, 200*time.Millisecond, calculateBackoffWithJitter(1, cfg))
	assert.Equal(t, 300*time.Millisecond, calculateBackoffWithJitter(4, cfg))

	cfg.JitterFactor = 0.5
	got := calculateBackoffWithJitter(0, cfg)
	assert.GreaterOrEqual(t, got, 100*time.Millisecond)
	assert.LessOrEqual(t, got, 150*time.Millisecond)
}
