package repository

import (
	"errors"
	"fmt"
	"testing"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassifier_Classify(t *testing.T) {
	c := NewErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ""},
		{"unique violation code", &pgconn.PgError{Code: "23505"}, DuplicateKeyError},
		{"wrapped serialization failure", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}), SerializationError},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, SerializationError},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, LockError},
		{"check violation", &pgconn.PgError{Code: "23514"}, ConstraintError},
		{"connection refused text", errors.New("dial tcp: connection refused"), TransientError},
		{"network text", errors.New("network is unreachable"), ConnectionError},
		{"unknown", errors.New("something odd"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestErrorClassifier_ToDomainError(t *testing.T) {
	c := NewErrorClassifier()

	assert.NoError(t, c.ToDomainError(nil))

	err := c.ToDomainError(&pgconn.PgError{Code: "40001"})
	assert.ErrorIs(t, err, errs.ErrSerializationFailure)
	assert.True(t, errs.IsRetryableError(err))

	assert.ErrorIs(t, c.ToDomainError(&pgconn.PgError{Code: "23514"}), errs.ErrConstraintViolation)
	assert.ErrorIs(t, c.ToDomainError(&pgconn.PgError{Code: "23505"}), errs.ErrConstraintViolation)
	assert.ErrorIs(t, c.ToDomainError(errors.New("something odd")), errs.ErrDatabaseConnection)
}
