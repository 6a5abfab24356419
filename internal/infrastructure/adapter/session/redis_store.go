package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/session"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore resolves session tokens stored as session:<token> -> user id
type RedisStore struct {
	client redis.Cmdable
}

var _ session.Store = (*RedisStore)(nil)

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) UserID(ctx context.Context, token string) (uint64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errs.ErrUnauthenticated
	}

	raw, err := s.client.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, errs.ErrUnauthenticated
	}
	if err != nil {
		return 0, fmt.Errorf("session lookup: %w", err)
	}

	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, errs.ErrUnauthenticated
	}
	return id, nil
}

// DisabledStore is used when no session backend is configured; every token is unknown
type DisabledStore struct{}

var _ session.Store = DisabledStore{}

func (DisabledStore) UserID(context.Context, string) (uint64, error) {
	return 0, errs.ErrUnauthenticated
}
