package xredis

import (
	"context"
	"errors"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/lock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// KEYS[1]: lock key, ARGV[1]: owner token. Deletes only a lock we still own.
const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
else
    return 0
end
`

// ErrLockNotHeld is returned by release when the lock expired or was taken over
var ErrLockNotHeld = errors.New("lock not held")

// DistLocker hands out SETNX locks with a per-acquisition token
type DistLocker struct {
	client redis.Cmdable
	prefix string
	unlock *redis.Script
}

var _ lock.Locker = (*DistLocker)(nil)

// NewDistLocker creates a locker whose keys are prefixed with "lock:"
func NewDistLocker(client redis.Cmdable) *DistLocker {
	return &DistLocker{
		client: client,
		prefix: "lock:",
		unlock: redis.NewScript(unlockScript),
	}
}

func (l *DistLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		n, err := l.unlock.Run(ctx, l.client, []string{fullKey}, token).Int()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrLockNotHeld
		}
		return nil
	}
	return release, true, nil
}
