package lock

import (
	"context"
	"time"
)

// Locker hands out named, expiring locks shared across service instances
type Locker interface {
	// TryLock attempts to acquire key once. The returned release func is nil when not acquired.
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, acquired bool, err error)
}
