package xredis

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/metrics"
	"github.com/redis/go-redis/v9"
)

// ObservePoolStats exports client pool statistics every interval until ctx is done
func ObservePoolStats(ctx context.Context, rdb *redis.Client, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				recordPoolStats(rdb.PoolStats())
			}
		}
	}()
}

func recordPoolStats(st *redis.PoolStats) {
	metrics.RedisPoolOpen.Set(float64(st.TotalConns))
	metrics.RedisPoolIdle.Set(float64(st.IdleConns))
	metrics.RedisPoolStale.Set(float64(st.StaleConns))
	metrics.RedisPoolHits.Set(float64(st.Hits))
}
