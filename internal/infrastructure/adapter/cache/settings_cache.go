package cache

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/metrics"
	"golang.org/x/sync/singleflight"
)

// SettingsStore is the cache backend for the settings row
type SettingsStore interface {
	// Get returns ok=false on a miss
	Get(ctx context.Context) (settings *entity.Settings, ok bool, err error)
	Set(ctx context.Context, settings *entity.Settings, ttl time.Duration) error
}

// SettingsCache reads settings through store, coalescing concurrent misses.
// Store errors fall through to the repository.
type SettingsCache struct {
	store  SettingsStore
	repo   persistence.SettingsRepository
	ttl    time.Duration
	logger coreport.Logger
	sf     singleflight.Group
}

var _ persistence.SettingsRepository = (*SettingsCache)(nil)

func NewSettingsCache(store SettingsStore, repo persistence.SettingsRepository, ttl time.Duration, logger coreport.Logger) *SettingsCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &SettingsCache{
		store:  store,
		repo:   repo,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *SettingsCache) Get(ctx context.Context) (*entity.Settings, error) {
	settings, ok, err := c.store.Get(ctx)
	switch {
	case err != nil:
		metrics.SettingsCacheTotal.WithLabelValues("error").Inc()
		c.logger.Warn("Settings cache read failed, using database", map[string]any{"error": err.Error()})
	case ok:
		metrics.SettingsCacheTotal.WithLabelValues("hit").Inc()
		return settings, nil
	default:
		metrics.SettingsCacheTotal.WithLabelValues("miss").Inc()
	}

	v, err, _ := c.sf.Do("settings", func() (interface{}, error) {
		loaded, err := c.repo.Get(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(ctx, loaded, c.ttl); err != nil {
			c.logger.Warn("Settings cache write failed", map[string]any{"error": err.Error()})
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	// callers share the singleflight result; hand each its own copy
	cp := *v.(*entity.Settings)
	return &cp, nil
}
