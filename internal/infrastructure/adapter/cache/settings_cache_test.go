package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/logger"
	mockpersistence "github.com/amirhossein-jamali/payment-reconciler/mocks/port/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu     sync.Mutex
	value  *entity.Settings
	ttl    time.Duration
	getErr error
	sets   int
}

func (m *memStore) Get(context.Context) (*entity.Settings, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	if m.value == nil {
		return nil, false, nil
	}
	cp := *m.value
	return &cp, true, nil
}

func (m *memStore) Set(_ context.Context, s *entity.Settings, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.value = &cp
	m.ttl = ttl
	m.sets++
	return nil
}

func tenPercent() *entity.Settings {
	return &entity.Settings{BonusPercentage: decimal.NewFromInt(10)}
}

func TestSettingsCache_MissLoadsAndStores(t *testing.T) {
	store := &memStore{}
	repo := mockpersistence.NewMockSettingsRepository(t)
	repo.EXPECT().Get(mock.Anything).Return(tenPercent(), nil).Once()

	c := NewSettingsCache(store, repo, 30*time.Second, logger.NewNoopLogger())

	got, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, got.BonusPercentage.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 30*time.Second, store.ttl)

	// second read is served from the store
	got, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, got.BonusPercentage.Equal(decimal.NewFromInt(10)))
}

func TestSettingsCache_StoreErrorFallsThrough(t *testing.T) {
	store := &memStore{getErr: errors.New("redis: connection refused")}
	repo := mockpersistence.NewMockSettingsRepository(t)
	repo.EXPECT().Get(mock.Anything).Return(tenPercent(), nil).Once()

	c := NewSettingsCache(store, repo, time.Minute, logger.NewNoopLogger())

	got, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10", got.BonusPercentage.String())
}

func TestSettingsCache_RepositoryError(t *testing.T) {
	repo := mockpersistence.NewMockSettingsRepository(t)
	repo.EXPECT().Get(mock.Anything).Return(nil, errors.New("db down")).Once()

	c := NewSettingsCache(&memStore{}, repo, time.Minute, logger.NewNoopLogger())

	_, err := c.Get(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestSettingsCache_ConcurrentMissesCoalesce(t *testing.T) {
	store := &memStore{}
	release := make(chan struct{})
	repo := mockpersistence.NewMockSettingsRepository(t)
	repo.EXPECT().Get(mock.Anything).RunAndReturn(func(context.Context) (*entity.Settings, error) {
		<-release
		return tenPercent(), nil
	}).Maybe()

	c := NewSettingsCache(store, repo, time.Minute, logger.NewNoopLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Get(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "10", got.BonusPercentage.String())
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, store.sets, 2)
}
