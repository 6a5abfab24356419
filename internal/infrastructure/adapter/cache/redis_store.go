package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const settingsKey = "settings:deposit"

type cachedSettings struct {
	BonusPercentage decimal.Decimal `json:"bonusPercentage"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// RedisSettingsStore keeps the settings row as JSON under one key
type RedisSettingsStore struct {
	client redis.Cmdable
}

var _ SettingsStore = (*RedisSettingsStore)(nil)

func NewRedisSettingsStore(client redis.Cmdable) *RedisSettingsStore {
	return &RedisSettingsStore{client: client}
}

func (s *RedisSettingsStore) Get(ctx context.Context) (*entity.Settings, bool, error) {
	raw, err := s.client.Get(ctx, settingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var cs cachedSettings
	if err := json.Unmarshal(raw, &cs); err != nil {
		return nil, false, err
	}
	return &entity.Settings{BonusPercentage: cs.BonusPercentage, UpdatedAt: cs.UpdatedAt}, true, nil
}

func (s *RedisSettingsStore) Set(ctx context.Context, settings *entity.Settings, ttl time.Duration) error {
	raw, err := json.Marshal(cachedSettings{
		BonusPercentage: settings.BonusPercentage,
		UpdatedAt:       settings.UpdatedAt,
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, settingsKey, raw, ttl).Err()
}
