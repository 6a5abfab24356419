package persistence

import (
	"context"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
)

// SettingsRepository reads the global settings row
type SettingsRepository interface {
	// Get returns the settings, or zero-valued settings when the row is missing
	Get(ctx context.Context) (*entity.Settings, error)
}
