package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 9090
database:
  host: db.internal
  username: reconciler
  database: payments
gateway:
  baseUrl: https://gateway.example.com
  timeout: 4
payment:
  initialBackoff: 500
poller:
  interval: 15
`

func writeConfig(t *testing.T, env, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfig_FileDefaultsAndDurations(t *testing.T) {
	dir := writeConfig(t, Test, testYAML)

	cfg, err := loadConfig(Test, []string{dir})
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 4*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Payment.InitialBackoff)
	assert.Equal(t, 10*time.Minute, cfg.Payment.SessionFallbackWindow)
	assert.Equal(t, 3, cfg.Payment.RedirectAttempts)
	assert.Equal(t, 15*time.Second, cfg.Poller.Interval)
	assert.Equal(t, 24*time.Hour, cfg.Poller.MaxAge)
	assert.Equal(t, "memory", cfg.Broker.Type)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Empty(t, cfg.Gateway.APIKey)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, Test, testYAML)
	t.Setenv("PR_DB_PASSWORD", "s3cret")
	t.Setenv("PR_GATEWAY_API_KEY", "key-123")
	t.Setenv("PR_REDIS_ENABLED", "true")
	t.Setenv("PR_DB_RETRY_ATTEMPTS", "0")

	cfg, err := loadConfig(Test, []string{dir})
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "key-123", cfg.Gateway.APIKey)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 0, cfg.Database.RetryAttempts)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(Test, []string{t.TempDir()})
	assert.Error(t, err)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("PR_ENV", "Production")
	assert.Equal(t, Production, getEnvironment())

	t.Setenv("PR_ENV", "")
	assert.Equal(t, Development, getEnvironment())
}
