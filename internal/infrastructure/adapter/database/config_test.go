package database

import (
	"testing"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Host:          "localhost",
		Port:          5432,
		Username:      "reconciler",
		Database:      "payments",
		SSLMode:       "disable",
		MaxOpenConns:  10,
		MaxIdleConns:  5,
		QueryTimeout:  time.Second,
		LogLevel:      "info",
		RetryAttempts: 1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing host", mutate: func(c *Config) { c.Host = "" }, wantErr: "host"},
		{name: "bad port", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "port"},
		{name: "missing name", mutate: func(c *Config) { c.Database = "" }, wantErr: "name"},
		{name: "bad ssl mode", mutate: func(c *Config) { c.SSLMode = "sometimes" }, wantErr: "SSL"},
		{name: "zero timeout", mutate: func(c *Config) { c.QueryTimeout = 0 }, wantErr: "timeout"},
		{name: "negative retries", mutate: func(c *Config) { c.RetryAttempts = -1 }, wantErr: "retry"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	c := validConfig()
	c.Password = "pw"
	assert.Equal(t,
		"host=localhost port=5432 user=reconciler password=pw dbname=payments sslmode=disable statement_timeout=1000",
		c.DSN())

	c.ApplicationName = "payment-reconciler"
	c.QueryTimeout = 0
	assert.Equal(t,
		"host=localhost port=5432 user=reconciler password=pw dbname=payments sslmode=disable application_name=payment-reconciler",
		c.DSN())
}

func TestCreateConfigFromViperConfig(t *testing.T) {
	t.Setenv("PR_DB_HOST", "")
	t.Setenv("PR_DB_PORT", "")
	t.Setenv("PR_DB_PASSWORD", "from-env")

	conf := &config.Config{
		Database: config.DatabaseConfig{
			Host:          "db.internal",
			Port:          "6543",
			Username:      "reconciler",
			Password:      "from-file",
			Database:      "payments",
			MaxOpenConns:  20,
			RetryAttempts: 2,
			RetryDelay:    3 * time.Second,
		},
		Logger: config.LoggerConfig{Level: "warn"},
	}

	dbConf := CreateConfigFromViperConfig(conf)

	assert.Equal(t, "db.internal", dbConf.Host)
	assert.Equal(t, 6543, dbConf.Port)
	assert.Equal(t, "from-env", dbConf.Password)
	assert.Equal(t, 20, dbConf.MaxOpenConns)
	assert.Equal(t, 2, dbConf.RetryAttempts)
	assert.Equal(t, 3*time.Second, dbConf.RetryDelay)
	assert.Equal(t, "warn", dbConf.LogLevel)
}

func TestParsePort(t *testing.T) {
	assert.Equal(t, 5432, ParsePort("5432"))
	assert.Equal(t, 0, ParsePort("abc"))
	assert.Equal(t, 0, ParsePort("0"))
	assert.Equal(t, 0, ParsePort("65536"))
}
