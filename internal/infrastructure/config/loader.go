package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment variable the service reads
const EnvPrefix = "PR"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	return loadConfig(getEnvironment(), ConfigPaths)
}

func loadConfig(env string, paths []string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env

	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found in DotEnvPaths
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}

	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 30)      // seconds, covers the redirect retry backoff
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("gateway.apiKeyHeader", "API-KEY")
	v.SetDefault("gateway.verifyPath", "/api/verify-payment")
	v.SetDefault("gateway.timeout", 10) // seconds
	v.SetDefault("gateway.breakerMaxRequests", 3)
	v.SetDefault("gateway.breakerInterval", 60) // seconds
	v.SetDefault("gateway.breakerTimeout", 30)  // seconds
	v.SetDefault("gateway.breakerConsecutiveFailures", 5)

	v.SetDefault("payment.redirectAttempts", 3)
	v.SetDefault("payment.initialBackoff", 1000)      // milliseconds
	v.SetDefault("payment.sessionFallbackWindow", 10) // minutes
	v.SetDefault("payment.maxClaimRetries", 3)
	v.SetDefault("payment.bonusCacheTTL", 60) // seconds

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.poolSize", 20)

	v.SetDefault("broker.type", "memory")
	v.SetDefault("broker.natsUrl", "nats://localhost:4222")
	v.SetDefault("broker.bufferSize", 256)

	v.SetDefault("notification.enabled", true)
	v.SetDefault("notification.timeout", 5) // seconds

	v.SetDefault("poller.enabled", true)
	v.SetDefault("poller.interval", 30)  // seconds
	v.SetDefault("poller.minAge", 120)   // seconds
	v.SetDefault("poller.maxAge", 1440)  // minutes
	v.SetDefault("poller.batchSize", 50)
	v.SetDefault("poller.workers", 4)
	v.SetDefault("poller.lockTTL", 25) // seconds

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.rps", 5)
	v.SetDefault("rateLimit.burst", 10)

	v.SetDefault("cors.allowOrigins", []string{"*"})
	v.SetDefault("cors.allowCredentials", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// getEnvironment determines the environment to use based on PR_ENV environment variable
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"PR_DB_HOST":              "database.host",
		"PR_DB_PORT":              "database.port",
		"PR_DB_USERNAME":          "database.username",
		"PR_DB_PASSWORD":          "database.password",
		"PR_DB_NAME":              "database.database",
		"PR_DB_SSL_MODE":          "database.sslMode",
		"PR_SERVER_HOST":          "server.host",
		"PR_SERVER_PORT":          "server.port",
		"PR_LOGGER_LEVEL":         "logger.level",
		"PR_GATEWAY_BASE_URL":     "gateway.baseUrl",
		"PR_GATEWAY_API_KEY":      "gateway.apiKey",
		"PR_REDIS_ADDR":           "redis.addr",
		"PR_REDIS_PASSWORD":       "redis.password",
		"PR_BROKER_TYPE":          "broker.type",
		"PR_NATS_URL":             "broker.natsUrl",
		"PR_NOTIFICATION_WEBHOOK": "notification.webhookUrl",
	}
	for env, key := range stringOverrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	if maxOpenConns := getEnvInt("PR_DB_MAX_OPEN_CONNS", 0); maxOpenConns > 0 {
		v.Set("database.maxOpenConns", maxOpenConns)
	}
	if maxIdleConns := getEnvInt("PR_DB_MAX_IDLE_CONNS", 0); maxIdleConns > 0 {
		v.Set("database.maxIdleConns", maxIdleConns)
	}
	if retryAttempts := getEnvInt("PR_DB_RETRY_ATTEMPTS", -1); retryAttempts >= 0 {
		v.Set("database.retryAttempts", retryAttempts)
	}
	if redisEnabled := os.Getenv("PR_REDIS_ENABLED"); redisEnabled != "" {
		v.Set("redis.enabled", strings.EqualFold(redisEnabled, "true"))
	}
	if pollerEnabled := os.Getenv("PR_POLLER_ENABLED"); pollerEnabled != "" {
		v.Set("poller.enabled", strings.EqualFold(pollerEnabled, "true"))
	}
}

// Helper function to get environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = config.Server.ReadTimeout * time.Second
	config.Server.WriteTimeout = config.Server.WriteTimeout * time.Second
	config.Server.IdleTimeout = config.Server.IdleTimeout * time.Second
	config.Server.ReadHeaderTimeout = config.Server.ReadHeaderTimeout * time.Second
	config.Server.ShutdownTimeout = config.Server.ShutdownTimeout * time.Second

	config.Database.ConnMaxLifetime = config.Database.ConnMaxLifetime * time.Minute
	config.Database.ConnMaxIdleTime = config.Database.ConnMaxIdleTime * time.Minute
	config.Database.QueryTimeout = config.Database.QueryTimeout * time.Second
	config.Database.RetryDelay = config.Database.RetryDelay * time.Second

	config.Gateway.Timeout = config.Gateway.Timeout * time.Second
	config.Gateway.BreakerInterval = config.Gateway.BreakerInterval * time.Second
	config.Gateway.BreakerTimeout = config.Gateway.BreakerTimeout * time.Second

	config.Payment.InitialBackoff = config.Payment.InitialBackoff * time.Millisecond
	config.Payment.SessionFallbackWindow = config.Payment.SessionFallbackWindow * time.Minute
	config.Payment.BonusCacheTTL = config.Payment.BonusCacheTTL * time.Second

	config.Notification.Timeout = config.Notification.Timeout * time.Second

	config.Poller.Interval = config.Poller.Interval * time.Second
	config.Poller.MinAge = config.Poller.MinAge * time.Second
	config.Poller.MaxAge = config.Poller.MaxAge * time.Minute
	config.Poller.LockTTL = config.Poller.LockTTL * time.Second
}
