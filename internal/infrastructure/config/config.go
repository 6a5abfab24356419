package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment  string             `mapstructure:"environment"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Logger       LoggerConfig       `mapstructure:"logger"`
	Gateway      GatewayConfig      `mapstructure:"gateway"`
	Payment      PaymentConfig      `mapstructure:"payment"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Broker       BrokerConfig       `mapstructure:"broker"`
	Notification NotificationConfig `mapstructure:"notification"`
	Poller       PollerConfig       `mapstructure:"poller"`
	RateLimit    RateLimitConfig    `mapstructure:"rateLimit"`
	CORS         CORSConfig         `mapstructure:"cors"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GatewayConfig contains payment gateway credentials and client settings.
// Credentials are optional at startup; requests fail with a configuration error when absent.
type GatewayConfig struct {
	BaseURL      string        `mapstructure:"baseUrl"`
	APIKey       string        `mapstructure:"apiKey"`
	APIKeyHeader string        `mapstructure:"apiKeyHeader"`
	VerifyPath   string        `mapstructure:"verifyPath"`
	Timeout      time.Duration `mapstructure:"timeout"` // seconds

	BreakerMaxRequests         uint32        `mapstructure:"breakerMaxRequests"`
	BreakerInterval            time.Duration `mapstructure:"breakerInterval"` // seconds
	BreakerTimeout             time.Duration `mapstructure:"breakerTimeout"`  // seconds
	BreakerConsecutiveFailures uint32        `mapstructure:"breakerConsecutiveFailures"`
}

// PaymentConfig contains reconciliation settings
type PaymentConfig struct {
	RedirectAttempts      int           `mapstructure:"redirectAttempts"`
	InitialBackoff        time.Duration `mapstructure:"initialBackoff"`        // milliseconds
	SessionFallbackWindow time.Duration `mapstructure:"sessionFallbackWindow"` // minutes
	MaxClaimRetries       int           `mapstructure:"maxClaimRetries"`
	BonusCacheTTL         time.Duration `mapstructure:"bonusCacheTTL"` // seconds
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"poolSize"`
}

// BrokerConfig selects and configures the event broker
type BrokerConfig struct {
	// Type is "nats" or "memory"
	Type       string `mapstructure:"type"`
	NatsURL    string `mapstructure:"natsUrl"`
	BufferSize int    `mapstructure:"bufferSize"`
}

// NotificationConfig configures payment notification delivery
type NotificationConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	WebhookURL string        `mapstructure:"webhookUrl"`
	Timeout    time.Duration `mapstructure:"timeout"` // seconds
}

// PollerConfig configures the stale payment poller
type PollerConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"` // seconds
	MinAge    time.Duration `mapstructure:"minAge"`   // seconds
	MaxAge    time.Duration `mapstructure:"maxAge"`   // minutes
	BatchSize int           `mapstructure:"batchSize"`
	Workers   int           `mapstructure:"workers"`
	LockTTL   time.Duration `mapstructure:"lockTTL"` // seconds
}

// RateLimitConfig configures per-client rate limiting on the verify routes
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// CORSConfig configures allowed browser origins
type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allowOrigins"`
	AllowCredentials bool     `mapstructure:"allowCredentials"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}
