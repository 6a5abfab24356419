package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	paymentUseCase "github.com/amirhossein-jamali/payment-reconciler/internal/domain/usecase/payment"
	userUseCase "github.com/amirhossein-jamali/payment-reconciler/internal/domain/usecase/user"

	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/broker"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/gateway"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/ratelimit"
	timeProvider "github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(coreport.ParseLogLevel(cfg.Logger.Level))
	defer appLogger.Flush()

	tp := timeProvider.NewRealTimeProvider()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbManager := database.NewManager(database.CreateConfigFromViperConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(rootCtx); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.Migrate(rootCtx); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Redis is optional: without it the service falls back to in-process locks,
	// an uncached settings read and no session resolution
	deps := newRedisDeps(rootCtx, cfg, dbManager.SettingsRepository(), appLogger)
	defer deps.Close()

	eventBroker, err := newBroker(cfg.Broker, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to event broker", map[string]any{
			"type":  cfg.Broker.Type,
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer eventBroker.Close()
	eventBus := broker.NewEventBus(eventBroker, appLogger)

	gatewayClient := gateway.NewClient(gateway.Config{
		BaseURL:                    cfg.Gateway.BaseURL,
		VerifyPath:                 cfg.Gateway.VerifyPath,
		APIKey:                     cfg.Gateway.APIKey,
		APIKeyHeader:               cfg.Gateway.APIKeyHeader,
		Timeout:                    cfg.Gateway.Timeout,
		BreakerMaxRequests:         cfg.Gateway.BreakerMaxRequests,
		BreakerInterval:            cfg.Gateway.BreakerInterval,
		BreakerTimeout:             cfg.Gateway.BreakerTimeout,
		BreakerConsecutiveFailures: cfg.Gateway.BreakerConsecutiveFailures,
	}, nil, appLogger)
	if err := gatewayClient.CheckConfiguration(); err != nil {
		// not fatal: each verification reports the configuration error
		appLogger.Warn("Payment gateway is not fully configured", map[string]any{
			"error": err.Error(),
		})
	}

	// Initialize use cases
	uow := dbManager.CreateUnitOfWork()
	paymentService := paymentUseCase.NewPaymentService(
		uow,
		deps.settings,
		gatewayClient,
		eventBus,
		tp,
		appLogger,
		paymentUseCase.Config{
			RedirectAttempts:      cfg.Payment.RedirectAttempts,
			InitialBackoff:        coreport.Duration(cfg.Payment.InitialBackoff),
			SessionFallbackWindow: coreport.Duration(cfg.Payment.SessionFallbackWindow),
			MaxClaimRetries:       cfg.Payment.MaxClaimRetries,
		},
	)
	// browser redirects and poller sweeps for one invoice take turns within this instance
	reconciler := paymentUseCase.NewInvoiceQueue(paymentService, appLogger)
	userUseCaseImpl := userUseCase.NewUserUseCase(dbManager.UserRepository(), tp, appLogger)

	var workers sync.WaitGroup

	consumer := newNotificationConsumer(cfg.Notification, eventBus, appLogger)
	workers.Add(1)
	go func() {
		defer workers.Done()
		if err := consumer.Run(rootCtx); err != nil {
			appLogger.Error("Notification consumer exited", map[string]any{"error": err.Error()})
		}
	}()

	poller := newPoller(cfg.Poller, uow, reconciler, deps.locker, tp, appLogger)
	if poller != nil {
		poller.Start(rootCtx)
	}

	// Initialize API handlers
	handlers := routes.Handlers{
		Payment: handler.NewPaymentHandler(reconciler, appLogger),
		User:    handler.NewUserHandler(userUseCaseImpl, appLogger),
		Health:  handler.NewHealthHandler(dbManager, eventBroker, appLogger),
	}

	var limiter *ratelimit.Store
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewStore(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst, 10*time.Minute)
		limiter.StartJanitor(rootCtx, time.Minute)
	}

	router := gin.New()
	routes.SetupMiddlewares(router, cfg, deps.sessions, appLogger)
	routes.SetupRoutes(router, handlers, limiter, cfg.Metrics, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":   server.Addr,
			"env":    cfg.Environment,
			"broker": cfg.Broker.Type,
			"redis":  deps.enabled,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-rootCtx.Done():
	case err := <-serverErr:
		appLogger.Error("Failed to start server", map[string]any{
			"error": err.Error(),
		})
		stop()
	}

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	if poller != nil {
		appLogger.Info("Stopping payment poller...", nil)
		poller.Shutdown()
	}

	reconciler.Shutdown()

	// rootCtx is done by now, so the consumer is draining
	workers.Wait()

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	required := []struct {
		value  string
		key    string
		envVar string
	}{
		{cfg.Database.Host, "database.host", "PR_DB_HOST"},
		{cfg.Database.Port, "database.port", "PR_DB_PORT"},
		{cfg.Database.Username, "database.username", "PR_DB_USERNAME"},
		{cfg.Database.Password, "database.password", "PR_DB_PASSWORD"},
		{cfg.Database.Database, "database.database", "PR_DB_NAME"},
	}
	for _, r := range required {
		if r.value == "" && os.Getenv(r.envVar) == "" {
			missingConfigs = append(missingConfigs, fmt.Sprintf("%s (or %s environment variable)", r.key, r.envVar))
		}
	}

	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		missingConfigs = append(missingConfigs, "redis.addr")
	}
	if strings.EqualFold(cfg.Broker.Type, "nats") && cfg.Broker.NatsURL == "" {
		missingConfigs = append(missingConfigs, "broker.natsUrl")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.Environment == config.Production {
		var warnings []string

		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		// redirect verifications may sleep 1s+2s between gateway calls
		if cfg.Server.WriteTimeout < 15*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for redirect verification retries")
		}
		if !cfg.Redis.Enabled {
			warnings = append(warnings, "redis is disabled; poller locks are per-instance only")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential issues in production configuration: %v", warnings)
		}
	}

	return nil
}
