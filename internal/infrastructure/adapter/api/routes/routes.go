package routes

import (
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/session"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/ratelimit"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Payment *handler.PaymentHandler
	User    *handler.UserHandler
	Health  *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API. limiter may be nil.
func SetupRoutes(
	router *gin.Engine,
	h Handlers,
	limiter *ratelimit.Store,
	metricsCfg config.MetricsConfig,
	logger coreport.Logger,
) {
	router.GET("/healthz", h.Health.Healthz)

	if metricsCfg.Enabled {
		path := metricsCfg.Path
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api")

	paymentRoutes := api.Group("/payment")
	if limiter != nil {
		paymentRoutes.Use(middleware.RateLimit(limiter, logger))
	}
	{
		// GET /api/payment/verify-payment?invoice_id=&from_redirect=
		paymentRoutes.GET("/verify-payment", h.Payment.VerifyPaymentGET)

		// POST /api/payment/verify-payment
		paymentRoutes.POST("/verify-payment", h.Payment.VerifyPaymentPOST)
	}

	userRoutes := api.Group("/user")
	{
		// GET /api/user/:userId/balance
		userRoutes.GET("/:userId/balance", h.User.GetBalance)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, cfg *config.Config, sessions session.Store, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORS.AllowOrigins, cfg.CORS.AllowCredentials))
	router.Use(middleware.Session(sessions, logger))
}
