package middleware

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/ratelimit"
	"github.com/gin-gonic/gin"
)

// RateLimit applies a token bucket per client IP and route
func RateLimit(store *ratelimit.Store, log coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		key := c.ClientIP() + ":" + route

		if !store.Allow(key) {
			metrics.RateLimitBlockedTotal.WithLabelValues(route).Inc()
			log.Warn("Request rate limited", map[string]any{
				"request_id": logger.RequestIDFromContext(c.Request.Context()),
				"ip":         c.ClientIP(),
				"route":      route,
			})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrRateLimited),
				Message: "Too many requests",
			})
			return
		}
		c.Next()
	}
}
