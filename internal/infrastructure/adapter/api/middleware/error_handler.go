package middleware

import (
	"net/http"
	"runtime/debug"

	domainerr "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers from panics and returns appropriate error responses
func ErrorHandler(log coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": logger.RequestIDFromContext(c.Request.Context()),
					"user_agent": c.Request.UserAgent(),
					"stack":      string(debug.Stack()),
				})

				// verify routes keep their status envelope even on panics
				if isVerifyRoute(c) {
					c.AbortWithStatusJSON(http.StatusInternalServerError, dto.VerifyPaymentResponse{
						Status:  "FAILED",
						Message: "Payment verification failed",
						Error:   "Internal server error",
					})
					return
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
					Message: "Internal server error",
				})
			}
		}()

		c.Next()
	}
}

// VerifyRoute is the path shared by the GET and POST verification endpoints
const VerifyRoute = "/api/payment/verify-payment"

func isVerifyRoute(c *gin.Context) bool {
	return c.FullPath() == VerifyRoute || c.Request.URL.Path == VerifyRoute
}
