package handler

import (
	"context"
	"net/http"
	"time"

	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by the database manager
type Pinger interface {
	Ping(ctx context.Context) error
}

// BrokerState is satisfied by the event brokers
type BrokerState interface {
	Healthy() bool
}

// HealthHandler reports whether the service's dependencies are reachable
type HealthHandler struct {
	db      Pinger
	broker  BrokerState
	timeout time.Duration
	logger  coreport.Logger
}

func NewHealthHandler(db Pinger, broker BrokerState, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		broker:  broker,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(c *gin.Context) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	checks := map[string]string{"database": "ok", "broker": "ok"}
	healthy := true

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("Health check: database ping failed", map[string]any{"error": err.Error()})
		checks["database"] = "unavailable"
		healthy = false
	}
	if h.broker != nil && !h.broker.Healthy() {
		checks["broker"] = "disconnected"
		healthy = false
	}

	resp := dto.HealthResponse{
		Status:   "ok",
		Checks:   checks,
		Duration: time.Since(start).String(),
	}
	if !healthy {
		resp.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
