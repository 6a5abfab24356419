package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/metrics"
	"github.com/sony/gobreaker/v2"
)

const maxErrorBody = 512

// Config holds the gateway endpoint, credentials and breaker settings
type Config struct {
	BaseURL      string
	VerifyPath   string
	APIKey       string
	APIKeyHeader string
	Timeout      time.Duration

	BreakerMaxRequests         uint32
	BreakerInterval            time.Duration
	BreakerTimeout             time.Duration
	BreakerConsecutiveFailures uint32
}

// Client calls the gateway verify-by-invoice endpoint behind a circuit breaker
type Client struct {
	config     Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*gateway.Verification]
	logger     coreport.Logger
}

var _ gateway.PaymentGateway = (*Client)(nil)

// NewClient creates a gateway client. Missing credentials are reported per call by CheckConfiguration.
func NewClient(config Config, httpClient *http.Client, logger coreport.Logger) *Client {
	if config.APIKeyHeader == "" {
		config.APIKeyHeader = "API-KEY"
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.BreakerConsecutiveFailures == 0 {
		config.BreakerConsecutiveFailures = 5
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	c := &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*gateway.Verification](gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: config.BreakerMaxRequests,
		Interval:    config.BreakerInterval,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.BreakerConsecutiveFailures
		},
		IsSuccessful: isSuccessfulForBreaker,
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerState(to.String())
			logger.Warn("Gateway circuit breaker state changed", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	metrics.SetBreakerState(gobreaker.StateClosed.String())

	return c
}

// isSuccessfulForBreaker counts only gateway-side failures against the breaker.
// Caller cancellation and 4xx answers say nothing about gateway health.
func isSuccessfulForBreaker(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var gwErr *errs.GatewayError
	if errors.As(err, &gwErr) && gwErr.HTTPStatus >= 400 && gwErr.HTTPStatus < 500 {
		return true
	}
	return false
}

// CheckConfiguration reports ErrGatewayNotConfigured when the URL or API key is missing
func (c *Client) CheckConfiguration() error {
	var missing []string
	if strings.TrimSpace(c.config.BaseURL) == "" {
		missing = append(missing, "base URL")
	}
	if strings.TrimSpace(c.config.APIKey) == "" {
		missing = append(missing, "API key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", errs.ErrGatewayNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

// Verify performs one verify-by-invoice call
func (c *Client) Verify(ctx context.Context, invoiceID string) (*gateway.Verification, error) {
	if err := c.CheckConfiguration(); err != nil {
		return nil, err
	}

	start := time.Now()
	v, err := c.breaker.Execute(func() (*gateway.Verification, error) {
		return c.doVerify(ctx, invoiceID)
	})
	metrics.GatewayRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.GatewayRequestsTotal.WithLabelValues("breaker_open").Inc()
			return nil, errs.NewGatewayError(invoiceID, 0, 0, err.Error())
		}
		return nil, err
	}

	metrics.GatewayRequestsTotal.WithLabelValues("ok").Inc()
	return v, nil
}

func (c *Client) endpoint() string {
	return strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(c.config.VerifyPath, "/")
}

func (c *Client) doVerify(ctx context.Context, invoiceID string) (*gateway.Verification, error) {
	body, err := json.Marshal(verifyRequest{InvoiceID: invoiceID})
	if err != nil {
		return nil, errs.NewGatewayError(invoiceID, 0, 0, "encode request: "+err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, errs.NewGatewayError(invoiceID, 0, 0, "build request: "+err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(c.config.APIKeyHeader, c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues("network_error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", errs.NewGatewayError(invoiceID, 0, 0, err.Error()), ctxErr)
		}
		return nil, errs.NewGatewayError(invoiceID, 0, 0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.GatewayRequestsTotal.WithLabelValues("http_error").Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		reason := strings.TrimSpace(string(snippet))
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		return nil, errs.NewGatewayError(invoiceID, 0, resp.StatusCode, reason)
	}

	var decoded verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues("decode_error").Inc()
		return nil, errs.NewGatewayError(invoiceID, 0, resp.StatusCode, "decode response: "+err.Error())
	}

	return decoded.toVerification(), nil
}
