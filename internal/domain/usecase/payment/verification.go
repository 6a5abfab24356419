package payment

import (
	"context"
	"errors"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/gateway"
)

// VerificationOutcome is the merged result of all gateway attempts for one request
type VerificationOutcome struct {
	Accumulator *Accumulator
	Attempts    int
	// LastErr is the error of the most recent failed attempt
	LastErr error
}

// GatewayFailed reports whether no attempt produced a usable response
func (o VerificationOutcome) GatewayFailed() bool {
	return !o.Accumulator.HasResponse()
}

// GatewayVerifier drives the bounded retry loop against the payment gateway
type GatewayVerifier struct {
	gateway      gateway.PaymentGateway
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	config       Config
}

// NewGatewayVerifier creates a new GatewayVerifier
func NewGatewayVerifier(
	gw gateway.PaymentGateway,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
) *GatewayVerifier {
	return &GatewayVerifier{
		gateway:      gw,
		timeProvider: timeProvider,
		logger:       logger,
		config:       config.withDefaults(),
	}
}

// attemptsFor returns how many gateway calls a request may make
func (v *GatewayVerifier) attemptsFor(fromRedirect bool) int {
	if fromRedirect {
		return v.config.RedirectAttempts
	}
	return 1
}

// Verify calls the gateway until a usable transaction ID or an ERROR status is observed,
// or the attempt budget is exhausted. Backoff starts at InitialBackoff and doubles.
func (v *GatewayVerifier) Verify(ctx context.Context, invoiceID string, fromRedirect bool) VerificationOutcome {
	acc := NewAccumulator(invoiceID)
	outcome := VerificationOutcome{Accumulator: acc}

	maxAttempts := v.attemptsFor(fromRedirect)
	backoff := v.config.InitialBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		outcome.Attempts = attempt

		resp, err := v.gateway.Verify(ctx, invoiceID)
		if err != nil {
			var gwErr *errs.GatewayError
			if errors.As(err, &gwErr) {
				gwErr.Attempt = attempt
			}
			outcome.LastErr = err
			v.logger.Warn("Gateway verification attempt failed", map[string]any{
				"invoice_id":   invoiceID,
				"attempt":      attempt,
				"max_attempts": maxAttempts,
				"error":        err.Error(),
			})
		} else {
			acc.Merge(resp)
			v.logger.Debug("Gateway verification attempt succeeded", map[string]any{
				"invoice_id":         invoiceID,
				"attempt":            attempt,
				"gateway_status":     string(acc.Status),
				"has_transaction_id": acc.HasUsableTransactionID(),
			})

			if acc.Status.IsTerminalError() {
				v.logger.Info("Gateway reported ERROR, stopping retries", map[string]any{
					"invoice_id": invoiceID,
					"attempt":    attempt,
					"message":    acc.MessageValue(),
				})
				break
			}
			if acc.HasUsableTransactionID() {
				break
			}
		}

		if attempt == maxAttempts {
			break
		}

		if err := v.timeProvider.SleepContext(ctx, backoff); err != nil {
			v.logger.Warn("Gateway retry backoff interrupted", map[string]any{
				"invoice_id": invoiceID,
				"attempt":    attempt,
				"error":      err.Error(),
			})
			break
		}
		backoff *= 2
	}

	return outcome
}
