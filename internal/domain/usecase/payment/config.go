package payment

import (
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
)

// Config tunes the reconciliation flow
type Config struct {
	// RedirectAttempts is the number of gateway calls made for browser redirects
	RedirectAttempts int
	// InitialBackoff is the delay before the second attempt; it doubles after each retry
	InitialBackoff coreport.Duration
	// SessionFallbackWindow bounds how old an adopted session payment may be
	SessionFallbackWindow coreport.Duration
	// MaxClaimRetries bounds retries of the claim-and-credit transaction on serialization failures
	MaxClaimRetries int
}

// DefaultConfig returns the production defaults
func DefaultConfig() Config {
	return Config{
		RedirectAttempts:      3,
		InitialBackoff:        coreport.Second,
		SessionFallbackWindow: 10 * coreport.Minute,
		MaxClaimRetries:       3,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.RedirectAttempts <= 0 {
		c.RedirectAttempts = def.RedirectAttempts
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = def.InitialBackoff
	}
	if c.SessionFallbackWindow <= 0 {
		c.SessionFallbackWindow = def.SessionFallbackWindow
	}
	if c.MaxClaimRetries <= 0 {
		c.MaxClaimRetries = def.MaxClaimRetries
	}
	return c
}
