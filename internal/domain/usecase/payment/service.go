package payment

import (
	"context"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/event"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
)

// Reconciliation steps, reported in VerificationError
const (
	StepValidate  = "validate"
	StepLocate    = "locate"
	StepConfigure = "configure"
	StepGateway   = "gateway"
	StepPersist   = "persist"
)

// Service is the payment verification reconciler. It ties together lookup,
// the idempotent short-circuit, gateway verification, interpretation and persistence.
type Service struct {
	validator   *RequestValidator
	locator     *PaymentLocator
	idempotency *IdempotencyHandler
	gateway     gateway.PaymentGateway
	verifier    *GatewayVerifier
	settler     *Settler
	logger      coreport.Logger
}

var _ usecase.PaymentVerificationUseCase = (*Service)(nil)

// NewPaymentService creates a new payment verification service
func NewPaymentService(
	uow persistence.UnitOfWork,
	settingsRepo persistence.SettingsRepository,
	gw gateway.PaymentGateway,
	publisher event.Publisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
) *Service {
	return &Service{
		validator:   NewRequestValidator(),
		locator:     NewPaymentLocator(uow, timeProvider, logger, config),
		idempotency: NewIdempotencyHandler(logger),
		gateway:     gw,
		verifier:    NewGatewayVerifier(gw, timeProvider, logger, config),
		settler:     NewSettler(uow, settingsRepo, publisher, timeProvider, logger, config),
		logger:      logger,
	}
}

// Reconcile verifies one invoice against the gateway and persists the outcome
func (s *Service) Reconcile(ctx context.Context, req usecase.VerifyRequest) (*usecase.VerificationResult, error) {
	req, err := s.validator.Normalize(req)
	if err != nil {
		return nil, errs.NewVerificationError(req.InvoiceID, StepValidate, err)
	}

	log := s.logger.With(map[string]any{
		"invoice_id":        req.InvoiceID,
		"from_redirect":     req.FromRedirect,
		"cancelled_by_user": req.CancelledByUser,
	})

	payment, err := s.locator.Locate(ctx, req)
	if err != nil {
		return nil, s.fail(log, req.InvoiceID, StepLocate, err)
	}

	if result, settled := s.idempotency.CheckSettled(payment); settled {
		return result, nil
	}

	if err := s.gateway.CheckConfiguration(); err != nil {
		return nil, s.fail(log, req.InvoiceID, StepConfigure, err)
	}

	outcome := s.verifier.Verify(ctx, req.InvoiceID, req.FromRedirect)

	interp := Interpret(InterpretationInput{
		CancelledByUser: req.CancelledByUser,
		FromRedirect:    req.FromRedirect,
		CurrentStatus:   payment.Status,
		GatewayFailed:   outcome.GatewayFailed(),
		GatewayStatus:   outcome.Accumulator.Status,
	})

	if interp.Fatal {
		return failedResult(payment, outcome.LastErr), s.fail(log, req.InvoiceID, StepGateway, outcome.LastErr)
	}

	if interp.Tolerated {
		log.Info("Gateway unavailable, reporting current state", map[string]any{
			"payment_id": payment.ID,
			"status":     string(interp.Status),
			"attempts":   outcome.Attempts,
		})
		return toleratedResult(payment, interp.Status, outcome.LastErr), nil
	}

	target, allowed := resolveTransition(payment.Status, interp.Status)
	if !allowed {
		log.Warn("Ignoring disallowed status transition", map[string]any{
			"payment_id": payment.ID,
			"from":       string(payment.Status),
			"to":         string(interp.Status),
		})
	}

	update := BuildUpdate(payment, outcome.Accumulator, target)

	settlement, err := s.settler.Persist(ctx, payment, update)
	if err != nil {
		return nil, s.fail(log, req.InvoiceID, StepPersist, err)
	}

	result := settledResult(settlement, interp, outcome.Accumulator)
	log.Info("Payment verification completed", map[string]any{
		"payment_id":     settlement.Payment.ID,
		"status":         string(result.Status),
		"gateway_status": string(outcome.Accumulator.Status),
		"attempts":       outcome.Attempts,
		"credited":       settlement.Credited,
	})

	return result, nil
}

func (s *Service) fail(log coreport.Logger, invoiceID, step string, err error) error {
	if err == nil {
		err = errs.ErrInternalServer
	}
	verr := errs.NewVerificationError(invoiceID, step, err)

	fields := errs.LogFieldsOf(verr)
	switch errs.KindOf(err) {
	case errs.KindNotFound, errs.KindValidation:
		log.Info("Payment verification rejected", fields)
	default:
		log.Error("Payment verification failed", fields)
	}
	return verr
}
