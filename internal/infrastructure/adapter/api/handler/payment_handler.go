package handler

import (
	"errors"
	"net/http"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/metrics"
	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes payment verification over HTTP. GET and POST differ
// only in how parameters arrive; both delegate to the same reconciler.
type PaymentHandler struct {
	verifier usecase.PaymentVerificationUseCase
	logger   coreport.Logger
}

func NewPaymentHandler(verifier usecase.PaymentVerificationUseCase, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{
		verifier: verifier,
		logger:   logger,
	}
}

// VerifyPaymentGET handles GET /api/payment/verify-payment?invoice_id=&from_redirect=
func (h *PaymentHandler) VerifyPaymentGET(c *gin.Context) {
	h.respond(c, usecase.VerifyRequest{
		InvoiceID:       c.Query("invoice_id"),
		FromRedirect:    dto.ParseFlag(c.Query("from_redirect")),
		CancelledByUser: dto.ParseFlag(c.Query("cancelled_by_user")),
	})
}

// VerifyPaymentPOST handles POST /api/payment/verify-payment. Only this variant
// may adopt the session user's latest open payment when the invoice is unknown.
func (h *PaymentHandler) VerifyPaymentPOST(c *gin.Context) {
	var body dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warn("Invalid verify request body", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.VerifyPaymentResponse{
			Status:  string(entity.ResponseFailed),
			Message: "Invalid request format",
			Error:   domainerr.ErrInvalidRequest.Error(),
			Details: err.Error(),
		})
		return
	}

	h.respond(c, usecase.VerifyRequest{
		InvoiceID:            body.InvoiceID,
		FromRedirect:         bool(body.FromRedirect),
		CancelledByUser:      bool(body.CancelledByUser),
		SessionUserID:        middleware.SessionUserID(c),
		AllowSessionFallback: true,
	})
}

func (h *PaymentHandler) respond(c *gin.Context, req usecase.VerifyRequest) {
	result, err := h.verifier.Reconcile(c.Request.Context(), req)
	if err != nil {
		status, resp := verifyFailure(result, err)
		metrics.VerificationsTotal.WithLabelValues(resp.Status).Inc()
		c.JSON(status, resp)
		return
	}

	metrics.VerificationsTotal.WithLabelValues(string(result.Status)).Inc()
	c.JSON(http.StatusOK, dto.FromVerificationResult(result))
}

// verifyFailure maps a reconciliation error to an HTTP status and a client-safe envelope
func verifyFailure(result *usecase.VerificationResult, err error) (int, dto.VerifyPaymentResponse) {
	resp := dto.VerifyPaymentResponse{Status: string(entity.ResponseFailed)}
	if result != nil {
		resp.Payment = dto.FromPayment(result.Payment)
		resp.Details = result.Details
	}

	var status int
	switch domainerr.KindOf(err) {
	case domainerr.KindValidation:
		status = http.StatusBadRequest
		resp.Message = "Invalid request"
		resp.Error = rootCause(err).Error()
	case domainerr.KindNotFound:
		status = http.StatusNotFound
		resp.Message = "Payment record not found"
		resp.Error = domainerr.ErrPaymentNotFound.Error()
	case domainerr.KindConfiguration:
		status = http.StatusInternalServerError
		resp.Message = "Payment gateway configuration error"
		resp.Error = domainerr.ErrGatewayNotConfigured.Error()
	case domainerr.KindGatewayTransient:
		status = http.StatusInternalServerError
		resp.Message = "Payment verification failed"
		resp.Error = domainerr.ErrGatewayUnavailable.Error()
		var gwErr *domainerr.GatewayError
		if resp.Details == "" && errors.As(err, &gwErr) {
			resp.Details = gwErr.Reason
		}
	case domainerr.KindPersistence:
		status = http.StatusInternalServerError
		resp.Message = "Failed to update payment record"
		resp.Error = domainerr.ErrInternalServer.Error()
	default:
		status = http.StatusInternalServerError
		resp.Message = "Payment verification failed"
		resp.Error = domainerr.ErrInternalServer.Error()
	}

	return status, resp
}

func rootCause(err error) error {
	var verr *domainerr.VerificationError
	if errors.As(err, &verr) && verr.Err != nil {
		return verr.Err
	}
	return err
}
