package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/notification"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/metrics"
)

// webhookPayload is the body POSTed for each settled payment
type webhookPayload struct {
	Type  string                       `json:"type"`
	Title string                       `json:"title"`
	Body  string                       `json:"body"`
	Event entity.PaymentSucceededEvent `json:"event"`
}

// WebhookNotifier POSTs a JSON notice to a configured URL
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
	logger     coreport.Logger
}

var _ notification.Notifier = (*WebhookNotifier)(nil)

// NewWebhookNotifier creates a notifier posting to url with the given timeout
func NewWebhookNotifier(url string, timeout time.Duration, logger coreport.Logger) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (n *WebhookNotifier) NotifyPaymentSucceeded(ctx context.Context, evt entity.PaymentSucceededEvent) error {
	body, err := json.Marshal(webhookPayload{
		Type:  "transaction_success",
		Title: "Payment received",
		Body:  successMessage(evt),
		Event: evt,
	})
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: encode: %s", errs.ErrNotificationFailed, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: %s", errs.ErrNotificationFailed, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-ID", evt.EventID)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: %s", errs.ErrNotificationFailed, err.Error())
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.NotificationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: webhook answered HTTP %d", errs.ErrNotificationFailed, resp.StatusCode)
	}

	metrics.NotificationsTotal.WithLabelValues("ok").Inc()
	n.logger.Debug("Payment notification delivered", map[string]any{
		"event_id":   evt.EventID,
		"invoice_id": evt.InvoiceID,
		"user_id":    evt.UserID,
	})
	return nil
}

func successMessage(evt entity.PaymentSucceededEvent) string {
	return fmt.Sprintf("Your payment of %s (invoice %s) was added to your balance.", evt.Amount, evt.InvoiceID)
}
