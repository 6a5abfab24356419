package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func sampleEvent() entity.PaymentSucceededEvent {
	return entity.PaymentSucceededEvent{
		EventID:   "evt-1",
		PaymentID: 100,
		InvoiceID: "INV-2024-0001",
		UserID:    7,
		Amount:    "100.00",
		Bonus:     "10.00",
	}
}

func TestWebhookNotifier_Delivers(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "evt-1", r.Header.Get("X-Event-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, time.Second, logger.NewNoopLogger())
	require.NoError(t, n.NotifyPaymentSucceeded(context.Background(), sampleEvent()))

	assert.Equal(t, "transaction_success", got.Type)
	assert.Equal(t, "INV-2024-0001", got.Event.InvoiceID)
	assert.Contains(t, got.Body, "100.00")
}

func TestWebhookNotifier_Failures(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		n := NewWebhookNotifier(srv.URL, time.Second, logger.NewNoopLogger())
		err := n.NotifyPaymentSucceeded(context.Background(), sampleEvent())
		assert.ErrorIs(t, err, errs.ErrNotificationFailed)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		n := NewWebhookNotifier(url, time.Second, logger.NewNoopLogger())
		err := n.NotifyPaymentSucceeded(context.Background(), sampleEvent())
		assert.ErrorIs(t, err, errs.ErrNotificationFailed)
	})
}

func TestLogNotifier(t *testing.T) {
	obs, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(logger.NewZapLoggerFromCore(obs, zap.NewAtomicLevelAt(zap.InfoLevel)))

	require.NoError(t, n.NotifyPaymentSucceeded(context.Background(), sampleEvent()))

	entries := logs.FilterMessage("Payment succeeded").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "INV-2024-0001", entries[0].ContextMap()["invoice_id"])
}
