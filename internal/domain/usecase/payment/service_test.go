package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
	mockcore "github.com/amirhossein-jamali/payment-reconciler/mocks/port/core"
	mockevent "github.com/amirhossein-jamali/payment-reconciler/mocks/port/event"
	mockgateway "github.com/amirhossein-jamali/payment-reconciler/mocks/port/gateway"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

const (
	testUserID    = uint64(7)
	testPaymentID = uint64(100)
	testInvoiceID = "INV-2024-0001"
)

type fixture struct {
	store     *memStore
	gateway   *mockgateway.MockPaymentGateway
	publisher *mockevent.MockPublisher
	clock     *mockcore.MockTimeProvider
	service   *Service
}

func quietLogger(t *testing.T) *mockcore.MockLogger {
	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().With(mock.Anything).Return(logger).Maybe()
	return logger
}

func newFixture(t *testing.T) *fixture {
	store := newMemStore(fixedNow)
	store.settings = entity.Settings{BonusPercentage: decimal.NewFromInt(10)}
	store.addUser(entity.User{ID: testUserID})

	gw := mockgateway.NewMockPaymentGateway(t)
	gw.EXPECT().CheckConfiguration().Return(nil).Maybe()

	clock := mockcore.NewMockTimeProvider(t)
	clock.EXPECT().Now().Return(fixedNow).Maybe()

	publisher := mockevent.NewMockPublisher(t)

	service := NewPaymentService(store, store, gw, publisher, clock, quietLogger(t), DefaultConfig())

	return &fixture{
		store:     store,
		gateway:   gw,
		publisher: publisher,
		clock:     clock,
		service:   service,
	}
}

func processingPayment() entity.Payment {
	return entity.Payment{
		ID:          testPaymentID,
		InvoiceID:   testInvoiceID,
		UserID:      testUserID,
		Amount:      decimal.NewFromInt(100),
		Status:      entity.PaymentStatusProcessing,
		AdminStatus: entity.AdminStatusPending,
		CreatedAt:   fixedNow.Add(-2 * time.Minute),
		UpdatedAt:   fixedNow.Add(-2 * time.Minute),
	}
}

func completed(txID string) *gateway.Verification {
	return &gateway.Verification{
		InvoiceID:     ptr(testInvoiceID),
		TransactionID: ptr(txID),
		PaymentMethod: ptr("bkash"),
		Status:        ptr("COMPLETED"),
		Fee:           dec("1.85"),
		FullName:      ptr("Jane Payer"),
		Email:         ptr("jane@example.com"),
	}
}

func TestReconcile_SuccessCreditsBalanceWithBonus(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-1"), nil).Once()
	f.publisher.EXPECT().PublishPaymentSucceeded(mock.Anything, mock.MatchedBy(func(e entity.PaymentSucceededEvent) bool {
		return e.InvoiceID == testInvoiceID && e.Amount == "100.00" && e.Bonus == "10.00" && e.TransactionID == "TX-1"
	})).Return(nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCompleted, result.Status)
	assert.Equal(t, MessageVerified, result.Message)
	require.NotNil(t, result.Payment)
	assert.Equal(t, "TX-1", result.Payment.TransactionIDValue())

	user := f.store.user(testUserID)
	assert.Equal(t, "110.00", entity.FormatAmount(user.Balance))
	assert.Equal(t, "100.00", entity.FormatAmount(user.BalanceUSD))
	assert.Equal(t, "100.00", entity.FormatAmount(user.TotalDeposit))

	stored := f.store.payment(testPaymentID)
	assert.Equal(t, entity.PaymentStatusSuccess, stored.Status)
	assert.Equal(t, entity.AdminStatusSuccess, stored.AdminStatus)
	assert.Equal(t, "bkash", *stored.PaymentMethod)
	assert.Equal(t, "1.85", entity.FormatAmount(*stored.GatewayFee))
	assert.Equal(t, "Jane Payer", *stored.Name)
}

func TestReconcile_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-1"), nil).Once()
	f.publisher.EXPECT().PublishPaymentSucceeded(mock.Anything, mock.Anything).Return(nil).Once()

	req := usecase.VerifyRequest{InvoiceID: testInvoiceID, FromRedirect: true}

	first, err := f.service.Reconcile(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCompleted, first.Status)
	writesAfterFirst := f.store.writeCount()
	updatedAt := f.store.payment(testPaymentID).UpdatedAt

	second, err := f.service.Reconcile(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCompleted, second.Status)
	assert.Equal(t, MessageAlreadyVerified, second.Message)
	assert.Equal(t, "TX-1", second.Payment.TransactionIDValue())

	assert.Equal(t, writesAfterFirst, f.store.writeCount())
	assert.Equal(t, updatedAt, f.store.payment(testPaymentID).UpdatedAt)
	assert.Equal(t, "110.00", entity.FormatAmount(f.store.user(testUserID).Balance))
}

func TestReconcile_AlreadySettledSkipsGateway(t *testing.T) {
	f := newFixture(t)
	settled := processingPayment()
	settled.Status = entity.PaymentStatusSuccess
	settled.TransactionID = ptr("TX-OLD")
	f.store.addPayment(settled)

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID, FromRedirect: true})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCompleted, result.Status)
	assert.Equal(t, "TX-OLD", result.Payment.TransactionIDValue())
	assert.Equal(t, 0, f.store.writeCount())
	assert.True(t, f.store.user(testUserID).Balance.IsZero())
	f.gateway.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestReconcile_HealsTransactionIDEqualToInvoiceID(t *testing.T) {
	f := newFixture(t)
	corrupt := processingPayment()
	corrupt.TransactionID = ptr(testInvoiceID)
	f.store.addPayment(corrupt)

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(&gateway.Verification{
		TransactionID: ptr(testInvoiceID),
		Status:        ptr("PENDING"),
	}, nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponsePending, result.Status)
	assert.Nil(t, result.Payment.TransactionID)
	assert.Nil(t, f.store.payment(testPaymentID).TransactionID)
}

func TestReconcile_HealsCorruptSettledRecordBeforeShortCircuit(t *testing.T) {
	f := newFixture(t)
	corrupt := processingPayment()
	corrupt.Status = entity.PaymentStatusSuccess
	corrupt.TransactionID = ptr(testInvoiceID)
	f.store.addPayment(corrupt)

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCompleted, result.Status)
	assert.Nil(t, result.Payment.TransactionID)
	assert.Nil(t, f.store.payment(testPaymentID).TransactionID)
}

func TestReconcile_FindsRecordByTransactionID(t *testing.T) {
	f := newFixture(t)
	misKeyed := processingPayment()
	misKeyed.InvoiceID = "INV-STALE"
	misKeyed.TransactionID = ptr(testInvoiceID)
	f.store.addPayment(misKeyed)

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(&gateway.Verification{Status: ptr("PENDING")}, nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponsePending, result.Status)

	stored := f.store.payment(testPaymentID)
	assert.Equal(t, testInvoiceID, stored.InvoiceID)
	assert.Nil(t, stored.TransactionID)
}

func TestReconcile_CancelledByUserTakesPrecedence(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-1"), nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{
		InvoiceID:       testInvoiceID,
		CancelledByUser: true,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCancelled, result.Status)
	assert.Equal(t, MessageCancelledByUser, result.Message)

	stored := f.store.payment(testPaymentID)
	assert.Equal(t, entity.PaymentStatusCancelled, stored.Status)
	assert.Equal(t, entity.AdminStatusCancelled, stored.AdminStatus)
	assert.True(t, f.store.user(testUserID).Balance.IsZero())
	f.publisher.AssertNotCalled(t, "PublishPaymentSucceeded", mock.Anything, mock.Anything)
}

func TestReconcile_RedirectRetriesWithBackoff(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(&gateway.Verification{Status: ptr("PENDING")}, nil).Once()
	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(&gateway.Verification{
		TransactionID: ptr(testInvoiceID),
		Status:        ptr("PENDING"),
	}, nil).Once()
	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-3"), nil).Once()

	var delays []coreport.Duration
	f.clock.EXPECT().SleepContext(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, d coreport.Duration) { delays = append(delays, d) }).
		Return(nil).Times(2)
	f.publisher.EXPECT().PublishPaymentSucceeded(mock.Anything, mock.Anything).Return(nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID, FromRedirect: true})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCompleted, result.Status)
	assert.Equal(t, []coreport.Duration{coreport.Second, 2 * coreport.Second}, delays)
	f.gateway.AssertNumberOfCalls(t, "Verify", 3)
	stored := f.store.payment(testPaymentID)
	assert.Equal(t, "TX-3", stored.TransactionIDValue())
}

func TestReconcile_NoRetryOffRedirect(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(&gateway.Verification{Status: ptr("PENDING")}, nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponsePending, result.Status)
	f.gateway.AssertNumberOfCalls(t, "Verify", 1)
	f.clock.AssertNotCalled(t, "SleepContext", mock.Anything, mock.Anything)
}

func TestReconcile_GatewayFailureTolerated(t *testing.T) {
	t.Run("background poll of processing record reports pending", func(t *testing.T) {
		f := newFixture(t)
		f.store.addPayment(processingPayment())

		f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).
			Return(nil, errs.NewGatewayError(testInvoiceID, 1, 502, "bad gateway")).Once()

		result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

		require.NoError(t, err)
		assert.Equal(t, entity.ResponsePending, result.Status)
		assert.Equal(t, MessageVerifyPending, result.Message)
		assert.NotEmpty(t, result.Details)
		assert.Equal(t, 0, f.store.writeCount())
		f.gateway.AssertNumberOfCalls(t, "Verify", 1)
	})

	t.Run("redirect exhausts attempts then reports pending", func(t *testing.T) {
		f := newFixture(t)
		f.store.addPayment(processingPayment())

		f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).
			Return(nil, errs.NewGatewayError(testInvoiceID, 1, 0, "timeout")).Times(3)
		f.clock.EXPECT().SleepContext(mock.Anything, coreport.Second).Return(nil).Once()
		f.clock.EXPECT().SleepContext(mock.Anything, 2*coreport.Second).Return(nil).Once()

		result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID, FromRedirect: true})

		require.NoError(t, err)
		assert.Equal(t, entity.ResponsePending, result.Status)
		assert.Equal(t, 0, f.store.writeCount())
	})
}

func TestReconcile_GatewayFailureFatalForNonProcessingRecord(t *testing.T) {
	f := newFixture(t)
	cancelled := processingPayment()
	cancelled.Status = entity.PaymentStatusCancelled
	f.store.addPayment(cancelled)

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).
		Return(nil, errs.NewGatewayError(testInvoiceID, 1, 503, "unavailable")).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	require.Error(t, err)
	assert.True(t, errs.IsGatewayUnavailableError(err))
	require.NotNil(t, result)
	assert.Equal(t, entity.ResponseFailed, result.Status)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, 0, f.store.writeCount())
}

func TestReconcile_GatewayErrorMeansCancelled(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(&gateway.Verification{
		Status:  ptr("ERROR"),
		Message: ptr("Invoice not found"),
	}, nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID, FromRedirect: true})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCancelled, result.Status)
	assert.Equal(t, MessageRejectedByGateway, result.Message)
	assert.Equal(t, "Invoice not found", result.Details)
	assert.Equal(t, entity.PaymentStatusCancelled, f.store.payment(testPaymentID).Status)
	f.gateway.AssertNumberOfCalls(t, "Verify", 1)
	f.clock.AssertNotCalled(t, "SleepContext", mock.Anything, mock.Anything)
}

func TestReconcile_ChargedAmountOverridesAmount(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())

	resp := completed("TX-9")
	resp.ChargedAmount = dec("95.50")
	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(resp, nil).Once()
	f.publisher.EXPECT().PublishPaymentSucceeded(mock.Anything, mock.Anything).Return(nil).Once()

	_, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})
	require.NoError(t, err)

	assert.Equal(t, "95.50", entity.FormatAmount(f.store.payment(testPaymentID).Amount))
	user := f.store.user(testUserID)
	assert.Equal(t, "105.05", entity.FormatAmount(user.Balance))
	assert.Equal(t, "95.50", entity.FormatAmount(user.BalanceUSD))
	assert.Equal(t, "95.50", entity.FormatAmount(user.TotalDeposit))
}

func TestReconcile_NotFound(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: "INV-MISSING", FromRedirect: true})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, errs.ErrPaymentNotFound)
	assert.Equal(t, 0, f.store.writeCount())
	f.gateway.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestReconcile_MissingInvoiceID(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: "  "})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, errs.ErrInvalidInvoiceID)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestReconcile_GatewayNotConfigured(t *testing.T) {
	store := newMemStore(fixedNow)
	store.addPayment(processingPayment())

	gw := mockgateway.NewMockPaymentGateway(t)
	gw.EXPECT().CheckConfiguration().Return(errs.ErrGatewayNotConfigured).Once()
	clock := mockcore.NewMockTimeProvider(t)
	publisher := mockevent.NewMockPublisher(t)

	service := NewPaymentService(store, store, gw, publisher, clock, quietLogger(t), DefaultConfig())

	result, err := service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, errs.ErrGatewayNotConfigured)
	assert.Equal(t, errs.KindConfiguration, errs.KindOf(err))
	assert.Equal(t, 0, store.writeCount())
	gw.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestReconcile_SessionFallback(t *testing.T) {
	t.Run("adopts recent open payment on redirect POST", func(t *testing.T) {
		f := newFixture(t)
		recent := processingPayment()
		recent.InvoiceID = "INV-PLACEHOLDER"
		recent.CreatedAt = fixedNow.Add(-5 * time.Minute)
		f.store.addPayment(recent)

		// a usable transaction ID ends the redirect retry loop after one call
		f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(&gateway.Verification{
			TransactionID: ptr("TX-S1"),
			Status:        ptr("PENDING"),
		}, nil).Once()

		userID := testUserID
		result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{
			InvoiceID:            testInvoiceID,
			FromRedirect:         true,
			SessionUserID:        &userID,
			AllowSessionFallback: true,
		})

		require.NoError(t, err)
		assert.Equal(t, entity.ResponsePending, result.Status)
		assert.Equal(t, testInvoiceID, result.Payment.InvoiceID)
		assert.Equal(t, testInvoiceID, f.store.payment(testPaymentID).InvoiceID)
		f.gateway.AssertNumberOfCalls(t, "Verify", 1)
		f.clock.AssertNotCalled(t, "SleepContext", mock.Anything, mock.Anything)
	})

	t.Run("ignores payments older than the window", func(t *testing.T) {
		f := newFixture(t)
		old := processingPayment()
		old.InvoiceID = "INV-PLACEHOLDER"
		old.CreatedAt = fixedNow.Add(-15 * time.Minute)
		f.store.addPayment(old)

		userID := testUserID
		_, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{
			InvoiceID:            testInvoiceID,
			FromRedirect:         true,
			SessionUserID:        &userID,
			AllowSessionFallback: true,
		})

		assert.ErrorIs(t, err, errs.ErrPaymentNotFound)
		assert.Equal(t, 0, f.store.writeCount())
	})

	t.Run("not used without redirect", func(t *testing.T) {
		f := newFixture(t)
		recent := processingPayment()
		recent.InvoiceID = "INV-PLACEHOLDER"
		f.store.addPayment(recent)

		userID := testUserID
		_, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{
			InvoiceID:            testInvoiceID,
			SessionUserID:        &userID,
			AllowSessionFallback: true,
		})

		assert.ErrorIs(t, err, errs.ErrPaymentNotFound)
	})
}

func TestReconcile_CancelledRecordNeverReturnsToProcessing(t *testing.T) {
	f := newFixture(t)
	cancelled := processingPayment()
	cancelled.Status = entity.PaymentStatusCancelled
	f.store.addPayment(cancelled)

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(&gateway.Verification{
		Status:        ptr("PENDING"),
		PaymentMethod: ptr("rocket"),
	}, nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCancelled, result.Status)
	stored := f.store.payment(testPaymentID)
	assert.Equal(t, entity.PaymentStatusCancelled, stored.Status)
	assert.Equal(t, "rocket", *stored.PaymentMethod)
}

func TestReconcile_LostClaimDoesNotCredit(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())
	f.store.beforeClaim = func(p *entity.Payment) {
		p.Status = entity.PaymentStatusSuccess
		p.TransactionID = ptr("TX-OTHER")
	}

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-1"), nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCompleted, result.Status)
	assert.Equal(t, MessageAlreadyVerified, result.Message)
	assert.Equal(t, "TX-OTHER", result.Payment.TransactionIDValue())
	assert.True(t, f.store.user(testUserID).Balance.IsZero())
	f.publisher.AssertNotCalled(t, "PublishPaymentSucceeded", mock.Anything, mock.Anything)
}

func TestReconcile_RetriesSerializationFailure(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())
	f.store.failDeposits = 1
	f.store.depositErr = errs.ErrSerializationFailure

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-1"), nil).Once()
	f.publisher.EXPECT().PublishPaymentSucceeded(mock.Anything, mock.Anything).Return(nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCompleted, result.Status)
	assert.Equal(t, "110.00", entity.FormatAmount(f.store.user(testUserID).Balance))
}

func TestReconcile_RetriesSerializationFailureAtCommit(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())
	f.store.failCommits = 1
	f.store.commitErr = fmt.Errorf("failed to commit transaction: %w",
		fmt.Errorf("%w: ERROR: could not serialize access (SQLSTATE 40001)", errs.ErrSerializationFailure))

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-1"), nil).Once()
	f.publisher.EXPECT().PublishPaymentSucceeded(mock.Anything, mock.Anything).Return(nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCompleted, result.Status)
	assert.Equal(t, MessageVerified, result.Message)
	assert.Equal(t, 0, f.store.failCommits)
	assert.Equal(t, "110.00", entity.FormatAmount(f.store.user(testUserID).Balance))
	assert.Equal(t, "100.00", entity.FormatAmount(f.store.user(testUserID).TotalDeposit))
}

func TestReconcile_CommitFailureExhaustsRetries(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())
	f.store.failCommits = DefaultConfig().MaxClaimRetries
	f.store.commitErr = fmt.Errorf("%w: could not serialize access", errs.ErrSerializationFailure)

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-1"), nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, errs.ErrSerializationFailure)
	assert.Equal(t, errs.KindPersistence, errs.KindOf(err))
	assert.Equal(t, entity.PaymentStatusProcessing, f.store.payment(testPaymentID).Status)
	assert.True(t, f.store.user(testUserID).Balance.IsZero())
	f.publisher.AssertNotCalled(t, "PublishPaymentSucceeded", mock.Anything, mock.Anything)
}

func TestReconcile_RecheckClearsTransactionIDWrittenAsInvoiceID(t *testing.T) {
	echo := func(p *entity.Payment) { p.TransactionID = ptr(p.InvoiceID) }

	t.Run("pending update", func(t *testing.T) {
		f := newFixture(t)
		f.store.addPayment(processingPayment())
		f.store.afterWrite = echo

		f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(&gateway.Verification{
			TransactionID: ptr("TX-P"),
			Status:        ptr("PENDING"),
		}, nil).Once()

		result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

		require.NoError(t, err)
		assert.Equal(t, entity.ResponsePending, result.Status)
		require.NotNil(t, result.Payment)
		assert.Nil(t, result.Payment.TransactionID)
		assert.Nil(t, f.store.payment(testPaymentID).TransactionID)
	})

	t.Run("settled payment", func(t *testing.T) {
		f := newFixture(t)
		f.store.addPayment(processingPayment())
		f.store.afterWrite = echo

		f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-1"), nil).Once()
		f.publisher.EXPECT().PublishPaymentSucceeded(mock.Anything, mock.Anything).Return(nil).Once()

		result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

		require.NoError(t, err)
		assert.Equal(t, entity.ResponseCompleted, result.Status)
		require.NotNil(t, result.Payment)
		assert.Nil(t, result.Payment.TransactionID)

		stored := f.store.payment(testPaymentID)
		assert.Nil(t, stored.TransactionID)
		assert.Equal(t, entity.PaymentStatusSuccess, stored.Status)
		assert.Equal(t, "110.00", entity.FormatAmount(f.store.user(testUserID).Balance))
	})
}

func TestReconcile_MissingOwnerIsPersistenceError(t *testing.T) {
	f := newFixture(t)
	orphan := processingPayment()
	orphan.UserID = 999
	f.store.addPayment(orphan)

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-1"), nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	assert.NotErrorIs(t, err, errs.ErrUserNotFound)
	assert.Equal(t, errs.KindPersistence, errs.KindOf(err))
	assert.Equal(t, entity.PaymentStatusProcessing, f.store.payment(testPaymentID).Status)
}

func TestReconcile_CreditFailureRollsBackClaim(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())
	f.store.failDeposits = 1
	f.store.depositErr = errs.ErrDatabaseConnection

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-1"), nil).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	assert.Equal(t, errs.KindPersistence, errs.KindOf(err))
	assert.Equal(t, entity.PaymentStatusProcessing, f.store.payment(testPaymentID).Status)
	assert.True(t, f.store.user(testUserID).Balance.IsZero())
}

func TestReconcile_PublishFailureDoesNotFailVerification(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-1"), nil).Once()
	f.publisher.EXPECT().PublishPaymentSucceeded(mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	result, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})

	require.NoError(t, err)
	assert.Equal(t, entity.ResponseCompleted, result.Status)
	assert.Equal(t, "110.00", entity.FormatAmount(f.store.user(testUserID).Balance))
}

func TestReconcile_ConcurrentVerificationsCreditOnce(t *testing.T) {
	f := newFixture(t)
	f.store.addPayment(processingPayment())

	f.gateway.EXPECT().Verify(mock.Anything, testInvoiceID).Return(completed("TX-1"), nil).Maybe()
	f.publisher.EXPECT().PublishPaymentSucceeded(mock.Anything, mock.Anything).Return(nil).Once()

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*usecase.VerificationResult, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.service.Reconcile(context.Background(), usecase.VerifyRequest{InvoiceID: testInvoiceID})
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, entity.ResponseCompleted, res.Status)
	}
	assert.Equal(t, "110.00", entity.FormatAmount(f.store.user(testUserID).Balance))
	assert.Equal(t, "100.00", entity.FormatAmount(f.store.user(testUserID).TotalDeposit))
}
