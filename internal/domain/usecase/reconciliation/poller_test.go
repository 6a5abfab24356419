package reconciliation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
	mockcore "github.com/amirhossein-jamali/payment-reconciler/mocks/port/core"
	mocklock "github.com/amirhossein-jamali/payment-reconciler/mocks/port/lock"
	mockpersistence "github.com/amirhossein-jamali/payment-reconciler/mocks/port/persistence"
	mockusecase "github.com/amirhossein-jamali/payment-reconciler/mocks/port/usecase"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type pollerDeps struct {
	uow        *mockpersistence.MockUnitOfWork
	repo       *mockpersistence.MockPaymentRepository
	reconciler *mockusecase.MockPaymentVerificationUseCase
	locker     *mocklock.MockLocker
	poller     *Poller
}

func newPollerDeps(t *testing.T) *pollerDeps {
	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	clock := mockcore.NewMockTimeProvider(t)
	clock.EXPECT().Now().Return(now).Maybe()

	d := &pollerDeps{
		uow:        mockpersistence.NewMockUnitOfWork(t),
		repo:       mockpersistence.NewMockPaymentRepository(t),
		reconciler: mockusecase.NewMockPaymentVerificationUseCase(t),
		locker:     mocklock.NewMockLocker(t),
	}
	d.uow.EXPECT().GetPaymentRepository(mock.Anything).Return(d.repo).Maybe()
	d.poller = NewPoller(d.uow, d.reconciler, d.locker, clock, logger, DefaultConfig())
	return d
}

func (d *pollerDeps) expectLock(t *testing.T) *bool {
	released := false
	release := func(context.Context) error {
		released = true
		return nil
	}
	d.locker.EXPECT().TryLock(mock.Anything, "payment-poller", 25*time.Second).Return(release, true, nil).Once()
	return &released
}

func TestPoller_Sweep(t *testing.T) {
	t.Run("re-verifies stale payments without redirect", func(t *testing.T) {
		d := newPollerDeps(t)
		released := d.expectLock(t)

		d.repo.EXPECT().ListStale(mock.Anything, now.Add(-24*time.Hour), now.Add(-2*time.Minute), 50).
			Return([]*entity.Payment{
				{ID: 1, InvoiceID: "INV-1"},
				{ID: 2, InvoiceID: "INV-2"},
				{ID: 3, InvoiceID: "INV-3"},
			}, nil).Once()

		d.reconciler.EXPECT().Reconcile(mock.Anything, usecase.VerifyRequest{InvoiceID: "INV-1"}).
			Return(&usecase.VerificationResult{Status: entity.ResponseCompleted}, nil).Once()
		d.reconciler.EXPECT().Reconcile(mock.Anything, usecase.VerifyRequest{InvoiceID: "INV-2"}).
			Return(&usecase.VerificationResult{Status: entity.ResponsePending}, nil).Once()
		d.reconciler.EXPECT().Reconcile(mock.Anything, usecase.VerifyRequest{InvoiceID: "INV-3"}).
			Return(nil, errs.ErrGatewayUnavailable).Once()

		report, err := d.poller.Sweep(context.Background())

		require.NoError(t, err)
		assert.Equal(t, SweepReport{Checked: 3, Settled: 1, Failed: 1}, report)
		assert.True(t, *released)
	})

	t.Run("skips when another instance holds the lock", func(t *testing.T) {
		d := newPollerDeps(t)
		d.locker.EXPECT().TryLock(mock.Anything, "payment-poller", mock.Anything).Return(nil, false, nil).Once()

		report, err := d.poller.Sweep(context.Background())

		require.NoError(t, err)
		assert.True(t, report.Skipped)
		d.repo.AssertNotCalled(t, "ListStale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lock error", func(t *testing.T) {
		d := newPollerDeps(t)
		d.locker.EXPECT().TryLock(mock.Anything, mock.Anything, mock.Anything).Return(nil, false, errors.New("redis down")).Once()

		_, err := d.poller.Sweep(context.Background())

		assert.ErrorContains(t, err, "redis down")
	})

	t.Run("list error releases lock", func(t *testing.T) {
		d := newPollerDeps(t)
		released := d.expectLock(t)
		d.repo.EXPECT().ListStale(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errs.ErrDatabaseConnection).Once()

		_, err := d.poller.Sweep(context.Background())

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.True(t, *released)
	})

	t.Run("nothing stale", func(t *testing.T) {
		d := newPollerDeps(t)
		d.expectLock(t)
		d.repo.EXPECT().ListStale(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil).Once()

		report, err := d.poller.Sweep(context.Background())

		require.NoError(t, err)
		assert.Equal(t, SweepReport{}, report)
	})
}

func TestPoller_StartAndShutdown(t *testing.T) {
	d := newPollerDeps(t)

	d.poller.Start(context.Background())
	d.poller.Shutdown()
	d.poller.Shutdown()
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{MinAge: 5 * coreport.Minute, MaxAge: coreport.Minute}.withDefaults()

	assert.Equal(t, DefaultConfig().Interval, cfg.Interval)
	assert.Equal(t, 24*coreport.Hour, cfg.MaxAge)
	assert.Equal(t, 5*coreport.Minute, cfg.MinAge)
	assert.Equal(t, "payment-poller", cfg.LockKey)
}
