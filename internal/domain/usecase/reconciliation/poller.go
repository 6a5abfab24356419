package reconciliation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/lock"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
)

// Config controls the stale payment sweep
type Config struct {
	Interval  coreport.Duration
	MinAge    coreport.Duration
	MaxAge    coreport.Duration
	BatchSize int
	Workers   int
	LockKey   string
	LockTTL   coreport.Duration
}

// DefaultConfig returns the production defaults
func DefaultConfig() Config {
	return Config{
		Interval:  30 * coreport.Second,
		MinAge:    2 * coreport.Minute,
		MaxAge:    24 * coreport.Hour,
		BatchSize: 50,
		Workers:   4,
		LockKey:   "payment-poller",
		LockTTL:   25 * coreport.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Interval <= 0 {
		c.Interval = def.Interval
	}
	if c.MinAge <= 0 {
		c.MinAge = def.MinAge
	}
	if c.MaxAge <= c.MinAge {
		c.MaxAge = def.MaxAge
	}
	if c.BatchSize <= 0 {
		c.BatchSize = def.BatchSize
	}
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.LockKey == "" {
		c.LockKey = def.LockKey
	}
	if c.LockTTL <= 0 {
		c.LockTTL = def.LockTTL
	}
	return c
}

// SweepReport summarizes one sweep
type SweepReport struct {
	Skipped bool
	Checked int
	Settled int
	Failed  int
}

// Poller periodically re-verifies payments that stayed in Processing,
// so payments whose browser never came back still get settled.
type Poller struct {
	uow          persistence.UnitOfWork
	reconciler   usecase.PaymentVerificationUseCase
	locker       lock.Locker
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	config       Config

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewPoller creates a new Poller
func NewPoller(
	uow persistence.UnitOfWork,
	reconciler usecase.PaymentVerificationUseCase,
	locker lock.Locker,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
) *Poller {
	return &Poller{
		uow:          uow,
		reconciler:   reconciler,
		locker:       locker,
		timeProvider: timeProvider,
		logger:       logger,
		config:       config.withDefaults(),
		stopCh:       make(chan struct{}),
	}
}

// Start runs the sweep loop in the background until ctx is done or Shutdown is called
func (p *Poller) Start(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(ctx)
	}()
}

// Shutdown stops the loop and waits for an in-flight sweep to finish
func (p *Poller) Shutdown() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()
}

func (p *Poller) run(ctx context.Context) {
	p.logger.Info("Stale payment poller started", map[string]any{
		"interval":   p.config.Interval.Std().String(),
		"batch_size": p.config.BatchSize,
		"workers":    p.config.Workers,
	})

	ticker := time.NewTicker(p.config.Interval.Std())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Stale payment poller stopped", map[string]any{"reason": "context done"})
			return
		case <-p.stopCh:
			p.logger.Info("Stale payment poller stopped", map[string]any{"reason": "shutdown"})
			return
		case <-ticker.C:
			if _, err := p.Sweep(ctx); err != nil {
				p.logger.Error("Stale payment sweep failed", map[string]any{"error": err.Error()})
			}
		}
	}
}

// Sweep re-verifies one batch of stale payments. Only one instance sweeps at a time.
func (p *Poller) Sweep(ctx context.Context) (SweepReport, error) {
	var report SweepReport

	release, acquired, err := p.locker.TryLock(ctx, p.config.LockKey, p.config.LockTTL.Std())
	if err != nil {
		return report, fmt.Errorf("failed to acquire poller lock: %w", err)
	}
	if !acquired {
		p.logger.Debug("Poller lock held elsewhere, skipping sweep", map[string]any{"lock": p.config.LockKey})
		report.Skipped = true
		return report, nil
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			p.logger.Warn("Failed to release poller lock", map[string]any{"lock": p.config.LockKey, "error": err.Error()})
		}
	}()

	now := p.timeProvider.Now()
	payments, err := p.uow.GetPaymentRepository(ctx).ListStale(
		ctx,
		now.Add(-p.config.MaxAge.Std()),
		now.Add(-p.config.MinAge.Std()),
		p.config.BatchSize,
	)
	if err != nil {
		return report, fmt.Errorf("failed to list stale payments: %w", err)
	}
	if len(payments) == 0 {
		return report, nil
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.config.Workers)

	for _, payment := range payments {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(payment *entity.Payment) {
			defer func() {
				<-sem
				wg.Done()
			}()
			settled, err := p.reverify(ctx, payment)

			mu.Lock()
			defer mu.Unlock()
			report.Checked++
			switch {
			case err != nil:
				report.Failed++
			case settled:
				report.Settled++
			}
		}(payment)
	}
	wg.Wait()

	p.logger.Info("Stale payment sweep finished", map[string]any{
		"checked": report.Checked,
		"settled": report.Settled,
		"failed":  report.Failed,
	})
	return report, nil
}

func (p *Poller) reverify(ctx context.Context, payment *entity.Payment) (bool, error) {
	result, err := p.reconciler.Reconcile(ctx, usecase.VerifyRequest{InvoiceID: payment.InvoiceID})
	if err != nil {
		p.logger.Warn("Stale payment re-verification failed", map[string]any{
			"invoice_id": payment.InvoiceID,
			"payment_id": payment.ID,
			"error":      err.Error(),
		})
		return false, err
	}

	p.logger.Debug("Stale payment re-verified", map[string]any{
		"invoice_id": payment.InvoiceID,
		"payment_id": payment.ID,
		"status":     string(result.Status),
	})
	return result.Status == entity.ResponseCompleted, nil
}
