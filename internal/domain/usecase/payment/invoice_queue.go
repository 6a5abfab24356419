package payment

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/usecase"
)

const invoiceQueueSize = 16

// InvoiceQueue runs verifications of the same invoice one at a time within this
// process. Later callers usually hit the settled short-circuit instead of calling
// the gateway again. Different invoices proceed in parallel.
type InvoiceQueue struct {
	next   usecase.PaymentVerificationUseCase
	logger coreport.Logger

	mu     sync.Mutex
	queues map[string]*invoiceQueue
	closed bool
	wg     sync.WaitGroup
}

type invoiceQueue struct {
	requests chan *queuedRequest
	pending  int
}

type queuedRequest struct {
	ctx        context.Context
	req        usecase.VerifyRequest
	resultChan chan queuedResult
}

type queuedResult struct {
	result *usecase.VerificationResult
	err    error
}

var _ usecase.PaymentVerificationUseCase = (*InvoiceQueue)(nil)

// NewInvoiceQueue wraps next with per-invoice sequencing
func NewInvoiceQueue(next usecase.PaymentVerificationUseCase, logger coreport.Logger) *InvoiceQueue {
	if next == nil {
		panic("invoice queue requires a reconciler")
	}
	return &InvoiceQueue{
		next:   next,
		logger: logger,
		queues: make(map[string]*invoiceQueue),
	}
}

// Reconcile queues req behind any in-flight verification of the same invoice
func (q *InvoiceQueue) Reconcile(ctx context.Context, req usecase.VerifyRequest) (*usecase.VerificationResult, error) {
	key := strings.TrimSpace(req.InvoiceID)
	if key == "" {
		// nothing to serialize on; let validation reject it
		return q.next.Reconcile(ctx, req)
	}

	queue, err := q.acquire(key)
	if err != nil {
		return nil, err
	}

	qr := &queuedRequest{
		ctx:        ctx,
		req:        req,
		resultChan: make(chan queuedResult, 1),
	}

	select {
	case queue.requests <- qr:
	case <-ctx.Done():
		q.release(key, queue)
		q.logger.Warn("Context canceled while queueing verification", map[string]any{
			"invoice_id": key,
			"error":      ctx.Err().Error(),
		})
		return nil, ctx.Err()
	}

	select {
	case res := <-qr.resultChan:
		return res.result, res.err
	case <-ctx.Done():
		q.logger.Warn("Context canceled while waiting for verification", map[string]any{
			"invoice_id": key,
			"error":      ctx.Err().Error(),
		})
		return nil, ctx.Err()
	}
}

// acquire returns the invoice's queue, starting its worker on first use
func (q *InvoiceQueue) acquire(key string) (*invoiceQueue, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, errs.ErrInternalServer
	}

	queue, ok := q.queues[key]
	if !ok {
		queue = &invoiceQueue{requests: make(chan *queuedRequest, invoiceQueueSize)}
		q.queues[key] = queue
		q.wg.Add(1)
		go q.work(key, queue)
	}
	queue.pending++
	return queue, nil
}

// release drops one pending request and retires the queue once it is idle
func (q *InvoiceQueue) release(key string, queue *invoiceQueue) {
	q.mu.Lock()
	defer q.mu.Unlock()

	queue.pending--
	if queue.pending == 0 {
		delete(q.queues, key)
		close(queue.requests)
	}
}

func (q *InvoiceQueue) work(key string, queue *invoiceQueue) {
	defer q.wg.Done()

	for qr := range queue.requests {
		result, err := q.reconcile(key, qr)
		qr.resultChan <- queuedResult{result: result, err: err}
		close(qr.resultChan)
		q.release(key, queue)
	}
}

// reconcile runs one queued verification, turning a panic into ErrInternalServer
// for the waiting caller
func (q *InvoiceQueue) reconcile(key string, qr *queuedRequest) (result *usecase.VerificationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("Panic while verifying queued invoice", map[string]any{
				"invoice_id": key,
				"panic":      fmt.Sprint(r),
				"stack":      string(debug.Stack()),
			})
			result, err = nil, errs.NewVerificationError(key, "reconcile", errs.ErrInternalServer)
		}
	}()
	return q.next.Reconcile(qr.ctx, qr.req)
}

// Active returns the number of invoices with queued or running verifications
func (q *InvoiceQueue) Active() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queues)
}

// Shutdown rejects new verifications and waits for queued ones to finish
func (q *InvoiceQueue) Shutdown() {
	q.logger.Info("Shutting down invoice queue", nil)

	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.wg.Wait()
}
