package payment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/persistence"
)

// memStore is an in-memory stand-in for the payment, user and settings tables.
// Begin snapshots all rows; Rollback restores them if the transaction wrote anything.
// Payment writes enforce the transaction_id <> invoice_id check constraint.
type memStore struct {
	mu       sync.Mutex
	payments map[uint64]*entity.Payment
	users    map[uint64]*entity.User
	settings entity.Settings
	now      time.Time

	writes int

	// failDeposits makes the next N ApplyDeposit calls fail with depositErr
	failDeposits int
	depositErr   error
	// beforeClaim runs before ClaimSuccess inspects the row
	beforeClaim func(*entity.Payment)
	// afterWrite runs after UpdateVerification or ClaimSuccess stored the row,
	// bypassing the check constraint
	afterWrite func(*entity.Payment)
	// failCommits makes the next N Commit calls fail with commitErr
	failCommits int
	commitErr   error
}

type memSnapshot struct {
	payments map[uint64]entity.Payment
	users    map[uint64]entity.User
	writes   int
	dirty    bool
}

type memTxKey struct{}

func txFrom(ctx context.Context) *memSnapshot {
	tx, _ := ctx.Value(memTxKey{}).(*memSnapshot)
	return tx
}

func markDirty(ctx context.Context) {
	if tx := txFrom(ctx); tx != nil {
		tx.dirty = true
	}
}

func newMemStore(now time.Time) *memStore {
	return &memStore{
		payments: map[uint64]*entity.Payment{},
		users:    map[uint64]*entity.User{},
		now:      now,
	}
}

var (
	_ persistence.PaymentRepository  = (*memStore)(nil)
	_ persistence.UserRepository     = (*memStore)(nil)
	_ persistence.SettingsRepository = (*memStore)(nil)
	_ persistence.UnitOfWork         = (*memStore)(nil)
)

func (s *memStore) addPayment(p entity.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[p.ID] = &p
}

func (s *memStore) addUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = &u
}

func (s *memStore) payment(id uint64) entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.payments[id]
}

func (s *memStore) user(id uint64) entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.users[id]
}

func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// UnitOfWork

func (s *memStore) Begin(ctx context.Context) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := &memSnapshot{
		payments: map[uint64]entity.Payment{},
		users:    map[uint64]entity.User{},
		writes:   s.writes,
	}
	for id, p := range s.payments {
		snap.payments[id] = *p
	}
	for id, u := range s.users {
		snap.users[id] = *u
	}
	return context.WithValue(ctx, memTxKey{}, snap), nil
}

func (s *memStore) Commit(ctx context.Context) error {
	s.mu.Lock()
	if s.failCommits > 0 {
		s.failCommits--
		s.mu.Unlock()
		return s.commitErr
	}
	s.mu.Unlock()

	if tx := txFrom(ctx); tx != nil {
		tx.dirty = false
	}
	return nil
}

func (s *memStore) Rollback(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := txFrom(ctx)
	if tx == nil || !tx.dirty {
		return nil
	}
	s.payments = map[uint64]*entity.Payment{}
	for id, p := range tx.payments {
		p := p
		s.payments[id] = &p
	}
	s.users = map[uint64]*entity.User{}
	for id, u := range tx.users {
		u := u
		s.users[id] = &u
	}
	s.writes = tx.writes
	tx.dirty = false
	return nil
}

func (s *memStore) GetPaymentRepository(ctx context.Context) persistence.PaymentRepository {
	return s
}

func (s *memStore) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return s
}

// PaymentRepository

func (s *memStore) findBy(match func(*entity.Payment) bool) (*entity.Payment, error) {
	for _, p := range s.payments {
		if match(p) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errs.ErrPaymentNotFound
}

func (s *memStore) GetByInvoiceID(ctx context.Context, invoiceID string) (*entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findBy(func(p *entity.Payment) bool { return p.InvoiceID == invoiceID })
}

func (s *memStore) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findBy(func(p *entity.Payment) bool {
		return p.TransactionID != nil && *p.TransactionID == transactionID
	})
}

func (s *memStore) FindRecentOpenByUser(ctx context.Context, userID uint64, since time.Time) (*entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var newest *entity.Payment
	for _, p := range s.payments {
		if p.UserID != userID || p.Status != entity.PaymentStatusProcessing || p.CreatedAt.Before(since) {
			continue
		}
		if newest == nil || p.CreatedAt.After(newest.CreatedAt) {
			newest = p
		}
	}
	if newest == nil {
		return nil, errs.ErrPaymentNotFound
	}
	cp := *newest
	return &cp, nil
}

func violatesTransactionIDCheck(p *entity.Payment) bool {
	return p.TransactionID != nil && *p.TransactionID == p.InvoiceID
}

// store replaces the row unless the new state breaks the check constraint
func (s *memStore) store(p *entity.Payment, next entity.Payment) error {
	if violatesTransactionIDCheck(&next) {
		return fmt.Errorf("%w: chk_add_funds_txid_not_invoice", errs.ErrConstraintViolation)
	}
	*p = next
	s.writes++
	return nil
}

func (s *memStore) AssignInvoiceID(ctx context.Context, paymentID uint64, invoiceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[paymentID]
	if !ok {
		return errs.ErrPaymentNotFound
	}
	next := *p
	next.InvoiceID = invoiceID
	if next.TransactionID != nil && *next.TransactionID == invoiceID {
		next.TransactionID = nil
	}
	next.UpdatedAt = s.now
	return s.store(p, next)
}

func (s *memStore) ClearTransactionID(ctx context.Context, paymentID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[paymentID]
	if !ok {
		return errs.ErrPaymentNotFound
	}
	p.TransactionID = nil
	p.UpdatedAt = s.now
	s.writes++
	return nil
}

func applyUpdate(p *entity.Payment, u entity.PaymentUpdate, now time.Time) {
	p.TransactionID = u.TransactionID
	p.PaymentMethod = u.PaymentMethod
	p.GatewayFee = u.GatewayFee
	p.Amount = u.Amount
	p.Name = u.Name
	p.Email = u.Email
	p.Status = u.Status
	p.AdminStatus = u.AdminStatus
	p.UpdatedAt = now
}

func (s *memStore) UpdateVerification(ctx context.Context, paymentID uint64, update entity.PaymentUpdate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[paymentID]
	if !ok || p.Status == entity.PaymentStatusSuccess {
		return 0, nil
	}
	next := *p
	applyUpdate(&next, update, s.now)
	if err := s.store(p, next); err != nil {
		return 0, err
	}
	if s.afterWrite != nil {
		s.afterWrite(p)
	}
	return 1, nil
}

func (s *memStore) ClaimSuccess(ctx context.Context, invoiceID string, update entity.PaymentUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.InvoiceID != invoiceID {
			continue
		}
		if s.beforeClaim != nil {
			s.beforeClaim(p)
		}
		if p.Status == entity.PaymentStatusSuccess {
			return false, nil
		}
		next := *p
		applyUpdate(&next, update, s.now)
		if err := s.store(p, next); err != nil {
			return false, err
		}
		markDirty(ctx)
		if s.afterWrite != nil {
			s.afterWrite(p)
		}
		return true, nil
	}
	return false, nil
}

func (s *memStore) ListStale(ctx context.Context, createdAfter, createdBefore time.Time, limit int) ([]*entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Payment
	for _, p := range s.payments {
		if p.Status == entity.PaymentStatusProcessing && !p.CreatedAt.Before(createdAfter) && !p.CreatedAt.After(createdBefore) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UserRepository

func (s *memStore) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) ApplyDeposit(ctx context.Context, deposit entity.Deposit) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDeposits > 0 {
		s.failDeposits--
		return nil, s.depositErr
	}
	u, ok := s.users[deposit.UserID]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	u.Balance = u.Balance.Add(deposit.BalanceIncrement())
	u.BalanceUSD = u.BalanceUSD.Add(deposit.Amount)
	u.TotalDeposit = u.TotalDeposit.Add(deposit.Amount)
	u.UpdatedAt = s.now
	s.writes++
	markDirty(ctx)
	cp := *u
	return &cp, nil
}

// SettingsRepository

func (s *memStore) Get(ctx context.Context) (*entity.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := s.settings
	return &settings, nil
}
