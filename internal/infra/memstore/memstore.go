// Package memstore is the in-memory LedgerStore. It is the default
// backing store for a single-process deployment and the store used by
// tests; the sqlite store covers durability.
package memstore

import (
	"context"
	"sync"

	"github.com/flashmentor-network/flashmentor/internal/domain"
)

// Store holds accounts and their histories in process memory.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

// New creates an empty store.
func New() *Store {
	return &Store{accounts: make(map[string]*domain.Account)}
}

// GetAccount returns a snapshot copy of the account, or nil when it
// does not exist. The copy keeps callers from mutating internal state.
func (s *Store) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *acct
	cp.History = append([]domain.Transaction(nil), acct.History...)
	return &cp, nil
}

// CreateAccount inserts a new account. Re-creating an existing id is a
// no-op: the ledger's per-account lock makes this unreachable, and
// losing an existing history would violate append-only.
func (s *Store) CreateAccount(ctx context.Context, acct domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[acct.ID]; exists {
		return nil
	}
	cp := acct
	cp.History = append([]domain.Transaction(nil), acct.History...)
	s.accounts[acct.ID] = &cp
	return nil
}

// UpdateBalance sets the balance and appends the transaction as one
// consistent write.
func (s *Store) UpdateBalance(ctx context.Context, id string, balance int64, tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[id]
	if !ok {
		// The ledger always creates before updating; tolerate a direct
		// write by seeding an empty account.
		acct = &domain.Account{ID: id}
		s.accounts[id] = acct
	}
	acct.Balance = balance
	acct.History = append(acct.History, tx)
	return nil
}

// Transactions returns a copy of the account's history in insertion
// order. Unknown accounts yield an empty history.
func (s *Store) Transactions(ctx context.Context, id string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	return append([]domain.Transaction(nil), acct.History...), nil
}

// Compile-time check: Store implements domain.LedgerStore.
var _ domain.LedgerStore = (*Store)(nil)
