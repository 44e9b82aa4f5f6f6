// Package ledger implements the time-credit ledger service.
//
// The ledger is the only component that mutates balances. Every
// balance change appends an immutable Transaction, so an account's
// history always explains its balance. Per-account mutexes make
// GetOrCreate / TryDebit / Credit linearizable for a given account id
// while independent accounts never contend.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flashmentor-network/flashmentor/internal/domain"
)

// DefaultInitialBalance is the seed balance for lazily created
// accounts: the "give 10 minutes, receive 10 minutes" onboarding grant.
const DefaultInitialBalance = 10

// Config controls ledger behavior.
type Config struct {
	InitialBalance int64 // Seed balance for new accounts (default: 10)
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{InitialBalance: DefaultInitialBalance}
}

// Ledger serializes balance mutations over a LedgerStore.
type Ledger struct {
	store  domain.LedgerStore
	config Config

	locks   map[string]*sync.Mutex // one mutex per account id
	locksMu sync.Mutex             // protects the locks map itself

	now func() time.Time // injectable clock for testing
}

// New creates a ledger service over the given store. A zero initial
// balance is honored: accounts can deliberately start with no grant.
func New(store domain.LedgerStore, cfg Config) *Ledger {
	if cfg.InitialBalance < 0 {
		cfg.InitialBalance = DefaultInitialBalance
	}
	return &Ledger{
		store:  store,
		config: cfg,
		locks:  make(map[string]*sync.Mutex),
		now:    time.Now,
	}
}

// accountLock returns the mutex for an account, creating it on first use.
func (l *Ledger) accountLock(accountID string) *sync.Mutex {
	l.locksMu.Lock()
	defer l.locksMu.Unlock()

	mu, ok := l.locks[accountID]
	if !ok {
		mu = &sync.Mutex{}
		l.locks[accountID] = mu
	}
	return mu
}

// GetOrCreate returns the account, lazily creating it with the seed
// balance and empty history. Idempotent: two concurrent first
// references to the same id seed exactly one account.
func (l *Ledger) GetOrCreate(ctx context.Context, accountID string) (domain.Account, error) {
	mu := l.accountLock(accountID)
	mu.Lock()
	defer mu.Unlock()

	return l.getOrCreateLocked(ctx, accountID)
}

// getOrCreateLocked is GetOrCreate with the account lock already held.
func (l *Ledger) getOrCreateLocked(ctx context.Context, accountID string) (domain.Account, error) {
	acct, err := l.store.GetAccount(ctx, accountID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account %s: %w", accountID, err)
	}
	if acct != nil {
		return *acct, nil
	}

	fresh := domain.Account{
		ID:        accountID,
		Balance:   l.config.InitialBalance,
		History:   nil,
		CreatedAt: l.now(),
	}
	if err := l.store.CreateAccount(ctx, fresh); err != nil {
		return domain.Account{}, fmt.Errorf("create account %s: %w", accountID, err)
	}
	return fresh, nil
}

// TryDebit atomically checks balance >= amount and, if so, decrements
// and appends a SPEND transaction, returning the new balance. On a
// shortfall it returns domain.ErrInsufficientFunds and mutates
// nothing. Insufficient funds is a routine outcome, not a fault.
func (l *Ledger) TryDebit(ctx context.Context, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrBadAmount
	}

	mu := l.accountLock(accountID)
	mu.Lock()
	defer mu.Unlock()

	acct, err := l.getOrCreateLocked(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if acct.Balance < amount {
		return acct.Balance, domain.ErrInsufficientFunds
	}

	newBalance := acct.Balance - amount
	tx := l.newTransaction(domain.TxSpend, amount)
	if err := l.store.UpdateBalance(ctx, accountID, newBalance, tx); err != nil {
		return 0, fmt.Errorf("debit account %s: %w", accountID, err)
	}
	return newBalance, nil
}

// Credit unconditionally increments the balance and appends an EARN
// transaction. There is no upper bound on a balance.
func (l *Ledger) Credit(ctx context.Context, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrBadAmount
	}

	mu := l.accountLock(accountID)
	mu.Lock()
	defer mu.Unlock()

	acct, err := l.getOrCreateLocked(ctx, accountID)
	if err != nil {
		return 0, err
	}

	newBalance := acct.Balance + amount
	tx := l.newTransaction(domain.TxEarn, amount)
	if err := l.store.UpdateBalance(ctx, accountID, newBalance, tx); err != nil {
		return 0, fmt.Errorf("credit account %s: %w", accountID, err)
	}
	return newBalance, nil
}

// Balance returns the current balance, seeding the account if needed.
func (l *Ledger) Balance(ctx context.Context, accountID string) (int64, error) {
	acct, err := l.GetOrCreate(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}

// History returns a snapshot of the account's transactions in
// insertion order. It reflects state at call time, not a live stream;
// unknown accounts yield an empty history.
func (l *Ledger) History(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	txs, err := l.store.Transactions(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("history for account %s: %w", accountID, err)
	}
	return txs, nil
}

func (l *Ledger) newTransaction(kind domain.TransactionKind, amount int64) domain.Transaction {
	return domain.Transaction{
		ID:        uuid.NewString(),
		Kind:      kind,
		Amount:    amount,
		Timestamp: l.now(),
	}
}
