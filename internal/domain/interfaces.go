package domain

import "context"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// LedgerStore abstracts account and transaction persistence. The ledger
// service serializes per-account access above this interface, so a
// store only needs internally consistent reads and writes — it does
// not need its own account-level locking discipline.
type LedgerStore interface {
	// GetAccount returns the account or nil when it does not exist.
	GetAccount(ctx context.Context, id string) (*Account, error)

	// CreateAccount inserts a new account with the given starting
	// balance and empty history.
	CreateAccount(ctx context.Context, acct Account) error

	// UpdateBalance sets the account's balance and appends tx to its
	// history as one consistent write.
	UpdateBalance(ctx context.Context, id string, balance int64, tx Transaction) error

	// Transactions returns the account's history in insertion order.
	// Unknown accounts yield an empty history, not an error.
	Transactions(ctx context.Context, id string) ([]Transaction, error)
}

// MatchStrategy selects an expert for a topic from pre-filtered
// candidates (all available, all tag-matching, in directory order).
// The boolean is false when no candidate qualifies — never an error.
type MatchStrategy interface {
	Select(topic string, candidates []ExpertProfile) (ExpertProfile, bool)
}
