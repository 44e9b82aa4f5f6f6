package domain

import "time"

// ─── Credit Types ───────────────────────────────────────────────────────────
// These live in domain because they represent core business rules:
// the time-credit ledger is immutable and append-only.

// TransactionKind represents the business reason for a balance change.
type TransactionKind string

const (
	// TxSpend records minutes debited to request help.
	TxSpend TransactionKind = "SPEND"
	// TxEarn records minutes credited for providing help.
	TxEarn TransactionKind = "EARN"
)

// Transaction is a single immutable row in an account's history.
// Once appended it is never modified or removed; ordering within an
// account is insertion order.
type Transaction struct {
	ID        string          `json:"id"`
	Kind      TransactionKind `json:"kind"`
	Amount    int64           `json:"amount"` // always positive
	Timestamp time.Time       `json:"timestamp"`
}
