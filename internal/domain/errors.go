package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.
//
// ErrInsufficientFunds and ErrNoExpertAvailable are EXPECTED business
// outcomes, not faults: callers branch on them with errors.Is and must
// never log them as errors. Anything else that crosses the ledger
// boundary is an infrastructure fault and stays distinct.

var (
	// Business outcomes
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoExpertAvailable = errors.New("no expert available")

	// Contract errors (caught at the boundary, never reach the coordinator)
	ErrTopicRequired = errors.New("topic is required")
	ErrBadAmount     = errors.New("amount must be a positive integer")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Directory errors
	ErrExpertNotFound = errors.New("expert not found")
)
