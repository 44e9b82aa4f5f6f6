// Package observability holds the service's Prometheus metrics.
//
// Business outcomes (insufficient funds, no expert available) are
// counted, never logged as errors — they are routine branches of the
// help-request flow, and the outcome label keeps them apart from
// infrastructure faults.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for HelpRequests.
const (
	OutcomeMatched           = "matched"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeNoExpert          = "no_expert_available"
	OutcomeError             = "error"
)

// ─── Help Request Metrics ───────────────────────────────────────────────────

// HelpRequests counts help requests by terminal outcome.
var HelpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "flashmentor",
	Subsystem: "coordinator",
	Name:      "help_requests_total",
	Help:      "Help requests by outcome (matched, insufficient_funds, no_expert_available, error).",
}, []string{"outcome"})

// RequestDuration tracks the decision latency of a help request. The
// debit/match decision is a single fast bounded operation; a fat tail
// here means a store is misbehaving.
var RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "flashmentor",
	Subsystem: "coordinator",
	Name:      "request_duration_seconds",
	Help:      "End-to-end latency of the match-and-debit decision.",
	Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
})

// ─── Ledger Metrics ─────────────────────────────────────────────────────────

// MinutesSpent counts total minutes debited across all accounts.
var MinutesSpent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "flashmentor",
	Subsystem: "ledger",
	Name:      "minutes_spent_total",
	Help:      "Total minutes debited for help sessions.",
})

// MinutesEarned counts total minutes credited across all accounts.
var MinutesEarned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "flashmentor",
	Subsystem: "ledger",
	Name:      "minutes_earned_total",
	Help:      "Total minutes credited to mentors.",
})

// ─── Session Metrics ────────────────────────────────────────────────────────

// ActiveSessions tracks sessions matched but not yet completed.
var ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "flashmentor",
	Subsystem: "sessions",
	Name:      "active",
	Help:      "Live session handles awaiting completion.",
})

// SessionsCompleted counts sessions whose earn credit was paired.
var SessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "flashmentor",
	Subsystem: "sessions",
	Name:      "completed_total",
	Help:      "Sessions completed and credited to the mentor.",
})
