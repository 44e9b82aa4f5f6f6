// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import (
	"strings"
	"time"
)

// ─── Account Types ──────────────────────────────────────────────────────────

// AnonymousAccount is the account used when a request carries no user id.
const AnonymousAccount = "anonymous"

// Account is a participant's time-credit wallet: a balance plus the
// append-only history that produced it. Accounts are created lazily on
// first reference and never deleted.
type Account struct {
	ID        string        `json:"id"`
	Balance   int64         `json:"balance"` // integer minutes, never negative
	History   []Transaction `json:"history"`
	CreatedAt time.Time     `json:"created_at"`
}

// ─── Expert Types ───────────────────────────────────────────────────────────

// ExpertProfile describes a mentor registered in the directory.
type ExpertProfile struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"name"`
	ExpertiseTags []string `json:"expertise"`
	Available     bool     `json:"available"`
	ResponseScore float64  `json:"response_score"` // higher = better/faster
}

// MatchesTopic reports whether the topic string mentions one of the
// expert's tags, case-insensitively. "How do I debug Node streams?"
// matches the tag "Node".
func (e ExpertProfile) MatchesTopic(topic string) bool {
	return e.BestTagMatch(topic) != ""
}

// BestTagMatch returns the longest tag contained in topic
// (case-insensitive), or "" when no tag matches. The longest tag is
// the most specific claim the expert makes about the topic.
func (e ExpertProfile) BestTagMatch(topic string) string {
	lower := strings.ToLower(topic)
	best := ""
	for _, tag := range e.ExpertiseTags {
		if tag == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(tag)) && len(tag) > len(best) {
			best = tag
		}
	}
	return best
}

// ─── Session Types ──────────────────────────────────────────────────────────

// Session is the ephemeral handle produced by a successful match. It
// correlates the debit with the out-of-scope live signaling channel;
// the core never persists it.
type Session struct {
	ID               int64         `json:"session_id"`
	AccountID        string        `json:"account_id"`
	Expert           ExpertProfile `json:"mentor"`
	Topic            string        `json:"topic"`
	Context          string        `json:"context,omitempty"` // free text shown to the mentor
	RemainingBalance int64         `json:"remaining_balance"` // requester balance after debit
	StartedAt        time.Time     `json:"started_at"`
}
