// Package coordinator orchestrates one help request end to end:
// resolve the account, check funds, find a mentor, debit, hand back a
// session. The debit is the one and only durable side effect, and it
// is the final step — every failing branch leaves all state untouched.
//
// Request lifecycle:
//
//	Received → FundsChecked → Matched → Debited → Completed
//
// with early-exit terminal states RejectedNoFunds (from Received /
// FundsChecked) and RejectedNoMatch (from FundsChecked). A rejected
// request is a final, user-visible outcome; the coordinator never
// retries — resubmission belongs to the caller.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/flashmentor-network/flashmentor/internal/app/directory"
	"github.com/flashmentor-network/flashmentor/internal/app/ledger"
	"github.com/flashmentor-network/flashmentor/internal/domain"
	"github.com/flashmentor-network/flashmentor/internal/infra/observability"
)

// DefaultSessionCost is the fixed price of one help session in minutes.
const DefaultSessionCost = 3

// Config controls coordinator behavior.
type Config struct {
	SessionCost int64 // Minutes debited per session (default: 3)
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{SessionCost: DefaultSessionCost}
}

// Coordinator wires the ledger, directory, and match strategy
// together. It also owns the ephemeral session registry that pairs a
// later earn credit with the original spend.
type Coordinator struct {
	ledger   *ledger.Ledger
	dir      *directory.Directory
	scorer   *directory.Scorer
	strategy domain.MatchStrategy
	config   Config

	mu       sync.Mutex
	sessions map[int64]domain.Session
	lastID   int64 // last issued session id, strictly increasing

	now func() time.Time // injectable clock for testing
}

// New creates a coordinator.
func New(l *ledger.Ledger, d *directory.Directory, strategy domain.MatchStrategy, cfg Config) *Coordinator {
	if cfg.SessionCost <= 0 {
		cfg.SessionCost = DefaultSessionCost
	}
	return &Coordinator{
		ledger:   l,
		dir:      d,
		scorer:   directory.NewScorer(d),
		strategy: strategy,
		config:   cfg,
		sessions: make(map[int64]domain.Session),
		now:      time.Now,
	}
}

// SessionCost returns the configured per-session price in minutes.
func (c *Coordinator) SessionCost() int64 { return c.config.SessionCost }

// RequestHelp runs the full match-and-debit decision. The returned
// error is domain.ErrInsufficientFunds or domain.ErrNoExpertAvailable
// for the two business outcomes, domain.ErrTopicRequired for a
// contract violation, and anything else for an infrastructure fault.
func (c *Coordinator) RequestHelp(ctx context.Context, accountID, topic, contextText string) (domain.Session, error) {
	start := c.now()
	sess, err := c.requestHelp(ctx, accountID, topic, contextText)
	observability.RequestDuration.Observe(c.now().Sub(start).Seconds())

	switch {
	case err == nil:
		observability.HelpRequests.WithLabelValues(observability.OutcomeMatched).Inc()
		observability.MinutesSpent.Add(float64(c.config.SessionCost))
		observability.ActiveSessions.Inc()
	case errors.Is(err, domain.ErrInsufficientFunds):
		observability.HelpRequests.WithLabelValues(observability.OutcomeInsufficientFunds).Inc()
	case errors.Is(err, domain.ErrNoExpertAvailable):
		observability.HelpRequests.WithLabelValues(observability.OutcomeNoExpert).Inc()
	case errors.Is(err, domain.ErrTopicRequired):
		// contract error; the API boundary rejects these before they
		// normally reach here, so there is nothing to count
	default:
		observability.HelpRequests.WithLabelValues(observability.OutcomeError).Inc()
	}
	return sess, err
}

func (c *Coordinator) requestHelp(ctx context.Context, accountID, topic, contextText string) (domain.Session, error) {
	if topic == "" {
		return domain.Session{}, domain.ErrTopicRequired
	}
	if accountID == "" {
		accountID = domain.AnonymousAccount
	}

	// 1. Resolve or lazily create the account; no mutation yet.
	acct, err := c.ledger.GetOrCreate(ctx, accountID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("resolve account: %w", err)
	}

	// 2. Advisory funds check: reject before doing any matching work.
	if acct.Balance < c.config.SessionCost {
		return domain.Session{}, domain.ErrInsufficientFunds
	}

	// 3–4. Candidates in directory order, then strategy selection.
	candidates := c.dir.ListAvailable(topic)
	expert, ok := c.strategy.Select(topic, candidates)
	if !ok {
		return domain.Session{}, domain.ErrNoExpertAvailable
	}

	// 5. The advisory check can be stale by now (a concurrent spend
	// may have drained the account), so the debit re-validates
	// atomically. On a shortfall nothing was committed.
	remaining, err := c.ledger.TryDebit(ctx, accountID, c.config.SessionCost)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return domain.Session{}, domain.ErrInsufficientFunds
		}
		return domain.Session{}, fmt.Errorf("debit: %w", err)
	}

	// 6. Synthesize the session handle.
	sess := domain.Session{
		AccountID:        accountID,
		Expert:           expert,
		Topic:            topic,
		Context:          contextText,
		RemainingBalance: remaining,
		StartedAt:        c.now(),
	}

	c.mu.Lock()
	sess.ID = c.nextSessionIDLocked()
	c.sessions[sess.ID] = sess
	c.mu.Unlock()

	return sess, nil
}

// nextSessionIDLocked issues a unique, strictly increasing session id
// seeded from wall-clock milliseconds. Callers hold c.mu.
func (c *Coordinator) nextSessionIDLocked() int64 {
	id := c.now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

// Completion carries the optional caller feedback for a finished
// session.
type Completion struct {
	Rating *float64 // 0–100; folded into the mentor's response score when set
}

// CompletionResult reports the effects of completing a session.
type CompletionResult struct {
	Session       domain.Session `json:"session"`
	MentorBalance int64          `json:"mentor_balance"`
	ResponseScore float64        `json:"response_score"` // mentor's score after any rating
}

// CompleteSession retires a live session and credits the matched
// mentor with the session cost, pairing the EARN with the original
// SPEND. An optional rating updates the mentor's response score.
func (c *Coordinator) CompleteSession(ctx context.Context, sessionID int64, comp Completion) (CompletionResult, error) {
	// Claim the session before crediting so concurrent completions of
	// the same id cannot both pay the mentor. The loser sees the id
	// gone and gets ErrSessionNotFound.
	c.mu.Lock()
	sess, ok := c.sessions[sessionID]
	if ok {
		delete(c.sessions, sessionID)
	}
	c.mu.Unlock()
	if !ok {
		return CompletionResult{}, domain.ErrSessionNotFound
	}

	balance, err := c.ledger.Credit(ctx, sess.Expert.ID, c.config.SessionCost)
	if err != nil {
		// Put the claim back so the caller can retry the credit.
		c.mu.Lock()
		c.sessions[sessionID] = sess
		c.mu.Unlock()
		return CompletionResult{}, fmt.Errorf("credit mentor %s: %w", sess.Expert.ID, err)
	}

	score := sess.Expert.ResponseScore
	if comp.Rating != nil {
		// The mentor may have been removed since the match; losing the
		// rating is fine, the credit already happened.
		if updated, err := c.scorer.Rate(sess.Expert.ID, *comp.Rating); err == nil {
			score = updated
		}
	}

	observability.MinutesEarned.Add(float64(c.config.SessionCost))
	observability.SessionsCompleted.Inc()
	observability.ActiveSessions.Dec()
	return CompletionResult{Session: sess, MentorBalance: balance, ResponseScore: score}, nil
}

// ActiveSessions returns a snapshot of live session handles in
// unspecified order.
func (c *Coordinator) ActiveSessions() []domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Session, 0, len(c.sessions))
	for _, s := range c.sessions {
		out = append(out, s)
	}
	return out
}
