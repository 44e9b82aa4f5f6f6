// Package matcher implements expertise matching: given a topic and the
// candidates the directory produced for it, pick the mentor to pair.
//
// Two strategies exist behind domain.MatchStrategy:
//
//   - FirstEligible — the reference behavior: the first candidate in
//     directory order wins. Trivially deterministic.
//   - Weighted — ranking by
//     score = responseWeight×normalizedResponseScore + tagWeight×tagMatchStrength
//     descending, directory order breaking ties.
//
// Both are pure: no candidate ⇒ no match, never an error, and neither
// strategy ever mutates ledger or directory state.
package matcher

import "github.com/flashmentor-network/flashmentor/internal/domain"

// ─── First-Eligible Strategy ────────────────────────────────────────────────

// FirstEligible picks the first candidate in directory order.
type FirstEligible struct{}

// NewFirstEligible creates the reference strategy.
func NewFirstEligible() FirstEligible { return FirstEligible{} }

// Select returns the first candidate, or false when there is none.
func (FirstEligible) Select(topic string, candidates []domain.ExpertProfile) (domain.ExpertProfile, bool) {
	if len(candidates) == 0 {
		return domain.ExpertProfile{}, false
	}
	return candidates[0], true
}

// ─── Weighted Strategy ──────────────────────────────────────────────────────

// WeightedConfig holds the ranking weights.
type WeightedConfig struct {
	ResponseWeight float64 // weight of the normalized response score (default 0.6)
	TagWeight      float64 // weight of the tag-match strength (default 0.4)
}

// DefaultWeightedConfig returns the canonical 0.6/0.4 split.
func DefaultWeightedConfig() WeightedConfig {
	return WeightedConfig{ResponseWeight: 0.6, TagWeight: 0.4}
}

// Weighted ranks candidates by a weighted combination of response
// score and tag-match strength.
type Weighted struct {
	config WeightedConfig
}

// NewWeighted creates a weighted strategy. Non-positive weight pairs
// fall back to the defaults.
func NewWeighted(cfg WeightedConfig) *Weighted {
	if cfg.ResponseWeight <= 0 && cfg.TagWeight <= 0 {
		cfg = DefaultWeightedConfig()
	}
	return &Weighted{config: cfg}
}

// RankedCandidate is a candidate with its computed score.
type RankedCandidate struct {
	Expert domain.ExpertProfile `json:"expert"`
	Score  float64              `json:"score"`
}

// Select returns the highest-scoring candidate, or false when there is
// none.
func (w *Weighted) Select(topic string, candidates []domain.ExpertProfile) (domain.ExpertProfile, bool) {
	ranked := w.Rank(topic, candidates)
	if len(ranked) == 0 {
		return domain.ExpertProfile{}, false
	}
	return ranked[0].Expert, true
}

// Rank scores every candidate and returns them in descending score
// order, ties broken by directory order.
func (w *Weighted) Rank(topic string, candidates []domain.ExpertProfile) []RankedCandidate {
	if len(candidates) == 0 {
		return nil
	}

	// Normalize response scores against the best in this candidate
	// set, so scores on different scales still rank consistently.
	var maxResponse float64
	for _, c := range candidates {
		if c.ResponseScore > maxResponse {
			maxResponse = c.ResponseScore
		}
	}

	h := &rankHeap{}
	for i, c := range candidates {
		var normalized float64
		if maxResponse > 0 {
			normalized = c.ResponseScore / maxResponse
		}
		score := w.config.ResponseWeight*normalized + w.config.TagWeight*tagMatchStrength(topic, c)
		h.push(rankItem{expert: c, score: score, order: i})
	}

	out := make([]RankedCandidate, 0, len(candidates))
	for {
		item, ok := h.pop()
		if !ok {
			break
		}
		out = append(out, RankedCandidate{Expert: item.expert, Score: item.score})
	}
	return out
}

// tagMatchStrength measures how much of the topic the expert's best
// matching tag covers, in [0, 1]. A tag equal to the whole topic
// scores 1; no matching tag scores 0.
func tagMatchStrength(topic string, e domain.ExpertProfile) float64 {
	best := e.BestTagMatch(topic)
	if best == "" || len(topic) == 0 {
		return 0
	}
	strength := float64(len(best)) / float64(len(topic))
	if strength > 1 {
		strength = 1
	}
	return strength
}
