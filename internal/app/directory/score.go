package directory

import (
	"sync"

	"github.com/flashmentor-network/flashmentor/internal/domain"
)

// ─── Response Score Updates ─────────────────────────────────────────────────
// An expert carries a single quality number, ResponseScore. Callers
// may rate a completed session (0–100); the score follows the ratings
// as an exponential moving average:
//
//	score' = (1−α)·score + α·rating
//
// Low α = slow adaptation = resistant to one-off bad ratings. New
// experts use a higher α for their first ratings so the score
// converges quickly, then settle to the normal factor.

const (
	// AlphaNormal is the EMA smoothing factor for established experts.
	AlphaNormal = 0.1

	// AlphaColdStart is used for an expert's first ColdStartRatings.
	AlphaColdStart = 0.3

	// ColdStartRatings is how many ratings before switching to normal α.
	ColdStartRatings = 5

	// MaxRating bounds a session rating; ratings clamp to [0, MaxRating].
	MaxRating = 100
)

// Scorer folds session ratings into directory response scores.
type Scorer struct {
	mu      sync.Mutex
	dir     *Directory
	ratings map[string]int // ratings seen per expert, for cold start
}

// NewScorer creates a scorer over the directory.
func NewScorer(dir *Directory) *Scorer {
	return &Scorer{dir: dir, ratings: make(map[string]int)}
}

// Rate folds one session rating into the expert's response score and
// returns the new score. Unknown experts return ErrExpertNotFound.
func (s *Scorer) Rate(expertID string, rating float64) (float64, error) {
	if rating < 0 {
		rating = 0
	}
	if rating > MaxRating {
		rating = MaxRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.dir.Get(expertID)
	if !ok {
		return 0, domain.ErrExpertNotFound
	}

	alpha := AlphaNormal
	if s.ratings[expertID] < ColdStartRatings {
		alpha = AlphaColdStart
	}
	s.ratings[expertID]++

	updated := (1-alpha)*profile.ResponseScore + alpha*rating
	if err := s.dir.SetResponseScore(expertID, updated); err != nil {
		return 0, err
	}
	return updated, nil
}
