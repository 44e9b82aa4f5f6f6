package directory

import (
	"errors"
	"math"
	"testing"

	"github.com/flashmentor-network/flashmentor/internal/domain"
)

func TestScorer_ColdStartThenNormal(t *testing.T) {
	d := New()
	d.Upsert(domain.ExpertProfile{ID: "alice", ResponseScore: 95, Available: true})
	s := NewScorer(d)

	// First ratings use the cold-start factor.
	got, err := s.Rate("alice", 50)
	if err != nil {
		t.Fatalf("Rate() error: %v", err)
	}
	want := 0.7*95 + 0.3*50 // 81.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}

	// Burn through the cold-start window.
	for i := 1; i < ColdStartRatings; i++ {
		if _, err := s.Rate("alice", 50); err != nil {
			t.Fatalf("Rate() error: %v", err)
		}
	}

	// Now a rating moves the score by the normal factor only.
	before, _ := d.Get("alice")
	got, err = s.Rate("alice", 0)
	if err != nil {
		t.Fatalf("Rate() error: %v", err)
	}
	want = 0.9 * before.ResponseScore
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %v, want %v (normal α after cold start)", got, want)
	}
}

func TestScorer_ClampsRating(t *testing.T) {
	d := New()
	d.Upsert(domain.ExpertProfile{ID: "bob", ResponseScore: 80})
	s := NewScorer(d)

	got, err := s.Rate("bob", 500)
	if err != nil {
		t.Fatalf("Rate() error: %v", err)
	}
	want := 0.7*80 + 0.3*100 // rating clamped to 100
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestScorer_UnknownExpert(t *testing.T) {
	s := NewScorer(New())
	if _, err := s.Rate("ghost", 50); !errors.Is(err, domain.ErrExpertNotFound) {
		t.Errorf("err = %v, want ErrExpertNotFound", err)
	}
}
