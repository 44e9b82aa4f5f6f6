package matcher

import (
	"testing"

	"github.com/flashmentor-network/flashmentor/internal/domain"
)

var (
	alice = domain.ExpertProfile{ID: "alice", DisplayName: "Alice", ExpertiseTags: []string{"React", "Node"}, Available: true, ResponseScore: 95}
	bob   = domain.ExpertProfile{ID: "bob", DisplayName: "Bob", ExpertiseTags: []string{"Go", "Docker"}, Available: true, ResponseScore: 88}
	carol = domain.ExpertProfile{ID: "carol", DisplayName: "Carol", ExpertiseTags: []string{"Node", "Postgres"}, Available: true, ResponseScore: 99}
)

// ─── FirstEligible ──────────────────────────────────────────────────────────

func TestFirstEligible_PicksDirectoryOrder(t *testing.T) {
	s := NewFirstEligible()

	got, ok := s.Select("Node", []domain.ExpertProfile{alice, carol})
	if !ok {
		t.Fatal("Select() found no match")
	}
	if got.ID != "alice" {
		t.Errorf("selected %s, want alice (first in directory order)", got.ID)
	}
}

func TestFirstEligible_NoCandidates(t *testing.T) {
	s := NewFirstEligible()

	if _, ok := s.Select("Rust", nil); ok {
		t.Error("Select() with no candidates must report no match")
	}
}

// ─── Weighted ───────────────────────────────────────────────────────────────

func TestWeighted_HigherResponseScoreWins(t *testing.T) {
	s := NewWeighted(DefaultWeightedConfig())

	// Both match "Node" with identical tag strength; carol's response
	// score is higher.
	got, ok := s.Select("Node", []domain.ExpertProfile{alice, carol})
	if !ok {
		t.Fatal("Select() found no match")
	}
	if got.ID != "carol" {
		t.Errorf("selected %s, want carol", got.ID)
	}
}

func TestWeighted_TagStrengthCanBeatResponseScore(t *testing.T) {
	s := NewWeighted(DefaultWeightedConfig())

	generalist := domain.ExpertProfile{ID: "generalist", ExpertiseTags: []string{"Go"}, Available: true, ResponseScore: 100}
	specialist := domain.ExpertProfile{ID: "specialist", ExpertiseTags: []string{"Go profiling"}, Available: true, ResponseScore: 80}

	// Topic "Go profiling": specialist's tag covers the whole topic
	// (strength 1.0 vs 0.17 for "Go"); 0.4 tag weight outweighs the
	// 20-point response gap after normalization.
	got, ok := s.Select("Go profiling", []domain.ExpertProfile{generalist, specialist})
	if !ok {
		t.Fatal("Select() found no match")
	}
	if got.ID != "specialist" {
		t.Errorf("selected %s, want specialist", got.ID)
	}
}

func TestWeighted_TieBreaksByDirectoryOrder(t *testing.T) {
	s := NewWeighted(DefaultWeightedConfig())

	twinA := domain.ExpertProfile{ID: "twin-a", ExpertiseTags: []string{"Go"}, Available: true, ResponseScore: 90}
	twinB := domain.ExpertProfile{ID: "twin-b", ExpertiseTags: []string{"Go"}, Available: true, ResponseScore: 90}

	got, ok := s.Select("Go", []domain.ExpertProfile{twinA, twinB})
	if !ok {
		t.Fatal("Select() found no match")
	}
	if got.ID != "twin-a" {
		t.Errorf("selected %s, want twin-a (earlier in directory order)", got.ID)
	}
}

func TestWeighted_NoCandidates(t *testing.T) {
	s := NewWeighted(DefaultWeightedConfig())

	if _, ok := s.Select("Rust", nil); ok {
		t.Error("Select() with no candidates must report no match")
	}
}

func TestWeighted_Rank_DescendingOrder(t *testing.T) {
	s := NewWeighted(DefaultWeightedConfig())

	ranked := s.Rank("Node", []domain.ExpertProfile{alice, bob, carol})
	if len(ranked) != 3 {
		t.Fatalf("got %d ranked candidates, want 3", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("ranking not descending at %d: %f > %f", i, ranked[i].Score, ranked[i-1].Score)
		}
	}
	if ranked[0].Expert.ID != "carol" {
		t.Errorf("top candidate = %s, want carol", ranked[0].Expert.ID)
	}
	// bob has no tag matching "Node", so his tag strength is zero.
	if ranked[2].Expert.ID != "bob" {
		t.Errorf("bottom candidate = %s, want bob", ranked[2].Expert.ID)
	}
}

func TestWeighted_ZeroScoresStillSelect(t *testing.T) {
	s := NewWeighted(DefaultWeightedConfig())

	unknown := domain.ExpertProfile{ID: "new", ExpertiseTags: []string{"Go"}, Available: true, ResponseScore: 0}
	got, ok := s.Select("Go", []domain.ExpertProfile{unknown})
	if !ok {
		t.Fatal("Select() must match even when all scores are zero")
	}
	if got.ID != "new" {
		t.Errorf("selected %s, want new", got.ID)
	}
}

// ─── Heap ───────────────────────────────────────────────────────────────────

func TestRankHeap_PopOrder(t *testing.T) {
	h := &rankHeap{}
	scores := []float64{0.2, 0.9, 0.5, 0.9, 0.1}
	for i, sc := range scores {
		h.push(rankItem{score: sc, order: i})
	}

	wantOrders := []int{1, 3, 2, 0, 4} // 0.9(order1), 0.9(order3), 0.5, 0.2, 0.1
	for _, want := range wantOrders {
		item, ok := h.pop()
		if !ok {
			t.Fatal("pop() on non-empty heap returned false")
		}
		if item.order != want {
			t.Errorf("popped order %d, want %d", item.order, want)
		}
	}
	if _, ok := h.pop(); ok {
		t.Error("pop() on empty heap must return false")
	}
}
