package domain

import (
	"testing"
)

// ─── ExpertProfile Tests ────────────────────────────────────────────────────

func TestExpertProfile_MatchesTopic(t *testing.T) {
	alice := ExpertProfile{
		ID:            "alice",
		DisplayName:   "Alice",
		ExpertiseTags: []string{"React", "Node"},
		Available:     true,
		ResponseScore: 95,
	}

	tests := []struct {
		name  string
		topic string
		want  bool
	}{
		{
			name:  "exact tag",
			topic: "Node",
			want:  true,
		},
		{
			name:  "tag inside a sentence",
			topic: "help me with a Node stream bug",
			want:  true,
		},
		{
			name:  "case-insensitive",
			topic: "NODE cluster setup",
			want:  true,
		},
		{
			name:  "no tag mentioned",
			topic: "Rust lifetimes",
			want:  false,
		},
		{
			name:  "empty topic",
			topic: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alice.MatchesTopic(tt.topic); got != tt.want {
				t.Errorf("MatchesTopic(%q) = %v, want %v", tt.topic, got, tt.want)
			}
		})
	}
}

func TestExpertProfile_BestTagMatch(t *testing.T) {
	bob := ExpertProfile{
		ID:            "bob",
		ExpertiseTags: []string{"Go", "Docker", "Docker Compose"},
	}

	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{
			name:  "single match",
			topic: "deploying with Docker",
			want:  "Docker",
		},
		{
			name:  "longest tag wins",
			topic: "docker compose networking",
			want:  "Docker Compose",
		},
		{
			name:  "short tag matches inside word boundaries",
			topic: "Going over goroutines",
			want:  "Go",
		},
		{
			name:  "no match",
			topic: "Kubernetes ingress",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bob.BestTagMatch(tt.topic); got != tt.want {
				t.Errorf("BestTagMatch(%q) = %q, want %q", tt.topic, got, tt.want)
			}
		})
	}
}

func TestExpertProfile_EmptyTagIgnored(t *testing.T) {
	e := ExpertProfile{ExpertiseTags: []string{""}}
	if e.MatchesTopic("anything") {
		t.Error("empty tag must never match")
	}
}
