// Package directory implements the expert registry: who exists, what
// they claim expertise in, and whether they are online right now.
//
// The directory is read-mostly. Registration order is preserved so
// that candidate lists — and therefore the first-eligible matching
// strategy — are deterministic. Directory reads never touch the
// ledger; availability toggles are last-write-wins per expert.
package directory

import (
	"sync"

	"github.com/flashmentor-network/flashmentor/internal/domain"
)

// Directory is the in-memory expert registry.
type Directory struct {
	mu      sync.RWMutex
	experts map[string]*domain.ExpertProfile
	order   []string // registration order for deterministic iteration
}

// New creates an empty directory.
func New() *Directory {
	return &Directory{experts: make(map[string]*domain.ExpertProfile)}
}

// Seed registers a batch of experts, typically from configuration.
func (d *Directory) Seed(profiles []domain.ExpertProfile) {
	for _, p := range profiles {
		d.Upsert(p)
	}
}

// Upsert registers an expert or replaces an existing profile. A
// replaced expert keeps its original position in iteration order.
func (d *Directory) Upsert(profile domain.ExpertProfile) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.experts[profile.ID]; !exists {
		d.order = append(d.order, profile.ID)
	}
	cp := profile
	cp.ExpertiseTags = append([]string(nil), profile.ExpertiseTags...)
	d.experts[profile.ID] = &cp
}

// Get returns a snapshot of the expert's profile.
func (d *Directory) Get(expertID string) (domain.ExpertProfile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.experts[expertID]
	if !ok {
		return domain.ExpertProfile{}, false
	}
	return snapshot(p), true
}

// List returns all experts in registration order.
func (d *Directory) List() []domain.ExpertProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.ExpertProfile, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, snapshot(d.experts[id]))
	}
	return out
}

// ListAvailable returns the experts that are online and whose tags
// match the topic (the topic string contains a tag, case-insensitive),
// in registration order.
func (d *Directory) ListAvailable(topic string) []domain.ExpertProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []domain.ExpertProfile
	for _, id := range d.order {
		p := d.experts[id]
		if p.Available && p.MatchesTopic(topic) {
			out = append(out, snapshot(p))
		}
	}
	return out
}

// SetAvailability flips an expert online or offline. Returns
// domain.ErrExpertNotFound for an unknown id.
func (d *Directory) SetAvailability(expertID string, available bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.experts[expertID]
	if !ok {
		return domain.ErrExpertNotFound
	}
	p.Available = available
	return nil
}

// SetResponseScore updates the expert's single quality score.
func (d *Directory) SetResponseScore(expertID string, score float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.experts[expertID]
	if !ok {
		return domain.ErrExpertNotFound
	}
	p.ResponseScore = score
	return nil
}

// snapshot copies a profile so callers cannot mutate internal state.
func snapshot(p *domain.ExpertProfile) domain.ExpertProfile {
	cp := *p
	cp.ExpertiseTags = append([]string(nil), p.ExpertiseTags...)
	return cp
}
