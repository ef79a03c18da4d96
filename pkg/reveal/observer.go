// Package reveal decides when page elements animate into view and drives the
// statistics counters.
package reveal

import (
	"sort"
	"sync"
)

// Thresholds used by the page.
const (
	RevealThreshold = 0.1
	StatsThreshold  = 0.5
)

// RevealTargets are the element classes revealed on scroll.
var RevealTargets = []string{
	"problem-card",
	"feature-card",
	"timeline-item",
	"pathway-stage",
	"partner-logo",
	"trust-item",
}

// Entry reports how much of a target is in view.
type Entry struct {
	ID    string  `json:"id"`
	Ratio float64 `json:"ratio"`
}

// Observer fires once per target when enough of it is visible and then
// stops observing it.
type Observer struct {
	mu        sync.Mutex
	threshold float64
	observed  map[string]struct{}
	onReveal  func(id string)
}

// NewObserver returns an Observer that calls onReveal, if set, for every
// revealed target.
func NewObserver(threshold float64, onReveal func(id string)) *Observer {
	return &Observer{
		threshold: threshold,
		observed:  make(map[string]struct{}),
		onReveal:  onReveal,
	}
}

// Observe starts watching ids.
func (o *Observer) Observe(ids ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, id := range ids {
		o.observed[id] = struct{}{}
	}
}

// Unobserve stops watching id.
func (o *Observer) Unobserve(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.observed, id)
}

// Observing returns the watched ids in sorted order.
func (o *Observer) Observing() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.observed))
	for id := range o.observed {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Update processes intersection entries and returns the ids revealed by this
// batch, in entry order. Each id is revealed at most once.
func (o *Observer) Update(entries ...Entry) []string {
	o.mu.Lock()
	var revealed []string
	for _, entry := range entries {
		if _, ok := o.observed[entry.ID]; !ok {
			continue
		}
		if entry.Ratio <= 0 || entry.Ratio < o.threshold {
			continue
		}
		delete(o.observed, entry.ID)
		revealed = append(revealed, entry.ID)
	}
	o.mu.Unlock()

	if o.onReveal != nil {
		for _, id := range revealed {
			o.onReveal(id)
		}
	}
	return revealed
}
