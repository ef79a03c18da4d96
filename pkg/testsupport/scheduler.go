package testsupport

import (
	"sync"
	"time"

	"github.com/goliatone/go-cybertalent/internal/clock"
)

// Scheduler is a manual clock.Scheduler. Callbacks only run from Advance, in
// due order, on the calling goroutine.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

var _ clock.Scheduler = (*Scheduler)(nil)

// NewScheduler returns a Scheduler positioned at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

type fakeTimer struct {
	owner *Scheduler
	at    time.Duration
	seq   int
	fn    func()
}

func (t *fakeTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	for i, pending := range t.owner.timers {
		if pending == t {
			t.owner.timers = append(t.owner.timers[:i], t.owner.timers[i+1:]...)
			return true
		}
	}
	return false
}

// AfterFunc registers fn to run once Advance moves past d.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) clock.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &fakeTimer{owner: s, at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d, running every callback that falls
// due, including callbacks scheduled by earlier callbacks.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		idx := -1
		for i, t := range s.timers {
			if t.at > target {
				continue
			}
			if idx == -1 || t.at < s.timers[idx].at || (t.at == s.timers[idx].at && t.seq < s.timers[idx].seq) {
				idx = i
			}
		}
		if idx == -1 {
			s.now = target
			s.mu.Unlock()
			return
		}
		next := s.timers[idx]
		s.timers = append(s.timers[:idx], s.timers[idx+1:]...)
		s.now = next.at
		s.mu.Unlock()

		next.fn()
	}
}

// Pending reports how many callbacks are waiting.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
