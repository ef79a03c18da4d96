package nav

import (
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-cybertalent/internal/clock"
)

const (
	// AnnounceOffset is added to the scroll position when deciding which
	// section to announce.
	AnnounceOffset = 200
	// AnnouncementTTL is how long an announcement stays in the live region.
	AnnouncementTTL = time.Second
)

// Announcement returns the screen reader text for a section id.
func Announcement(id string) string {
	return "Navigated to " + strings.ReplaceAll(id, "-", " ") + " section"
}

// Announcer emits a live region message once per section change.
type Announcer struct {
	mu        sync.Mutex
	last      string
	seq       int
	live      map[int]string
	scheduler clock.Scheduler
}

// NewAnnouncer returns an Announcer. A nil scheduler uses the system clock.
func NewAnnouncer(s clock.Scheduler) *Announcer {
	if s == nil {
		s = clock.System()
	}
	return &Announcer{live: make(map[int]string), scheduler: s}
}

// Update checks the section under scrollY and returns the announcement when
// it differs from the previous one.
func (a *Announcer) Update(sections []Section, scrollY float64) (string, bool) {
	section, ok := SectionAt(sections, scrollY+AnnounceOffset)
	if !ok {
		return "", false
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if section.ID == a.last {
		return "", false
	}
	a.last = section.ID
	a.seq++
	id := a.seq
	text := Announcement(section.ID)
	a.live[id] = text
	a.scheduler.AfterFunc(AnnouncementTTL, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.live, id)
	})
	return text, true
}

// Live returns the announcements currently in the live region, oldest first.
func (a *Announcer) Live() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.live))
	for i := a.seq - len(a.live) + 1; i <= a.seq; i++ {
		if text, ok := a.live[i]; ok {
			out = append(out, text)
		}
	}
	return out
}
