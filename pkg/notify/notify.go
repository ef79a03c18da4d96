// Package notify keeps the single toast slot of the page: showing a
// notification evicts the previous one, and each notification dismisses itself
// after a fixed time followed by a short leaving phase.
package notify

import (
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-cybertalent/internal/clock"
)

// Kind selects the notification styling.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// ParseKind maps unknown values to KindInfo.
func ParseKind(value string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindSuccess:
		return KindSuccess
	case KindError:
		return KindError
	}
	return KindInfo
}

// Phase tracks where a notification is in its lifecycle.
type Phase string

const (
	PhaseVisible Phase = "visible"
	PhaseLeaving Phase = "leaving"
)

const (
	DefaultTTL   = 5 * time.Second
	DefaultLeave = 300 * time.Millisecond
)

// DefaultPalette holds the background colour of each kind.
var DefaultPalette = map[Kind]string{
	KindSuccess: "#10B981",
	KindError:   "#EF4444",
	KindInfo:    "#0FB9C6",
}

// Notification is the content of the slot.
type Notification struct {
	ID      uint64 `json:"id"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Phase   Phase  `json:"phase"`
	Color   string `json:"color"`
}

// Class returns the CSS classes used by the page for the notification.
func (n Notification) Class() string {
	class := "notification notification-" + string(n.Kind)
	if n.Phase == PhaseLeaving {
		class += " notification-leaving"
	}
	return class
}

// Option customises a Center.
type Option func(*Center)

// WithScheduler overrides the timer source.
func WithScheduler(s clock.Scheduler) Option {
	return func(c *Center) {
		c.scheduler = s
	}
}

// WithTTL overrides how long a notification stays fully visible.
func WithTTL(d time.Duration) Option {
	return func(c *Center) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithLeave overrides the leaving phase duration.
func WithLeave(d time.Duration) Option {
	return func(c *Center) {
		if d >= 0 {
			c.leave = d
		}
	}
}

// WithPalette overrides colours per kind. Missing kinds keep the default.
func WithPalette(palette map[Kind]string) Option {
	return func(c *Center) {
		for kind, color := range palette {
			if strings.TrimSpace(color) != "" {
				c.palette[kind] = color
			}
		}
	}
}

// WithOnChange registers a hook invoked after the slot changes. It runs
// without the Center lock held.
func WithOnChange(fn func(current *Notification)) Option {
	return func(c *Center) {
		c.onChange = fn
	}
}

// Center owns the notification slot. It is safe for concurrent use.
type Center struct {
	mu        sync.Mutex
	current   *Notification
	seq       uint64
	pending   clock.Timer
	scheduler clock.Scheduler
	ttl       time.Duration
	leave     time.Duration
	palette   map[Kind]string
	onChange  func(current *Notification)
}

// New constructs a Center with a 5s lifetime and 300ms leaving phase.
func New(options ...Option) *Center {
	c := &Center{
		ttl:     DefaultTTL,
		leave:   DefaultLeave,
		palette: make(map[Kind]string, len(DefaultPalette)),
	}
	for kind, color := range DefaultPalette {
		c.palette[kind] = color
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.scheduler == nil {
		c.scheduler = clock.System()
	}
	return c
}

// Show replaces whatever is displayed with a new notification.
func (c *Center) Show(kind Kind, message string) Notification {
	c.mu.Lock()
	if c.pending != nil {
		c.pending.Stop()
	}
	c.seq++
	n := &Notification{
		ID:      c.seq,
		Kind:    kind,
		Message: message,
		Phase:   PhaseVisible,
		Color:   c.palette[kind],
	}
	c.current = n
	id := n.ID
	c.pending = c.scheduler.AfterFunc(c.ttl, func() { c.startLeaving(id) })
	snapshot := *n
	c.mu.Unlock()

	c.changed()
	return snapshot
}

// Info, Success and Error are shorthands for Show.
func (c *Center) Info(message string) Notification    { return c.Show(KindInfo, message) }
func (c *Center) Success(message string) Notification { return c.Show(KindSuccess, message) }
func (c *Center) Error(message string) Notification   { return c.Show(KindError, message) }

// Current returns the notification in the slot, if any.
func (c *Center) Current() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Notification{}, false
	}
	return *c.current, true
}

// Dismiss empties the slot immediately.
func (c *Center) Dismiss() {
	c.mu.Lock()
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	had := c.current != nil
	c.current = nil
	c.mu.Unlock()

	if had {
		c.changed()
	}
}

func (c *Center) startLeaving(id uint64) {
	c.mu.Lock()
	if c.current == nil || c.current.ID != id {
		c.mu.Unlock()
		return
	}
	c.current.Phase = PhaseLeaving
	c.pending = c.scheduler.AfterFunc(c.leave, func() { c.remove(id) })
	c.mu.Unlock()

	c.changed()
}

func (c *Center) remove(id uint64) {
	c.mu.Lock()
	if c.current == nil || c.current.ID != id {
		c.mu.Unlock()
		return
	}
	c.current = nil
	c.pending = nil
	c.mu.Unlock()

	c.changed()
}

func (c *Center) changed() {
	if c.onChange == nil {
		return
	}
	current, ok := c.Current()
	if !ok {
		c.onChange(nil)
		return
	}
	c.onChange(&current)
}
