// Package modal manages the apply dialog. Each open gets a fresh wizard
// controller which is discarded on close, so no draft outlives the dialog.
package modal

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-cybertalent/internal/clock"
	"github.com/goliatone/go-cybertalent/pkg/wizard"
)

// DefaultCloseDelay is how long the dialog stays open after a successful
// submission.
const DefaultCloseDelay = 2 * time.Second

// KeyEscape closes the dialog.
const KeyEscape = "Escape"

// ErrClosed is returned when an event is dispatched while the dialog is
// closed.
var ErrClosed = errors.New("modal: dialog is closed")

// Option customises a Modal.
type Option func(*Modal)

// WithFactory overrides how controllers are created on open.
func WithFactory(factory func() *wizard.Controller) Option {
	return func(m *Modal) {
		m.factory = factory
	}
}

// WithScheduler overrides the timer source for the delayed close.
func WithScheduler(s clock.Scheduler) Option {
	return func(m *Modal) {
		m.scheduler = s
	}
}

// WithCloseDelay overrides DefaultCloseDelay.
func WithCloseDelay(d time.Duration) Option {
	return func(m *Modal) {
		if d >= 0 {
			m.closeDelay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Modal) {
		m.logger = logger
	}
}

// Modal is the apply dialog state. It is safe for concurrent use.
type Modal struct {
	mu         sync.Mutex
	controller *wizard.Controller
	pending    clock.Timer

	factory    func() *wizard.Controller
	scheduler  clock.Scheduler
	closeDelay time.Duration
	logger     *zap.Logger
}

// New constructs a closed Modal.
func New(options ...Option) *Modal {
	m := &Modal{closeDelay: DefaultCloseDelay}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.factory == nil {
		logger := m.logger
		m.factory = func() *wizard.Controller {
			return wizard.New(wizard.WithLogger(logger))
		}
	}
	if m.scheduler == nil {
		m.scheduler = clock.System()
	}
	return m
}

// Open shows the dialog and returns its controller. Opening an open dialog
// returns the existing controller.
func (m *Modal) Open() *wizard.Controller {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.controller == nil {
		m.controller = m.factory()
		m.logger.Debug("apply modal opened")
	}
	return m.controller
}

// Close hides the dialog and discards its controller.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.close()
}

// IsOpen reports whether the dialog is showing.
func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.controller != nil
}

// BodyLocked reports whether page scrolling is disabled, which is exactly
// while the dialog is open.
func (m *Modal) BodyLocked() bool {
	return m.IsOpen()
}

// Controller returns the controller of the open dialog.
func (m *Modal) Controller() (*wizard.Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.controller, m.controller != nil
}

// HandleKey closes the dialog on Escape and reports whether it did.
func (m *Modal) HandleKey(key string) bool {
	if key != KeyEscape {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.controller == nil {
		return false
	}
	m.close()
	return true
}

// Dispatch forwards event to the open controller. A successful submission
// schedules the dialog to close after the close delay.
func (m *Modal) Dispatch(ctx context.Context, event wizard.Event) (wizard.Outcome, error) {
	controller, ok := m.Controller()
	if !ok {
		return wizard.Outcome{}, ErrClosed
	}

	out, err := controller.Dispatch(ctx, event)
	if err != nil || out.Submission == nil {
		return out, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.controller != controller {
		return out, nil
	}
	if m.pending != nil {
		m.pending.Stop()
	}
	m.pending = m.scheduler.AfterFunc(m.closeDelay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.controller == controller {
			m.close()
		}
	})
	return out, nil
}

func (m *Modal) close() {
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
	if m.controller != nil {
		m.logger.Debug("apply modal closed")
	}
	m.controller = nil
}
