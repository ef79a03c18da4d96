package site

import (
	"crypto/subtle"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-cybertalent/pkg/chatbot"
	"github.com/goliatone/go-cybertalent/pkg/contact"
	"github.com/goliatone/go-cybertalent/pkg/konami"
	"github.com/goliatone/go-cybertalent/pkg/modal"
	"github.com/goliatone/go-cybertalent/pkg/nav"
	"github.com/goliatone/go-cybertalent/pkg/notify"
	"github.com/goliatone/go-cybertalent/pkg/validation"
)

const (
	// SessionCookie names the visitor cookie.
	SessionCookie = "ct_session"
	// CSRFHeader carries the token on JSON requests.
	CSRFHeader = "X-CSRF-Token"
	// DefaultSessionTTL is how long an idle visitor is kept.
	DefaultSessionTTL = 30 * time.Minute
	// maxTranscript caps the chat exchanges kept per visitor.
	maxTranscript = 20
)

// Session is one visitor's page state. Components guard themselves; the
// mutex covers the plain fields.
type Session struct {
	ID   string
	CSRF string

	Modal     *modal.Modal
	Notices   *notify.Center
	Announcer *nav.Announcer
	Konami    konami.Detector
	Menu      nav.Menu

	mu             sync.Mutex
	lastSeen       time.Time
	scrolled       bool
	active         string
	chatOpen       bool
	transcript     []chatbot.Exchange
	contactValues  contact.Message
	contactFailure validation.Result
	contactNotice  string
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// validToken compares token with the session token in constant time.
func (s *Session) validToken(token string) bool {
	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(s.CSRF)) == 1
}

func (s *Session) setScroll(scrolled bool, active string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrolled = scrolled
	if active != "" {
		s.active = active
	}
}

func (s *Session) scroll() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrolled, s.active
}

func (s *Session) addExchange(ex chatbot.Exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatOpen = true
	s.transcript = append(s.transcript, ex)
	if extra := len(s.transcript) - maxTranscript; extra > 0 {
		s.transcript = append(s.transcript[:0], s.transcript[extra:]...)
	}
}

func (s *Session) chat() (bool, []chatbot.Exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]chatbot.Exchange, len(s.transcript))
	copy(out, s.transcript)
	return s.chatOpen, out
}

func (s *Session) setContact(values contact.Message, failure validation.Result, notice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contactValues = values
	s.contactFailure = failure
	s.contactNotice = notice
}

// takeContact returns the last contact outcome and clears it so it shows once.
func (s *Session) takeContact() (contact.Message, validation.Result, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, failure, notice := s.contactValues, s.contactFailure, s.contactNotice
	s.contactValues, s.contactFailure, s.contactNotice = contact.Message{}, validation.Result{}, ""
	return values, failure, notice
}

// Store keeps sessions in memory. Nothing is persisted.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	factory  func(id string) *Session
	onChange func(n int)
}

// NewStore returns a Store whose sessions are built by factory.
func NewStore(ttl time.Duration, now func() time.Time, factory func(id string) *Session) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      now,
		factory:  factory,
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Lookup returns the session named by the request cookie.
func (s *Store) Lookup(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	s.mu.Lock()
	sess, ok := s.sessions[cookie.Value]
	s.mu.Unlock()
	if ok {
		sess.touch(s.now())
	}
	return sess, ok
}

// Load returns the visitor's session, creating one and setting the cookie
// when the request carries none.
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *Session {
	if sess, ok := s.Lookup(r); ok {
		return sess
	}

	sess := s.factory(uuid.NewString())
	sess.touch(s.now())

	s.mu.Lock()
	s.sweep()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()
	s.changed(n)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	return sess
}

// Sweep drops sessions idle for longer than the TTL.
func (s *Store) Sweep() {
	s.mu.Lock()
	s.sweep()
	n := len(s.sessions)
	s.mu.Unlock()
	s.changed(n)
}

func (s *Store) sweep() {
	now := s.now()
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.ttl {
			sess.Modal.Close()
			sess.Notices.Dismiss()
			delete(s.sessions, id)
		}
	}
}

func (s *Store) changed(n int) {
	if s.onChange != nil {
		s.onChange(n)
	}
}
