// Package site serves the landing page over HTTP. Every visitor gets an
// in-memory session holding the apply dialog, notifications, navigation
// state and chat transcript. Browsers without script post plain forms; the
// page script talks to the JSON endpoints described by the bundled OpenAPI
// contract.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/goliatone/go-cybertalent/internal/clock"
	"github.com/goliatone/go-cybertalent/pkg/chatbot"
	"github.com/goliatone/go-cybertalent/pkg/contact"
	"github.com/goliatone/go-cybertalent/pkg/content"
	"github.com/goliatone/go-cybertalent/pkg/modal"
	"github.com/goliatone/go-cybertalent/pkg/nav"
	"github.com/goliatone/go-cybertalent/pkg/notify"
	"github.com/goliatone/go-cybertalent/pkg/openapi"
	"github.com/goliatone/go-cybertalent/pkg/render"
	"github.com/goliatone/go-cybertalent/pkg/renderers/vanilla"
	"github.com/goliatone/go-cybertalent/pkg/wizard"
)

// DefaultMaxUpload bounds multipart bodies of the apply form.
const DefaultMaxUpload = 10 << 20

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithContent replaces the bundled landing copy.
func WithContent(landing content.Landing) Option {
	return func(s *Server) {
		s.landing = &landing
	}
}

// NewRenderers registers the HTML page renderer followed by the JSON one, so
// HTML answers requests that accept anything.
func NewRenderers(options ...vanilla.Option) (*render.Registry, error) {
	html, err := vanilla.New(options...)
	if err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(render.JSONRenderer{})
	return registry, nil
}

// WithRenderers replaces the renderer registry. The first registered renderer
// answers requests that accept anything.
func WithRenderers(registry *render.Registry) Option {
	return func(s *Server) {
		s.renderers = registry
	}
}

// WithCatalog replaces the bundled translations.
func WithCatalog(c *render.Catalog) Option {
	return func(s *Server) {
		s.catalog = c
	}
}

// WithTheme passes branding to the renderers and the notification palette.
func WithTheme(cfg *theme.RendererConfig, palette map[notify.Kind]string) Option {
	return func(s *Server) {
		s.theme = cfg
		s.palette = palette
	}
}

// WithChatbot replaces the default bot.
func WithChatbot(bot *chatbot.Bot) Option {
	return func(s *Server) {
		s.bot = bot
	}
}

// WithContactForm replaces the default contact form.
func WithContactForm(form *contact.Form) Option {
	return func(s *Server) {
		s.contact = form
	}
}

// WithSubmitter receives accepted applications.
func WithSubmitter(submitter wizard.Submitter) Option {
	return func(s *Server) {
		s.submitter = submitter
	}
}

// WithContract replaces the bundled OpenAPI contract.
func WithContract(c *openapi.Contract) Option {
	return func(s *Server) {
		s.contract = c
	}
}

// WithMetrics shares a metrics set.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithScheduler overrides the timer source of every session component.
func WithScheduler(scheduler clock.Scheduler) Option {
	return func(s *Server) {
		s.scheduler = scheduler
	}
}

// WithNotifyTTL sets how long notifications stay visible.
func WithNotifyTTL(d time.Duration) Option {
	return func(s *Server) {
		s.notifyTTL = d
	}
}

// WithModalCloseDelay sets how long the dialog stays open after submitting.
func WithModalCloseDelay(d time.Duration) Option {
	return func(s *Server) {
		s.closeDelay = d
	}
}

// WithMaxUpload caps the size of posted form bodies, attachments included.
func WithMaxUpload(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// WithSessionTTL sets how long idle sessions are kept.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Server) {
		s.sessionTTL = d
	}
}

// WithClock overrides the time source used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithAssets replaces the static asset tree served under /assets/.
func WithAssets(assets fs.FS) Option {
	return func(s *Server) {
		s.assets = assets
	}
}

// Server is the HTTP front of the landing page.
type Server struct {
	logger     *zap.Logger
	landing    *content.Landing
	renderers  *render.Registry
	catalog    *render.Catalog
	theme      *theme.RendererConfig
	palette    map[notify.Kind]string
	bot        *chatbot.Bot
	contact    *contact.Form
	submitter  wizard.Submitter
	contract   *openapi.Contract
	metrics    *Metrics
	scheduler  clock.Scheduler
	notifyTTL  time.Duration
	closeDelay time.Duration
	sessionTTL time.Duration
	now        func() time.Time
	assets     fs.FS
	maxUpload  int64

	store   *Store
	handler http.Handler
}

// New constructs a Server. Missing collaborators fall back to the bundled
// defaults.
func New(ctx context.Context, options ...Option) (*Server, error) {
	s := &Server{closeDelay: modal.DefaultCloseDelay, notifyTTL: notify.DefaultTTL, maxUpload: DefaultMaxUpload}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.landing == nil {
		landing := content.Default()
		s.landing = &landing
	}
	if s.renderers == nil {
		registry, err := NewRenderers()
		if err != nil {
			return nil, err
		}
		s.renderers = registry
	}
	if s.catalog == nil {
		c, err := render.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("site: %w", err)
		}
		s.catalog = c
	}
	if s.contract == nil {
		c, err := openapi.Default(ctx)
		if err != nil {
			return nil, fmt.Errorf("site: %w", err)
		}
		s.contract = c
	}
	if s.bot == nil {
		s.bot = chatbot.New()
	}
	if s.contact == nil {
		s.contact = contact.New(contact.WithLogger(s.logger))
	}
	if s.submitter == nil {
		s.submitter = wizard.LogSubmitter(s.logger)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.scheduler == nil {
		s.scheduler = clock.System()
	}
	if s.assets == nil {
		s.assets = vanilla.AssetsFS()
	}

	s.store = NewStore(s.sessionTTL, s.now, s.newSession)
	s.store.onChange = func(n int) { s.metrics.activeSession.Set(float64(n)) }
	s.handler = s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Sessions exposes the session store.
func (s *Server) Sessions() *Store {
	return s.store
}

// Metrics exposes the collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) newSession(id string) *Session {
	logger := s.logger.With(zap.String("session", id))
	return &Session{
		ID:   id,
		CSRF: newToken(),
		Modal: modal.New(
			modal.WithFactory(func() *wizard.Controller {
				return wizard.New(wizard.WithLogger(logger), wizard.WithSubmitter(s.submitter))
			}),
			modal.WithScheduler(s.scheduler),
			modal.WithCloseDelay(s.closeDelay),
			modal.WithLogger(logger),
		),
		Notices: notify.New(
			notify.WithScheduler(s.scheduler),
			notify.WithTTL(s.notifyTTL),
			notify.WithPalette(s.palette),
		),
		Announcer: nav.NewAnnouncer(s.scheduler),
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, s.metrics.instrument(pattern, h))
	}

	handle("GET /{$}", http.HandlerFunc(s.handlePage))
	handle("POST /apply/open", s.form(s.handleApplyOpen))
	handle("POST /apply/close", s.form(s.handleApplyClose))
	handle("POST /apply", s.form(s.handleApply))
	handle("POST /contact", s.form(s.handleContact))
	handle("POST /menu", s.form(s.handleMenu))
	handle("POST /chat", s.form(s.handleChat))

	handle("POST /api/wizard/events", s.api(s.handleWizardEvent))
	handle("POST /api/chat", s.api(s.handleChatAPI))
	handle("POST /api/contact", s.api(s.handleContactAPI))
	handle("POST /api/keys", s.api(s.handleKeys))
	handle("POST /api/scroll", s.api(s.handleScroll))

	handle("GET /healthz", http.HandlerFunc(s.handleHealth))
	handle("GET /openapi.yaml", http.HandlerFunc(s.handleContract))
	handle("GET /metrics", s.metrics.Handler())
	handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(s.assets)))
	return mux
}

// locale picks the page language from ?lang= or Accept-Language.
func (s *Server) locale(r *http.Request) language.Tag {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return s.catalog.Match(lang)
	}
	return s.catalog.Match(r.Header.Get("Accept-Language"))
}

func (s *Server) renderOptions(tag language.Tag) render.RenderOptions {
	return render.RenderOptions{Locale: tag.String(), Translator: s.catalog, Theme: s.theme}
}

// ListenAndServe serves handler on addr until ctx is done, then shuts down
// within grace.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, grace time.Duration, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("site: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	logger.Info("shutting down", zap.Duration("grace", grace))
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("site: shutdown: %w", err)
	}
	return nil
}
