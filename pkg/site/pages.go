package site

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/goliatone/go-cybertalent/pkg/a11y"
	"github.com/goliatone/go-cybertalent/pkg/chatbot"
	"github.com/goliatone/go-cybertalent/pkg/contact"
	"github.com/goliatone/go-cybertalent/pkg/draft"
	"github.com/goliatone/go-cybertalent/pkg/modal"
	"github.com/goliatone/go-cybertalent/pkg/render"
	"github.com/goliatone/go-cybertalent/pkg/wizard"
)

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// page snapshots the session into the renderer model.
func (s *Server) page(sess *Session, tag language.Tag) render.Page {
	controller, open := sess.Modal.Controller()
	scrolled, active := sess.scroll()
	chatOpen, transcript := sess.chat()
	values, failure, notice := sess.takeContact()

	nav := render.NewNav(s.landing.Nav, active, sess.Menu.Open(), scrolled)
	if live := sess.Announcer.Live(); len(live) > 0 {
		nav.Live = live[len(live)-1]
	}

	return render.Page{
		Locale:       tag.String(),
		Content:      *s.landing,
		SkipLink:     a11y.DefaultSkipLink,
		Nav:          nav,
		Stats:        render.NewStats(s.landing.Stats, tag),
		Modal:        render.NewModal(open, controller),
		Notification: render.NewNotification(sess.Notices.Current()),
		Contact:      render.NewContact(values, failure, notice),
		Chat:         render.ChatView{Open: chatOpen, Exchanges: transcript},
		Hidden:       []render.HiddenField{render.CSRFToken(sess.CSRF)},
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Load(w, r)
	tag := s.locale(r)

	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		http.Error(w, "not acceptable", http.StatusNotAcceptable)
		return
	}
	out, err := renderer.Render(r.Context(), s.page(sess, tag), s.renderOptions(tag))
	if err != nil {
		s.logger.Error("render page", zap.String("renderer", renderer.Name()), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Vary", "Accept, Accept-Language, Cookie")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(out)
}

type formHandler func(w http.ResponseWriter, r *http.Request, sess *Session) string

// form parses a posted form, checks its CSRF token and redirects back to the
// page fragment the handler returns.
func (s *Server) form(next formHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.store.Lookup(r)
		if !ok {
			http.Error(w, "session expired, reload the page", http.StatusForbidden)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
		var err error
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			err = r.ParseMultipartForm(s.maxUpload)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
				http.Error(w, "form too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		if !sess.validToken(r.PostFormValue(render.CSRFFieldName)) {
			http.Error(w, "invalid form token", http.StatusForbidden)
			return
		}

		target := next(w, r, sess)
		if target == "" {
			return
		}
		if lang := r.URL.Query().Get("lang"); lang != "" {
			target = "/?lang=" + lang + strings.TrimPrefix(target, "/")
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	})
}

func (s *Server) handleApplyOpen(_ http.ResponseWriter, _ *http.Request, sess *Session) string {
	sess.Modal.Open()
	sess.Menu.LinkClicked()
	return "/#apply"
}

func (s *Server) handleApplyClose(_ http.ResponseWriter, _ *http.Request, sess *Session) string {
	sess.Modal.Close()
	return "/"
}

// handleApply runs one wizard step from the script-free form. The button
// pressed arrives as action=next|back|submit.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request, sess *Session) string {
	if !sess.Modal.IsOpen() {
		sess.Modal.Open()
	}

	event := wizard.Event{Values: r.PostForm}
	switch r.PostFormValue("action") {
	case "back":
		event.Kind = wizard.EventStepBack
	case "submit":
		event.Kind = wizard.EventSubmit
	default:
		event.Kind = wizard.EventStepNext
	}
	if r.MultipartForm != nil {
		event.Values = r.MultipartForm.Value
		if files := r.MultipartForm.File[draft.FieldSponsorshipFile]; len(files) > 0 && files[0].Filename != "" {
			event.Attachment = &draft.Attachment{Name: files[0].Filename, Size: files[0].Size}
		}
	}

	if _, err := s.dispatch(r, sess, event); err != nil {
		status := http.StatusBadRequest
		if !isClientError(err) {
			status = http.StatusInternalServerError
		}
		http.Error(w, http.StatusText(status), status)
		return ""
	}
	return "/#apply"
}

func (s *Server) handleContact(_ http.ResponseWriter, r *http.Request, sess *Session) string {
	s.submitContact(r, sess, contact.FromForm(r.PostForm))
	return "/#contact"
}

func (s *Server) handleMenu(_ http.ResponseWriter, _ *http.Request, sess *Session) string {
	sess.Menu.Toggle()
	return "/"
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request, sess *Session) string {
	if _, err := s.chat(r, sess, r.PostFormValue("message")); err != nil && !errors.Is(err, chatbot.ErrEmptyMessage) {
		http.Error(w, "chat unavailable", http.StatusServiceUnavailable)
		return ""
	}
	return "/#chatWidget"
}

// dispatch forwards event to the session dialog and records the outcome.
func (s *Server) dispatch(r *http.Request, sess *Session, event wizard.Event) (wizard.Outcome, error) {
	out, err := sess.Modal.Dispatch(r.Context(), event)
	if err != nil {
		if isClientError(err) {
			s.logger.Debug("wizard event rejected", zap.String("event", string(event.Kind)), zap.Error(err))
		} else {
			s.logger.Error("wizard event failed", zap.String("event", string(event.Kind)), zap.Error(err))
		}
		return out, err
	}
	s.metrics.wizardEvent(string(event.Kind), out.Result.Valid)
	if out.Submission != nil {
		s.metrics.submitted("application")
		sess.Notices.Success(wizard.SuccessMessage)
	}
	return out, nil
}

func (s *Server) submitContact(r *http.Request, sess *Session, msg contact.Message) (contact.Receipt, bool) {
	receipt, res, err := s.contact.Submit(r.Context(), msg)
	switch {
	case err != nil:
		s.logger.Error("contact submission failed", zap.Error(err))
		sess.Notices.Error("Something went wrong, please try again")
		sess.setContact(msg, res, "")
		return contact.Receipt{}, false
	case !res.Valid:
		sess.Notices.Error(res.Message)
		sess.setContact(msg, res, "")
		return contact.Receipt{}, false
	}
	s.metrics.submitted("contact")
	sess.Notices.Success(receipt.Notice)
	sess.setContact(contact.Message{}, res, receipt.Notice)
	return receipt, true
}

func (s *Server) chat(r *http.Request, sess *Session, message string) (chatbot.Exchange, error) {
	ex, err := s.bot.Reply(r.Context(), message)
	if err != nil {
		return ex, err
	}
	s.metrics.chat(ex.Matched)
	sess.addExchange(ex)
	return ex, nil
}

func isClientError(err error) bool {
	return errors.Is(err, draft.ErrUnknownField) ||
		errors.Is(err, draft.ErrUnknownOption) ||
		errors.Is(err, wizard.ErrUnknownEvent) ||
		errors.Is(err, modal.ErrClosed)
}
