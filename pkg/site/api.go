package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/goliatone/go-cybertalent/pkg/a11y"
	"github.com/goliatone/go-cybertalent/pkg/chatbot"
	"github.com/goliatone/go-cybertalent/pkg/contact"
	"github.com/goliatone/go-cybertalent/pkg/konami"
	"github.com/goliatone/go-cybertalent/pkg/modal"
	"github.com/goliatone/go-cybertalent/pkg/nav"
	"github.com/goliatone/go-cybertalent/pkg/openapi"
	"github.com/goliatone/go-cybertalent/pkg/render"
	"github.com/goliatone/go-cybertalent/pkg/review"
	"github.com/goliatone/go-cybertalent/pkg/validation"
	"github.com/goliatone/go-cybertalent/pkg/wizard"
)

const maxJSONBody = 64 << 10

// Wizard events that only exist on the JSON surface.
const (
	eventOpen  = "open"
	eventClose = "close"
)

type apiHandler func(w http.ResponseWriter, r *http.Request, sess *Session) (any, error)

// apiError is an error with the status it should be reported with.
type apiError struct {
	status int
	msg    string
}

func (e *apiError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &apiError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

// api validates the request against the contract, checks the session token
// and encodes the handler result as JSON.
func (s *Server) api(next apiHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		if err := s.contract.ValidateRequest(r.Context(), r); err != nil {
			writeError(w, http.StatusBadRequest, openapi.Reason(err))
			return
		}
		sess, ok := s.store.Lookup(r)
		if !ok {
			writeError(w, http.StatusForbidden, "session expired")
			return
		}
		if !sess.validToken(r.Header.Get(CSRFHeader)) {
			writeError(w, http.StatusForbidden, "invalid csrf token")
			return
		}

		out, err := next(w, r, sess)
		if err != nil {
			var apiErr *apiError
			switch {
			case errors.As(err, &apiErr):
				writeError(w, apiErr.status, apiErr.msg)
			case errors.Is(err, modal.ErrClosed):
				writeError(w, http.StatusConflict, err.Error())
			case isClientError(err):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				s.logger.Error("api request failed", zap.String("path", r.URL.Path), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, out)
	})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid json: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type wizardRequest struct {
	Event   string     `json:"event"`
	Field   string     `json:"field"`
	Value   string     `json:"value"`
	Checked *bool      `json:"checked"`
	Values  url.Values `json:"values"`
}

type wizardResponse struct {
	Open       bool               `json:"open"`
	View       wizard.View        `json:"view"`
	Percent    int                `json:"percent"`
	Result     validation.Result  `json:"result"`
	Errors     map[string]string  `json:"errors,omitempty"`
	Counter    a11y.Counter       `json:"counter"`
	Summary    *review.Summary    `json:"summary,omitempty"`
	Submission *wizard.Submission `json:"submission,omitempty"`
}

func (s *Server) handleWizardEvent(_ http.ResponseWriter, r *http.Request, sess *Session) (any, error) {
	var req wizardRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}

	var out wizard.Outcome
	switch req.Event {
	case eventOpen:
		sess.Modal.Open()
	case eventClose:
		sess.Modal.Close()
	default:
		var err error
		out, err = s.dispatch(r, sess, wizard.Event{
			Kind:    wizard.EventKind(req.Event),
			Field:   req.Field,
			Value:   req.Value,
			Checked: req.Checked,
			Values:  req.Values,
		})
		if err != nil {
			return nil, err
		}
	}

	controller, open := sess.Modal.Controller()
	page := render.Page{Modal: render.NewModal(open, controller)}
	render.LocalizePage(&page, s.renderOptions(s.locale(r)))

	m := page.Modal
	res := validation.Pass()
	if m.Wizard.Code != "" {
		res = validation.Result{Field: m.Wizard.Field, Code: m.Wizard.Code, Message: m.Wizard.Message}
	}
	return wizardResponse{
		Open:       open,
		View:       m.Wizard,
		Percent:    m.Percent,
		Result:     res,
		Errors:     m.Errors,
		Counter:    m.Counter,
		Summary:    m.Summary,
		Submission: out.Submission,
	}, nil
}

func (s *Server) handleChatAPI(_ http.ResponseWriter, r *http.Request, sess *Session) (any, error) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	ex, err := s.chat(r, sess, req.Message)
	if errors.Is(err, chatbot.ErrEmptyMessage) {
		return nil, badRequest("message is empty")
	}
	return ex, err
}

type contactResponse struct {
	Result    validation.Result `json:"result"`
	Reference string            `json:"reference,omitempty"`
	Notice    string            `json:"notice,omitempty"`
}

func (s *Server) handleContactAPI(_ http.ResponseWriter, r *http.Request, sess *Session) (any, error) {
	var msg contact.Message
	if err := decode(r, &msg); err != nil {
		return nil, err
	}
	receipt, ok := s.submitContact(r, sess, msg)
	locale := s.locale(r).String()
	if !ok {
		_, failure, _ := sess.takeContact()
		if failure.Code != "" {
			failure.Message = render.Text(s.catalog, locale, render.ValidationKey(failure.Code), failure.Message)
		}
		return contactResponse{Result: failure}, nil
	}
	sess.takeContact()
	return contactResponse{
		Result:    validation.Pass(),
		Reference: receipt.Reference,
		Notice:    render.Text(s.catalog, locale, render.KeyContactSubmitted, receipt.Notice),
	}, nil
}

type keyResponse struct {
	Konami     bool   `json:"konami"`
	CloseModal bool   `json:"closeModal"`
	Message    string `json:"message,omitempty"`
}

func (s *Server) handleKeys(_ http.ResponseWriter, r *http.Request, sess *Session) (any, error) {
	var req struct {
		Key string `json:"key"`
	}
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	out := keyResponse{CloseModal: sess.Modal.HandleKey(req.Key)}
	if sess.Konami.Press(req.Key) {
		s.metrics.konami.Inc()
		out.Konami = true
		out.Message = konami.Message
	}
	return out, nil
}

type scrollResponse struct {
	Scrolled     bool   `json:"scrolled"`
	Active       string `json:"active,omitempty"`
	Announcement string `json:"announcement,omitempty"`
}

func (s *Server) handleScroll(_ http.ResponseWriter, r *http.Request, sess *Session) (any, error) {
	var req struct {
		Y        float64       `json:"y"`
		Sections []nav.Section `json:"sections"`
	}
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	out := scrollResponse{Scrolled: nav.Scrolled(req.Y)}
	out.Active, _ = nav.ActiveSection(req.Sections, req.Y)
	if text, ok := sess.Announcer.Update(req.Sections, req.Y); ok {
		out.Announcement = text
	}
	sess.setScroll(out.Scrolled, out.Active)
	return out, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleContract(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(s.contract.Raw())
}
