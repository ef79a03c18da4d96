package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-cybertalent/pkg/contact"
	"github.com/goliatone/go-cybertalent/pkg/review"
	"github.com/goliatone/go-cybertalent/pkg/validation"
	"github.com/goliatone/go-cybertalent/pkg/wizard"
)

var (
	// ErrMissingTranslator is passed to the missing handler when no translator
	// is configured.
	ErrMissingTranslator = errors.New("render: translator not configured")
	// ErrMissingTranslation reports a key with no message for the locale.
	ErrMissingTranslation = errors.New("render: translation missing")
)

// Translator resolves a message key for locale, formatting args into it.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show when key cannot be
// translated. args carries a map with a "default" entry holding the English
// text when one is known.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if m, ok := arg.(map[string]any); ok {
			if def, ok := m["default"].(string); ok && strings.TrimSpace(def) != "" {
				return def
			}
		}
	}
	return key
}

// Translation keys for chrome strings outside the validation codes.
const (
	KeySkipLink          = "a11y.skip"
	KeyCounter           = "a11y.counter"
	KeyCounterMinimum    = "a11y.counter.minimum"
	KeyWizardSubmitted   = "wizard.submitted"
	KeyContactSubmitted  = "contact.submitted"
	KeyReviewNotProvided = "review.notProvided"
)

// StepKey is the translation key of a wizard step title.
func StepKey(step int) string { return "wizard.step." + strconv.Itoa(step) }

// ValidationKey is the translation key of a validation code.
func ValidationKey(code string) string { return "validation." + code }

// FieldKey is the translation key of a form field label.
func FieldKey(field string) string { return "field." + field }

// OptionKey is the translation key of a choice label.
func OptionKey(value string) string { return "option." + value }

// LocalizePage mutates page in place, translating the chrome strings the
// application owns. Landing copy is authored per locale and left alone.
//
// This is best-effort: failures are routed through opts.OnMissing, which by
// default keeps the English text already on the page.
func LocalizePage(page *Page, opts RenderOptions) {
	if page == nil {
		return
	}
	if opts.Locale != "" {
		page.Locale = opts.Locale
	}
	l := localizer{locale: page.Locale, t: opts.Translator, onMissing: opts.OnMissing}
	if l.onMissing == nil {
		l.onMissing = missingTranslationDefault
	}

	page.SkipLink.Text = l.tr(KeySkipLink, page.SkipLink.Text)
	if page.Notification != nil {
		switch page.Notification.Message {
		case wizard.SuccessMessage:
			page.Notification.Message = l.tr(KeyWizardSubmitted, page.Notification.Message)
		case contact.SuccessMessage:
			page.Notification.Message = l.tr(KeyContactSubmitted, page.Notification.Message)
		default:
			for code, msg := range validation.Messages {
				if msg == page.Notification.Message {
					page.Notification.Message = l.tr(ValidationKey(code), msg)
					break
				}
			}
		}
	}
	l.modal(&page.Modal)
	l.contact(&page.Contact)
}

type localizer struct {
	locale    string
	t         Translator
	onMissing MissingTranslationHandler
}

func (l localizer) modal(m *ModalView) {
	w := &m.Wizard
	w.Title = l.tr(StepKey(w.Step), w.Title)
	for i := range w.Dots {
		w.Dots[i].Title = l.tr(StepKey(i), w.Dots[i].Title)
	}
	if w.Code != "" {
		w.Message = l.tr(ValidationKey(w.Code), w.Message)
	}
	if w.Notice == wizard.SuccessMessage {
		w.Notice = l.tr(KeyWizardSubmitted, w.Notice)
	}
	m.Errors = FieldErrors(validation.Result{Field: w.Field, Code: w.Code, Message: w.Message})

	if m.Counter.Satisfied {
		m.Counter.Text = l.tr(KeyCounter, m.Counter.Text, m.Counter.Length)
	} else {
		m.Counter.Text = l.tr(KeyCounterMinimum, m.Counter.Text, m.Counter.Length, validation.MinMotivationLength)
	}

	for _, list := range [][]OptionView{m.Options.Experience, m.Options.Start, m.Options.Funding, m.Options.Affordability} {
		for i := range list {
			list[i].Label = l.tr(OptionKey(list[i].Value), list[i].Label)
		}
	}

	if m.Summary == nil {
		return
	}
	for i := range m.Summary.Sections {
		section := &m.Summary.Sections[i]
		section.Title = l.tr(StepKey(section.Step), section.Title)
		for j := range section.Items {
			item := &section.Items[j]
			item.Label = l.tr(FieldKey(item.Field), item.Label)
			if item.Value == review.NotProvided {
				item.Value = l.tr(KeyReviewNotProvided, item.Value)
			}
		}
	}
}

func (l localizer) contact(c *ContactView) {
	if c.Failure.Code != "" {
		c.Failure.Message = l.tr(ValidationKey(c.Failure.Code), c.Failure.Message)
		c.Errors = FieldErrors(c.Failure)
	}
	if c.Notice == contact.SuccessMessage {
		c.Notice = l.tr(KeyContactSubmitted, c.Notice)
	}
}

func (l localizer) tr(key, fallback string, args ...any) string {
	return translate(l.locale, key, fallback, l.t, l.onMissing, args...)
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
		}
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return key
	}

	result, err := t.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if err == nil {
		err = fmt.Errorf("%w: %s", ErrMissingTranslation, key)
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Text translates a single key outside a page render, keeping fallback when
// t is nil or has no message for key.
func Text(t Translator, locale, key, fallback string, args ...any) string {
	return translate(locale, key, fallback, t, missingTranslationDefault, args...)
}
