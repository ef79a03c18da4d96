package render

import (
	"math"

	"golang.org/x/text/language"

	"github.com/goliatone/go-cybertalent/pkg/a11y"
	"github.com/goliatone/go-cybertalent/pkg/chatbot"
	"github.com/goliatone/go-cybertalent/pkg/contact"
	"github.com/goliatone/go-cybertalent/pkg/content"
	"github.com/goliatone/go-cybertalent/pkg/draft"
	"github.com/goliatone/go-cybertalent/pkg/notify"
	"github.com/goliatone/go-cybertalent/pkg/reveal"
	"github.com/goliatone/go-cybertalent/pkg/review"
	"github.com/goliatone/go-cybertalent/pkg/validation"
	"github.com/goliatone/go-cybertalent/pkg/wizard"
)

// Page is everything a renderer needs to draw the landing page for one
// visitor. It is plain data: the template engine only sees JSON names, so
// anything a template needs is precomputed here.
type Page struct {
	Locale       string            `json:"locale"`
	Content      content.Landing   `json:"content"`
	SkipLink     a11y.SkipLink     `json:"skipLink"`
	Nav          NavView           `json:"nav"`
	Stats        []StatView        `json:"stats"`
	Modal        ModalView         `json:"modal"`
	Notification *NotificationView `json:"notification,omitempty"`
	Contact      ContactView       `json:"contact"`
	Chat         ChatView          `json:"chat"`
	Hidden       []HiddenField     `json:"hidden,omitempty"`
}

// NavView is the header navigation.
type NavView struct {
	MenuOpen bool       `json:"menuOpen"`
	Scrolled bool       `json:"scrolled"`
	Active   string     `json:"active,omitempty"`
	Live     string     `json:"live,omitempty"`
	Links    []LinkView `json:"links"`
}

// LinkView is one navigation entry.
type LinkView struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// NewNav builds the navigation for links with active highlighted.
func NewNav(links []content.Link, active string, menuOpen, scrolled bool) NavView {
	out := NavView{MenuOpen: menuOpen, Scrolled: scrolled, Active: active}
	for _, l := range links {
		out.Links = append(out.Links, LinkView{
			ID:     l.ID,
			Label:  l.Label,
			Href:   l.Href(),
			Active: l.ID == active,
		})
	}
	return out
}

// StatView is one animated counter. Value is the authored text shown before
// any animation; Target and Final drive the count up.
type StatView struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Target int    `json:"target"`
	Final  string `json:"final"`
}

// NewStats prepares stats for locale. Stats without digits are not animated
// and keep Target at zero.
func NewStats(stats []content.Stat, locale language.Tag) []StatView {
	out := make([]StatView, 0, len(stats))
	for _, s := range stats {
		view := StatView{Label: s.Label, Value: s.Value, Final: s.Value}
		if target, ok := reveal.ParseTarget(s.Value); ok {
			view.Target = target
			view.Final = reveal.FormatStat(target, locale)
		}
		out = append(out, view)
	}
	return out
}

// OptionView is a choice in a select, radio group or checkbox group.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FormOptions are the choice lists of the application form with the
// current selection marked.
type FormOptions struct {
	Experience    []OptionView `json:"experience"`
	Start         []OptionView `json:"start"`
	Funding       []OptionView `json:"funding"`
	Affordability []OptionView `json:"affordability"`
}

// NewFormOptions marks the options selected in d.
func NewFormOptions(d draft.ApplicationDraft) FormOptions {
	single := func(options []draft.Option, current string) []OptionView {
		out := make([]OptionView, 0, len(options))
		for _, o := range options {
			out = append(out, OptionView{Value: o.Value, Label: o.Label, Selected: o.Value == current})
		}
		return out
	}
	afford := make([]OptionView, 0, len(draft.AffordabilityOptions))
	for _, o := range draft.AffordabilityOptions {
		afford = append(afford, OptionView{
			Value:    o.Value,
			Label:    o.Label,
			Selected: d.HasAffordability(draft.Affordability(o.Value)),
		})
	}
	return FormOptions{
		Experience:    single(draft.ExperienceOptions, string(d.ExperienceLevel)),
		Start:         single(draft.StartOptions, string(d.StartTimeframe)),
		Funding:       single(draft.FundingOptions, string(d.FundingStatus)),
		Affordability: afford,
	}
}

// ModalView is the application modal and the wizard inside it.
type ModalView struct {
	Open    bool                   `json:"open"`
	Wizard  wizard.View            `json:"wizard"`
	Percent int                    `json:"percent"`
	Draft   draft.ApplicationDraft `json:"draft"`
	Summary *review.Summary        `json:"summary,omitempty"`
	Counter a11y.Counter           `json:"counter"`
	Options FormOptions            `json:"options"`
	Errors  map[string]string      `json:"errors,omitempty"`
}

// NewModal snapshots a wizard controller. A nil controller yields a closed
// modal positioned on the first step.
func NewModal(open bool, c *wizard.Controller) ModalView {
	if c == nil {
		c = wizard.New()
		open = false
	}
	view := c.View()
	d := c.Draft()
	out := ModalView{
		Open:    open,
		Wizard:  view,
		Percent: int(math.Round(view.Progress * 100)),
		Draft:   d,
		Counter: a11y.MotivationCounter(d.Motivation),
		Options: NewFormOptions(d),
		Errors:  FieldErrors(validation.Result{Field: view.Field, Code: view.Code, Message: view.Message}),
	}
	if summary, ok := c.Summary(); ok {
		out.Summary = &summary
	}
	return out
}

// NotificationView is the notification slot.
type NotificationView struct {
	ID      uint64 `json:"id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Class   string `json:"class"`
	Color   string `json:"color"`
	Leaving bool   `json:"leaving"`
}

// NewNotification converts the current notification, if any.
func NewNotification(n notify.Notification, ok bool) *NotificationView {
	if !ok {
		return nil
	}
	return &NotificationView{
		ID:      n.ID,
		Kind:    string(n.Kind),
		Message: n.Message,
		Class:   n.Class(),
		Color:   n.Color,
		Leaving: n.Phase == notify.PhaseLeaving,
	}
}

// ContactView is the contact form with the last submission outcome.
type ContactView struct {
	Values  contact.Message   `json:"values"`
	Failure validation.Result `json:"failure"`
	Errors  map[string]string `json:"errors,omitempty"`
	Notice  string            `json:"notice,omitempty"`
}

// NewContact builds the contact form view. Values are cleared after a
// successful submission.
func NewContact(values contact.Message, failure validation.Result, notice string) ContactView {
	if notice != "" {
		values = contact.Message{}
	}
	return ContactView{
		Values:  values,
		Failure: failure,
		Errors:  FieldErrors(failure),
		Notice:  notice,
	}
}

// ChatView is the chat widget.
type ChatView struct {
	Open      bool               `json:"open"`
	Exchanges []chatbot.Exchange `json:"exchanges,omitempty"`
}
