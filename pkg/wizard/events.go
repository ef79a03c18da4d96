package wizard

import (
	"errors"
	"net/url"

	"github.com/goliatone/go-cybertalent/pkg/draft"
	"github.com/goliatone/go-cybertalent/pkg/review"
	"github.com/goliatone/go-cybertalent/pkg/validation"
)

// EventKind enumerates the inputs the controller accepts.
type EventKind string

const (
	EventStepNext    EventKind = "step-next"
	EventStepBack    EventKind = "step-back"
	EventFieldChange EventKind = "field-change"
	EventSubmit      EventKind = "submit"
)

// ErrUnknownEvent is returned by Dispatch for an unrecognised event kind.
var ErrUnknownEvent = errors.New("wizard: unknown event")

// Event is a single input to Controller.Dispatch.
//
// Field, Value and Checked describe a field change. Checked is only consulted
// for affordability, where it toggles the option named by Value; without it
// Value replaces the selection as a comma separated list.
//
// Values carries a posted form and may accompany any event. Known fields
// present in Values are applied before the event runs; checkbox style fields of
// the current step that are absent are cleared, matching browser form
// semantics.
type Event struct {
	Kind       EventKind         `json:"event"`
	Field      string            `json:"field,omitempty"`
	Value      string            `json:"value,omitempty"`
	Checked    *bool             `json:"checked,omitempty"`
	Values     url.Values        `json:"values,omitempty"`
	Attachment *draft.Attachment `json:"attachment,omitempty"`
}

// Next builds a step-next event.
func Next() Event { return Event{Kind: EventStepNext} }

// Back builds a step-back event.
func Back() Event { return Event{Kind: EventStepBack} }

// Submit builds a submit event.
func Submit() Event { return Event{Kind: EventSubmit} }

// Change builds a field-change event.
func Change(field, value string) Event {
	return Event{Kind: EventFieldChange, Field: field, Value: value}
}

// Toggle builds an affordability toggle event.
func Toggle(option draft.Affordability, checked bool) Event {
	return Event{Kind: EventFieldChange, Field: draft.FieldAffordability, Value: string(option), Checked: &checked}
}

// Outcome is the result of one dispatched event.
type Outcome struct {
	View       View              `json:"view"`
	Result     validation.Result `json:"result"`
	Summary    *review.Summary   `json:"summary,omitempty"`
	Submission *Submission       `json:"submission,omitempty"`
}
