package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/goliatone/go-cybertalent/pkg/contact"
	"github.com/goliatone/go-cybertalent/pkg/content"
	"github.com/goliatone/go-cybertalent/pkg/draft"
	"github.com/goliatone/go-cybertalent/pkg/notify"
	"github.com/goliatone/go-cybertalent/pkg/render"
	"github.com/goliatone/go-cybertalent/pkg/validation"
)

func TestNewStats(t *testing.T) {
	stats := []content.Stat{
		{Label: "Roles", Value: "11,200+"},
		{Label: "Placed", Value: "94%"},
		{Label: "Support", Value: "24/7"},
		{Label: "Mentors", Value: "Many"},
	}

	got := render.NewStats(stats, language.German)
	want := []render.StatView{
		{Label: "Roles", Value: "11,200+", Target: 11200, Final: "11.200"},
		{Label: "Placed", Value: "94%", Target: 94, Final: "94"},
		{Label: "Support", Value: "24/7", Target: 247, Final: "247"},
		{Label: "Mentors", Value: "Many", Final: "Many"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestNewNav(t *testing.T) {
	links := []content.Link{{ID: "home", Label: "Home"}, {ID: "how-it-works", Label: "How it works"}}
	got := render.NewNav(links, "how-it-works", true, false)
	want := render.NavView{
		MenuOpen: true,
		Active:   "how-it-works",
		Links: []render.LinkView{
			{ID: "home", Label: "Home", Href: "#home"},
			{ID: "how-it-works", Label: "How it works", Href: "#how-it-works", Active: true},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("nav mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFormOptions_MarksSelection(t *testing.T) {
	d := draft.ApplicationDraft{
		ExperienceLevel: draft.ExperienceSomeIT,
		FundingStatus:   draft.FundingOtherSponsored,
		Affordability:   []draft.Affordability{draft.AffordabilityTravel, draft.AffordabilityEquipment},
	}
	opts := render.NewFormOptions(d)

	selected := func(list []render.OptionView) []string {
		var out []string
		for _, o := range list {
			if o.Selected {
				out = append(out, o.Value)
			}
		}
		return out
	}
	if diff := cmp.Diff([]string{"some-it"}, selected(opts.Experience)); diff != "" {
		t.Fatalf("experience mismatch (-want +got):\n%s", diff)
	}
	if got := selected(opts.Start); got != nil {
		t.Fatalf("expected no start selection, got %v", got)
	}
	if diff := cmp.Diff([]string{"other-sponsored"}, selected(opts.Funding)); diff != "" {
		t.Fatalf("funding mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"equipment", "travel"}, selected(opts.Affordability)); diff != "" {
		t.Fatalf("affordability mismatch (-want +got):\n%s", diff)
	}
}

func TestNewNotification(t *testing.T) {
	if render.NewNotification(notify.Notification{}, false) != nil {
		t.Fatalf("expected nil without a notification")
	}
	got := render.NewNotification(notify.Notification{
		ID: 3, Kind: notify.KindError, Message: "Oops", Phase: notify.PhaseLeaving, Color: "#EF4444",
	}, true)
	want := &render.NotificationView{
		ID: 3, Kind: "error", Message: "Oops", Color: "#EF4444", Leaving: true,
		Class: "notification notification-error notification-leaving",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("notification mismatch (-want +got):\n%s", diff)
	}
}

func TestNewContact_ClearsValuesOnSuccess(t *testing.T) {
	values := contact.Message{Name: "Ada", Email: "ada@example.com", Message: "Hi"}

	kept := render.NewContact(values, validation.Pass(), "")
	if kept.Values != values || kept.Errors != nil {
		t.Fatalf("unexpected view %+v", kept)
	}

	sent := render.NewContact(values, validation.Pass(), contact.SuccessMessage)
	if sent.Values != (contact.Message{}) {
		t.Fatalf("expected cleared values, got %+v", sent.Values)
	}
}

func TestNewModal_NilController(t *testing.T) {
	m := render.NewModal(true, nil)
	if m.Open {
		t.Fatalf("modal without controller must be closed")
	}
	if m.Wizard.Step != 0 || m.Wizard.StepCount != 4 {
		t.Fatalf("unexpected wizard view %+v", m.Wizard)
	}
	if m.Counter.Satisfied {
		t.Fatalf("empty motivation cannot satisfy the counter")
	}
}
