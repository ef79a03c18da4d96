package review_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cybertalent/pkg/draft"
	"github.com/goliatone/go-cybertalent/pkg/review"
)

func TestPopulate_SponsoredDraft(t *testing.T) {
	d := draft.ApplicationDraft{
		FullName:           "Ada Lovelace",
		Email:              "ada@example.com",
		ExperienceLevel:    draft.ExperienceITProfessional,
		Motivation:         "  I want to move into incident response.  ",
		StartTimeframe:     draft.StartSpecificDate,
		StartDateSpecific:  "2026-03-09",
		FundingStatus:      draft.FundingEmployerSponsored,
		SponsorshipDetails: "Paid by my team",
		SponsorshipFile:    &draft.Attachment{Name: "letter.pdf"},
		Affordability:      []draft.Affordability{draft.AffordabilityTravel, draft.AffordabilityEquipment},
	}
	before := d.Clone()

	got := review.Populate(d)
	want := review.Summary{Sections: []review.Section{
		{Step: 0, Title: "About you", Items: []review.Item{
			{Field: "fullName", Label: "Full name", Value: "Ada Lovelace"},
			{Field: "email", Label: "Email", Value: "ada@example.com"},
			{Field: "phone", Label: "Phone", Value: review.NotProvided},
		}},
		{Step: 1, Title: "Motivation & timing", Items: []review.Item{
			{Field: "experienceLevel", Label: "Experience", Value: "Working in IT"},
			{Field: "motivation", Label: "Motivation", Value: "I want to move into incident response."},
			{Field: "startTimeframe", Label: "Preferred start", Value: "9 March 2026"},
		}},
		{Step: 2, Title: "Funding", Items: []review.Item{
			{Field: "fundingStatus", Label: "Funding", Value: "Employer sponsored"},
			{Field: "sponsorshipDetails", Label: "Sponsorship details", Value: "Paid by my team"},
			{Field: "sponsorshipFile", Label: "Supporting document", Value: "letter.pdf"},
			{Field: "affordability", Label: "Affordability", Value: "Travel, Laptop or equipment"},
		}},
	}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, d); diff != "" {
		t.Fatalf("draft mutated (-want +got):\n%s", diff)
	}
}

func TestPopulate_SelfFundedOmitsSponsorship(t *testing.T) {
	got := review.Populate(draft.ApplicationDraft{
		FundingStatus:      draft.FundingSelf,
		SponsorshipDetails: "left over from an earlier answer",
	})

	if _, ok := got.Lookup(draft.FieldSponsorshipDetails); ok {
		t.Fatalf("sponsorship details should not be listed for self funding")
	}
	if v, _ := got.Lookup(draft.FieldAffordability); v != review.NotProvided {
		t.Fatalf("expected %q for empty affordability, got %q", review.NotProvided, v)
	}
	if v, _ := got.Lookup(draft.FieldStartTimeframe); v != review.NotProvided {
		t.Fatalf("expected %q for empty start, got %q", review.NotProvided, v)
	}
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2026-01-05":  "5 January 2026",
		" 2026-12-31": "31 December 2026",
		"next spring": "next spring",
	}
	for in, want := range cases {
		if got := review.FormatDate(in); got != want {
			t.Fatalf("FormatDate(%q): want %q, got %q", in, want, got)
		}
	}
}
