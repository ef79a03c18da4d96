package wizard

import (
	"github.com/goliatone/go-cybertalent/pkg/draft"
	"github.com/goliatone/go-cybertalent/pkg/visibility"
)

// Step describes one page of the application wizard.
type Step struct {
	Index  int      `json:"index"`
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

var steps = []Step{
	{Index: 0, Title: "About you", Fields: []string{
		draft.FieldFullName, draft.FieldEmail, draft.FieldPhone,
	}},
	{Index: 1, Title: "Motivation & timing", Fields: []string{
		draft.FieldExperienceLevel, draft.FieldMotivation, draft.FieldStartTimeframe, draft.FieldStartDateSpecific,
	}},
	{Index: 2, Title: "Funding", Fields: []string{
		draft.FieldFundingStatus, draft.FieldSponsorshipDetails, draft.FieldSponsorshipFile, draft.FieldAffordability,
	}},
	{Index: 3, Title: "Review & submit", Fields: []string{
		draft.FieldConsent, draft.FieldDeclaration,
	}},
}

// Steps returns the wizard steps in order.
func Steps() []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Fields = append([]string(nil), s.Fields...)
		out[i] = s
	}
	return out
}

// LastStep is the index of the review step.
func LastStep() int {
	return len(steps) - 1
}

const sponsoredRule = `fundingStatus in ["employer-sponsored", "other-sponsored"]`

// DefaultVisibilityRules reveal the conditional fields of steps 1 and 2.
func DefaultVisibilityRules() visibility.Rules {
	return visibility.Rules{
		draft.FieldStartDateSpecific:  `startTimeframe == "specific-date"`,
		draft.FieldSponsorshipDetails: sponsoredRule,
		draft.FieldSponsorshipFile:    sponsoredRule,
	}
}

// posted fields that browsers omit when unchecked or empty.
func omittedWhenEmpty(field string) bool {
	switch field {
	case draft.FieldAffordability, draft.FieldConsent, draft.FieldDeclaration:
		return true
	}
	return false
}
