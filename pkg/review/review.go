// Package review builds the read-only summary shown on the last wizard step.
package review

import (
	"strings"
	"time"

	"github.com/goliatone/go-cybertalent/pkg/draft"
)

// NotProvided is shown for optional answers left empty.
const NotProvided = "Not provided"

// DateLayout is the layout used for the specific start date.
const DateLayout = "2 January 2006"

// Item is a single labelled answer.
type Item struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section groups the answers collected on one step.
type Section struct {
	Step  int    `json:"step"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Summary is the labelled projection of a draft.
type Summary struct {
	Sections []Section `json:"sections"`
}

// Lookup returns the value shown for field, if present.
func (s Summary) Lookup(field string) (string, bool) {
	for _, section := range s.Sections {
		for _, item := range section.Items {
			if item.Field == field {
				return item.Value, true
			}
		}
	}
	return "", false
}

// Populate maps d to display labels. It never mutates d.
func Populate(d draft.ApplicationDraft) Summary {
	about := Section{Step: 0, Title: "About you", Items: []Item{
		{Field: draft.FieldFullName, Label: "Full name", Value: orNotProvided(d.FullName)},
		{Field: draft.FieldEmail, Label: "Email", Value: orNotProvided(d.Email)},
		{Field: draft.FieldPhone, Label: "Phone", Value: orNotProvided(d.Phone)},
	}}

	start := draft.Label(draft.StartOptions, string(d.StartTimeframe))
	if d.StartTimeframe == draft.StartSpecificDate {
		start = FormatDate(d.StartDateSpecific)
	}
	motivation := Section{Step: 1, Title: "Motivation & timing", Items: []Item{
		{Field: draft.FieldExperienceLevel, Label: "Experience", Value: orNotProvided(draft.Label(draft.ExperienceOptions, string(d.ExperienceLevel)))},
		{Field: draft.FieldMotivation, Label: "Motivation", Value: orNotProvided(d.Motivation)},
		{Field: draft.FieldStartTimeframe, Label: "Preferred start", Value: orNotProvided(start)},
	}}

	funding := Section{Step: 2, Title: "Funding", Items: []Item{
		{Field: draft.FieldFundingStatus, Label: "Funding", Value: orNotProvided(draft.Label(draft.FundingOptions, string(d.FundingStatus)))},
	}}
	if d.FundingStatus.RequiresSponsorship() {
		file := ""
		if d.SponsorshipFile != nil {
			file = d.SponsorshipFile.Name
		}
		funding.Items = append(funding.Items,
			Item{Field: draft.FieldSponsorshipDetails, Label: "Sponsorship details", Value: orNotProvided(d.SponsorshipDetails)},
			Item{Field: draft.FieldSponsorshipFile, Label: "Supporting document", Value: orNotProvided(file)},
		)
	}
	funding.Items = append(funding.Items, Item{
		Field: draft.FieldAffordability,
		Label: "Affordability",
		Value: orNotProvided(affordabilityLabels(d.Affordability)),
	})

	return Summary{Sections: []Section{about, motivation, funding}}
}

// FormatDate renders a YYYY-MM-DD value for display. Unparseable values are
// returned trimmed.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return value
	}
	return parsed.Format(DateLayout)
}

func affordabilityLabels(selected []draft.Affordability) string {
	labels := make([]string, 0, len(selected))
	for _, a := range selected {
		labels = append(labels, draft.Label(draft.AffordabilityOptions, string(a)))
	}
	return strings.Join(labels, ", ")
}

func orNotProvided(value string) string {
	if strings.TrimSpace(value) == "" {
		return NotProvided
	}
	return strings.TrimSpace(value)
}
