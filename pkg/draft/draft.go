package draft

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
)

// Field names as posted by the application form. They double as the keys of
// Values() so visibility rules can reference them directly.
const (
	FieldFullName           = "fullName"
	FieldEmail              = "email"
	FieldPhone              = "phone"
	FieldExperienceLevel    = "experienceLevel"
	FieldMotivation         = "motivation"
	FieldStartTimeframe     = "startTimeframe"
	FieldStartDateSpecific  = "startDateSpecific"
	FieldFundingStatus      = "fundingStatus"
	FieldSponsorshipDetails = "sponsorshipDetails"
	FieldSponsorshipFile    = "sponsorshipFile"
	FieldAffordability      = "affordability"
	FieldConsent            = "consent"
	FieldDeclaration        = "declaration"
)

var (
	// ErrUnknownField is returned when a change targets a field the draft does
	// not define.
	ErrUnknownField = errors.New("draft: unknown field")
	// ErrUnknownOption is returned when a select value is not one of the
	// published options.
	ErrUnknownOption = errors.New("draft: unknown option")
)

// Attachment describes an uploaded supporting document. Only metadata is
// kept; the content is never read.
type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size,omitempty"`
}

// Extension returns the lower-cased extension without the leading dot.
func (a *Attachment) Extension() string {
	if a == nil {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(path.Ext(strings.TrimSpace(a.Name)), "."))
}

// ApplicationDraft is the in-progress application collected by the wizard.
type ApplicationDraft struct {
	FullName           string          `json:"fullName"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone,omitempty"`
	ExperienceLevel    ExperienceLevel `json:"experienceLevel"`
	Motivation         string          `json:"motivation"`
	StartTimeframe     StartTimeframe  `json:"startTimeframe"`
	StartDateSpecific  string          `json:"startDateSpecific,omitempty"`
	FundingStatus      FundingStatus   `json:"fundingStatus"`
	SponsorshipDetails string          `json:"sponsorshipDetails,omitempty"`
	SponsorshipFile    *Attachment     `json:"sponsorshipFile,omitempty"`
	Affordability      []Affordability `json:"affordability,omitempty"`
	Consent            bool            `json:"consent"`
	Declaration        bool            `json:"declaration"`
}

// Clone returns a deep copy so callers can hand the draft to collaborators
// without sharing slices.
func (d ApplicationDraft) Clone() ApplicationDraft {
	out := d
	if d.SponsorshipFile != nil {
		file := *d.SponsorshipFile
		out.SponsorshipFile = &file
	}
	if d.Affordability != nil {
		out.Affordability = append([]Affordability(nil), d.Affordability...)
	}
	return out
}

// IsZero reports whether nothing has been entered yet.
func (d ApplicationDraft) IsZero() bool {
	return d.FullName == "" && d.Email == "" && d.Phone == "" &&
		d.ExperienceLevel == "" && d.Motivation == "" && d.StartTimeframe == "" &&
		d.StartDateSpecific == "" && d.FundingStatus == "" && d.SponsorshipDetails == "" &&
		d.SponsorshipFile == nil && len(d.Affordability) == 0 && !d.Consent && !d.Declaration
}

// Values projects the draft into a map keyed by form field name.
func (d ApplicationDraft) Values() map[string]any {
	affordability := make([]any, 0, len(d.Affordability))
	for _, a := range d.Affordability {
		affordability = append(affordability, string(a))
	}
	var file any
	if d.SponsorshipFile != nil {
		file = d.SponsorshipFile.Name
	}
	return map[string]any{
		FieldFullName:           d.FullName,
		FieldEmail:              d.Email,
		FieldPhone:              d.Phone,
		FieldExperienceLevel:    string(d.ExperienceLevel),
		FieldMotivation:         d.Motivation,
		FieldStartTimeframe:     string(d.StartTimeframe),
		FieldStartDateSpecific:  d.StartDateSpecific,
		FieldFundingStatus:      string(d.FundingStatus),
		FieldSponsorshipDetails: d.SponsorshipDetails,
		FieldSponsorshipFile:    file,
		FieldAffordability:      affordability,
		FieldConsent:            d.Consent,
		FieldDeclaration:        d.Declaration,
	}
}

// Set applies a single text or select field change. Select fields accept the
// empty string to clear the selection. Boolean fields accept anything
// strconv.ParseBool understands plus "on" as sent by browsers.
func (d *ApplicationDraft) Set(field, value string) error {
	switch field {
	case FieldFullName:
		d.FullName = value
	case FieldEmail:
		d.Email = strings.TrimSpace(value)
	case FieldPhone:
		d.Phone = value
	case FieldMotivation:
		d.Motivation = value
	case FieldStartDateSpecific:
		d.StartDateSpecific = strings.TrimSpace(value)
	case FieldSponsorshipDetails:
		d.SponsorshipDetails = value
	case FieldExperienceLevel:
		if value != "" && !known(ExperienceOptions, value) {
			return fmt.Errorf("%w: %s=%q", ErrUnknownOption, field, value)
		}
		d.ExperienceLevel = ExperienceLevel(value)
	case FieldStartTimeframe:
		if value != "" && !known(StartOptions, value) {
			return fmt.Errorf("%w: %s=%q", ErrUnknownOption, field, value)
		}
		d.StartTimeframe = StartTimeframe(value)
	case FieldFundingStatus:
		if value != "" && !known(FundingOptions, value) {
			return fmt.Errorf("%w: %s=%q", ErrUnknownOption, field, value)
		}
		d.FundingStatus = FundingStatus(value)
	case FieldSponsorshipFile:
		if strings.TrimSpace(value) == "" {
			d.SponsorshipFile = nil
		} else {
			d.SponsorshipFile = &Attachment{Name: strings.TrimSpace(value)}
		}
	case FieldConsent:
		d.Consent = parseCheckbox(value)
	case FieldDeclaration:
		d.Declaration = parseCheckbox(value)
	case FieldAffordability:
		return d.SetAffordability(splitList(value))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// SetAffordability replaces the affordability selection wholesale, applying
// the exclusivity rule in submission order so the last exclusive answer
// wins.
func (d *ApplicationDraft) SetAffordability(values []string) error {
	d.Affordability = nil
	for _, raw := range values {
		if err := d.ToggleAffordability(Affordability(raw), true); err != nil {
			return err
		}
	}
	return nil
}

// ToggleAffordability checks or unchecks a single affordability answer.
// Checking an exclusive answer leaves it as the only selection; checking any
// other answer clears both exclusive ones.
func (d *ApplicationDraft) ToggleAffordability(option Affordability, checked bool) error {
	option = Affordability(strings.TrimSpace(string(option)))
	if !known(AffordabilityOptions, string(option)) {
		return fmt.Errorf("%w: %s=%q", ErrUnknownOption, FieldAffordability, option)
	}

	if !checked {
		d.Affordability = without(d.Affordability, func(a Affordability) bool { return a == option })
		return nil
	}

	if option.Exclusive() {
		d.Affordability = []Affordability{option}
		return nil
	}

	next := without(d.Affordability, func(a Affordability) bool { return a.Exclusive() || a == option })
	d.Affordability = append(next, option)
	return nil
}

// HasAffordability reports whether option is currently selected.
func (d ApplicationDraft) HasAffordability(option Affordability) bool {
	for _, a := range d.Affordability {
		if a == option {
			return true
		}
	}
	return false
}

// Fields lists every draft field in form order.
var Fields = []string{
	FieldFullName, FieldEmail, FieldPhone, FieldExperienceLevel, FieldMotivation,
	FieldStartTimeframe, FieldStartDateSpecific, FieldFundingStatus,
	FieldSponsorshipDetails, FieldSponsorshipFile, FieldAffordability,
	FieldConsent, FieldDeclaration,
}

// FromForm decodes a posted application form. Unknown keys are ignored so the
// form can carry navigation fields alongside the draft.
func FromForm(values url.Values) (ApplicationDraft, error) {
	var d ApplicationDraft
	if err := d.Apply(values); err != nil {
		return ApplicationDraft{}, err
	}
	return d, nil
}

// Apply sets every known field present in values, leaving the others
// untouched. Affordability takes all posted values rather than the first.
func (d *ApplicationDraft) Apply(values url.Values) error {
	for _, field := range Fields {
		if !values.Has(field) {
			continue
		}
		if field == FieldAffordability {
			if err := d.SetAffordability(splitAll(values[field])); err != nil {
				return err
			}
			continue
		}
		if err := d.Set(field, values.Get(field)); err != nil {
			return err
		}
	}
	return nil
}

func splitAll(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, splitList(v)...)
	}
	return out
}

func parseCheckbox(value string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "on" || trimmed == "yes" {
		return true
	}
	b, err := strconv.ParseBool(trimmed)
	return err == nil && b
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func without(in []Affordability, drop func(Affordability) bool) []Affordability {
	var out []Affordability
	for _, a := range in {
		if !drop(a) {
			out = append(out, a)
		}
	}
	return out
}
