package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-cybertalent/pkg/draft"
)

// MinMotivationLength is the minimum number of characters, after trimming,
// the motivation statement must contain.
const MinMotivationLength = 50

// Rule codes double as translation keys.
const (
	CodeFullNameRequired      = "fullName.required"
	CodeEmailRequired         = "email.required"
	CodeEmailInvalid          = "email.invalid"
	CodeExperienceRequired    = "experienceLevel.required"
	CodeMotivationTooShort    = "motivation.minLength"
	CodeStartRequired         = "startTimeframe.required"
	CodeStartDateRequired     = "startDateSpecific.required"
	CodeFundingRequired       = "fundingStatus.required"
	CodeSponsorshipRequired   = "sponsorshipDetails.required"
	CodeSponsorshipFileType   = "sponsorshipFile.type"
	CodeConsentRequired       = "consent.required"
	CodeDeclarationRequired   = "declaration.required"
	CodeContactFieldsRequired = "contact.required"
)

// Default English messages keyed by code.
var Messages = map[string]string{
	CodeFullNameRequired:      "Please enter your full name",
	CodeEmailRequired:         "Please enter your email address",
	CodeEmailInvalid:          "Please enter a valid email address",
	CodeExperienceRequired:    "Please select your experience level",
	CodeMotivationTooShort:    "Please tell us a little more about your motivation (at least 50 characters)",
	CodeStartRequired:         "Please select when you would like to start",
	CodeStartDateRequired:     "Please choose your preferred start date",
	CodeFundingRequired:       "Please select your funding status",
	CodeSponsorshipRequired:   "Please tell us about your sponsorship arrangement",
	CodeSponsorshipFileType:   "Sponsorship documents must be PDF or DOCX files",
	CodeConsentRequired:       "Please consent to us processing your application",
	CodeDeclarationRequired:   "Please confirm the declaration before submitting",
	CodeContactFieldsRequired: "Please fill in all required fields",
}

// AllowedAttachmentExtensions lists the accepted supporting document types.
var AllowedAttachmentExtensions = []string{"pdf", "docx"}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether value has a local@domain.tld shape. It does not
// attempt RFC 5322 conformance.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(strings.TrimSpace(value))
}

// AllowedAttachment reports whether the attachment extension is accepted.
// A nil attachment is allowed since the document is optional.
func AllowedAttachment(file *draft.Attachment) bool {
	if file == nil {
		return true
	}
	ext := file.Extension()
	for _, allowed := range AllowedAttachmentExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Rule is one ordered check of a wizard step.
type Rule struct {
	Field string
	Code  string
	Check func(draft.ApplicationDraft) bool
}

// Message returns the default message for the rule.
func (r Rule) Message() string {
	return Messages[r.Code]
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

var stepRules = [][]Rule{
	{
		{Field: draft.FieldFullName, Code: CodeFullNameRequired, Check: func(d draft.ApplicationDraft) bool {
			return !blank(d.FullName)
		}},
		{Field: draft.FieldEmail, Code: CodeEmailRequired, Check: func(d draft.ApplicationDraft) bool {
			return !blank(d.Email)
		}},
		{Field: draft.FieldEmail, Code: CodeEmailInvalid, Check: func(d draft.ApplicationDraft) bool {
			return ValidEmail(d.Email)
		}},
	},
	{
		{Field: draft.FieldExperienceLevel, Code: CodeExperienceRequired, Check: func(d draft.ApplicationDraft) bool {
			return d.ExperienceLevel != ""
		}},
		{Field: draft.FieldMotivation, Code: CodeMotivationTooShort, Check: func(d draft.ApplicationDraft) bool {
			return utf8.RuneCountInString(strings.TrimSpace(d.Motivation)) >= MinMotivationLength
		}},
		{Field: draft.FieldStartTimeframe, Code: CodeStartRequired, Check: func(d draft.ApplicationDraft) bool {
			return d.StartTimeframe != ""
		}},
		{Field: draft.FieldStartDateSpecific, Code: CodeStartDateRequired, Check: func(d draft.ApplicationDraft) bool {
			return d.StartTimeframe != draft.StartSpecificDate || !blank(d.StartDateSpecific)
		}},
	},
	{
		{Field: draft.FieldFundingStatus, Code: CodeFundingRequired, Check: func(d draft.ApplicationDraft) bool {
			return d.FundingStatus != ""
		}},
		{Field: draft.FieldSponsorshipDetails, Code: CodeSponsorshipRequired, Check: func(d draft.ApplicationDraft) bool {
			return !d.FundingStatus.RequiresSponsorship() || !blank(d.SponsorshipDetails)
		}},
		{Field: draft.FieldSponsorshipFile, Code: CodeSponsorshipFileType, Check: func(d draft.ApplicationDraft) bool {
			return AllowedAttachment(d.SponsorshipFile)
		}},
	},
	// review step
	nil,
}

var acknowledgementRules = []Rule{
	{Field: draft.FieldConsent, Code: CodeConsentRequired, Check: func(d draft.ApplicationDraft) bool {
		return d.Consent
	}},
	{Field: draft.FieldDeclaration, Code: CodeDeclarationRequired, Check: func(d draft.ApplicationDraft) bool {
		return d.Declaration
	}},
}

// StepCount is the number of wizard steps including the review step.
func StepCount() int {
	return len(stepRules)
}

// StepRules returns the ordered rules for step. Steps outside the wizard and
// the review step have no rules.
func StepRules(step int) []Rule {
	if step < 0 || step >= len(stepRules) {
		return nil
	}
	return append([]Rule(nil), stepRules[step]...)
}

// AcknowledgementRules returns the consent and declaration checks applied at
// submission.
func AcknowledgementRules() []Rule {
	return append([]Rule(nil), acknowledgementRules...)
}
