package draft

// ExperienceLevel captures the applicant's self-reported background.
type ExperienceLevel string

const (
	ExperienceBeginner             ExperienceLevel = "beginner"
	ExperienceSomeIT               ExperienceLevel = "some-it"
	ExperienceITProfessional       ExperienceLevel = "it-professional"
	ExperienceSecurityProfessional ExperienceLevel = "security-professional"
)

// StartTimeframe captures when the applicant would like to begin.
type StartTimeframe string

const (
	StartASAP          StartTimeframe = "asap"
	StartWithin3Months StartTimeframe = "within-3-months"
	StartWithin6Months StartTimeframe = "within-6-months"
	StartSpecificDate  StartTimeframe = "specific-date"
)

// FundingStatus captures who pays for the programme.
type FundingStatus string

const (
	FundingSelf              FundingStatus = "self-funded"
	FundingEmployerSponsored FundingStatus = "employer-sponsored"
	FundingOtherSponsored    FundingStatus = "other-sponsored"
	FundingNotConfirmed      FundingStatus = "not-confirmed"
)

// RequiresSponsorship reports whether a third party pays, in which case the
// applicant must describe the arrangement.
func (f FundingStatus) RequiresSponsorship() bool {
	return f == FundingEmployerSponsored || f == FundingOtherSponsored
}

// Affordability is one answer of the multi-select affordability question.
type Affordability string

const (
	AffordabilityNoConcerns     Affordability = "no-concerns"
	AffordabilityPreferNotToSay Affordability = "prefer-not-to-say"
	AffordabilityCourseFees     Affordability = "course-fees"
	AffordabilityLivingCosts    Affordability = "living-costs"
	AffordabilityEquipment      Affordability = "equipment"
	AffordabilityTravel         Affordability = "travel"
	AffordabilityCaring         Affordability = "caring-responsibilities"
)

// Exclusive reports whether the option may only be selected on its own.
func (a Affordability) Exclusive() bool {
	return a == AffordabilityNoConcerns || a == AffordabilityPreferNotToSay
}

// Option pairs a stored value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ExperienceOptions lists the experience answers in display order.
var ExperienceOptions = []Option{
	{Value: string(ExperienceBeginner), Label: "Complete beginner"},
	{Value: string(ExperienceSomeIT), Label: "Some IT experience"},
	{Value: string(ExperienceITProfessional), Label: "Working in IT"},
	{Value: string(ExperienceSecurityProfessional), Label: "Already working in security"},
}

// StartOptions lists the start timeframe answers in display order.
var StartOptions = []Option{
	{Value: string(StartASAP), Label: "As soon as possible"},
	{Value: string(StartWithin3Months), Label: "Within 3 months"},
	{Value: string(StartWithin6Months), Label: "Within 6 months"},
	{Value: string(StartSpecificDate), Label: "On a specific date"},
}

// FundingOptions lists the funding answers in display order.
var FundingOptions = []Option{
	{Value: string(FundingSelf), Label: "Self funded"},
	{Value: string(FundingEmployerSponsored), Label: "Employer sponsored"},
	{Value: string(FundingOtherSponsored), Label: "Sponsored by another organisation"},
	{Value: string(FundingNotConfirmed), Label: "Not confirmed yet"},
}

// AffordabilityOptions lists the affordability answers in display order.
var AffordabilityOptions = []Option{
	{Value: string(AffordabilityNoConcerns), Label: "No concerns"},
	{Value: string(AffordabilityCourseFees), Label: "Course fees"},
	{Value: string(AffordabilityLivingCosts), Label: "Living costs while training"},
	{Value: string(AffordabilityEquipment), Label: "Laptop or equipment"},
	{Value: string(AffordabilityTravel), Label: "Travel"},
	{Value: string(AffordabilityCaring), Label: "Caring responsibilities"},
	{Value: string(AffordabilityPreferNotToSay), Label: "Prefer not to say"},
}

// Label resolves value against options, returning value unchanged when no
// option matches.
func Label(options []Option, value string) string {
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

func known(options []Option, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
