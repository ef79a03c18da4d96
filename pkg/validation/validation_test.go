package validation_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cybertalent/pkg/draft"
	"github.com/goliatone/go-cybertalent/pkg/validation"
)

func validDraft() draft.ApplicationDraft {
	return draft.ApplicationDraft{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		ExperienceLevel: draft.ExperienceSomeIT,
		Motivation:      strings.Repeat("I want to defend networks. ", 3),
		StartTimeframe:  draft.StartASAP,
		FundingStatus:   draft.FundingSelf,
		Consent:         true,
		Declaration:     true,
	}
}

func TestValidateStep_FirstFailureWins(t *testing.T) {
	cases := []struct {
		name  string
		step  int
		draft func(d *draft.ApplicationDraft)
		code  string
	}{
		{
			name: "name before email",
			step: 0,
			draft: func(d *draft.ApplicationDraft) {
				d.FullName = "   "
				d.Email = ""
			},
			code: validation.CodeFullNameRequired,
		},
		{
			name:  "missing email",
			step:  0,
			draft: func(d *draft.ApplicationDraft) { d.Email = "" },
			code:  validation.CodeEmailRequired,
		},
		{
			name:  "malformed email",
			step:  0,
			draft: func(d *draft.ApplicationDraft) { d.Email = "ada@example" },
			code:  validation.CodeEmailInvalid,
		},
		{
			name: "experience before motivation",
			step: 1,
			draft: func(d *draft.ApplicationDraft) {
				d.ExperienceLevel = ""
				d.Motivation = "short"
				d.StartTimeframe = ""
			},
			code: validation.CodeExperienceRequired,
		},
		{
			name: "motivation padded with spaces",
			step: 1,
			draft: func(d *draft.ApplicationDraft) {
				d.Motivation = "   " + strings.Repeat("x", 49) + "          "
			},
			code: validation.CodeMotivationTooShort,
		},
		{
			name:  "start timeframe",
			step:  1,
			draft: func(d *draft.ApplicationDraft) { d.StartTimeframe = "" },
			code:  validation.CodeStartRequired,
		},
		{
			name:  "specific date without a date",
			step:  1,
			draft: func(d *draft.ApplicationDraft) { d.StartTimeframe = draft.StartSpecificDate },
			code:  validation.CodeStartDateRequired,
		},
		{
			name: "funding before file",
			step: 2,
			draft: func(d *draft.ApplicationDraft) {
				d.FundingStatus = ""
				d.SponsorshipFile = &draft.Attachment{Name: "setup.exe"}
			},
			code: validation.CodeFundingRequired,
		},
		{
			name:  "employer sponsorship needs details",
			step:  2,
			draft: func(d *draft.ApplicationDraft) { d.FundingStatus = draft.FundingEmployerSponsored },
			code:  validation.CodeSponsorshipRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.draft(&d)

			got := validation.ValidateStep(tc.step, d)
			want := validation.Result{
				Field:   fieldFor(t, tc.step, tc.code),
				Code:    tc.code,
				Message: validation.Messages[tc.code],
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateStep_ExactlyFiftyCharactersPasses(t *testing.T) {
	d := validDraft()
	d.Motivation = "  " + strings.Repeat("é", validation.MinMotivationLength) + "  "
	if res := validation.ValidateStep(1, d); !res.Valid {
		t.Fatalf("expected valid, got %+v", res)
	}
}

func TestSponsorshipDetailsRequiredOnlyForSponsoredFunding(t *testing.T) {
	cases := map[draft.FundingStatus]bool{
		draft.FundingSelf:              false,
		draft.FundingNotConfirmed:      false,
		draft.FundingEmployerSponsored: true,
		draft.FundingOtherSponsored:    true,
	}
	for status, required := range cases {
		d := validDraft()
		d.FundingStatus = status
		d.SponsorshipDetails = ""

		res := validation.ValidateStep(2, d)
		if required && res.Code != validation.CodeSponsorshipRequired {
			t.Fatalf("%s: expected sponsorship details to be required, got %+v", status, res)
		}
		if !required && !res.Valid {
			t.Fatalf("%s: expected empty details to pass, got %+v", status, res)
		}
	}
}

func TestAttachmentExtension(t *testing.T) {
	cases := map[string]bool{
		"resume.PDF":  true,
		"resume.docx": true,
		"resume.exe":  false,
		"resume":      false,
	}
	for name, ok := range cases {
		d := validDraft()
		d.SponsorshipFile = &draft.Attachment{Name: name}

		res := validation.ValidateStep(2, d)
		if ok && !res.Valid {
			t.Fatalf("%s: expected pass, got %+v", name, res)
		}
		if !ok && res.Code != validation.CodeSponsorshipFileType {
			t.Fatalf("%s: expected file type failure, got %+v", name, res)
		}
	}
}

func TestValidateSubmission(t *testing.T) {
	d := validDraft()
	if step, res := validation.ValidateSubmission(d); step != -1 || !res.Valid {
		t.Fatalf("expected valid submission, got step %d %+v", step, res)
	}

	d.Consent = false
	d.Declaration = false
	step, res := validation.ValidateSubmission(d)
	if step != validation.StepCount()-1 || res.Code != validation.CodeConsentRequired {
		t.Fatalf("expected consent failure on review step, got step %d %+v", step, res)
	}

	d.Consent = true
	if _, res := validation.ValidateSubmission(d); res.Code != validation.CodeDeclarationRequired {
		t.Fatalf("expected declaration failure, got %+v", res)
	}

	d = validDraft()
	d.Motivation = ""
	d.Consent = false
	step, res = validation.ValidateSubmission(d)
	if step != 1 || res.Code != validation.CodeMotivationTooShort {
		t.Fatalf("expected step 1 motivation failure before acknowledgements, got step %d %+v", step, res)
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"ada@example.com", "a.b+c@sub.example.org", " ada@example.com "}
	invalid := []string{"", "ada", "ada@", "ada@example", "ada @example.com", "@example.com"}
	for _, v := range valid {
		if !validation.ValidEmail(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}
	for _, v := range invalid {
		if validation.ValidEmail(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}

func fieldFor(t *testing.T, step int, code string) string {
	t.Helper()
	for _, rule := range validation.StepRules(step) {
		if rule.Code == code {
			return rule.Field
		}
	}
	t.Fatalf("no rule %s on step %d", code, step)
	return ""
}
