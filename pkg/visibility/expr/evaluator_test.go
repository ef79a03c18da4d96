package expr

import (
	"testing"

	"github.com/goliatone/go-cybertalent/pkg/visibility"
)

func TestEvaluatorComparisons(t *testing.T) {
	t.Parallel()

	eval := New()
	ctx := visibility.Context{Values: map[string]any{
		"fundingStatus":  "employer-sponsored",
		"startTimeframe": "asap",
		"consent":        false,
		"affordability":  []any{"travel", "equipment"},
	}}

	cases := []struct {
		rule string
		want bool
	}{
		{`fundingStatus == "employer-sponsored"`, true},
		{`fundingStatus != "employer-sponsored"`, false},
		{`fundingStatus in ["employer-sponsored", "other-sponsored"]`, true},
		{`startTimeframe in ["specific-date"]`, false},
		{`startTimeframe == specific-date`, false},
		{`consent`, false},
		{`!consent`, true},
		{`consent == false`, true},
		{`affordability == "travel"`, true},
		{`affordability in ["no-concerns", "prefer-not-to-say"]`, false},
		{`missing == null`, true},
		{`fundingStatus != null && (consent || startTimeframe == "asap")`, true},
		{`consent && fundingStatus == "employer-sponsored"`, false},
		{``, true},
	}

	for _, tc := range cases {
		got, err := eval.Eval("field", tc.rule, ctx)
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", tc.rule, err)
		}
		if got != tc.want {
			t.Fatalf("Eval(%q): want %v, got %v", tc.rule, tc.want, got)
		}
	}
}

func TestEvaluatorExtras(t *testing.T) {
	t.Parallel()

	ok, err := New().Eval("field", `extras.preview == true`, visibility.Context{
		Extras: map[string]any{"preview": true},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected extras lookup to match")
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	bad := []string{
		`fundingStatus ==`,
		`(consent`,
		`fundingStatus in "a"`,
		`fundingStatus in ["a" "b"]`,
		`== "a"`,
		`consent consent`,
		`fundingStatus == "unterminated`,
	}
	for _, rule := range bad {
		if _, err := Parse(rule); err == nil {
			t.Fatalf("Parse(%q): expected error", rule)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	rules := visibility.Rules{
		"sponsorshipDetails": `fundingStatus in ["employer-sponsored", "other-sponsored"]`,
		"startDateSpecific":  `startTimeframe == "specific-date"`,
	}

	got, err := visibility.Resolve(New(), rules, visibility.Context{Values: map[string]any{
		"fundingStatus":  "self-funded",
		"startTimeframe": "specific-date",
	}})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got["sponsorshipDetails"] {
		t.Fatalf("sponsorship details should be hidden for self funding")
	}
	if !got["startDateSpecific"] {
		t.Fatalf("start date should be visible for a specific date")
	}
}
