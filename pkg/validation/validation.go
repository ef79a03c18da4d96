package validation

import (
	"github.com/goliatone/go-cybertalent/pkg/draft"
)

// Result is the outcome of validating a step or a submission. Invalid results
// carry the first violated rule only.
type Result struct {
	Valid   bool   `json:"valid"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Pass returns a valid result.
func Pass() Result {
	return Result{Valid: true}
}

// Fail returns an invalid result for rule.
func Fail(rule Rule) Result {
	return Result{
		Field:   rule.Field,
		Code:    rule.Code,
		Message: rule.Message(),
	}
}

// Evaluate runs rules in order and stops at the first failure.
func Evaluate(rules []Rule, d draft.ApplicationDraft) Result {
	for _, rule := range rules {
		if rule.Check == nil {
			continue
		}
		if !rule.Check(d) {
			return Fail(rule)
		}
	}
	return Pass()
}

// ValidateStep validates the draft against the rules of a single step.
func ValidateStep(step int, d draft.ApplicationDraft) Result {
	return Evaluate(StepRules(step), d)
}

// ValidateSubmission re-validates every step in order and then the
// acknowledgements. It returns the index of the step the failure belongs to;
// acknowledgement failures belong to the last (review) step. On success the
// returned step is -1.
func ValidateSubmission(d draft.ApplicationDraft) (int, Result) {
	for step := 0; step < StepCount(); step++ {
		if res := ValidateStep(step, d); !res.Valid {
			return step, res
		}
	}
	if res := Evaluate(acknowledgementRules, d); !res.Valid {
		return StepCount() - 1, res
	}
	return -1, Pass()
}
