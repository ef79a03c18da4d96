package visibility

import (
	"fmt"
	"sort"
	"strings"
)

// Evaluator determines whether a field should be visible based on a rule
// string and the current draft values.
type Evaluator interface {
	Eval(fieldPath, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds the draft projection
// keyed by field name while Extras lets callers inject flags that are not
// part of the draft.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldPath, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldPath, rule string, ctx Context) (bool, error) {
	return fn(fieldPath, rule, ctx)
}

// Rules maps a conditional field name to the expression that reveals it.
type Rules map[string]string

// Fields returns the conditional field names in sorted order.
func (r Rules) Fields() []string {
	out := make([]string, 0, len(r))
	for field := range r {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// Resolve evaluates every rule and returns the visibility of each
// conditional field. Fields whose rule fails to evaluate are reported hidden
// alongside the first error encountered.
func Resolve(eval Evaluator, rules Rules, ctx Context) (map[string]bool, error) {
	out := make(map[string]bool, len(rules))
	if eval == nil {
		return out, fmt.Errorf("visibility: evaluator is nil")
	}

	var firstErr error
	for _, field := range rules.Fields() {
		visible, err := eval.Eval(field, strings.TrimSpace(rules[field]), ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("visibility: field %s: %w", field, err)
			}
			visible = false
		}
		out[field] = visible
	}
	return out, firstErr
}
