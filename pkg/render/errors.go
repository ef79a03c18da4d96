package render

import (
	"strings"

	"github.com/goliatone/go-cybertalent/pkg/validation"
)

// FieldErrors keys the messages of invalid results by field name so
// templates can render them inline. Valid results and results without a
// field are skipped; the first message for a field wins.
func FieldErrors(results ...validation.Result) map[string]string {
	var out map[string]string
	for _, res := range results {
		field := strings.TrimSpace(res.Field)
		msg := strings.TrimSpace(res.Message)
		if res.Valid || field == "" || msg == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		if _, exists := out[field]; !exists {
			out[field] = msg
		}
	}
	return out
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(messages))
	out := make([]string, 0, len(messages))
	for _, msg := range messages {
		trimmed := strings.TrimSpace(msg)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
