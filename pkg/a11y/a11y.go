// Package a11y holds the small accessibility helpers of the page.
package a11y

import (
	"fmt"
	"unicode/utf8"

	"github.com/goliatone/go-cybertalent/pkg/validation"
)

// SkipLink is the first focusable element of the page.
type SkipLink struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// DefaultSkipLink jumps to the hero section.
var DefaultSkipLink = SkipLink{Href: "#home", Text: "Skip to main content"}

// Counter is the live character count under the motivation field.
type Counter struct {
	Length    int    `json:"length"`
	Text      string `json:"text"`
	Satisfied bool   `json:"satisfied"`
}

// MotivationCounter describes value against the motivation minimum. The
// count is of the raw value, so it may differ from the trimmed length used
// by validation.
func MotivationCounter(value string) Counter {
	n := utf8.RuneCountInString(value)
	c := Counter{Length: n, Satisfied: n >= validation.MinMotivationLength}
	if c.Satisfied {
		c.Text = fmt.Sprintf("%d characters", n)
	} else {
		c.Text = fmt.Sprintf("%d characters (minimum %d)", n, validation.MinMotivationLength)
	}
	return c
}
