package tui

import (
	"github.com/goliatone/go-cybertalent/pkg/render"
	"github.com/goliatone/go-cybertalent/pkg/wizard"
)

// OutputFormat controls how the accepted submission is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the submission as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits the review summary as text.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional message prefixes the runner applies when printing.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme marks errors so they stand out in a plain terminal.
var DefaultTheme = Theme{ErrorPrefix: "✖ "}

// Option configures the Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithController runs an existing wizard controller instead of a new one.
func WithController(c *wizard.Controller) Option {
	return func(r *Runner) {
		if c != nil {
			r.controller = c
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Runner) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTranslator localizes prompts, step titles and validation messages.
func WithTranslator(t render.Translator, locale string) Option {
	return func(r *Runner) {
		r.translator = t
		r.locale = locale
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}
