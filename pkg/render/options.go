package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the page model.
type RenderOptions struct {
	// Locale is the resolved language tag, e.g. "en" or "de".
	Locale string
	// Translator resolves chrome strings. When nil the English defaults baked
	// into the page are kept.
	Translator Translator
	// OnMissing controls the string used when a key has no translation.
	OnMissing MissingTranslationHandler
	// Theme carries the selected branding tokens and asset resolver. Renderers
	// expose tokens as CSS custom properties.
	Theme *theme.RendererConfig
}
