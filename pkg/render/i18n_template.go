package render

import (
	"strings"
)

// TemplateFuncs returns the translation helpers bound to opts. Templates
// call them as
//
//	{{ t("wizard.next", "Next") }}
//	{{ tf("a11y.counter", "", 12) }}
//
// where the second argument is the English fallback.
func TemplateFuncs(opts RenderOptions) map[string]any {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	tr := func(key, fallback string, args ...any) string {
		key = strings.TrimSpace(key)
		if key == "" {
			return fallback
		}
		return translate(opts.Locale, key, fallback, opts.Translator, onMissing, args...)
	}
	return map[string]any{
		"t": func(key, fallback string) string {
			return tr(key, fallback)
		},
		"tf": func(key, fallback string, args ...any) string {
			return tr(key, fallback, args...)
		},
		"current_locale": func() string {
			return opts.Locale
		},
	}
}
