package vanilla

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"
)

type themeContext struct {
	Name         string            `json:"name,omitempty"`
	Variant      string            `json:"variant,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle string            `json:"cssVarsStyle,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	ctx := themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  maps.Clone(cfg.Tokens),
		CSSVars: maps.Clone(cfg.CSSVars),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	return ctx
}

// assetURL resolves a bundled asset through the theme when it provides a
// resolver, falling back to prefix.
func assetURL(cfg *theme.RendererConfig, prefix, name string) string {
	if cfg != nil && cfg.AssetURL != nil {
		if url := strings.TrimSpace(cfg.AssetURL(name)); url != "" {
			return url
		}
	}
	return strings.TrimRight(prefix, "/") + "/" + name
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&b, "%s: %s;\n", key, vars[key])
	}
	b.WriteString("}")
	return b.String()
}
