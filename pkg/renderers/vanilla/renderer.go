package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-cybertalent/pkg/render"
	rendertemplate "github.com/goliatone/go-cybertalent/pkg/render/template"
	gotemplate "github.com/goliatone/go-cybertalent/pkg/render/template/gotemplate"
)

// DefaultAssetPrefix is where the site serves AssetsFS.
const DefaultAssetPrefix = "/assets"

type Option func(*config)

type config struct {
	templateFS fs.FS
}

// WithTemplatesDir replaces the embedded templates with a directory laid out
// the same way (templates/page.tmpl, templates/partials/*.tmpl). Empty keeps
// the embedded bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path = strings.TrimSpace(path); path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// Renderer draws the full landing page as HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine, err := gotemplate.New(
		gotemplate.WithFS(cfg.templateFS),
		gotemplate.WithExtension(".tmpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	if _, err := fs.Stat(cfg.templateFS, PageTemplate); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %s: %w", PageTemplate, err)
	}
	return &Renderer{templates: engine}, nil
}

func (r *Renderer) Name() string        { return "vanilla" }
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render localizes page and executes the page template. Translation helpers
// bound to options are available to templates as t, tf and current_locale.
func (r *Renderer) Render(ctx context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	render.LocalizePage(&page, options)

	data := map[string]any{
		"page":  page,
		"theme": buildThemeContext(options.Theme),
		"assets": map[string]string{
			"stylesheet": assetURL(options.Theme, DefaultAssetPrefix, StylesheetName),
			"script":     assetURL(options.Theme, DefaultAssetPrefix, RuntimeScriptName),
		},
	}
	for name, fn := range render.TemplateFuncs(options) {
		data[name] = fn
	}

	result, err := r.templates.RenderTemplate(PageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
