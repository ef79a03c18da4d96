// Package cybertalent is the entry point for the recruitment landing page:
// the application wizard, the HTTP site that serves it and the embedded
// browser assets.
package cybertalent

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-cybertalent/internal/branding"
	"github.com/goliatone/go-cybertalent/pkg/renderers/vanilla"
	"github.com/goliatone/go-cybertalent/pkg/site"
	"github.com/goliatone/go-cybertalent/pkg/wizard"
)

// Event aliases wizard.Event for callers driving a wizard directly.
type Event = wizard.Event

// Submission aliases wizard.Submission.
type Submission = wizard.Submission

// Submitter aliases wizard.Submitter.
type Submitter = wizard.Submitter

// NewWizard returns a controller positioned on the first step.
func NewWizard(options ...wizard.Option) *wizard.Controller {
	return wizard.New(options...)
}

// NewSite builds the landing page server with the bundled content, catalog
// and contract.
func NewSite(ctx context.Context, options ...site.Option) (*site.Server, error) {
	return site.New(ctx, options...)
}

// WithThemeVariant resolves a variant of the bundled theme ("" for the
// default, "light" or "high-contrast") into a site option.
func WithThemeVariant(variant string) (site.Option, error) {
	cfg, err := branding.Resolve(variant)
	if err != nil {
		return nil, err
	}
	return site.WithTheme(cfg, branding.Palette(cfg)), nil
}

// EmbeddedTemplates exposes the page templates so callers can reuse or
// extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet and the progressive enhancement script.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(cybertalent.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
