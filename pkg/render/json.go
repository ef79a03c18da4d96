package render

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSONRenderer serialises the localized page. Clients that drive the page
// with scripts request it through the Accept header.
type JSONRenderer struct{}

var _ Renderer = JSONRenderer{}

// Name implements Renderer.
func (JSONRenderer) Name() string { return "json" }

// ContentType implements Renderer.
func (JSONRenderer) ContentType() string { return "application/json; charset=utf-8" }

// Render implements Renderer.
func (JSONRenderer) Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	LocalizePage(&page, options)
	out, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("render: encode page: %w", err)
	}
	return out, nil
}
