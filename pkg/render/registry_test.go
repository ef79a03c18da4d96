package render_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-cybertalent/pkg/render"
)

type stubRenderer struct {
	name, contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, render.Page, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func newRegistry(t *testing.T) *render.Registry {
	t.Helper()
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	reg.MustRegister(render.JSONRenderer{})
	return reg
}

func TestRegistry_RegisterRejectsDuplicates(t *testing.T) {
	reg := newRegistry(t)
	if err := reg.Register(render.JSONRenderer{}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if got, err := reg.Get("json"); err != nil || got.Name() != "json" {
		t.Fatalf("Get(json) = %v, %v", got, err)
	}
	if _, err := reg.Get("markdown"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
}

func TestRegistry_Negotiate(t *testing.T) {
	reg := newRegistry(t)

	cases := map[string]string{
		"":                                "vanilla",
		"*/*":                             "vanilla",
		"text/html,application/xhtml+xml": "vanilla",
		"application/json":                "json",
		"application/json;q=0.9, text/html;q=0.5": "json",
		"text/*;q=0.2, application/json;q=0.8":    "json",
		"text/*":                                  "vanilla",
		"application/xml, */*;q=0.1":              "vanilla",
		"application/json; charset=utf-8":         "json",
		"application/*":                           "json",
	}
	for accept, want := range cases {
		got, err := reg.Negotiate(accept)
		if err != nil {
			t.Fatalf("Negotiate(%q): %v", accept, err)
		}
		if got.Name() != want {
			t.Fatalf("Negotiate(%q): want %s, got %s", accept, want, got.Name())
		}
	}

	if _, err := reg.Negotiate("image/png"); err == nil {
		t.Fatalf("expected no match for image/png")
	}
	if _, err := render.NewRegistry().Negotiate("*/*"); err == nil {
		t.Fatalf("expected error from empty registry")
	}
}
