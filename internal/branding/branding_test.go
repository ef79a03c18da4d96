package branding

import (
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cybertalent/pkg/notify"
)

func TestResolveBase(t *testing.T) {
	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Theme != "cybertalent" || cfg.Variant != "" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.CSSVars["--brand"] != "#0b5fff" {
		t.Fatalf("expected brand css var, got %v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("cybertalent.css"); got != "/assets/cybertalent.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("unknown.js"); got != "" {
		t.Fatalf("unknown assets should not resolve, got %q", got)
	}
}

func TestResolveVariantOverridesTokens(t *testing.T) {
	cfg, err := Resolve("high-contrast")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Tokens["brand"] != "#ffff00" || cfg.CSSVars["--brand"] != "#ffff00" {
		t.Fatalf("variant tokens not applied: %v", cfg.Tokens)
	}
	if cfg.Tokens["accent"] != "#00d4aa" {
		t.Fatalf("base tokens should survive: %v", cfg.Tokens)
	}

	want := map[notify.Kind]string{
		notify.KindInfo:    "#3b82f6",
		notify.KindSuccess: "#00ff00",
		notify.KindError:   "#ff4040",
	}
	if diff := cmp.Diff(want, Palette(cfg)); diff != "" {
		t.Fatalf("palette mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveUnknownVariant(t *testing.T) {
	if _, err := Resolve("neon"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestSelector(t *testing.T) {
	other := &theme.Manifest{Name: "partner", Version: "1.0.0", Tokens: map[string]string{"brand": "#222222"}}
	s, err := NewSelector(Manifest(), other)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	if s.Provider() == nil {
		t.Fatalf("expected a provider")
	}
	if diff := cmp.Diff([]string{"high-contrast", "light"}, s.Variants()); diff != "" {
		t.Fatalf("variants mismatch (-want +got):\n%s", diff)
	}

	sel, err := s.Select("partner", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := RendererConfig(sel).Tokens["brand"]; got != "#222222" {
		t.Fatalf("unexpected brand %q", got)
	}
	if _, err := s.Select("missing", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if _, err := NewSelector(); err == nil {
		t.Fatalf("expected error without manifests")
	}
}

func TestParseManifestErrors(t *testing.T) {
	if _, err := ParseManifest([]byte("tokens: [")); err == nil {
		t.Fatalf("expected yaml error")
	}
	if _, err := ParseManifest([]byte("version: 1.0.0\n")); err == nil {
		t.Fatalf("expected missing name error")
	}
	if RendererConfig(nil) != nil || Palette(nil) != nil {
		t.Fatalf("nil selection should yield nil config")
	}
}
