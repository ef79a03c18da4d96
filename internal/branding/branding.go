// Package branding owns the site theme: a go-theme manifest with colour
// tokens and variants, resolved into renderer configuration.
package branding

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cybertalent/pkg/notify"
)

//go:embed theme.yaml
var bundled []byte

// ErrUnknownVariant is returned when a variant is not declared by the manifest.
var ErrUnknownVariant = errors.New("branding: unknown variant")

type assetsDoc struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantDoc struct {
	Tokens map[string]string `yaml:"tokens"`
	Assets assetsDoc         `yaml:"assets"`
}

type manifestDoc struct {
	Name     string                `yaml:"name"`
	Version  string                `yaml:"version"`
	Tokens   map[string]string     `yaml:"tokens"`
	Assets   assetsDoc             `yaml:"assets"`
	Variants map[string]variantDoc `yaml:"variants"`
}

// ParseManifest decodes a YAML theme manifest.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("branding: parse manifest: %w", err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return nil, errors.New("branding: manifest has no name")
	}
	manifest := &theme.Manifest{
		Name:    doc.Name,
		Version: doc.Version,
		Tokens:  doc.Tokens,
		Assets:  theme.Assets{Prefix: doc.Assets.Prefix, Files: doc.Assets.Files},
	}
	if len(doc.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(doc.Variants))
		for name, v := range doc.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens: v.Tokens,
				Assets: theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
			}
		}
	}
	return manifest, nil
}

// Manifest returns the bundled manifest.
func Manifest() *theme.Manifest {
	m, err := ParseManifest(bundled)
	if err != nil {
		panic(err)
	}
	return m
}

// Selector resolves a theme and variant against registered manifests.
type Selector struct {
	provider  theme.ThemeProvider
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests; the first one is the default theme.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	registry := theme.NewRegistry()
	s := &Selector{
		provider:  registry,
		manifests: make(map[string]*theme.Manifest, len(manifests)),
	}
	for _, m := range manifests {
		if m == nil {
			continue
		}
		if err := registry.Register(m); err != nil {
			return nil, fmt.Errorf("branding: register %s: %w", m.Name, err)
		}
		s.manifests[m.Name] = m
		if s.fallback == "" {
			s.fallback = m.Name
		}
	}
	if s.fallback == "" {
		return nil, errors.New("branding: no manifests")
	}
	return s, nil
}

// Select returns the named theme, or the default when name is empty. An
// empty variant selects the base tokens.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = s.fallback
	}
	m, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("branding: unknown theme %q", name)
	}
	if variant != "" {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w %q for theme %s", ErrUnknownVariant, variant, name)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}

// Provider exposes the go-theme registry backing the selector.
func (s *Selector) Provider() theme.ThemeProvider {
	return s.provider
}

// Variants lists the variant names of the default theme.
func (s *Selector) Variants() []string {
	m := s.manifests[s.fallback]
	out := make([]string, 0, len(m.Variants))
	for name := range m.Variants {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RendererConfig flattens a selection: variant tokens and asset files
// override the base ones, and every token is exposed as a `--name` CSS
// variable.
func RendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	m := sel.Manifest
	tokens := merge(m.Tokens, nil)
	files := merge(m.Assets.Files, nil)
	prefix := m.Assets.Prefix
	if v, ok := m.Variants[sel.Variant]; ok {
		tokens = merge(tokens, v.Tokens)
		files = merge(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:   sel.Theme,
		Variant: sel.Variant,
		Tokens:  tokens,
		CSSVars: cssVars,
		AssetURL: func(name string) string {
			file, ok := files[name]
			if !ok {
				return ""
			}
			return strings.TrimRight(prefix, "/") + "/" + file
		},
	}
}

// Palette maps the notify-* tokens onto notification kinds.
func Palette(cfg *theme.RendererConfig) map[notify.Kind]string {
	if cfg == nil {
		return nil
	}
	out := make(map[notify.Kind]string, 3)
	for _, kind := range []notify.Kind{notify.KindInfo, notify.KindSuccess, notify.KindError} {
		if color := cfg.Tokens["notify-"+string(kind)]; color != "" {
			out[kind] = color
		}
	}
	return out
}

// Resolve selects variant of the bundled theme and returns its renderer
// configuration.
func Resolve(variant string) (*theme.RendererConfig, error) {
	s, err := NewSelector(Manifest())
	if err != nil {
		return nil, err
	}
	sel, err := s.Select("", variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(sel), nil
}

func merge(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
