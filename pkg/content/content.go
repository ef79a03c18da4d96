// Package content holds the copy of the landing page.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/landing.yaml
var embedded embed.FS

// Link is a navigation entry pointing at a section id.
type Link struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Href returns the in-page anchor.
func (l Link) Href() string {
	return "#" + l.ID
}

// Card is a titled paragraph.
type Card struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

// Stat is an animated headline number. Value is display text such as
// "2,500+"; counters derive their target from its digits.
type Stat struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Hero is the top banner.
type Hero struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	CTA      string `yaml:"cta" json:"cta"`
}

// Landing is the full page copy.
type Landing struct {
	Brand    string   `yaml:"brand" json:"brand"`
	Tagline  string   `yaml:"tagline" json:"tagline"`
	Nav      []Link   `yaml:"nav" json:"nav"`
	Hero     Hero     `yaml:"hero" json:"hero"`
	Stats    []Stat   `yaml:"stats" json:"stats"`
	Problems []Card   `yaml:"problems" json:"problems"`
	Features []Card   `yaml:"features" json:"features"`
	Timeline []Card   `yaml:"timeline" json:"timeline"`
	Pathway  []Card   `yaml:"pathway" json:"pathway"`
	Partners []string `yaml:"partners" json:"partners"`
	Trust    []string `yaml:"trust" json:"trust"`
}

// Parse decodes landing copy.
func Parse(data []byte) (Landing, error) {
	var l Landing
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Landing{}, fmt.Errorf("content: parse: %w", err)
	}
	if strings.TrimSpace(l.Brand) == "" {
		return Landing{}, errors.New("content: brand is required")
	}
	seen := make(map[string]struct{}, len(l.Nav))
	for _, link := range l.Nav {
		id := strings.TrimSpace(link.ID)
		if id == "" {
			return Landing{}, errors.New("content: nav link without id")
		}
		if _, dup := seen[id]; dup {
			return Landing{}, fmt.Errorf("content: duplicate nav id %q", id)
		}
		seen[id] = struct{}{}
	}
	return l, nil
}

// Default returns the bundled copy.
func Default() Landing {
	data, err := fs.ReadFile(embedded, "data/landing.yaml")
	if err != nil {
		panic(err)
	}
	l, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return l
}

// Load reads copy from path, or returns the bundled copy when path is empty.
func Load(path string) (Landing, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Landing{}, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Parse(data)
}
