package render

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFiles embed.FS

// Catalog is a Translator backed by an x/text message catalog. Messages may
// contain fmt verbs; numbers are formatted for the resolved language.
type Catalog struct {
	builder  *catalog.Builder
	fallback language.Tag
	tags     []language.Tag
	matcher  language.Matcher
	keys     map[language.Tag]map[string]struct{}
}

var _ Translator = (*Catalog)(nil)

// NewCatalog builds a catalog from messages keyed by language. fallback must
// be one of the languages; it answers for unmatched locales and for keys a
// language does not define.
func NewCatalog(fallback language.Tag, messages map[language.Tag]map[string]string) (*Catalog, error) {
	if _, ok := messages[fallback]; !ok {
		return nil, fmt.Errorf("render: catalog has no messages for fallback %s", fallback)
	}

	c := &Catalog{
		builder:  catalog.NewBuilder(catalog.Fallback(fallback)),
		fallback: fallback,
		tags:     []language.Tag{fallback},
		keys:     make(map[language.Tag]map[string]struct{}, len(messages)),
	}

	others := make([]language.Tag, 0, len(messages))
	for tag := range messages {
		if tag != fallback {
			others = append(others, tag)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })
	c.tags = append(c.tags, others...)

	for _, tag := range c.tags {
		keys := make(map[string]struct{}, len(messages[tag]))
		for key, msg := range messages[tag] {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if err := c.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("render: catalog %s %s: %w", tag, key, err)
			}
			keys[key] = struct{}{}
		}
		c.keys[tag] = keys
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// LoadCatalog reads every <lang>.yaml file at the root of fsys. Each file is
// a flat map of key to message.
func LoadCatalog(fsys fs.FS, fallback language.Tag) (*Catalog, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("render: list locales: %w", err)
	}
	messages := make(map[language.Tag]map[string]string, len(files))
	for _, name := range files {
		tag, err := language.Parse(strings.TrimSuffix(path.Base(name), ".yaml"))
		if err != nil {
			return nil, fmt.Errorf("render: locale file %s: %w", name, err)
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("render: read %s: %w", name, err)
		}
		entries := map[string]string{}
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", name, err)
		}
		messages[tag] = entries
	}
	return NewCatalog(fallback, messages)
}

// DefaultCatalog returns the bundled English and German messages.
func DefaultCatalog() (*Catalog, error) {
	return BundledCatalog(language.English)
}

// BundledCatalog returns the bundled messages with fallback used for
// unmatched requests. fallback must be one of the bundled languages.
func BundledCatalog(fallback language.Tag) (*Catalog, error) {
	sub, err := fs.Sub(localeFiles, "locales")
	if err != nil {
		return nil, err
	}
	return LoadCatalog(sub, fallback)
}

// Languages lists the supported languages, fallback first.
func (c *Catalog) Languages() []language.Tag {
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Match resolves an Accept-Language style value ("de-AT,de;q=0.9,en;q=0.5"
// or a bare tag) to the closest supported language.
func (c *Catalog) Match(accept string) language.Tag {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return c.fallback
	}
	desired, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(desired) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(desired...)
	if conf == language.No {
		return c.fallback
	}
	return c.tags[idx]
}

// Translate formats key for locale.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	tag := c.Match(locale)
	if !c.has(tag, key) {
		if !c.has(c.fallback, key) {
			return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, tag)
		}
		tag = c.fallback
	}
	return message.NewPrinter(tag, message.Catalog(c.builder)).Sprintf(key, args...), nil
}

func (c *Catalog) has(tag language.Tag, key string) bool {
	_, ok := c.keys[tag][key]
	return ok
}
