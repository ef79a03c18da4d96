package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-cybertalent/pkg/render/template"
)

// DefaultExtension is appended to template names passed without one.
const DefaultExtension = ".tpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	files     fs.FS
	extension string
	globals   map[string]any
}

// WithBaseDir loads templates from a directory on disk. It can be combined
// with WithFS; the directory is searched first.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		cfg.extension = "." + strings.TrimPrefix(ext, ".")
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		for key, value := range data {
			if cfg.globals == nil {
				cfg.globals = make(map[string]any, len(data))
			}
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Engine implements template.TemplateRenderer over a pongo2 template set.
//
// Data is flattened to maps and slices through its JSON encoding before
// execution, so templates address struct fields by JSON name. Function values
// are passed through untouched and can be called from templates.
type Engine struct {
	// mu guards set.Globals, which executions read.
	mu  sync.RWMutex
	set *pongo2.TemplateSet
	ext string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. At least one of WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: DefaultExtension}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: template dir %s: %w", cfg.baseDir, err)
		}
		loaders = append(loaders, local)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}
	if len(loaders) == 0 {
		return nil, errors.New("gotemplate: no template source, use WithBaseDir or WithFS")
	}

	e := &Engine{set: pongo2.NewSet("cybertalent", loaders...), ext: cfg.extension}
	if err := e.GlobalContext(cfg.globals); err != nil {
		return nil, err
	}
	return e, nil
}

// Render treats name as inline template source when it contains template
// tags and as a template name otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes the named template. Parsed templates are cached by
// the template set.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.set.FromCache(name)
	if err != nil {
		return "", fmt.Errorf("gotemplate: load %s: %w", name, err)
	}
	return e.execute(tmpl, name, data, out)
}

// RenderString parses and executes src.
func (e *Engine) RenderString(src string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromString(src)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tmpl, "inline template", data, out)
}

func (e *Engine) execute(tmpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s data: %w", label, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", fmt.Errorf("gotemplate: write %s: %w", label, err)
		}
	}
	return buf.String(), nil
}

// RegisterFilter adds a filter. pongo2 filters are process wide, so a name
// can only be registered once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter needs a name and a function")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already registered", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global data: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(ctx)
	return nil
}

func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	flat, err := flatten(data)
	if err != nil {
		return nil, err
	}
	m, ok := flat.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("want an object, got %T", data)
	}
	ctx := make(pongo2.Context, len(m))
	for key, value := range m {
		if key = strings.TrimSpace(key); key != "" {
			ctx[key] = value
		}
	}
	return ctx, nil
}

// flatten walks maps and slices so function values found there survive, and
// turns everything else into its JSON shape. Whole numbers come back as int so
// templates print "2" rather than "2.000000".
func flatten(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case pongo2.Context:
		return flatten(map[string]any(x))
	case map[string]any:
		out := make(map[string]any, len(x))
		for key, value := range x {
			flat, err := flatten(value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out[key] = flat
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, value := range x {
			flat, err := flatten(value)
			if err != nil {
				return nil, err
			}
			out[i] = flat
		}
		return out, nil
	}

	if reflect.ValueOf(v).Kind() == reflect.Func {
		return v, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return wholeNumbers(out), nil
}

func wholeNumbers(v any) any {
	switch x := v.(type) {
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return int(x)
		}
	case map[string]any:
		for key, value := range x {
			x[key] = wholeNumbers(value)
		}
	case []any:
		for i, value := range x {
			x[i] = wholeNumbers(value)
		}
	}
	return v
}
