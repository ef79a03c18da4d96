package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/munnerz/goautoneg"
)

// Registry holds the renderers a page can be served with, in registration
// order. The first one registered is the default.
type Registry struct {
	mu        sync.RWMutex
	renderers []Renderer
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends renderer. Names must be unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil || renderer.Name() == "" {
		return fmt.Errorf("render: renderer needs a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookup(renderer.Name()) != nil {
		return fmt.Errorf("render: renderer %q already registered", renderer.Name())
	}
	r.renderers = append(r.renderers, renderer)
	return nil
}

// MustRegister is Register for wiring code that cannot recover.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if found := r.lookup(name); found != nil {
		return found, nil
	}
	return nil, fmt.Errorf("render: renderer %q not found", name)
}

func (r *Registry) lookup(name string) Renderer {
	for _, renderer := range r.renderers {
		if renderer.Name() == name {
			return renderer
		}
	}
	return nil
}

// Negotiate picks the renderer whose content type best matches an HTTP
// Accept header. An empty header selects the first registered renderer, as
// does a wildcard; equal preferences keep registration order.
func (r *Registry) Negotiate(accept string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.renderers) == 0 {
		return nil, fmt.Errorf("render: no renderers registered")
	}
	if strings.TrimSpace(accept) == "" {
		return r.renderers[0], nil
	}

	offers := make([]string, len(r.renderers))
	for i, renderer := range r.renderers {
		media, _, _ := strings.Cut(renderer.ContentType(), ";")
		offers[i] = strings.TrimSpace(media)
	}
	picked := goautoneg.Negotiate(accept, offers)
	for i, offer := range offers {
		if picked != "" && offer == picked {
			return r.renderers[i], nil
		}
	}
	return nil, fmt.Errorf("render: no renderer accepts %q", accept)
}
