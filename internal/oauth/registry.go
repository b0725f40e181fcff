package oauth

import "github.com/5dpapa/portfolio/domain"

// Registry holds the configured OAuth providers and allows lookup by name.
type Registry struct {
	providers map[string]*Provider
}

// NewRegistry registers the given providers by name. Names must be unique.
func NewRegistry(list ...*Provider) *Registry {
	m := make(map[string]*Provider, len(list))
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider by name or domain.ErrUnknownProvider.
func (r *Registry) Get(name string) (*Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, domain.ErrUnknownProvider
	}
	return p, nil
}

// Names lists the registered provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
