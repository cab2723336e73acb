package feed

import "fmt"

// Registry keeps sources in registration order and guarantees that no two of them share an artifact.
type Registry struct {
	sources []Source
	names   map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]struct{}),
	}
}

func MakeRegistry(sources ...Source) (*Registry, error) {
	registry := NewRegistry()
	for _, source := range sources {
		if err := registry.Add(source); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (r *Registry) Add(source Source) error {
	if source.Name == "" {
		return fmt.Errorf("%s source has an empty artifact name", source.URL)
	}

	if _, ok := r.names[source.Name]; ok {
		return fmt.Errorf("%q artifact is already registered", source.Name)
	}

	r.names[source.Name] = struct{}{}
	r.sources = append(r.sources, source)

	return nil
}

func (r *Registry) Sources() []Source {
	return r.sources
}

func (r *Registry) Len() int {
	return len(r.sources)
}
