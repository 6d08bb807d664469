package argfmt

import (
	"fmt"
	"strings"
)

// Registry maps case-insensitive style names to formatting styles. It is
// populated once at construction and immutable afterwards from the
// caller's point of view.
type Registry struct {
	styles   map[string]*Style
	fallback *Style
}

// NewRegistry returns a registry holding the built-in styles.
func NewRegistry() *Registry {
	def := &Style{
		name:      "",
		argFormat: "{value}",
		kwFormat:  "--{key}={value}",
		render:    literalRender,
	}

	r := &Registry{
		styles:   make(map[string]*Style),
		fallback: def,
	}

	r.register(def)
	r.register(&Style{
		name:      "fire",
		argFormat: "{value}",
		kwFormat:  "--{key}={value}",
		render:    literalRender,
	})
	r.register(&Style{
		name:      "sacred",
		prefix:    "with",
		argFormat: "{value}",
		kwFormat:  "{key}={value}",
		render:    literalRender,
	})
	r.register(&Style{
		name:      "json",
		argFormat: "{value}",
		kwFormat:  "--{key}={value}",
		render:    jsonRender,
	})
	return r
}

// register adds a style under its lowercased name.
func (r *Registry) register(s *Style) {
	key := strings.ToLower(s.name)
	if _, exists := r.styles[key]; exists {
		panic(fmt.Sprintf("argument style %q already registered", s.name))
	}
	r.styles[key] = s
}

// Lookup resolves a style by name, case-insensitively. An unrecognized
// name resolves to the default style; the fallback is part of the
// contract, not an error.
func (r *Registry) Lookup(name string) *Style {
	if s, ok := r.styles[strings.ToLower(name)]; ok {
		return s
	}
	return r.fallback
}

// Names returns the registered style names, for help text and validation
// messages. The default style appears as "default".
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.styles))
	for key := range r.styles {
		if key == "" {
			key = "default"
		}
		names = append(names, key)
	}
	return names
}

// defaultRegistry backs the package-level Lookup.
var defaultRegistry = NewRegistry()

// Lookup resolves a style from the package's built-in registry.
func Lookup(name string) *Style {
	return defaultRegistry.Lookup(name)
}
