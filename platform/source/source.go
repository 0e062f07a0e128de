// Package source supplies value templates for object definitions, keyed by
// "definition.property" paths.
package source

import (
	"maps"
	"slices"
	"strings"
)

// Source supplies the value template of a property of a definition.
type Source interface {
	// Template returns the template stored under parent.property.
	Template(parent, property string) (string, bool)

	// Templates returns every template under parent, keyed by the property
	// path relative to parent.
	Templates(parent string) map[string]string
}

// MapSource is a Source over flat dotted keys. It is read-only after
// construction and safe for concurrent use.
type MapSource struct {
	templates map[string]string
}

// NewMapSource copies templates into a MapSource.
func NewMapSource(templates map[string]string) *MapSource {
	return &MapSource{templates: maps.Clone(templates)}
}

func (s *MapSource) Template(parent, property string) (string, bool) {
	t, ok := s.templates[join(parent, property)]
	return t, ok
}

func (s *MapSource) Templates(parent string) map[string]string {
	if parent == "" {
		return maps.Clone(s.templates)
	}

	prefix := parent + "."
	out := make(map[string]string)
	for key, t := range s.templates {
		if rest, ok := strings.CutPrefix(key, prefix); ok && rest != "" {
			out[rest] = t
		}
	}
	return out
}

// Keys returns every stored key in sorted order.
func (s *MapSource) Keys() []string {
	return slices.Sorted(maps.Keys(s.templates))
}

// Len returns the number of stored templates.
func (s *MapSource) Len() int {
	return len(s.templates)
}

func join(parent, property string) string {
	if parent == "" {
		return property
	}
	if property == "" {
		return parent
	}
	return parent + "." + property
}
