package data

import (
	"maps"
	"slices"
)

// MultiContext is a named collection of eager values and lazy providers.
// It is built with Add calls and should not be mutated while a resolution
// that uses it is in progress.
type MultiContext struct {
	values map[string]Value
}

// NewMultiContext creates an empty MultiContext.
func NewMultiContext() *MultiContext {
	return &MultiContext{values: make(map[string]Value)}
}

// Add stores v under name. A Value is stored as is; func() any and
// func() (any, error) become lazy providers; anything else is eager.
// Adding an existing name replaces it.
func (m *MultiContext) Add(name string, v any) *MultiContext {
	switch val := v.(type) {
	case Value:
		m.values[name] = val
	case func() any:
		m.values[name] = Provider(val)
	case func() (any, error):
		m.values[name] = Lazy(val)
	default:
		m.values[name] = Eager(v)
	}
	return m
}

// AddProvider stores a lazy provider under name.
func (m *MultiContext) AddProvider(name string, fn func() any) *MultiContext {
	m.values[name] = Provider(fn)
	return m
}

// AddLazy stores a lazy provider that may fail under name.
func (m *MultiContext) AddLazy(name string, fn func() (any, error)) *MultiContext {
	m.values[name] = Lazy(fn)
	return m
}

// Get returns the entry stored under name without invoking it.
func (m *MultiContext) Get(name string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[name]
	return v, ok
}

// Names returns the stored names in sorted order.
func (m *MultiContext) Names() []string {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.values))
}

// Len returns the number of stored names.
func (m *MultiContext) Len() int {
	if m == nil {
		return 0
	}
	return len(m.values)
}

// Values exposes the underlying mapping.
func (m *MultiContext) Values() map[string]Value {
	if m == nil {
		return nil
	}
	return m.values
}
