package data

import (
	"fmt"
	"reflect"

	"github.com/robbyt/go-polytemplate/platform/property"
)

type memoEntry struct {
	value    any
	presence Presence
	err      error
}

// Frame is the Scope of a single resolution call. Top-level lazy providers
// are invoked at most once per Frame; nested providers are invoked on every
// access. A Frame is not safe for concurrent use and must not outlive the call.
type Frame struct {
	root  any
	props *property.Introspector
	memo  map[string]memoEntry

	rootResolved bool
	rootErr      error
}

// NewFrame creates a Frame over root. A nil Introspector disables structured
// object navigation.
func NewFrame(root any, props *property.Introspector) *Frame {
	return &Frame{
		root:  root,
		props: props,
		memo:  make(map[string]memoEntry),
	}
}

func (f *Frame) resolvedRoot() (any, error) {
	if !f.rootResolved {
		f.root, f.rootErr = ResolveValue(f.root)
		f.rootResolved = true
	}
	return f.root, f.rootErr
}

// Root looks up a top-level name, invoking its provider at most once per Frame.
func (f *Frame) Root(name string) (any, Presence, error) {
	if entry, ok := f.memo[name]; ok {
		return entry.value, entry.presence, entry.err
	}

	root, err := f.resolvedRoot()
	if err != nil {
		return nil, Absent, err
	}

	value, presence, err := f.Member(root, name)
	f.memo[name] = memoEntry{value: value, presence: presence, err: err}
	return value, presence, err
}

// Member looks up name on target. Maps, MultiContexts, Getters, registered
// structured objects and other string-keyed maps are navigable.
func (f *Frame) Member(target any, name string) (any, Presence, error) {
	target, err := ResolveValue(target)
	if err != nil {
		return nil, Absent, err
	}

	raw, found, err := f.lookup(target, name)
	if err != nil || !found {
		return nil, Absent, err
	}

	value, err := ResolveValue(raw)
	if err != nil {
		return nil, Absent, err
	}
	if isNil(value) {
		return nil, Null, nil
	}
	return value, Present, nil
}

func (f *Frame) lookup(target any, name string) (any, bool, error) {
	switch t := target.(type) {
	case nil:
		return nil, false, nil
	case *MultiContext:
		v, ok := t.Get(name)
		return v, ok, nil
	case map[string]Value:
		v, ok := t[name]
		return v, ok, nil
	case map[string]any:
		v, ok := t[name]
		return v, ok, nil
	case map[string]string:
		v, ok := t[name]
		return v, ok, nil
	case Getter:
		v, ok := t.Get(name)
		return v, ok, nil
	}

	if f.props != nil {
		if _, ok := f.props.ReadableProperties(target); ok {
			return f.props.Read(target, name)
		}
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false, nil
		}
		return v.Interface(), true, nil
	}
	return nil, false, nil
}

// Index reads element i of a slice or array. Out of range indexes are absent.
func (f *Frame) Index(target any, i int) (any, Presence, error) {
	target, err := ResolveValue(target)
	if err != nil {
		return nil, Absent, err
	}

	var raw any
	switch t := target.(type) {
	case []any:
		if i < 0 || i >= len(t) {
			return nil, Absent, nil
		}
		raw = t[i]
	case []string:
		if i < 0 || i >= len(t) {
			return nil, Absent, nil
		}
		raw = t[i]
	default:
		rv := reflect.ValueOf(target)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, Absent, fmt.Errorf("%w: %T", ErrNotIndexable, target)
		}
		if i < 0 || i >= rv.Len() {
			return nil, Absent, nil
		}
		raw = rv.Index(i).Interface()
	}

	value, err := ResolveValue(raw)
	if err != nil {
		return nil, Absent, err
	}
	if isNil(value) {
		return nil, Null, nil
	}
	return value, Present, nil
}

// Navigable reports whether Member can look anything up on v.
func (f *Frame) Navigable(v any) bool {
	switch v.(type) {
	case nil:
		return false
	case *MultiContext, map[string]Value, map[string]any, map[string]string, Getter:
		return true
	}
	if f.props != nil {
		if _, ok := f.props.ReadableProperties(v); ok {
			return true
		}
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

// Require is Root for callers that treat absence as an error.
func Require(s Scope, name string) (any, error) {
	v, presence, err := s.Root(name)
	if err != nil {
		return nil, err
	}
	if presence == Absent {
		return nil, NotFound(name)
	}
	return v, nil
}

// RequireMember is Member for callers that treat absence as an error.
func RequireMember(s Scope, target any, name string) (any, error) {
	v, presence, err := s.Member(target, name)
	if err != nil {
		return nil, err
	}
	if presence == Absent {
		return nil, NotFound(name)
	}
	return v, nil
}

// RequireIndex is Index for callers that treat absence as an error.
func RequireIndex(s Scope, target any, i int) (any, error) {
	v, presence, err := s.Index(target, i)
	if err != nil {
		return nil, err
	}
	if presence == Absent {
		return nil, fmt.Errorf("%w: index %d", ErrNavigationAbsence, i)
	}
	return v, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
