package data

import "fmt"

// maxLazyDepth bounds how many providers returning providers are unwrapped.
const maxLazyDepth = 16

// Value is either an eager value or a lazy provider invoked on demand.
type Value struct {
	value any
	fn    func() (any, error)
}

// Eager wraps an already computed value.
func Eager(v any) Value {
	return Value{value: v}
}

// Lazy wraps a provider that may fail.
func Lazy(fn func() (any, error)) Value {
	if fn == nil {
		return Value{}
	}
	return Value{fn: fn}
}

// Provider wraps a provider that cannot fail.
func Provider(fn func() any) Value {
	if fn == nil {
		return Value{}
	}
	return Value{fn: func() (any, error) { return fn(), nil }}
}

// IsLazy reports whether reading the value invokes a provider.
func (v Value) IsLazy() bool {
	return v.fn != nil
}

// Resolve returns the wrapped value, invoking the provider if there is one.
func (v Value) Resolve() (any, error) {
	return ResolveValue(v)
}

func (v Value) String() string {
	if v.fn != nil {
		return "data.Value{lazy}"
	}
	return fmt.Sprintf("data.Value{%v}", v.value)
}

// ResolveValue unwraps Value, *Value, func() any and func() (any, error)
// until a plain value remains. Other values are returned unchanged.
func ResolveValue(v any) (any, error) {
	for range maxLazyDepth {
		switch val := v.(type) {
		case Value:
			if val.fn == nil {
				v = val.value
				continue
			}
			out, err := val.fn()
			if err != nil {
				return nil, err
			}
			v = out
		case *Value:
			if val == nil {
				return nil, nil
			}
			v = *val
		case func() any:
			if val == nil {
				return nil, nil
			}
			v = val()
		case func() (any, error):
			if val == nil {
				return nil, nil
			}
			out, err := val()
			if err != nil {
				return nil, err
			}
			v = out
		default:
			return v, nil
		}
	}
	return nil, fmt.Errorf("lazy value nested deeper than %d levels", maxLazyDepth)
}

// IsLazy reports whether v is a provider that ResolveValue would invoke.
func IsLazy(v any) bool {
	switch val := v.(type) {
	case Value:
		return val.fn != nil
	case *Value:
		return val != nil && val.fn != nil
	case func() any, func() (any, error):
		return true
	default:
		return false
	}
}
