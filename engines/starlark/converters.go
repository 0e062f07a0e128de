package starlark

import (
	"fmt"
	"math"
	"reflect"
	"time"

	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"

	"github.com/robbyt/go-polytemplate/platform/data"
)

// toStarlark converts a resolved Go value for use in an expression.
// Navigable values are wrapped so that every member access goes back
// through the scope.
func toStarlark(scope data.Scope, v any) (starlarkLib.Value, error) {
	v, err := data.ResolveValue(v)
	if err != nil {
		return nil, err
	}

	switch val := v.(type) {
	case nil:
		return starlarkLib.None, nil
	case starlarkLib.Value:
		return val, nil
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int8:
		return starlarkLib.MakeInt64(int64(val)), nil
	case int16:
		return starlarkLib.MakeInt64(int64(val)), nil
	case int32:
		return starlarkLib.MakeInt64(int64(val)), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case uint:
		return starlarkLib.MakeUint(val), nil
	case uint8:
		return starlarkLib.MakeUint64(uint64(val)), nil
	case uint16:
		return starlarkLib.MakeUint64(uint64(val)), nil
	case uint32:
		return starlarkLib.MakeUint64(uint64(val)), nil
	case uint64:
		return starlarkLib.MakeUint64(val), nil
	case float32:
		return starlarkLib.Float(val), nil
	case float64:
		return starlarkLib.Float(val), nil
	case string:
		return starlarkLib.String(val), nil
	case []byte:
		return starlarkLib.Bytes(val), nil
	case time.Time:
		return starlarkTime.Time(val), nil
	case time.Duration:
		return starlarkTime.Duration(val), nil
	case fmt.Stringer:
		if !scope.Navigable(val) {
			return starlarkLib.String(val.String()), nil
		}
	}

	if scope.Navigable(v) {
		return &navigable{scope: scope, target: v}, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		elements := make([]starlarkLib.Value, rv.Len())
		for i := range rv.Len() {
			elem, err := toStarlark(scope, rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
			elements[i] = elem
		}
		return starlarkLib.NewList(elements), nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

// fromStarlark converts an expression result back to a Go value.
func fromStarlark(v starlarkLib.Value) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch val := v.(type) {
	case starlarkLib.NoneType:
		return nil, nil
	case *navigable:
		return val.target, nil
	case starlarkLib.Bool:
		return bool(val), nil
	case starlarkLib.Int:
		if i, ok := val.Int64(); ok {
			return i, nil
		}
		return val.BigInt(), nil
	case starlarkLib.Float:
		f := float64(val)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return val.String(), nil
		}
		return f, nil
	case starlarkLib.String:
		return string(val), nil
	case starlarkLib.Bytes:
		return []byte(val), nil
	case starlarkTime.Time:
		return time.Time(val), nil
	case starlarkTime.Duration:
		return time.Duration(val), nil
	case *starlarkLib.List:
		return fromIterable(val, val.Len())
	case starlarkLib.Tuple:
		return fromIterable(val, val.Len())
	case *starlarkLib.Set:
		return fromIterable(val, val.Len())
	case *starlarkLib.Dict:
		dict := make(map[string]any, val.Len())
		for _, item := range val.Items() {
			key, ok := starlarkLib.AsString(item[0])
			if !ok {
				key = item[0].String()
			}
			vv, err := fromStarlark(item[1])
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value: %w", err)
			}
			dict[key] = vv
		}
		return dict, nil
	default:
		return v.String(), nil
	}
}

func fromIterable(v starlarkLib.Iterable, n int) ([]any, error) {
	list := make([]any, 0, n)
	iter := v.Iterate()
	defer iter.Done()
	var elem starlarkLib.Value
	for iter.Next(&elem) {
		converted, err := fromStarlark(elem)
		if err != nil {
			return nil, fmt.Errorf("failed to convert list element: %w", err)
		}
		list = append(list, converted)
	}
	return list, nil
}
