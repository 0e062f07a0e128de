package expr

import (
	"fmt"
	"reflect"

	"github.com/robbyt/go-polytemplate/platform/data"
)

// evaluation carries the scope of one run and the first navigation error,
// which the VM would otherwise flatten into a message.
type evaluation struct {
	scope data.Scope
	err   error
}

func (e *evaluation) fail(err error) error {
	if e.err == nil {
		e.err = err
	}
	return err
}

func evaluationFrom(params []any, want int) (*evaluation, error) {
	if len(params) != want {
		return nil, fmt.Errorf("%w: want %d arguments, got %d", ErrBadCall, want, len(params))
	}
	run, ok := params[0].(*evaluation)
	if !ok || run == nil {
		return nil, fmt.Errorf("%w: missing scope", ErrBadCall)
	}
	return run, nil
}

// root implements __root__(scope, name).
func root(params ...any) (any, error) {
	run, err := evaluationFrom(params, 2)
	if err != nil {
		return nil, err
	}
	name, ok := params[1].(string)
	if !ok {
		return nil, run.fail(fmt.Errorf("%w: name must be a string", ErrBadCall))
	}
	v, err := data.Require(run.scope, name)
	if err != nil {
		return nil, run.fail(err)
	}
	return v, nil
}

// member implements __member__(scope, target, property, optional).
func member(params ...any) (any, error) {
	run, err := evaluationFrom(params, 4)
	if err != nil {
		return nil, err
	}
	target, property := params[1], params[2]
	optional, _ := params[3].(bool)
	if target == nil && optional {
		return nil, nil
	}

	var v any
	switch key := property.(type) {
	case string:
		v, err = data.RequireMember(run.scope, target, key)
	case int:
		v, err = data.RequireIndex(run.scope, target, normalizeIndex(target, key))
	default:
		err = fmt.Errorf("%w: unsupported key type %T", data.ErrNotIndexable, property)
	}
	if err != nil {
		return nil, run.fail(err)
	}
	return v, nil
}

// normalizeIndex maps negative indexes to positions from the end.
func normalizeIndex(target any, i int) int {
	if i >= 0 {
		return i
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len() + i
	}
	return i
}
