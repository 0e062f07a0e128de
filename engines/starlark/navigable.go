package starlark

import (
	"fmt"

	starlarkLib "go.starlark.net/starlark"

	"github.com/robbyt/go-polytemplate/platform/data"
)

// navigable exposes a map, multi-context or structured object to
// expressions. Attribute and index access are resolved through the scope
// on every use, so nested providers stay lazy.
type navigable struct {
	scope  data.Scope
	target any
}

var (
	_ starlarkLib.HasAttrs = (*navigable)(nil)
	_ starlarkLib.Mapping  = (*navigable)(nil)
)

func (n *navigable) String() string { return data.Stringify(n.target) }

func (n *navigable) Type() string { return fmt.Sprintf("context(%T)", n.target) }

func (n *navigable) Freeze() {}

func (n *navigable) Truth() starlarkLib.Bool { return starlarkLib.True }

func (n *navigable) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", n.Type())
}

// Attr implements x.name.
func (n *navigable) Attr(name string) (starlarkLib.Value, error) {
	v, err := data.RequireMember(n.scope, n.target, name)
	if err != nil {
		return nil, err
	}
	return toStarlark(n.scope, v)
}

// AttrNames is empty because member names are only known on lookup.
func (n *navigable) AttrNames() []string {
	return nil
}

// Get implements x["name"].
func (n *navigable) Get(k starlarkLib.Value) (starlarkLib.Value, bool, error) {
	key, ok := starlarkLib.AsString(k)
	if !ok {
		return nil, false, fmt.Errorf("%s keys must be strings, got %s", n.Type(), k.Type())
	}
	v, err := data.RequireMember(n.scope, n.target, key)
	if err != nil {
		return nil, false, err
	}
	sv, err := toStarlark(n.scope, v)
	if err != nil {
		return nil, false, err
	}
	return sv, true, nil
}
