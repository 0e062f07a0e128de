package starlark

import (
	"maps"

	starlarkJSON "go.starlark.net/lib/json"
	starlarkMath "go.starlark.net/lib/math"
	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
)

const (
	namespaceJSON = "json"
	namespaceMath = "math"
	namespaceTime = "time"
)

// standardModules returns a copy of the Starlark universe with the json,
// math and time modules added. Context names shadow every entry.
func standardModules() starlarkLib.StringDict {
	universe := maps.Clone(starlarkLib.Universe)
	universe[namespaceJSON] = starlarkJSON.Module
	universe[namespaceMath] = starlarkMath.Module
	universe[namespaceTime] = starlarkTime.Module
	return universe
}
