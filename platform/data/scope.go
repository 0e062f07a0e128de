package data

// Presence is the outcome of a context lookup.
type Presence int

const (
	// Absent means the key or property does not exist.
	Absent Presence = iota
	// Null means the key exists and its value is nil.
	Null
	// Present means the key exists with a non-nil value.
	Present
)

func (p Presence) String() string {
	switch p {
	case Absent:
		return "absent"
	case Null:
		return "null"
	case Present:
		return "present"
	default:
		return "unknown"
	}
}

// Getter is implemented by custom map-like contexts.
type Getter interface {
	Get(name string) (any, bool)
}

// Scope is the navigation surface handed to placeholder lookups and
// expression engines. Returned values never contain unresolved providers.
type Scope interface {
	// Root looks up a top-level name.
	Root(name string) (any, Presence, error)

	// Member looks up a key or property on a value returned by Root or Member.
	Member(target any, name string) (any, Presence, error)

	// Index reads element i of a sequence.
	Index(target any, i int) (any, Presence, error)

	// Navigable reports whether Member can look anything up on v.
	Navigable(v any) bool
}
