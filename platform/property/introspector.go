package property

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"sort"
	"sync"

	"github.com/robbyt/go-polytemplate/internal/helpers"
)

// Accessor reads one property from an instance.
type Accessor func(instance any) (any, error)

// Table maps property names to accessors for a single type.
type Table map[string]Accessor

// Names returns the property names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describer is implemented by types that publish their own readable properties.
type Describer interface {
	TemplateProperties() Table
}

// Introspector discovers which properties an instance exposes to templates.
// Tables are built once per concrete type and cached until the type is
// registered again. It is safe for concurrent use.
type Introspector struct {
	builders sync.Map // reflect.Type -> func() Table
	tables   sync.Map // reflect.Type -> Table
	logger   *slog.Logger
}

// New creates an empty Introspector.
func New(handler slog.Handler) *Introspector {
	_, logger := helpers.SetupLogger(handler, "property", "Introspector")
	return &Introspector{logger: logger}
}

// Register adds typed accessors for instances of T. T must be a concrete
// type; the instance passed at read time is matched on its dynamic type.
// Registering the same type again replaces its accessors and drops any
// table already built for it.
func Register[T any](in *Introspector, accessors map[string]func(T) (any, error)) {
	accessors = maps.Clone(accessors)
	typ := reflect.TypeFor[T]()
	in.builders.Store(typ, func() Table {
		table := make(Table, len(accessors))
		for name, fn := range accessors {
			if fn == nil {
				continue
			}
			table[name] = func(instance any) (any, error) {
				v, ok := instance.(T)
				if !ok {
					return nil, fmt.Errorf("%w: want %s, got %T", ErrTypeMismatch, typ, instance)
				}
				return fn(v)
			}
		}
		return table
	})
	in.tables.Delete(typ)
}

// RegisterFunc is Register for accessors that cannot fail.
func RegisterFunc[T any](in *Introspector, accessors map[string]func(T) any) {
	wrapped := make(map[string]func(T) (any, error), len(accessors))
	for name, fn := range accessors {
		if fn == nil {
			continue
		}
		wrapped[name] = func(v T) (any, error) { return fn(v), nil }
	}
	Register(in, wrapped)
}

// ReadableProperties returns the property table for the instance's type, or
// false when the type exposes no properties.
func (in *Introspector) ReadableProperties(instance any) (Table, bool) {
	if instance == nil {
		return nil, false
	}
	typ := reflect.TypeOf(instance)

	if cached, ok := in.tables.Load(typ); ok {
		return cached.(Table), true
	}

	var table Table
	if build, ok := in.builders.Load(typ); ok {
		table = build.(func() Table)()
	} else if d, ok := instance.(Describer); ok {
		table = d.TemplateProperties()
	} else {
		return nil, false
	}

	for name, accessor := range table {
		if accessor == nil {
			delete(table, name)
		}
	}

	actual, loaded := in.tables.LoadOrStore(typ, table)
	if !loaded {
		in.logger.Debug("built property table", "type", typ.String(), "properties", table.Names())
	}
	return actual.(Table), true
}

// Read reads the named property. found is false when the type has no such
// property. A failing or panicking accessor yields a *ReadError.
func (in *Introspector) Read(instance any, name string) (value any, found bool, err error) {
	table, ok := in.ReadableProperties(instance)
	if !ok {
		return nil, false, nil
	}
	accessor, ok := table[name]
	if !ok {
		return nil, false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = &ReadError{Type: fmt.Sprintf("%T", instance), Property: name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	value, err = accessor(instance)
	if err != nil {
		return nil, true, &ReadError{Type: fmt.Sprintf("%T", instance), Property: name, Err: err}
	}
	return value, true, nil
}
