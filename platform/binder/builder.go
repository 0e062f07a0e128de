// Package binder builds typed objects from the value templates of a
// definition.
package binder

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/robbyt/go-polytemplate/internal/helpers"
	"github.com/robbyt/go-polytemplate/platform"
	"github.com/robbyt/go-polytemplate/platform/constants"
	"github.com/robbyt/go-polytemplate/platform/source"
)

// Predicate decides from a definition's __config__ whether to build it.
type Predicate func(config map[string]any) bool

// Builder resolves every template of a definition and binds the results
// into a struct. It is safe for concurrent use.
type Builder struct {
	resolver platform.Resolver
	source   source.Source
	logger   *slog.Logger
}

// New creates a Builder that reads templates from src.
func New(handler slog.Handler, resolver platform.Resolver, src source.Source) *Builder {
	_, logger := helpers.SetupLogger(handler, "binder", "Builder")
	return &Builder{
		resolver: resolver,
		source:   src,
		logger:   logger,
	}
}

func (b *Builder) String() string {
	return fmt.Sprintf("binder.Builder{Resolver: %v}", b.resolver)
}

// Config decodes the __config__ template of definition. A missing template
// yields a nil map.
func (b *Builder) Config(definition string) (map[string]any, error) {
	raw, ok := b.source.Template(definition, constants.ConfigProperty)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var config map[string]any
	if err := yaml.Unmarshal([]byte(raw), &config); err != nil {
		return nil, fmt.Errorf("invalid %s of %q: %w", constants.ConfigProperty, definition, err)
	}
	return config, nil
}

// Resolve resolves the template of one property of definition leniently.
func (b *Builder) Resolve(definition, property string, scope any) (string, bool, error) {
	t, ok := b.source.Template(definition, property)
	if !ok {
		return "", false, nil
	}
	out, err := b.resolver.Resolve(t, scope, false)
	if err != nil {
		return "", false, err
	}
	return out, true, nil
}

// ResolveAll resolves every template of definition leniently, keyed by
// property path. Failures of individual properties are collected.
func (b *Builder) ResolveAll(definition string, scope any) (map[string]string, error) {
	templates := b.source.Templates(definition)
	values := make(map[string]string, len(templates))

	var result *multierror.Error
	for _, path := range slices.Sorted(maps.Keys(templates)) {
		if isConfigPath(path) {
			continue
		}
		out, err := b.resolver.Resolve(templates[path], scope, false)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
			continue
		}
		values[path] = out
	}
	return values, result.ErrorOrNil()
}

// Build fills out, a non-nil pointer, from the templates of definition.
// When before is set it is called with the decoded __config__ first; a
// false answer skips the build and Build returns false with no error.
func (b *Builder) Build(definition string, scope any, out any, before Predicate) (bool, error) {
	logger := b.logger.WithGroup("Build")
	typeName := fmt.Sprintf("%T", out)
	fail := func(err error) (bool, error) {
		return false, &BuildError{Type: typeName, Definition: definition, Err: err}
	}

	if rv := reflect.ValueOf(out); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fail(ErrNilTarget)
	}

	if before != nil {
		config, err := b.Config(definition)
		if err != nil {
			return fail(err)
		}
		if !before(config) {
			logger.Debug("build skipped by predicate", "definition", definition)
			return false, nil
		}
	}

	values, err := b.ResolveAll(definition, scope)
	if err != nil {
		return fail(err)
	}

	if err := bind(values, out); err != nil {
		return fail(err)
	}
	logger.Debug("built definition", "definition", definition, "type", typeName, "properties", len(values))
	return true, nil
}

// BuildAs builds a new T from definition. A skipped build returns nil.
func BuildAs[T any](b *Builder, definition string, scope any, before Predicate) (*T, error) {
	out := new(T)
	ok, err := b.Build(definition, scope, out, before)
	if err != nil || !ok {
		return nil, err
	}
	return out, nil
}

func bind(values map[string]string, out any) error {
	v := viper.New()
	for key, value := range nest(values) {
		v.Set(key, value)
	}

	return v.Unmarshal(out, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)))
}

// nest turns dotted paths into nested maps. Maps whose keys are exactly
// 0..n-1 become slices.
func nest(values map[string]string) map[string]any {
	root := make(map[string]any)
	for path, value := range values {
		parts := strings.Split(path, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		last := parts[len(parts)-1]
		if _, isMap := node[last].(map[string]any); !isMap {
			node[last] = value
		}
	}
	for key, child := range root {
		root[key] = listify(child)
	}
	return root
}

func listify(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for key, child := range m {
		m[key] = listify(child)
	}
	if len(m) == 0 {
		return m
	}

	list := make([]any, len(m))
	for key, child := range m {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(m) || strconv.Itoa(i) != key {
			return m
		}
		list[i] = child
	}
	return list
}

func isConfigPath(path string) bool {
	return path == constants.ConfigProperty || strings.HasSuffix(path, "."+constants.ConfigProperty)
}
