package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"

	"github.com/robbyt/go-polytemplate/platform/constants"
	"github.com/robbyt/go-polytemplate/platform/data"
	"github.com/robbyt/go-polytemplate/platform/source/loader"
)

// FromLoader reads the document served by l and flattens it into a MapSource.
// Nested mappings become dotted keys, lists of scalars are joined with
// commas, other lists use their indexes as key segments, and __config__
// mappings are stored as JSON text.
func FromLoader(l loader.Loader, format Format) (*MapSource, error) {
	r, err := l.GetReader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.GetSourceURL(), err)
	}

	templates, err := Decode(content, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.GetSourceURL(), err)
	}
	return &MapSource{templates: templates}, nil
}

// Decode flattens content of the given format into dotted keys.
func Decode(content []byte, format Format) (map[string]string, error) {
	switch format {
	case FormatProperties:
		return decodeProperties(content)
	case FormatYAML:
		var doc map[string]any
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return flatten(doc)
	case FormatJSON:
		var doc map[string]any
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return flatten(doc)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func decodeProperties(content []byte) (map[string]string, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := l.LoadBytes(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return p.Map(), nil
}

func flatten(doc map[string]any) (map[string]string, error) {
	out := make(map[string]string)
	if err := flattenInto(out, "", doc); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(out map[string]string, prefix string, v any) error {
	switch val := v.(type) {
	case map[string]any:
		for key, child := range val {
			path := join(prefix, key)
			if key == constants.ConfigProperty {
				if _, isMap := child.(map[string]any); isMap {
					encoded, err := json.Marshal(child)
					if err != nil {
						return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
					}
					out[path] = string(encoded)
					continue
				}
			}
			if err := flattenInto(out, path, child); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if allScalars(val) {
			parts := make([]string, len(val))
			for i, elem := range val {
				parts[i] = data.Stringify(elem)
			}
			out[prefix] = strings.Join(parts, ",")
			return nil
		}
		for i, elem := range val {
			if err := flattenInto(out, join(prefix, strconv.Itoa(i)), elem); err != nil {
				return err
			}
		}
		return nil
	}

	if prefix == "" {
		return fmt.Errorf("%w: document root must be a mapping", ErrDecode)
	}
	out[prefix] = data.Stringify(v)
	return nil
}

func allScalars(list []any) bool {
	for _, elem := range list {
		if elem == nil {
			continue
		}
		switch reflect.ValueOf(elem).Kind() {
		case reflect.Map, reflect.Slice, reflect.Array:
			return false
		}
	}
	return true
}
