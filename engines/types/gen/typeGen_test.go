package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewView(t *testing.T) {
	t.Parallel()

	v, err := newView(engineTable)
	require.NoError(t, err)
	assert.Equal(t, "Starlark", v.Default.Name)

	tests := []struct {
		name  string
		table []engine
	}{
		{name: "no default", table: []engine{{Name: "A", Value: "a"}}},
		{name: "two defaults", table: []engine{{Name: "A", Value: "a", Default: true}, {Name: "B", Value: "b", Default: true}}},
		{name: "duplicate value", table: []engine{{Name: "A", Value: "a", Default: true}, {Name: "B", Value: "a"}}},
		{name: "upper case value", table: []engine{{Name: "A", Value: "A", Default: true}}},
		{name: "empty value", table: []engine{{Name: "A", Default: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newView(tt.table)
			require.Error(t, err)
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	v, err := newView(engineTable)
	require.NoError(t, err)

	for _, target := range targets {
		t.Run(target.template, func(t *testing.T) {
			out, err := render(target.template, v)
			require.NoError(t, err)
			assert.Contains(t, string(out), "DO NOT EDIT")
			for _, e := range engineTable {
				assert.Contains(t, string(out), e.Name)
			}
		})
	}

	out, err := render("type.go.tmpl", v)
	require.NoError(t, err)
	assert.Contains(t, string(out), "const Default = Starlark")

	out, err = render("new.go.tmpl", v)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"github.com/robbyt/go-polytemplate/engines/expr"`)
}
