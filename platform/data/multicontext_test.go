package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiContext(t *testing.T) {
	t.Parallel()

	calls := 0
	m := NewMultiContext().
		Add("name", "zhang san").
		AddProvider("person", func() any {
			calls++
			return map[string]any{"age": 12}
		}).
		AddLazy("addr", func() (any, error) { return "sz", nil }).
		Add("bare", func() any { return "bare" }).
		Add("wrapped", Eager(1))

	assert.Equal(t, 5, m.Len())
	assert.Equal(t, []string{"addr", "bare", "name", "person", "wrapped"}, m.Names())

	v, ok := m.Get("person")
	require.True(t, ok)
	assert.True(t, v.IsLazy())
	assert.Equal(t, 0, calls, "Get does not invoke providers")

	bare, ok := m.Get("bare")
	require.True(t, ok)
	assert.True(t, bare.IsLazy())

	name, ok := m.Get("name")
	require.True(t, ok)
	assert.False(t, name.IsLazy())

	_, ok = m.Get("missing")
	assert.False(t, ok)

	m.Add("name", "li si")
	name, _ = m.Get("name")
	resolved, err := name.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "li si", resolved)

	assert.Len(t, m.Values(), 5)
}

func TestNilMultiContext(t *testing.T) {
	t.Parallel()
	var m *MultiContext

	_, ok := m.Get("x")
	assert.False(t, ok)
	assert.Nil(t, m.Names())
	assert.Nil(t, m.Values())
	assert.Equal(t, 0, m.Len())
}
