package source

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-polytemplate/platform/source/loader"
)

func TestMapSource(t *testing.T) {
	t.Parallel()

	input := map[string]string{
		"msg.order.delivery.name":        "${name}",
		"msg.order.delivery.friend.name": "friend of ${name}",
		"msg.order.delivery.__config__":  `{"enabled": true}`,
		"msg.other.name":                 "x",
	}
	src := NewMapSource(input)
	input["msg.other.name"] = "changed"

	got, ok := src.Template("msg.order.delivery", "name")
	require.True(t, ok)
	assert.Equal(t, "${name}", got)

	got, ok = src.Template("msg.other", "name")
	require.True(t, ok)
	assert.Equal(t, "x", got, "input map is copied")

	_, ok = src.Template("msg.order.delivery", "age")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{
		"name":        "${name}",
		"friend.name": "friend of ${name}",
		"__config__":  `{"enabled": true}`,
	}, src.Templates("msg.order.delivery"))
	assert.Empty(t, src.Templates("msg.order.delivery.name"))
	assert.Len(t, src.Templates(""), 4)
	assert.Equal(t, 4, src.Len())
	assert.Equal(t, "msg.order.delivery.__config__", src.Keys()[0])
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want Format
	}{
		{path: "/etc/templates.yaml", want: FormatYAML},
		{path: "templates.YML", want: FormatYAML},
		{path: "templates.json", want: FormatJSON},
		{path: "application.properties", want: FormatProperties},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := FormatFromPath("templates")
	require.ErrorIs(t, err, ErrUnknownFormat)
	_, err = FormatFromPath("templates.toml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeFormats(t *testing.T) {
	t.Parallel()

	want := map[string]string{
		"msg.order.delivery.name":        "${name}${suffix}",
		"msg.order.delivery.age":         "18",
		"msg.order.delivery.friend.name": "friend${end}",
		"msg.order.delivery.girl":        "true",
	}

	tests := []struct {
		name    string
		format  Format
		content string
	}{
		{
			name:   "yaml",
			format: FormatYAML,
			content: `
msg:
  order:
    delivery:
      name: "${name}${suffix}"
      age: 18
      friend:
        name: "friend${end}"
      girl: true
`,
		},
		{
			name:   "json",
			format: FormatJSON,
			content: `{"msg": {"order": {"delivery": {
				"name": "${name}${suffix}",
				"age": 18,
				"friend": {"name": "friend${end}"},
				"girl": true
			}}}}`,
		},
		{
			name:   "properties",
			format: FormatProperties,
			content: `
# delivery message
msg.order.delivery.name=${name}${suffix}
msg.order.delivery.age: 18
! legacy comment
msg.order.delivery.friend.name = friend${end}
msg.order.delivery.girl=true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Decode([]byte(tt.content), tt.format)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecodeLists(t *testing.T) {
	t.Parallel()

	got, err := Decode([]byte(`
user:
  tags: [a, "${tag}", 3]
  pets:
    - name: "${pet}"
    - name: cat
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"user.tags":        "a,${tag},3",
		"user.pets.0.name": "${pet}",
		"user.pets.1.name": "cat",
	}, got)
}

func TestDecodeConfig(t *testing.T) {
	t.Parallel()

	got, err := Decode([]byte(`
msg:
  __config__:
    enabled: true
    channel: sms
  text: hello
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "hello", got["msg.text"])

	var config map[string]any
	require.NoError(t, json.Unmarshal([]byte(got["msg.__config__"]), &config))
	assert.Equal(t, map[string]any{"enabled": true, "channel": "sms"}, config)

	got, err = Decode([]byte(`{"msg": {"__config__": {"retries": 3}}}`), FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"retries": 3}`, got["msg.__config__"])
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("a: [unclosed"), FormatYAML)
	require.ErrorIs(t, err, ErrDecode)

	_, err = Decode([]byte("{"), FormatJSON)
	require.ErrorIs(t, err, ErrDecode)

	_, err = Decode([]byte(`["not", "a", "mapping"]`), FormatJSON)
	require.ErrorIs(t, err, ErrDecode)

	_, err = Decode([]byte("a=b"), Format("toml"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFromLoader(t *testing.T) {
	t.Parallel()

	l, err := loader.NewFromString("greeting.text=hello ${name}\ngreeting.lang=${lang:en}\n")
	require.NoError(t, err)

	src, err := FromLoader(l, FormatProperties)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"text": "hello ${name}",
		"lang": "${lang:en}",
	}, src.Templates("greeting"))

	l, err = loader.NewFromString("{broken")
	require.NoError(t, err)
	_, err = FromLoader(l, FormatJSON)
	require.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "string://inline/")
}
