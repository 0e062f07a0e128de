package loader

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, l Loader) string {
	t.Helper()
	r, err := l.GetReader()
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Close()) }()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestInMemoryLoaders(t *testing.T) {
	t.Parallel()
	const doc = "greeting: hello ${name}\n"

	tests := []struct {
		name   string
		create func() (Loader, error)
		scheme string
	}{
		{
			name:   "string",
			create: func() (Loader, error) { return NewFromString(doc) },
			scheme: "string",
		},
		{
			name:   "bytes",
			create: func() (Loader, error) { return NewFromBytes([]byte(doc)) },
			scheme: "bytes",
		},
		{
			name:   "reader",
			create: func() (Loader, error) { return NewFromIoReader(strings.NewReader(doc), "test") },
			scheme: "reader",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := tt.create()
			require.NoError(t, err)

			assert.Equal(t, doc, readAll(t, l))
			assert.Equal(t, doc, readAll(t, l), "readers are repeatable")
			assert.Equal(t, tt.scheme, l.GetSourceURL().Scheme)
			assert.Contains(t, l.(interface{ String() string }).String(), "loader.")
		})
	}
}

func TestInMemoryLoadersRejectEmpty(t *testing.T) {
	t.Parallel()

	_, err := NewFromString("  \n\t")
	require.ErrorIs(t, err, ErrSourceNotAvailable)

	_, err = NewFromBytes(nil)
	require.ErrorIs(t, err, ErrSourceNotAvailable)

	_, err = NewFromIoReader(strings.NewReader("   "), "")
	require.ErrorIs(t, err, ErrSourceNotAvailable)

	_, err = NewFromIoReader(nil, "")
	require.ErrorIs(t, err, ErrSourceNotAvailable)

	_, err = NewFromIoReader(failingReader{}, "")
	require.Error(t, err)
}

func TestFromBytesCopiesInput(t *testing.T) {
	t.Parallel()
	content := []byte("a.b=1")
	l, err := NewFromBytes(content)
	require.NoError(t, err)
	content[0] = 'z'
	assert.Equal(t, "a.b=1", readAll(t, l))
}

func TestFromIoReaderUnnamed(t *testing.T) {
	t.Parallel()
	l, err := NewFromIoReader(bytes.NewBufferString("x=1"), "")
	require.NoError(t, err)
	assert.Equal(t, "unnamed", l.GetSourceURL().Host)
}

func TestContentAddressedURLs(t *testing.T) {
	t.Parallel()
	const doc = "order.id=${id}\n"

	fromString, err := NewFromString(doc)
	require.NoError(t, err)
	fromBytes, err := NewFromBytes([]byte(doc))
	require.NoError(t, err)
	fromReader, err := NewFromIoReader(strings.NewReader(doc), "orders")
	require.NoError(t, err)
	other, err := NewFromString("order.id=${other}\n")
	require.NoError(t, err)

	path := fromString.GetSourceURL().Path
	assert.Len(t, path, digestLen+1)
	assert.Equal(t, "/"+digest([]byte(doc)), path)
	assert.Equal(t, path, fromBytes.GetSourceURL().Path)
	assert.Equal(t, path, fromReader.GetSourceURL().Path)
	assert.Equal(t, "reader://orders"+path, fromReader.GetSourceURL().String())
	assert.NotEqual(t, path, other.GetSourceURL().Path)
	assert.Contains(t, fromString.String(), path[1:])

	sum, err := readDigest(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, path[1:], sum)

	_, err = readDigest(failingReader{})
	require.Error(t, err)
}

func TestFromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "templates.properties")
	require.NoError(t, os.WriteFile(path, []byte("order.id=${id}\n"), 0o600))

	t.Run("reads file", func(t *testing.T) {
		l, err := NewFromDisk(path)
		require.NoError(t, err)
		assert.Equal(t, "order.id=${id}\n", readAll(t, l))
		assert.Equal(t, "file", l.GetSourceURL().Scheme)
		assert.Equal(t, path, l.Path())
		assert.Contains(t, l.String(), "SHA256: "+digest([]byte("order.id=${id}\n")))
	})

	t.Run("file scheme prefix", func(t *testing.T) {
		l, err := NewFromDisk("file://" + path)
		require.NoError(t, err)
		assert.Equal(t, path, l.Path())
	})

	t.Run("missing file", func(t *testing.T) {
		l, err := NewFromDisk(filepath.Join(dir, "nope.yaml"))
		require.NoError(t, err)
		_, err = l.GetReader()
		require.ErrorIs(t, err, ErrSourceNotAvailable)
		assert.NotContains(t, l.String(), "SHA256")
	})

	t.Run("invalid paths", func(t *testing.T) {
		_, err := NewFromDisk("relative/templates.yaml")
		require.ErrorIs(t, err, ErrSourceNotAvailable)

		_, err = NewFromDisk("https://example.com/templates.yaml")
		require.ErrorIs(t, err, ErrSchemeUnsupported)

		_, err = NewFromDisk("/")
		require.ErrorIs(t, err, ErrSourceNotAvailable)
	})
}

func TestInferLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "t.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: b"), 0o600))

	existing, err := NewFromString("x=1")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input any
		want  any
	}{
		{name: "http", input: "https://example.com/templates.yaml", want: &FromHTTP{}},
		{name: "file scheme", input: "file://" + path, want: &FromDisk{}},
		{name: "absolute path", input: path, want: &FromDisk{}},
		{name: "inline", input: "msg.text=hello ${name}", want: &FromString{}},
		{name: "bytes", input: []byte("a: b"), want: &FromBytes{}},
		{name: "reader", input: strings.NewReader("a: b"), want: &FromIoReader{}},
		{name: "loader", input: existing, want: &FromString{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := InferLoader(tt.input)
			require.NoError(t, err)
			assert.IsType(t, tt.want, l)
		})
	}

	_, err = InferLoader(42)
	require.ErrorIs(t, err, ErrUnsupportedInput)

	_, err = InferLoader("   ")
	require.ErrorIs(t, err, ErrSourceNotAvailable)
}
