package data

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveValue(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")

	tests := []struct {
		name    string
		input   any
		want    any
		wantErr error
	}{
		{name: "plain value", input: "sz", want: "sz"},
		{name: "nil", input: nil, want: nil},
		{name: "eager", input: Eager(12), want: 12},
		{name: "provider", input: Provider(func() any { return "lazy" }), want: "lazy"},
		{name: "lazy", input: Lazy(func() (any, error) { return 3.5, nil }), want: 3.5},
		{name: "lazy error", input: Lazy(func() (any, error) { return nil, boom }), wantErr: boom},
		{name: "bare func", input: func() any { return true }, want: true},
		{name: "bare func with error", input: func() (any, error) { return nil, boom }, wantErr: boom},
		{
			name:  "provider returning provider",
			input: Provider(func() any { return func() any { return "deep" } }),
			want:  "deep",
		},
		{name: "nil provider", input: Provider(nil), want: nil},
		{name: "nil pointer", input: (*Value)(nil), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveValue(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveValueDepthLimit(t *testing.T) {
	t.Parallel()
	var loop func() any
	loop = func() any { return loop }

	_, err := ResolveValue(loop)
	require.Error(t, err)
}

func TestValueIsLazy(t *testing.T) {
	t.Parallel()
	assert.False(t, Eager("x").IsLazy())
	assert.True(t, Provider(func() any { return nil }).IsLazy())
	assert.True(t, IsLazy(func() (any, error) { return nil, nil }))
	assert.False(t, IsLazy("x"))
	assert.Equal(t, "data.Value{lazy}", Provider(func() any { return 1 }).String())
	assert.Equal(t, "data.Value{1}", Eager(1).String())
}

func TestStringify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil", input: nil, want: ""},
		{name: "string", input: "sz", want: "sz"},
		{name: "bytes", input: []byte("raw"), want: "raw"},
		{name: "bool", input: true, want: "true"},
		{name: "int", input: 33, want: "33"},
		{name: "int64", input: int64(-7), want: "-7"},
		{name: "uint8", input: uint8(255), want: "255"},
		{name: "float whole", input: 33.0, want: "33"},
		{name: "float fraction", input: 2.5, want: "2.5"},
		{name: "float32", input: float32(0.25), want: "0.25"},
		{name: "error", input: errors.New("bad"), want: "bad"},
		{name: "slice", input: []int{1, 2}, want: "[1 2]"},
		{name: "presence stringer", input: Null, want: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.input))
		})
	}
}
