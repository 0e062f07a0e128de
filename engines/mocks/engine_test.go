package mocks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-polytemplate/platform/data"
	"github.com/robbyt/go-polytemplate/platform/expression"
)

// TestMocksImplementInterfaces verifies at compile time that the mocks
// satisfy the engine capability interfaces.
func TestMocksImplementInterfaces(t *testing.T) {
	t.Parallel()
	var _ expression.Engine = (*Engine)(nil)
	var _ expression.Compiled = (*Compiled)(nil)
}

func TestEngineMock(t *testing.T) {
	t.Parallel()
	compiled := new(Compiled)
	compiled.On("Evaluate", mock.Anything).Return(33, nil)
	compiled.On("Source").Return("10+23")

	engine := new(Engine)
	engine.On("Parse", "10+23").Return(compiled, nil)
	engine.On("Parse", "bad").Return(nil, errors.New("parse failed"))
	engine.On("String").Return("mocks.Engine")

	got, err := engine.Parse("10+23")
	require.NoError(t, err)
	assert.Equal(t, "10+23", got.Source())

	v, err := got.Evaluate(data.NewFrame(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 33, v)

	bad, err := engine.Parse("bad")
	require.Error(t, err)
	assert.Nil(t, bad)
	assert.Equal(t, "mocks.Engine", engine.String())

	engine.AssertExpectations(t)
	compiled.AssertExpectations(t)
}
