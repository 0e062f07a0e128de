package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/robbyt/go-polytemplate/platform/expression"
)

// Engine is a mock implementation of expression.Engine for testing purposes.
type Engine struct {
	mock.Mock
}

// Parse is a mock implementation of the Parse method.
func (m *Engine) Parse(text string) (expression.Compiled, error) {
	args := m.Called(text)
	compiled, _ := args.Get(0).(expression.Compiled)
	return compiled, args.Error(1)
}

// String is a mock implementation of the String method.
func (m *Engine) String() string {
	args := m.Called()
	return args.String(0)
}
