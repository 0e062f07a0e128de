package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/robbyt/go-polytemplate/platform/data"
)

// Compiled is a mock implementation of expression.Compiled for testing purposes.
type Compiled struct {
	mock.Mock
}

// Evaluate is a mock implementation of the Evaluate method.
func (m *Compiled) Evaluate(scope data.Scope) (any, error) {
	args := m.Called(scope)
	return args.Get(0), args.Error(1)
}

// Source returns a mockable expression text.
func (m *Compiled) Source() string {
	args := m.Called()
	return args.String(0)
}
