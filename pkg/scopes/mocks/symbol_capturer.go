package mocks

import (
	"testing"

	mock "github.com/stretchr/testify/mock"

	"github.com/stackb/fir-resolve/pkg/symbols"
)

// Processor is a mock of scopes.Processor.  Use Process as the processor.
type Processor struct {
	mock.Mock
}

// Process provides a mock function with given fields: symbol
func (_m *Processor) Process(symbol symbols.Symbol) bool {
	ret := _m.Called(symbol)
	return ret.Bool(0)
}

// NewProcessor creates a new Processor that asserts its expectations on
// cleanup.
func NewProcessor(t *testing.T) *Processor {
	p := &Processor{}
	p.Mock.Test(t)
	t.Cleanup(func() { p.AssertExpectations(t) })
	return p
}

// SymbolCapturer collects every symbol a scope hands to its processor and
// keeps the enumeration going.
type SymbolCapturer struct {
	Processor *Processor
	Got       []symbols.Symbol
}

func (c *SymbolCapturer) capture(symbol symbols.Symbol) bool {
	c.Got = append(c.Got, symbol)
	return true
}

func NewSymbolCapturer(t *testing.T) *SymbolCapturer {
	c := &SymbolCapturer{
		Processor: NewProcessor(t),
	}

	c.Processor.
		On("Process", mock.MatchedBy(c.capture)).
		Maybe().
		Return(true)

	return c
}
