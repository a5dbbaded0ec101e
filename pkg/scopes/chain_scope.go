package scopes

import (
	"strings"

	"github.com/stackb/fir-resolve/pkg/name"
)

// ChainScope implements Scope over a chain of scopes, innermost first.
type ChainScope struct {
	chain []Scope
}

func NewChainScope(chain ...Scope) *ChainScope {
	return &ChainScope{
		chain: chain,
	}
}

// ProcessClassifiersByName implements the Scope interface.  Every scope of
// the chain is consulted in order until the processor stops.
func (r *ChainScope) ProcessClassifiersByName(n name.Name, position Position, processor Processor) bool {
	for _, next := range r.chain {
		if !next.ProcessClassifiersByName(n, position, processor) {
			return false
		}
	}
	return true
}

// String implements the fmt.Stringer interface
func (r *ChainScope) String() string {
	var buf strings.Builder
	for _, next := range r.chain {
		buf.WriteString(next.String())
		buf.WriteRune('\n')
	}
	return buf.String()
}
