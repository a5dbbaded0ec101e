package scopes

import (
	"fmt"

	"github.com/stackb/fir-resolve/pkg/name"
	"github.com/stackb/fir-resolve/pkg/symbols"
)

// Position tags the syntactic position of the name being resolved.  Scopes
// pass it through without interpreting it.
type Position int

const (
	PositionOther Position = iota
	// PositionType is a type reference.
	PositionType
	// PositionValue is a value (property or object) reference.
	PositionValue
	// PositionCall is the callee of a call expression.
	PositionCall
)

func (p Position) String() string {
	switch p {
	case PositionOther:
		return "other"
	case PositionType:
		return "type"
	case PositionValue:
		return "value"
	case PositionCall:
		return "call"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// ParsePosition is the inverse of Position.String.
func ParsePosition(s string) (Position, error) {
	switch s {
	case "", "other":
		return PositionOther, nil
	case "type":
		return PositionType, nil
	case "value":
		return PositionValue, nil
	case "call":
		return PositionCall, nil
	}
	return PositionOther, fmt.Errorf("unknown position %q (want one of type, value, call, other)", s)
}

// Processor is called once per candidate symbol.  Returning false stops the
// enumeration.
type Processor func(symbol symbols.Symbol) bool

// Scope is a name-indexed view of candidate symbols.
type Scope interface {
	fmt.Stringer

	// ProcessClassifiersByName calls processor for each candidate named n, in
	// a deterministic order.  It returns false if the processor stopped the
	// enumeration and true otherwise, including when there are no candidates.
	ProcessClassifiersByName(n name.Name, position Position, processor Processor) bool
}

// SymbolProvider is the part of provider.SymbolProvider that scopes need.
type SymbolProvider interface {
	GetSymbolByFqName(classId name.ClassId) (symbols.ClassLikeSymbol, bool)
	GetCallableSymbols(owner name.ClassId, n name.Name) []symbols.CallableSymbol
}

// Collect returns all candidates for n in scope.
func Collect(scope Scope, n name.Name, position Position) []symbols.Symbol {
	var got []symbols.Symbol
	scope.ProcessClassifiersByName(n, position, func(symbol symbols.Symbol) bool {
		got = append(got, symbol)
		return true
	})
	return got
}

// First returns the first candidate for n in scope.
func First(scope Scope, n name.Name, position Position) (symbols.Symbol, bool) {
	var first symbols.Symbol
	scope.ProcessClassifiersByName(n, position, func(symbol symbols.Symbol) bool {
		first = symbol
		return false
	})
	return first, first != nil
}
