// Package symbols is the capability model of resolved declarations.  Every
// symbol is one of a closed set of variants (see Kind); callers are
// polymorphic over the capability interfaces rather than the variants.
package symbols

import (
	"fmt"

	"github.com/stackb/fir-resolve/pkg/fir"
	"github.com/stackb/fir-resolve/pkg/name"
)

// Kind tags the variant of a Symbol.
type Kind int

const (
	KindClass Kind = iota
	KindTypeAlias
	KindClassId
	KindPackage
	KindFunction
	KindProperty

	// NumKinds is the number of symbol variants.
	NumKinds = iota
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindTypeAlias:
		return "typealias"
	case KindClassId:
		return "classid"
	case KindPackage:
		return "package"
	case KindFunction:
		return "function"
	case KindProperty:
		return "property"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Symbol is a resolved, referenceable handle.
type Symbol interface {
	fmt.Stringer
	Kind() Kind
	sealed()
}

// OwnerSymbol can own other symbols.
type OwnerSymbol interface {
	Symbol
	owner()
}

// ClassLikeSymbol is a classifier known by its ClassId.
type ClassLikeSymbol interface {
	Symbol
	ClassId() name.ClassId
}

// CallableSymbol is something invocable or referable as a value.  Owner is
// never nil.
type CallableSymbol interface {
	Symbol
	Owner() OwnerSymbol
	Name() name.Name
	CallableId() name.CallableId
}

// VariableSymbol is a callable without a parameter list.
type VariableSymbol interface {
	CallableSymbol
	variable()
}

// FunctionSymbol is a callable that also owns its parameter scope.
type FunctionSymbol interface {
	CallableSymbol
	OwnerSymbol
	// Parameters are the value parameter types in declaration order.  The
	// slice is empty, never nil, for functions without parameters.
	Parameters() []ConeType
}

// FirBasedSymbol wraps exactly one declaration node.
type FirBasedSymbol interface {
	Symbol
	Fir() fir.NamedDeclaration
}

// ConeType is the type of a parameter as seen by resolution.
type ConeType struct {
	Text     string
	Nullable bool
}

// NewConeType converts a TypeRef to a ConeType.
func NewConeType(ref fir.TypeRef) ConeType {
	return ConeType{Text: ref.Text, Nullable: ref.Nullable}
}

// String implements fmt.Stringer
func (t ConeType) String() string {
	return fir.TypeRef{Text: t.Text, Nullable: t.Nullable}.String()
}
