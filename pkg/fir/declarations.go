// Package fir models the declaration tree handed to the index by the parser.
// Nodes are immutable once constructed; the index only references them.
package fir

import (
	"fmt"

	"github.com/stackb/fir-resolve/pkg/name"
)

// Declaration is implemented by every declaration node.  The set of
// implementations is closed.
type Declaration interface {
	fmt.Stringer
	declarationNode()
}

// NamedDeclaration is a declaration with a simple name.
type NamedDeclaration interface {
	Declaration
	Name() name.Name
}

// ClassLikeDeclaration is a classifier: a class or a type alias.
type ClassLikeDeclaration interface {
	NamedDeclaration
	classLike()
}

// CallableMember is a function, constructor or property.
type CallableMember interface {
	NamedDeclaration
	callableMember()
}

// ClassKind distinguishes the flavours of RegularClass.
type ClassKind int

const (
	Class ClassKind = iota
	Interface
	Object
	EnumClass
	AnnotationClass
)

func (k ClassKind) String() string {
	switch k {
	case Class:
		return "class"
	case Interface:
		return "interface"
	case Object:
		return "object"
	case EnumClass:
		return "enum class"
	case AnnotationClass:
		return "annotation class"
	default:
		return fmt.Sprintf("ClassKind(%d)", int(k))
	}
}

// TypeRef is an unresolved reference to a type as written in source.
type TypeRef struct {
	Text     string
	Nullable bool
}

// String implements fmt.Stringer
func (t TypeRef) String() string {
	if t.Nullable {
		return t.Text + "?"
	}
	return t.Text
}

// RegularClass is a class, interface, object, enum or annotation class.
type RegularClass struct {
	name         name.Name
	kind         ClassKind
	isLocal      bool
	supertypes   []TypeRef
	declarations []Declaration
}

// NewRegularClass constructs a class with the given member declarations.
func NewRegularClass(n name.Name, kind ClassKind, supertypes []TypeRef, declarations ...Declaration) *RegularClass {
	return &RegularClass{
		name:         n,
		kind:         kind,
		supertypes:   supertypes,
		declarations: declarations,
	}
}

// NewLocalClass constructs a local or anonymous class.
func NewLocalClass(n name.Name, kind ClassKind, supertypes []TypeRef, declarations ...Declaration) *RegularClass {
	c := NewRegularClass(n, kind, supertypes, declarations...)
	c.isLocal = true
	return c
}

func (c *RegularClass) Name() name.Name { return c.name }

func (c *RegularClass) ClassKind() ClassKind { return c.kind }

func (c *RegularClass) IsLocal() bool { return c.isLocal }

func (c *RegularClass) Supertypes() []TypeRef { return c.supertypes }

// Declarations returns the direct member declarations in source order.
func (c *RegularClass) Declarations() []Declaration { return c.declarations }

// String implements fmt.Stringer
func (c *RegularClass) String() string {
	return fmt.Sprintf("%v %s", c.kind, c.name)
}

func (*RegularClass) declarationNode() {}
func (*RegularClass) classLike()       {}

// TypeAlias is a `typealias Name = Type` declaration.
type TypeAlias struct {
	name         name.Name
	expandedType TypeRef
}

// NewTypeAlias constructs a type alias.
func NewTypeAlias(n name.Name, expandedType TypeRef) *TypeAlias {
	return &TypeAlias{name: n, expandedType: expandedType}
}

func (a *TypeAlias) Name() name.Name { return a.name }

func (a *TypeAlias) ExpandedType() TypeRef { return a.expandedType }

// String implements fmt.Stringer
func (a *TypeAlias) String() string {
	return fmt.Sprintf("typealias %s = %v", a.name, a.expandedType)
}

func (*TypeAlias) declarationNode() {}
func (*TypeAlias) classLike()       {}

// ValueParameter is a parameter of a function or constructor.
type ValueParameter struct {
	name       name.Name
	returnType TypeRef
}

// NewValueParameter constructs a parameter.
func NewValueParameter(n name.Name, typ TypeRef) *ValueParameter {
	return &ValueParameter{name: n, returnType: typ}
}

func (p *ValueParameter) Name() name.Name { return p.name }

func (p *ValueParameter) ReturnType() TypeRef { return p.returnType }

// String implements fmt.Stringer
func (p *ValueParameter) String() string {
	return fmt.Sprintf("%s: %v", p.name, p.returnType)
}

// Function is implemented by callables that take value parameters.
type Function interface {
	CallableMember
	ValueParameters() []*ValueParameter
}

// NamedFunction is a `fun` declaration.
type NamedFunction struct {
	name            name.Name
	valueParameters []*ValueParameter
	returnType      TypeRef
}

// NewNamedFunction constructs a function.
func NewNamedFunction(n name.Name, returnType TypeRef, valueParameters ...*ValueParameter) *NamedFunction {
	return &NamedFunction{name: n, returnType: returnType, valueParameters: valueParameters}
}

func (f *NamedFunction) Name() name.Name { return f.name }

func (f *NamedFunction) ReturnType() TypeRef { return f.returnType }

func (f *NamedFunction) ValueParameters() []*ValueParameter { return f.valueParameters }

// String implements fmt.Stringer
func (f *NamedFunction) String() string {
	return fmt.Sprintf("fun %s%s", f.name, formatParameters(f.valueParameters))
}

func (*NamedFunction) declarationNode() {}
func (*NamedFunction) callableMember()  {}

// Constructor is a primary or secondary constructor.  Its name is always
// name.Constructor.
type Constructor struct {
	valueParameters []*ValueParameter
}

// NewConstructor constructs a constructor.
func NewConstructor(valueParameters ...*ValueParameter) *Constructor {
	return &Constructor{valueParameters: valueParameters}
}

func (c *Constructor) Name() name.Name { return name.Constructor }

func (c *Constructor) ValueParameters() []*ValueParameter { return c.valueParameters }

// String implements fmt.Stringer
func (c *Constructor) String() string {
	return "constructor" + formatParameters(c.valueParameters)
}

func (*Constructor) declarationNode() {}
func (*Constructor) callableMember()  {}

// Property is a `val` or `var` declaration.
type Property struct {
	name       name.Name
	returnType TypeRef
	isVar      bool
}

// NewProperty constructs a property.
func NewProperty(n name.Name, returnType TypeRef, isVar bool) *Property {
	return &Property{name: n, returnType: returnType, isVar: isVar}
}

func (p *Property) Name() name.Name { return p.name }

func (p *Property) ReturnType() TypeRef { return p.returnType }

func (p *Property) IsVar() bool { return p.isVar }

// String implements fmt.Stringer
func (p *Property) String() string {
	keyword := "val"
	if p.isVar {
		keyword = "var"
	}
	return fmt.Sprintf("%s %s: %v", keyword, p.name, p.returnType)
}

func (*Property) declarationNode() {}
func (*Property) callableMember()  {}

func formatParameters(params []*ValueParameter) string {
	s := "("
	for i, p := range params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}
