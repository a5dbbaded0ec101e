package symbols

import (
	"fmt"
	"slices"

	"github.com/stackb/fir-resolve/pkg/fir"
	"github.com/stackb/fir-resolve/pkg/name"
)

// ClassSymbol is the symbol of a RegularClass.
type ClassSymbol struct {
	classId name.ClassId
	fir     *fir.RegularClass
}

// NewClassSymbol constructs a new ClassSymbol.
func NewClassSymbol(classId name.ClassId, klass *fir.RegularClass) *ClassSymbol {
	return &ClassSymbol{classId: classId, fir: klass}
}

func (s *ClassSymbol) Kind() Kind                { return KindClass }
func (s *ClassSymbol) ClassId() name.ClassId     { return s.classId }
func (s *ClassSymbol) Fir() fir.NamedDeclaration { return s.fir }

// Class returns the wrapped declaration.
func (s *ClassSymbol) Class() *fir.RegularClass { return s.fir }

// String implements fmt.Stringer
func (s *ClassSymbol) String() string { return fmt.Sprintf("class %v", s.classId) }

func (*ClassSymbol) sealed() {}
func (*ClassSymbol) owner()  {}

// TypeAliasSymbol is the symbol of a TypeAlias.  Aliases have no members and
// therefore do not own symbols.
type TypeAliasSymbol struct {
	classId name.ClassId
	fir     *fir.TypeAlias
}

// NewTypeAliasSymbol constructs a new TypeAliasSymbol.
func NewTypeAliasSymbol(classId name.ClassId, alias *fir.TypeAlias) *TypeAliasSymbol {
	return &TypeAliasSymbol{classId: classId, fir: alias}
}

func (s *TypeAliasSymbol) Kind() Kind                { return KindTypeAlias }
func (s *TypeAliasSymbol) ClassId() name.ClassId     { return s.classId }
func (s *TypeAliasSymbol) Fir() fir.NamedDeclaration { return s.fir }

// String implements fmt.Stringer
func (s *TypeAliasSymbol) String() string { return fmt.Sprintf("typealias %v", s.classId) }

func (*TypeAliasSymbol) sealed() {}

// ClassIdSymbol is a classifier known only by identity, for example one
// provided by a library rather than by a recorded file.
type ClassIdSymbol struct {
	classId name.ClassId
}

// NewClassIdSymbol constructs a new ClassIdSymbol.
func NewClassIdSymbol(classId name.ClassId) *ClassIdSymbol {
	return &ClassIdSymbol{classId: classId}
}

func (s *ClassIdSymbol) Kind() Kind            { return KindClassId }
func (s *ClassIdSymbol) ClassId() name.ClassId { return s.classId }

// String implements fmt.Stringer
func (s *ClassIdSymbol) String() string { return fmt.Sprintf("classifier %v", s.classId) }

func (*ClassIdSymbol) sealed() {}
func (*ClassIdSymbol) owner()  {}

// PackageSymbol is the synthetic owner of top-level callables.
type PackageSymbol struct {
	fqName name.FqName
}

// NewPackageSymbol constructs a new PackageSymbol.
func NewPackageSymbol(fqName name.FqName) *PackageSymbol {
	return &PackageSymbol{fqName: fqName}
}

func (s *PackageSymbol) Kind() Kind                 { return KindPackage }
func (s *PackageSymbol) PackageFqName() name.FqName { return s.fqName }

// String implements fmt.Stringer
func (s *PackageSymbol) String() string { return fmt.Sprintf("package %v", s.fqName) }

func (*PackageSymbol) sealed() {}
func (*PackageSymbol) owner()  {}

// NamedFunctionSymbol is the symbol of a NamedFunction or a Constructor.
type NamedFunctionSymbol struct {
	callableId name.CallableId
	ownerSym   OwnerSymbol
	fir        fir.Function
	parameters []ConeType
}

// NewNamedFunctionSymbol constructs a new NamedFunctionSymbol.
func NewNamedFunctionSymbol(callableId name.CallableId, owner OwnerSymbol, fn fir.Function) *NamedFunctionSymbol {
	params := make([]ConeType, 0, len(fn.ValueParameters()))
	for _, p := range fn.ValueParameters() {
		params = append(params, NewConeType(p.ReturnType()))
	}
	return &NamedFunctionSymbol{
		callableId: callableId,
		ownerSym:   owner,
		fir:        fn,
		parameters: params,
	}
}

func (s *NamedFunctionSymbol) Kind() Kind                  { return KindFunction }
func (s *NamedFunctionSymbol) Owner() OwnerSymbol          { return s.ownerSym }
func (s *NamedFunctionSymbol) Name() name.Name             { return s.callableId.CallableName }
func (s *NamedFunctionSymbol) CallableId() name.CallableId { return s.callableId }
func (s *NamedFunctionSymbol) Parameters() []ConeType      { return slices.Clone(s.parameters) }
func (s *NamedFunctionSymbol) Fir() fir.NamedDeclaration   { return s.fir }

// String implements fmt.Stringer
func (s *NamedFunctionSymbol) String() string {
	return fmt.Sprintf("fun %v%v", s.callableId, s.parameters)
}

func (*NamedFunctionSymbol) sealed() {}
func (*NamedFunctionSymbol) owner()  {}

// PropertySymbol is the symbol of a Property.
type PropertySymbol struct {
	callableId name.CallableId
	ownerSym   OwnerSymbol
	fir        *fir.Property
}

// NewPropertySymbol constructs a new PropertySymbol.
func NewPropertySymbol(callableId name.CallableId, owner OwnerSymbol, prop *fir.Property) *PropertySymbol {
	return &PropertySymbol{callableId: callableId, ownerSym: owner, fir: prop}
}

func (s *PropertySymbol) Kind() Kind                  { return KindProperty }
func (s *PropertySymbol) Owner() OwnerSymbol          { return s.ownerSym }
func (s *PropertySymbol) Name() name.Name             { return s.callableId.CallableName }
func (s *PropertySymbol) CallableId() name.CallableId { return s.callableId }
func (s *PropertySymbol) Fir() fir.NamedDeclaration   { return s.fir }

// String implements fmt.Stringer
func (s *PropertySymbol) String() string { return fmt.Sprintf("val %v", s.callableId) }

func (*PropertySymbol) sealed()   {}
func (*PropertySymbol) variable() {}

var (
	_ OwnerSymbol     = (*ClassSymbol)(nil)
	_ ClassLikeSymbol = (*ClassSymbol)(nil)
	_ FirBasedSymbol  = (*ClassSymbol)(nil)
	_ ClassLikeSymbol = (*TypeAliasSymbol)(nil)
	_ FirBasedSymbol  = (*TypeAliasSymbol)(nil)
	_ OwnerSymbol     = (*ClassIdSymbol)(nil)
	_ ClassLikeSymbol = (*ClassIdSymbol)(nil)
	_ OwnerSymbol     = (*PackageSymbol)(nil)
	_ FunctionSymbol  = (*NamedFunctionSymbol)(nil)
	_ FirBasedSymbol  = (*NamedFunctionSymbol)(nil)
	_ VariableSymbol  = (*PropertySymbol)(nil)
	_ FirBasedSymbol  = (*PropertySymbol)(nil)
)
