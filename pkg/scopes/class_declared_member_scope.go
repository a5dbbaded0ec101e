package scopes

import (
	"fmt"

	"github.com/stackb/fir-resolve/pkg/fir"
	"github.com/stackb/fir-resolve/pkg/name"
)

// ClassifierProvider can also look up declarations by identity.
type ClassifierProvider interface {
	SymbolProvider
	GetFirClassifierByFqName(classId name.ClassId) (fir.ClassLikeDeclaration, bool)
}

// ClassDeclaredMemberScope exposes the members declared directly in one class.
// Inherited members are the business of other scope layers.
type ClassDeclaredMemberScope struct {
	klass    *fir.RegularClass
	classId  name.ClassId
	provider SymbolProvider
	// declarationsByName groups the member declarations by simple name,
	// preserving source order within each group.
	declarationsByName map[name.Name][]fir.NamedDeclaration
}

// NewClassDeclaredMemberScope builds the scope of klass, whose identity is
// classId.  Symbols are obtained from provider.
func NewClassDeclaredMemberScope(klass *fir.RegularClass, classId name.ClassId, provider SymbolProvider) *ClassDeclaredMemberScope {
	declarationsByName := make(map[name.Name][]fir.NamedDeclaration)
	for _, decl := range klass.Declarations() {
		named, ok := decl.(fir.NamedDeclaration)
		if !ok {
			continue
		}
		declarationsByName[named.Name()] = append(declarationsByName[named.Name()], named)
	}
	return &ClassDeclaredMemberScope{
		klass:              klass,
		classId:            classId,
		provider:           provider,
		declarationsByName: declarationsByName,
	}
}

// NewClassDeclaredMemberScopeOf builds the scope of the class recorded under
// classId.  It returns false if classId is not a recorded class.
func NewClassDeclaredMemberScopeOf(provider ClassifierProvider, classId name.ClassId) (*ClassDeclaredMemberScope, bool) {
	decl, ok := provider.GetFirClassifierByFqName(classId)
	if !ok {
		return nil, false
	}
	klass, ok := decl.(*fir.RegularClass)
	if !ok {
		return nil, false
	}
	return NewClassDeclaredMemberScope(klass, classId, provider), true
}

// ClassId returns the identity of the class.
func (s *ClassDeclaredMemberScope) ClassId() name.ClassId {
	return s.classId
}

// ProcessClassifiersByName implements the Scope interface.  Callable
// candidates for n are requested from the provider once and visited in
// source order; a nested class or alias named n is visited where it is
// declared.
func (s *ClassDeclaredMemberScope) ProcessClassifiersByName(n name.Name, position Position, processor Processor) bool {
	declarations := s.declarationsByName[n]
	if len(declarations) == 0 {
		return true
	}

	var callablesDone, classifierDone bool
	for _, decl := range declarations {
		switch decl.(type) {
		case fir.CallableMember:
			if callablesDone {
				continue
			}
			callablesDone = true
			for _, symbol := range s.provider.GetCallableSymbols(s.classId, n) {
				if !processor(symbol) {
					return false
				}
			}
		case fir.ClassLikeDeclaration:
			if classifierDone {
				continue
			}
			classifierDone = true
			if symbol, ok := s.provider.GetSymbolByFqName(s.nestedClassId(n, decl)); ok {
				if !processor(symbol) {
					return false
				}
			}
		}
	}
	return true
}

// nestedClassId is the identity the provider records decl under.  A local
// class is local even inside a non-local class.
func (s *ClassDeclaredMemberScope) nestedClassId(n name.Name, decl fir.Declaration) name.ClassId {
	classId := s.classId.CreateNestedClassId(n)
	if klass, ok := decl.(*fir.RegularClass); ok && klass.IsLocal() {
		classId.IsLocal = true
	}
	return classId
}

// String implements the fmt.Stringer interface
func (s *ClassDeclaredMemberScope) String() string {
	return fmt.Sprintf("declared members of %v (%d names)", s.classId, len(s.declarationsByName))
}
