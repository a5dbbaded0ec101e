package scopes

import (
	"fmt"

	"github.com/stackb/fir-resolve/pkg/name"
)

// PackageMemberScope exposes the top-level classifiers and callables of one
// package.
type PackageMemberScope struct {
	pkg      name.FqName
	provider SymbolProvider
}

// NewPackageMemberScope constructs a new PackageMemberScope.
func NewPackageMemberScope(pkg name.FqName, provider SymbolProvider) *PackageMemberScope {
	return &PackageMemberScope{pkg: pkg, provider: provider}
}

// ProcessClassifiersByName implements the Scope interface.  A top-level
// classifier named n comes first, then the top-level callables in source
// order.
func (s *PackageMemberScope) ProcessClassifiersByName(n name.Name, position Position, processor Processor) bool {
	if symbol, ok := s.provider.GetSymbolByFqName(name.TopLevel(s.pkg, n)); ok {
		if !processor(symbol) {
			return false
		}
	}
	for _, symbol := range s.provider.GetCallableSymbols(name.PackageRoot(s.pkg), n) {
		if !processor(symbol) {
			return false
		}
	}
	return true
}

// String implements the fmt.Stringer interface
func (s *PackageMemberScope) String() string {
	return fmt.Sprintf("members of package %v", s.pkg)
}
