package provider

import (
	"github.com/stackb/fir-resolve/pkg/fir"
	"github.com/stackb/fir-resolve/pkg/name"
	"github.com/stackb/fir-resolve/pkg/symbols"
)

// SymbolProvider is the query surface a resolver uses against an index of
// recorded files.  Absence is always reported as an empty result; errors are
// reserved for internal inconsistencies of the index itself.
type SymbolProvider interface {
	// GetFirFilesByPackage returns the files declaring the given package, in
	// recording order.
	GetFirFilesByPackage(pkg name.FqName) []*fir.File
	// GetFirClassifierByFqName returns the class or type alias recorded
	// under classId.
	GetFirClassifierByFqName(classId name.ClassId) (fir.ClassLikeDeclaration, bool)
	// GetFirClassifierContainerFile returns the file that declared classId.
	// It is an internal error to ask for a classifier that was never recorded.
	GetFirClassifierContainerFile(classId name.ClassId) (*fir.File, error)
	// GetSymbolByFqName resolves classId directly to its symbol.
	GetSymbolByFqName(classId name.ClassId) (symbols.ClassLikeSymbol, bool)
	// GetCallableSymbols returns the symbols of the callables named n declared
	// directly in owner, in source order.
	GetCallableSymbols(owner name.ClassId, n name.Name) []symbols.CallableSymbol
	// GetFirClassifierBySymbol recovers the declaration behind a symbol.
	GetFirClassifierBySymbol(symbol symbols.Symbol) (fir.NamedDeclaration, bool, error)
}
