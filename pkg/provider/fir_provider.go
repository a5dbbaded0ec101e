package provider

import (
	"errors"
	"log"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dghubble/trie"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/stackb/fir-resolve/pkg/collections"
	"github.com/stackb/fir-resolve/pkg/fir"
	"github.com/stackb/fir-resolve/pkg/metrics"
	"github.com/stackb/fir-resolve/pkg/name"
	"github.com/stackb/fir-resolve/pkg/symbols"
)

// GetFirClassifierBySymbol switches over every symbols.Kind.  This fails to
// compile when a kind is added or removed until that switch is updated.
var _ = [1]struct{}{}[symbols.NumKinds-6]

// Option configures a FirProvider.
type Option func(*FirProvider)

// WithLogger sets the logger.  The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *FirProvider) {
		p.logger = logger
	}
}

// FirProvider indexes recorded files by package, classifier identity and
// callable name, and materializes declarations into symbols on demand.
//
// A provider has a write phase (RecordFile, single writer) followed by a read
// phase in which every query may run concurrently.  Recording new files into
// a provider that is being read is not supported; use Rebuild to derive a new
// snapshot instead.
type FirProvider struct {
	logger zerolog.Logger

	files                      []*fir.File
	fileMap                    map[name.FqName][]*fir.File
	packages                   *trie.PathTrie
	classifierMap              map[name.ClassId]fir.ClassLikeDeclaration
	classifierContainerFileMap map[name.ClassId]*fir.File
	callableMap                map[name.CallableId][]fir.CallableMember

	// symbolByDeclaration maps a fir.Declaration to its one symbol.
	symbolByDeclaration sync.Map
	// callableSymbols maps a name.CallableId to its []symbols.CallableSymbol.
	callableSymbols sync.Map
	// packageSymbols maps a name.FqName to its *symbols.PackageSymbol.
	packageSymbols sync.Map
	// classIdSymbols maps a name.ClassId to its *symbols.ClassIdSymbol.
	classIdSymbols sync.Map
	flight         singleflight.Group
}

// NewFirProvider constructs an empty provider.
func NewFirProvider(options ...Option) *FirProvider {
	p := &FirProvider{
		logger:                     zerolog.Nop(),
		fileMap:                    make(map[name.FqName][]*fir.File),
		packages:                   trie.NewPathTrieWithConfig(&trie.PathTrieConfig{Segmenter: fqNameSegmenter}),
		classifierMap:              make(map[name.ClassId]fir.ClassLikeDeclaration),
		classifierContainerFileMap: make(map[name.ClassId]*fir.File),
		callableMap:                make(map[name.CallableId][]fir.CallableMember),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// RecordFile indexes the declarations of file.  Files contributing to the
// same package accumulate in recording order.
func (p *FirProvider) RecordFile(file *fir.File) {
	start := time.Now()
	pkg := file.PackageFqName()

	p.files = append(p.files, file)
	p.fileMap[pkg] = append(p.fileMap[pkg], file)
	if !pkg.IsRoot() {
		p.packages.Put(string(pkg), pkg)
	}

	r := &fileRecorder{provider: p, file: file}
	r.containers.Push(name.PackageRoot(pkg))
	file.AcceptChildren(r)

	metrics.FilesRecordedTotal.Inc()
	metrics.CallablesRecordedTotal.Add(float64(r.callables))
	metrics.RecordFileDuration.Observe(time.Since(start).Seconds())

	p.logger.Debug().
		Str("file", file.Path()).
		Stringer("package", pkg).
		Int("classifiers", r.classifiers).
		Int("callables", r.callables).
		Msg("recorded file")
}

// fileRecorder walks one file.  The top of containers is the identity of the
// innermost enclosing class, or the package root at top level.
type fileRecorder struct {
	provider    *FirProvider
	file        *fir.File
	containers  collections.Stack[name.ClassId]
	classifiers int
	callables   int
}

func (r *fileRecorder) container() name.ClassId {
	classId, ok := r.containers.Peek()
	if !ok {
		log.Panicf("fatal (empty container stack): %s", r.file.Path())
	}
	return classId
}

func (r *fileRecorder) childClassId(n name.Name, isLocal bool) name.ClassId {
	parent := r.container()
	return name.NewClassId(parent.PackageFqName, parent.RelativeClassName.Child(n), parent.IsLocal || isLocal)
}

// VisitRegularClass implements part of the fir.Visitor interface.
func (r *fileRecorder) VisitRegularClass(c *fir.RegularClass) {
	classId := r.childClassId(c.Name(), c.IsLocal())
	r.recordClassifier(classId, c, "class")

	r.containers.Push(classId)
	c.AcceptChildren(r)
	r.containers.Pop()
}

// VisitTypeAlias implements part of the fir.Visitor interface.
func (r *fileRecorder) VisitTypeAlias(a *fir.TypeAlias) {
	r.recordClassifier(r.childClassId(a.Name(), false), a, "typealias")
}

// VisitCallableMember implements part of the fir.Visitor interface.
func (r *fileRecorder) VisitCallableMember(m fir.CallableMember) {
	id := name.NewCallableId(r.container(), m.Name())
	r.provider.callableMap[id] = append(r.provider.callableMap[id], m)
	// the candidate list of id grew; symbols of earlier candidates stay
	// shared through symbolByDeclaration
	r.provider.callableSymbols.Delete(id)
	r.callables++
}

// recordClassifier writes both classifier tables together so that every key
// of classifierMap is also present in classifierContainerFileMap.
func (r *fileRecorder) recordClassifier(classId name.ClassId, decl fir.ClassLikeDeclaration, kind string) {
	p := r.provider
	if prev, ok := p.classifierContainerFileMap[classId]; ok {
		p.logger.Warn().
			Stringer("classId", classId).
			Str("previous", prev.Path()).
			Str("file", r.file.Path()).
			Msg("classifier redeclared; the latest declaration wins")
	}
	p.classifierMap[classId] = decl
	p.classifierContainerFileMap[classId] = r.file
	r.classifiers++
	metrics.ClassifiersRecordedTotal.WithLabelValues(kind).Inc()
}

// GetFirFilesByPackage implements part of the SymbolProvider interface.
func (p *FirProvider) GetFirFilesByPackage(pkg name.FqName) []*fir.File {
	return slices.Clone(p.fileMap[pkg])
}

// GetFirClassifierByFqName implements part of the SymbolProvider interface.
func (p *FirProvider) GetFirClassifierByFqName(classId name.ClassId) (fir.ClassLikeDeclaration, bool) {
	decl, ok := p.classifierMap[classId]
	return decl, ok
}

// GetFirClassifierContainerFile implements part of the SymbolProvider
// interface.
func (p *FirProvider) GetFirClassifierContainerFile(classId name.ClassId) (*fir.File, error) {
	file, ok := p.classifierContainerFileMap[classId]
	if !ok {
		return nil, newInternalError("GetFirClassifierContainerFile", "couldn't find container for %v", classId)
	}
	return file, nil
}

// GetSymbolByFqName implements part of the SymbolProvider interface.
func (p *FirProvider) GetSymbolByFqName(classId name.ClassId) (symbols.ClassLikeSymbol, bool) {
	decl, ok := p.classifierMap[classId]
	if !ok {
		return nil, false
	}
	return p.classifierSymbol(classId, decl)
}

// GetCallableSymbols implements part of the SymbolProvider interface.  The
// returned symbols are identical across calls for the lifetime of the
// provider, also under concurrent first requests.
func (p *FirProvider) GetCallableSymbols(owner name.ClassId, n name.Name) []symbols.CallableSymbol {
	id := name.NewCallableId(owner, n)
	declarations, ok := p.callableMap[id]
	if !ok {
		metrics.CallableLookupsTotal.WithLabelValues(metrics.ResultMiss).Inc()
		return nil
	}
	metrics.CallableLookupsTotal.WithLabelValues(metrics.ResultHit).Inc()

	if cached, ok := p.callableSymbols.Load(id); ok {
		return slices.Clone(cached.([]symbols.CallableSymbol))
	}

	v, _, _ := p.flight.Do(id.String(), func() (interface{}, error) {
		if cached, ok := p.callableSymbols.Load(id); ok {
			return cached, nil
		}
		ownerSymbol := p.ownerSymbol(owner)
		result := make([]symbols.CallableSymbol, len(declarations))
		for i, decl := range declarations {
			result[i] = p.callableSymbol(id, ownerSymbol, decl)
		}
		p.callableSymbols.Store(id, result)
		return result, nil
	})

	return slices.Clone(v.([]symbols.CallableSymbol))
}

// GetFirClassifierBySymbol implements part of the SymbolProvider interface.
// Symbols that wrap a declaration return it; symbols known only by ClassId are
// resolved through the classifier table; package symbols have no classifier.
func (p *FirProvider) GetFirClassifierBySymbol(symbol symbols.Symbol) (fir.NamedDeclaration, bool, error) {
	if symbol == nil {
		return nil, false, newInternalError("GetFirClassifierBySymbol", "nil symbol")
	}
	switch symbol.Kind() {
	case symbols.KindClass, symbols.KindTypeAlias, symbols.KindFunction, symbols.KindProperty:
		if based, ok := symbol.(symbols.FirBasedSymbol); ok {
			return based.Fir(), true, nil
		}
	case symbols.KindClassId:
		if classLike, ok := symbol.(symbols.ClassLikeSymbol); ok {
			decl, ok := p.GetFirClassifierByFqName(classLike.ClassId())
			if !ok {
				return nil, false, nil
			}
			return decl, true, nil
		}
	case symbols.KindPackage:
		return nil, false, nil
	}
	return nil, false, newInternalError("GetFirClassifierBySymbol", "unsupported symbol %T (kind %v)", symbol, symbol.Kind())
}

// CheckConsistency verifies that every recorded classifier has a container
// file.
func (p *FirProvider) CheckConsistency() error {
	var errs []error
	for _, classId := range p.ClassifierIds() {
		if _, err := p.GetFirClassifierContainerFile(classId); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *FirProvider) classifierSymbol(classId name.ClassId, decl fir.ClassLikeDeclaration) (symbols.ClassLikeSymbol, bool) {
	if cached, ok := p.symbolByDeclaration.Load(decl); ok {
		return cached.(symbols.ClassLikeSymbol), true
	}
	var symbol symbols.ClassLikeSymbol
	switch t := decl.(type) {
	case *fir.RegularClass:
		symbol = symbols.NewClassSymbol(classId, t)
	case *fir.TypeAlias:
		symbol = symbols.NewTypeAliasSymbol(classId, t)
	default:
		return nil, false
	}
	return p.storeSymbol(decl, symbol).(symbols.ClassLikeSymbol), true
}

func (p *FirProvider) callableSymbol(id name.CallableId, owner symbols.OwnerSymbol, decl fir.CallableMember) symbols.CallableSymbol {
	if cached, ok := p.symbolByDeclaration.Load(decl); ok {
		return cached.(symbols.CallableSymbol)
	}
	var symbol symbols.CallableSymbol
	switch t := decl.(type) {
	case fir.Function:
		symbol = symbols.NewNamedFunctionSymbol(id, owner, t)
	case *fir.Property:
		symbol = symbols.NewPropertySymbol(id, owner, t)
	default:
		log.Panicf("fatal (unknown callable member type): %T", decl)
	}
	return p.storeSymbol(decl, symbol).(symbols.CallableSymbol)
}

// storeSymbol records symbol for decl unless another caller got there first,
// and returns the winner.
func (p *FirProvider) storeSymbol(decl fir.Declaration, symbol symbols.Symbol) symbols.Symbol {
	actual, loaded := p.symbolByDeclaration.LoadOrStore(decl, symbol)
	if !loaded {
		metrics.SymbolsMaterializedTotal.Inc()
	}
	return actual.(symbols.Symbol)
}

// ownerSymbol returns the symbol that owns the callables under classId: the
// package symbol at top level, otherwise the class symbol.
func (p *FirProvider) ownerSymbol(classId name.ClassId) symbols.OwnerSymbol {
	if classId.IsPackageRoot() {
		actual, _ := p.packageSymbols.LoadOrStore(classId.PackageFqName, symbols.NewPackageSymbol(classId.PackageFqName))
		return actual.(*symbols.PackageSymbol)
	}
	if symbol, ok := p.GetSymbolByFqName(classId); ok {
		if owner, ok := symbol.(symbols.OwnerSymbol); ok {
			return owner
		}
	}
	actual, _ := p.classIdSymbols.LoadOrStore(classId, symbols.NewClassIdSymbol(classId))
	return actual.(*symbols.ClassIdSymbol)
}

// fqNameSegmenter segments dotted names.  For example, "a.b.c" -> ("a", 1),
// (".b", 3), (".c", -1) in successive calls.
func fqNameSegmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	end := strings.IndexRune(path[start+1:], '.') // next '.' after 0th rune
	if end == -1 {
		return path[start:], -1
	}
	return path[start : start+end+1], start + end + 1
}

func sortClassIds(ids []name.ClassId) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
