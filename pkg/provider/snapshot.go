package provider

import (
	"slices"

	"github.com/stackb/fir-resolve/pkg/fir"
	"github.com/stackb/fir-resolve/pkg/metrics"
	"github.com/stackb/fir-resolve/pkg/name"
	"github.com/stackb/fir-resolve/pkg/symbols"
)

// Rebuild returns a new provider holding the files of p with every file whose
// path is in removed dropped and every file replaced by the changed file of
// the same path, in place.  Changed files with a new path follow at the end,
// so a rebuilt snapshot records files in the same order as a fresh load.
// p itself is not modified and may keep serving reads.
//
// Symbols already materialized by p for declarations that survive into the
// new snapshot under the same identity are carried over, so unchanged code
// keeps stable symbol identity across rebuilds.
func (p *FirProvider) Rebuild(changed []*fir.File, removed []string) *FirProvider {
	replacements := make(map[string]*fir.File, len(changed))
	for _, file := range changed {
		replacements[file.Path()] = file
	}
	skip := make(map[string]bool, len(removed))
	for _, path := range removed {
		skip[path] = true
	}

	next := NewFirProvider(WithLogger(p.logger))
	kept := 0
	for _, file := range p.files {
		path := file.Path()
		if skip[path] {
			continue
		}
		if replacement, ok := replacements[path]; ok {
			next.RecordFile(replacement)
			delete(replacements, path)
			skip[path] = true
			continue
		}
		next.RecordFile(file)
		kept++
	}
	for _, file := range changed {
		if _, ok := replacements[file.Path()]; ok {
			next.RecordFile(file)
			delete(replacements, file.Path())
		}
	}
	adopted := next.adoptSymbols(p)

	metrics.RebuildsTotal.Inc()
	p.logger.Debug().
		Int("kept", kept).
		Int("changed", len(changed)).
		Int("removed", len(removed)).
		Int("adopted", adopted).
		Msg("rebuilt provider snapshot")

	return next
}

// adoptSymbols copies the symbols of prev whose declarations p still indexes
// under the same identity.  It must be called before p serves reads.
func (p *FirProvider) adoptSymbols(prev *FirProvider) int {
	adopted := 0
	prev.symbolByDeclaration.Range(func(key, value interface{}) bool {
		decl := key.(fir.Declaration)
		if !p.indexes(decl, value.(symbols.Symbol)) {
			return true
		}
		p.symbolByDeclaration.Store(decl, value)
		adopted++
		return true
	})
	prev.packageSymbols.Range(func(key, value interface{}) bool {
		if _, ok := p.fileMap[key.(name.FqName)]; ok {
			p.packageSymbols.Store(key, value)
		}
		return true
	})
	prev.classIdSymbols.Range(func(key, value interface{}) bool {
		p.classIdSymbols.Store(key, value)
		return true
	})
	return adopted
}

func (p *FirProvider) indexes(decl fir.Declaration, symbol symbols.Symbol) bool {
	switch s := symbol.(type) {
	case symbols.ClassLikeSymbol:
		current, ok := p.classifierMap[s.ClassId()]
		return ok && current == decl
	case symbols.CallableSymbol:
		if !p.ownerStillIndexed(s.Owner()) {
			return false
		}
		member, ok := decl.(fir.CallableMember)
		return ok && slices.Contains(p.callableMap[s.CallableId()], member)
	}
	return false
}

// ownerStillIndexed reports whether a carried-over callable would still point
// at the owner this provider resolves.
func (p *FirProvider) ownerStillIndexed(owner symbols.OwnerSymbol) bool {
	based, ok := owner.(symbols.FirBasedSymbol)
	if !ok {
		return true
	}
	classLike, ok := owner.(symbols.ClassLikeSymbol)
	if !ok {
		return false
	}
	current, ok := p.classifierMap[classLike.ClassId()]
	return ok && fir.Declaration(current) == fir.Declaration(based.Fir())
}
