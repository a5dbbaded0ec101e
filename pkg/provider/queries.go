package provider

import (
	"slices"
	"sort"

	"github.com/stackb/fir-resolve/pkg/fir"
	"github.com/stackb/fir-resolve/pkg/name"
)

// Stats summarizes the size of the index.
type Stats struct {
	Files       int
	Packages    int
	Classifiers int
	Callables   int
}

// Stats returns the current table sizes.  Callables counts declarations,
// not names.
func (p *FirProvider) Stats() Stats {
	callables := 0
	for _, decls := range p.callableMap {
		callables += len(decls)
	}
	return Stats{
		Files:       len(p.files),
		Packages:    len(p.fileMap),
		Classifiers: len(p.classifierMap),
		Callables:   callables,
	}
}

// Files returns all recorded files in recording order.
func (p *FirProvider) Files() []*fir.File {
	return slices.Clone(p.files)
}

// Packages returns the recorded packages equal to or nested under prefix,
// sorted.  The root package is included only for the root prefix.
func (p *FirProvider) Packages(prefix name.FqName) []name.FqName {
	var pkgs []name.FqName
	if prefix.IsRoot() {
		if _, ok := p.fileMap[name.Root]; ok {
			pkgs = append(pkgs, name.Root)
		}
	}
	p.packages.Walk(func(key string, value interface{}) error {
		pkg := value.(name.FqName)
		if pkg.StartsWith(prefix) {
			pkgs = append(pkgs, pkg)
		}
		return nil
	})
	sort.Slice(pkgs, func(i, j int) bool {
		return pkgs[i] < pkgs[j]
	})
	return pkgs
}

// ResolveQualifiedName splits a dotted name such as "com.example.Outer.Inner"
// into package and class path using the recorded packages, preferring the
// longest package.  It returns false if no recorded classifier matches.
func (p *FirProvider) ResolveQualifiedName(fqName name.FqName) (name.ClassId, bool) {
	candidates := []name.FqName{name.Root}
	p.packages.WalkPath(string(fqName), func(key string, value interface{}) error {
		candidates = append(candidates, value.(name.FqName))
		return nil
	})
	for i := len(candidates) - 1; i >= 0; i-- {
		pkg := candidates[i]
		if pkg == fqName {
			continue
		}
		rel := fqName
		if !pkg.IsRoot() {
			rel = fqName[len(pkg)+1:]
		}
		classId := name.NewClassId(pkg, rel, false)
		if _, ok := p.classifierMap[classId]; ok {
			return classId, true
		}
	}
	return name.ClassId{}, false
}

// ClassifierIds returns the identities of all recorded classifiers, sorted by
// their string form.
func (p *FirProvider) ClassifierIds() []name.ClassId {
	ids := make([]name.ClassId, 0, len(p.classifierMap))
	for classId := range p.classifierMap {
		ids = append(ids, classId)
	}
	sortClassIds(ids)
	return ids
}

// CallableNames returns the sorted names of the callables declared directly
// in owner.
func (p *FirProvider) CallableNames(owner name.ClassId) []name.Name {
	var names []name.Name
	for id := range p.callableMap {
		if id.ClassId == owner {
			names = append(names, id.CallableName)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i] < names[j]
	})
	return names
}
