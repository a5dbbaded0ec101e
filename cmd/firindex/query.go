package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/stackb/fir-resolve/pkg/name"
	"github.com/stackb/fir-resolve/pkg/provider"
	"github.com/stackb/fir-resolve/pkg/scopes"
	"github.com/stackb/fir-resolve/pkg/symbols"
)

// dumpConfig prints symbols without pointer addresses so that dumps of two
// runs can be diffed.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                4,
}

// querier answers -query lookups against a provider snapshot.
type querier struct {
	out      io.Writer
	dump     bool
	position scopes.Position
}

// run answers one query.  The forms are
//
//	com/example/Greeter        classifier by ClassId
//	com.example.Greeter.Inner  classifier by dotted name
//	com/example/Greeter#greet  members named greet declared in Greeter
//	com.example#main           top-level members named main of a package
func (q *querier) run(p *provider.FirProvider, query string) error {
	left, member, isMember := strings.Cut(query, "#")
	if isMember {
		return q.members(p, left, name.Name(member))
	}
	return q.classifier(p, query)
}

func (q *querier) classifier(p *provider.FirProvider, query string) error {
	classId, ok := q.lookupClassId(p, query)
	if !ok {
		return fmt.Errorf("%s: classifier not found", query)
	}
	symbol, ok := p.GetSymbolByFqName(classId)
	if !ok {
		return fmt.Errorf("%s: classifier not found", query)
	}
	file, err := p.GetFirClassifierContainerFile(classId)
	if err != nil {
		return err
	}
	fmt.Fprintf(q.out, "%v\t%v\t%s\n", symbol, classId.AsSingleFqName(), file.Path())
	if outer, ok := classId.OuterClassId(); ok {
		fmt.Fprintf(q.out, "  in %v\n", outer)
	}
	for _, n := range p.CallableNames(classId) {
		fmt.Fprintf(q.out, "  %s\n", n)
	}
	q.dumpSymbol(symbol)
	return nil
}

func (q *querier) lookupClassId(p *provider.FirProvider, query string) (name.ClassId, bool) {
	if strings.Contains(query, "/") {
		classId := name.ParseClassId(query)
		_, ok := p.GetFirClassifierByFqName(classId)
		return classId, ok
	}
	if classId, ok := p.ResolveQualifiedName(name.ParseFqName(query)); ok {
		return classId, true
	}
	classId := name.ParseClassId(query)
	_, ok := p.GetFirClassifierByFqName(classId)
	return classId, ok
}

func (q *querier) members(p *provider.FirProvider, owner string, member name.Name) error {
	var scope scopes.Scope
	if classId, ok := q.lookupClassId(p, owner); ok && owner != "" {
		classScope, ok := scopes.NewClassDeclaredMemberScopeOf(p, classId)
		if !ok {
			return fmt.Errorf("%s: %v is not a class", owner, classId)
		}
		scope = classScope
	} else {
		scope = scopes.NewPackageMemberScope(name.ParseFqName(strings.ReplaceAll(owner, "/", ".")), p)
	}

	found := 0
	scope.ProcessClassifiersByName(member, q.position, func(symbol symbols.Symbol) bool {
		found++
		fmt.Fprintf(q.out, "%v\n", symbol)
		q.dumpSymbol(symbol)
		return true
	})
	if found == 0 {
		return fmt.Errorf("%s#%s: no candidates in %v", owner, member, scope)
	}
	return nil
}

func (q *querier) dumpSymbol(symbol symbols.Symbol) {
	if q.dump {
		dumpConfig.Fdump(q.out, symbol)
	}
}

// summary lists the packages and classifiers of the index.
func (q *querier) summary(p *provider.FirProvider) {
	stats := p.Stats()
	fmt.Fprintf(q.out, "%d files, %d packages, %d classifiers, %d callables\n",
		stats.Files, stats.Packages, stats.Classifiers, stats.Callables)
	for _, pkg := range p.Packages(name.Root) {
		fmt.Fprintf(q.out, "package %v\n", pkg)
		for _, n := range p.CallableNames(name.PackageRoot(pkg)) {
			fmt.Fprintf(q.out, "  %s\n", n)
		}
	}
	for _, classId := range p.ClassifierIds() {
		fmt.Fprintf(q.out, "%v\n", classId)
	}
}
