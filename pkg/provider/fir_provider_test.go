package provider_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stackb/fir-resolve/pkg/fir"
	"github.com/stackb/fir-resolve/pkg/name"
	"github.com/stackb/fir-resolve/pkg/provider"
	"github.com/stackb/fir-resolve/pkg/symbols"
	"github.com/stackb/fir-resolve/pkg/testutil"
)

var (
	unit   = fir.TypeRef{Text: "Unit"}
	intRef = fir.TypeRef{Text: "Int"}
)

// sampleFile is
//
//	package pkg
//	class A {
//	    fun foo()
//	    fun foo(x: Int)
//	    class B
//	}
type sampleFile struct {
	file    *fir.File
	a, b    *fir.RegularClass
	foo0    *fir.NamedFunction
	foo1    *fir.NamedFunction
	classA  name.ClassId
	classAB name.ClassId
}

func newSampleFile() *sampleFile {
	s := &sampleFile{
		foo0:    fir.NewNamedFunction("foo", unit),
		foo1:    fir.NewNamedFunction("foo", unit, fir.NewValueParameter("x", intRef)),
		b:       fir.NewRegularClass("B", fir.Class, nil),
		classA:  name.TopLevel("pkg", "A"),
		classAB: name.TopLevel("pkg", "A").CreateNestedClassId("B"),
	}
	s.a = fir.NewRegularClass("A", fir.Class, nil, s.foo0, s.foo1, s.b)
	s.file = fir.NewFile("pkg/A.kt", "pkg", s.a)
	return s
}

func newProvider(t *testing.T, files ...*fir.File) *provider.FirProvider {
	p := provider.NewFirProvider(provider.WithLogger(testutil.NewTestLogger(t)))
	for _, file := range files {
		p.RecordFile(file)
	}
	return p
}

func symbolStrings[T symbols.Symbol](syms []T) []string {
	var got []string
	for _, s := range syms {
		got = append(got, s.String())
	}
	return got
}

func TestRecordFile(t *testing.T) {
	s := newSampleFile()
	p := newProvider(t, s.file)

	var ids []string
	for _, classId := range p.ClassifierIds() {
		ids = append(ids, classId.String())
	}
	if diff := cmp.Diff([]string{"pkg/A", "pkg/A.B"}, ids); diff != "" {
		t.Errorf("classifiers (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]name.Name{"foo"}, p.CallableNames(s.classA)); diff != "" {
		t.Errorf("callables (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(provider.Stats{Files: 1, Packages: 1, Classifiers: 2, Callables: 2}, p.Stats()); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}

	decl, ok := p.GetFirClassifierByFqName(s.classAB)
	if !ok || decl != fir.ClassLikeDeclaration(s.b) {
		t.Errorf("A.B: want %v, got %v (%t)", s.b, decl, ok)
	}
	files := p.GetFirFilesByPackage("pkg")
	if len(files) != 1 || files[0] != s.file {
		t.Errorf("files of pkg: got %v", files)
	}
	if err := p.CheckConsistency(); err != nil {
		t.Errorf("consistency: %v", err)
	}
}

func TestGetCallableSymbolsOverloads(t *testing.T) {
	s := newSampleFile()
	p := newProvider(t, s.file)

	got := p.GetCallableSymbols(s.classA, "foo")
	if len(got) != 2 {
		t.Fatalf("want 2 candidates, got %v", symbolStrings(got))
	}
	for i, want := range []fir.NamedDeclaration{s.foo0, s.foo1} {
		based, ok := got[i].(symbols.FirBasedSymbol)
		if !ok || based.Fir() != want {
			t.Errorf("candidate %d: want %v, got %v", i, want, got[i])
		}
	}

	classSymbol, ok := p.GetSymbolByFqName(s.classA)
	if !ok {
		t.Fatal("A: no symbol")
	}
	for _, symbol := range got {
		if symbol.Owner() != classSymbol.(symbols.OwnerSymbol) {
			t.Errorf("%v: want owner %v, got %v", symbol, classSymbol, symbol.Owner())
		}
		if symbol.CallableId() != name.NewCallableId(s.classA, "foo") {
			t.Errorf("%v: wrong callable id %v", symbol, symbol.CallableId())
		}
	}

	fn, ok := got[1].(symbols.FunctionSymbol)
	if !ok {
		t.Fatalf("want function symbol, got %T", got[1])
	}
	if diff := cmp.Diff([]symbols.ConeType{{Text: "Int"}}, fn.Parameters()); diff != "" {
		t.Errorf("parameters (-want +got):\n%s", diff)
	}
}

func TestGetCallableSymbolsIsIdempotent(t *testing.T) {
	s := newSampleFile()
	p := newProvider(t, s.file)

	first := p.GetCallableSymbols(s.classA, "foo")
	second := p.GetCallableSymbols(s.classA, "foo")
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d, %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("candidate %d: symbol identity changed", i)
		}
	}

	// mutating the result must not affect the cache
	first[0] = nil
	if third := p.GetCallableSymbols(s.classA, "foo"); third[0] == nil {
		t.Error("cached result was mutated by a caller")
	}

	a1, _ := p.GetSymbolByFqName(s.classA)
	a2, _ := p.GetSymbolByFqName(s.classA)
	if a1 != a2 {
		t.Error("classifier symbol identity changed")
	}
}

func TestGetCallableSymbolsAfterFurtherRecording(t *testing.T) {
	p := newProvider(t, fir.NewFile("a.kt", "pkg", fir.NewNamedFunction("foo", unit)))
	root := name.PackageRoot("pkg")

	before := p.GetCallableSymbols(root, "foo")
	if diff := cmp.Diff([]string{"fun pkg/foo[]"}, symbolStrings(before)); diff != "" {
		t.Fatalf("before (-want +got):\n%s", diff)
	}

	p.RecordFile(fir.NewFile("b.kt", "pkg", fir.NewNamedFunction("foo", unit, fir.NewValueParameter("x", intRef))))

	after := p.GetCallableSymbols(root, "foo")
	if diff := cmp.Diff([]string{"fun pkg/foo[]", "fun pkg/foo[Int]"}, symbolStrings(after)); diff != "" {
		t.Fatalf("after (-want +got):\n%s", diff)
	}
	if after[0] != before[0] {
		t.Error("earlier candidate lost its symbol")
	}
}

func TestGetCallableSymbolsEmpty(t *testing.T) {
	s := newSampleFile()
	p := newProvider(t, s.file)

	for testName, tc := range map[string]struct {
		owner name.ClassId
		name  name.Name
	}{
		"unknown name":  {owner: s.classA, name: "bar"},
		"unknown owner": {owner: name.TopLevel("pkg", "Z"), name: "foo"},
		"nested owner":  {owner: s.classAB, name: "foo"},
		"package root":  {owner: name.PackageRoot("pkg"), name: "foo"},
	} {
		t.Run(testName, func(t *testing.T) {
			if got := p.GetCallableSymbols(tc.owner, tc.name); len(got) != 0 {
				t.Errorf("want no candidates, got %v", symbolStrings(got))
			}
		})
	}
}

func TestNestedClassesUseTheEnclosingContainer(t *testing.T) {
	inC := fir.NewNamedFunction("inC", unit)
	inB := fir.NewNamedFunction("inB", unit)
	afterB := fir.NewNamedFunction("afterB", unit)
	inD := fir.NewProperty("inD", intRef, false)
	file := fir.NewFile("pkg/A.kt", "pkg",
		fir.NewRegularClass("A", fir.Class, nil,
			fir.NewRegularClass("B", fir.Class, nil,
				fir.NewRegularClass("C", fir.Class, nil, inC),
				inB,
			),
			afterB,
			fir.NewRegularClass("D", fir.Object, nil, inD),
		),
		fir.NewTypeAlias("Alias", intRef),
	)
	p := newProvider(t, file)

	var ids []string
	for _, classId := range p.ClassifierIds() {
		ids = append(ids, classId.String())
	}
	if diff := cmp.Diff([]string{"pkg/A", "pkg/A.B", "pkg/A.B.C", "pkg/A.D", "pkg/Alias"}, ids); diff != "" {
		t.Errorf("classifiers (-want +got):\n%s", diff)
	}

	a := name.TopLevel("pkg", "A")
	for want, id := range map[fir.CallableMember]name.CallableId{
		inC:    name.NewCallableId(a.CreateNestedClassId("B").CreateNestedClassId("C"), "inC"),
		inB:    name.NewCallableId(a.CreateNestedClassId("B"), "inB"),
		afterB: name.NewCallableId(a, "afterB"),
		inD:    name.NewCallableId(a.CreateNestedClassId("D"), "inD"),
	} {
		got := p.GetCallableSymbols(id.ClassId, id.CallableName)
		if len(got) != 1 || got[0].(symbols.FirBasedSymbol).Fir() != want {
			t.Errorf("%v: want %v, got %v", id, want, symbolStrings(got))
		}
	}

	if _, ok := p.GetCallableSymbols(a.CreateNestedClassId("D"), "inD")[0].(symbols.VariableSymbol); !ok {
		t.Error("property should be a variable symbol")
	}
}

func TestTopLevelCallablesArePackageOwned(t *testing.T) {
	main := fir.NewNamedFunction("main", unit)
	p := newProvider(t, fir.NewFile("app/Main.kt", "app", main))

	got := p.GetCallableSymbols(name.PackageRoot("app"), "main")
	if len(got) != 1 {
		t.Fatalf("want 1 candidate, got %v", symbolStrings(got))
	}
	owner, ok := got[0].Owner().(*symbols.PackageSymbol)
	if !ok {
		t.Fatalf("want package owner, got %T", got[0].Owner())
	}
	if owner.PackageFqName() != "app" {
		t.Errorf("owner package: got %v", owner.PackageFqName())
	}
	if got[0].String() != "fun app/main[]" {
		t.Errorf("unexpected symbol %v", got[0])
	}
}

func TestMemberCallablesAreClassOwned(t *testing.T) {
	p := newProvider(t, fir.NewFile("x.kt", "x",
		fir.NewRegularClass("K", fir.Class, nil, fir.NewNamedFunction("f", unit)),
	))
	got := p.GetCallableSymbols(name.TopLevel("x", "K"), "f")
	if len(got) != 1 {
		t.Fatalf("want 1, got %d", len(got))
	}
	if got[0].Owner().Kind() != symbols.KindClass {
		t.Errorf("want class owner, got %v", got[0].Owner().Kind())
	}
}

func TestFilesAccumulateInRecordingOrder(t *testing.T) {
	f1 := fir.NewFile("pkg/One.kt", "pkg", fir.NewNamedFunction("f", unit))
	f2 := fir.NewFile("pkg/Two.kt", "pkg", fir.NewNamedFunction("f", unit, fir.NewValueParameter("x", intRef)))
	f3 := fir.NewFile("other/Three.kt", "other")
	p := newProvider(t, f1, f2, f3)

	got := p.GetFirFilesByPackage("pkg")
	if len(got) != 2 || got[0] != f1 || got[1] != f2 {
		t.Errorf("want [%v %v], got %v", f1, f2, got)
	}
	if got := p.GetFirFilesByPackage("missing"); len(got) != 0 {
		t.Errorf("want no files, got %v", got)
	}

	candidates := p.GetCallableSymbols(name.PackageRoot("pkg"), "f")
	if diff := cmp.Diff([]string{"fun pkg/f[]", "fun pkg/f[Int]"}, symbolStrings(candidates)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRedeclaredClassifierLatestWins(t *testing.T) {
	first := fir.NewRegularClass("A", fir.Class, nil)
	second := fir.NewRegularClass("A", fir.Interface, nil)
	f1 := fir.NewFile("one.kt", "pkg", first)
	f2 := fir.NewFile("two.kt", "pkg", second)
	p := newProvider(t, f1, f2)

	classId := name.TopLevel("pkg", "A")
	decl, _ := p.GetFirClassifierByFqName(classId)
	if decl != fir.ClassLikeDeclaration(second) {
		t.Errorf("want %v, got %v", second, decl)
	}
	file, err := p.GetFirClassifierContainerFile(classId)
	if err != nil {
		t.Fatal(err)
	}
	if file != f2 {
		t.Errorf("container: want %v, got %v", f2, file)
	}
}

func TestGetFirClassifierContainerFile(t *testing.T) {
	s := newSampleFile()
	p := newProvider(t, s.file)

	for _, classId := range []name.ClassId{s.classA, s.classAB} {
		file, err := p.GetFirClassifierContainerFile(classId)
		if err != nil {
			t.Fatalf("%v: %v", classId, err)
		}
		if file != s.file {
			t.Errorf("%v: want %v, got %v", classId, s.file, file)
		}
	}

	_, err := p.GetFirClassifierContainerFile(name.TopLevel("pkg", "Missing"))
	var internal *provider.InternalError
	if !errors.As(err, &internal) {
		t.Fatalf("want InternalError, got %v", err)
	}
	testutil.ExpectError(t, errors.New("internal error (GetFirClassifierContainerFile): couldn't find container for pkg/Missing"), err)
}

func TestGetFirClassifierBySymbol(t *testing.T) {
	s := newSampleFile()
	alias := fir.NewTypeAlias("Names", fir.TypeRef{Text: "List<String>"})
	prop := fir.NewProperty("p", intRef, true)
	s.file = fir.NewFile("pkg/A.kt", "pkg", s.a, alias, prop)
	p := newProvider(t, s.file)

	classSymbol, _ := p.GetSymbolByFqName(s.classA)
	aliasSymbol, _ := p.GetSymbolByFqName(name.TopLevel("pkg", "Names"))
	fooSymbol := p.GetCallableSymbols(s.classA, "foo")[0]
	propSymbol := p.GetCallableSymbols(name.PackageRoot("pkg"), "p")[0]

	for testName, tc := range map[string]struct {
		symbol  symbols.Symbol
		want    fir.NamedDeclaration
		present bool
		wantErr bool
	}{
		"class":            {symbol: classSymbol, want: s.a, present: true},
		"typealias":        {symbol: aliasSymbol, want: alias, present: true},
		"function":         {symbol: fooSymbol, want: s.foo0, present: true},
		"property":         {symbol: propSymbol, want: prop, present: true},
		"known class id":   {symbol: symbols.NewClassIdSymbol(s.classAB), want: s.b, present: true},
		"unknown class id": {symbol: symbols.NewClassIdSymbol(name.TopLevel("pkg", "Z"))},
		"package":          {symbol: symbols.NewPackageSymbol("pkg")},
		"nil":              {wantErr: true},
	} {
		t.Run(testName, func(t *testing.T) {
			got, present, err := p.GetFirClassifierBySymbol(tc.symbol)
			if tc.wantErr {
				var internal *provider.InternalError
				if !errors.As(err, &internal) {
					t.Fatalf("want InternalError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if present != tc.present {
				t.Fatalf("present: want %t, got %t", tc.present, present)
			}
			if got != tc.want {
				t.Errorf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestConcurrentMaterializationIsShared(t *testing.T) {
	s := newSampleFile()
	p := newProvider(t, s.file)

	const readers = 16
	results := make([][]symbols.CallableSymbol, readers)
	classes := make([]symbols.ClassLikeSymbol, readers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = p.GetCallableSymbols(s.classA, "foo")
			classes[i], _ = p.GetSymbolByFqName(s.classAB)
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < readers; i++ {
		if len(results[i]) != 2 {
			t.Fatalf("reader %d: want 2 candidates, got %d", i, len(results[i]))
		}
		for j := range results[i] {
			if results[i][j] != results[0][j] {
				t.Errorf("reader %d candidate %d: distinct symbol", i, j)
			}
		}
		if classes[i] != classes[0] {
			t.Errorf("reader %d: distinct class symbol", i)
		}
	}
}
