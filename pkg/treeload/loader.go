// Package treeload reads declaration trees described in Starlark.  A tree
// file declares its package and declarations with builtins:
//
//	package("com.example")
//
//	klass("Greeter",
//	    constructor(params = [param("name", "String")]),
//	    prop("name", type = "String"),
//	    fun("greet", returns = "String"),
//	    fun("greet", params = [param("other", "Greeter?")], returns = "String"),
//	    klass("Builder", kind = "object"),
//	)
//
//	typealias("Names", "List<String>")
//	fun("main", params = [param("args", "Array<String>")])
//
// Declarations passed to klass are its members; the rest are top-level.
package treeload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"

	"github.com/stackb/fir-resolve/pkg/fir"
	"github.com/stackb/fir-resolve/pkg/name"
)

// ErrDuplicateDeclaration is returned when one declaration value is placed in
// more than one class.
var ErrDuplicateDeclaration = errors.New("declaration used more than once")

// FileExtension is the conventional suffix of tree files.
const FileExtension = ".fir.star"

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger receiving starlark print() output.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// Loader evaluates tree files into fir.File values.
type Loader struct {
	logger zerolog.Logger
}

// NewLoader constructs a new Loader.
func NewLoader(options ...Option) *Loader {
	l := &Loader{logger: zerolog.Nop()}
	for _, option := range options {
		option(l)
	}
	return l
}

// LoadFile reads and evaluates the tree file at filename.  The returned file
// has path filename.
func (l *Loader) LoadFile(filename string) (*fir.File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.Load(filename, f)
}

// Load evaluates the tree read from src.  path becomes the path of the
// returned file.
func (l *Loader) Load(path string, src io.Reader) (*fir.File, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	ev := &evaluation{}
	thread := &starlark.Thread{
		Name: path,
		Print: func(_ *starlark.Thread, msg string) {
			l.logger.Debug().Str("file", path).Msg(msg)
		},
	}
	if _, err := starlark.ExecFile(thread, path, bytes.NewReader(data), ev.predeclared()); err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return nil, fmt.Errorf("%s: %w", path, backtraceError{evalErr})
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var top []fir.Declaration
	for _, v := range ev.created {
		if !v.consumed {
			top = append(top, v.decl)
		}
	}
	return fir.NewFile(path, ev.pkg, top...), nil
}

// backtraceError prints the starlark backtrace of an evaluation error and
// unwraps to its cause.
type backtraceError struct {
	*starlark.EvalError
}

func (e backtraceError) Error() string {
	return e.Backtrace()
}

// evaluation is the state of one tree file evaluation.
type evaluation struct {
	pkg        name.FqName
	pkgDefined bool
	created    []*declValue
}

func (ev *evaluation) predeclared() starlark.StringDict {
	return starlark.StringDict{
		"package":     starlark.NewBuiltin("package", ev.packageBuiltin),
		"klass":       starlark.NewBuiltin("klass", ev.klassBuiltin),
		"typealias":   starlark.NewBuiltin("typealias", ev.typealiasBuiltin),
		"fun":         starlark.NewBuiltin("fun", ev.funBuiltin),
		"constructor": starlark.NewBuiltin("constructor", ev.constructorBuiltin),
		"prop":        starlark.NewBuiltin("prop", ev.propBuiltin),
		"param":       starlark.NewBuiltin("param", ev.paramBuiltin),
	}
}

func (ev *evaluation) declare(decl fir.Declaration) *declValue {
	v := &declValue{decl: decl}
	ev.created = append(ev.created, v)
	return v
}

func (ev *evaluation) packageBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var pkg string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &pkg); err != nil {
		return nil, err
	}
	if ev.pkgDefined {
		return nil, fmt.Errorf("%s: package already declared as %q", b.Name(), ev.pkg)
	}
	ev.pkg = name.ParseFqName(pkg)
	ev.pkgDefined = true
	return starlark.None, nil
}

func (ev *evaluation) klassBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: missing argument for name", b.Name())
	}
	var (
		className  string
		kind       = "class"
		supertypes *starlark.List
		local      bool
	)
	if err := starlark.UnpackArgs(b.Name(), args[:1], kwargs,
		"name", &className,
		"kind?", &kind,
		"supertypes?", &supertypes,
		"local?", &local,
	); err != nil {
		return nil, err
	}
	classKind, err := parseClassKind(kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	supers, err := typeRefs(b.Name(), supertypes)
	if err != nil {
		return nil, err
	}

	members := make([]fir.Declaration, 0, len(args)-1)
	for i, arg := range args[1:] {
		member, ok := arg.(*declValue)
		if !ok {
			return nil, fmt.Errorf("%s: member %d: got %s, want declaration", b.Name(), i+1, arg.Type())
		}
		if member.consumed {
			return nil, fmt.Errorf("%s %s: %v: %w", b.Name(), className, member, ErrDuplicateDeclaration)
		}
		member.consumed = true
		members = append(members, member.decl)
	}

	if local {
		return ev.declare(fir.NewLocalClass(name.Name(className), classKind, supers, members...)), nil
	}
	return ev.declare(fir.NewRegularClass(name.Name(className), classKind, supers, members...)), nil
}

func (ev *evaluation) typealiasBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var aliasName, expanded string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &aliasName, "type", &expanded); err != nil {
		return nil, err
	}
	return ev.declare(fir.NewTypeAlias(name.Name(aliasName), parseTypeRef(expanded))), nil
}

func (ev *evaluation) funBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		funName string
		params  *starlark.List
		returns = "Unit"
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &funName, "params?", &params, "returns?", &returns); err != nil {
		return nil, err
	}
	valueParameters, err := valueParameters(b.Name(), params)
	if err != nil {
		return nil, err
	}
	return ev.declare(fir.NewNamedFunction(name.Name(funName), parseTypeRef(returns), valueParameters...)), nil
}

func (ev *evaluation) constructorBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var params *starlark.List
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "params?", &params); err != nil {
		return nil, err
	}
	valueParameters, err := valueParameters(b.Name(), params)
	if err != nil {
		return nil, err
	}
	return ev.declare(fir.NewConstructor(valueParameters...)), nil
}

func (ev *evaluation) propBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		propName string
		typ      string
		isVar    bool
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &propName, "type?", &typ, "var?", &isVar); err != nil {
		return nil, err
	}
	return ev.declare(fir.NewProperty(name.Name(propName), parseTypeRef(typ), isVar)), nil
}

func (ev *evaluation) paramBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var paramName, typ string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &paramName, "type", &typ); err != nil {
		return nil, err
	}
	return &paramValue{param: fir.NewValueParameter(name.Name(paramName), parseTypeRef(typ))}, nil
}

func valueParameters(fnname string, list *starlark.List) ([]*fir.ValueParameter, error) {
	if list == nil {
		return nil, nil
	}
	params := make([]*fir.ValueParameter, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		p, ok := list.Index(i).(*paramValue)
		if !ok {
			return nil, fmt.Errorf("%s: params[%d]: got %s, want param", fnname, i, list.Index(i).Type())
		}
		params = append(params, p.param)
	}
	return params, nil
}

func typeRefs(fnname string, list *starlark.List) ([]fir.TypeRef, error) {
	if list == nil {
		return nil, nil
	}
	refs := make([]fir.TypeRef, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		s, ok := starlark.AsString(list.Index(i))
		if !ok {
			return nil, fmt.Errorf("%s: supertypes[%d]: got %s, want string", fnname, i, list.Index(i).Type())
		}
		refs = append(refs, parseTypeRef(s))
	}
	return refs, nil
}

// parseTypeRef reads a type as written, a trailing '?' marking it nullable.
func parseTypeRef(s string) fir.TypeRef {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "?") {
		return fir.TypeRef{Text: strings.TrimSuffix(s, "?"), Nullable: true}
	}
	return fir.TypeRef{Text: s}
}

func parseClassKind(kind string) (fir.ClassKind, error) {
	switch kind {
	case "class":
		return fir.Class, nil
	case "interface":
		return fir.Interface, nil
	case "object":
		return fir.Object, nil
	case "enum":
		return fir.EnumClass, nil
	case "annotation":
		return fir.AnnotationClass, nil
	}
	return fir.Class, fmt.Errorf("unknown class kind %q", kind)
}
