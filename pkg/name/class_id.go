package name

import (
	"fmt"
	"strings"
)

// ClassId is the qualified identity of a classifier: the package it lives in
// and its (possibly nested) name relative to that package.  ClassId values are
// comparable and used directly as map keys.
type ClassId struct {
	PackageFqName     FqName
	RelativeClassName FqName
	// IsLocal is set for local and anonymous classes.
	IsLocal bool
}

// NewClassId constructs a ClassId.
func NewClassId(pkg, relativeClassName FqName, isLocal bool) ClassId {
	return ClassId{
		PackageFqName:     pkg,
		RelativeClassName: relativeClassName,
		IsLocal:           isLocal,
	}
}

// TopLevel returns the ClassId of a top-level class in pkg.
func TopLevel(pkg FqName, n Name) ClassId {
	return NewClassId(pkg, Root.Child(n), false)
}

// PackageRoot returns the ClassId that stands for the package-level container
// of pkg.  It owns the top-level callables of the package.
func PackageRoot(pkg FqName) ClassId {
	return NewClassId(pkg, Root, false)
}

// ParseClassId parses the string form produced by ClassId.String, for example
// "com/example/Outer.Inner".  A string without '/' is a class in the root
// package.
func ParseClassId(s string) ClassId {
	isLocal := false
	if strings.HasPrefix(s, "<local>") {
		isLocal = true
		s = strings.TrimPrefix(s, "<local>")
	}
	pkg := ""
	rel := s
	if index := strings.LastIndex(s, "/"); index >= 0 {
		pkg = strings.ReplaceAll(s[:index], "/", ".")
		rel = s[index+1:]
	}
	return NewClassId(ParseFqName(pkg), ParseFqName(rel), isLocal)
}

// IsPackageRoot reports whether this id denotes a package-level container
// rather than a class.
func (c ClassId) IsPackageRoot() bool {
	return c.RelativeClassName.IsRoot()
}

// IsNestedClass reports whether the class is declared inside another class.
func (c ClassId) IsNestedClass() bool {
	return !c.RelativeClassName.Parent().IsRoot()
}

// ShortClassName returns the simple name of the class.
func (c ClassId) ShortClassName() Name {
	return c.RelativeClassName.ShortName()
}

// CreateNestedClassId returns the id of class n nested in c.
func (c ClassId) CreateNestedClassId(n Name) ClassId {
	return NewClassId(c.PackageFqName, c.RelativeClassName.Child(n), c.IsLocal)
}

// OuterClassId returns the id of the enclosing class, if any.
func (c ClassId) OuterClassId() (ClassId, bool) {
	if !c.IsNestedClass() {
		return ClassId{}, false
	}
	return NewClassId(c.PackageFqName, c.RelativeClassName.Parent(), c.IsLocal), true
}

// AsSingleFqName joins the package and relative names.
func (c ClassId) AsSingleFqName() FqName {
	if c.PackageFqName.IsRoot() {
		return c.RelativeClassName
	}
	if c.RelativeClassName.IsRoot() {
		return c.PackageFqName
	}
	return FqName(string(c.PackageFqName) + "." + string(c.RelativeClassName))
}

// String implements fmt.Stringer
func (c ClassId) String() string {
	var buf strings.Builder
	if c.IsLocal {
		buf.WriteString("<local>")
	}
	if !c.PackageFqName.IsRoot() {
		buf.WriteString(packagePath(c.PackageFqName))
		buf.WriteRune('/')
	}
	buf.WriteString(string(c.RelativeClassName))
	return buf.String()
}

// CallableId names the callables declared under an owner.  For top-level
// callables the owner is the PackageRoot of their package.
type CallableId struct {
	ClassId      ClassId
	CallableName Name
}

// NewCallableId constructs a CallableId.
func NewCallableId(owner ClassId, n Name) CallableId {
	return CallableId{ClassId: owner, CallableName: n}
}

// String implements fmt.Stringer
func (c CallableId) String() string {
	if c.ClassId.IsPackageRoot() {
		if c.ClassId.PackageFqName.IsRoot() {
			return string(c.CallableName)
		}
		return fmt.Sprintf("%s/%s", packagePath(c.ClassId.PackageFqName), c.CallableName)
	}
	return fmt.Sprintf("%s.%s", c.ClassId, c.CallableName)
}

func packagePath(pkg FqName) string {
	return strings.ReplaceAll(string(pkg), ".", "/")
}
