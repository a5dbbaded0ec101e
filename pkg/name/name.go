package name

import "strings"

// Name is a simple (unqualified) identifier.
type Name string

// Constructor is the name given to class constructors.
const Constructor Name = "<init>"

// String implements fmt.Stringer
func (n Name) String() string {
	return string(n)
}

// FqName is a dot-separated qualified name.  The empty FqName is the root.
type FqName string

// Root is the root FqName.
const Root FqName = ""

// ParseFqName returns the FqName for the given dotted string.
func ParseFqName(s string) FqName {
	return FqName(strings.Trim(s, "."))
}

// IsRoot reports whether this is the root name.
func (f FqName) IsRoot() bool {
	return f == Root
}

// Child returns the name of the child segment n under f.
func (f FqName) Child(n Name) FqName {
	if f.IsRoot() {
		return FqName(n)
	}
	return FqName(string(f) + "." + string(n))
}

// Parent returns the enclosing name.  The parent of a single segment name
// (and of the root) is the root.
func (f FqName) Parent() FqName {
	index := strings.LastIndex(string(f), ".")
	if index < 0 {
		return Root
	}
	return f[:index]
}

// ShortName returns the last segment.
func (f FqName) ShortName() Name {
	index := strings.LastIndex(string(f), ".")
	return Name(f[index+1:])
}

// StartsWith reports whether prefix is f or one of its ancestors.
func (f FqName) StartsWith(prefix FqName) bool {
	if prefix.IsRoot() || f == prefix {
		return true
	}
	return strings.HasPrefix(string(f), string(prefix)+".")
}

// String implements fmt.Stringer
func (f FqName) String() string {
	if f.IsRoot() {
		return "<root>"
	}
	return string(f)
}
