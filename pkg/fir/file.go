package fir

import (
	"fmt"

	"github.com/stackb/fir-resolve/pkg/name"
)

// File is a parsed source file.
type File struct {
	path          string
	packageFqName name.FqName
	declarations  []Declaration
}

// NewFile constructs a file node.
func NewFile(path string, pkg name.FqName, declarations ...Declaration) *File {
	return &File{path: path, packageFqName: pkg, declarations: declarations}
}

// Path is the filename the file was parsed from.
func (f *File) Path() string { return f.path }

// PackageFqName is the package declared by the file.
func (f *File) PackageFqName() name.FqName { return f.packageFqName }

// Declarations returns the top-level declarations in source order.
func (f *File) Declarations() []Declaration { return f.declarations }

// String implements fmt.Stringer
func (f *File) String() string {
	return fmt.Sprintf("%s (package %v)", f.path, f.packageFqName)
}

// AcceptChildren dispatches each top-level declaration to v.
func (f *File) AcceptChildren(v Visitor) {
	for _, d := range f.declarations {
		Accept(d, v)
	}
}
