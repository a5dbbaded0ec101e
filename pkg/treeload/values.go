package treeload

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/stackb/fir-resolve/pkg/fir"
)

// declValue is the starlark value of a declaration built by one of the
// builtins.  A declaration can be placed inside at most one class; the ones
// never placed are the top-level declarations of the file.
type declValue struct {
	decl     fir.Declaration
	consumed bool
}

func (v *declValue) String() string        { return v.decl.String() }
func (v *declValue) Type() string          { return "declaration" }
func (v *declValue) Freeze()               {}
func (v *declValue) Truth() starlark.Bool  { return starlark.True }
func (v *declValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: declaration") }

// paramValue is the starlark value of a value parameter.
type paramValue struct {
	param *fir.ValueParameter
}

func (v *paramValue) String() string        { return v.param.String() }
func (v *paramValue) Type() string          { return "param" }
func (v *paramValue) Freeze()               {}
func (v *paramValue) Truth() starlark.Bool  { return starlark.True }
func (v *paramValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: param") }

var (
	_ starlark.Value = (*declValue)(nil)
	_ starlark.Value = (*paramValue)(nil)
)
