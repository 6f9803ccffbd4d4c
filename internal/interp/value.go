package interp

import (
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/ast"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
)

// Value is the interpreter's runtime value type; it is simply the shared
// value representation used by every backend.
type Value = value.Value

// UserFunction is a function value created by a FunctionDeclaration. It
// references the defining AST body directly: the interpreter never
// compiles functions, it walks their AST each call.
type UserFunction struct {
	DeclName string
	Params   []string
	Body     []ast.Node
}

func (f *UserFunction) Arity() int   { return len(f.Params) }
func (f *UserFunction) Name() string { return f.DeclName }
