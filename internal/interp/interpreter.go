// Package interp implements the tree-walking interpreter: direct
// evaluation over the AST, with a snapshot-scope call model and strict
// operand coercion rules.
package interp

import (
	"io"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/ast"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/builtins"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
	"github.com/Francis589-png/JUSUPLUSPLUS/pkg/token"
)

// Interpreter evaluates a Program directly over its AST. Its globals are
// its own exclusive environment: two Interpreter instances share nothing.
type Interpreter struct {
	globals *Environment
	lib     *builtins.Library

	// Non-local control transfer for `return`, tracked as flags checked
	// after every statement rather than via panic/recover, so the signal
	// can be inspected and cleared precisely at the call frame boundary
	// that owns it.
	returning   bool
	returnValue Value
}

// New creates an Interpreter that writes `say`/`print` output to out.
func New(out io.Writer) *Interpreter {
	lib := builtins.New(out)
	i := &Interpreter{globals: NewEnvironment(), lib: lib}
	for name, v := range lib.Globals() {
		i.globals.Set(name, v)
	}
	for name, v := range lib.Modules() {
		i.globals.Set(name, v)
	}
	return i
}

// Globals exposes the top-level environment for introspection (the
// shell's `vars` command).
func (i *Interpreter) Globals() *Environment { return i.globals }

// Run evaluates every statement of prog against the interpreter's
// globals, in order.
func (i *Interpreter) Run(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		if err := i.execStatement(stmt, i.globals); err != nil {
			return err
		}
		if i.returning {
			// A top-level return simply stops execution; its value is
			// discarded.
			i.returning = false
			return nil
		}
	}
	return nil
}

func (i *Interpreter) execStatement(n ast.Node, env *Environment) error {
	switch s := n.(type) {
	case *ast.Assignment:
		v, err := i.eval(s.Value, env)
		if err != nil {
			return err
		}
		env.Set(s.Name, v)
		return nil

	case *ast.SayStatement:
		v, err := i.eval(s.Expression, env)
		if err != nil {
			return err
		}
		i.lib.Output.Write([]byte(value.Inspect(v) + "\n"))
		return nil

	case *ast.IfStatement:
		cond, err := i.eval(s.Condition, env)
		if err != nil {
			return err
		}
		branch := s.Then
		if !cond.Truthy() {
			branch = s.Else
		}
		for _, stmt := range branch {
			if err := i.execStatement(stmt, env); err != nil {
				return err
			}
			if i.returning {
				return nil
			}
		}
		return nil

	case *ast.FunctionDeclaration:
		fn := &UserFunction{
			DeclName: s.Name,
			Params:   s.Params,
			Body:     s.Body,
		}
		env.Set(s.Name, value.Call(fn))
		return nil

	case *ast.ReturnStatement:
		if s.Value == nil {
			i.returnValue = value.Null
		} else {
			v, err := i.eval(s.Value, env)
			if err != nil {
				return err
			}
			i.returnValue = v
		}
		i.returning = true
		return nil

	case *ast.ExpressionStatement:
		_, err := i.eval(s.Expression, env)
		return err

	default:
		return errs.NewAt(errs.Runtime, n.Pos(), "cannot execute node of kind %v", n.Kind())
	}
}

func (i *Interpreter) eval(n ast.Node, env *Environment) (Value, error) {
	switch e := n.(type) {
	case *ast.NumberLiteral:
		return value.Number(e.Value), nil
	case *ast.StringLiteral:
		return value.String(e.Value), nil
	case *ast.BooleanLiteral:
		return value.Bool(e.Value), nil
	case *ast.Identifier:
		return i.resolveName(e.Name, env, e.Pos())
	case *ast.BinaryExpression:
		return i.evalBinary(e, env)
	case *ast.CallExpression:
		return i.evalCall(e, env)
	case *ast.ObjectLiteral:
		m := value.NewMap()
		for _, pair := range e.Pairs {
			v, err := i.eval(pair.Value, env)
			if err != nil {
				return value.Null, err
			}
			m.Set(pair.Key, v)
		}
		return value.Mapping(m), nil
	case *ast.ArrayLiteral:
		elems := make([]Value, len(e.Elements))
		for idx, elemNode := range e.Elements {
			v, err := i.eval(elemNode, env)
			if err != nil {
				return value.Null, err
			}
			elems[idx] = v
		}
		return value.Array(elems), nil
	default:
		return value.Null, errs.NewAt(errs.Runtime, n.Pos(), "cannot evaluate node of kind %v", n.Kind())
	}
}

func (i *Interpreter) evalBinary(e *ast.BinaryExpression, env *Environment) (Value, error) {
	left, err := i.eval(e.Left, env)
	if err != nil {
		return value.Null, err
	}
	right, err := i.eval(e.Right, env)
	if err != nil {
		return value.Null, err
	}
	return applyBinaryOp(e.Operator, left, right, e.Pos())
}

// applyBinaryOp dispatches an operator to the strict coercion rules in
// internal/value/ops.go, the same functions the stack VM and register VM
// call, and attaches pos to any error that has no position yet.
func applyBinaryOp(op string, left, right Value, pos token.Position) (Value, error) {
	var result Value
	var err error
	switch op {
	case "+":
		result, err = value.Add(left, right)
	case "-":
		result, err = value.Sub(left, right)
	case "*":
		result, err = value.Mul(left, right)
	case "/":
		result, err = value.Div(left, right)
	case "==":
		return value.Bool(value.Equal(left, right)), nil
	case "!=":
		return value.Bool(!value.Equal(left, right)), nil
	case "<", ">", "<=", ">=":
		var cmp int
		cmp, err = value.Compare(left, right)
		if err != nil {
			break
		}
		switch op {
		case "<":
			result = value.Bool(cmp < 0)
		case ">":
			result = value.Bool(cmp > 0)
		case "<=":
			result = value.Bool(cmp <= 0)
		case ">=":
			result = value.Bool(cmp >= 0)
		}
	default:
		return value.Null, errs.NewAt(errs.Runtime, pos, "unknown operator %q", op)
	}
	if err != nil {
		if cerr, ok := err.(*errs.Error); ok && !cerr.HasPos {
			cerr.HasPos = true
			cerr.Pos = pos
		}
		return value.Null, err
	}
	return result, nil
}

// resolveName resolves a possibly dotted identifier: the base segment is
// looked up in env, then each subsequent segment descends via keyed
// lookup on a mapping (or attribute lookup on a host object).
func (i *Interpreter) resolveName(name string, env *Environment, pos token.Position) (Value, error) {
	segments := splitDotted(name)
	base := segments[0]
	v, ok := env.Get(base)
	if !ok {
		return value.Null, errs.NewAt(errs.Name, pos, "name %q is not defined", base)
	}
	for _, seg := range segments[1:] {
		next, err := descend(v, seg, name, pos)
		if err != nil {
			return value.Null, err
		}
		v = next
	}
	return v, nil
}

func descend(v Value, seg, fullName string, pos token.Position) (Value, error) {
	switch v.Type {
	case value.TypeMap:
		val, ok := v.AsMap().Get(seg)
		if !ok {
			return value.Null, errs.NewAt(errs.Name, pos, "name %q is not defined", fullName)
		}
		return val, nil
	case value.TypeHostObject:
		if attr, ok := v.AsHost().(interface{ Attr(string) (Value, bool) }); ok {
			if val, found := attr.Attr(seg); found {
				return val, nil
			}
		}
		return value.Null, errs.NewAt(errs.Name, pos, "name %q is not defined", fullName)
	default:
		return value.Null, errs.NewAt(errs.Name, pos, "name %q is not defined", fullName)
	}
}

func splitDotted(name string) []string {
	var segments []string
	start := 0
	for idx := 0; idx < len(name); idx++ {
		if name[idx] == '.' {
			segments = append(segments, name[start:idx])
			start = idx + 1
		}
	}
	segments = append(segments, name[start:])
	return segments
}
