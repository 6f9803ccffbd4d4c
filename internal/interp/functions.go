package interp

import (
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/ast"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
	"github.com/Francis589-png/JUSUPLUSPLUS/pkg/token"
)

func (i *Interpreter) evalCall(e *ast.CallExpression, env *Environment) (Value, error) {
	callee, err := i.resolveName(e.Callee, env, e.Pos())
	if err != nil {
		return value.Null, err
	}
	if callee.Type != value.TypeCallable {
		return value.Null, errs.NewAt(errs.Type, e.Pos(), "%q is not callable", e.Callee)
	}

	// Evaluate arguments left-to-right.
	args := make([]Value, len(e.Arguments))
	for idx, argNode := range e.Arguments {
		v, err := i.eval(argNode, env)
		if err != nil {
			return value.Null, err
		}
		args[idx] = v
	}

	switch fn := callee.AsCallable().(type) {
	case *value.NativeFunc:
		if fn.NumArgs >= 0 && len(args) != fn.NumArgs {
			return value.Null, errs.NewAt(errs.Type, e.Pos(), "%s() expects %d argument(s), got %d", fn.FuncName, fn.NumArgs, len(args))
		}
		result, err := fn.Fn(args)
		if err != nil {
			return value.Null, attachPos(err, e.Pos())
		}
		return result, nil

	case *UserFunction:
		return i.callUserFunction(fn, args, env, e.Pos())

	default:
		return value.Null, errs.NewAt(errs.Type, e.Pos(), "%q is not callable", e.Callee)
	}
}

// callUserFunction builds a child environment that is a snapshot of the
// caller's environment at call time, extended with parameter bindings.
// Changes made inside the callee never propagate back to the caller.
func (i *Interpreter) callUserFunction(fn *UserFunction, args []Value, caller *Environment, pos token.Position) (Value, error) {
	if len(args) != len(fn.Params) {
		return value.Null, errs.NewAt(errs.Type, pos, "%s() expects %d argument(s), got %d", fn.DeclName, len(fn.Params), len(args))
	}

	callEnv := caller.Snapshot()
	for idx, param := range fn.Params {
		callEnv.Set(param, args[idx])
	}

	for _, stmt := range fn.Body {
		if err := i.execStatement(stmt, callEnv); err != nil {
			return value.Null, err
		}
		if i.returning {
			i.returning = false
			result := i.returnValue
			i.returnValue = value.Null
			return result, nil
		}
	}
	return value.Null, nil
}

func attachPos(err error, pos token.Position) error {
	if cerr, ok := err.(*errs.Error); ok && !cerr.HasPos {
		cerr.HasPos = true
		cerr.Pos = pos
	}
	return err
}
