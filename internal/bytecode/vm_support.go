package bytecode

import (
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
	"github.com/Francis589-png/JUSUPLUSPLUS/pkg/token"
)

func posAt(line int) token.Position { return token.Position{Line: line} }

// atLine attaches a source position to err if it is a classified error
// that doesn't already carry one (mirrors the interpreter's own
// attachPos, so both backends report identical positions).
func atLine(err error, line int) error {
	if cerr, ok := err.(*errs.Error); ok && !cerr.HasPos {
		cerr.HasPos = true
		cerr.Pos = posAt(line)
		return cerr
	}
	return err
}

// loadName resolves a possibly dotted identifier: function-local names
// first (a frame's locals hold its parameters and any names it has
// assigned), then the VM's globals; each segment past the first descends
// via keyed lookup on a mapping, exactly as the interpreter's resolveName
// does, so the two backends agree on name resolution. The inline cache
// remembers only the last resolved BASE segment's global value (never an
// intermediate dotted step), bypassed whenever a local shadows the base.
func (vm *VM) loadName(f *frame, name string, line int) (value.Value, error) {
	segments := splitDotted(name)
	base := segments[0]

	var v value.Value
	if f.locals != nil {
		if lv, ok := f.locals[base]; ok {
			v = lv
		} else {
			gv, ok := vm.resolveBase(base, line)
			if !ok {
				return value.Null, errs.NewAt(errs.Name, posAt(line), "name %q is not defined", base)
			}
			v = gv
		}
	} else {
		gv, ok := vm.resolveBase(base, line)
		if !ok {
			return value.Null, errs.NewAt(errs.Name, posAt(line), "name %q is not defined", base)
		}
		v = gv
	}

	for _, seg := range segments[1:] {
		next, err := descend(v, seg, name, line)
		if err != nil {
			return value.Null, err
		}
		v = next
	}
	return v, nil
}

func (vm *VM) resolveBase(base string, line int) (value.Value, bool) {
	if v, ok := vm.nameCache[base]; ok {
		if cur, ok := vm.globals[base]; ok && value.Equal(cur, v) {
			return v, true
		}
	}
	v, ok := vm.globals[base]
	if !ok {
		return value.Null, false
	}
	vm.nameCache[base] = v
	return v, true
}

func descend(v value.Value, seg, fullName string, line int) (value.Value, error) {
	switch v.Type {
	case value.TypeMap:
		val, ok := v.AsMap().Get(seg)
		if !ok {
			return value.Null, errs.NewAt(errs.Name, posAt(line), "name %q is not defined", fullName)
		}
		return val, nil
	case value.TypeHostObject:
		if attr, ok := v.AsHost().(interface{ Attr(string) (value.Value, bool) }); ok {
			if val, found := attr.Attr(seg); found {
				return val, nil
			}
		}
		return value.Null, errs.NewAt(errs.Name, posAt(line), "name %q is not defined", fullName)
	default:
		return value.Null, errs.NewAt(errs.Name, posAt(line), "name %q is not defined", fullName)
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

// storeName writes to the innermost scope: a function frame's locals if
// it has one, otherwise the VM's globals. Storing to globals invalidates
// the inline cache entry for name so a later LOAD_NAME never observes a
// stale cached value.
func (vm *VM) storeName(f *frame, name string, v value.Value) {
	if f.locals != nil {
		f.locals[name] = v
		return
	}
	vm.globals[name] = v
	delete(vm.nameCache, name)
}

// callerScope builds the starting locals map for a new call frame: a
// shallow copy of whatever bindings are visible at the call site, so a
// nested function can see its enclosing function's parameters and
// locals, exactly as the interpreter's callUserFunction builds callEnv
// from caller.Snapshot(). If the caller is the top-level frame (locals
// nil), the copy is taken from the VM's globals instead.
func (vm *VM) callerScope() map[string]value.Value {
	var base map[string]value.Value
	if len(vm.frames) > 0 {
		if caller := vm.frames[len(vm.frames)-1]; caller.locals != nil {
			base = caller.locals
		}
	}
	if base == nil {
		base = vm.globals
	}
	scope := make(map[string]value.Value, len(base))
	for k, v := range base {
		scope[k] = v
	}
	return scope
}

// callFunction pops the callee (loaded last, so it sits on top of the
// stack), then argc arguments (pushed in left-to-right source order, so
// they come off the stack in reverse), and either invokes a native
// function directly or pushes a new frame for a stack-compiled function
// body.
func (vm *VM) callFunction(argc int, line int) error {
	callee := vm.pop()
	args := make([]value.Value, argc)
	for i := argc - 1; i >= 0; i-- {
		args[i] = vm.pop()
	}
	if callee.Type != value.TypeCallable {
		return errs.NewAt(errs.Type, posAt(line), "value of type %s is not callable", callee.Type)
	}

	switch fn := callee.AsCallable().(type) {
	case *value.NativeFunc:
		if fn.NumArgs >= 0 && len(args) != fn.NumArgs {
			return errs.NewAt(errs.Type, posAt(line), "%s() expects %d argument(s), got %d", fn.Name(), fn.NumArgs, len(args))
		}
		result, err := fn.Fn(args)
		if err != nil {
			return atLine(err, line)
		}
		vm.push(result)
		return nil

	case *FunctionConstant:
		if len(args) != fn.Arity() {
			return errs.NewAt(errs.Type, posAt(line), "%s() expects %d argument(s), got %d", fn.Name(), fn.Arity(), len(args))
		}
		locals := vm.callerScope()
		for idx, param := range fn.Chunk.Params {
			locals[param] = args[idx]
		}
		vm.frames = append(vm.frames, &frame{chunk: fn.Chunk, locals: locals})
		return nil

	default:
		return errs.NewAt(errs.Type, posAt(line), "value of type %s is not callable", callee.Type)
	}
}
