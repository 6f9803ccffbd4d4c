package regvm

import (
	"io"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/builtins"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
	"github.com/Francis589-png/JUSUPLUSPLUS/pkg/token"
)

// frame is a single call's running state: the callee's own chunk and
// register file, its program counter, and the caller-specified register
// that should receive its return value (-1 when the caller discards it,
// as `say` does).
type frame struct {
	chunk  *Chunk
	pc     int
	regs   []value.Value
	locals map[string]value.Value
	retReg int
}

// VM executes register Chunks produced by Compile.
type VM struct {
	globals map[string]value.Value
	frames  []*frame
}

// NewVM creates a VM with the standard library bound into its globals.
func NewVM(out io.Writer) *VM {
	lib := builtins.New(out)
	vm := &VM{globals: make(map[string]value.Value)}
	for name, v := range lib.Globals() {
		vm.globals[name] = v
	}
	for name, v := range lib.Modules() {
		vm.globals[name] = v
	}
	return vm
}

func posAt(line int) token.Position { return token.Position{Line: line} }

func atLine(err error, line int) error {
	if cerr, ok := err.(*errs.Error); ok && !cerr.HasPos {
		cerr.HasPos = true
		cerr.Pos = posAt(line)
		return cerr
	}
	return err
}

// Run executes chunk to completion, discarding its top-level return value.
func (vm *VM) Run(chunk *Chunk) error {
	top := &frame{chunk: chunk, regs: make([]value.Value, chunk.MaxReg+1), retReg: -1}
	vm.frames = []*frame{top}

	for len(vm.frames) > 0 {
		f := vm.frames[len(vm.frames)-1]
		if f.pc >= len(f.chunk.Code) {
			vm.frames = vm.frames[:len(vm.frames)-1]
			continue
		}
		inst := f.chunk.Code[f.pc]
		line := 0
		if f.pc < len(f.chunk.Lines) {
			line = f.chunk.Lines[f.pc]
		}
		f.pc++
		if err := vm.step(f, inst, line); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) step(f *frame, inst Instruction, line int) error {
	switch inst.Op {
	case OpLoadConst:
		f.regs[inst.Dst] = f.chunk.Constants[inst.Arg]
		return nil

	case OpLoadName:
		v, err := vm.loadName(f, f.chunk.Names[inst.Arg], line)
		if err != nil {
			return err
		}
		f.regs[inst.Dst] = v
		return nil

	case OpStoreName:
		name := f.chunk.Names[inst.Arg]
		v := f.regs[inst.Src1]
		if f.locals != nil {
			f.locals[name] = v
		} else {
			vm.globals[name] = v
		}
		return nil

	case OpAdd, OpSub, OpMul, OpDiv:
		return vm.arith(f, inst, line)

	case OpEQ:
		f.regs[inst.Dst] = value.Bool(value.Equal(f.regs[inst.Src1], f.regs[inst.Src2]))
		return nil
	case OpNE:
		f.regs[inst.Dst] = value.Bool(!value.Equal(f.regs[inst.Src1], f.regs[inst.Src2]))
		return nil
	case OpLT, OpGT, OpLE, OpGE:
		return vm.compare(f, inst, line)

	case OpCall:
		return vm.call(f, inst, line)

	case OpReturn:
		var ret value.Value = value.Null
		if inst.Src1 >= 0 {
			ret = f.regs[inst.Src1]
		}
		retReg := f.retReg
		vm.frames = vm.frames[:len(vm.frames)-1]
		if len(vm.frames) > 0 && retReg >= 0 {
			caller := vm.frames[len(vm.frames)-1]
			caller.regs[retReg] = ret
		}
		return nil

	default:
		return errs.NewAt(errs.Runtime, posAt(line), "unknown opcode %v", inst.Op)
	}
}

func (vm *VM) arith(f *frame, inst Instruction, line int) error {
	a, b := f.regs[inst.Src1], f.regs[inst.Src2]
	var result value.Value
	var err error
	switch inst.Op {
	case OpAdd:
		result, err = value.Add(a, b)
	case OpSub:
		result, err = value.Sub(a, b)
	case OpMul:
		result, err = value.Mul(a, b)
	case OpDiv:
		result, err = value.Div(a, b)
	}
	if err != nil {
		return atLine(err, line)
	}
	f.regs[inst.Dst] = result
	return nil
}

func (vm *VM) compare(f *frame, inst Instruction, line int) error {
	a, b := f.regs[inst.Src1], f.regs[inst.Src2]
	cmp, err := value.Compare(a, b)
	if err != nil {
		return atLine(err, line)
	}
	var result bool
	switch inst.Op {
	case OpLT:
		result = cmp < 0
	case OpGT:
		result = cmp > 0
	case OpLE:
		result = cmp <= 0
	case OpGE:
		result = cmp >= 0
	}
	f.regs[inst.Dst] = value.Bool(result)
	return nil
}

// callerScope builds the starting locals map for a new call frame: a
// shallow copy of whatever bindings are visible at the call site, so a
// nested function can see its enclosing function's parameters and
// locals, matching the tree-walking interpreter's callUserFunction,
// which builds callEnv from caller.Snapshot(). If caller is the
// top-level frame (locals nil), the copy is taken from globals instead.
func callerScope(caller *frame, globals map[string]value.Value) map[string]value.Value {
	base := caller.locals
	if base == nil {
		base = globals
	}
	scope := make(map[string]value.Value, len(base))
	for k, v := range base {
		scope[k] = v
	}
	return scope
}

func (vm *VM) call(f *frame, inst Instruction, line int) error {
	callee := f.regs[inst.Src1]
	if callee.Type != value.TypeCallable {
		return errs.NewAt(errs.Type, posAt(line), "value of type %s is not callable", callee.Type)
	}
	args := make([]value.Value, len(inst.Args))
	for i, r := range inst.Args {
		args[i] = f.regs[r]
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
		if inst.Dst >= 0 {
			f.regs[inst.Dst] = result
		}
		return nil

	case *FunctionConstant:
		if len(args) != fn.Arity() {
			return errs.NewAt(errs.Type, posAt(line), "%s() expects %d argument(s), got %d", fn.Name(), fn.Arity(), len(args))
		}
		newFrame := &frame{
			chunk:  fn.Chunk,
			regs:   make([]value.Value, fn.Chunk.MaxReg+1),
			locals: callerScope(f, vm.globals),
			retReg: inst.Dst,
		}
		for i, a := range args {
			newFrame.regs[i] = a
			newFrame.locals[fn.Chunk.Params[i]] = a
		}
		vm.frames = append(vm.frames, newFrame)
		return nil

	default:
		return errs.NewAt(errs.Type, posAt(line), "value of type %s is not callable", callee.Type)
	}
}

// loadName resolves a possibly dotted identifier: the frame's own locals
// first for the base segment, then the VM's globals; remaining segments
// descend by keyed lookup on a mapping, matching the stack backend and
// the tree-walking interpreter so all three agree on name resolution.
func (vm *VM) loadName(f *frame, name string, line int) (value.Value, error) {
	segments := splitDotted(name)
	base := segments[0]

	var v value.Value
	if f.locals != nil {
		if lv, ok := f.locals[base]; ok {
			v = lv
		} else {
			gv, ok := vm.globals[base]
			if !ok {
				return value.Null, errs.NewAt(errs.Name, posAt(line), "name %q is not defined", base)
			}
			v = gv
		}
	} else {
		gv, ok := vm.globals[base]
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
