package bytecode

import (
	"fmt"
	"io"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/builtins"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
)

// frame is the running state of a single function invocation: its own
// chunk (instruction vector plus constant/name pools), program counter,
// and locals. A nil locals map marks the top-level frame, whose STORE_NAME
// writes land directly in the VM's globals.
type frame struct {
	chunk  *Chunk
	pc     int
	locals map[string]value.Value
}

// VM executes Chunks produced by Compile. Each instance owns its globals
// exclusively; running two VMs on independent goroutines is safe because
// they share nothing.
type VM struct {
	output  io.Writer
	lib     *builtins.Library
	globals map[string]value.Value

	// nameCache is the inline name cache: identifier -> last resolved
	// global value. It is populated by LOAD_NAME and invalidated by
	// STORE_NAME for that identifier, so it can never observe a stale
	// binding; it changes performance, never semantics.
	nameCache map[string]value.Value

	stack  []value.Value
	frames []*frame
}

// NewVM creates a VM that writes `say`/print output to out, with the
// standard library bound into its globals.
func NewVM(out io.Writer) *VM {
	lib := builtins.New(out)
	vm := &VM{
		output:    out,
		lib:       lib,
		globals:   make(map[string]value.Value),
		nameCache: make(map[string]value.Value),
	}
	for name, v := range lib.Globals() {
		vm.globals[name] = v
	}
	for name, v := range lib.Modules() {
		vm.globals[name] = v
	}
	return vm
}

func (vm *VM) push(v value.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() value.Value {
	n := len(vm.stack) - 1
	v := vm.stack[n]
	vm.stack = vm.stack[:n]
	return v
}

// Run executes chunk to completion (top-level program). A RETURN_VALUE
// with an empty call stack terminates execution; its value is discarded.
func (vm *VM) Run(chunk *Chunk) error {
	vm.frames = []*frame{{chunk: chunk}}
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
		vm.push(f.chunk.Constants[inst.Arg])
		return nil

	case OpLoadName:
		v, err := vm.loadName(f, f.chunk.Names[inst.Arg], line)
		if err != nil {
			return err
		}
		vm.push(v)
		return nil

	case OpStoreName:
		v := vm.pop()
		vm.storeName(f, f.chunk.Names[inst.Arg], v)
		return nil

	case OpBinaryAddFast:
		b, a := vm.pop(), vm.pop()
		if a.Type == value.TypeNumber && b.Type == value.TypeNumber {
			vm.push(value.Number(a.AsNumber() + b.AsNumber()))
			return nil
		}
		result, err := value.Add(a, b)
		if err != nil {
			return atLine(err, line)
		}
		vm.push(result)
		return nil

	case OpBinaryAdd:
		return vm.binaryArith(value.Add, line)
	case OpBinarySub:
		return vm.binaryArith(value.Sub, line)
	case OpBinaryMul:
		return vm.binaryArith(value.Mul, line)
	case OpBinaryDiv:
		return vm.binaryArith(value.Div, line)

	case OpBinaryEQ:
		b, a := vm.pop(), vm.pop()
		vm.push(value.Bool(value.Equal(a, b)))
		return nil
	case OpBinaryNE:
		b, a := vm.pop(), vm.pop()
		vm.push(value.Bool(!value.Equal(a, b)))
		return nil
	case OpBinaryLT, OpBinaryGT, OpBinaryLE, OpBinaryGE:
		return vm.binaryCompare(inst.Op, line)

	case OpJumpIfFalse:
		cond := vm.pop()
		if !cond.Truthy() {
			f.pc = inst.Arg
		}
		return nil

	case OpJump:
		f.pc = inst.Arg
		return nil

	case OpCallFunction:
		return vm.callFunction(inst.Arg, line)

	case OpReturnValue:
		ret := vm.pop()
		vm.frames = vm.frames[:len(vm.frames)-1]
		if len(vm.frames) > 0 {
			vm.push(ret)
		}
		return nil

	case OpBuildArray:
		elems := make([]value.Value, inst.Arg)
		for i := inst.Arg - 1; i >= 0; i-- {
			elems[i] = vm.pop()
		}
		vm.push(value.Array(elems))
		return nil

	case OpBuildObject:
		keyList := f.chunk.Constants[inst.Arg].AsHost().(*KeyList)
		values := make([]value.Value, len(keyList.Keys))
		for i := len(keyList.Keys) - 1; i >= 0; i-- {
			values[i] = vm.pop()
		}
		m := value.NewMap()
		for i, k := range keyList.Keys {
			m.Set(k, values[i])
		}
		vm.push(value.Mapping(m))
		return nil

	case OpSay:
		v := vm.pop()
		fmt.Fprintln(vm.output, value.Inspect(v))
		return nil

	case OpPop:
		vm.pop()
		return nil

	default:
		return errs.NewAt(errs.Runtime, posAt(line), "unknown opcode %v", inst.Op)
	}
}

func (vm *VM) binaryArith(op func(a, b value.Value) (value.Value, error), line int) error {
	b, a := vm.pop(), vm.pop()
	result, err := op(a, b)
	if err != nil {
		return atLine(err, line)
	}
	vm.push(result)
	return nil
}

func (vm *VM) binaryCompare(op OpCode, line int) error {
	b, a := vm.pop(), vm.pop()
	cmp, err := value.Compare(a, b)
	if err != nil {
		return atLine(err, line)
	}
	var result bool
	switch op {
	case OpBinaryLT:
		result = cmp < 0
	case OpBinaryGT:
		result = cmp > 0
	case OpBinaryLE:
		result = cmp <= 0
	case OpBinaryGE:
		result = cmp >= 0
	}
	vm.push(value.Bool(result))
	return nil
}
