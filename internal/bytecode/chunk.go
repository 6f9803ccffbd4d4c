// Package bytecode implements the linear stack-based compilation target:
// a compiler that lowers the AST into Chunks of opcodes, and a VM that
// executes them. It shares the runtime value representation and operand
// coercion rules with the tree-walking interpreter (internal/interp) so
// the two backends agree on observable behaviour.
package bytecode

import "github.com/Francis589-png/JUSUPLUSPLUS/internal/value"

// OpCode identifies a single stack-machine instruction.
type OpCode byte

const (
	OpLoadConst OpCode = iota
	OpLoadName
	OpStoreName
	OpBinaryAdd
	OpBinaryAddFast
	OpBinarySub
	OpBinaryMul
	OpBinaryDiv
	OpBinaryLT
	OpBinaryGT
	OpBinaryLE
	OpBinaryGE
	OpBinaryEQ
	OpBinaryNE
	OpJumpIfFalse
	OpJump
	OpCallFunction
	OpReturnValue
	OpBuildArray
	OpBuildObject
	OpSay
	OpPop
)

var opNames = [...]string{
	OpLoadConst:     "LOAD_CONST",
	OpLoadName:      "LOAD_NAME",
	OpStoreName:     "STORE_NAME",
	OpBinaryAdd:     "BINARY_ADD",
	OpBinaryAddFast: "BINARY_ADD_FAST",
	OpBinarySub:     "BINARY_SUB",
	OpBinaryMul:     "BINARY_MUL",
	OpBinaryDiv:     "BINARY_DIV",
	OpBinaryLT:      "BINARY_LT",
	OpBinaryGT:      "BINARY_GT",
	OpBinaryLE:      "BINARY_LE",
	OpBinaryGE:      "BINARY_GE",
	OpBinaryEQ:      "BINARY_EQ",
	OpBinaryNE:      "BINARY_NE",
	OpJumpIfFalse:   "JUMP_IF_FALSE",
	OpJump:          "JUMP",
	OpCallFunction:  "CALL_FUNCTION",
	OpReturnValue:   "RETURN_VALUE",
	OpBuildArray:    "BUILD_ARRAY",
	OpBuildObject:   "BUILD_OBJECT",
	OpSay:           "SAY",
	OpPop:           "POP",
}

func (op OpCode) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "UNKNOWN"
}

// Instruction is a single opcode plus its optional integer argument
// (constant index, name index, jump target, or argument count).
type Instruction struct {
	Op  OpCode
	Arg int
}

// Chunk is a code object: an instruction vector paired with its constant
// and name pools. A nested function body compiles to its own Chunk,
// carried as one entry of the enclosing chunk's constant pool alongside
// its parameter names, so function values are first-class.
type Chunk struct {
	Name      string
	Code      []Instruction
	Lines     []int // source line per instruction, parallel to Code
	Constants []value.Value
	Names     []string
	Params    []string // non-nil only for a chunk compiled from a function body
}

// NewChunk creates an empty chunk.
func NewChunk(name string) *Chunk {
	return &Chunk{Name: name}
}

// IsFunction reports whether this chunk was compiled from a function
// body (as opposed to the top-level program; if-branches are compiled
// inline and never get a chunk of their own).
func (c *Chunk) IsFunction() bool { return c.Params != nil }
