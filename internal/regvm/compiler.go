package regvm

import (
	"fmt"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/ast"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
)

// CompileError is raised for anything the register backend's documented
// subset cannot express, chiefly `if` (this backend carries no branch
// opcodes; see the package doc comment).
type CompileError struct {
	Message string
	Line    int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[Line %d] %s", e.Line, e.Message)
}

// Compiler lowers an AST into a register Chunk.
type Compiler struct {
	chunk   *Chunk
	curLine int
	nextReg int
}

// NewCompiler creates a compiler that will emit into a chunk named name.
func NewCompiler(name string) *Compiler {
	return &Compiler{chunk: NewChunk(name)}
}

// Compile lowers a full program into its top-level register Chunk.
func Compile(prog *ast.Program) (*Chunk, error) {
	c := NewCompiler("<program>")
	for _, stmt := range prog.Statements {
		if err := c.compileStatement(stmt); err != nil {
			return nil, err
		}
	}
	return c.chunk, nil
}

func (c *Compiler) alloc() int {
	r := c.nextReg
	c.nextReg++
	if c.nextReg-1 > c.chunk.MaxReg {
		c.chunk.MaxReg = c.nextReg - 1
	}
	return r
}

func (c *Compiler) emit(inst Instruction) {
	c.chunk.Code = append(c.chunk.Code, inst)
	c.chunk.Lines = append(c.chunk.Lines, c.curLine)
}

func (c *Compiler) addConstant(v value.Value) int {
	if v.Type != value.TypeHostObject && v.Type != value.TypeCallable {
		for idx, existing := range c.chunk.Constants {
			if existing.Type == v.Type && value.Equal(existing, v) {
				return idx
			}
		}
	}
	c.chunk.Constants = append(c.chunk.Constants, v)
	return len(c.chunk.Constants) - 1
}

func (c *Compiler) addName(name string) int {
	for idx, existing := range c.chunk.Names {
		if existing == name {
			return idx
		}
	}
	c.chunk.Names = append(c.chunk.Names, name)
	return len(c.chunk.Names) - 1
}

// FunctionConstant wraps a compiled register function body as a callable
// constant-pool entry, analogous to the stack backend's equivalent.
type FunctionConstant struct {
	Chunk *Chunk
}

func (f *FunctionConstant) Arity() int   { return f.Chunk.NumParams }
func (f *FunctionConstant) Name() string { return f.Chunk.Name }

func (c *Compiler) compileStatement(n ast.Node) error {
	c.curLine = n.Pos().Line
	switch s := n.(type) {
	case *ast.Assignment:
		src, err := c.compileExpr(s.Value)
		if err != nil {
			return err
		}
		c.emit(Instruction{Op: OpStoreName, Arg: c.addName(s.Name), Src1: src})
		return nil

	case *ast.SayStatement:
		// No dedicated opcode for say in this instruction set; compiles
		// to a discarded CALL of the print built-in instead.
		arg, err := c.compileExpr(s.Expression)
		if err != nil {
			return err
		}
		callee := c.alloc()
		c.emit(Instruction{Op: OpLoadName, Dst: callee, Arg: c.addName("print")})
		c.emit(Instruction{Op: OpCall, Dst: -1, Src1: callee, Args: []int{arg}})
		return nil

	case *ast.IfStatement:
		return &CompileError{Message: "register backend does not support `if` (no branch opcodes)", Line: n.Pos().Line}

	case *ast.FunctionDeclaration:
		return c.compileFunctionDeclaration(s)

	case *ast.ReturnStatement:
		if s.Value == nil {
			c.emit(Instruction{Op: OpReturn, Src1: -1})
			return nil
		}
		src, err := c.compileExpr(s.Value)
		if err != nil {
			return err
		}
		c.emit(Instruction{Op: OpReturn, Src1: src})
		return nil

	case *ast.ExpressionStatement:
		_, err := c.compileExpr(s.Expression)
		return err

	default:
		return &CompileError{Message: fmt.Sprintf("cannot compile statement of kind %v", n.Kind()), Line: n.Pos().Line}
	}
}

func (c *Compiler) compileFunctionDeclaration(s *ast.FunctionDeclaration) error {
	inner := NewCompiler(s.Name)
	inner.chunk.NumParams = len(s.Params)
	inner.chunk.Params = append([]string(nil), s.Params...)
	for _, p := range s.Params {
		inner.addName(p)
		inner.alloc()
	}
	for _, stmt := range s.Body {
		if err := inner.compileStatement(stmt); err != nil {
			return err
		}
	}
	inner.emit(Instruction{Op: OpReturn, Src1: -1})

	idx := c.addConstant(value.Call(&FunctionConstant{Chunk: inner.chunk}))
	dst := c.alloc()
	c.emit(Instruction{Op: OpLoadConst, Dst: dst, Arg: idx})
	c.emit(Instruction{Op: OpStoreName, Arg: c.addName(s.Name), Src1: dst})
	return nil
}

// compileExpr lowers an expression and returns the register holding its
// result.
func (c *Compiler) compileExpr(n ast.Node) (int, error) {
	if n.Pos().Line != 0 {
		c.curLine = n.Pos().Line
	}
	switch e := n.(type) {
	case *ast.NumberLiteral:
		dst := c.alloc()
		c.emit(Instruction{Op: OpLoadConst, Dst: dst, Arg: c.addConstant(value.Number(e.Value))})
		return dst, nil
	case *ast.StringLiteral:
		dst := c.alloc()
		c.emit(Instruction{Op: OpLoadConst, Dst: dst, Arg: c.addConstant(value.String(e.Value))})
		return dst, nil
	case *ast.BooleanLiteral:
		dst := c.alloc()
		c.emit(Instruction{Op: OpLoadConst, Dst: dst, Arg: c.addConstant(value.Bool(e.Value))})
		return dst, nil
	case *ast.Identifier:
		dst := c.alloc()
		c.emit(Instruction{Op: OpLoadName, Dst: dst, Arg: c.addName(e.Name)})
		return dst, nil
	case *ast.BinaryExpression:
		return c.compileBinary(e)
	case *ast.CallExpression:
		return c.compileCall(e)
	case *ast.ObjectLiteral:
		return 0, &CompileError{Message: "register backend does not support object literals", Line: n.Pos().Line}
	case *ast.ArrayLiteral:
		return 0, &CompileError{Message: "register backend does not support array literals", Line: n.Pos().Line}
	default:
		return 0, &CompileError{Message: fmt.Sprintf("cannot compile expression of kind %v", n.Kind()), Line: n.Pos().Line}
	}
}

var binaryOps = map[string]OpCode{
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv,
	"<": OpLT, ">": OpGT, "<=": OpLE, ">=": OpGE, "==": OpEQ, "!=": OpNE,
}

func (c *Compiler) compileBinary(e *ast.BinaryExpression) (int, error) {
	left, err := c.compileExpr(e.Left)
	if err != nil {
		return 0, err
	}
	right, err := c.compileExpr(e.Right)
	if err != nil {
		return 0, err
	}
	op, ok := binaryOps[e.Operator]
	if !ok {
		return 0, &CompileError{Message: fmt.Sprintf("unknown operator %q", e.Operator), Line: e.Pos().Line}
	}
	dst := c.alloc()
	c.emit(Instruction{Op: op, Dst: dst, Src1: left, Src2: right})
	return dst, nil
}

func (c *Compiler) compileCall(e *ast.CallExpression) (int, error) {
	argRegs := make([]int, len(e.Arguments))
	for i, arg := range e.Arguments {
		r, err := c.compileExpr(arg)
		if err != nil {
			return 0, err
		}
		argRegs[i] = r
	}
	callee := c.alloc()
	c.emit(Instruction{Op: OpLoadName, Dst: callee, Arg: c.addName(e.Callee)})
	dst := c.alloc()
	c.emit(Instruction{Op: OpCall, Dst: dst, Src1: callee, Args: argRegs})
	return dst, nil
}
