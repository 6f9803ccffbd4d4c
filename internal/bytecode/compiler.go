package bytecode

import (
	"fmt"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/ast"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
)

// CompileError is raised when the AST contains something the stack
// compiler cannot lower (this backend covers the full language, so this
// only fires on malformed trees built outside the parser).
type CompileError struct {
	Message string
	Line    int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[Line %d] %s", e.Line, e.Message)
}

// Compiler lowers an AST into a Chunk of stack opcodes.
type Compiler struct {
	chunk   *Chunk
	curLine int
}

// NewCompiler creates a compiler that will emit into a chunk named name.
func NewCompiler(name string) *Compiler {
	return &Compiler{chunk: NewChunk(name)}
}

// Compile lowers a full program into its top-level Chunk.
func Compile(prog *ast.Program) (*Chunk, error) {
	c := NewCompiler("<program>")
	for _, stmt := range prog.Statements {
		if err := c.compileStatement(stmt); err != nil {
			return nil, err
		}
	}
	return c.chunk, nil
}

func (c *Compiler) emit(op OpCode, arg int) int {
	c.chunk.Code = append(c.chunk.Code, Instruction{Op: op, Arg: arg})
	c.chunk.Lines = append(c.chunk.Lines, c.curLine)
	return len(c.chunk.Code) - 1
}

func (c *Compiler) patchJump(at int, target int) {
	c.chunk.Code[at].Arg = target
}

func (c *Compiler) here() int { return len(c.chunk.Code) }

// addConstant interns v into the constant pool, deduplicating atomic
// values by structural equality. Function objects (nested Chunks) are
// never deduplicated against each other, since each compiles from a
// distinct declaration.
func (c *Compiler) addConstant(v value.Value) int {
	if v.Type != value.TypeHostObject {
		for idx, existing := range c.chunk.Constants {
			if existing.Type == v.Type && value.Equal(existing, v) {
				return idx
			}
		}
	}
	c.chunk.Constants = append(c.chunk.Constants, v)
	return len(c.chunk.Constants) - 1
}

// addFunctionConstant adds a nested function chunk as a distinct
// constant-pool entry and never deduplicates it.
func (c *Compiler) addFunctionConstant(fn *FunctionConstant) int {
	c.chunk.Constants = append(c.chunk.Constants, value.Call(fn))
	return len(c.chunk.Constants) - 1
}

// addName interns an identifier into the name pool, deduplicating by
// string equality.
func (c *Compiler) addName(name string) int {
	for idx, existing := range c.chunk.Names {
		if existing == name {
			return idx
		}
	}
	c.chunk.Names = append(c.chunk.Names, name)
	return len(c.chunk.Names) - 1
}

// FunctionConstant wraps a compiled function body as a callable
// constant-pool entry, so a function value behaves identically to a
// native built-in from the VM's CALL_FUNCTION handler's point of view.
type FunctionConstant struct {
	Chunk *Chunk
}

func (f *FunctionConstant) Arity() int   { return len(f.Chunk.Params) }
func (f *FunctionConstant) Name() string { return f.Chunk.Name }

func (c *Compiler) compileStatement(n ast.Node) error {
	c.curLine = n.Pos().Line
	switch s := n.(type) {
	case *ast.Assignment:
		if err := c.compileExpr(s.Value); err != nil {
			return err
		}
		c.emit(OpStoreName, c.addName(s.Name))
		return nil

	case *ast.SayStatement:
		if err := c.compileExpr(s.Expression); err != nil {
			return err
		}
		c.emit(OpSay, 0)
		return nil

	case *ast.IfStatement:
		return c.compileIf(s)

	case *ast.FunctionDeclaration:
		return c.compileFunctionDeclaration(s)

	case *ast.ReturnStatement:
		if s.Value == nil {
			c.emit(OpLoadConst, c.addConstant(value.Null))
		} else if err := c.compileExpr(s.Value); err != nil {
			return err
		}
		c.emit(OpReturnValue, 0)
		return nil

	case *ast.ExpressionStatement:
		if err := c.compileExpr(s.Expression); err != nil {
			return err
		}
		c.emit(OpPop, 0)
		return nil

	default:
		return &CompileError{Message: fmt.Sprintf("cannot compile statement of kind %v", n.Kind()), Line: n.Pos().Line}
	}
}

func (c *Compiler) compileIf(s *ast.IfStatement) error {
	if err := c.compileExpr(s.Condition); err != nil {
		return err
	}
	jumpToElse := c.emit(OpJumpIfFalse, -1)
	for _, stmt := range s.Then {
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}
	jumpToEnd := c.emit(OpJump, -1)
	c.patchJump(jumpToElse, c.here())
	for _, stmt := range s.Else {
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}
	c.patchJump(jumpToEnd, c.here())
	return nil
}

func (c *Compiler) compileFunctionDeclaration(s *ast.FunctionDeclaration) error {
	inner := NewCompiler(s.Name)
	inner.chunk.Params = append([]string{}, s.Params...)
	for _, stmt := range s.Body {
		if err := inner.compileStatement(stmt); err != nil {
			return err
		}
	}
	// Implicit null return when the body falls off the end.
	inner.emit(OpLoadConst, inner.addConstant(value.Null))
	inner.emit(OpReturnValue, 0)

	idx := c.addFunctionConstant(&FunctionConstant{Chunk: inner.chunk})
	c.emit(OpLoadConst, idx)
	c.emit(OpStoreName, c.addName(s.Name))
	return nil
}

func (c *Compiler) compileExpr(n ast.Node) error {
	if n.Pos().Line != 0 {
		c.curLine = n.Pos().Line
	}
	if folded, ok := tryFold(n); ok {
		c.emit(OpLoadConst, c.addConstant(folded))
		return nil
	}

	switch e := n.(type) {
	case *ast.NumberLiteral:
		c.emit(OpLoadConst, c.addConstant(value.Number(e.Value)))
		return nil
	case *ast.StringLiteral:
		c.emit(OpLoadConst, c.addConstant(value.String(e.Value)))
		return nil
	case *ast.BooleanLiteral:
		c.emit(OpLoadConst, c.addConstant(value.Bool(e.Value)))
		return nil
	case *ast.Identifier:
		c.emit(OpLoadName, c.addName(e.Name))
		return nil
	case *ast.BinaryExpression:
		return c.compileBinary(e)
	case *ast.CallExpression:
		return c.compileCall(e)
	case *ast.ObjectLiteral:
		return c.compileObjectLiteral(e)
	case *ast.ArrayLiteral:
		return c.compileArrayLiteral(e)
	default:
		return &CompileError{Message: fmt.Sprintf("cannot compile expression of kind %v", n.Kind()), Line: n.Pos().Line}
	}
}

// tryFold implements the mandated constant-folding optimisation: a binary
// expression whose operands are both numeric literals is folded to a
// single constant at compile time, for +, -, *, and /. Folding works
// bottom-up, so an operand that is itself a foldable binary expression
// counts as a numeric literal (2 + 3 * 4 folds to 14).
func tryFold(n ast.Node) (value.Value, bool) {
	bin, ok := n.(*ast.BinaryExpression)
	if !ok {
		return value.Null, false
	}
	operand := func(side ast.Node) (value.Value, bool) {
		if lit, ok := side.(*ast.NumberLiteral); ok {
			return value.Number(lit.Value), true
		}
		return tryFold(side)
	}
	lv, ok := operand(bin.Left)
	if !ok {
		return value.Null, false
	}
	rv, ok := operand(bin.Right)
	if !ok {
		return value.Null, false
	}
	var result value.Value
	var err error
	switch bin.Operator {
	case "+":
		result, err = value.Add(lv, rv)
	case "-":
		result, err = value.Sub(lv, rv)
	case "*":
		result, err = value.Mul(lv, rv)
	case "/":
		result, err = value.Div(lv, rv)
	default:
		return value.Null, false
	}
	if err != nil {
		// Division by zero between two literals is left to surface at
		// runtime with correct source position, not folded away.
		return value.Null, false
	}
	return result, true
}

var binaryOpcodes = map[string]OpCode{
	"+":  OpBinaryAdd,
	"-":  OpBinarySub,
	"*":  OpBinaryMul,
	"/":  OpBinaryDiv,
	"<":  OpBinaryLT,
	">":  OpBinaryGT,
	"<=": OpBinaryLE,
	">=": OpBinaryGE,
	"==": OpBinaryEQ,
	"!=": OpBinaryNE,
}

func (c *Compiler) compileBinary(e *ast.BinaryExpression) error {
	if err := c.compileExpr(e.Left); err != nil {
		return err
	}
	if err := c.compileExpr(e.Right); err != nil {
		return err
	}
	op, ok := binaryOpcodes[e.Operator]
	if !ok {
		return &CompileError{Message: fmt.Sprintf("unknown operator %q", e.Operator), Line: e.Pos().Line}
	}
	if op == OpBinaryAdd {
		// BINARY_ADD_FAST is a numeric-biased variant the VM uses to
		// skip the generic dispatch when it can; the compiler always
		// emits it for `+` and the VM falls back to the strict rules
		// when operands are not both numbers.
		c.emit(OpBinaryAddFast, 0)
		return nil
	}
	c.emit(op, 0)
	return nil
}

func (c *Compiler) compileCall(e *ast.CallExpression) error {
	for _, arg := range e.Arguments {
		if err := c.compileExpr(arg); err != nil {
			return err
		}
	}
	c.emit(OpLoadName, c.addName(e.Callee))
	c.emit(OpCallFunction, len(e.Arguments))
	return nil
}

func (c *Compiler) compileObjectLiteral(e *ast.ObjectLiteral) error {
	keys := make([]string, len(e.Pairs))
	for idx, pair := range e.Pairs {
		keys[idx] = pair.Key
		if err := c.compileExpr(pair.Value); err != nil {
			return err
		}
	}
	// BUILD_OBJECT's argument indexes a constant-pool key list; the VM
	// pops len(keys) values off the stack and zips them with the keys
	// in source order to build an ordered Map.
	c.emit(OpBuildObject, c.addConstant(value.Host(&KeyList{Keys: keys})))
	return nil
}

// KeyList records the key order of an object literal for BUILD_OBJECT.
type KeyList struct {
	Keys []string
}

func (c *Compiler) compileArrayLiteral(e *ast.ArrayLiteral) error {
	for _, elem := range e.Elements {
		if err := c.compileExpr(elem); err != nil {
			return err
		}
	}
	c.emit(OpBuildArray, len(e.Elements))
	return nil
}
