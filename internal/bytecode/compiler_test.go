package bytecode

import (
	"testing"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/lexer"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/parser"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
)

func mustCompile(t *testing.T, source string) *Chunk {
	t.Helper()
	toks, err := lexer.New(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", source, err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", source, err)
	}
	chunk, err := Compile(prog)
	if err != nil {
		t.Fatalf("Compile(%q) returned error: %v", source, err)
	}
	return chunk
}

func TestCompileConstantFoldsLiteralArithmetic(t *testing.T) {
	chunk := mustCompile(t, "x = 2 + 3 * 4\n")
	// The multiplication and addition both have numeric-literal operands,
	// so the whole expression folds to a single LOAD_CONST of 14.
	var loadConsts int
	for _, inst := range chunk.Code {
		if inst.Op == OpLoadConst {
			loadConsts++
			if chunk.Constants[inst.Arg].AsNumber() != 14 {
				t.Errorf("folded constant = %v, want 14", chunk.Constants[inst.Arg])
			}
		}
		if inst.Op == OpBinaryAdd || inst.Op == OpBinaryAddFast || inst.Op == OpBinaryMul {
			t.Errorf("expected no arithmetic opcode in folded chunk, found %v", inst.Op)
		}
	}
	if loadConsts != 1 {
		t.Errorf("got %d LOAD_CONST instructions, want 1", loadConsts)
	}
}

func TestCompileDivisionByZeroLiteralsIsNotFolded(t *testing.T) {
	chunk := mustCompile(t, "x = 1 / 0\n")
	var sawDiv bool
	for _, inst := range chunk.Code {
		if inst.Op == OpBinaryDiv {
			sawDiv = true
		}
	}
	if !sawDiv {
		t.Error("expected BINARY_DIV to survive to the VM so the zero-division error carries correct position")
	}
}

func TestCompileIfEmitsJumpsAroundElse(t *testing.T) {
	chunk := mustCompile(t, "if x > 5:\nsay \"big\"\nelse:\nsay \"small\"\nend\n")
	var sawJumpIfFalse, sawJump bool
	for _, inst := range chunk.Code {
		switch inst.Op {
		case OpJumpIfFalse:
			sawJumpIfFalse = true
		case OpJump:
			sawJump = true
		}
	}
	if !sawJumpIfFalse || !sawJump {
		t.Errorf("expected both JUMP_IF_FALSE and JUMP in compiled if/else, code = %v", chunk.Code)
	}
}

func TestCompileFunctionDeclarationProducesFunctionConstant(t *testing.T) {
	chunk := mustCompile(t, "function add(a, b):\nreturn a + b\nend\n")
	found := false
	for _, c := range chunk.Constants {
		if c.Type == value.TypeCallable {
			if fc, ok := c.AsCallable().(*FunctionConstant); ok {
				found = true
				if fc.Arity() != 2 {
					t.Errorf("FunctionConstant.Arity() = %d, want 2", fc.Arity())
				}
				if fc.Name() != "add" {
					t.Errorf("FunctionConstant.Name() = %q, want add", fc.Name())
				}
			}
		}
	}
	if !found {
		t.Fatal("expected a FunctionConstant in the chunk's constant pool")
	}
}

func TestCompileCallEmitsLoadNameThenCallFunction(t *testing.T) {
	chunk := mustCompile(t, "say add(1, 2)\n")
	var sawCall bool
	for i, inst := range chunk.Code {
		if inst.Op == OpCallFunction {
			sawCall = true
			if i == 0 || chunk.Code[i-1].Op != OpLoadName {
				t.Errorf("CALL_FUNCTION at %d is not preceded by LOAD_NAME: %v", i, chunk.Code)
			}
			if inst.Arg != 2 {
				t.Errorf("CALL_FUNCTION arg = %d, want 2 (argument count)", inst.Arg)
			}
		}
	}
	if !sawCall {
		t.Fatal("expected a CALL_FUNCTION instruction")
	}
}

func TestCompileObjectLiteralRecordsKeyOrder(t *testing.T) {
	chunk := mustCompile(t, `x = {name: "Alice", age: 20}` + "\n")
	var found bool
	for _, inst := range chunk.Code {
		if inst.Op == OpBuildObject {
			found = true
			kl := chunk.Constants[inst.Arg].AsHost().(*KeyList)
			if len(kl.Keys) != 2 || kl.Keys[0] != "name" || kl.Keys[1] != "age" {
				t.Errorf("KeyList.Keys = %v, want [name age]", kl.Keys)
			}
		}
	}
	if !found {
		t.Fatal("expected a BUILD_OBJECT instruction")
	}
}

func TestCompileArrayLiteralArgIsElementCount(t *testing.T) {
	chunk := mustCompile(t, "x = [1, 2, 3]\n")
	var found bool
	for _, inst := range chunk.Code {
		if inst.Op == OpBuildArray {
			found = true
			if inst.Arg != 3 {
				t.Errorf("BUILD_ARRAY arg = %d, want 3", inst.Arg)
			}
		}
	}
	if !found {
		t.Fatal("expected a BUILD_ARRAY instruction")
	}
}
