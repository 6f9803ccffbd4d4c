package regvm

import (
	"testing"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/lexer"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/parser"
)

func mustCompile(t *testing.T, source string) (*Chunk, error) {
	t.Helper()
	toks, err := lexer.New(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", source, err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", source, err)
	}
	return Compile(prog)
}

func TestCompileIfIsRejected(t *testing.T) {
	_, err := mustCompile(t, "if x > 5:\nsay \"big\"\nend\n")
	if err == nil {
		t.Fatal("expected an error compiling `if` in the register backend")
	}
	if _, ok := err.(*CompileError); !ok {
		t.Fatalf("error = %#v, want *CompileError", err)
	}
}

func TestCompileArithmeticAllocatesRegisters(t *testing.T) {
	chunk, err := mustCompile(t, "x = 2 + 3 * 4\n")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	var sawAdd, sawMul bool
	for _, inst := range chunk.Code {
		if inst.Op == OpAdd {
			sawAdd = true
		}
		if inst.Op == OpMul {
			sawMul = true
		}
	}
	if !sawAdd || !sawMul {
		t.Errorf("expected both OpAdd and OpMul, code = %v", chunk.Code)
	}
	if chunk.MaxReg < 2 {
		t.Errorf("MaxReg = %d, want at least 2 registers used", chunk.MaxReg)
	}
}

func TestCompileFunctionDeclarationSetsNumParams(t *testing.T) {
	chunk, err := mustCompile(t, "function add(a, b):\nreturn a + b\nend\n")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	var found bool
	for _, c := range chunk.Constants {
		if fc, ok := c.AsCallable().(*FunctionConstant); ok {
			found = true
			if fc.Arity() != 2 {
				t.Errorf("Arity() = %d, want 2", fc.Arity())
			}
			if fc.Chunk.NumParams != 2 {
				t.Errorf("NumParams = %d, want 2", fc.Chunk.NumParams)
			}
		}
	}
	if !found {
		t.Fatal("expected a FunctionConstant in the constant pool")
	}
}

func TestCompileSayCompilesToDiscardedCall(t *testing.T) {
	chunk, err := mustCompile(t, `say "hi"` + "\n")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	var found bool
	for _, inst := range chunk.Code {
		if inst.Op == OpCall && inst.Dst == -1 {
			found = true
		}
	}
	if !found {
		t.Error("expected `say` to compile to an OpCall with Dst == -1 (discarded result)")
	}
}

func TestCompileObjectLiteralIsRejected(t *testing.T) {
	_, err := mustCompile(t, `x = {a: 1}` + "\n")
	if err == nil {
		t.Fatal("expected an error compiling an object literal in the register backend")
	}
	if _, ok := err.(*CompileError); !ok {
		t.Fatalf("error = %#v, want *CompileError", err)
	}
}

func TestCompileArrayLiteralIsRejected(t *testing.T) {
	_, err := mustCompile(t, "x = [1, 2, 3]\n")
	if err == nil {
		t.Fatal("expected an error compiling an array literal in the register backend")
	}
	if _, ok := err.(*CompileError); !ok {
		t.Fatalf("error = %#v, want *CompileError", err)
	}
}
