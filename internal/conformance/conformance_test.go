// Package conformance holds property tests that check the interpreter and
// the stack VM agree on observable output for randomly generated programs
// drawn from their shared supported subset (assignment, nested if/else,
// arithmetic and comparisons, say).
package conformance

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/bytecode"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/interp"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/lexer"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/parser"
)

var genVars = []string{"a", "b", "c"}
var genOps = []string{"<", ">", "<=", ">=", "==", "!="}

// genProgram deterministically builds a nested if/assignment program from
// seed: a handful of numeric assignments, then depth levels of nested
// if/else blocks that reassign a variable based on a comparison, then a say
// of every variable. The same seed always yields the same source text.
func genProgram(seed int64, depth int) string {
	r := rand.New(rand.NewSource(seed))
	var b strings.Builder
	for _, v := range genVars {
		fmt.Fprintf(&b, "%s = %d - 10\n", v, r.Intn(21))
	}
	genIf(&b, r, depth)
	for _, v := range genVars {
		fmt.Fprintf(&b, "say %s\n", v)
	}
	return b.String()
}

func genIf(b *strings.Builder, r *rand.Rand, depth int) {
	if depth <= 0 {
		return
	}
	left := genVars[r.Intn(len(genVars))]
	right := genVars[r.Intn(len(genVars))]
	op := genOps[r.Intn(len(genOps))]
	fmt.Fprintf(b, "if %s %s %s:\n", left, op, right)
	fmt.Fprintf(b, "%s = %d - 10\n", genVars[r.Intn(len(genVars))], r.Intn(21))
	genIf(b, r, depth-1)
	b.WriteString("else:\n")
	fmt.Fprintf(b, "%s = %d - 10\n", genVars[r.Intn(len(genVars))], r.Intn(21))
	genIf(b, r, depth-1)
	b.WriteString("end\n")
}

func runInterpreter(t *testing.T, source string) string {
	t.Helper()
	toks, err := lexer.New(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", source, err)
	}
	prog, err := parser.New(toks).ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", source, err)
	}
	var out bytes.Buffer
	it := interp.New(&out)
	if err := it.Run(prog); err != nil {
		t.Fatalf("interp.Run(%q): %v", source, err)
	}
	return out.String()
}

func runStackVM(t *testing.T, source string) string {
	t.Helper()
	toks, err := lexer.New(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", source, err)
	}
	prog, err := parser.New(toks).ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", source, err)
	}
	chunk, err := bytecode.Compile(prog)
	if err != nil {
		t.Fatalf("bytecode.Compile(%q): %v", source, err)
	}
	var out bytes.Buffer
	vm := bytecode.NewVM(&out)
	if err := vm.Run(chunk); err != nil {
		t.Fatalf("bytecode.VM.Run(%q): %v", source, err)
	}
	return out.String()
}

// TestInterpreterAndStackVMAgreeOnNestedIfPrograms randomises nested
// if/assignment programs and asserts identical standard-output traces
// between the interpreter and the stack VM.
func TestInterpreterAndStackVMAgreeOnNestedIfPrograms(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		source := genProgram(seed, 3)
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			want := runInterpreter(t, source)
			got := runStackVM(t, source)
			if got != want {
				t.Errorf("stack VM output diverged from interpreter for program:\n%s\ninterpreter = %q\nstack VM    = %q", source, want, got)
			}
		})
	}
}

// TestInterpreterAndStackVMAgreeOnNestedClosures is a targeted regression
// for a call frame that sees only its own parameters instead of a snapshot
// of the bindings visible at the call site: a nested function declared
// inside another function must still see its enclosing function's
// parameters when called.
func TestInterpreterAndStackVMAgreeOnNestedClosures(t *testing.T) {
	source := "function outer(a):\n" +
		"function helper():\n" +
		"return a\n" +
		"end\n" +
		"return helper()\n" +
		"end\n" +
		"say outer(5)\n"

	want := runInterpreter(t, source)
	got := runStackVM(t, source)
	if got != want {
		t.Errorf("stack VM output diverged from interpreter:\ninterpreter = %q\nstack VM    = %q", want, got)
	}
	if want != "5.0\n" {
		t.Fatalf("interpreter output = %q, want %q", want, "5.0\n")
	}
}
