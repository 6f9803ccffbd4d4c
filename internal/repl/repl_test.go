package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/interp"
)

func init() {
	// Force plain output regardless of whether tests run under a tty, so
	// assertions on exact text don't depend on the environment.
	color.NoColor = true
}

func TestExecuteEvaluatesAndPrints(t *testing.T) {
	var out bytes.Buffer
	it := interp.New(&out)
	s := NewShell("test")
	s.execute(&out, it, "say \"hello\"\n")
	if out.String() != "hello\n" {
		t.Errorf("output = %q, want %q", out.String(), "hello\n")
	}
}

func TestExecuteKeepsStateAcrossCalls(t *testing.T) {
	var out bytes.Buffer
	it := interp.New(&out)
	s := NewShell("test")
	s.execute(&out, it, "x = 5\n")
	out.Reset()
	s.execute(&out, it, "say x\n")
	if out.String() != "5.0\n" {
		t.Errorf("output = %q, want %q", out.String(), "5.0\n")
	}
}

func TestExecuteReportsSyntaxError(t *testing.T) {
	var out bytes.Buffer
	it := interp.New(&out)
	s := NewShell("test")
	s.execute(&out, it, "x = (1 + 2\n")
	if !strings.Contains(out.String(), "Syntax Error:") {
		t.Errorf("output = %q, want it prefixed with %q", out.String(), "Syntax Error:")
	}
}

func TestExecuteReportsRuntimeErrorClassified(t *testing.T) {
	var out bytes.Buffer
	it := interp.New(&out)
	s := NewShell("test")
	s.execute(&out, it, "x = 1 / 0\n")
	if !strings.Contains(out.String(), "Math Error:") {
		t.Errorf("output = %q, want it to be prefixed with Math Error:", out.String())
	}
}

func TestPrintVarsListsTopLevelBindings(t *testing.T) {
	var out bytes.Buffer
	it := interp.New(&out)
	s := NewShell("test")
	s.execute(&out, it, "x = 5\ny = \"hi\"\n")
	out.Reset()
	s.printVars(&out, it)
	got := out.String()
	if !strings.Contains(got, "x = 5.0") || !strings.Contains(got, `y = hi`) {
		t.Errorf("printVars output = %q, want it to list x and y", got)
	}
}

func TestPrintHelpMentionsAllCommands(t *testing.T) {
	var out bytes.Buffer
	s := NewShell("test")
	s.printHelp(&out)
	got := out.String()
	for _, want := range []string{"exit", "help", "clear", "vars"} {
		if !strings.Contains(got, want) {
			t.Errorf("printHelp output = %q, missing %q", got, want)
		}
	}
}
