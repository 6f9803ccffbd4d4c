// Package repl implements the interactive shell: a line-oriented
// read/evaluate/print loop with multi-line block entry and a handful of
// shell commands.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/interp"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/lexer"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/parser"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const banner = `   _           _   _
  (_)_   _ ___(_)_|_|_  _ _
  | | | | / __| | | | || ' \
  | | |_| \__ \ |_| |_||_||_|
 _/ |\__,_|___/
|__/`

// Shell runs the interactive Jusu++ session.
type Shell struct {
	Version string
	Prompt  string
}

// NewShell creates a shell reporting the given version string.
func NewShell(version string) *Shell {
	return &Shell{Version: version, Prompt: "jusu>>> "}
}

func (s *Shell) printBanner(w io.Writer) {
	line := strings.Repeat("-", 40)
	blueColor.Fprintf(w, "%s\n", line)
	greenColor.Fprintf(w, "%s\n", banner)
	blueColor.Fprintf(w, "%s\n", line)
	yellowColor.Fprintf(w, "Jusu++ %s\n", s.Version)
	blueColor.Fprintf(w, "%s\n", line)
	cyanColor.Fprintln(w, "Type statements and press enter. A line ending in ':' opens a block,")
	cyanColor.Fprintln(w, "closed by a lone 'end' line. Commands: exit, help, clear, vars.")
	blueColor.Fprintf(w, "%s\n", line)
}

// Run starts the read/evaluate/print loop, writing all shell chrome and
// program output to out.
func (s *Shell) Run(out io.Writer) error {
	s.printBanner(out)

	rl, err := readline.NewEx(&readline.Config{Prompt: s.Prompt})
	if err != nil {
		return err
	}
	defer rl.Close()

	it := interp.New(out)
	var buf strings.Builder
	inBlock := false

	for {
		prompt := s.Prompt
		if inBlock {
			prompt = "....... "
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(out, "Goodbye.")
			return nil
		}
		trimmed := strings.TrimSpace(line)

		if !inBlock {
			switch trimmed {
			case "":
				continue
			case "exit", "quit", "q":
				fmt.Fprintln(out, "Goodbye.")
				return nil
			case "help", "?":
				s.printHelp(out)
				continue
			case "clear":
				fmt.Fprint(out, "\033[2J\033[H")
				continue
			case "vars":
				s.printVars(out, it)
				continue
			}
		}

		rl.SaveHistory(line)
		buf.WriteString(line)
		buf.WriteByte('\n')

		if strings.HasSuffix(trimmed, ":") {
			inBlock = true
			continue
		}
		if inBlock {
			if trimmed == "end" {
				inBlock = false
			} else {
				continue
			}
		}

		s.execute(out, it, buf.String())
		buf.Reset()
	}
}

func (s *Shell) printHelp(out io.Writer) {
	cyanColor.Fprintln(out, "exit | quit | q   leave the shell")
	cyanColor.Fprintln(out, "help | ?          show this message")
	cyanColor.Fprintln(out, "clear             clear the screen")
	cyanColor.Fprintln(out, "vars              list top-level bindings")
}

func (s *Shell) printVars(out io.Writer, it *interp.Interpreter) {
	names := it.Globals().Names()
	for _, name := range names {
		v, _ := it.Globals().Get(name)
		fmt.Fprintf(out, "%s = %s\n", name, value.Inspect(v))
	}
}

func (s *Shell) execute(out io.Writer, it *interp.Interpreter, source string) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(out, "Runtime Error: %v\n", r)
		}
	}()

	toks, err := lexer.New(source).Tokenize()
	if err != nil {
		reportSyntax(out, err)
		return
	}
	prog, err := parser.New(toks).ParseProgram()
	if err != nil {
		reportSyntax(out, err)
		return
	}
	if err := it.Run(prog); err != nil {
		reportRuntime(out, err)
	}
}

// reportSyntax and reportRuntime print a classified error the same way
// `run`'s own reportSyntax/reportRuntime do, so a syntax or runtime
// error looks identical whether it came from a file or the shell.
func reportSyntax(out io.Writer, err error) {
	redColor.Fprintf(out, "%s %s\n", errs.Syntax.Label(), err.Error())
}

func reportRuntime(out io.Writer, err error) {
	if cerr, ok := err.(*errs.Error); ok {
		redColor.Fprintln(out, cerr.Report())
		return
	}
	redColor.Fprintf(out, "%s %s\n", errs.Runtime.Label(), err.Error())
}
