package cmd

import (
	"fmt"
	"os"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/bytecode"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/interp"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/lexer"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/parser"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/regvm"
	"github.com/spf13/cobra"
)

var (
	useStackVM    bool
	useRegisterVM bool
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Compile and execute a Jusu++ source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&useStackVM, "vm", false, "execute with the stack VM instead of the tree-walking interpreter")
	runCmd.Flags().BoolVar(&useRegisterVM, "regvm", false, "execute with the register VM (subset-limited, no branch opcodes)")
}

// silentError has already been reported to standard error by the code
// that returns it; it exists only to carry a non-zero exit code back
// through cobra without main printing the message a second time.
type silentError struct{}

func (silentError) Error() string { return "" }

func runFile(_ *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	toks, lexErr := lexer.New(string(source)).Tokenize()
	if lexErr != nil {
		reportSyntax(lexErr)
		return silentError{}
	}

	prog, parseErr := parser.New(toks).ParseProgram()
	if parseErr != nil {
		reportSyntax(parseErr)
		return silentError{}
	}

	switch {
	case useRegisterVM:
		chunk, err := regvm.Compile(prog)
		if err != nil {
			reportSyntax(err)
			return silentError{}
		}
		vm := regvm.NewVM(os.Stdout)
		if runErr := vm.Run(chunk); runErr != nil {
			reportRuntime(runErr)
			return silentError{}
		}

	case useStackVM:
		chunk, err := bytecode.Compile(prog)
		if err != nil {
			reportSyntax(err)
			return silentError{}
		}
		vm := bytecode.NewVM(os.Stdout)
		if runErr := vm.Run(chunk); runErr != nil {
			reportRuntime(runErr)
			return silentError{}
		}

	default:
		it := interp.New(os.Stdout)
		if runErr := it.Run(prog); runErr != nil {
			reportRuntime(runErr)
			return silentError{}
		}
	}

	return nil
}

// reportSyntax writes a compile-time (lexer/parser) failure to standard
// error under the Syntax classification; these errors aren't *errs.Error
// values since they abort before any runtime value exists.
func reportSyntax(err error) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errs.Syntax.Label(), err.Error())
}

func reportRuntime(err error) {
	if cerr, ok := err.(*errs.Error); ok {
		fmt.Fprintln(os.Stderr, cerr.Report())
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", errs.Runtime.Label(), err.Error())
}
