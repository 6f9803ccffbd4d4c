package cmd

import (
	"fmt"
	"os"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/repl"
	"github.com/spf13/cobra"
)

// Version is the driver's reported version; set by build flags.
var Version = "0.1.0-dev"

var showVersion bool

var rootCmd = &cobra.Command{
	Use:   "jusu",
	Short: "Jusu++ interpreter, compiler, and virtual machines",
	Long:  `jusu runs Jusu++ source files and hosts an interactive shell for the Jusu++ scripting language.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("jusu version %s\n", Version)
			return nil
		}
		shell := repl.NewShell(Version)
		return shell.Run(os.Stdout)
	},
}

func init() {
	// -v is its shorthand; cobra's own Version field doesn't offer a
	// shorthand flag, so this is wired by hand instead.
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version and exit")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
