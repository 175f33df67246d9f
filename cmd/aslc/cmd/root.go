// Package cmd implements the aslc command-line driver: lexing,
// parsing, the two semantic passes and TAC emission, glued together
// with Cobra, grounded on the teacher's cmd/dwscript/cmd package.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "aslc",
	Short: "ASL compiler front end",
	Long: `aslc is a compiler for ASL, a small statically-typed imperative
language with functions, arrays and the four primitive types int, float,
bool and char.

It lexes and parses a source file, runs symbol resolution and type
checking over the result, and emits a textual three-address-code
listing for each function.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
