package cmd

import (
	"fmt"
	"os"

	"github.com/aslc/aslc/internal/codegen"
	"github.com/aslc/aslc/internal/lexer"
	"github.com/aslc/aslc/internal/parser"
	"github.com/aslc/aslc/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	outputFile string
	emitTAC    bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile an ASL source file",
	Long: `Lex and parse an ASL source file, run symbol resolution and type
checking over it, and emit the resulting three-address-code listing.

Examples:
  # Print the TAC listing to stdout
  aslc compile program.asl

  # Write the TAC listing to a file instead
  aslc compile program.asl -o program.tac

  # Only check the program, without emitting TAC
  aslc compile program.asl --emit-tac=false`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file for the emitted TAC (default: stdout)")
	compileCmd.Flags().BoolVar(&emitTAC, "emit-tac", true, "emit the three-address-code listing after a successful compile")
}

func runCompile(cmd *cobra.Command, args []string) error {
	filename := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	src := string(content)

	if verbose {
		fmt.Fprintf(os.Stderr, "compiling %s...\n", filename)
	}

	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	ctx := semantic.NewContext()
	semantic.NewManager(semantic.SymbolsPass{}, semantic.TypeCheckPass{}).RunAll(prog, ctx)

	if ctx.Errors.HasErrors() {
		fmt.Fprint(os.Stderr, ctx.Errors.RenderWithSource(filename, src))
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(ctx.Errors.All()))
	}
	if verbose {
		fmt.Fprintln(os.Stderr, "semantic analysis passed with no diagnostics")
	}

	subs := codegen.CodeGenPass{}.Run(prog, ctx)
	if !emitTAC {
		return nil
	}

	listing := codegen.Render(subs)
	if outputFile == "" {
		fmt.Print(listing)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(listing), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "TAC written to %s\n", outputFile)
	}
	return nil
}
