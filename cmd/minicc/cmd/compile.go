package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/minicc/internal/compiler"
	"github.com/spf13/cobra"
)

var (
	outputFile     string
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a Mini-C source file to LLVM IR",
	Long: `Compile scans, parses, and semantically analyzes a Mini-C source file,
then writes its typed SSA-form IR as a .ll file.

Examples:
  # Compile to the default output.ll
  minicc compile factorial.mc

  # Compile to a custom path
  minicc compile factorial.mc -o factorial.ll`,
	Args: cobra.ExactArgs(1),
	RunE: compileFile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "output.ll", "output file")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func compileFile(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	ctx := compiler.New(filename, string(content))
	result := ctx.Run()

	if len(result.Diagnostics) > 0 {
		for _, d := range result.Diagnostics {
			if compileVerbose {
				fmt.Fprintln(os.Stderr, d.WithSourceContext(string(content)))
			} else {
				fmt.Fprintln(os.Stderr, d.String())
			}
		}
		return fmt.Errorf("compilation failed with %d error(s)", len(result.Diagnostics))
	}

	if err := os.WriteFile(outputFile, []byte(result.IR), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "IR written to %s\n", outputFile)
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outputFile)
	}

	return nil
}
