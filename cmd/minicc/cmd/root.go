package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "minicc",
	Short: "Mini-C compiler front end",
	Long: `minicc is a single-pass front end for Mini-C: a small C subset with
int/float/bool scalars, functions, externs, globals, and if/while/return
control flow.

It scans, parses, and semantically analyzes a Mini-C source file, then
emits its typed SSA-form IR as a .ll file for an external LLVM backend
to consume.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
