package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "brewin",
	Short: "Brewin interpreter",
	Long: `brewin is a tree-walking interpreter for Brewin, a small imperative
language with first-class functions-as-statements, lexical scoping,
structured data, exception handling, and call-by-need argument evaluation.

The interpreter itself never parses source text: it executes an
already-built AST. This CLI reads Brewin programs written in fromtext, a
small S-expression encoding bundled as this CLI's own reference front end
(see internal/frontend/fromtext) rather than a claimed canonical syntax.`,
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

	rootCmd.PersistentFlags().StringP("dialect", "d", "v4", "language dialect: v1, v2, v3, or v4")
	rootCmd.PersistentFlags().Int("max-recursion", 0, "maximum activation-record depth (0 = interpreter default)")
}
