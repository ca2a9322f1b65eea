// Package cmd implements the esparser CLI: a thin front-end that
// exercises internal/parser the way a downstream bytecode compiler or
// editor tool would (SPEC_FULL.md §2, "cmd/esparser").
//
// Grounded in the teacher's cmd/dwscript/cmd package: a package-level
// rootCmd plus one file per subcommand, version info set by build flags,
// and exitWithError's plain fmt.Fprintf(os.Stderr, ...) in place of a
// logging library (SPEC_FULL.md §10.1 - the teacher carries none for this
// slice of functionality, so neither does this CLI).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "esparser",
	Short: "ECMAScript-superset recursive-descent parser",
	Long: `esparser parses ECMAScript 5 plus the ES6 surface (let/const,
classes, arrow functions, generators, destructuring, modules, template
literals, spread/rest) and reports either a syntax-validity verdict or
the parsed AST, for consumption by a downstream bytecode compiler.`,
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

	rootCmd.PersistentFlags().StringP("profile", "p", "es2015-script", "parser config profile (built-in name or YAML file path)")
	rootCmd.PersistentFlags().Bool("explain", false, "show structured error detail (production, expected, found, notes) after the first-failure message")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
