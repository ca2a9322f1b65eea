package cmd

import (
	"fmt"
	"os"

	"github.com/scriptvm/esparser/internal/diag"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse source and report a syntax-validity verdict",
	Long: `Parse source and print "ok" on success, or the first syntax error
(spec.md §6/§7's external first-failure contract) to stderr otherwise.

If no file is given, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	source, err := readInput(args)
	if err != nil {
		return err
	}
	opts, err := loadProfile(cmd)
	if err != nil {
		return err
	}

	_, p, _ := runParse(source, opts)

	if first := p.FirstError(); first != nil {
		explain, _ := cmd.Flags().GetBool("explain")
		file := ""
		if len(args) > 0 {
			file = args[0]
		}
		if explain {
			fmt.Fprintln(os.Stderr, diag.Explain(first, source, file, false))
		} else {
			fmt.Fprintln(os.Stderr, diag.Format(first, source, file, false))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	fmt.Println("ok")
	return nil
}
