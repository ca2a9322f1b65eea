package cmd

import (
	"fmt"

	"github.com/scriptvm/esparser/internal/lexer"
	"github.com/scriptvm/esparser/internal/token"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize source and print one token per line",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	source, err := readInput(args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	for {
		tok := l.Next(lexer.ExprPosition)
		fmt.Println(tok.String())
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}
