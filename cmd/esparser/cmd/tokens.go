package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/scriptvm/esparser/internal/lexer"
	"github.com/scriptvm/esparser/internal/token"
	"github.com/spf13/cobra"
)

var tokensJSON bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize source and print the full token stream as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().BoolVar(&tokensJSON, "json", true, "emit JSON (the only supported form; the output is JSON whatever this flag says)")
}

type tokenRecord struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

func runTokens(cmd *cobra.Command, args []string) error {
	source, err := readInput(args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	var records []tokenRecord
	for {
		tok := l.Next(lexer.ExprPosition)
		records = append(records, tokenRecord{
			Kind: tok.Kind.String(), Literal: tok.Literal,
			Line: tok.Start.Line, Column: tok.Start.Column,
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
