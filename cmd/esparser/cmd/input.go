package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/scriptvm/esparser/internal/ast"
	"github.com/scriptvm/esparser/internal/config"
	"github.com/scriptvm/esparser/internal/fncache"
	"github.com/scriptvm/esparser/internal/parser"
	"github.com/spf13/cobra"
)

// readInput returns the source to parse: args[0] as a file path, or
// stdin if no file is given - the same two-source convention as the
// teacher's cmd/dwscript/cmd/parse.go runParse.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// loadProfile resolves the --profile persistent flag into an
// internal/config.Options value.
func loadProfile(cmd *cobra.Command) (*config.Options, error) {
	profile, _ := cmd.Flags().GetString("profile")
	if profile == "" {
		return config.Default(), nil
	}
	return config.Load(profile)
}

// parserMode maps a config.Options profile onto the internal/parser.Mode
// the core grammar actually branches on (only Program and Module are
// wired into internal/parser.Mode; see config.ParseMode).
func parserMode(opts *config.Options) parser.Mode {
	switch opts.ParseMode {
	case config.ParseModeModuleAnalyze, config.ParseModeModuleEvaluate:
		return parser.ModeModule
	default:
		return parser.ModeProgram
	}
}

// runParse parses source under opts with a FullBuilder and a fresh
// per-invocation function-body cache (SPEC_FULL.md §2, component 4 -
// one Provider per source lifetime), returning the parsed node, the
// parser (for Errors()/FirstError()), and the cache (for cache-stat).
func runParse(source string, opts *config.Options) (ast.Node, *parser.Parser, *fncache.Provider) {
	cache := fncache.NewProvider()
	p := parser.New(source, parserMode(opts), ast.FullBuilder{}, cache)
	node := p.Parse()
	return node, p, cache
}
