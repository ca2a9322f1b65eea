package parser

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/scriptvm/esparser/internal/ast"
	"github.com/scriptvm/esparser/internal/fncache"
)

// TestExpressionSnapshots snapshots the parenthesized String() rendering of
// a single top-level expression statement for each source below, the same
// go-snaps.MatchSnapshot call the teacher uses for fixture output
// (internal/interp/fixture_test.go). A snapshot mismatch here means
// precedence climbing or associativity shifted, not just that some output
// byte changed - every case is a single expression statement so
// Program.Body[0].(*ast.ExpressionStatement).Expression.String() is its
// parse tree with every binary, logical and conditional node parenthesized
// (an assignment prints without parentheses of its own).
func TestExpressionSnapshots(t *testing.T) {
	cases := map[string]string{
		"arithmetic_precedence": "1 + 2 * 3 - 4 / 2;",
		"logical_short_circuit": "a && b || c && d;",
		"nullish_coalescing":    "a ?? b ?? c;",
		"right_assoc_exponent":  "2 ** 3 ** 2;",
		"mixed_comparison":      "a < b == c > d;",
		"assignment_chain":      "a = b = c + 1;",
		"conditional_nesting":   "a ? b : c ? d : e;",
	}

	for name, source := range cases {
		name, source := name, source
		t.Run(name, func(t *testing.T) {
			p := New(source, ModeProgram, ast.FullBuilder{}, fncache.NewProvider())
			node := p.Parse()

			if first := p.FirstError(); first != nil {
				t.Fatalf("%s: unexpected parse error: %s", source, first.ToMessage())
			}

			program, ok := node.(*ast.Program)
			if !ok || len(program.Body) != 1 {
				t.Fatalf("%s: expected a single top-level statement, got %T", source, node)
			}
			exprStmt, ok := program.Body[0].(*ast.ExpressionStatement)
			if !ok {
				t.Fatalf("%s: expected an expression statement, got %T", source, program.Body[0])
			}

			snaps.MatchSnapshot(t, name, exprStmt.Expression.String())
		})
	}
}
