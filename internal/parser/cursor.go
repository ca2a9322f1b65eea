// Package parser implements the ECMAScript recursive-descent parser core
// spec.md 2 through 5 describe: statement/expression grammar with
// precedence climbing, destructuring patterns, speculative parses via
// SavePoint, the scope stack, the function-body skip-reparse cache, and
// the two-tier error model.
//
// Grounded in the teacher's internal/parser package: TokenCursor's
// immutable buffered-lookahead design (internal/parser/cursor.go), the
// combinator helpers for list/separator parsing (internal/parser/
// combinators.go), and the overall Parser/New/ParseProgram shape
// (internal/parser/parser.go) - generalized from DWScript's Pascal
// grammar to the ECMAScript grammar spec.md enumerates.
package parser

import (
	"github.com/scriptvm/esparser/internal/lexer"
	"github.com/scriptvm/esparser/internal/token"
)

// cursor is a buffered, backtrackable view over the lexer's token stream
// (spec.md 4.1, "Speculative parsing"). Unlike the teacher's immutable
// TokenCursor, tokens are scanned under an explicit ScanFlags the caller
// supplies at Advance time, since regex-vs-divide and template-tail
// disambiguation depend on grammar position, not token history alone.
type cursor struct {
	lex     *lexer.Lexer
	tokens  []token.Token
	index   int
}

func newCursor(lex *lexer.Lexer) *cursor {
	c := &cursor{lex: lex, tokens: make([]token.Token, 0, 32)}
	c.tokens = append(c.tokens, lex.Next(lexer.ExprPosition))
	return c
}

// Current returns the token at the cursor's position.
func (c *cursor) Current() token.Token { return c.tokens[c.index] }

// Advance moves past the current token, scanning a fresh one under flags
// if it has not already been buffered by a prior speculative pass.
func (c *cursor) Advance(flags lexer.ScanFlags) token.Token {
	c.index++
	if c.index >= len(c.tokens) {
		c.tokens = append(c.tokens, c.lex.Next(flags))
	}
	return c.Current()
}

// Mark returns a cursor position a later ResetTo call rewinds to - the
// cheap half of spec.md 4.1's speculative-parse machinery (pure lookahead
// that never touches scope or counters).
func (c *cursor) Mark() int { return c.index }

// ResetTo rewinds the cursor to a position returned by Mark.
func (c *cursor) ResetTo(mark int) { c.index = mark }

// RescanTemplateTail re-enters the lexer directly to resume a
// template literal after a `}` the cursor has already buffered as a
// punctuator - used only when the buffered token must be discarded and
// replaced (spec.md 2.4, "scanTrailingTemplateString").
func (c *cursor) RescanTemplateTail() token.Token {
	tok := c.lex.ScanTrailingTemplateString()
	c.tokens[c.index] = tok
	return tok
}

// CurrentOffset reports the lexer's current scan offset, used by the
// function-body cache to record a span start/end (spec.md 4.8). Valid
// only when the cursor is not sitting on buffered lookahead tokens.
func (c *cursor) CurrentOffset() int { return c.lex.CurrentOffset() }

// JumpTo repositions the lexer directly to a cached function-body end
// offset and drops every buffered lookahead token from the current
// position onward, replacing them with one freshly scanned token - the
// skip-reparse half of spec.md 4.8: on a cache hit the parser never
// tokenizes the function body it is skipping.
func (c *cursor) JumpTo(offset, line, lineStart int) token.Token {
	c.lex.SetOffset(offset)
	c.lex.SetLineNumber(line, lineStart)
	tok := c.lex.Next(lexer.FlagNone)
	c.tokens = append(c.tokens[:c.index], tok)
	return tok
}
