// Package ast defines the AST node types the parser's tree builders
// construct (spec.md 2.5, 4.10) plus the two concrete builders the
// parser is written once against: Full (internal/ast FullBuilder) and
// SyntaxOnly (internal/ast SyntaxOnlyBuilder).
//
// Grounded in the teacher's internal/ast package (Node/Expression/
// Statement marker interfaces, TokenLiteral/String/Pos methods on every
// node - internal/ast/ast.go) and generalized from DWScript's
// Pascal-shaped statements to the ECMAScript grammar spec.md enumerates.
package ast

import "github.com/scriptvm/esparser/internal/token"

// Node is the base interface every AST node satisfies, matching the
// teacher's ast.Node (internal/ast/ast.go): a source position plus a
// debug string. Unlike the teacher, there is no TokenLiteral() - the
// token stream is not retained once the full builder shapes the node.
type Node interface {
	Pos() token.Position
	End() token.Position
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is any node that performs an action without producing a
// value, or (for the declaration forms) introduces bindings.
type Statement interface {
	Node
	stmtNode()
}

// Pattern is a destructuring target: an array pattern, object pattern, or
// a plain binding identifier (spec.md 4.5).
type Pattern interface {
	Node
	patternNode()
}

// ModuleItem is an import or export declaration (spec.md 4.9,
// "Import/export"), legal only at module top level.
type ModuleItem interface {
	Statement
	moduleItemNode()
}

// base holds the Start/End span every concrete node embeds, matching the
// teacher's position-only "End offset setter" operation (spec.md 4.10):
// the parser sets End once the production completes.
type base struct {
	start token.Position
	end   token.Position
}

func (b *base) Pos() token.Position { return b.start }
func (b *base) End() token.Position { return b.end }

// SetEnd implements the tree-builder contract's "end-offset setter"
// (spec.md 4.10): every node's byte range is recorded once the
// production that built it finishes.
func (b *base) SetEnd(pos token.Position) { b.end = pos }

// Shape carries the classification bits the parser needs to introspect
// about a just-built expression without type-asserting the concrete node
// - the same information is available identically whether the active
// builder is Full or SyntaxOnly, since SyntaxOnly's placeholder nodes
// still compute Shape (spec.md 4.7, 4.6: the parser must be able to ask
// "was that an object/array literal?" and "did that contain a
// CoverInitializedName?" regardless of which builder produced it).
type Shape struct {
	IsObjectLiteral          bool
	IsArrayLiteral           bool
	IsIdentifier             bool
	IsMemberOrCallChain      bool // valid assignment-pattern target chain
	HasCoverInitializedName  bool // e.g. `{x = 1}` outside a destructuring context
	HasTrailingRest          bool
	IdentifierName           string // populated only when IsIdentifier
}
