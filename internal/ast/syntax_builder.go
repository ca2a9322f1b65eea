package ast

import (
	"github.com/scriptvm/esparser/internal/interner"
	"github.com/scriptvm/esparser/internal/token"
)

// SyntaxOnlyBuilder validates grammar without constructing real nodes
// (spec.md 2.5, "SyntaxOnly"). A caller passes it to parser.New when only
// a syntax-validity verdict is wanted. The parser never switches builders
// mid-parse: its own lookahead (the arrow-parameter probe, `let`
// disambiguation, label detection) is token-level Mark/ResetTo on the
// cursor and builds no nodes with either builder.
//
// Every constructor returns one of a handful of placeholder node kinds
// carrying only a Shape and a position span - enough for the cover-
// grammar disambiguation of spec.md 4.6/4.7 to work unchanged, never
// enough to reconstruct a real tree.
type SyntaxOnlyBuilder struct{}

// NewSyntaxOnly returns a Builder that discards structure.
func NewSyntaxOnly() Builder { return SyntaxOnlyBuilder{} }

func (SyntaxOnlyBuilder) CreatesAST() bool         { return false }
func (SyntaxOnlyBuilder) CanUseFunctionCache() bool { return false }

// placeholder is the sole concrete Expression/Statement/Pattern type the
// syntax-only builder produces. Its Shape is fixed at construction time
// rather than recovered by type switch, since there is no concrete node
// to switch on (spec.md 4.7).
type placeholder struct {
	base
	shape  Shape
	spread bool // set only by Spread
}

func (*placeholder) exprNode()       {}
func (*placeholder) stmtNode()       {}
func (*placeholder) patternNode()    {}
func (*placeholder) moduleItemNode() {}
func (*placeholder) String() string  { return "<syntax-only>" }

func ph(start, end token.Position, shape Shape) *placeholder {
	return &placeholder{base: nb(start, end), shape: shape}
}

func (SyntaxOnlyBuilder) Identifier(start, end token.Position, name interner.ID, symbol string) Expression {
	return ph(start, end, Shape{IsIdentifier: true, IsMemberOrCallChain: true, IdentifierName: symbol})
}

func (SyntaxOnlyBuilder) NumberLiteral(start, end token.Position, value float64, bigInt bool, raw string) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) StringLiteral(start, end token.Position, value, raw string) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) BooleanLiteral(start, end token.Position, value bool) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) NullLiteral(start, end token.Position) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) RegExpLiteral(start, end token.Position, pattern, flags string) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) ThisExpression(start, end token.Position) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) SuperExpression(start, end token.Position) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) NewTargetExpression(start, end token.Position) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) TemplateLiteral(start, end token.Position, quasis []TemplateElement, exprs []Expression) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) TaggedTemplate(start, end token.Position, tag Expression, tmpl Expression) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) ArrayLiteral(start, end token.Position, elements []Expression) Expression {
	trailingRest := len(elements) > 0 && isPlaceholderRest(elements[len(elements)-1])
	return ph(start, end, Shape{IsArrayLiteral: true, HasTrailingRest: trailingRest})
}

func (SyntaxOnlyBuilder) ObjectLiteral(start, end token.Position, props []ObjectProperty) Expression {
	hasCIN := false
	for _, p := range props {
		if p.Shorthand && p.Kind == PropertyInit {
			if v, ok := p.Value.(*placeholder); ok && v.shape.HasCoverInitializedName {
				hasCIN = true
			}
		}
	}
	return ph(start, end, Shape{IsObjectLiteral: true, HasCoverInitializedName: hasCIN})
}

// isPlaceholderRest reports whether e was built by Spread, using the
// placeholder's spread marker, so HasTrailingRest matches FullBuilder's
// answer for the same array literal.
func isPlaceholderRest(e Expression) bool {
	p, ok := e.(*placeholder)
	return ok && p.spread
}

func (SyntaxOnlyBuilder) Unary(start, end token.Position, op string, arg Expression) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Update(start, end token.Position, op string, arg Expression, prefix bool) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Binary(start, end token.Position, op string, left, right Expression) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Logical(start, end token.Position, op string, left, right Expression) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Conditional(start, end token.Position, test, cons, alt Expression) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Assignment(start, end token.Position, op string, target, value Expression) Expression {
	return ph(start, end, Shape{HasCoverInitializedName: true})
}

func (SyntaxOnlyBuilder) Sequence(start, end token.Position, exprs []Expression) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Call(start, end token.Position, callee Expression, args []Expression, optional bool) Expression {
	return ph(start, end, Shape{IsMemberOrCallChain: true})
}

func (SyntaxOnlyBuilder) New(start, end token.Position, callee Expression, args []Expression) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Member(start, end token.Position, object, property Expression, computed, optional bool) Expression {
	return ph(start, end, Shape{IsMemberOrCallChain: true})
}

func (SyntaxOnlyBuilder) Spread(start, end token.Position, arg Expression) Expression {
	p := ph(start, end, Shape{})
	p.spread = true
	return p
}

func (SyntaxOnlyBuilder) Yield(start, end token.Position, arg Expression, delegate bool) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Await(start, end token.Position, arg Expression) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) FunctionExpr(start, end token.Position, info *FunctionInfo) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) ArrowFunctionExpr(start, end token.Position, info *FunctionInfo) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) ClassExpr(start, end token.Position, info *ClassInfo) Expression {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Block(start, end token.Position, body []Statement) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Empty(start, end token.Position) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) ExpressionStatement(start, end token.Position, expr Expression, directive string) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) If(start, end token.Position, test Expression, cons, alt Statement) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) While(start, end token.Position, test Expression, body Statement) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) DoWhile(start, end token.Position, body Statement, test Expression) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) For(start, end token.Position, init Node, test, update Expression, body Statement) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) ForIn(start, end token.Position, left Node, right Expression, body Statement) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) ForOf(start, end token.Position, left Node, right Expression, body Statement, await bool) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Break(start, end token.Position, label string) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Continue(start, end token.Position, label string) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Return(start, end token.Position, arg Expression) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Throw(start, end token.Position, arg Expression) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Try(start, end token.Position, block *BlockStatement, catch *CatchClause, finally *BlockStatement) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Switch(start, end token.Position, disc Expression, before []SwitchCase, def *SwitchCase, after []SwitchCase) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) With(start, end token.Position, object Expression, body Statement) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Debugger(start, end token.Position) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Labeled(start, end token.Position, label string, body Statement) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) VariableDeclaration(start, end token.Position, kind DeclarationKind, decls []VariableDeclarator) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) FunctionDeclaration(start, end token.Position, info *FunctionInfo) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) ClassDeclaration(start, end token.Position, info *ClassInfo) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) BindingIdentifier(start, end token.Position, name interner.ID, symbol string) Pattern {
	return ph(start, end, Shape{IsIdentifier: true, IdentifierName: symbol})
}

func (SyntaxOnlyBuilder) ArrayPattern(start, end token.Position, elements []Pattern, defaults []Expression) Pattern {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) ObjectPattern(start, end token.Position, props []ObjectPatternProperty, rest *BindingIdentifier) Pattern {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) AssignmentPattern(start, end token.Position, target Pattern, def Expression) Pattern {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) RestElement(start, end token.Position, arg Pattern) Pattern {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) ImportDeclaration(start, end token.Position, def, ns *BindingIdentifier, named []ImportSpecifier, source string) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) ExportDeclaration(start, end token.Position, decl *ExportDeclaration) Statement {
	return ph(start, end, Shape{})
}

func (SyntaxOnlyBuilder) Program(start, end token.Position, body []Statement, isModule bool) Node {
	return ph(start, end, Shape{})
}

// ShapeOf recovers the Shape stashed at construction time; it is a type
// assertion rather than a type switch, since every node this builder
// produces is a placeholder.
func (SyntaxOnlyBuilder) ShapeOf(e Expression) Shape {
	if p, ok := e.(*placeholder); ok {
		return p.shape
	}
	return Shape{}
}
