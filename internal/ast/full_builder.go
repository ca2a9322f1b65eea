package ast

import (
	"github.com/scriptvm/esparser/internal/interner"
	"github.com/scriptvm/esparser/internal/token"
)

// FullBuilder constructs real AST nodes and supports the function-body
// cache (spec.md 2.5, "Full"). It is the builder a downstream bytecode
// compiler drives the parser with.
type FullBuilder struct{}

// NewFull returns a Builder that constructs structure.
func NewFull() Builder { return FullBuilder{} }

func (FullBuilder) CreatesAST() bool         { return true }
func (FullBuilder) CanUseFunctionCache() bool { return true }

func nb(start, end token.Position) base { return base{start: start, end: end} }

func (FullBuilder) Identifier(start, end token.Position, name interner.ID, symbol string) Expression {
	return &Identifier{base: nb(start, end), Name: name, Symbol: symbol}
}

func (FullBuilder) NumberLiteral(start, end token.Position, value float64, bigInt bool, raw string) Expression {
	return &NumberLiteral{base: nb(start, end), Value: value, BigInt: bigInt, Raw: raw}
}

func (FullBuilder) StringLiteral(start, end token.Position, value, raw string) Expression {
	return &StringLiteral{base: nb(start, end), Value: value, Raw: raw}
}

func (FullBuilder) BooleanLiteral(start, end token.Position, value bool) Expression {
	return &BooleanLiteral{base: nb(start, end), Value: value}
}

func (FullBuilder) NullLiteral(start, end token.Position) Expression {
	return &NullLiteral{base: nb(start, end)}
}

func (FullBuilder) RegExpLiteral(start, end token.Position, pattern, flags string) Expression {
	return &RegExpLiteral{base: nb(start, end), Pattern: pattern, Flags: flags}
}

func (FullBuilder) ThisExpression(start, end token.Position) Expression {
	return &ThisExpression{base: nb(start, end)}
}

func (FullBuilder) SuperExpression(start, end token.Position) Expression {
	return &SuperExpression{base: nb(start, end)}
}

func (FullBuilder) NewTargetExpression(start, end token.Position) Expression {
	return &NewTargetExpression{base: nb(start, end)}
}

func (FullBuilder) TemplateLiteral(start, end token.Position, quasis []TemplateElement, exprs []Expression) Expression {
	return &TemplateLiteral{base: nb(start, end), Quasis: quasis, Expressions: exprs}
}

func (FullBuilder) TaggedTemplate(start, end token.Position, tag Expression, tmpl Expression) Expression {
	return &TaggedTemplate{base: nb(start, end), Tag: tag, Template: tmpl.(*TemplateLiteral)}
}

func (FullBuilder) ArrayLiteral(start, end token.Position, elements []Expression) Expression {
	return &ArrayLiteral{base: nb(start, end), Elements: elements}
}

func (FullBuilder) ObjectLiteral(start, end token.Position, props []ObjectProperty) Expression {
	return &ObjectLiteral{base: nb(start, end), Properties: props}
}

func (FullBuilder) Unary(start, end token.Position, op string, arg Expression) Expression {
	return &UnaryExpression{base: nb(start, end), Operator: op, Argument: arg}
}

func (FullBuilder) Update(start, end token.Position, op string, arg Expression, prefix bool) Expression {
	return &UpdateExpression{base: nb(start, end), Operator: op, Argument: arg, Prefix: prefix}
}

func (FullBuilder) Binary(start, end token.Position, op string, left, right Expression) Expression {
	return &BinaryExpression{base: nb(start, end), Operator: op, Left: left, Right: right}
}

func (FullBuilder) Logical(start, end token.Position, op string, left, right Expression) Expression {
	return &LogicalExpression{base: nb(start, end), Operator: op, Left: left, Right: right}
}

func (FullBuilder) Conditional(start, end token.Position, test, cons, alt Expression) Expression {
	return &ConditionalExpression{base: nb(start, end), Test: test, Consequent: cons, Alternate: alt}
}

func (FullBuilder) Assignment(start, end token.Position, op string, target, value Expression) Expression {
	return &AssignmentExpression{base: nb(start, end), Operator: op, Target: target, Value: value}
}

func (FullBuilder) Sequence(start, end token.Position, exprs []Expression) Expression {
	return &SequenceExpression{base: nb(start, end), Expressions: exprs}
}

func (FullBuilder) Call(start, end token.Position, callee Expression, args []Expression, optional bool) Expression {
	return &CallExpression{base: nb(start, end), Callee: callee, Arguments: args, OptionalChain: optional}
}

func (FullBuilder) New(start, end token.Position, callee Expression, args []Expression) Expression {
	return &NewExpression{base: nb(start, end), Callee: callee, Arguments: args}
}

func (FullBuilder) Member(start, end token.Position, object, property Expression, computed, optional bool) Expression {
	return &MemberExpression{base: nb(start, end), Object: object, Property: property, Computed: computed, OptionalChain: optional}
}

func (FullBuilder) Spread(start, end token.Position, arg Expression) Expression {
	return &SpreadElement{base: nb(start, end), Argument: arg}
}

func (FullBuilder) Yield(start, end token.Position, arg Expression, delegate bool) Expression {
	return &YieldExpression{base: nb(start, end), Argument: arg, Delegate: delegate}
}

func (FullBuilder) Await(start, end token.Position, arg Expression) Expression {
	return &AwaitExpression{base: nb(start, end), Argument: arg}
}

func (FullBuilder) FunctionExpr(start, end token.Position, info *FunctionInfo) Expression {
	return &FunctionExpression{base: nb(start, end), Info: info}
}

func (FullBuilder) ArrowFunctionExpr(start, end token.Position, info *FunctionInfo) Expression {
	return &ArrowFunctionExpression{base: nb(start, end), Info: info}
}

func (FullBuilder) ClassExpr(start, end token.Position, info *ClassInfo) Expression {
	return &ClassExpression{base: nb(start, end), Info: info}
}

func (FullBuilder) Block(start, end token.Position, body []Statement) Statement {
	return &BlockStatement{base: nb(start, end), Body: body}
}

func (FullBuilder) Empty(start, end token.Position) Statement {
	return &EmptyStatement{base: nb(start, end)}
}

func (FullBuilder) ExpressionStatement(start, end token.Position, expr Expression, directive string) Statement {
	return &ExpressionStatement{base: nb(start, end), Expression: expr, Directive: directive}
}

func (FullBuilder) If(start, end token.Position, test Expression, cons, alt Statement) Statement {
	return &IfStatement{base: nb(start, end), Test: test, Consequent: cons, Alternate: alt}
}

func (FullBuilder) While(start, end token.Position, test Expression, body Statement) Statement {
	return &WhileStatement{base: nb(start, end), Test: test, Body: body}
}

func (FullBuilder) DoWhile(start, end token.Position, body Statement, test Expression) Statement {
	return &DoWhileStatement{base: nb(start, end), Body: body, Test: test}
}

func (FullBuilder) For(start, end token.Position, init Node, test, update Expression, body Statement) Statement {
	return &ForStatement{base: nb(start, end), Init: init, Test: test, Update: update, Body: body}
}

func (FullBuilder) ForIn(start, end token.Position, left Node, right Expression, body Statement) Statement {
	return &ForInStatement{base: nb(start, end), Left: left, Right: right, Body: body}
}

func (FullBuilder) ForOf(start, end token.Position, left Node, right Expression, body Statement, await bool) Statement {
	return &ForOfStatement{base: nb(start, end), Left: left, Right: right, Body: body, Await: await}
}

func (FullBuilder) Break(start, end token.Position, label string) Statement {
	return &BreakStatement{base: nb(start, end), Label: label}
}

func (FullBuilder) Continue(start, end token.Position, label string) Statement {
	return &ContinueStatement{base: nb(start, end), Label: label}
}

func (FullBuilder) Return(start, end token.Position, arg Expression) Statement {
	return &ReturnStatement{base: nb(start, end), Argument: arg}
}

func (FullBuilder) Throw(start, end token.Position, arg Expression) Statement {
	return &ThrowStatement{base: nb(start, end), Argument: arg}
}

func (FullBuilder) Try(start, end token.Position, block *BlockStatement, catch *CatchClause, finally *BlockStatement) Statement {
	return &TryStatement{base: nb(start, end), Block: block, Catch: catch, Finally: finally}
}

func (FullBuilder) Switch(start, end token.Position, disc Expression, before []SwitchCase, def *SwitchCase, after []SwitchCase) Statement {
	return &SwitchStatement{base: nb(start, end), Discriminant: disc, CasesBeforeDefault: before, DefaultCase: def, CasesAfterDefault: after}
}

func (FullBuilder) With(start, end token.Position, object Expression, body Statement) Statement {
	return &WithStatement{base: nb(start, end), Object: object, Body: body}
}

func (FullBuilder) Debugger(start, end token.Position) Statement {
	return &DebuggerStatement{base: nb(start, end)}
}

func (FullBuilder) Labeled(start, end token.Position, label string, body Statement) Statement {
	return &LabeledStatement{base: nb(start, end), Label: label, Body: body}
}

func (FullBuilder) VariableDeclaration(start, end token.Position, kind DeclarationKind, decls []VariableDeclarator) Statement {
	return &VariableDeclaration{base: nb(start, end), Kind: kind, Declarators: decls}
}

func (FullBuilder) FunctionDeclaration(start, end token.Position, info *FunctionInfo) Statement {
	return &FunctionDeclaration{base: nb(start, end), Info: info}
}

func (FullBuilder) ClassDeclaration(start, end token.Position, info *ClassInfo) Statement {
	return &ClassDeclaration{base: nb(start, end), Info: info}
}

func (FullBuilder) BindingIdentifier(start, end token.Position, name interner.ID, symbol string) Pattern {
	return &BindingIdentifier{base: nb(start, end), Name: name, Symbol: symbol}
}

func (FullBuilder) ArrayPattern(start, end token.Position, elements []Pattern, defaults []Expression) Pattern {
	return &ArrayPattern{base: nb(start, end), Elements: elements, Defaults: defaults}
}

func (FullBuilder) ObjectPattern(start, end token.Position, props []ObjectPatternProperty, rest *BindingIdentifier) Pattern {
	return &ObjectPattern{base: nb(start, end), Properties: props, Rest: rest}
}

func (FullBuilder) AssignmentPattern(start, end token.Position, target Pattern, def Expression) Pattern {
	return &AssignmentPattern{base: nb(start, end), Target: target, Default: def}
}

func (FullBuilder) RestElement(start, end token.Position, arg Pattern) Pattern {
	return &RestElement{base: nb(start, end), Argument: arg}
}

func (FullBuilder) ImportDeclaration(start, end token.Position, def, ns *BindingIdentifier, named []ImportSpecifier, source string) Statement {
	return &ImportDeclaration{base: nb(start, end), Default: def, Namespace: ns, Named: named, Source: source}
}

func (FullBuilder) ExportDeclaration(start, end token.Position, decl *ExportDeclaration) Statement {
	decl.start, decl.end = start, end
	return decl
}

func (FullBuilder) Program(start, end token.Position, body []Statement, isModule bool) Node {
	return &Program{base: nb(start, end), Body: body, Module: isModule}
}

// ShapeOf classifies a concrete node by type switch - cheap, since the
// full builder already retains the structure needed to answer.
func (FullBuilder) ShapeOf(e Expression) Shape {
	switch n := e.(type) {
	case *Identifier:
		return Shape{IsIdentifier: true, IsMemberOrCallChain: true, IdentifierName: n.Symbol}
	case *ArrayLiteral:
		return Shape{IsArrayLiteral: true, HasTrailingRest: hasTrailingSpread(n.Elements)}
	case *ObjectLiteral:
		return Shape{IsObjectLiteral: true, HasCoverInitializedName: hasCoverInitializedName(n.Properties)}
	case *MemberExpression:
		return Shape{IsMemberOrCallChain: true}
	case *CallExpression:
		return Shape{IsMemberOrCallChain: true}
	default:
		return Shape{}
	}
}

func hasTrailingSpread(elems []Expression) bool {
	if len(elems) == 0 {
		return false
	}
	_, ok := elems[len(elems)-1].(*SpreadElement)
	return ok
}

func hasCoverInitializedName(props []ObjectProperty) bool {
	for _, p := range props {
		if p.Shorthand && p.Kind == PropertyInit {
			if _, ok := p.Value.(*AssignmentExpression); ok {
				return true
			}
		}
	}
	return false
}
