package ast

import "github.com/scriptvm/esparser/internal/interner"

func (*Program) stmtNode()            {}
func (*BlockStatement) stmtNode()     {}
func (*EmptyStatement) stmtNode()     {}
func (*ExpressionStatement) stmtNode() {}
func (*IfStatement) stmtNode()        {}
func (*WhileStatement) stmtNode()     {}
func (*DoWhileStatement) stmtNode()   {}
func (*ForStatement) stmtNode()       {}
func (*ForInStatement) stmtNode()     {}
func (*ForOfStatement) stmtNode()     {}
func (*BreakStatement) stmtNode()     {}
func (*ContinueStatement) stmtNode()  {}
func (*ReturnStatement) stmtNode()    {}
func (*ThrowStatement) stmtNode()     {}
func (*TryStatement) stmtNode()       {}
func (*SwitchStatement) stmtNode()    {}
func (*WithStatement) stmtNode()      {}
func (*DebuggerStatement) stmtNode()  {}
func (*LabeledStatement) stmtNode()   {}
func (*VariableDeclaration) stmtNode() {}
func (*FunctionDeclaration) stmtNode() {}
func (*ClassDeclaration) stmtNode()   {}

// Program is the parse result's root for Program/Module parse modes
// (spec.md 6, external interface: the `source_elements` half of parse's
// return tuple).
type Program struct {
	base
	Body   []Statement
	Module bool // true when parsed under a Module* parse_mode
}

func (*Program) String() string { return "Program" }

// BlockStatement is `{ statements }`.
type BlockStatement struct {
	base
	Body []Statement
}

func (*BlockStatement) String() string { return "{ ... }" }

// EmptyStatement is a bare `;`.
type EmptyStatement struct{ base }

func (*EmptyStatement) String() string { return ";" }

// ExpressionStatement wraps an expression used as a statement. A
// directive (spec.md 4.3) is an ExpressionStatement whose Expression is
// a StringLiteral and whose Directive field carries the exact source
// text for "use strict" detection.
type ExpressionStatement struct {
	base
	Expression Expression
	Directive  string // "" unless Expression is a bare string-literal statement
}

func (*ExpressionStatement) String() string { return "expr;" }

// IfStatement is `if (test) consequent [else alternate]`.
type IfStatement struct {
	base
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil if no else clause
}

func (*IfStatement) String() string { return "if (...) ..." }

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	base
	Test Expression
	Body Statement
}

func (*WhileStatement) String() string { return "while (...) ..." }

// DoWhileStatement is `do body while (test);`.
type DoWhileStatement struct {
	base
	Body Statement
	Test Expression
}

func (*DoWhileStatement) String() string { return "do ... while (...)" }

// ForStatement is the three-clause `for(init; test; update) body` form
// (spec.md 4.9, "For-loop header").
type ForStatement struct {
	base
	Init   Node // *VariableDeclaration, Expression, or nil
	Test   Expression // nil if omitted
	Update Expression // nil if omitted
	Body   Statement
}

func (*ForStatement) String() string { return "for (...;...;...) ..." }

// ForInStatement is `for (left in right) body`.
type ForInStatement struct {
	base
	Left  Node // *VariableDeclaration or Pattern/Expression assignment target
	Right Expression
	Body  Statement
}

func (*ForInStatement) String() string { return "for (... in ...) ..." }

// ForOfStatement is `for [await] (left of right) body`.
type ForOfStatement struct {
	base
	Left  Node
	Right Expression
	Body  Statement
	Await bool
}

func (*ForOfStatement) String() string { return "for (... of ...) ..." }

// BreakStatement is `break [label];`.
type BreakStatement struct {
	base
	Label string // "" if unlabeled
}

func (*BreakStatement) String() string { return "break;" }

// ContinueStatement is `continue [label];`.
type ContinueStatement struct {
	base
	Label string
}

func (*ContinueStatement) String() string { return "continue;" }

// ReturnStatement is `return [argument];`.
type ReturnStatement struct {
	base
	Argument Expression // nil for a bare return
}

func (*ReturnStatement) String() string { return "return ...;" }

// ThrowStatement is `throw argument;`.
type ThrowStatement struct {
	base
	Argument Expression
}

func (*ThrowStatement) String() string { return "throw ...;" }

// CatchClause is the `catch (param) body` part of a TryStatement.
type CatchClause struct {
	Param Pattern // nil for a parameterless catch
	Body  *BlockStatement
}

// TryStatement is `try block [catch] [finally]`; spec.md 4.9 requires at
// least one of Catch/Finally.
type TryStatement struct {
	base
	Block   *BlockStatement
	Catch   *CatchClause // nil if no catch clause
	Finally *BlockStatement // nil if no finally clause
}

func (*TryStatement) String() string { return "try { ... }" }

// SwitchCase is one `case test:`/`default:` clause.
type SwitchCase struct {
	Test        Expression // nil for `default`
	Consequent  []Statement
}

// SwitchStatement carries its clauses split before/after the default
// clause (spec.md 4.9, "Switch": "two clause lists ... so that
// fall-through semantics are preserved").
type SwitchStatement struct {
	base
	Discriminant Expression
	CasesBeforeDefault []SwitchCase
	DefaultCase        *SwitchCase // nil if there is no default clause
	CasesAfterDefault  []SwitchCase
}

func (*SwitchStatement) String() string { return "switch (...) { ... }" }

// WithStatement is `with (object) body`, illegal in strict mode
// (spec.md 7).
type WithStatement struct {
	base
	Object Expression
	Body   Statement
}

func (*WithStatement) String() string { return "with (...) ..." }

// DebuggerStatement is the `debugger;` statement.
type DebuggerStatement struct{ base }

func (*DebuggerStatement) String() string { return "debugger;" }

// LabeledStatement is `label: statement` (spec.md 4.9, "Labels").
type LabeledStatement struct {
	base
	Label string
	Body  Statement
}

func (*LabeledStatement) String() string { return "label: ..." }

// DeclarationKind selects var/let/const for a VariableDeclaration.
type DeclarationKind int

const (
	DeclarationVar DeclarationKind = iota
	DeclarationLet
	DeclarationConst
)

func (k DeclarationKind) String() string {
	switch k {
	case DeclarationLet:
		return "let"
	case DeclarationConst:
		return "const"
	default:
		return "var"
	}
}

// VariableDeclarator is one `pattern [= init]` entry of a declaration
// list.
type VariableDeclarator struct {
	Target Pattern
	Init   Expression // nil unless given; a const-without-init is a
	                   // semantic error except as a for-in/for-of loop
	                   // variable (spec.md 3, Invariants).
}

// VariableDeclaration is `var|let|const declarators;`.
type VariableDeclaration struct {
	base
	Kind        DeclarationKind
	Declarators []VariableDeclarator
}

func (*VariableDeclaration) String() string { return "var/let/const ...;" }

// FunctionDeclaration is `function name(params) { body }` at statement
// position, including generator/async forms.
type FunctionDeclaration struct {
	base
	Info *FunctionInfo
}

func (*FunctionDeclaration) String() string { return "function name(...) { ... }" }

// ClassDeclaration is `class Name [extends Parent] { body }` at
// statement position.
type ClassDeclaration struct {
	base
	Info *ClassInfo
}

func (*ClassDeclaration) String() string { return "class Name { ... }" }

// NameOf returns the interned identifier FunctionDeclaration/
// ClassDeclaration declare, used by the parser when registering the
// binding in the enclosing scope.
func NameOf(n Statement) (interner.ID, bool) {
	switch d := n.(type) {
	case *FunctionDeclaration:
		return d.Info.Name, true
	case *ClassDeclaration:
		return d.Info.Name, true
	}
	return interner.NilID, false
}
