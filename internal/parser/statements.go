package parser

import (
	"github.com/scriptvm/esparser/internal/ast"
	"github.com/scriptvm/esparser/internal/lexer"
	"github.com/scriptvm/esparser/internal/scope"
	"github.com/scriptvm/esparser/internal/token"
)

// parseStatementList parses a run of statements, detecting the directive
// prologue's "use strict" form at the head of a function/program body
// (spec.md 4.3) and stopping at terminator (EOF for a program, RBRACE for
// a block/function body).
func (p *Parser) parseStatementList(checkDirectives bool, terminator token.Kind) []ast.Statement {
	var body []ast.Statement
	inPrologue := checkDirectives
	for !p.at(terminator) && !p.at(token.EOF) {
		stmt := p.parseStatement()
		if inPrologue {
			if lit, ok := stmt.(*ast.ExpressionStatement); ok && lit.Directive != "" {
				if isUseStrictDirective(lit.Directive) {
					p.scopes.SetStrict()
				}
			} else {
				inPrologue = false
			}
		}
		body = append(body, stmt)
	}
	return body
}

// isUseStrictDirective reports whether raw - a directive-prologue
// statement's exact source text, quotes included - is precisely
// "use strict" or 'use strict' (spec.md 4.3): a 12-character literal with
// no escape sequences. A spelling that writes a character (the space,
// say) as an escape sequence cooks to the same string but must NOT flip
// strict mode, so this checks the raw text, not the cooked value.
func isUseStrictDirective(raw string) bool {
	return raw == `"use strict"` || raw == `'use strict'`
}

// consumeSemicolon implements automatic semicolon insertion (spec.md 4.3):
// an explicit `;` is consumed, otherwise the statement terminator is
// implied at `}`, EOF, or a line break before the next token.
func (p *Parser) consumeSemicolon() {
	if p.at(token.SEMICOLON) {
		p.next(lexer.ExprPosition)
		return
	}
	if p.at(token.RBRACE) || p.at(token.EOF) || p.tok.PrecededByNewline {
		return
	}
	p.errorf("statement", "missing semicolon")
}

func (p *Parser) parseStatement() ast.Statement {
	if !p.enter() {
		p.next(lexer.ExprPosition)
		return p.builder.Empty(p.tok.Start, p.tok.Start)
	}
	defer p.leave()

	switch p.tok.Kind {
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.VAR, token.CONST:
		return p.parseVariableStatement()
	case token.LET:
		if p.scopes.InStrictScope() || !p.letStartsExpression() {
			return p.parseVariableStatement()
		}
	case token.SEMICOLON:
		start := p.tok.Start
		p.next(lexer.ExprPosition)
		return p.builder.Empty(start, p.tok.Start)
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.WITH:
		return p.parseWithStatement()
	case token.DEBUGGER:
		start := p.tok.Start
		p.next(lexer.ExprPosition)
		p.consumeSemicolon()
		return p.builder.Debugger(start, p.tok.Start)
	case token.FUNCTION:
		return p.parseFunctionDeclaration(false)
	case token.CLASS:
		return p.parseClassDeclaration()
	case token.ASYNC:
		return p.parseAsyncDeclarationOrExpressionStatement()
	case token.IMPORT:
		if p.mode == ModeModule {
			return p.parseImportDeclaration()
		}
	case token.EXPORT:
		if p.mode == ModeModule {
			return p.parseExportDeclaration()
		}
	}

	if p.tok.Kind == token.IDENT {
		if label, ok := p.tryLabeledStatement(); ok {
			return label
		}
	}

	return p.parseExpressionStatement()
}

// letStartsExpression peeks one token past `let` to tell apart `let` the
// declaration keyword from `let` used as a plain identifier (spec.md 4.3:
// legal only outside strict mode, and only when immediately followed by
// `.` or `(` - any other following token means a let/const-style binding
// list instead).
func (p *Parser) letStartsExpression() bool {
	mark := p.cur.Mark()
	saved := p.tok
	p.next(lexer.FlagNone)
	isExprStart := p.at(token.DOT) || p.at(token.LPAREN)
	p.cur.ResetTo(mark)
	p.tok = saved
	return isExprStart
}

func (p *Parser) parseAsyncDeclarationOrExpressionStatement() ast.Statement {
	mark := p.cur.Mark()
	saved := p.tok
	p.next(lexer.ExprPosition)
	if p.at(token.FUNCTION) && !p.tok.PrecededByNewline {
		return p.parseFunctionDeclaration(true)
	}
	p.cur.ResetTo(mark)
	p.tok = saved
	return p.parseExpressionStatement()
}

// tryLabeledStatement speculatively checks for `ident:`; a cheap
// single-token lookahead, not a full SavePoint, since no scope mutation
// happens before the colon is confirmed (spec.md 4.9, "Labels").
func (p *Parser) tryLabeledStatement() (ast.Statement, bool) {
	mark := p.cur.Mark()
	saved := p.tok
	start := p.tok.Start
	name := p.tok.Literal
	p.next(lexer.FlagNone)
	if !p.at(token.COLON) {
		p.cur.ResetTo(mark)
		p.tok = saved
		return nil, false
	}
	p.next(lexer.ExprPosition)
	isLoop := p.tok.Kind == token.FOR || p.tok.Kind == token.WHILE || p.tok.Kind == token.DO
	if !p.scopes.DeclareLabel(name, isLoop) {
		p.errorf("labeled statement", "label \""+name+"\" is already declared")
	}
	body := p.parseStatement()
	return p.builder.Labeled(start, p.tok.Start, name, body), true
}

func (p *Parser) parseBlockStatement() ast.Statement {
	start := p.tok.Start
	p.expect(token.LBRACE, lexer.ExprPosition, "block")
	p.scopes.Push(scope.KindBlock, p.scopes.InStrictScope())
	body := p.parseStatementList(false, token.RBRACE)
	p.popScope()
	p.expect(token.RBRACE, lexer.FlagNone, "block")
	return p.builder.Block(start, p.tok.Start, body)
}

// popScope pops the current scope and propagates its free-variable and
// activation information to the parent, per spec.md 4.2's scope-pop
// contract (evaluated before the pop so Captured sees the still-live
// child frame).
func (p *Parser) popScope() *scope.Scope {
	cur := p.scopes.Current()
	_ = p.scopes.Captured(cur)
	return p.scopes.Pop()
}

func (p *Parser) parseVariableStatement() ast.Statement {
	decl, missingConstInit := p.parseVariableDeclarationList(true)
	if missingConstInit {
		p.errorf("variable declaration", "missing initializer in const declaration")
	}
	p.consumeSemicolon()
	return decl
}

func declKindForDeclaration(k token.Kind) (scope.DeclKind, ast.DeclarationKind) {
	switch k {
	case token.LET:
		return scope.DeclLet, ast.DeclarationLet
	case token.CONST:
		return scope.DeclConst, ast.DeclarationConst
	default:
		return scope.DeclVar, ast.DeclarationVar
	}
}

// parseVariableDeclarationList parses a var/let/const binding list.
// allowsIn gates whether a bare `in` is swallowed by an initializer
// expression (false inside a for-loop header, spec.md 4.9). It returns a
// second value: whether any const declarator was left without an
// initializer. A plain variable statement always treats that as an
// error; a for-loop header only does when the header turns out NOT to be
// a for-in/for-of loop (spec.md 3, Invariants) - the caller decides,
// since only it knows which case applies.
func (p *Parser) parseVariableDeclarationList(allowsIn bool) (ast.Statement, bool) {
	start := p.tok.Start
	tokKind := p.tok.Kind
	declKind, astKind := declKindForDeclaration(tokKind)
	p.next(lexer.FlagNone)

	missingConstInit := false
	var decls []ast.VariableDeclarator
	for {
		target := p.parseDeclaratorPattern(declKind)
		var init ast.Expression
		if p.at(token.ASSIGN) {
			p.next(lexer.ExprPosition)
			init = p.parseAssignmentExpression(allowsIn)
		} else if astKind == ast.DeclarationConst {
			missingConstInit = true
		}
		decls = append(decls, ast.VariableDeclarator{Target: target, Init: init})
		if !p.at(token.COMMA) {
			break
		}
		p.next(lexer.FlagNone)
	}
	return p.builder.VariableDeclaration(start, p.tok.Start, astKind, decls), missingConstInit
}

// parseDeclaratorPattern parses one binding target of a var/let/const
// list by mapping the declaration's scope.DeclKind onto the matching
// ast.DestructuringKind and handing it to parseBindingElement, so the
// name is declared through patterns.go's declKindFor table (ToVariables
// maps back to DeclVar, which the scope stack hoists - spec.md 4.2).
func (p *Parser) parseDeclaratorPattern(kind scope.DeclKind) ast.Pattern {
	var dk ast.DestructuringKind
	switch kind {
	case scope.DeclLet:
		dk = ast.ToLet
	case scope.DeclConst:
		dk = ast.ToConst
	default:
		dk = ast.ToVariables
	}
	return p.parseBindingElement(dk)
}

func (p *Parser) parseIfStatement() ast.Statement {
	start := p.tok.Start
	p.next(lexer.ExprPosition)
	p.expect(token.LPAREN, lexer.ExprPosition, "if statement")
	test := p.parseExpression(true)
	p.expect(token.RPAREN, lexer.ExprPosition, "if statement")
	cons := p.parseStatement()
	var alt ast.Statement
	if p.at(token.ELSE) {
		p.next(lexer.ExprPosition)
		alt = p.parseStatement()
	}
	return p.builder.If(start, p.tok.Start, test, cons, alt)
}

func (p *Parser) parseWhileStatement() ast.Statement {
	start := p.tok.Start
	p.next(lexer.ExprPosition)
	p.expect(token.LPAREN, lexer.ExprPosition, "while statement")
	test := p.parseExpression(true)
	p.expect(token.RPAREN, lexer.ExprPosition, "while statement")
	body := p.parseStatement()
	return p.builder.While(start, p.tok.Start, test, body)
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	start := p.tok.Start
	p.next(lexer.ExprPosition)
	body := p.parseStatement()
	p.expect(token.WHILE, lexer.ExprPosition, "do-while statement")
	p.expect(token.LPAREN, lexer.ExprPosition, "do-while statement")
	test := p.parseExpression(true)
	p.expect(token.RPAREN, lexer.FlagNone, "do-while statement")
	if p.at(token.SEMICOLON) {
		p.next(lexer.ExprPosition)
	}
	return p.builder.DoWhile(start, p.tok.Start, body, test)
}

// parseForStatement disambiguates the three for-loop header shapes
// (spec.md 4.9, "For-loop header"): classic three-clause, for-in, and
// for-of, using allowsIn=false while parsing the init clause so a bare
// `in` is not swallowed by the relational-operator grammar.
func (p *Parser) parseForStatement() ast.Statement {
	start := p.tok.Start
	p.next(lexer.ExprPosition)
	await := false
	if p.at(token.AWAIT) {
		await = true
		p.next(lexer.ExprPosition)
	}
	p.expect(token.LPAREN, lexer.ExprPosition, "for statement")

	p.scopes.Push(scope.KindBlock, p.scopes.InStrictScope())
	defer func() { p.popScope() }()

	var init ast.Node
	if p.at(token.SEMICOLON) {
		// no init
	} else if p.at(token.VAR) || p.at(token.LET) || p.at(token.CONST) {
		declStmt, missingConstInit := p.parseVariableDeclarationList(false)
		init = declStmt
		if p.at(token.IN) || p.at(token.OF) {
			return p.finishForInOf(start, init, await)
		}
		if missingConstInit {
			p.errorf("for statement", "missing initializer in const declaration")
		}
	} else {
		expr := p.parseExpression(false)
		init = expr
		if p.at(token.IN) || p.at(token.OF) {
			return p.finishForInOf(start, p.reinterpretAsPattern(expr), await)
		}
	}

	p.expect(token.SEMICOLON, lexer.ExprPosition, "for statement")
	var test, update ast.Expression
	if !p.at(token.SEMICOLON) {
		test = p.parseExpression(true)
	}
	p.expect(token.SEMICOLON, lexer.ExprPosition, "for statement")
	if !p.at(token.RPAREN) {
		update = p.parseExpression(true)
	}
	p.expect(token.RPAREN, lexer.ExprPosition, "for statement")
	body := p.parseStatement()
	return p.builder.For(start, p.tok.Start, init, test, update, body)
}

func (p *Parser) finishForInOf(start token.Position, left ast.Node, await bool) ast.Statement {
	isOf := p.at(token.OF)
	p.next(lexer.ExprPosition)
	right := p.parseAssignmentExpression(true)
	p.expect(token.RPAREN, lexer.ExprPosition, "for statement")
	body := p.parseStatement()
	if isOf {
		return p.builder.ForOf(start, p.tok.Start, left, right, body, await)
	}
	return p.builder.ForIn(start, p.tok.Start, left, right, body)
}

func (p *Parser) parseBreakStatement() ast.Statement {
	start := p.tok.Start
	p.next(lexer.FlagNone)
	label := ""
	if p.tok.Kind == token.IDENT && !p.tok.PrecededByNewline {
		label = p.tok.Literal
		if _, ok := p.scopes.ResolveLabel(label); !ok {
			p.errorf("break statement", "undefined label \""+label+"\"")
		}
		p.next(lexer.FlagNone)
	}
	p.consumeSemicolon()
	return p.builder.Break(start, p.tok.Start, label)
}

func (p *Parser) parseContinueStatement() ast.Statement {
	start := p.tok.Start
	p.next(lexer.FlagNone)
	label := ""
	if p.tok.Kind == token.IDENT && !p.tok.PrecededByNewline {
		label = p.tok.Literal
		if l, ok := p.scopes.ResolveLabel(label); !ok {
			p.errorf("continue statement", "undefined label \""+label+"\"")
		} else if !l.IsLoop {
			p.errorf("continue statement", "label \""+label+"\" does not name a loop")
		}
		p.next(lexer.FlagNone)
	}
	p.consumeSemicolon()
	return p.builder.Continue(start, p.tok.Start, label)
}

func (p *Parser) parseReturnStatement() ast.Statement {
	start := p.tok.Start
	p.next(lexer.ExprPosition)
	var arg ast.Expression
	if !p.tok.PrecededByNewline && !isExpressionTerminator(p.tok.Kind) {
		arg = p.parseExpression(true)
	}
	p.consumeSemicolon()
	return p.builder.Return(start, p.tok.Start, arg)
}

func (p *Parser) parseThrowStatement() ast.Statement {
	start := p.tok.Start
	p.next(lexer.ExprPosition)
	if p.tok.PrecededByNewline {
		p.errorf("throw statement", "no line break allowed between 'throw' and its argument")
	}
	arg := p.parseExpression(true)
	p.consumeSemicolon()
	return p.builder.Throw(start, p.tok.Start, arg)
}

func (p *Parser) parseTryStatement() ast.Statement {
	start := p.tok.Start
	p.next(lexer.ExprPosition)
	block, _ := p.parseBlockStatement().(*ast.BlockStatement)

	var catch *ast.CatchClause
	if p.at(token.CATCH) {
		p.next(lexer.ExprPosition)
		p.scopes.Push(scope.KindCatch, p.scopes.InStrictScope())
		var param ast.Pattern
		if p.at(token.LPAREN) {
			p.next(lexer.FlagNone)
			param = p.parsePattern(ast.ToCatchParameters)
			p.expect(token.RPAREN, lexer.ExprPosition, "catch clause")
		}
		body := p.parseCatchBody()
		p.popScope()
		catch = &ast.CatchClause{Param: param, Body: body}
	}

	var finally *ast.BlockStatement
	if p.at(token.FINALLY) {
		p.next(lexer.ExprPosition)
		finally, _ = p.parseBlockStatement().(*ast.BlockStatement)
	}

	if catch == nil && finally == nil {
		p.errorf("try statement", "missing catch or finally clause")
	}
	return p.builder.Try(start, p.tok.Start, block, catch, finally)
}

// parseCatchBody parses a catch block's body inside the already-pushed
// catch scope, without pushing the extra block scope parseBlockStatement
// would add (spec.md 4.9, "Try/catch": the catch parameter and the catch
// body share one scope).
func (p *Parser) parseCatchBody() *ast.BlockStatement {
	start := p.tok.Start
	p.expect(token.LBRACE, lexer.ExprPosition, "catch clause")
	body := p.parseStatementList(false, token.RBRACE)
	p.expect(token.RBRACE, lexer.FlagNone, "catch clause")
	blk, _ := p.builder.Block(start, p.tok.Start, body).(*ast.BlockStatement)
	return blk
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	start := p.tok.Start
	p.next(lexer.ExprPosition)
	p.expect(token.LPAREN, lexer.ExprPosition, "switch statement")
	disc := p.parseExpression(true)
	p.expect(token.RPAREN, lexer.ExprPosition, "switch statement")
	p.expect(token.LBRACE, lexer.ExprPosition, "switch statement")

	p.scopes.Push(scope.KindSwitch, p.scopes.InStrictScope())

	var before, after []ast.SwitchCase
	var def *ast.SwitchCase
	seenDefault := false
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		var test ast.Expression
		if p.at(token.CASE) {
			p.next(lexer.ExprPosition)
			test = p.parseExpression(true)
		} else if p.at(token.DEFAULT) {
			if seenDefault {
				p.errorf("switch statement", "multiple default clauses")
			}
			seenDefault = true
			p.next(lexer.FlagNone)
		} else {
			p.errorf("switch statement", "expected 'case' or 'default'")
			break
		}
		p.expect(token.COLON, lexer.ExprPosition, "switch statement")
		var body []ast.Statement
		for !p.at(token.CASE) && !p.at(token.DEFAULT) && !p.at(token.RBRACE) && !p.at(token.EOF) {
			body = append(body, p.parseStatement())
		}
		c := ast.SwitchCase{Test: test, Consequent: body}
		if test == nil {
			def = &c
		} else if seenDefault && def == nil {
			before = append(before, c)
		} else if def != nil {
			after = append(after, c)
		} else {
			before = append(before, c)
		}
	}
	p.popScope()
	p.expect(token.RBRACE, lexer.FlagNone, "switch statement")
	return p.builder.Switch(start, p.tok.Start, disc, before, def, after)
}

func (p *Parser) parseWithStatement() ast.Statement {
	start := p.tok.Start
	if p.scopes.InStrictScope() {
		p.errorf("with statement", "'with' is not allowed in strict mode")
	}
	p.next(lexer.ExprPosition)
	p.expect(token.LPAREN, lexer.ExprPosition, "with statement")
	obj := p.parseExpression(true)
	p.expect(token.RPAREN, lexer.ExprPosition, "with statement")
	p.scopes.Push(scope.KindWith, p.scopes.InStrictScope())
	body := p.parseStatement()
	p.popScope()
	return p.builder.With(start, p.tok.Start, obj, body)
}

// parseExpressionStatement also recognizes the directive-prologue form
// (spec.md 4.3): a bare string-literal statement's exact source text is
// captured so parseStatementList can retroactively apply strict mode.
func (p *Parser) parseExpressionStatement() ast.Statement {
	start := p.tok.Start
	isStringLit := p.tok.Kind == token.STRING
	raw := p.tok.Literal
	expr := p.parseExpression(true)
	p.consumeSemicolon()
	directive := ""
	if isStringLit {
		if _, ok := expr.(*ast.StringLiteral); ok {
			directive = raw
		}
	}
	return p.builder.ExpressionStatement(start, p.tok.Start, expr, directive)
}
