package parser

import (
	"github.com/scriptvm/esparser/internal/ast"
	"github.com/scriptvm/esparser/internal/fncache"
	"github.com/scriptvm/esparser/internal/interner"
	"github.com/scriptvm/esparser/internal/lexer"
	"github.com/scriptvm/esparser/internal/scope"
	"github.com/scriptvm/esparser/internal/token"
)

func (p *Parser) parseFunctionExpression(isAsync bool) ast.Expression {
	start := p.tok.Start
	info := p.parseFunctionCommon(isAsync, false)
	return p.builder.FunctionExpr(start, p.tok.Start, info)
}

func (p *Parser) parseFunctionDeclaration(isAsync bool) ast.Statement {
	start := p.tok.Start
	info := p.parseFunctionCommon(isAsync, true)
	if info.Name != interner.NilID {
		result := p.scopes.Declare(info.Name, scope.DeclFunction, p.isStrictReservedName(info.Name))
		if result.Has(scope.InvalidStrictMode) {
			p.errorf("function declaration", "cannot name a function '"+p.interner.String(info.Name)+"' in strict mode")
		}
		if result.Has(scope.InvalidDuplicateDeclaration) {
			p.errorf("function declaration", "duplicate declaration")
		}
	}
	return p.builder.FunctionDeclaration(start, p.tok.Start, info)
}

// parseFunctionCommon parses `function [*] [name] (params) { body }`,
// shared by function declarations and expressions (spec.md 4.8,
// 4.9 "Generators"). The function's own name, if any, is declared in the
// *enclosing* scope by the caller for declarations; expressions declare
// their own name only inside their own scope, for self-reference.
func (p *Parser) parseFunctionCommon(isAsync bool, isDeclaration bool) *ast.FunctionInfo {
	start := p.tok.Start
	p.next(lexer.FlagNone) // consume 'function'
	isGenerator := false
	if p.at(token.STAR) {
		isGenerator = true
		p.next(lexer.FlagNone)
	}

	var name interner.ID
	if p.tok.Kind == token.IDENT || (!isDeclaration && token.IsContextual(p.tok.Kind)) {
		name, _ = p.internCurrent()
		p.next(lexer.FlagNone)
	}

	bodyStart := p.tok.Start
	p.scopes.Push(scope.KindFunction, p.scopes.InStrictScope())
	if !isDeclaration && name != interner.NilID {
		result := p.scopes.Declare(name, scope.DeclConst, p.isStrictReservedName(name))
		if result.Has(scope.InvalidStrictMode) {
			p.errorf("function expression", "cannot name a function '"+p.interner.String(name)+"' in strict mode")
		}
	}

	params := p.parseFormalParameters()

	var body []ast.Statement
	var strict bool
	var captured map[interner.ID]bool
	if isGenerator {
		p.pushGeneratorBodyScope()
		body, strict = p.parseCachedFunctionBody(bodyStart)
		captured = p.popGeneratorScopes()
	} else {
		body, strict = p.parseCachedFunctionBody(bodyStart)
		captured = p.popScopeCaptured()
	}

	info := &ast.FunctionInfo{
		Name: name, Parameters: params, ParameterCount: len(params),
		Body: body, IsGenerator: isGenerator, IsAsync: isAsync,
		Start: start, End: p.tok.Start, Captured: captured, Strict: strict,
	}
	return info
}

// generatorSyntheticNames are the well-known identifiers synthesized as
// the body scope's implicit parameter list for every generator function
// (spec.md 4.9, "Generators: two nested scopes"): downstream codegen
// threads generator-resume state through these names rather than a
// user-visible binding.
var generatorSyntheticNames = []string{
	"@generator", "@generatorState", "@generatorValue", "@generatorResumeMode",
}

// pushGeneratorBodyScope pushes the inner scope of a generator's two
// nested function scopes (spec.md 4.9). The outer (already current, about
// to become the "wrapper") scope holds the real formal parameters; this
// inner scope is where the body actually executes and is the one `yield`
// and `super` resolve against, so it inherits the wrapper's method/
// constructor classification alongside its own synthetic parameter list.
func (p *Parser) pushGeneratorBodyScope() {
	wrapper := p.scopes.Current()
	p.scopes.Push(scope.KindFunction, p.scopes.InStrictScope())
	body := p.scopes.Current()
	body.IsGenerator = true
	body.IsMethod = wrapper.IsMethod
	body.ConstructorKind = wrapper.ConstructorKind
	body.HasDirectSuper = wrapper.HasDirectSuper
	for _, name := range generatorSyntheticNames {
		p.scopes.Declare(p.interner.WellKnown(name), scope.DeclParameter, false)
	}
}

// popGeneratorScopes pops a generator's body scope followed by its
// wrapper scope, returning the wrapper's captured-variable set: the body
// scope's own unresolved uses were already folded into the wrapper by the
// first Pop, so the wrapper's Captured() is the complete answer.
func (p *Parser) popGeneratorScopes() map[interner.ID]bool {
	p.popScope()
	return p.popScopeCaptured()
}

// popScopeCaptured pops the current scope, returning the set of free
// variables the just-popped function scope captured from an enclosing
// scope (spec.md 4.2, "Captured"), computed before the pop as
// Captured's contract requires.
func (p *Parser) popScopeCaptured() map[interner.ID]bool {
	cur := p.scopes.Current()
	captured := p.scopes.Captured(cur)
	p.scopes.Pop()
	return captured
}

// parseCachedFunctionBody parses `{ statements }`, consulting and
// populating the function-body skip-reparse cache keyed by bodyStart
// (spec.md 4.8). The cache is never touched when the active builder is
// SyntaxOnly (spec.md 4.10): a speculative parse must not poison or be
// fooled by entries from a different builder's pass.
func (p *Parser) parseCachedFunctionBody(bodyStart token.Position) ([]ast.Statement, bool) {
	useCache := p.cache != nil && p.builder.CanUseFunctionCache()

	if useCache {
		if entry, hit := p.cache.Lookup(bodyStart.Offset); hit {
			p.expect(token.LBRACE, lexer.FlagNone, "function body")
			p.tok = p.cur.JumpTo(entry.EndOffset, entry.EndLine, entry.EndLineStart)
			if entry.Strict {
				p.scopes.SetStrict()
			}
			return nil, entry.Strict
		}
	}

	p.expect(token.LBRACE, lexer.ExprPosition, "function body")
	body := p.parseStatementList(true, token.RBRACE)
	strict := p.scopes.InStrictScope()
	rbrace := p.tok
	p.expect(token.RBRACE, lexer.FlagNone, "function body")

	if useCache {
		p.cache.Record(&fncache.Entry{
			StartOffset: bodyStart.Offset, EndOffset: rbrace.End.Offset,
			EndLine: rbrace.End.Line, EndLineStart: rbrace.End.LineStart,
			EndTokenKind: int(token.RBRACE), Strict: strict,
		})
	}
	return body, strict
}

// parseArrowFunction parses `(params) => body` once the caller has
// already confirmed (via looksLikeArrowParams or a contextual `async`
// prefix) that this is an arrow function rather than a parenthesized
// expression (spec.md 4.6).
func (p *Parser) parseArrowFunction(start token.Position, isAsync bool) ast.Expression {
	p.scopes.Push(scope.KindFunction, p.scopes.InStrictScope())
	p.scopes.Current().IsArrow = true
	params := p.parseFormalParameters()
	info := p.finishArrowFunction(start, params, isAsync)
	return p.builder.ArrowFunctionExpr(start, p.tok.Start, info)
}

// parseArrowFunctionFromIdentifier handles the single-bare-identifier
// parameter-list shorthand (`x => x + 1`), where no parentheses appear at
// all (spec.md 4.6).
func (p *Parser) parseArrowFunctionFromIdentifier(start token.Position, id interner.ID, symbol string, isAsync bool) ast.Expression {
	p.scopes.Push(scope.KindFunction, p.scopes.InStrictScope())
	p.scopes.Current().IsArrow = true
	if result := p.scopes.Declare(id, scope.DeclParameter, p.isStrictReservedName(id)); result.Has(scope.InvalidStrictMode) {
		p.errorf("arrow function", "cannot name a parameter '"+symbol+"' in strict mode")
	}
	param := p.builder.BindingIdentifier(start, p.tok.Start, id, symbol)
	info := p.finishArrowFunction(start, []ast.Pattern{param}, isAsync)
	return p.builder.ArrowFunctionExpr(start, p.tok.Start, info)
}

func (p *Parser) finishArrowFunction(start token.Position, params []ast.Pattern, isAsync bool) *ast.FunctionInfo {
	p.expect(token.ARROW, lexer.ExprPosition, "arrow function")

	info := &ast.FunctionInfo{
		Name: interner.NilID, Parameters: params, ParameterCount: len(params),
		IsArrow: true, IsAsync: isAsync, Start: start,
	}

	if p.at(token.LBRACE) {
		bodyStart := p.tok.Start
		body, strict := p.parseCachedFunctionBody(bodyStart)
		info.Body = body
		info.Strict = strict
	} else {
		info.BodyIsExpression = true
		bodyStart := p.tok.Start
		expr, strict := p.parseCachedArrowBody(bodyStart)
		info.ExpressionBody = expr
		info.Strict = strict
	}
	info.End = p.tok.Start
	info.Captured = p.popScopeCaptured()
	return info
}

// parseCachedArrowBody parses an arrow function's expression body,
// consulting and populating the function-body skip-reparse cache the
// same way parseCachedFunctionBody does for block bodies (spec.md 4.8) -
// a cache hit skips straight to the cached end offset and yields a
// skeleton (nil) expression instead of re-parsing.
func (p *Parser) parseCachedArrowBody(bodyStart token.Position) (ast.Expression, bool) {
	useCache := p.cache != nil && p.builder.CanUseFunctionCache()

	if useCache {
		if entry, hit := p.cache.Lookup(bodyStart.Offset); hit && entry.IsArrowExpressionBody {
			p.tok = p.cur.JumpTo(entry.EndOffset, entry.EndLine, entry.EndLineStart)
			if entry.Strict {
				p.scopes.SetStrict()
			}
			return nil, entry.Strict
		}
	}

	expr := p.parseAssignmentExpression(true)
	strict := p.scopes.InStrictScope()
	end := p.tok.Start

	if useCache {
		p.cache.Record(&fncache.Entry{
			StartOffset: bodyStart.Offset, EndOffset: end.Offset,
			EndLine: end.Line, EndLineStart: end.LineStart,
			EndTokenKind: int(p.tok.Kind), Strict: strict,
			IsArrowExpressionBody: true,
		})
	}
	return expr, strict
}

// parseMethodBody parses a class/object method's `(params) { body }`
// tail, sharing the function scope and cache machinery with ordinary
// functions (spec.md 4.9, "Methods"). ctorKind is ConstructorNone for an
// ordinary method; for a derived class's constructor it marks the new
// function scope as needing a super() binding before `this` is usable
// (spec.md 4.9, "Class").
func (p *Parser) parseMethodBody(isGenerator, isAsync bool, ctorKind scope.ConstructorKind) ast.Expression {
	start := p.tok.Start
	p.scopes.Push(scope.KindFunction, p.scopes.InStrictScope())
	p.scopes.Current().IsMethod = true
	if ctorKind == scope.ConstructorDerived {
		p.scopes.Current().ConstructorKind = scope.ConstructorDerived
		p.scopes.Current().HasDirectSuper = true
	}
	params := p.parseFormalParameters()
	bodyStart := p.tok.Start

	var body []ast.Statement
	var strict bool
	var captured map[interner.ID]bool
	if isGenerator {
		p.pushGeneratorBodyScope()
		body, strict = p.parseCachedFunctionBody(bodyStart)
		captured = p.popGeneratorScopes()
	} else {
		body, strict = p.parseCachedFunctionBody(bodyStart)
		captured = p.popScopeCaptured()
	}

	info := &ast.FunctionInfo{
		Name: interner.NilID, Parameters: params, ParameterCount: len(params),
		Body: body, IsGenerator: isGenerator, IsAsync: isAsync,
		Start: start, End: p.tok.Start, Captured: captured, Strict: strict,
	}
	return p.builder.FunctionExpr(start, p.tok.Start, info)
}

func (p *Parser) parseClassExpression() ast.Expression {
	start := p.tok.Start
	info := p.parseClassCommon()
	return p.builder.ClassExpr(start, p.tok.Start, info)
}

func (p *Parser) parseClassDeclaration() ast.Statement {
	start := p.tok.Start
	info := p.parseClassCommon()
	if info.Name != interner.NilID {
		if result := p.scopes.Declare(info.Name, scope.DeclClass, false); result.Has(scope.InvalidDuplicateDeclaration) {
			p.errorf("class declaration", "duplicate declaration")
		}
	}
	return p.builder.ClassDeclaration(start, p.tok.Start, info)
}

// parseClassCommon parses `class [name] [extends parent] { body }`. A
// class body is always strict (spec.md 7, "Strict mode"), so the class's
// own scope is pushed with Strict forced true regardless of the
// enclosing mode.
func (p *Parser) parseClassCommon() *ast.ClassInfo {
	p.next(lexer.FlagNone) // consume 'class'
	var name interner.ID
	if p.tok.Kind == token.IDENT {
		name, _ = p.internCurrent()
		p.next(lexer.FlagNone)
	}

	var parent ast.Expression
	kind := ast.ConstructorBase
	if p.at(token.EXTENDS) {
		p.next(lexer.ExprPosition)
		parent = p.parseLeftHandSideExpression()
		kind = ast.ConstructorDerived
	}

	p.scopes.Push(scope.KindBlock, true)
	if name != interner.NilID {
		p.scopes.Declare(name, scope.DeclClass, false)
	}
	sKind := scope.ConstructorBase
	if kind == ast.ConstructorDerived {
		sKind = scope.ConstructorDerived
	}

	info := &ast.ClassInfo{Name: name, Parent: parent, ConstructorKind: kind}
	p.expect(token.LBRACE, lexer.FlagNone, "class body")
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if p.at(token.SEMICOLON) {
			p.next(lexer.FlagNone)
			continue
		}
		member := p.parseClassMember(sKind)
		switch {
		case member.Kind == ast.MethodConstructor:
			info.Constructor = &member
		case member.IsField:
			info.Fields = append(info.Fields, member)
		case member.Static:
			info.StaticMethods = append(info.StaticMethods, member)
		default:
			info.InstanceMethods = append(info.InstanceMethods, member)
		}
	}
	p.expect(token.RBRACE, lexer.FlagNone, "class body")
	p.popScope()
	return info
}

func (p *Parser) parseClassMember(ctorKind scope.ConstructorKind) ast.ClassMember {
	static := false
	keyStart := p.tok.Start
	if p.at(token.STATIC) {
		p.next(lexer.FlagNone) // now looking at the token after 'static'
		if p.nextIsClassMemberTerminator() {
			key := p.builder.Identifier(keyStart, p.tok.Start, p.interner.Intern("static"), "static")
			return p.finishFieldOrMethod(key, false, false, false, false, false, ctorKind)
		}
		static = true
		if p.at(token.LBRACE) {
			p.next(lexer.ExprPosition)
			body := p.parseStatementList(false, token.RBRACE)
			p.expect(token.RBRACE, lexer.FlagNone, "static block")
			return ast.ClassMember{Static: true, Kind: ast.MethodStaticBlock, Body: body}
		}
	}

	isGenerator := p.at(token.STAR)
	if isGenerator {
		p.next(lexer.FlagNone)
	}

	isGetter, isSetter := false, false
	keyStart = p.tok.Start
	computed := false
	var key ast.Expression
	switch {
	case p.at(token.LBRACK):
		computed = true
		p.next(lexer.ExprPosition)
		key = p.parseAssignmentExpression(true)
		p.expect(token.RBRACK, lexer.FlagNone, "class member")
	case p.at(token.GET) || p.at(token.SET):
		wantGetter := p.at(token.GET)
		modName := p.tok.Literal
		p.next(lexer.FlagNone)
		if p.nextIsClassMemberTerminator() {
			key = p.builder.Identifier(keyStart, p.tok.Start, p.interner.Intern(modName), modName)
		} else {
			isGetter, isSetter = wantGetter, !wantGetter
			key = p.parsePropertyKey()
		}
	default:
		key = p.parsePropertyKey()
	}

	return p.finishFieldOrMethod(key, computed, static, isGenerator, isGetter, isSetter, ctorKind)
}

func (p *Parser) finishFieldOrMethod(key ast.Expression, computed, static, isGenerator, isGetter, isSetter bool, ctorKind scope.ConstructorKind) ast.ClassMember {
	if p.at(token.LPAREN) {
		isCtor := !static && !computed && !isGetter && !isSetter && isConstructorKey(key)
		memberCtorKind := scope.ConstructorNone
		if isCtor {
			memberCtorKind = ctorKind
		}
		fn := p.parseMethodBody(isGenerator, false, memberCtorKind)
		kind := ast.MethodOrdinary
		switch {
		case isGetter:
			kind = ast.MethodGetter
		case isSetter:
			kind = ast.MethodSetter
		case isCtor:
			kind = ast.MethodConstructor
		case isGenerator:
			kind = ast.MethodGenerator
		}
		return ast.ClassMember{Key: key, Computed: computed, Static: static, Kind: kind, Function: fn}
	}

	// Field declaration: `key [= init];`
	var init ast.Expression
	if p.at(token.ASSIGN) {
		p.next(lexer.ExprPosition)
		init = p.parseAssignmentExpression(true)
	}
	p.consumeSemicolon()
	return ast.ClassMember{Key: key, Computed: computed, Static: static, IsField: true, FieldInit: init}
}

func isConstructorKey(key ast.Expression) bool {
	id, ok := key.(*ast.Identifier)
	return ok && id.Symbol == "constructor"
}

func (p *Parser) nextIsClassMemberTerminator() bool {
	switch p.tok.Kind {
	case token.LPAREN, token.ASSIGN, token.SEMICOLON, token.RBRACE:
		return true
	}
	return false
}
