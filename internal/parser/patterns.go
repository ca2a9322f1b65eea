package parser

import (
	"github.com/scriptvm/esparser/internal/ast"
	"github.com/scriptvm/esparser/internal/lexer"
	"github.com/scriptvm/esparser/internal/scope"
	"github.com/scriptvm/esparser/internal/token"
)

// declKindFor maps an ast.DestructuringKind to the scope package's
// DeclKind, used when a parsed binding identifier is registered in the
// current scope (spec.md 4.5).
func declKindFor(kind ast.DestructuringKind) scope.DeclKind {
	switch kind {
	case ast.ToLet:
		return scope.DeclLet
	case ast.ToConst:
		return scope.DeclConst
	case ast.ToParameters:
		return scope.DeclParameter
	case ast.ToCatchParameters:
		return scope.DeclCatchParameter
	default:
		return scope.DeclVar
	}
}

// parsePattern parses a single binding target: an identifier, an array
// pattern, or an object pattern, per the grammar of spec.md 4.5. kind
// selects both the scope declaration behavior and (for ToExpressions)
// whether a bare identifier is treated as a pattern at all.
func (p *Parser) parsePattern(kind ast.DestructuringKind) ast.Pattern {
	start := p.tok.Start
	switch p.tok.Kind {
	case token.LBRACK:
		return p.parseArrayPattern(kind)
	case token.LBRACE:
		return p.parseObjectPattern(kind)
	default:
		if p.tok.Kind != token.IDENT && !token.IsContextual(p.tok.Kind) && !p.tok.Is(token.ReservedIfStrict) {
			p.errorExpected("binding", "identifier")
		}
		name := p.tok.Literal
		id, sym := p.internCurrent()
		p.next(lexer.FlagNone)
		if kind != ast.ToExpressions {
			result := p.scopes.Declare(id, declKindFor(kind), p.isStrictReservedName(id))
			if result.Has(scope.InvalidDuplicateDeclaration) {
				p.errorf("binding", "duplicate binding for \""+name+"\"")
			}
			if result.Has(scope.InvalidStrictMode) {
				p.errorf("binding", "cannot use '"+name+"' as a binding name in strict mode")
			}
		}
		return p.builder.BindingIdentifier(start, p.tok.Start, id, sym)
	}
}

// parseBindingElement parses one element of a parameter or destructuring
// list: a pattern, optionally a `...rest`, optionally a `= default`.
func (p *Parser) parseBindingElement(kind ast.DestructuringKind) ast.Pattern {
	start := p.tok.Start
	if p.at(token.DOTDOTDOT) {
		p.next(lexer.FlagNone)
		arg := p.parsePattern(kind)
		return p.builder.RestElement(start, p.tok.Start, arg)
	}
	target := p.parsePattern(kind)
	if p.at(token.ASSIGN) {
		p.next(lexer.ExprPosition)
		def := p.parseAssignmentExpression(true)
		return p.builder.AssignmentPattern(start, p.tok.Start, target, def)
	}
	return target
}

func (p *Parser) parseArrayPattern(kind ast.DestructuringKind) ast.Pattern {
	start := p.tok.Start
	p.expect(token.LBRACK, lexer.FlagNone, "array pattern")
	var elements []ast.Pattern
	var defaults []ast.Expression
	for !p.at(token.RBRACK) && !p.at(token.EOF) {
		if p.at(token.COMMA) {
			elements = append(elements, nil)
			defaults = append(defaults, nil)
			p.next(lexer.FlagNone)
			continue
		}
		isRest := p.at(token.DOTDOTDOT)
		elem := p.parseBindingElement(kind)
		elements = append(elements, elem)
		defaults = append(defaults, nil)
		if isRest && !p.at(token.RBRACK) {
			p.errorf("array pattern", "rest element must be last")
		}
		if !p.at(token.RBRACK) {
			if !p.expect(token.COMMA, lexer.FlagNone, "array pattern") {
				break
			}
		}
	}
	p.expect(token.RBRACK, lexer.FlagNone, "array pattern")
	return p.builder.ArrayPattern(start, p.tok.Start, elements, defaults)
}

func (p *Parser) parseObjectPattern(kind ast.DestructuringKind) ast.Pattern {
	start := p.tok.Start
	p.expect(token.LBRACE, lexer.FlagNone, "object pattern")
	var props []ast.ObjectPatternProperty
	var rest *ast.BindingIdentifier
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if p.at(token.DOTDOTDOT) {
			p.next(lexer.FlagNone)
			name := p.tok.Literal
			id, sym := p.internCurrent()
			p.next(lexer.FlagNone)
			result := p.scopes.Declare(id, declKindFor(kind), p.isStrictReservedName(id))
			if result.Has(scope.InvalidDuplicateDeclaration) {
				p.errorf("object pattern", "duplicate binding for \""+name+"\"")
			}
			if result.Has(scope.InvalidStrictMode) {
				p.errorf("object pattern", "cannot use '"+name+"' as a binding name in strict mode")
			}
			bi := p.builder.BindingIdentifier(start, p.tok.Start, id, sym)
			rest, _ = bi.(*ast.BindingIdentifier)
			break
		}

		computed := false
		var key ast.Expression
		keyStart := p.tok.Start
		if p.at(token.LBRACK) {
			computed = true
			p.next(lexer.ExprPosition)
			key = p.parseAssignmentExpression(true)
			p.expect(token.RBRACK, lexer.FlagNone, "object pattern")
		} else {
			name := p.tok.Literal
			id, sym := p.interner.Intern(name), name
			key = p.builder.Identifier(keyStart, p.tok.Start, id, sym)
			p.next(lexer.FlagNone)
		}

		var value ast.Pattern
		shorthand := false
		if p.at(token.COLON) {
			p.next(lexer.FlagNone)
			value = p.parsePattern(kind)
		} else {
			shorthand = true
			idExpr, ok := key.(*ast.Identifier)
			if ok {
				if kind != ast.ToExpressions {
					result := p.scopes.Declare(idExpr.Name, declKindFor(kind), p.isStrictReservedName(idExpr.Name))
					if result.Has(scope.InvalidDuplicateDeclaration) {
						p.errorf("object pattern", "duplicate binding")
					}
					if result.Has(scope.InvalidStrictMode) {
						p.errorf("object pattern", "cannot use '"+idExpr.Symbol+"' as a binding name in strict mode")
					}
				}
				value = p.builder.BindingIdentifier(keyStart, p.tok.Start, idExpr.Name, idExpr.Symbol)
			}
		}

		var def ast.Expression
		if p.at(token.ASSIGN) {
			p.next(lexer.ExprPosition)
			def = p.parseAssignmentExpression(true)
		}
		props = append(props, ast.ObjectPatternProperty{Key: key, Computed: computed, Value: value, Default: def, Shorthand: shorthand})

		if !p.at(token.RBRACE) {
			if !p.expect(token.COMMA, lexer.FlagNone, "object pattern") {
				break
			}
		}
	}
	p.expect(token.RBRACE, lexer.FlagNone, "object pattern")
	return p.builder.ObjectPattern(start, p.tok.Start, props, rest)
}

// parseFormalParameters parses a function's `(params)` list, declaring
// each binding as a DeclParameter in the (already-pushed) function scope
// (spec.md 4.8, "Function parameters").
func (p *Parser) parseFormalParameters() []ast.Pattern {
	savedPhase := p.phase
	p.phase = phaseParameters
	defer func() { p.phase = savedPhase }()

	p.expect(token.LPAREN, lexer.FlagNone, "parameter list")
	var params []ast.Pattern
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		isRest := p.at(token.DOTDOTDOT)
		param := p.parseBindingElement(ast.ToParameters)
		params = append(params, param)
		if isRest {
			if _, ok := param.(*ast.RestElement); ok && !p.at(token.RPAREN) {
				p.errorf("parameter list", "rest parameter must be last and without a default")
			}
		}
		if !p.at(token.RPAREN) {
			if !p.expect(token.COMMA, lexer.FlagNone, "parameter list") {
				break
			}
		}
	}
	p.expect(token.RPAREN, lexer.FlagNone, "parameter list")
	return params
}
