package parser

import (
	"github.com/scriptvm/esparser/internal/ast"
	"github.com/scriptvm/esparser/internal/lexer"
	"github.com/scriptvm/esparser/internal/scope"
	"github.com/scriptvm/esparser/internal/token"
)

func (p *Parser) parsePrimaryExpression() ast.Expression {
	start := p.tok.Start
	switch p.tok.Kind {
	case token.NUMBER:
		lit := p.tok.Literal
		val, bigInt := p.tok.Payload.Number, p.tok.Payload.BigInt
		p.next(lexer.FlagNone)
		return p.builder.NumberLiteral(start, p.tok.Start, val, bigInt, lit)
	case token.STRING:
		raw, val := p.tok.Literal, p.tok.Payload.String
		p.next(lexer.FlagNone)
		return p.builder.StringLiteral(start, p.tok.Start, val, raw)
	case token.TRUE_LIT, token.FALSE_LIT:
		v := p.tok.Kind == token.TRUE_LIT
		p.next(lexer.FlagNone)
		return p.builder.BooleanLiteral(start, p.tok.Start, v)
	case token.NULL_LIT:
		p.next(lexer.FlagNone)
		return p.builder.NullLiteral(start, p.tok.Start)
	case token.REGEXP:
		body, flags := p.tok.Payload.RegexBody, p.tok.Payload.RegexFlags
		p.next(lexer.FlagNone)
		return p.builder.RegExpLiteral(start, p.tok.Start, body, flags)
	case token.THIS:
		p.next(lexer.FlagNone)
		return p.builder.ThisExpression(start, p.tok.Start)
	case token.SUPER:
		p.next(lexer.FlagNone)
		p.validateSuperUsage()
		return p.builder.SuperExpression(start, p.tok.Start)
	case token.TEMPLATE_HEAD, token.NO_SUBSTITUTION_TEMPLATE:
		return p.parseTemplateLiteral()
	case token.LBRACK:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.FUNCTION:
		return p.parseFunctionExpression(false)
	case token.CLASS:
		return p.parseClassExpression()
	case token.ASYNC:
		return p.parseAsyncPrimary()
	case token.LPAREN:
		return p.parseParenOrArrow()
	case token.IDENT, token.OF, token.AS, token.FROM, token.GET, token.SET, token.AWAIT, token.STATIC, token.LET, token.YIELD:
		return p.parseIdentifierOrArrow()
	}

	p.errorf("expression", "unexpected token "+p.tok.String())
	p.next(lexer.FlagNone)
	return p.errExpr()
}

// validateSuperUsage checks that a just-consumed `super` token appears in
// a context where it is legal (spec.md 4.9, "super"): `super(...)` only
// inside a derived class constructor, `super.x`/`super[x]` inside any
// method (including a base or derived constructor), and neither form
// outside a method/constructor at all. The current token is whatever
// immediately follows `super`, so a leading `(` distinguishes the call
// form from the property form.
func (p *Parser) validateSuperUsage() {
	isCall := p.at(token.LPAREN)
	enclosing := p.scopes.NearestNonArrowFunction(func(s *scope.Scope) bool { return s.IsArrow })
	if enclosing == nil || !enclosing.IsMethod {
		if isCall {
			p.errorf("super call", "'super' keyword is only valid inside a constructor")
		} else {
			p.errorf("super property", "'super' keyword is unexpected here")
		}
		return
	}
	if isCall && enclosing.ConstructorKind != scope.ConstructorDerived {
		p.errorf("super call", "'super' calls are only valid inside a derived class constructor")
		return
	}
	p.scopes.MarkSuperBindingNeeded(enclosing)
}

// parseAsyncPrimary disambiguates `async function`, `async (params) =>`,
// and `async ident =>` from a plain identifier named "async" (spec.md
// 4.2, contextual keyword resolution).
func (p *Parser) parseAsyncPrimary() ast.Expression {
	start := p.tok.Start
	p.next(lexer.ExprPosition)
	if p.at(token.FUNCTION) && !p.tok.PrecededByNewline {
		return p.parseFunctionExpression(true)
	}
	if p.at(token.LPAREN) && !p.tok.PrecededByNewline {
		return p.parseArrowFunction(start, true)
	}
	if p.at(token.IDENT) && !p.tok.PrecededByNewline {
		idStart := p.tok.Start
		name := p.tok.Literal
		id := p.interner.Intern(name)
		mark := p.cur.Mark()
		savedTok := p.tok
		p.next(lexer.FlagNone)
		if p.at(token.ARROW) && !p.tok.PrecededByNewline {
			return p.parseArrowFunctionFromIdentifier(idStart, id, name, true)
		}
		p.cur.ResetTo(mark)
		p.tok = savedTok
	}
	id, sym := p.interner.Intern("async"), "async"
	expr := ast.Expression(p.builder.Identifier(start, p.tok.Start, id, sym))
	p.scopes.MarkUse(id)
	return expr
}

func (p *Parser) parseIdentifierOrArrow() ast.Expression {
	start := p.tok.Start
	name := p.tok.Literal
	id, sym := p.interner.Intern(name), name
	p.next(lexer.FlagNone)
	if p.at(token.ARROW) && !p.tok.PrecededByNewline {
		return p.parseArrowFunctionFromIdentifier(start, id, sym, false)
	}
	p.scopes.MarkUse(id)
	return p.builder.Identifier(start, p.tok.Start, id, sym)
}

// parseParenOrArrow resolves the parenthesized-expression vs. arrow-
// function-parameter-list cover grammar (spec.md 4.6) via a cheap token-
// level lookahead: scan forward counting paren depth, and check whether
// the matching `)` is immediately followed by `=>`.
func (p *Parser) parseParenOrArrow() ast.Expression {
	start := p.tok.Start
	if p.looksLikeArrowParams() {
		return p.parseArrowFunction(start, false)
	}

	p.next(lexer.ExprPosition)
	if p.at(token.RPAREN) {
		p.errorf("parenthesized expression", "unexpected empty parentheses")
		p.next(lexer.FlagNone)
		return p.errExpr()
	}
	expr := p.parseExpression(true)
	p.expect(token.RPAREN, lexer.FlagNone, "parenthesized expression")
	return expr
}

// looksLikeArrowParams scans ahead from the current `(` purely at the
// token level (no builder calls, no scope mutation) to find the matching
// `)` and test whether it is immediately followed by `=>` with no
// intervening line break (spec.md 4.6, 4.9 "=> must not follow a line
// break after )").
func (p *Parser) looksLikeArrowParams() bool {
	mark := p.cur.Mark()
	saved := p.tok
	depth := 0
	result := false
	for {
		switch p.tok.Kind {
		case token.LPAREN:
			depth++
			p.next(lexer.ExprPosition)
		case token.RPAREN:
			depth--
			p.next(lexer.FlagNone)
			if depth == 0 {
				result = p.at(token.ARROW) && !p.tok.PrecededByNewline
				p.cur.ResetTo(mark)
				p.tok = saved
				return result
			}
		case token.EOF:
			p.cur.ResetTo(mark)
			p.tok = saved
			return false
		default:
			p.next(lexer.ExprPosition)
		}
	}
}

func (p *Parser) parseTemplateLiteral() ast.Expression {
	start := p.tok.Start
	var quasis []ast.TemplateElement
	var exprs []ast.Expression

	if p.at(token.NO_SUBSTITUTION_TEMPLATE) {
		quasis = append(quasis, ast.TemplateElement{Cooked: p.tok.Payload.String, Raw: p.tok.Literal, Tail: true})
		p.next(lexer.FlagNone)
		return p.builder.TemplateLiteral(start, p.tok.Start, quasis, exprs)
	}

	quasis = append(quasis, ast.TemplateElement{Cooked: p.tok.Payload.String, Raw: p.tok.Literal, Tail: false})
	p.next(lexer.ExprPosition)
	for {
		exprs = append(exprs, p.parseExpression(true))
		if !p.at(token.RBRACE) {
			p.errorf("template literal", "expected '}' to resume template")
			break
		}
		tok := p.cur.RescanTemplateTail()
		p.tok = tok
		tail := p.tok.Kind == token.TEMPLATE_TAIL
		quasis = append(quasis, ast.TemplateElement{Cooked: p.tok.Payload.String, Raw: p.tok.Literal, Tail: tail})
		p.next(lexer.ExprPosition)
		if tail {
			break
		}
	}
	return p.builder.TemplateLiteral(start, p.tok.Start, quasis, exprs)
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	start := p.tok.Start
	p.expect(token.LBRACK, lexer.ExprPosition, "array literal")
	var elements []ast.Expression
	for !p.at(token.RBRACK) && !p.at(token.EOF) {
		if p.at(token.COMMA) {
			elements = append(elements, nil)
			p.next(lexer.ExprPosition)
			continue
		}
		if p.at(token.DOTDOTDOT) {
			elStart := p.tok.Start
			p.next(lexer.ExprPosition)
			arg := p.parseAssignmentExpression(true)
			elements = append(elements, p.builder.Spread(elStart, p.tok.Start, arg))
		} else {
			elements = append(elements, p.parseAssignmentExpression(true))
		}
		if p.at(token.COMMA) {
			p.next(lexer.ExprPosition)
		}
	}
	p.expect(token.RBRACK, lexer.FlagNone, "array literal")
	return p.builder.ArrayLiteral(start, p.tok.Start, elements)
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	start := p.tok.Start
	p.expect(token.LBRACE, lexer.FlagNone, "object literal")
	var props []ast.ObjectProperty
	seenProtoKey := false
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		prop := p.parseObjectProperty()
		if isPlainProtoKey(prop) {
			if seenProtoKey {
				p.errorf("object literal", "duplicate '__proto__' property")
			}
			seenProtoKey = true
		}
		props = append(props, prop)
		if p.at(token.COMMA) {
			p.next(lexer.FlagNone)
			continue
		}
		break
	}
	p.expect(token.RBRACE, lexer.FlagNone, "object literal")
	return p.builder.ObjectLiteral(start, p.tok.Start, props)
}

// isPlainProtoKey reports whether prop is a non-computed, non-shorthand
// `__proto__: value` entry - the one form spec.md 3 singles out as a
// duplicate-key semantic error, distinct from every other key where a
// repeated property is just "last value wins".
func isPlainProtoKey(prop ast.ObjectProperty) bool {
	if prop.Computed || prop.Shorthand || prop.Kind != ast.PropertyInit {
		return false
	}
	switch key := prop.Key.(type) {
	case *ast.Identifier:
		return key.Symbol == "__proto__"
	case *ast.StringLiteral:
		return key.Value == "__proto__"
	}
	return false
}

func (p *Parser) parseObjectProperty() ast.ObjectProperty {
	if p.at(token.DOTDOTDOT) {
		p.next(lexer.ExprPosition)
		arg := p.parseAssignmentExpression(true)
		return ast.ObjectProperty{Kind: ast.PropertySpread, Value: arg}
	}

	isGenerator := p.at(token.STAR)
	if isGenerator {
		p.next(lexer.FlagNone)
	}

	isGetter, isSetter := false, false
	keyStart := p.tok.Start
	computed := false
	var key ast.Expression
	switch {
	case p.at(token.LBRACK):
		computed = true
		p.next(lexer.ExprPosition)
		key = p.parseAssignmentExpression(true)
		p.expect(token.RBRACK, lexer.FlagNone, "object literal")
	case p.at(token.GET) || p.at(token.SET):
		wantGetter := p.at(token.GET)
		modName := p.tok.Literal
		p.next(lexer.FlagNone) // now genuinely looking at the token after get/set
		if p.nextIsPropertyTerminator() {
			key = p.builder.Identifier(keyStart, p.tok.Start, p.interner.Intern(modName), modName)
		} else {
			isGetter, isSetter = wantGetter, !wantGetter
			key = p.parsePropertyKey()
		}
	default:
		key = p.parsePropertyKey()
	}

	switch {
	case p.at(token.LPAREN):
		fn := p.parseMethodBody(isGenerator, false, scope.ConstructorNone)
		kind := ast.PropertyMethod
		if isGetter {
			kind = ast.PropertyGet
		} else if isSetter {
			kind = ast.PropertySet
		}
		return ast.ObjectProperty{Key: key, Computed: computed, Kind: kind, Method: fn}
	case p.at(token.COLON):
		p.next(lexer.ExprPosition)
		val := p.parseAssignmentExpression(true)
		return ast.ObjectProperty{Key: key, Computed: computed, Kind: ast.PropertyInit, Value: val}
	default:
		idExpr, _ := key.(*ast.Identifier)
		var val ast.Expression = key
		if p.at(token.ASSIGN) {
			assignStart := keyStart
			p.next(lexer.ExprPosition)
			def := p.parseAssignmentExpression(true)
			val = p.builder.Assignment(assignStart, p.tok.Start, "=", key, def)
		}
		if idExpr != nil {
			p.scopes.MarkUse(idExpr.Name)
		}
		return ast.ObjectProperty{Key: key, Computed: computed, Shorthand: true, Kind: ast.PropertyInit, Value: val}
	}
}

func (p *Parser) nextIsPropertyTerminator() bool {
	return p.tok.Kind == token.COLON || p.tok.Kind == token.LPAREN || p.tok.Kind == token.COMMA || p.tok.Kind == token.RBRACE || p.tok.Kind == token.ASSIGN
}

func (p *Parser) parsePropertyKey() ast.Expression {
	start := p.tok.Start
	switch p.tok.Kind {
	case token.STRING:
		raw, val := p.tok.Literal, p.tok.Payload.String
		p.next(lexer.FlagNone)
		return p.builder.StringLiteral(start, p.tok.Start, val, raw)
	case token.NUMBER:
		lit, val := p.tok.Literal, p.tok.Payload.Number
		p.next(lexer.FlagNone)
		return p.builder.NumberLiteral(start, p.tok.Start, val, false, lit)
	default:
		name := p.tok.Literal
		id, sym := p.interner.Intern(name), name
		p.next(lexer.FlagNone)
		return p.builder.Identifier(start, p.tok.Start, id, sym)
	}
}
