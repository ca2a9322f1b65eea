package parser

import (
	"github.com/scriptvm/esparser/internal/ast"
	"github.com/scriptvm/esparser/internal/lexer"
	"github.com/scriptvm/esparser/internal/scope"
	"github.com/scriptvm/esparser/internal/token"
)

// parseExpression parses the comma operator's full grammar (spec.md 4.4).
// allowsIn gates whether a bare `in` token is accepted as the relational
// operator - false inside a for-loop header's init clause, so that
// `for (x in y)` is parsed as a for-in statement rather than a relational
// expression swallowing the `in` (spec.md 4.9, "For-loop header").
func (p *Parser) parseExpression(allowsIn bool) ast.Expression {
	start := p.tok.Start
	first := p.parseAssignmentExpression(allowsIn)
	if !p.at(token.COMMA) {
		return first
	}
	exprs := []ast.Expression{first}
	for p.at(token.COMMA) {
		p.next(lexer.ExprPosition)
		exprs = append(exprs, p.parseAssignmentExpression(allowsIn))
	}
	return p.builder.Sequence(start, p.tok.Start, exprs)
}

func (p *Parser) parseAssignmentExpression(allowsIn bool) ast.Expression {
	if !p.enter() {
		return p.errExpr()
	}
	defer p.leave()

	if p.at(token.YIELD) {
		return p.parseYieldExpression()
	}

	start := p.tok.Start
	left := p.parseConditionalExpression(allowsIn)

	if token.IsAssignOp(p.tok.Kind) {
		op := p.tok.Literal
		p.next(lexer.ExprPosition)
		right := p.parseAssignmentExpression(allowsIn)
		target := p.reinterpretAsPattern(left)
		return p.builder.Assignment(start, p.tok.Start, op, target, right)
	}
	return left
}

// reinterpretAsPattern validates (and, for the full builder, is a no-op
// pass-through of) an already-parsed expression used as an assignment
// target, per the cover-grammar rule of spec.md 4.7: object/array
// literals are valid assignment targets without ever being reparsed as
// patterns - the parser only needs the Shape to police legality.
func (p *Parser) reinterpretAsPattern(e ast.Expression) ast.Expression {
	shape := p.builder.ShapeOf(e)
	if !shape.IsIdentifier && !shape.IsMemberOrCallChain && !shape.IsObjectLiteral && !shape.IsArrayLiteral {
		p.errorf("assignment target", "invalid assignment target")
	}
	return e
}

func (p *Parser) parseYieldExpression() ast.Expression {
	start := p.tok.Start
	p.next(lexer.FlagNone)
	delegate := false
	if p.at(token.STAR) {
		delegate = true
		p.next(lexer.ExprPosition)
	}
	var arg ast.Expression
	if !p.tok.PrecededByNewline && !isExpressionTerminator(p.tok.Kind) {
		arg = p.parseAssignmentExpression(true)
	}
	// yield belongs to the nearest enclosing function scope, not to a
	// block/catch/switch scope nested inside the generator body.
	var fn *scope.Scope
	frames := p.scopes.Frames()
	for i := len(frames) - 1; i >= 0 && fn == nil; i-- {
		if frames[i].Kind == scope.KindFunction {
			fn = frames[i]
		}
	}
	switch {
	case p.phase == phaseParameters:
		p.errorf("yield expression", "yield is not allowed in a generator function's parameter list")
	case fn == nil || !fn.IsGenerator:
		p.errorf("yield expression", "yield used outside a generator function")
	}
	return p.builder.Yield(start, p.tok.Start, arg, delegate)
}

func isExpressionTerminator(k token.Kind) bool {
	switch k {
	case token.SEMICOLON, token.RPAREN, token.RBRACE, token.RBRACK, token.COMMA, token.COLON, token.EOF:
		return true
	}
	return false
}

func (p *Parser) parseConditionalExpression(allowsIn bool) ast.Expression {
	start := p.tok.Start
	test := p.parseBinaryExpression(allowsIn, token.PrecLogicalOr)
	if !p.at(token.QUESTION) {
		return test
	}
	p.next(lexer.ExprPosition)
	cons := p.parseAssignmentExpression(true)
	p.expect(token.COLON, lexer.ExprPosition, "conditional expression")
	alt := p.parseAssignmentExpression(allowsIn)
	return p.builder.Conditional(start, p.tok.Start, test, cons, alt)
}

// parseBinaryExpression climbs operator precedence (spec.md 4.4): a loop
// over two stacks of operators/operands is collapsed here into ordinary
// recursion bounded by minPrec, equivalent to the shunting-yard fold the
// teacher's combinators describe in prose.
func (p *Parser) parseBinaryExpression(allowsIn bool, minPrec int) ast.Expression {
	start := p.tok.Start
	left := p.parseUnaryExpression()

	for {
		k := p.tok.Kind
		if k == token.IN && !allowsIn {
			return left
		}
		prec := token.BinaryPrecedence(k)
		if prec == token.PrecNone || prec < minPrec {
			return left
		}
		op := p.tok.Literal
		nextMin := prec + 1
		if token.IsRightAssociative(k) {
			nextMin = prec
		}
		p.next(lexer.ExprPosition)
		right := p.parseBinaryExpression(allowsIn, nextMin)
		if k == token.AND_AND || k == token.OR_OR || k == token.QUESTION_QUESTION {
			left = p.builder.Logical(start, p.tok.Start, op, left, right)
		} else {
			left = p.builder.Binary(start, p.tok.Start, op, left, right)
		}
	}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	start := p.tok.Start
	switch p.tok.Kind {
	case token.PLUS, token.MINUS, token.TILDE, token.NOT, token.TYPEOF, token.VOID, token.DELETE:
		op := p.tok.Literal
		p.next(lexer.ExprPosition)
		arg := p.parseUnaryExpression()
		return p.builder.Unary(start, p.tok.Start, op, arg)
	case token.INC, token.DEC:
		op := p.tok.Literal
		p.next(lexer.ExprPosition)
		arg := p.parseUnaryExpression()
		return p.builder.Update(start, p.tok.Start, op, arg, true)
	case token.AWAIT:
		p.next(lexer.ExprPosition)
		arg := p.parseUnaryExpression()
		return p.builder.Await(start, p.tok.Start, arg)
	}
	return p.parsePostfixExpression()
}

func (p *Parser) parsePostfixExpression() ast.Expression {
	start := p.tok.Start
	expr := p.parseLeftHandSideExpression()
	if (p.tok.Kind == token.INC || p.tok.Kind == token.DEC) && !p.tok.PrecededByNewline {
		op := p.tok.Literal
		p.next(lexer.FlagNone)
		return p.builder.Update(start, p.tok.Start, op, expr, false)
	}
	return expr
}

// parseLeftHandSideExpression parses a `new`/call/member chain, including
// optional-chaining (spec.md 4.9, "super"/member access).
func (p *Parser) parseLeftHandSideExpression() ast.Expression {
	start := p.tok.Start
	var expr ast.Expression
	if p.at(token.NEW) {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimaryExpression()
	}
	return p.parseCallOrMemberTail(start, expr)
}

func (p *Parser) parseNewExpression() ast.Expression {
	start := p.tok.Start
	p.next(lexer.ExprPosition)
	if p.at(token.DOT) {
		p.next(lexer.FlagNone)
		if !p.at(token.TARGET) {
			p.errorExpected("new.target", "target")
		}
		p.next(lexer.FlagNone)
		if !p.scopes.AnyEnclosingFunction() {
			p.errorf("new.target", "'new.target' is only allowed inside a function")
		}
		return p.builder.NewTargetExpression(start, p.tok.Start)
	}
	var callee ast.Expression
	if p.at(token.NEW) {
		callee = p.parseNewExpression()
	} else {
		callee = p.parsePrimaryExpression()
	}
	callee = p.parseMemberTailOnly(start, callee)
	var args []ast.Expression
	if p.at(token.LPAREN) {
		args = p.parseArguments()
	}
	return p.builder.New(start, p.tok.Start, callee, args)
}

// parseMemberTailOnly parses `.prop`/`[expr]` but not calls, used while
// resolving a `new` callee - member access binds tighter than the call
// that belongs to `new`.
func (p *Parser) parseMemberTailOnly(start token.Position, expr ast.Expression) ast.Expression {
	for {
		switch p.tok.Kind {
		case token.DOT:
			p.next(lexer.FlagNone)
			name := p.tok.Literal
			end := p.tok.Start
			prop := p.builder.Identifier(p.tok.Start, p.tok.Start, p.interner.Intern(name), name)
			p.next(lexer.FlagNone)
			expr = p.builder.Member(start, end, expr, prop, false, false)
		case token.LBRACK:
			p.next(lexer.ExprPosition)
			prop := p.parseExpression(true)
			p.expect(token.RBRACK, lexer.FlagNone, "member expression")
			expr = p.builder.Member(start, p.tok.Start, expr, prop, true, false)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallOrMemberTail(start token.Position, expr ast.Expression) ast.Expression {
	for {
		switch p.tok.Kind {
		case token.DOT:
			p.next(lexer.FlagNone)
			name := p.tok.Literal
			prop := p.builder.Identifier(p.tok.Start, p.tok.Start, p.interner.Intern(name), name)
			p.next(lexer.FlagNone)
			expr = p.builder.Member(start, p.tok.Start, expr, prop, false, false)
		case token.QUESTION_DOT:
			p.next(lexer.FlagNone)
			if p.at(token.LPAREN) {
				args := p.parseArguments()
				expr = p.builder.Call(start, p.tok.Start, expr, args, true)
				continue
			}
			if p.at(token.LBRACK) {
				p.next(lexer.ExprPosition)
				prop := p.parseExpression(true)
				p.expect(token.RBRACK, lexer.FlagNone, "member expression")
				expr = p.builder.Member(start, p.tok.Start, expr, prop, true, true)
				continue
			}
			name := p.tok.Literal
			prop := p.builder.Identifier(p.tok.Start, p.tok.Start, p.interner.Intern(name), name)
			p.next(lexer.FlagNone)
			expr = p.builder.Member(start, p.tok.Start, expr, prop, false, true)
		case token.LBRACK:
			p.next(lexer.ExprPosition)
			prop := p.parseExpression(true)
			p.expect(token.RBRACK, lexer.FlagNone, "member expression")
			expr = p.builder.Member(start, p.tok.Start, expr, prop, true, false)
		case token.LPAREN:
			args := p.parseArguments()
			expr = p.builder.Call(start, p.tok.Start, expr, args, false)
		case token.TEMPLATE_HEAD, token.NO_SUBSTITUTION_TEMPLATE:
			tmpl := p.parseTemplateLiteral()
			expr = p.builder.TaggedTemplate(start, p.tok.Start, expr, tmpl)
		default:
			return expr
		}
	}
}

func (p *Parser) parseArguments() []ast.Expression {
	p.expect(token.LPAREN, lexer.ExprPosition, "argument list")
	var args []ast.Expression
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		if p.at(token.DOTDOTDOT) {
			start := p.tok.Start
			p.next(lexer.ExprPosition)
			arg := p.parseAssignmentExpression(true)
			args = append(args, p.builder.Spread(start, p.tok.Start, arg))
		} else {
			args = append(args, p.parseAssignmentExpression(true))
		}
		if p.at(token.COMMA) {
			p.next(lexer.ExprPosition)
			continue
		}
		break
	}
	p.expect(token.RPAREN, lexer.FlagNone, "argument list")
	return args
}

func (p *Parser) errExpr() ast.Expression {
	return p.builder.NullLiteral(p.tok.Start, p.tok.Start)
}
