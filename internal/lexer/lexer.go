// Package lexer implements the token-producing collaborator the parser
// core drives directly (spec.md 2.4): next(flags), setCode/setOffset/
// setLineNumber, currentOffset, prevTerminator, scanRegExp,
// scanTrailingTemplateString, isReparsingFunction.
//
// Grounded in the teacher's internal/lexer package (rune-at-a-time
// scanning with readChar/peekChar, line/column bookkeeping, functional
// LexerOption configuration, UTF-8 BOM stripping - internal/lexer/
// lexer.go), generalized from DWScript's Pascal-shaped token set to the
// ECMAScript grammar spec.md enumerates. Unlike the teacher, token kind
// disambiguation for contextual keywords is deferred to the parser
// (spec.md 4.2): the lexer returns each contextual keyword's own Kind
// (LET, YIELD, OF, AS, ...) without the Keyword flag, and the parser
// decides whether a given occurrence is a keyword or an identifier.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/scriptvm/esparser/internal/token"
)

// ScanFlags tells Next() which production context it is scanning in, so
// that the single lexer can disambiguate `/` (divide vs. regex start)
// and `}` (punctuator vs. template-tail resumption) the way the parser's
// current position requires (spec.md 2.4, "next(flags)").
type ScanFlags uint8

const (
	FlagNone ScanFlags = 0
	// ExprPosition means a `/` here starts a regular expression, not a
	// division operator.
	ExprPosition ScanFlags = 1 << iota >> 1
	// TemplateTail means a `}` here resumes scanning a template literal's
	// next string chunk rather than closing a block.
	TemplateTail
)

// Lexer is a rune-at-a-time scanner over ECMAScript source.
type Lexer struct {
	input        string
	position     int
	readPosition int
	line         int
	lineStart    int // byte offset of the current line's first character
	ch           rune

	prevTerminator bool // a line terminator was skipped since the last token
	errors         []string
}

// Option configures a Lexer at construction, mirroring the teacher's
// LexerOption pattern (internal/lexer/lexer.go).
type Option func(*Lexer)

// New creates a Lexer over input, stripping a UTF-8 BOM if present
// (matches the teacher's New, which strips BOMs the same way DWScript's
// original file reader does).
func New(input string, opts ...Option) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}
	l := &Lexer{input: input, line: 1, lineStart: 0}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) currentPosition() token.Position {
	return token.Position{Offset: l.position, Line: l.line, Column: l.position - l.lineStart + 1, LineStart: l.lineStart}
}

// CurrentOffset reports the byte offset of the next character Next()
// would read, used by the function-body cache to record a span
// (spec.md 4.8).
func (l *Lexer) CurrentOffset() int { return l.position }

// SetOffset repositions the lexer onto an already-scanned source without
// rescanning from the start, used by the parser cursor's JumpTo to resume
// scanning after a cached function body (spec.md 2.4).
func (l *Lexer) SetOffset(offset int) {
	l.readPosition = offset
	l.position = offset
	l.readChar()
}

// SetLineNumber resets line bookkeeping after a SetOffset jump, so that
// diagnostics downstream of a cache hit still report correct positions.
func (l *Lexer) SetLineNumber(line, lineStart int) {
	l.line = line
	l.lineStart = lineStart
}

// PrevTerminator reports whether a line terminator was skipped between
// the previous token and the one Next() is about to return - the input
// automatic-semicolon-insertion needs (spec.md 4.3).
func (l *Lexer) PrevTerminator() bool { return l.prevTerminator }

func (l *Lexer) skipWhitespaceAndComments() {
	l.prevTerminator = false
	for {
		switch {
		case l.ch == '\n':
			l.prevTerminator = true
			l.readChar()
			l.line++
			l.lineStart = l.position
		case l.ch == '\r':
			l.prevTerminator = true
			l.readChar()
			if l.ch == '\n' {
				l.readChar()
			}
			l.line++
			l.lineStart = l.position
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\v' || l.ch == '\f':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') && l.ch != 0 {
				if l.ch == '\n' || l.ch == '\r' {
					l.prevTerminator = true
					l.line++
					l.readChar()
					l.lineStart = l.position
					continue
				}
				l.readChar()
			}
			l.readChar()
			l.readChar()
		default:
			return
		}
	}
}

// Next scans the next token under the given flags (spec.md 2.4,
// "next(flags)").
func (l *Lexer) Next(flags ScanFlags) token.Token {
	l.skipWhitespaceAndComments()
	start := l.currentPosition()

	if l.ch == 0 {
		return l.make(token.EOF, start, "")
	}

	switch {
	case isIdentStart(l.ch):
		return l.scanIdentifier(start)
	case unicode.IsDigit(l.ch):
		return l.scanNumber(start)
	case l.ch == '.' && unicode.IsDigit(l.peekChar()):
		return l.scanNumber(start)
	case l.ch == '"' || l.ch == '\'':
		return l.scanString(start)
	case l.ch == '`':
		return l.scanTemplate(start, true)
	case l.ch == '/' && flags&ExprPosition != 0:
		return l.ScanRegExp(start)
	case l.ch == '}' && flags&TemplateTail != 0:
		l.readChar()
		return l.scanTemplate(start, false)
	}

	return l.scanPunctuator(start)
}

func (l *Lexer) make(kind token.Kind, start token.Position, literal string) token.Token {
	end := l.currentPosition()
	prevTerm := l.prevTerminator
	return token.Token{Kind: kind, Start: start, End: end, Literal: literal, PrecededByNewline: prevTerm}
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *Lexer) scanIdentifier(start token.Position) token.Token {
	var sb strings.Builder
	for isIdentPart(l.ch) || (l.ch == '\\' && l.peekChar() == 'u') {
		if l.ch == '\\' {
			sb.WriteRune(l.scanUnicodeEscape())
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	literal := sb.String()
	kind, flags := token.LookupIdent(literal)
	tok := l.make(kind, start, literal)
	tok.Flags = flags
	tok.Payload.String = literal
	return tok
}

func (l *Lexer) scanUnicodeEscape() rune {
	l.readChar() // backslash
	l.readChar() // 'u'
	if l.ch == '{' {
		l.readChar()
		var hex strings.Builder
		for l.ch != '}' && l.ch != 0 {
			hex.WriteRune(l.ch)
			l.readChar()
		}
		l.readChar()
		v, err := strconv.ParseInt(hex.String(), 16, 32)
		if err != nil {
			return utf8.RuneError
		}
		return rune(v)
	}
	var hex strings.Builder
	for i := 0; i < 4 && isHexDigit(l.ch); i++ {
		hex.WriteRune(l.ch)
		l.readChar()
	}
	v, err := strconv.ParseInt(hex.String(), 16, 32)
	if err != nil {
		return utf8.RuneError
	}
	return rune(v)
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (l *Lexer) scanNumber(start token.Position) token.Token {
	var sb strings.Builder
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		sb.WriteRune(l.ch)
		l.readChar()
		sb.WriteRune(l.ch)
		l.readChar()
		for isHexDigit(l.ch) || l.ch == '_' {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		return l.finishNumber(start, sb.String(), 16)
	}
	if l.ch == '0' && (l.peekChar() == 'o' || l.peekChar() == 'O') {
		sb.WriteRune(l.ch)
		l.readChar()
		sb.WriteRune(l.ch)
		l.readChar()
		for (l.ch >= '0' && l.ch <= '7') || l.ch == '_' {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		return l.finishNumber(start, sb.String(), 8)
	}
	if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		sb.WriteRune(l.ch)
		l.readChar()
		sb.WriteRune(l.ch)
		l.readChar()
		for l.ch == '0' || l.ch == '1' || l.ch == '_' {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		return l.finishNumber(start, sb.String(), 2)
	}

	for unicode.IsDigit(l.ch) || l.ch == '_' {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '.' {
		sb.WriteRune(l.ch)
		l.readChar()
		for unicode.IsDigit(l.ch) || l.ch == '_' {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		sb.WriteRune(l.ch)
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		for unicode.IsDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
	return l.finishNumber(start, sb.String(), 10)
}

func (l *Lexer) finishNumber(start token.Position, raw string, base int) token.Token {
	bigInt := false
	if l.ch == 'n' {
		bigInt = true
		l.readChar()
	}
	clean := strings.ReplaceAll(raw, "_", "")
	var value float64
	switch base {
	case 16, 8, 2:
		if v, err := strconv.ParseInt(clean[2:], base, 64); err == nil {
			value = float64(v)
		}
	default:
		v, _ := strconv.ParseFloat(clean, 64)
		value = v
	}
	tok := l.make(token.NUMBER, start, raw)
	tok.Payload.Number = value
	tok.Payload.BigInt = bigInt
	return tok
}

func (l *Lexer) scanString(start token.Position) token.Token {
	quote := l.ch
	l.readChar()
	var cooked, raw strings.Builder
	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			raw.WriteRune(l.ch)
			l.readChar()
			c, r := l.scanEscapeSequence()
			cooked.WriteString(c)
			raw.WriteString(r)
			continue
		}
		if l.ch == '\n' || l.ch == '\r' {
			l.errors = append(l.errors, "unterminated string literal")
			break
		}
		cooked.WriteRune(l.ch)
		raw.WriteRune(l.ch)
		l.readChar()
	}
	unterminated := l.ch != quote
	l.readChar() // closing quote
	tok := l.make(token.STRING, start, string(quote)+raw.String()+string(quote))
	tok.Payload.String = cooked.String()
	tok.Payload.Raw = raw.String()
	if unterminated {
		tok.Kind = token.ILLEGAL
		tok.Flags |= token.ErrorToken
	}
	return tok
}

func (l *Lexer) scanEscapeSequence() (cooked, raw string) {
	switch l.ch {
	case 'n':
		l.readChar()
		return "\n", "n"
	case 't':
		l.readChar()
		return "\t", "t"
	case 'r':
		l.readChar()
		return "\r", "r"
	case 'b':
		l.readChar()
		return "\b", "b"
	case 'f':
		l.readChar()
		return "\f", "f"
	case 'v':
		l.readChar()
		return "\v", "v"
	case '0':
		l.readChar()
		return "\x00", "0"
	case 'x':
		l.readChar()
		var hex strings.Builder
		for i := 0; i < 2 && isHexDigit(l.ch); i++ {
			hex.WriteRune(l.ch)
			l.readChar()
		}
		v, _ := strconv.ParseInt(hex.String(), 16, 32)
		return string(rune(v)), "x" + hex.String()
	case 'u':
		r := l.scanUnicodeEscape()
		return string(r), "u" + string(r)
	case '\n':
		l.readChar()
		l.line++
		l.lineStart = l.position
		return "", "\n"
	default:
		r := l.ch
		l.readChar()
		return string(r), string(r)
	}
}

// scanTemplate scans one chunk of a template literal. fromBacktick
// selects whether the opening delimiter is a backtick (a fresh template)
// or the caller already consumed the `}` resuming after a substitution
// expression (spec.md 4.10, "Template literal"). The returned Kind
// follows the four-way split of spec.md's template grammar: a chunk with
// no substitutions on either side is NO_SUBSTITUTION_TEMPLATE, the first
// chunk before a substitution is TEMPLATE_HEAD, a chunk between two
// substitutions is TEMPLATE_MIDDLE, and the last chunk is TEMPLATE_TAIL.
func (l *Lexer) scanTemplate(start token.Position, fromBacktick bool) token.Token {
	if fromBacktick {
		l.readChar() // consume backtick
	}
	var cooked, raw strings.Builder
	for {
		if l.ch == '`' {
			l.readChar()
			kind := token.TEMPLATE_TAIL
			if fromBacktick {
				kind = token.NO_SUBSTITUTION_TEMPLATE
			}
			tok := l.make(kind, start, raw.String())
			tok.Payload.String = cooked.String()
			tok.Payload.TemplateTail = true
			return tok
		}
		if l.ch == '$' && l.peekChar() == '{' {
			l.readChar()
			l.readChar()
			kind := token.TEMPLATE_MIDDLE
			if fromBacktick {
				kind = token.TEMPLATE_HEAD
			}
			tok := l.make(kind, start, raw.String())
			tok.Payload.String = cooked.String()
			tok.Payload.TemplateHead = true
			return tok
		}
		if l.ch == 0 {
			l.errors = append(l.errors, "unterminated template literal")
			tok := l.make(token.TEMPLATE_TAIL, start, raw.String())
			tok.Payload.String = cooked.String()
			return tok
		}
		if l.ch == '\\' {
			raw.WriteRune(l.ch)
			l.readChar()
			c, r := l.scanEscapeSequence()
			cooked.WriteString(c)
			raw.WriteString(r)
			continue
		}
		if l.ch == '\n' {
			l.line++
			l.lineStart = l.position + 1
		}
		cooked.WriteRune(l.ch)
		raw.WriteRune(l.ch)
		l.readChar()
	}
}

// ScanTrailingTemplateString resumes scanning a template literal's next
// chunk after the parser has consumed a substitution expression and
// landed back on `}` (spec.md 2.4, "scanTrailingTemplateString").
func (l *Lexer) ScanTrailingTemplateString() token.Token {
	start := l.currentPosition()
	return l.scanTemplate(start, false)
}

// ScanRegExp scans a regular-expression literal starting at the current
// `/`, syntax-checking only (spec.md 1, Non-goals: "regex semantics
// beyond recognizing literal syntax").
func (l *Lexer) ScanRegExp(start token.Position) token.Token {
	l.readChar() // opening /
	var body strings.Builder
	inClass := false
	for {
		if l.ch == 0 || l.ch == '\n' {
			l.errors = append(l.errors, "unterminated regular expression literal")
			break
		}
		if l.ch == '\\' {
			body.WriteRune(l.ch)
			l.readChar()
			body.WriteRune(l.ch)
			l.readChar()
			continue
		}
		if l.ch == '[' {
			inClass = true
		} else if l.ch == ']' {
			inClass = false
		} else if l.ch == '/' && !inClass {
			l.readChar()
			break
		}
		body.WriteRune(l.ch)
		l.readChar()
	}
	var flags strings.Builder
	for isIdentPart(l.ch) {
		flags.WriteRune(l.ch)
		l.readChar()
	}
	tok := l.make(token.REGEXP, start, "/"+body.String()+"/"+flags.String())
	tok.Payload.RegexBody = body.String()
	tok.Payload.RegexFlags = flags.String()
	return tok
}

var threeCharPunct = map[string]token.Kind{
	"===": token.EQ_STRICT, "!==": token.NEQ_STRICT,
	"**=": token.STAR_STAR_ASSIGN, "<<=": token.SHL_ASSIGN, ">>=": token.SHR_ASSIGN,
	"...": token.DOTDOTDOT, "&&=": token.AND_AND_ASSIGN, "||=": token.OR_OR_ASSIGN,
	"??=": token.QUESTION_QUESTION_ASSIGN, ">>>": token.SAR,
}

var fourCharPunct = map[string]token.Kind{
	">>>=": token.SAR_ASSIGN,
}

var twoCharPunct = map[string]token.Kind{
	"==": token.EQ, "!=": token.NEQ, "<=": token.LE, ">=": token.GE,
	"&&": token.AND_AND, "||": token.OR_OR, "??": token.QUESTION_QUESTION,
	"?.": token.QUESTION_DOT, "=>": token.ARROW, "++": token.INC, "--": token.DEC,
	"+=": token.PLUS_ASSIGN, "-=": token.MINUS_ASSIGN, "*=": token.STAR_ASSIGN, "/=": token.SLASH_ASSIGN,
	"%=": token.PERCENT_ASSIGN, "&=": token.AMP_ASSIGN, "|=": token.PIPE_ASSIGN, "^=": token.CARET_ASSIGN,
	"<<": token.SHL, ">>": token.SHR, "**": token.STAR_STAR,
}

var oneCharPunct = map[rune]token.Kind{
	'{': token.LBRACE, '}': token.RBRACE, '(': token.LPAREN, ')': token.RPAREN,
	'[': token.LBRACK, ']': token.RBRACK, ';': token.SEMICOLON, ',': token.COMMA,
	'<': token.LT, '>': token.GT, '+': token.PLUS, '-': token.MINUS, '*': token.STAR,
	'/': token.SLASH, '%': token.PERCENT, '&': token.AMP, '|': token.PIPE, '^': token.CARET,
	'!': token.NOT, '~': token.TILDE, '?': token.QUESTION, ':': token.COLON,
	'=': token.ASSIGN, '.': token.DOT, '@': token.AT,
}

func (l *Lexer) scanPunctuator(start token.Position) token.Token {
	four := l.peekN(4)
	if kind, ok := fourCharPunct[four]; ok {
		for i := 0; i < 4; i++ {
			l.readChar()
		}
		return l.make(kind, start, four)
	}
	three := l.peekN(3)
	if kind, ok := threeCharPunct[three]; ok {
		for i := 0; i < 3; i++ {
			l.readChar()
		}
		return l.make(kind, start, three)
	}
	two := l.peekN(2)
	if kind, ok := twoCharPunct[two]; ok {
		l.readChar()
		l.readChar()
		return l.make(kind, start, two)
	}
	if kind, ok := oneCharPunct[l.ch]; ok {
		lit := string(l.ch)
		l.readChar()
		return l.make(kind, start, lit)
	}
	lit := string(l.ch)
	l.readChar()
	tok := l.make(token.ILLEGAL, start, lit)
	tok.Flags |= token.ErrorToken
	return tok
}

func (l *Lexer) peekN(n int) string {
	end := l.position + n
	if end > len(l.input) {
		return ""
	}
	return l.input[l.position:end]
}

// Errors returns the lexer-level errors (unterminated literals) recorded
// so far.
func (l *Lexer) Errors() []string { return l.errors }
