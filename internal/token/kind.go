package token

// Kind constants, grouped the way the teacher groups its TokenType block
// (special / literals / keywords / punctuators / operators), but over the
// ECMAScript grammar rather than DWScript's.
const (
	ILLEGAL Kind = iota
	EOF
	COMMENT

	// Identifiers and literals.
	IDENT  // identifier (contextual keywords have their own Kind below)
	NUMBER // 123, 0x1F, 0b101, 1.5e10, 10n
	STRING // 'x' or "x"
	REGEXP // /pattern/flags
	TEMPLATE_STRING
	TEMPLATE_HEAD  // `head${
	TEMPLATE_MIDDLE // }middle${
	TEMPLATE_TAIL   // }tail`
	NO_SUBSTITUTION_TEMPLATE // `plain`

	literalEnd

	// Unconditional keywords.
	BREAK
	CASE
	CATCH
	CLASS
	CONST
	CONTINUE
	DEBUGGER
	DEFAULT
	DELETE
	DO
	ELSE
	EXPORT
	EXTENDS
	FINALLY
	FOR
	FUNCTION
	IF
	IMPORT
	IN
	INSTANCEOF
	NEW
	RETURN
	SUPER
	SWITCH
	THIS
	THROW
	TRY
	TYPEOF
	VAR
	VOID
	WHILE
	WITH

	TRUE_LIT
	FALSE_LIT
	NULL_LIT

	// Reserved-if-strict keywords.
	IMPLEMENTS
	INTERFACE
	LET
	PACKAGE
	PRIVATE
	PROTECTED
	PUBLIC
	STATIC
	YIELD

	// Future-reserved (unconditionally, in every mode).
	ENUM

	// Contextual keywords: identifiers everywhere except specific
	// syntactic positions (spec.md 1(b), 4.9, 4.6, GLOSSARY).
	OF
	AS
	FROM
	GET
	SET
	ASYNC
	AWAIT
	TARGET

	keywordEnd

	// Punctuators.
	LBRACE
	RBRACE
	LPAREN
	RPAREN
	LBRACK
	RBRACK
	DOT
	DOTDOTDOT // ...
	SEMICOLON
	COMMA
	ARROW // =>
	QUESTION
	QUESTION_DOT  // ?.
	QUESTION_QUESTION
	COLON

	// Operators.
	LT
	GT
	LE
	GE
	EQ
	NEQ
	EQ_STRICT
	NEQ_STRICT
	PLUS
	MINUS
	STAR
	PERCENT
	STAR_STAR // **
	SLASH
	INC // ++
	DEC // --
	SHL // <<
	SHR // >>
	SAR // >>> (unsigned right shift)
	AMP
	PIPE
	CARET
	NOT // !
	TILDE
	AND_AND
	OR_OR

	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	PERCENT_ASSIGN
	STAR_STAR_ASSIGN
	SLASH_ASSIGN
	SHL_ASSIGN
	SHR_ASSIGN
	SAR_ASSIGN
	AMP_ASSIGN
	PIPE_ASSIGN
	CARET_ASSIGN
	AND_AND_ASSIGN
	OR_OR_ASSIGN
	QUESTION_QUESTION_ASSIGN

	AT // decorator sigil; the lexer produces it, but no grammar production accepts it

	punctuatorEnd
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT",
	IDENT: "IDENT", NUMBER: "NUMBER", STRING: "STRING", REGEXP: "REGEXP",
	TEMPLATE_STRING: "TEMPLATE_STRING", TEMPLATE_HEAD: "TEMPLATE_HEAD",
	TEMPLATE_MIDDLE: "TEMPLATE_MIDDLE", TEMPLATE_TAIL: "TEMPLATE_TAIL",
	NO_SUBSTITUTION_TEMPLATE: "NO_SUBSTITUTION_TEMPLATE",
	BREAK: "break", CASE: "case", CATCH: "catch", CLASS: "class", CONST: "const",
	CONTINUE: "continue", DEBUGGER: "debugger", DEFAULT: "default", DELETE: "delete",
	DO: "do", ELSE: "else", EXPORT: "export", EXTENDS: "extends", FINALLY: "finally",
	FOR: "for", FUNCTION: "function", IF: "if", IMPORT: "import", IN: "in",
	INSTANCEOF: "instanceof", NEW: "new", RETURN: "return", SUPER: "super",
	SWITCH: "switch", THIS: "this", THROW: "throw", TRY: "try", TYPEOF: "typeof",
	VAR: "var", VOID: "void", WHILE: "while", WITH: "with",
	TRUE_LIT: "true", FALSE_LIT: "false", NULL_LIT: "null",
	IMPLEMENTS: "implements", INTERFACE: "interface", LET: "let", PACKAGE: "package",
	PRIVATE: "private", PROTECTED: "protected", PUBLIC: "public", STATIC: "static",
	YIELD: "yield", ENUM: "enum",
	OF: "of", AS: "as", FROM: "from", GET: "get", SET: "set", ASYNC: "async",
	AWAIT: "await", TARGET: "target",
	LBRACE: "{", RBRACE: "}", LPAREN: "(", RPAREN: ")", LBRACK: "[", RBRACK: "]",
	DOT: ".", DOTDOTDOT: "...", SEMICOLON: ";", COMMA: ",", ARROW: "=>",
	QUESTION: "?", QUESTION_DOT: "?.", QUESTION_QUESTION: "??", COLON: ":",
	LT: "<", GT: ">", LE: "<=", GE: ">=", EQ: "==", NEQ: "!=",
	EQ_STRICT: "===", NEQ_STRICT: "!==",
	PLUS: "+", MINUS: "-", STAR: "*", PERCENT: "%", STAR_STAR: "**", SLASH: "/",
	INC: "++", DEC: "--", SHL: "<<", SHR: ">>", SAR: ">>>",
	AMP: "&", PIPE: "|", CARET: "^", NOT: "!", TILDE: "~",
	AND_AND: "&&", OR_OR: "||",
	ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=",
	PERCENT_ASSIGN: "%=", STAR_STAR_ASSIGN: "**=", SLASH_ASSIGN: "/=",
	SHL_ASSIGN: "<<=", SHR_ASSIGN: ">>=", SAR_ASSIGN: ">>>=",
	AMP_ASSIGN: "&=", PIPE_ASSIGN: "|=", CARET_ASSIGN: "^=",
	AND_AND_ASSIGN: "&&=", OR_OR_ASSIGN: "||=", QUESTION_QUESTION_ASSIGN: "??=",
	AT: "@",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsLiteral reports whether k is one of the literal-carrying kinds.
func (k Kind) IsLiteral() bool { return k > ILLEGAL && k < literalEnd }

// keywords maps the unconditional and reserved-if-strict keyword spellings
// to their Kind and flag bits. Contextual keywords (of, as, from, get, set,
// async, await, target, let, yield, static) are looked up the same way but
// carry ReservedIfStrict/PropertyNameCandidate instead of Keyword, so the
// parser - not the lexer - decides whether a given occurrence binds as a
// keyword or an identifier (spec.md 1(b), GLOSSARY "Contextual keyword").
var keywords = map[string]struct {
	Kind  Kind
	Flags Flag
}{
	"break": {BREAK, Keyword}, "case": {CASE, Keyword}, "catch": {CATCH, Keyword},
	"class": {CLASS, Keyword}, "const": {CONST, Keyword}, "continue": {CONTINUE, Keyword},
	"debugger": {DEBUGGER, Keyword}, "default": {DEFAULT, Keyword}, "delete": {DELETE, Keyword | UnaryOp},
	"do": {DO, Keyword}, "else": {ELSE, Keyword}, "export": {EXPORT, Keyword},
	"extends": {EXTENDS, Keyword}, "finally": {FINALLY, Keyword}, "for": {FOR, Keyword},
	"function": {FUNCTION, Keyword}, "if": {IF, Keyword}, "import": {IMPORT, Keyword},
	"in": {IN, Keyword | BinaryOpPrecedence}, "instanceof": {INSTANCEOF, Keyword | BinaryOpPrecedence},
	"new": {NEW, Keyword}, "return": {RETURN, Keyword}, "super": {SUPER, Keyword},
	"switch": {SWITCH, Keyword}, "this": {THIS, Keyword}, "throw": {THROW, Keyword},
	"try": {TRY, Keyword}, "typeof": {TYPEOF, Keyword | UnaryOp}, "var": {VAR, Keyword},
	"void": {VOID, Keyword | UnaryOp}, "while": {WHILE, Keyword}, "with": {WITH, Keyword},
	"true": {TRUE_LIT, Keyword}, "false": {FALSE_LIT, Keyword}, "null": {NULL_LIT, Keyword},

	"implements": {IMPLEMENTS, ReservedIfStrict}, "interface": {INTERFACE, ReservedIfStrict},
	"package": {PACKAGE, ReservedIfStrict}, "private": {PRIVATE, ReservedIfStrict},
	"protected": {PROTECTED, ReservedIfStrict}, "public": {PUBLIC, ReservedIfStrict},
	"enum": {ENUM, Reserved},

	"let": {LET, ReservedIfStrict}, "static": {STATIC, ReservedIfStrict | PropertyNameCandidate},
	"yield": {YIELD, ReservedIfStrict},

	"of": {OF, PropertyNameCandidate}, "as": {AS, PropertyNameCandidate},
	"from": {FROM, PropertyNameCandidate}, "get": {GET, PropertyNameCandidate},
	"set": {SET, PropertyNameCandidate}, "async": {ASYNC, PropertyNameCandidate},
	"await": {AWAIT, PropertyNameCandidate}, "target": {TARGET, PropertyNameCandidate},
}

// LookupIdent classifies a raw identifier spelling, returning IDENT with no
// flags for ordinary identifiers, or the matching keyword Kind/Flags for a
// reserved or contextual word.
func LookupIdent(literal string) (Kind, Flag) {
	if kw, ok := keywords[literal]; ok {
		return kw.Kind, kw.Flags
	}
	return IDENT, FlagNone
}

// IsContextual reports whether k is one of the contextual keywords whose
// identifier/keyword status the parser - not the lexer - must resolve.
func IsContextual(k Kind) bool {
	switch k {
	case LET, YIELD, STATIC, OF, AS, FROM, GET, SET, ASYNC, AWAIT, TARGET:
		return true
	}
	return false
}
