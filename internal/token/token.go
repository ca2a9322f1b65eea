// Package token defines the tagged-record token type the parser reads from
// the lexer, along with the flag bits that let the parser answer questions
// like "is this a keyword that is only reserved in strict mode" without a
// second lookup table.
package token

import "fmt"

// Position locates a token in the original source text.
type Position struct {
	Offset     int // byte offset from the start of the source
	Line       int // 1-based line number
	Column     int // 1-based byte column within the line
	LineStart  int // byte offset of the first character of Line
}

// String renders "line:column", matching the teacher's Position.String.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether p carries a usable line number.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Flag bits carried on a Kind, queried by the parser instead of a second
// keyword table. A single Kind may carry several of these.
type Flag uint16

const (
	FlagNone Flag = 0

	// Keyword marks an unconditional reserved word.
	Keyword Flag = 1 << iota >> 1
	// ReservedIfStrict marks a word that is only reserved in strict mode
	// (e.g. "implements", "let" outside statement position, "yield"
	// outside a generator).
	ReservedIfStrict
	// Reserved marks a future-reserved word under every mode.
	Reserved
	// UnaryOp marks a token usable as a prefix unary operator.
	UnaryOp
	// BinaryOpPrecedence marks a token that participates in the binary
	// operator precedence table (see internal/token/precedence.go).
	BinaryOpPrecedence
	// ErrorToken marks a token produced to carry a lexer-level error
	// (unterminated string, invalid escape, ...) through to the parser so
	// a single error model reports both lexical and syntactic failures.
	ErrorToken
	// AssignOp marks a token usable as an assignment operator (=, +=, ...).
	AssignOp
	// PropertyNameCandidate marks a contextual keyword usable bare as an
	// object-literal / class member property name (get, set, of, as,
	// from, static, async, target, ...).
	PropertyNameCandidate
)

// Kind enumerates the lexical categories the parser distinguishes.
type Kind int

// Payload carries the token's literal value. Which fields are meaningful
// depends on the Kind, as documented per field below; some kinds use
// more than one (NUMBER: Number and BigInt; STRING: String and Raw).
type Payload struct {
	Ident        int64  // not set by the lexer; the parser interns String itself
	Number       float64
	BigInt       bool   // Number literal carried a trailing 'n' (BigInt) suffix
	String       string // identifier/keyword spelling, or cooked string/template literal value
	Raw          string // raw (unescaped) text of a string literal; a template chunk's raw text is in Token.Literal
	RegexBody    string
	RegexFlags   string
	TemplateTail bool // true on the final quasi of a template literal
	TemplateHead bool // true on a quasi followed by a `${` substitution (TEMPLATE_HEAD, TEMPLATE_MIDDLE)
}

// Token is the tagged record the parser consumes. It is overwritten on
// every lexer advance; callers that need to retain one across an advance
// must copy it (Token is a plain value type for that reason).
type Token struct {
	Kind    Kind
	Flags   Flag
	Start   Position
	End     Position
	Payload Payload
	Literal string // exact source slice, used for error messages and ASI checks
	// PrecededByNewline is true when a line terminator appears between
	// this token and the previous one - required for ASI (spec.md 4.9)
	// and for rejecting a line break between ")" and "=>" (spec.md 4.6).
	PrecededByNewline bool
}

// Is reports whether t carries flag f.
func (t Token) Is(f Flag) bool { return t.Flags&f != 0 }

// Length returns the byte length of the token's source slice.
func (t Token) Length() int { return t.End.Offset - t.Start.Offset }

func (t Token) String() string {
	lit := t.Literal
	const maxShown = 20
	if len(lit) > maxShown {
		return fmt.Sprintf("%s(%q...) at %s", t.Kind, lit[:maxShown], t.Start)
	}
	if lit == "" {
		return fmt.Sprintf("%s at %s", t.Kind, t.Start)
	}
	return fmt.Sprintf("%s(%q) at %s", t.Kind, lit, t.Start)
}
