// Package perror implements the error model of spec.md 7: syntax,
// semantic, and stack-overflow errors, each reduced to a single
// first-failure message with a source position at the external boundary
// (spec.md 6, "Error output"), while keeping the richer structured form
// internally available for tooling.
//
// Grounded directly in the teacher's internal/parser/error.go
// (flat ParserError: message, code, position, length) and
// internal/parser/structured_error.go (StructuredParserError: kind,
// expected/actual, block context, suggestions) - the same two-tier design,
// generalized from DWScript's block-context model to a simpler
// production-name context appropriate for the ECMAScript grammar.
package perror

import (
	"fmt"
	"strings"

	"github.com/scriptvm/esparser/internal/token"
)

// Kind categorizes an error per spec.md 7.
type Kind int

const (
	KindSyntax Kind = iota
	KindSemantic
	KindStackOverflow
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindSemantic:
		return "semantic"
	case KindStackOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// Error code constants for programmatic handling, mirroring the teacher's
// ErrUnexpectedToken-style constants (internal/parser/error.go) but over
// ECMAScript productions.
const (
	CodeUnexpectedToken        = "E_UNEXPECTED_TOKEN"
	CodeUnterminatedConstruct  = "E_UNTERMINATED"
	CodeMalformedEscape        = "E_MALFORMED_ESCAPE"
	CodeMalformedRegExp        = "E_MALFORMED_REGEXP"
	CodeDuplicateBinding       = "E_DUPLICATE_BINDING"
	CodeMissingInitializer     = "E_CONST_WITHOUT_INITIALIZER"
	CodeReturnOutsideFunction  = "E_RETURN_OUTSIDE_FUNCTION"
	CodeContinueNotLoop        = "E_CONTINUE_TARGET_NOT_LOOP"
	CodeWithInStrictMode       = "E_WITH_IN_STRICT_MODE"
	CodeSuperOutsideContext    = "E_SUPER_OUTSIDE_CONTEXT"
	CodeDuplicateProto         = "E_DUPLICATE_PROTO"
	CodeDuplicateDefaultExport = "E_DUPLICATE_DEFAULT_EXPORT"
	CodeStrictModeName         = "E_STRICT_MODE_RESERVED_NAME"
	CodeStackExhausted         = "E_STACK_EXHAUSTED"
	CodeUnresolvedExport       = "E_UNRESOLVED_EXPORT"
	CodeRestNotLast            = "E_REST_NOT_LAST"
)

// Error is the structured parse error. ToMessage renders the single
// first-failure string spec.md 6 says is the external boundary's only
// diagnostic output.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Pos     token.Position
	Length  int

	Expected   []string
	Actual     string
	Production string // e.g. "arrow function parameters", "class body"
	Notes      []string
}

func (e *Error) Error() string { return e.ToMessage() }

// ToMessage renders the message spec.md's external interface promises:
// a single string plus the implicit latest-token position.
func (e *Error) ToMessage() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if b.Len() == 0 {
		b.WriteString(e.autoMessage())
	}
	fmt.Fprintf(&b, " at %d:%d", e.Pos.Line, e.Pos.Column)
	if e.Production != "" {
		fmt.Fprintf(&b, " (while parsing %s)", e.Production)
	}
	return b.String()
}

func (e *Error) autoMessage() string {
	switch {
	case len(e.Expected) == 1:
		return fmt.Sprintf("expected %s, got %s", e.Expected[0], e.Actual)
	case len(e.Expected) > 1:
		return fmt.Sprintf("expected one of %s, got %s", strings.Join(e.Expected, ", "), e.Actual)
	default:
		return "syntax error"
	}
}

// New builds a syntax error at pos naming msg, the common case (token
// mismatch).
func New(pos token.Position, length int, msg, code string) *Error {
	return &Error{Kind: KindSyntax, Code: code, Message: msg, Pos: pos, Length: length}
}

// NewSemantic builds a semantic error: well-formed syntax that violates a
// rule such as duplicate binding or const-without-initializer.
func NewSemantic(pos token.Position, length int, msg, code string) *Error {
	return &Error{Kind: KindSemantic, Code: code, Message: msg, Pos: pos, Length: length}
}

// StackOverflow builds the one StackOverflow-kind error the recursion
// guard (spec.md 5) ever produces.
func StackOverflow(pos token.Position) *Error {
	return &Error{
		Kind: KindStackOverflow, Code: CodeStackExhausted,
		Message: "Stack exhausted", Pos: pos,
	}
}
