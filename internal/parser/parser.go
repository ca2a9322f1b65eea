package parser

import (
	"github.com/scriptvm/esparser/internal/ast"
	"github.com/scriptvm/esparser/internal/fncache"
	"github.com/scriptvm/esparser/internal/interner"
	"github.com/scriptvm/esparser/internal/lexer"
	"github.com/scriptvm/esparser/internal/perror"
	"github.com/scriptvm/esparser/internal/scope"
	"github.com/scriptvm/esparser/internal/token"
)

// maxRecursionDepth bounds expression/statement nesting so a pathological
// or adversarial input fails with a StackOverflow perror.Error instead of
// exhausting the Go call stack (spec.md 5, "Resources and mutation").
const maxRecursionDepth = 2000

// Mode selects the grammar entry point Parse uses (spec.md 6, "parse
// mode"): a Program parses as a classic script, a Module additionally
// accepts import/export declarations and is implicitly strict.
type Mode int

const (
	ModeProgram Mode = iota
	ModeModule
)

// funcParsePhase names which part of a function's grammar the parser is
// currently inside, per spec.md 3's ParserState.functionParsePhase row.
// It is restored to its outer value on exit (parseFormalParameters saves
// and restores it around the parameter list), so nested functions each
// see their own phase.
type funcParsePhase int

const (
	phaseBody funcParsePhase = iota
	phaseParameters
)

// strictReservedWords are identifiers that may be used as binding names
// outside strict mode but are early errors to declare (as a function
// name, parameter, or variable) inside it (spec.md 3, Invariants:
// "InvalidStrictMode bit").
var strictReservedWords = map[string]bool{
	"eval": true, "arguments": true,
	"implements": true, "interface": true, "package": true,
	"private": true, "protected": true, "public": true,
	"let": true, "static": true, "yield": true,
}

// isStrictReservedName reports whether id's spelling is one of the names
// early errors in strict mode, regardless of whether the current scope
// is actually strict - scope.Stack.Declare, which receives this result,
// combines it with the scope's own Strict flag.
func (p *Parser) isStrictReservedName(id interner.ID) bool {
	return strictReservedWords[p.interner.String(id)]
}

// Parser is the recursive-descent parser core of spec.md 2 through 5. It
// is written once against the ast.Builder interface and is driven by
// either ast.FullBuilder or ast.SyntaxOnlyBuilder depending on whether
// the caller needs real structure or only a syntax-validity verdict
// (spec.md 2.5).
type Parser struct {
	cur      *cursor
	builder  ast.Builder
	scopes   *scope.Stack
	interner *interner.Interner
	cache    *fncache.Provider

	mode   Mode
	depth  int
	phase  funcParsePhase
	errors []*perror.Error

	tok  token.Token // current token under inspection
	flag lexer.ScanFlags
}

// New constructs a Parser over source using builder for tree construction
// and cache as the shared function-body provider (spec.md 2.5, 4.8: one
// Provider instance per source Lifetime, reused across any speculative
// re-entry into the same source).
func New(source string, mode Mode, builder ast.Builder, cache *fncache.Provider) *Parser {
	lex := lexer.New(source)
	p := &Parser{
		cur:      newCursor(lex),
		builder:  builder,
		scopes:   scope.New(),
		interner: interner.New(),
		cache:    cache,
		mode:     mode,
	}
	p.tok = p.cur.Current()
	return p
}

// Interner exposes the parser's identifier interner, used by callers that
// need to resolve an ast.Identifier.Name back to a string after parsing.
func (p *Parser) Interner() *interner.Interner { return p.interner }

// Errors returns every error accumulated during the parse. spec.md 6's
// external interface only promises the first; richer callers (the CLI's
// parse command, which reports how many were recorded) want the rest.
func (p *Parser) Errors() []*perror.Error { return p.errors }

// FirstError returns the first recorded error, or nil if the parse
// succeeded, matching spec.md 6's external "first-failure" contract.
func (p *Parser) FirstError() *perror.Error {
	if len(p.errors) == 0 {
		return nil
	}
	return p.errors[0]
}

func (p *Parser) addError(err *perror.Error) {
	p.errors = append(p.errors, err)
}

func (p *Parser) errorf(production, msg string) {
	p.addError(&perror.Error{
		Kind: perror.KindSyntax, Code: perror.CodeUnexpectedToken,
		Message: msg, Pos: p.tok.Start, Length: max1(p.tok.Length()),
		Production: production,
	})
}

func (p *Parser) errorExpected(production string, expected ...string) {
	p.addError(&perror.Error{
		Kind: perror.KindSyntax, Code: perror.CodeUnexpectedToken,
		Pos: p.tok.Start, Length: max1(p.tok.Length()),
		Expected: expected, Actual: p.tok.String(), Production: production,
	})
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// enter bumps the recursion guard, recording a StackOverflow error and
// returning false each time the bound is exceeded (spec.md 5).
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > maxRecursionDepth {
		p.addError(perror.StackOverflow(p.tok.Start))
		return false
	}
	return true
}

func (p *Parser) leave() { p.depth-- }

// next advances the cursor under flags and refreshes p.tok, matching the
// teacher's curToken/peekToken style collapsed onto the cursor
// abstraction (internal/parser/cursor.go).
func (p *Parser) next(flags lexer.ScanFlags) {
	p.flag = flags
	p.tok = p.cur.Advance(flags)
}

// at reports whether the current token is of kind k.
func (p *Parser) at(k token.Kind) bool { return p.tok.Kind == k }

// expect advances past the current token if it is of kind k, recording an
// error and NOT advancing otherwise - the teacher's cursor.Expect pattern
// (internal/parser/cursor.go), adapted to flag-aware scanning.
func (p *Parser) expect(k token.Kind, flags lexer.ScanFlags, production string) bool {
	if !p.at(k) {
		p.errorExpected(production, k.String())
		return false
	}
	p.next(flags)
	return true
}

// internCurrent interns the current token's identifier literal.
func (p *Parser) internCurrent() (interner.ID, string) {
	sym := p.tok.Payload.String
	if sym == "" {
		sym = p.tok.Literal
	}
	return p.interner.Intern(sym), sym
}

// Parse runs the parser's entry production (spec.md 6): source_elements
// for ModeProgram, module_body for ModeModule. It always returns a
// Node - even on a syntax error, the builder's root covers whatever
// prefix parsed cleanly - and the caller checks FirstError()/Errors() for
// the verdict.
func (p *Parser) Parse() ast.Node {
	isModule := p.mode == ModeModule
	kind := scope.KindProgram
	if isModule {
		kind = scope.KindModule
	}
	root := p.scopes.Push(kind, isModule)
	start := p.tok.Start

	body := p.parseStatementList(isModule, token.EOF)

	end := p.tok.Start
	p.scopes.Pop()
	_ = root
	return p.builder.Program(start, end, body, isModule)
}
