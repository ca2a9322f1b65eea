package ast

import "github.com/scriptvm/esparser/internal/interner"

func (*BindingIdentifier) patternNode() {}
func (*ArrayPattern) patternNode()      {}
func (*ObjectPattern) patternNode()     {}
func (*AssignmentPattern) patternNode() {}
func (*RestElement) patternNode()       {}

// DestructuringKind selects the declaration behavior of a pattern parse
// (spec.md 4.5): everything except ToExpressions declares bindings of the
// named kind; ToExpressions parses an assignment-pattern target instead
// (a member-expression chain, reusing Expression rather than Pattern).
type DestructuringKind int

const (
	ToVariables DestructuringKind = iota
	ToLet
	ToConst
	ToParameters
	ToCatchParameters
	ToExpressions
)

// BindingIdentifier is a pattern that is just a name (spec.md 4.5:
// "A pattern is an array pattern, object pattern, or a single binding
// name").
type BindingIdentifier struct {
	base
	Name interner.ID
	Symbol string
}

func (b *BindingIdentifier) String() string { return b.Symbol }

// ArrayPattern is `[...]` in binding position. Each slot of Elements is
// nil for an elision, a RestElement for the (at most one, trailing) rest
// entry, otherwise an element pattern; an element with a default is an
// *AssignmentPattern.
type ArrayPattern struct {
	base
	Elements []Pattern // nil entries are elisions; last may be *RestElement
	Defaults []Expression // parallel to Elements; the parser leaves every entry nil (defaults live in *AssignmentPattern elements)
}

func (*ArrayPattern) String() string { return "[pattern]" }

// ObjectPatternProperty is one entry of an object pattern.
type ObjectPatternProperty struct {
	Key      Expression // Identifier, StringLiteral, NumberLiteral, or computed expression
	Computed bool
	Value    Pattern
	Default  Expression // nil if no default
	Shorthand bool
}

// ObjectPattern is `{...}` used as a destructuring target. Its rest
// element, if present, is the final ObjectPatternProperty-less entry
// carried separately because an object rest target must itself be a
// simple identifier in declaration/parameter contexts (spec.md 4.5).
type ObjectPattern struct {
	base
	Properties []ObjectPatternProperty
	Rest       *BindingIdentifier // nil if no rest property
}

func (*ObjectPattern) String() string { return "{pattern}" }

// AssignmentPattern is `pattern = default`, used for default parameter
// values and destructuring defaults.
type AssignmentPattern struct {
	base
	Target  Pattern
	Default Expression
}

func (*AssignmentPattern) String() string { return "pattern = default" }

// RestElement is `...pattern`, legal only as the last entry of its list
// (spec.md 3, Invariants: "A rest parameter is the last in its list and
// has no default value").
type RestElement struct {
	base
	Argument Pattern
}

func (*RestElement) String() string { return "...pattern" }
