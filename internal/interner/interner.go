// Package interner implements the per-parse arena and identifier interner
// described by spec.md 2.2: an opaque handle table the parser allocates
// AST text into and compares identifiers against by handle equality
// rather than string equality.
//
// Grounded in the teacher's pkg/ident generic map (case-insensitive,
// keyed by normalized spelling) but over case-sensitive ECMAScript
// identifiers: spellings are NFC-normalized with golang.org/x/text before
// interning, so two source files spelling the same identifier with
// different combining-character sequences still intern to the same
// handle (see DESIGN.md, Open Question: identifier interning
// consistency).
package interner

import (
	"golang.org/x/text/unicode/norm"
)

// ID is an opaque interned-identifier handle. The zero value never
// denotes a real identifier; NilID is returned for lookups that miss.
type ID int32

// NilID is the sentinel handle for "no identifier" (e.g. an anonymous
// function's Name field).
const NilID ID = 0

// Interner is a per-parse arena: it owns every interned string's backing
// memory for the duration of one parse and is discarded as a whole when
// the parser hands its result to the consumer (spec.md "Ownership").
type Interner struct {
	byString map[string]ID
	byID     []string // index 0 is unused so NilID stays distinguishable
}

// New creates an empty interner seeded with the well-known names a parser
// needs up front (spec.md 6, "Interner contract consumed").
func New() *Interner {
	in := &Interner{
		byString: make(map[string]ID, 64),
		byID:     make([]string, 1, 64),
	}
	for _, name := range wellKnownNames {
		in.Intern(name)
	}
	return in
}

// Intern normalizes s to NFC and returns its handle, allocating a new one
// on first sight.
func (in *Interner) Intern(s string) ID {
	s = norm.NFC.String(s)
	if id, ok := in.byString[s]; ok {
		return id
	}
	id := ID(len(in.byID))
	in.byID = append(in.byID, s)
	in.byString[s] = id
	return id
}

// String returns the spelling behind id, or "" for NilID or an unknown id.
func (in *Interner) String(id ID) string {
	if id <= NilID || int(id) >= len(in.byID) {
		return ""
	}
	return in.byID[id]
}

// Lookup returns the handle for s without allocating, and false if s was
// never interned.
func (in *Interner) Lookup(s string) (ID, bool) {
	id, ok := in.byString[norm.NFC.String(s)]
	return id, ok
}

// Len reports how many distinct identifiers have been interned, including
// the well-known seed set.
func (in *Interner) Len() int { return len(in.byID) - 1 }

// Well-known handles, resolved once at construction so hot parser paths
// (directive-prologue detection, super/new.target resolution, generator
// parameter synthesis) compare IDs instead of re-interning strings
// (spec.md 6, "Interner contract consumed").
var wellKnownNames = []string{
	"use strict", "arguments", "eval", "get", "set", "of", "as", "from",
	"target", "prototype", "constructor", "static", "default", "",
	"__proto__",
	"@generator", "@generatorState", "@generatorValue", "@generatorResumeMode",
	"@starDefault",
}

// WellKnown resolves one of the names above to its handle. Panics if name
// was not part of the seed set, since that indicates a programming error
// in the parser rather than a user-facing condition.
func (in *Interner) WellKnown(name string) ID {
	id, ok := in.Lookup(name)
	if !ok {
		panic("interner: " + name + " is not a seeded well-known name")
	}
	return id
}
