// Package fncache implements the source-provider function-body cache of
// spec.md 2.4 and 4.8: a mapping from a function's start offset to a
// cached descriptor that lets an outer parse skip re-parsing an inner
// function body it has already seen.
//
// Grounded in the teacher's own cache-shaped concerns are absent (DWScript
// re-parses eagerly), so this package follows the teacher's general
// "registry keyed by a stable identity, owned by its creator for the
// parse's duration" shape used by internal/semantic's TypeRegistry and
// SymbolTable (internal/semantic/pass_context.go) rather than any single
// DWScript file - the cache-lifetime Open Question (spec.md 9) is
// resolved by tying a Cache's lifetime explicitly to one *Provider value
// (see DESIGN.md).
package fncache

import "github.com/scriptvm/esparser/internal/interner"

// Entry is the skip-reparse record of spec.md 3's CacheEntry row.
type Entry struct {
	StartOffset int
	EndOffset   int
	EndLine     int
	EndLineStart int
	EndTokenKind int // token.Kind of the closing token, stored as int to avoid an import cycle
	ParameterCount int
	Strict      bool
	Captured    map[interner.ID]bool
	IsArrowExpressionBody bool
}

// BlockBodyThreshold and ArrowExpressionBodyThreshold mirror spec.md 4.8:
// a block body must exceed 16
// source characters, an arrow-expression body 8, before it is worth the
// memory of a cache entry.
const (
	BlockBodyThreshold          = 16
	ArrowExpressionBodyThreshold = 8
)

// Provider is the cache owned by one source text for the lifetime of
// parses against it (spec.md 9, Open Question "cache scope": lifetime is
// explicit and tied to the Provider; entries are never invalidated within
// a single provider's lifetime - source providers are immutable once
// constructed).
type Provider struct {
	entries map[int]*Entry
}

// NewProvider creates an empty cache for one source text.
func NewProvider() *Provider {
	return &Provider{entries: make(map[int]*Entry)}
}

// Lookup returns the cached entry for a function starting at startOffset,
// if one was recorded by a prior parse against this same Provider.
func (p *Provider) Lookup(startOffset int) (*Entry, bool) {
	e, ok := p.entries[startOffset]
	return e, ok
}

// Record stores e, keyed by its StartOffset, if the body was long enough
// to clear the relevant threshold (spec.md 4.8). Re-recording the same
// offset is a no-op: "re-parse of the same source reuses entries" means
// the first recording wins and is never overwritten (spec.md 4.8, 9).
func (p *Provider) Record(e *Entry) {
	if _, exists := p.entries[e.StartOffset]; exists {
		return
	}
	bodyLen := e.EndOffset - e.StartOffset
	threshold := BlockBodyThreshold
	if e.IsArrowExpressionBody {
		threshold = ArrowExpressionBodyThreshold
	}
	if bodyLen <= threshold {
		return
	}
	p.entries[e.StartOffset] = e
}

// Len reports how many function bodies this provider has cached.
func (p *Provider) Len() int { return len(p.entries) }
