package scope

import "github.com/scriptvm/esparser/internal/interner"

// Stack is the parser's scope stack (spec.md 3, "Scope" row; invariant:
// "Every pushScope is paired with exactly one popScope on every exit
// path"). It starts and ends empty for a single parse (spec.md 5,
// "Resources and mutation").
type Stack struct {
	frames []*Scope
}

// New returns an empty scope stack.
func New() *Stack { return &Stack{} }

// Push opens a new scope with the strictness the caller passes; parser
// call sites pass the enclosing scope's InStrictScope() (or true for a
// module or class body), and directive-prologue handling flips it later
// via SetStrict (spec.md 4.3).
func (st *Stack) Push(kind Kind, strict bool) *Scope {
	s := newScope(kind, strict)
	st.frames = append(st.frames, s)
	return s
}

// popMode selects whether Pop propagates the closing scope's unresolved
// uses to the parent. A "throwaway" scope (spec.md 4.1: speculative
// parses must not let bindings declared during a rewound attempt leak
// into the parent) is simply one its caller pops with PopDiscard instead
// of Pop.
type popMode int

const (
	propagate popMode = iota
	discard
)

// Current returns the innermost scope, or nil if the stack is empty.
func (st *Stack) Current() *Scope {
	if len(st.frames) == 0 {
		return nil
	}
	return st.frames[len(st.frames)-1]
}

// Depth reports how many scopes are currently open.
func (st *Stack) Depth() int { return len(st.frames) }

// Pop closes the innermost scope, merging its unresolved uses into the
// parent as closed-variable candidates (spec.md 4.2). It does not compute
// Captured; callers call Captured before Pop while the scope is current.
func (st *Stack) Pop() *Scope {
	return st.pop(propagate)
}

// PopDiscard closes the innermost scope without propagating anything to
// the parent - the throwaway-scope path for speculative parses that are
// about to be rewound (spec.md 4.1).
func (st *Stack) PopDiscard() *Scope {
	return st.pop(discard)
}

func (st *Stack) pop(mode popMode) *Scope {
	n := len(st.frames)
	popped := st.frames[n-1]
	st.frames = st.frames[:n-1]

	if mode == discard {
		return popped
	}

	parent := st.Current()
	if parent == nil {
		return popped
	}

	// Names used in the child but not declared there become candidates
	// for resolution (or further propagation) in the parent.
	for name := range popped.used {
		if popped.vars[name] || popped.lexicals[name] || popped.parameters[name] {
			continue
		}
		parent.used[name] = true
		parent.closed[name] = true
	}
	for name := range popped.closed {
		parent.closed[name] = true
	}

	// If the child function scope captured something the parent function
	// declares, the parent needs a full activation record rather than a
	// flattened local frame (spec.md 3, Scope.flags).
	if popped.Kind == KindFunction {
		for name := range popped.closed {
			if parent.vars[name] || parent.lexicals[name] || parent.parameters[name] {
				parent.NeedsActivation = true
			}
		}
	} else {
		// A non-function (block/catch/switch/with) scope's activation
		// need propagates directly: its captures are the enclosing
		// function's captures too.
		if popped.NeedsActivation {
			parent.NeedsActivation = true
		}
	}

	return popped
}

// Captured returns the names s uses itself without declaring them, plus
// s's closed-variable candidates from popped descendants, that resolve to
// a declaration in some enclosing scope still on the stack at the time s
// is popped - i.e. the set spec.md's GLOSSARY calls "Captured variable".
// Call this immediately before Pop() while s is still current.
func (st *Stack) Captured(s *Scope) map[interner.ID]bool {
	captured := make(map[interner.ID]bool, len(s.closed))
	for name := range s.used {
		if s.vars[name] || s.lexicals[name] || s.parameters[name] {
			continue
		}
		if st.resolvesAbove(s, name) {
			captured[name] = true
		}
	}
	for name := range s.closed {
		if st.resolvesAbove(s, name) {
			captured[name] = true
		}
	}
	return captured
}

func (st *Stack) resolvesAbove(below *Scope, name interner.ID) bool {
	seenBelow := false
	for i := len(st.frames) - 1; i >= 0; i-- {
		f := st.frames[i]
		if !seenBelow {
			if f == below {
				seenBelow = true
			}
			continue
		}
		if f.vars[name] || f.lexicals[name] || f.parameters[name] {
			return true
		}
	}
	return false
}

// MarkUse records that name was referenced in the current scope. If it is
// not declared locally, it remains a "used name" that Pop will propagate.
func (st *Stack) MarkUse(name interner.ID) {
	cur := st.Current()
	if cur == nil {
		return
	}
	cur.used[name] = true
}

// NearestNonArrowFunction walks outward from the current scope to the
// nearest enclosing scope that is a function and not an arrow function,
// per spec.md 4.9 ("For arrow functions, super semantics delegate to the
// closest enclosing non-arrow non-lexical scope"). It walks the stack
// rather than following parent pointers.
func (st *Stack) NearestNonArrowFunction(isArrow func(*Scope) bool) *Scope {
	for i := len(st.frames) - 1; i >= 0; i-- {
		f := st.frames[i]
		if f.Kind == KindFunction && !isArrow(f) {
			return f
		}
	}
	return nil
}

// AnyEnclosingFunction reports whether any scope on the stack is a
// function scope, used by `new.target` validation (spec.md 4.9).
func (st *Stack) AnyEnclosingFunction() bool {
	for _, f := range st.frames {
		if f.Kind == KindFunction {
			return true
		}
	}
	return false
}

// MarkSuperBindingNeeded flags every scope between the current scope and
// target (exclusive; block scopes as well as arrow scopes) as needing a
// captured `super` binding,
// mirroring the NeedsActivation propagation in pop(): an arrow function
// that uses `super` forces its enclosing non-arrow function to keep a
// `super` reference alive for the arrow's closure to capture.
func (st *Stack) MarkSuperBindingNeeded(target *Scope) {
	for i := len(st.frames) - 1; i >= 0; i-- {
		f := st.frames[i]
		if f == target {
			return
		}
		f.NeedsSuperBinding = true
	}
}

// InStrictScope reports whether the innermost scope (and therefore,
// monotonically, every scope beneath it - spec.md 3 invariant) is strict.
func (st *Stack) InStrictScope() bool {
	if cur := st.Current(); cur != nil {
		return cur.Strict
	}
	return false
}

// SetStrict flips the current scope to strict mode. Per spec.md 3's
// monotonicity invariant, callers never clear this flag once set.
func (st *Stack) SetStrict() {
	if cur := st.Current(); cur != nil {
		cur.Strict = true
	}
}

// Frames exposes the stack's scopes outermost-to-innermost, read-only,
// for label/loop lookups that need more than the innermost frame.
func (st *Stack) Frames() []*Scope { return st.frames }
