package scope

import "github.com/scriptvm/esparser/internal/interner"

// Declare attempts to bind name in the current scope under kind, per the
// shadowing rules of spec.md 3 (Invariants) and 4.2:
//
//   - a let/const declaration never shadows another lexical binding in
//     the same scope;
//   - a var never shadows a lexical binding in the same or any enclosing
//     scope up to the nearest function boundary;
//   - duplicate var is otherwise allowed (hoisting semantics - var
//     re-declaration is not an error on its own).
//
// The caller combines the returned bits with its own context (is this a
// destructuring-parameter list with defaults? a catch parameter?) to
// decide which bits are fatal, per spec.md 4.2: "The caller decides which
// bits are fatal."
func (st *Stack) Declare(name interner.ID, kind DeclKind, isStrictReserved bool) DeclResult {
	cur := st.Current()
	if cur == nil {
		return Valid
	}

	var result DeclResult
	if isStrictReserved && cur.Strict {
		result |= InvalidStrictMode
	}

	switch kind {
	case DeclLet, DeclConst, DeclClass, DeclImport:
		if cur.lexicals[name] || cur.vars[name] {
			result |= InvalidDuplicateDeclaration
		}
		cur.lexicals[name] = true

	case DeclVar, DeclFunction:
		if cur.lexicals[name] {
			result |= InvalidDuplicateDeclaration
		}
		if st.lexicalShadowAboveToFunctionBoundary(name) {
			result |= InvalidDuplicateDeclaration
		}
		cur.vars[name] = true
		st.hoistVarToFunctionBoundary(name)

	case DeclParameter:
		if cur.parameters[name] {
			result |= InvalidDuplicateDeclaration
		}
		cur.parameters[name] = true

	case DeclCatchParameter:
		if cur.lexicals[name] {
			result |= InvalidDuplicateDeclaration
		}
		cur.lexicals[name] = true
	}

	return result
}

// lexicalShadowAboveToFunctionBoundary reports whether name is lexically
// declared in the current scope or any enclosing block/catch/switch/with
// scope up to and including the nearest enclosing function/module/program
// scope - the span a `var` declaration is hoisted through.
func (st *Stack) lexicalShadowAboveToFunctionBoundary(name interner.ID) bool {
	for i := len(st.frames) - 1; i >= 0; i-- {
		f := st.frames[i]
		if f.lexicals[name] {
			return true
		}
		if f.Kind == KindFunction || f.Kind == KindModule || f.Kind == KindProgram {
			break
		}
	}
	return false
}

// hoistVarToFunctionBoundary records name as a var-binding in every block
// scope up to and including the nearest enclosing function/module scope,
// matching `var`'s function-scoped (not block-scoped) binding behavior.
func (st *Stack) hoistVarToFunctionBoundary(name interner.ID) {
	for i := len(st.frames) - 1; i >= 0; i-- {
		f := st.frames[i]
		f.vars[name] = true
		if f.Kind == KindFunction || f.Kind == KindModule || f.Kind == KindProgram {
			break
		}
	}
}

// DeclareLabel registers a statement label in the current scope (spec.md
// 4.9, "Labels"). Returns false if the label already exists in this
// scope, mirroring JS's "label already declared" early error.
func (st *Stack) DeclareLabel(name string, isLoop bool) bool {
	cur := st.Current()
	if cur == nil {
		return true
	}
	if _, exists := cur.Labels[name]; exists {
		return false
	}
	cur.Labels[name] = Label{IsLoop: isLoop}
	return true
}

// ResolveLabel searches the scope stack (innermost first) for name,
// needed by `break`/`continue LABEL` validation (spec.md 4.9).
func (st *Stack) ResolveLabel(name string) (Label, bool) {
	for i := len(st.frames) - 1; i >= 0; i-- {
		if l, ok := st.frames[i].Labels[name]; ok {
			return l, true
		}
	}
	return Label{}, false
}
