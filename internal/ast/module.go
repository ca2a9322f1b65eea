package ast

func (*ImportDeclaration) stmtNode()       {}
func (*ImportDeclaration) moduleItemNode() {}
func (*ExportDeclaration) stmtNode()       {}
func (*ExportDeclaration) moduleItemNode() {}

// ImportSpecifier is one named-binding entry of an import clause
// (`{ a, b as c }`).
type ImportSpecifier struct {
	Imported string // source-module export name
	Local    *BindingIdentifier
}

// ImportDeclaration is `import ... from "module";`, covering the default,
// namespace (`* as ns`), and named forms (spec.md 4.10, "Module").
type ImportDeclaration struct {
	base
	Default   *BindingIdentifier // nil if no default import
	Namespace *BindingIdentifier // nil unless `import * as ns`
	Named     []ImportSpecifier
	Source    string
}

func (*ImportDeclaration) String() string { return "import ... from \"...\";" }

// ExportKind distinguishes the export forms spec.md 4.10 enumerates.
type ExportKind int

const (
	ExportAll ExportKind = iota
	ExportDefault
	ExportNamedLocal
	ExportNamedFrom
	ExportLocalDeclaration
)

// ExportSpecifier is one named-binding entry of an export clause.
type ExportSpecifier struct {
	Local    string
	Exported string
}

// ExportDeclaration is `export ...;` in any of its forms. At most one of
// Declaration/Specifiers/DefaultExpr is populated, selected by Kind;
// ExportAll populates none of them and carries only Source.
type ExportDeclaration struct {
	base
	Kind        ExportKind
	Declaration Statement   // ExportLocalDeclaration, or ExportDefault of a function/class declaration
	Specifiers  []ExportSpecifier // ExportNamedLocal / ExportNamedFrom
	Source      string      // ExportAll / ExportNamedFrom
	DefaultExpr Expression  // ExportDefault, when not a named declaration
}

func (*ExportDeclaration) String() string { return "export ...;" }
