package parser

import (
	"github.com/scriptvm/esparser/internal/ast"
	"github.com/scriptvm/esparser/internal/interner"
	"github.com/scriptvm/esparser/internal/lexer"
	"github.com/scriptvm/esparser/internal/scope"
	"github.com/scriptvm/esparser/internal/token"
)

// parseImportDeclaration parses `import ...;` in its default, namespace,
// and named forms (spec.md 4.10, "Module"), legal only under ModeModule.
func (p *Parser) parseImportDeclaration() ast.Statement {
	start := p.tok.Start
	p.next(lexer.ExprPosition) // consume 'import'

	var def, ns *ast.BindingIdentifier
	var named []ast.ImportSpecifier

	if p.at(token.IDENT) {
		def = p.parseBindingIdentifierAsImport()
		if p.at(token.COMMA) {
			p.next(lexer.ExprPosition)
		}
	}

	if p.at(token.STAR) {
		p.next(lexer.FlagNone)
		if p.at(token.AS) {
			p.next(lexer.FlagNone)
		} else {
			p.errorExpected("import declaration", "as")
		}
		ns = p.parseBindingIdentifierAsImport()
	} else if p.at(token.LBRACE) {
		named = p.parseImportSpecifiers()
	}

	source := p.parseFromClause("import declaration")
	p.consumeSemicolon()
	return p.builder.ImportDeclaration(start, p.tok.Start, def, ns, named, source)
}

// parseBindingIdentifierAsImport declares name as DeclImport in the
// enclosing module scope and returns the concrete BindingIdentifier the
// import forms need (ImportDeclaration's Default/Namespace fields, and
// ImportSpecifier.Local).
func (p *Parser) parseBindingIdentifierAsImport() *ast.BindingIdentifier {
	start := p.tok.Start
	id, sym := p.internCurrent()
	p.next(lexer.FlagNone)
	p.scopes.Declare(id, scope.DeclImport, false)
	bi, _ := p.builder.BindingIdentifier(start, p.tok.Start, id, sym).(*ast.BindingIdentifier)
	return bi
}

// parseImportSpecifiers parses the `{ a, b as c }` named-import clause.
func (p *Parser) parseImportSpecifiers() []ast.ImportSpecifier {
	p.expect(token.LBRACE, lexer.ExprPosition, "named imports")
	var specs []ast.ImportSpecifier
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		imported := p.tok.Literal
		start := p.tok.Start
		id, sym := p.internCurrent()
		p.next(lexer.FlagNone)
		if p.at(token.AS) {
			p.next(lexer.FlagNone)
			localStart := p.tok.Start
			id, sym = p.internCurrent()
			p.next(lexer.FlagNone)
			start = localStart
		}
		p.scopes.Declare(id, scope.DeclImport, false)
		local, _ := p.builder.BindingIdentifier(start, p.tok.Start, id, sym).(*ast.BindingIdentifier)
		specs = append(specs, ast.ImportSpecifier{Imported: imported, Local: local})
		if p.at(token.COMMA) {
			p.next(lexer.ExprPosition)
		} else {
			break
		}
	}
	p.expect(token.RBRACE, lexer.FlagNone, "named imports")
	return specs
}

// parseFromClause parses the trailing `from "module-specifier"` shared by
// import declarations and the named/all re-export forms.
func (p *Parser) parseFromClause(production string) string {
	if !p.at(token.FROM) {
		p.errorExpected(production, "from")
		return ""
	}
	p.next(lexer.ExprPosition)
	if !p.at(token.STRING) {
		p.errorExpected(production, "string literal")
		return ""
	}
	source := p.tok.Payload.String
	p.next(lexer.FlagNone)
	return source
}

// parseExportDeclaration parses `export ...;` in every form spec.md 4.10
// enumerates: `export default`, `export * from "m"`, `export { a, b as c }
// [from "m"]`, and `export <var|let|const|function|class> ...`.
func (p *Parser) parseExportDeclaration() ast.Statement {
	start := p.tok.Start
	p.next(lexer.ExprPosition) // consume 'export'

	decl := &ast.ExportDeclaration{}

	switch {
	case p.at(token.DEFAULT):
		p.next(lexer.ExprPosition)
		decl.Kind = ast.ExportDefault
		if mod := p.scopes.Current(); mod != nil {
			if mod.ExportedDefault {
				p.errorf("export declaration", "a module can only have one default export")
			}
			mod.ExportedDefault = true
			mod.MarkExported(p.interner.WellKnown("default"))
		}
		switch p.tok.Kind {
		case token.FUNCTION:
			decl.Declaration = p.parseFunctionDeclaration(false)
		case token.CLASS:
			decl.Declaration = p.parseClassDeclaration()
		case token.ASYNC:
			decl.Declaration = p.parseAsyncDeclarationOrExpressionStatement()
		default:
			decl.DefaultExpr = p.parseAssignmentExpression(true)
			p.consumeSemicolon()
		}

	case p.at(token.STAR):
		p.next(lexer.FlagNone)
		if p.at(token.AS) {
			// `export * as ns from "m"` re-exports under a namespace name;
			// tracked as a single named specifier since downstream
			// consumers only need the exported binding name.
			p.next(lexer.FlagNone)
			exported := p.tok.Literal
			p.next(lexer.FlagNone)
			decl.Kind = ast.ExportNamedFrom
			decl.Specifiers = []ast.ExportSpecifier{{Local: "*", Exported: exported}}
			decl.Source = p.parseFromClause("export declaration")
		} else {
			decl.Kind = ast.ExportAll
			decl.Source = p.parseFromClause("export declaration")
		}
		p.consumeSemicolon()

	case p.at(token.LBRACE):
		specs := p.parseExportSpecifiers()
		if p.at(token.FROM) {
			decl.Kind = ast.ExportNamedFrom
			decl.Source = p.parseFromClause("export declaration")
		} else {
			decl.Kind = ast.ExportNamedLocal
			mod := p.scopes.Current()
			for _, s := range specs {
				id := p.interner.Intern(s.Local)
				p.scopes.MarkUse(id)
				if mod != nil {
					if !mod.HasVar(id) && !mod.HasLexical(id) {
						p.errorf("export declaration", "export '"+s.Local+"' does not resolve to a declared binding")
					}
					mod.MarkExported(p.interner.Intern(s.Exported))
				}
			}
		}
		decl.Specifiers = specs
		p.consumeSemicolon()

	case p.at(token.VAR), p.at(token.LET), p.at(token.CONST):
		decl.Kind = ast.ExportLocalDeclaration
		decl.Declaration = p.parseVariableStatement()
		p.markExportedDeclaration(decl.Declaration)

	case p.at(token.FUNCTION):
		decl.Kind = ast.ExportLocalDeclaration
		decl.Declaration = p.parseFunctionDeclaration(false)
		p.markExportedDeclaration(decl.Declaration)

	case p.at(token.CLASS):
		decl.Kind = ast.ExportLocalDeclaration
		decl.Declaration = p.parseClassDeclaration()
		p.markExportedDeclaration(decl.Declaration)

	case p.at(token.ASYNC):
		decl.Kind = ast.ExportLocalDeclaration
		decl.Declaration = p.parseAsyncDeclarationOrExpressionStatement()
		p.markExportedDeclaration(decl.Declaration)

	default:
		p.errorf("export declaration", "unexpected token "+p.tok.String())
	}

	return p.builder.ExportDeclaration(start, p.tok.Start, decl)
}

// parseExportSpecifiers parses the `{ a, b as c }` named-export clause.
func (p *Parser) parseExportSpecifiers() []ast.ExportSpecifier {
	p.expect(token.LBRACE, lexer.ExprPosition, "named exports")
	var specs []ast.ExportSpecifier
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		local := p.tok.Literal
		p.next(lexer.FlagNone)
		exported := local
		if p.at(token.AS) {
			p.next(lexer.FlagNone)
			exported = p.tok.Literal
			p.next(lexer.FlagNone)
		}
		specs = append(specs, ast.ExportSpecifier{Local: local, Exported: exported})
		if p.at(token.COMMA) {
			p.next(lexer.ExprPosition)
		} else {
			break
		}
	}
	p.expect(token.RBRACE, lexer.FlagNone, "named exports")
	return specs
}

// markExportedDeclaration records every binding name decl introduces as
// exported in the enclosing module scope (spec.md 4.10, "Module":
// "exports validate every named export resolves to a declared binding").
func (p *Parser) markExportedDeclaration(decl ast.Statement) {
	mod := p.scopes.Current()
	if mod == nil {
		return
	}
	switch d := decl.(type) {
	case *ast.VariableDeclaration:
		for _, declr := range d.Declarators {
			collectPatternNames(declr.Target, mod.MarkExported)
		}
	case *ast.FunctionDeclaration:
		if d.Info.Name != interner.NilID {
			mod.MarkExported(d.Info.Name)
		}
	case *ast.ClassDeclaration:
		if d.Info.Name != interner.NilID {
			mod.MarkExported(d.Info.Name)
		}
	}
}

// collectPatternNames walks pat, invoking visit for every binding name it
// introduces - an identifier, or every leaf of an array/object
// destructuring pattern.
func collectPatternNames(pat ast.Pattern, visit func(interner.ID)) {
	switch n := pat.(type) {
	case *ast.BindingIdentifier:
		visit(n.Name)
	case *ast.ArrayPattern:
		for _, el := range n.Elements {
			if el != nil {
				collectPatternNames(el, visit)
			}
		}
	case *ast.ObjectPattern:
		for _, prop := range n.Properties {
			collectPatternNames(prop.Value, visit)
		}
		if n.Rest != nil {
			visit(n.Rest.Name)
		}
	case *ast.AssignmentPattern:
		collectPatternNames(n.Target, visit)
	case *ast.RestElement:
		collectPatternNames(n.Argument, visit)
	}
}
