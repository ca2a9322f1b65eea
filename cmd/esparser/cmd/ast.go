package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	esast "github.com/scriptvm/esparser/internal/ast"
	"github.com/scriptvm/esparser/internal/interner"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var astQuery string

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Parse source and dump the AST as JSON",
	Long: `Parse source and print the AST as JSON. With --query, run a gjson
path expression over that JSON instead of printing the whole tree (e.g.
esparser ast --query 'body.#.type' prog.js).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().StringVar(&astQuery, "query", "", "gjson path expression to run over the dumped AST JSON")
}

func runAST(cmd *cobra.Command, args []string) error {
	source, err := readInput(args)
	if err != nil {
		return err
	}
	opts, err := loadProfile(cmd)
	if err != nil {
		return err
	}

	node, p, _ := runParse(source, opts)
	if first := p.FirstError(); first != nil {
		return fmt.Errorf("parsing failed: %s", first.ToMessage())
	}

	dumper := &astDumper{interner: p.Interner()}
	doc := dumper.dumpNode(node)
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if astQuery != "" {
		result := gjson.GetBytes(out, astQuery)
		fmt.Println(result.String())
		return nil
	}

	os.Stdout.Write(out)
	fmt.Println()
	return nil
}

// astDumper converts AST nodes into JSON-able maps, deep enough to make
// gjson queries like "body.#.type" or "body.0.declarations.0.target.name"
// useful over common statement/expression shapes. Nodes without a
// dedicated case fall back to {"type", "text"} built from String() -
// sufficient for leaf/rare forms a query would address by type alone.
// interner resolves function/class declaration name handles back to text
// (SPEC_FULL.md's parser hands back handles, not strings, by design).
type astDumper struct {
	interner *interner.Interner
}

func (d *astDumper) name(id interner.ID) string {
	if id == interner.NilID {
		return ""
	}
	return d.interner.String(id)
}

func (d *astDumper) dumpNode(n any) map[string]any {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *esast.Program:
		return map[string]any{"type": "Program", "module": v.Module, "body": d.dumpStatements(v.Body)}
	case *esast.BlockStatement:
		return map[string]any{"type": "BlockStatement", "body": d.dumpStatements(v.Body)}
	case *esast.ExpressionStatement:
		return map[string]any{"type": "ExpressionStatement", "expression": d.dumpNode(v.Expression)}
	case *esast.IfStatement:
		return map[string]any{"type": "IfStatement", "test": d.dumpNode(v.Test), "consequent": d.dumpNode(v.Consequent), "alternate": d.dumpNode(v.Alternate)}
	case *esast.WhileStatement:
		return map[string]any{"type": "WhileStatement", "test": d.dumpNode(v.Test), "body": d.dumpNode(v.Body)}
	case *esast.ReturnStatement:
		return map[string]any{"type": "ReturnStatement", "argument": d.dumpNode(v.Argument)}
	case *esast.VariableDeclaration:
		decls := make([]map[string]any, len(v.Declarators))
		for i, decl := range v.Declarators {
			decls[i] = map[string]any{"target": d.dumpNode(decl.Target), "init": d.dumpNode(decl.Init)}
		}
		return map[string]any{"type": "VariableDeclaration", "kind": v.Kind.String(), "declarations": decls}
	case *esast.FunctionDeclaration:
		return map[string]any{"type": "FunctionDeclaration", "name": d.name(v.Info.Name)}
	case *esast.ClassDeclaration:
		return map[string]any{"type": "ClassDeclaration", "name": d.name(v.Info.Name)}
	case *esast.BindingIdentifier:
		return map[string]any{"type": "BindingIdentifier", "name": v.Symbol}
	case *esast.Identifier:
		return map[string]any{"type": "Identifier", "name": v.Symbol}
	case *esast.NumberLiteral:
		return map[string]any{"type": "NumberLiteral", "value": v.Value}
	case *esast.StringLiteral:
		return map[string]any{"type": "StringLiteral", "value": v.Value}
	case *esast.BooleanLiteral:
		return map[string]any{"type": "BooleanLiteral", "value": v.Value}
	case *esast.BinaryExpression:
		return map[string]any{"type": "BinaryExpression", "operator": v.Operator, "left": d.dumpNode(v.Left), "right": d.dumpNode(v.Right)}
	case *esast.LogicalExpression:
		return map[string]any{"type": "LogicalExpression", "operator": v.Operator, "left": d.dumpNode(v.Left), "right": d.dumpNode(v.Right)}
	case *esast.CallExpression:
		args := make([]map[string]any, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = d.dumpNode(a)
		}
		return map[string]any{"type": "CallExpression", "callee": d.dumpNode(v.Callee), "arguments": args}
	case *esast.MemberExpression:
		return map[string]any{"type": "MemberExpression", "object": d.dumpNode(v.Object), "property": d.dumpNode(v.Property), "computed": v.Computed}
	case *esast.AssignmentExpression:
		return map[string]any{"type": "AssignmentExpression", "operator": v.Operator, "target": d.dumpNode(v.Target), "value": d.dumpNode(v.Value)}
	case esast.Node:
		return map[string]any{"type": fmt.Sprintf("%T", v), "text": v.String()}
	default:
		return map[string]any{"type": fmt.Sprintf("%T", v)}
	}
}

func (d *astDumper) dumpStatements(stmts []esast.Statement) []map[string]any {
	out := make([]map[string]any, len(stmts))
	for i, s := range stmts {
		out[i] = d.dumpNode(s)
	}
	return out
}
