package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/barscript/barscript/internal/lexer"
	"github.com/barscript/barscript/internal/parser"
	"github.com/barscript/barscript/pkg/ast"
)

var astEval string

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Dump a script's parsed AST as JSON",
	Long: `Lex and parse a barscript file (or inline expression) and print the
resulting Program as pretty-printed JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: dumpAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().StringVarP(&astEval, "eval", "e", "", "dump the AST of inline code instead of reading from file")
}

func dumpAST(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(astEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	tokens, lexErr := l.Tokenize()
	if lexErr != nil {
		return fmt.Errorf("lexing %s: %w", displayName(filename), lexErr)
	}

	p := parser.New(tokens)
	program, parseErrs := p.Parse()
	if len(parseErrs) > 0 {
		for _, pe := range parseErrs {
			fmt.Fprintln(os.Stderr, pe)
		}
		return fmt.Errorf("parsing %s failed", displayName(filename))
	}

	doc, err := json.Marshal(programToJSON(program))
	if err != nil {
		return err
	}
	os.Stdout.Write(pretty.Pretty(doc))
	return nil
}

// programToJSON renders a Program into a generic JSON tree: every node
// gets a "node" type tag plus its semantically relevant fields. This
// mirrors the node variants of pkg/ast without needing a bespoke
// marshaler per type — the AST dumper is a CLI collaborator, not core
// evaluator surface, so a structural-but-generic encoding is enough.
func programToJSON(p *ast.Program) map[string]any {
	stmts := make([]any, len(p.Statements))
	for i, s := range p.Statements {
		stmts[i] = nodeToJSON(s)
	}
	return map[string]any{"node": "Program", "statements": stmts}
}

func nodeToJSON(n ast.Node) map[string]any {
	if n == nil {
		return nil
	}
	pos := n.Pos()
	base := map[string]any{"line": pos.Line, "column": pos.Column}

	switch v := n.(type) {
	case *ast.Identifier:
		base["node"] = "Identifier"
		base["value"] = v.Value
	case *ast.NumberLiteral:
		base["node"] = "NumberLiteral"
		base["value"] = v.Value
	case *ast.StringLiteral:
		base["node"] = "StringLiteral"
		base["value"] = v.Value
	case *ast.BoolLiteral:
		base["node"] = "BoolLiteral"
		base["value"] = v.Value
	case *ast.NaLiteral:
		base["node"] = "NaLiteral"
	case *ast.ColorLiteral:
		base["node"] = "ColorLiteral"
		base["value"] = v.Value
	case *ast.ArrayLiteral:
		base["node"] = "ArrayLiteral"
		base["elements"] = nodeList(exprsToNodes(v.Elements))
	case *ast.BinaryExpression:
		base["node"] = "BinaryExpression"
		base["operator"] = v.Operator
		base["left"] = nodeToJSON(v.Left)
		base["right"] = nodeToJSON(v.Right)
	case *ast.UnaryExpression:
		base["node"] = "UnaryExpression"
		base["operator"] = v.Operator
		base["right"] = nodeToJSON(v.Right)
	case *ast.CallExpression:
		base["node"] = "CallExpression"
		base["callee"] = nodeToJSON(v.Callee)
		args := make([]any, len(v.Args))
		for i, a := range v.Args {
			args[i] = map[string]any{"name": a.Name, "value": nodeToJSON(a.Value)}
		}
		base["args"] = args
	case *ast.IndexExpression:
		base["node"] = "IndexExpression"
		base["base"] = nodeToJSON(v.Base)
		base["index"] = nodeToJSON(v.Index)
	case *ast.MemberExpression:
		base["node"] = "MemberExpression"
		base["object"] = nodeToJSON(v.Object)
		base["name"] = v.Name
	case *ast.TernaryExpression:
		base["node"] = "TernaryExpression"
		base["condition"] = nodeToJSON(v.Condition)
		base["then"] = nodeToJSON(v.Then)
		base["else"] = nodeToJSON(v.Else)
	case *ast.IfExpression:
		base["node"] = "IfExpression"
		base["condition"] = nodeToJSON(v.Condition)
		base["then"] = nodeToJSON(v.Then)
		elseIfs := make([]any, len(v.ElseIfs))
		for i, ei := range v.ElseIfs {
			elseIfs[i] = map[string]any{"condition": nodeToJSON(ei.Condition), "then": nodeToJSON(ei.Then)}
		}
		base["elseIfs"] = elseIfs
		base["else"] = nodeToJSON(v.Else)
	case *ast.FunctionLiteral:
		base["node"] = "FunctionLiteral"
		base["parameters"] = identNames(v.Parameters)
		base["body"] = nodeList(stmtsToNodes(v.Body))
	case *ast.SwitchExpression:
		base["node"] = "SwitchExpression"
		base["scrutinee"] = nodeToJSON(v.Scrutinee)
		cases := make([]any, len(v.Cases))
		for i, c := range v.Cases {
			cases[i] = map[string]any{"pattern": nodeToJSON(c.Pattern), "result": nodeToJSON(c.Result)}
		}
		base["cases"] = cases
	case *ast.VarDecl:
		base["node"] = "VarDecl"
		base["name"] = v.Name
		base["type"] = v.Type
		base["persistent"] = v.Persistent
		base["init"] = nodeToJSON(v.Init)
	case *ast.Assignment:
		base["node"] = "Assignment"
		base["target"] = nodeToJSON(v.Target)
		base["value"] = nodeToJSON(v.Value)
	case *ast.TupleAssignment:
		base["node"] = "TupleAssignment"
		base["names"] = v.Names
		base["value"] = nodeToJSON(v.Value)
	case *ast.ExpressionStatement:
		base["node"] = "ExpressionStatement"
		base["expression"] = nodeToJSON(v.Expression)
	case *ast.IfStatement:
		base["node"] = "IfStatement"
		base["condition"] = nodeToJSON(v.Condition)
		base["then"] = nodeList(stmtsToNodes(v.Then))
		elseIfs := make([]any, len(v.ElseIfs))
		for i, ei := range v.ElseIfs {
			elseIfs[i] = map[string]any{"condition": nodeToJSON(ei.Condition), "body": nodeList(stmtsToNodes(ei.Body))}
		}
		base["elseIfs"] = elseIfs
		base["else"] = nodeList(stmtsToNodes(v.Else))
	case *ast.ForRangeStatement:
		base["node"] = "ForRangeStatement"
		base["var"] = v.Var
		base["lo"] = nodeToJSON(v.Lo)
		base["hi"] = nodeToJSON(v.Hi)
		base["body"] = nodeList(stmtsToNodes(v.Body))
	case *ast.ForEachStatement:
		base["node"] = "ForEachStatement"
		base["indexVar"] = v.IndexVar
		base["itemVar"] = v.ItemVar
		base["collection"] = nodeToJSON(v.Collection)
		base["body"] = nodeList(stmtsToNodes(v.Body))
	case *ast.WhileStatement:
		base["node"] = "WhileStatement"
		base["condition"] = nodeToJSON(v.Condition)
		base["body"] = nodeList(stmtsToNodes(v.Body))
	case *ast.BreakStatement:
		base["node"] = "BreakStatement"
	case *ast.ContinueStatement:
		base["node"] = "ContinueStatement"
	case *ast.TypeDecl:
		base["node"] = "TypeDecl"
		base["name"] = v.Name
		fields := make([]any, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = map[string]any{"name": f.Name, "type": f.Type, "default": nodeToJSON(f.Default)}
		}
		base["fields"] = fields
	case *ast.EnumDecl:
		base["node"] = "EnumDecl"
		base["name"] = v.Name
		fields := make([]any, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = map[string]any{"name": f.Name, "title": f.Title}
		}
		base["fields"] = fields
	case *ast.MethodDecl:
		base["node"] = "MethodDecl"
		base["name"] = v.Name
		base["parameters"] = identNames(v.Parameters)
		base["body"] = nodeList(stmtsToNodes(v.Body))
	case *ast.FunctionDecl:
		base["node"] = "FunctionDecl"
		base["name"] = v.Name
		base["parameters"] = identNames(v.Parameters)
		base["body"] = nodeList(stmtsToNodes(v.Body))
	default:
		base["node"] = fmt.Sprintf("%T", n)
		base["repr"] = n.String()
	}
	return base
}

func exprsToNodes(es []ast.Expression) []ast.Node {
	out := make([]ast.Node, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

func stmtsToNodes(ss []ast.Statement) []ast.Node {
	out := make([]ast.Node, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func nodeList(ns []ast.Node) []any {
	out := make([]any, len(ns))
	for i, n := range ns {
		out[i] = nodeToJSON(n)
	}
	return out
}

func identNames(idents []*ast.Identifier) []string {
	out := make([]string, len(idents))
	for i, id := range idents {
		out[i] = id.Value
	}
	return out
}
