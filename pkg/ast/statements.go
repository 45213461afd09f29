package ast

import (
	"strings"

	"github.com/barscript/barscript/pkg/token"
)

// VarDecl is `var name [type] [= init]` / `varip ...`. Persistent marks
// varip bindings, which survive across bars without re-evaluating Init.
type VarDecl struct {
	Token       token.Token // 'var' or 'varip', or the identifier for implicit decls
	Name        string
	Type        string // optional type annotation, e.g. "int", "float[]", "label"
	Init        Expression
	Persistent  bool
}

func (v *VarDecl) statementNode()       {}
func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Pos() token.Position  { return v.Token.Pos }
func (v *VarDecl) String() string {
	kw := "var"
	if v.Persistent {
		kw = "varip"
	}
	s := kw + " " + v.Name
	if v.Type != "" {
		s += " " + v.Type
	}
	if v.Init != nil {
		s += " = " + v.Init.String()
	}
	return s
}

// AssignTarget is the LHS of a mutating assignment: a variable, member, or
// index expression.
type AssignTarget = Expression

// Assignment is `target := value`.
type Assignment struct {
	Token  token.Token // ':='
	Target AssignTarget
	Value  Expression
}

func (a *Assignment) statementNode()       {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) Pos() token.Position  { return a.Token.Pos }
func (a *Assignment) String() string {
	return a.Target.String() + " := " + a.Value.String()
}

// TupleAssignment is `[a, b] = expr`: destructure an array-valued
// expression into named bindings, Na-padding trailing names.
type TupleAssignment struct {
	Token token.Token // '['
	Names []string
	Value Expression
}

func (t *TupleAssignment) statementNode()       {}
func (t *TupleAssignment) TokenLiteral() string { return t.Token.Literal }
func (t *TupleAssignment) Pos() token.Position  { return t.Token.Pos }
func (t *TupleAssignment) String() string {
	return "[" + strings.Join(t.Names, ", ") + "] = " + t.Value.String()
}

// ExpressionStatement wraps an expression evaluated for side effect.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() token.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string {
	if e.Expression != nil {
		return e.Expression.String()
	}
	return ""
}

// ElseIfBranch is one `else if cond` statement-block arm.
type ElseIfBranch struct {
	Condition Expression
	Body      []Statement
}

// IfStatement is the statement-position `if`, with an ordered else-if list
// and an optional trailing `else`.
type IfStatement struct {
	Token     token.Token // 'if'
	Condition Expression
	Then      []Statement
	ElseIfs   []ElseIfBranch
	Else      []Statement // nil if absent
}

func (s *IfStatement) statementNode()       {}
func (s *IfStatement) TokenLiteral() string { return s.Token.Literal }
func (s *IfStatement) Pos() token.Position  { return s.Token.Pos }
func (s *IfStatement) String() string       { return "if " + s.Condition.String() + " ..." }

// ForRangeStatement is `for v = lo to hi` (inclusive bounds).
type ForRangeStatement struct {
	Token token.Token // 'for'
	Var   string
	Lo    Expression
	Hi    Expression
	Body  []Statement
}

func (f *ForRangeStatement) statementNode()       {}
func (f *ForRangeStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForRangeStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForRangeStatement) String() string {
	return "for " + f.Var + " = " + f.Lo.String() + " to " + f.Hi.String() + " ..."
}

// ForEachStatement is `for [i, v] in coll` or `for v in coll`. IndexVar is
// empty when the optional index binding is absent.
type ForEachStatement struct {
	Token      token.Token // 'for'
	IndexVar   string
	ItemVar    string
	Collection Expression
	Body       []Statement
}

func (f *ForEachStatement) statementNode()       {}
func (f *ForEachStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForEachStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForEachStatement) String() string {
	return "for " + f.ItemVar + " in " + f.Collection.String() + " ..."
}

// WhileStatement is `while cond`.
type WhileStatement struct {
	Token     token.Token // 'while'
	Condition Expression
	Body      []Statement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string       { return "while " + w.Condition.String() + " ..." }

// BreakStatement exits the innermost loop.
type BreakStatement struct{ Token token.Token }

func (b *BreakStatement) statementNode()       {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BreakStatement) String() string       { return "break" }

// ContinueStatement skips to the next iteration of the innermost loop.
type ContinueStatement struct{ Token token.Token }

func (c *ContinueStatement) statementNode()       {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) Pos() token.Position  { return c.Token.Pos }
func (c *ContinueStatement) String() string       { return "continue" }

// TypeField is one field of a TypeDecl: its declared type name and an
// optional default-value expression.
type TypeField struct {
	Name    string
	Type    string
	Default Expression
}

// TypeDecl declares a record type. Calling the bound Type constructor
// returns an Object initialised from positional/named arguments, filling
// in declared defaults for anything unset.
type TypeDecl struct {
	Token  token.Token // 'type'
	Name   string
	Fields []TypeField
}

func (t *TypeDecl) statementNode()       {}
func (t *TypeDecl) TokenLiteral() string { return t.Token.Literal }
func (t *TypeDecl) Pos() token.Position  { return t.Token.Pos }
func (t *TypeDecl) String() string       { return "type " + t.Name + " ..." }

// EnumField is one variant of an EnumDecl, with an optional display title.
type EnumField struct {
	Name  string
	Title string // optional; empty when absent
}

// EnumDecl declares an enum type; the bound name resolves to an Object
// whose fields are each variant.
type EnumDecl struct {
	Token  token.Token // 'enum'
	Name   string
	Fields []EnumField
}

func (e *EnumDecl) statementNode()       {}
func (e *EnumDecl) TokenLiteral() string { return e.Token.Literal }
func (e *EnumDecl) Pos() token.Position  { return e.Token.Pos }
func (e *EnumDecl) String() string       { return "enum " + e.Name + " ..." }

// MethodDecl declares `method Name(params) => body`, callable either as
// `m(obj, ...)` or, when obj is an Object with no field named m, as
// `obj.m(...)`; m is resolved by name in scope and obj's type is not checked.
type MethodDecl struct {
	Token      token.Token // 'method'
	Name       string
	Parameters []*Identifier
	Body       []Statement
}

func (m *MethodDecl) statementNode()       {}
func (m *MethodDecl) TokenLiteral() string { return m.Token.Literal }
func (m *MethodDecl) Pos() token.Position  { return m.Token.Pos }
func (m *MethodDecl) String() string       { return "method " + m.Name + " ..." }

// FunctionDecl binds a user function to an identifier:
// `identifier(params) => body`.
type FunctionDecl struct {
	Token      token.Token
	Name       string
	Parameters []*Identifier
	Body       []Statement
}

func (f *FunctionDecl) statementNode()       {}
func (f *FunctionDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDecl) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionDecl) String() string       { return f.Name + "(...) => ..." }
