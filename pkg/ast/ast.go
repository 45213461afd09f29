// Package ast defines the Abstract Syntax Tree node types for barscript: a
// sum-typed Expression/Statement grammar, expression-rich and
// declaration-light, shaped for the off-side charting DSL.
package ast

import (
	"bytes"
	"strings"

	"github.com/barscript/barscript/pkg/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: an ordered sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Identifier is a name reference, used both as an expression (variable read)
// and as the name slot of declarations/parameters.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) Pos() token.Position    { return i.Token.Pos }
func (i *Identifier) String() string         { return i.Value }

// NumberLiteral is a double-precision numeric literal.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NumberLiteral) String() string       { return n.Token.Literal }

// StringLiteral is a quoted string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() token.Position  { return s.Token.Pos }
func (s *StringLiteral) String() string       { return "\"" + s.Value + "\"" }

// BoolLiteral is `true`/`false`.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (b *BoolLiteral) expressionNode()      {}
func (b *BoolLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BoolLiteral) Pos() token.Position  { return b.Token.Pos }
func (b *BoolLiteral) String() string       { return b.Token.Literal }

// NaLiteral is the `na` literal.
type NaLiteral struct {
	Token token.Token
}

func (n *NaLiteral) expressionNode()      {}
func (n *NaLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NaLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NaLiteral) String() string       { return "na" }

// ColorLiteral is a `#RRGGBB` or `#RRGGBBAA` hex-color literal.
type ColorLiteral struct {
	Token token.Token
	Value string // raw hex digits, without '#'
}

func (c *ColorLiteral) expressionNode()      {}
func (c *ColorLiteral) TokenLiteral() string { return c.Token.Literal }
func (c *ColorLiteral) Pos() token.Position  { return c.Token.Pos }
func (c *ColorLiteral) String() string       { return c.Token.Literal }

// ArrayLiteral is `[e1, e2, ...]` evaluated into a fresh array handle.
type ArrayLiteral struct {
	Token    token.Token // '['
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLiteral) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
