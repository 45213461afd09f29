package ast

import (
	"bytes"
	"strings"

	"github.com/barscript/barscript/pkg/token"
)

// BinaryExpression is `left op right` for the arithmetic/comparison/logical
// operator set.
type BinaryExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() token.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// UnaryExpression is `-x` or `not x`.
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() token.Position  { return u.Token.Pos }
func (u *UnaryExpression) String() string {
	sep := ""
	if len(u.Operator) > 0 && u.Operator[0] >= 'a' && u.Operator[0] <= 'z' {
		sep = " "
	}
	return "(" + u.Operator + sep + u.Right.String() + ")"
}

// Argument is one evaluated call argument, positional or named-by-identifier.
type Argument struct {
	Name  string // empty when positional
	Value Expression
}

func (a Argument) String() string {
	if a.Name == "" {
		return a.Value.String()
	}
	return a.Name + "=" + a.Value.String()
}

// CallExpression is `callee(arg, ..., name=arg, ...)`.
type CallExpression struct {
	Token    token.Token // '('
	Callee   Expression
	Args     []Argument
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() token.Position  { return c.Token.Pos }
func (c *CallExpression) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// IndexExpression is `base[index]` — array element access, or historical
// lookback when base evaluates to a Series.
type IndexExpression struct {
	Token token.Token // '['
	Base  Expression
	Index Expression
}

func (x *IndexExpression) expressionNode()      {}
func (x *IndexExpression) TokenLiteral() string { return x.Token.Literal }
func (x *IndexExpression) Pos() token.Position  { return x.Token.Pos }
func (x *IndexExpression) String() string {
	return x.Base.String() + "[" + x.Index.String() + "]"
}

// MemberExpression is `object.identifier`.
type MemberExpression struct {
	Token  token.Token // '.'
	Object Expression
	Name   string
}

func (m *MemberExpression) expressionNode()      {}
func (m *MemberExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MemberExpression) Pos() token.Position  { return m.Token.Pos }
func (m *MemberExpression) String() string {
	return m.Object.String() + "." + m.Name
}

// TernaryExpression is `cond ? then : else`.
type TernaryExpression struct {
	Token     token.Token // '?'
	Condition Expression
	Then      Expression
	Else      Expression
}

func (t *TernaryExpression) expressionNode()      {}
func (t *TernaryExpression) TokenLiteral() string { return t.Token.Literal }
func (t *TernaryExpression) Pos() token.Position  { return t.Token.Pos }
func (t *TernaryExpression) String() string {
	return "(" + t.Condition.String() + " ? " + t.Then.String() + " : " + t.Else.String() + ")"
}

// ElseIfClause is one `else if cond => expr` arm of an if-expression.
type ElseIfClause struct {
	Condition Expression
	Then      Expression
}

// IfExpression is the expression-position `if`: every arm is a single
// expression.
type IfExpression struct {
	Token     token.Token // 'if'
	Condition Expression
	Then      Expression
	ElseIfs   []ElseIfClause
	Else      Expression // nil if absent (yields Na when untaken)
}

func (e *IfExpression) expressionNode()      {}
func (e *IfExpression) TokenLiteral() string { return e.Token.Literal }
func (e *IfExpression) Pos() token.Position  { return e.Token.Pos }
func (e *IfExpression) String() string {
	var out bytes.Buffer
	out.WriteString("if " + e.Condition.String() + " => " + e.Then.String())
	for _, ei := range e.ElseIfs {
		out.WriteString(" else if " + ei.Condition.String() + " => " + ei.Then.String())
	}
	if e.Else != nil {
		out.WriteString(" else " + e.Else.String())
	}
	return out.String()
}

// FunctionLiteral is an anonymous function value: `(params) => body`.
type FunctionLiteral struct {
	Token      token.Token // '=>' or the opening paren
	Parameters []*Identifier
	Body       []Statement
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionLiteral) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionLiteral) String() string {
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		parts[i] = p.Value
	}
	return "(" + strings.Join(parts, ", ") + ") => {...}"
}

// SwitchCase is one `pattern => result` arm; Pattern is nil for the default
// (bare `=> result`) arm.
type SwitchCase struct {
	Pattern Expression
	Result  Expression
}

// SwitchExpression tests Scrutinee against each case's Pattern top to
// bottom using `==` equality, yielding Na if nothing matches and there is
// no default.
type SwitchExpression struct {
	Token     token.Token // 'switch'
	Scrutinee Expression
	Cases     []SwitchCase
}

func (s *SwitchExpression) expressionNode()      {}
func (s *SwitchExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SwitchExpression) Pos() token.Position  { return s.Token.Pos }
func (s *SwitchExpression) String() string {
	var out bytes.Buffer
	out.WriteString("switch " + s.Scrutinee.String())
	for _, c := range s.Cases {
		if c.Pattern == nil {
			out.WriteString(" => " + c.Result.String())
		} else {
			out.WriteString(" " + c.Pattern.String() + " => " + c.Result.String())
		}
	}
	return out.String()
}
