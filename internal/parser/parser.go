// Package parser turns a barscript token stream into an AST (pkg/ast)
// using an immutable cursor supporting Mark/ResetTo for backtracking,
// collapsed to a plain index into a pre-tokenized slice since the lexer
// already drains its stream eagerly via Lexer.Tokenize.
package parser

import (
	"strconv"
	"strings"

	"github.com/barscript/barscript/pkg/ast"
	"github.com/barscript/barscript/pkg/token"
)

// Parser is a recursive-descent, precedence-climbing parser with a
// snapshot/restore speculative-try combinator.
type Parser struct {
	tokens []token.Token
	pos    int
	errs   []*Error
}

// New creates a Parser over a complete token stream (EOF-terminated).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns the parse errors accumulated so far.
func (p *Parser) Errors() []*Error { return p.errs }

func (p *Parser) addError(kind Kind, pos token.Position, format string, args ...interface{}) {
	p.errs = append(p.errs, newError(kind, pos, format, args...))
}

// --- cursor primitives ---

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) at(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) match(t token.Type) bool {
	if p.at(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(t token.Type) (token.Token, bool) {
	if p.at(t) {
		return p.advance(), true
	}
	p.addError(ExpectedToken, p.cur().Pos, "expected %s, got %s %q", t, p.cur().Type, p.cur().Literal)
	return token.Token{}, false
}

// mark/reset implement the speculative-try pattern: a cheap integer
// snapshot of cursor position, restored in constant time on failure.
type mark int

func (p *Parser) markPos() mark      { return mark(p.pos) }
func (p *Parser) resetTo(m mark)     { p.pos = int(m) }

// try runs fn speculatively; if fn returns false, the cursor (and any
// errors fn appended) are rolled back and try reports failure.
func (p *Parser) try(fn func() bool) bool {
	m := p.markPos()
	savedErrs := len(p.errs)
	if fn() {
		return true
	}
	p.resetTo(m)
	p.errs = p.errs[:savedErrs]
	return false
}

// skipContinuation skips NEWLINE/INDENT/DEDENT tokens in positions where
// the grammar allows an expression to continue onto following lines:
// after a binary operator, ',', '(', '?', ':' (ternary), and '=>'.
func (p *Parser) skipContinuation() {
	for p.at(token.NEWLINE) || p.at(token.INDENT) || p.at(token.DEDENT) {
		p.advance()
	}
}

func (p *Parser) skipNewlines() {
	for p.at(token.NEWLINE) {
		p.advance()
	}
}

// Parse parses the token stream into a Program, returning accumulated
// parse errors (if any). A Script façade treats the first error as fatal.
func (p *Parser) Parse() (*ast.Program, []*Error) {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.at(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
		if len(p.errs) > 0 && stmt == nil {
			// Avoid infinite loop on unrecoverable error.
			p.advance()
		}
	}
	return prog, p.errs
}

// --- expression precedence chain ---
// ternary/if-expr (loosest) -> or -> and -> equality -> relational ->
// additive -> multiplicative -> unary -> postfix -> primary (tightest).

func (p *Parser) parseExpression() ast.Expression {
	switch p.cur().Type {
	case token.IF:
		return p.parseIfExpression()
	case token.SWITCH:
		return p.parseSwitchExpression()
	default:
		return p.parseTernary()
	}
}

func (p *Parser) parseTernary() ast.Expression {
	cond := p.parseOr()
	if !p.at(token.QUESTION) {
		return cond
	}
	tok := p.advance()
	p.skipContinuation()
	then := p.parseExpression()
	p.skipContinuation()
	if _, ok := p.expect(token.COLON); !ok {
		return cond
	}
	p.skipContinuation()
	elseExpr := p.parseExpression()
	return &ast.TernaryExpression{Token: tok, Condition: cond, Then: then, Else: elseExpr}
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.at(token.OR) {
		tok := p.advance()
		p.skipContinuation()
		right := p.parseAnd()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: "or", Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.at(token.AND) {
		tok := p.advance()
		p.skipContinuation()
		right := p.parseEquality()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: "and", Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for p.at(token.EQ) || p.at(token.NEQ) {
		tok := p.advance()
		p.skipContinuation()
		right := p.parseRelational()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for p.at(token.LT) || p.at(token.GT) || p.at(token.LE) || p.at(token.GE) {
		tok := p.advance()
		p.skipContinuation()
		right := p.parseAdditive()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		tok := p.advance()
		p.skipContinuation()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		tok := p.advance()
		p.skipContinuation()
		right := p.parseUnary()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.at(token.MINUS) || p.at(token.NOT) {
		tok := p.advance()
		operand := p.parseUnary()
		op := tok.Literal
		if tok.Type == token.NOT {
			op = "not"
		}
		return &ast.UnaryExpression{Token: tok, Operator: op, Right: operand}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.at(token.LPAREN):
			expr = p.parseCall(expr)
		case p.at(token.LBRACK):
			tok := p.advance()
			p.skipContinuation()
			idx := p.parseExpression()
			p.skipContinuation()
			p.expect(token.RBRACK)
			expr = &ast.IndexExpression{Token: tok, Base: expr, Index: idx}
		case p.at(token.DOT):
			tok := p.advance()
			if !p.at(token.IDENT) && !p.at(token.INT) && !p.at(token.FLOAT) {
				p.addError(ExpectedIdentifierAfterDot, p.cur().Pos, "expected identifier after '.', got %s", p.cur().Type)
				return expr
			}
			name := p.advance()
			expr = &ast.MemberExpression{Token: tok, Object: expr, Name: name.Literal}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	tok := p.advance() // '('
	p.skipContinuation()
	var args []ast.Argument
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		args = append(args, p.parseArgument())
		p.skipContinuation()
		if p.at(token.COMMA) {
			p.advance()
			p.skipContinuation()
			continue
		}
		break
	}
	p.skipContinuation()
	p.expect(token.RPAREN)
	if !isValidCallTarget(callee) {
		p.addError(InvalidCallTarget, tok.Pos, "invalid call target %T", callee)
	}
	return &ast.CallExpression{Token: tok, Callee: callee, Args: args}
}

func isValidCallTarget(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		return true
	default:
		return false
	}
}

func (p *Parser) parseArgument() ast.Argument {
	if p.at(token.IDENT) && p.peek(1).Type == token.ASSIGN {
		name := p.advance().Literal
		p.advance() // '='
		p.skipContinuation()
		return ast.Argument{Name: name, Value: p.parseExpression()}
	}
	return ast.Argument{Value: p.parseExpression()}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			v = 0
		}
		return &ast.NumberLiteral{Token: tok, Value: v}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.BOOL:
		p.advance()
		return &ast.BoolLiteral{Token: tok, Value: tok.Literal == "true"}
	case token.HEXCOLOR:
		p.advance()
		return &ast.ColorLiteral{Token: tok, Value: strings.TrimPrefix(tok.Literal, "#")}
	case token.NA:
		p.advance()
		return &ast.NaLiteral{Token: tok}
	case token.IDENT, token.INT, token.FLOAT:
		return p.parseIdentifierOrFunctionLiteral()
	case token.LPAREN:
		return p.parseParenOrFunctionLiteral()
	case token.LBRACK:
		return p.parseArrayLiteral()
	case token.IF:
		return p.parseIfExpression()
	case token.SWITCH:
		return p.parseSwitchExpression()
	default:
		p.addError(UnexpectedToken, tok.Pos, "unexpected token %s %q", tok.Type, tok.Literal)
		p.advance()
		return &ast.NaLiteral{Token: tok}
	}
}

// parseIdentifierOrFunctionLiteral disambiguates a bare identifier from a
// single-parameter function literal `name => body`, via lookahead
// (one-identifier function literals never need backtracking: the arrow is
// visible at Peek(1)).
func (p *Parser) parseIdentifierOrFunctionLiteral() ast.Expression {
	tok := p.advance()
	id := &ast.Identifier{Token: tok, Value: tok.Literal}
	if p.at(token.ARROW) {
		arrow := p.advance()
		body := p.parseFunctionBody()
		return &ast.FunctionLiteral{Token: arrow, Parameters: []*ast.Identifier{id}, Body: body}
	}
	return id
}

// parseParenOrFunctionLiteral disambiguates `(a, b) => body` from a
// parenthesised expression, using the try-combinator: attempt to parse a
// parameter list followed by '=>'; restore on failure and fall back to a
// grouped expression.
func (p *Parser) parseParenOrFunctionLiteral() ast.Expression {
	var fn *ast.FunctionLiteral
	ok := p.try(func() bool {
		tok := p.advance() // '('
		var params []*ast.Identifier
		p.skipContinuation()
		for !p.at(token.RPAREN) {
			if !p.at(token.IDENT) {
				return false
			}
			nameTok := p.advance()
			params = append(params, &ast.Identifier{Token: nameTok, Value: nameTok.Literal})
			p.skipContinuation()
			if p.at(token.COMMA) {
				p.advance()
				p.skipContinuation()
				continue
			}
			break
		}
		if !p.match(token.RPAREN) || !p.at(token.ARROW) {
			return false
		}
		arrow := p.advance()
		body := p.parseFunctionBody()
		fn = &ast.FunctionLiteral{Token: tok, Parameters: params, Body: body}
		_ = arrow
		return true
	})
	if ok {
		return fn
	}
	tok := p.advance() // '('
	p.skipContinuation()
	expr := p.parseExpression()
	p.skipContinuation()
	p.expect(token.RPAREN)
	_ = tok
	return expr
}

func (p *Parser) parseFunctionBody() []ast.Statement {
	if p.at(token.NEWLINE) {
		return p.parseBlock()
	}
	stmt := p.parseStatement()
	if stmt == nil {
		return nil
	}
	return []ast.Statement{stmt}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.advance() // '['
	p.skipContinuation()
	var elems []ast.Expression
	for !p.at(token.RBRACK) && !p.at(token.EOF) {
		elems = append(elems, p.parseExpression())
		p.skipContinuation()
		if p.at(token.COMMA) {
			p.advance()
			p.skipContinuation()
			continue
		}
		break
	}
	p.skipContinuation()
	p.expect(token.RBRACK)
	return &ast.ArrayLiteral{Token: tok, Elements: elems}
}

func (p *Parser) parseIfExpression() ast.Expression {
	tok := p.advance() // 'if'
	cond := p.parseTernary()
	p.skipContinuation()
	p.expect(token.ARROW)
	p.skipContinuation()
	then := p.parseExpression()

	ifExpr := &ast.IfExpression{Token: tok, Condition: cond, Then: then}
	for p.peekIsElseIf() {
		p.advance() // 'else'
		p.advance() // 'if'
		c := p.parseTernary()
		p.skipContinuation()
		p.expect(token.ARROW)
		p.skipContinuation()
		t := p.parseExpression()
		ifExpr.ElseIfs = append(ifExpr.ElseIfs, ast.ElseIfClause{Condition: c, Then: t})
	}
	if p.isBareElse() {
		p.advance() // 'else'
		p.skipContinuation()
		ifExpr.Else = p.parseExpression()
	}
	return ifExpr
}

// peekIsElseIf distinguishes `else if` from a bare `else` using one token
// of lookahead past 'else'.
func (p *Parser) peekIsElseIf() bool {
	return p.at(token.ELSE) && p.peek(1).Type == token.IF
}

func (p *Parser) isBareElse() bool {
	return p.at(token.ELSE) && p.peek(1).Type != token.IF
}

func (p *Parser) parseSwitchExpression() ast.Expression {
	tok := p.advance() // 'switch'
	scrutinee := p.parseTernary()
	p.skipNewlines()
	sw := &ast.SwitchExpression{Token: tok, Scrutinee: scrutinee}
	hasIndent := p.match(token.INDENT)
	for {
		p.skipNewlines()
		if p.at(token.DEDENT) || p.at(token.EOF) {
			break
		}
		if p.at(token.ARROW) {
			p.advance()
			p.skipContinuation()
			result := p.parseExpression()
			sw.Cases = append(sw.Cases, ast.SwitchCase{Result: result})
		} else {
			pattern := p.parseTernary()
			p.skipContinuation()
			p.expect(token.ARROW)
			p.skipContinuation()
			result := p.parseExpression()
			sw.Cases = append(sw.Cases, ast.SwitchCase{Pattern: pattern, Result: result})
		}
		if !hasIndent {
			break
		}
	}
	if hasIndent {
		p.match(token.DEDENT)
	}
	return sw
}
