package parser

import (
	"github.com/barscript/barscript/pkg/ast"
	"github.com/barscript/barscript/pkg/token"
)

// parseBlock parses a NEWLINE INDENT stmt* DEDENT block, or (when no INDENT
// follows) a single-line body of exactly one statement
func (p *Parser) parseBlock() []ast.Statement {
	p.skipNewlines()
	if !p.match(token.INDENT) {
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		return []ast.Statement{stmt}
	}
	var stmts []ast.Statement
	for {
		p.skipNewlines()
		if p.at(token.DEDENT) || p.at(token.EOF) || p.at(token.ELSE) {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else if p.at(token.EOF) {
			break
		} else {
			p.advance()
		}
	}
	p.match(token.DEDENT)
	return stmts
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.VAR, token.VARIP:
		return p.parseVarDecl()
	case token.TYPE:
		return p.parseTypeDecl()
	case token.ENUM:
		return p.parseEnumDecl()
	case token.METHOD:
		return p.parseMethodDecl()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.BREAK:
		tok := p.advance()
		return &ast.BreakStatement{Token: tok}
	case token.CONTINUE:
		tok := p.advance()
		return &ast.ContinueStatement{Token: tok}
	case token.LBRACK:
		if stmt := p.tryTupleAssignment(); stmt != nil {
			return stmt
		}
		return p.parseExpressionOrAssignmentStatement()
	case token.INT, token.FLOAT:
		if stmt := p.tryTypedDecl(); stmt != nil {
			return stmt
		}
		return p.parseExpressionOrAssignmentStatement()
	case token.IDENT:
		return p.parseIdentLedStatement()
	default:
		return p.parseExpressionOrAssignmentStatement()
	}
}

// parseVarDecl parses `var name [type] [= init]` / `varip ...`.
func (p *Parser) parseVarDecl() ast.Statement {
	tok := p.advance() // 'var' or 'varip'
	persistent := tok.Type == token.VARIP
	if !p.at(token.IDENT) {
		p.addError(ExpectedVariableName, p.cur().Pos, "expected variable name after %s", tok.Literal)
		return nil
	}
	name := p.advance().Literal
	typ := p.tryParseTypeAnnotation()
	var init ast.Expression
	if p.match(token.ASSIGN) {
		p.skipContinuation()
		init = p.parseExpression()
	}
	return &ast.VarDecl{Token: tok, Name: name, Type: typ, Init: init, Persistent: persistent}
}

// tryParseTypeAnnotation recognises an optional type name (identifier,
// `int`, or `float`) possibly followed by `[]`, stopping before `=`.
func (p *Parser) tryParseTypeAnnotation() string {
	if !p.at(token.IDENT) && !p.at(token.INT) && !p.at(token.FLOAT) {
		return ""
	}
	if p.peek(1).Type != token.ASSIGN && p.peek(1).Type != token.LBRACK && p.peek(1).Type != token.NEWLINE && p.peek(1).Type != token.EOF {
		return ""
	}
	typ := p.advance().Literal
	if p.at(token.LBRACK) && p.peek(1).Type == token.RBRACK {
		p.advance()
		p.advance()
		typ += "[]"
	}
	return typ
}

// tryTypedDecl handles rule 5: a leading type name (int/float/identifier),
// optionally `[]`, followed by an identifier ⇒ typed declaration without
// `var`. Uses the try-combinator since the same prefix also begins an
// ordinary expression statement (e.g. `int(x)`).
func (p *Parser) tryTypedDecl() ast.Statement {
	var decl *ast.VarDecl
	ok := p.try(func() bool {
		typTok := p.advance()
		typ := typTok.Literal
		if p.at(token.LBRACK) && p.peek(1).Type == token.RBRACK {
			p.advance()
			p.advance()
			typ += "[]"
		}
		if !p.at(token.IDENT) {
			return false
		}
		name := p.advance().Literal
		var init ast.Expression
		if p.match(token.ASSIGN) {
			p.skipContinuation()
			init = p.parseExpression()
		}
		decl = &ast.VarDecl{Token: typTok, Name: name, Type: typ, Init: init}
		return true
	})
	if ok {
		return decl
	}
	return nil
}

// parseIdentLedStatement disambiguates, in order: typed declaration without
// `var` (identifier-as-typename), `name(params) => body` user function,
// `name = expr` implicit declaration, `name := expr` reassignment,
// `name op= expr` compound reassignment, member/index assignment, or a
// plain expression statement.
func (p *Parser) parseIdentLedStatement() ast.Statement {
	if stmt := p.tryTypedDecl(); stmt != nil {
		return stmt
	}
	if stmt := p.tryFunctionDecl(); stmt != nil {
		return stmt
	}
	if p.peek(1).Type == token.ASSIGN {
		tok := p.advance()
		p.advance() // '='
		p.skipContinuation()
		init := p.parseExpression()
		return &ast.VarDecl{Token: tok, Name: tok.Literal, Init: init}
	}
	if p.peek(1).Type == token.DEFINE {
		tok := p.advance()
		defTok := p.advance() // ':='
		p.skipContinuation()
		value := p.parseExpression()
		return &ast.Assignment{Token: defTok, Target: &ast.Identifier{Token: tok, Value: tok.Literal}, Value: value}
	}
	if op, isCompound := compoundOp(p.peek(1).Type); isCompound && p.peek(2).Type == token.ASSIGN {
		tok := p.advance()
		opTok := p.advance()
		p.advance() // '='
		p.skipContinuation()
		rhs := p.parseExpression()
		id := &ast.Identifier{Token: tok, Value: tok.Literal}
		expanded := &ast.BinaryExpression{Token: opTok, Left: id, Operator: op, Right: rhs}
		return &ast.Assignment{Token: opTok, Target: id, Value: expanded}
	}
	return p.parseExpressionOrAssignmentStatement()
}

func compoundOp(t token.Type) (string, bool) {
	switch t {
	case token.PLUS:
		return "+", true
	case token.MINUS:
		return "-", true
	case token.STAR:
		return "*", true
	case token.SLASH:
		return "/", true
	case token.PERCENT:
		return "%", true
	}
	return "", false
}

// tryFunctionDecl recognises `identifier(params) => body`.
func (p *Parser) tryFunctionDecl() ast.Statement {
	var decl *ast.FunctionDecl
	ok := p.try(func() bool {
		nameTok := p.advance()
		if !p.match(token.LPAREN) {
			return false
		}
		var params []*ast.Identifier
		p.skipContinuation()
		for !p.at(token.RPAREN) {
			if !p.at(token.IDENT) {
				p.addError(ExpectedParameterName, p.cur().Pos, "expected parameter name, got %s", p.cur().Type)
				return false
			}
			pt := p.advance()
			params = append(params, &ast.Identifier{Token: pt, Value: pt.Literal})
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
		p.advance() // '=>'
		body := p.parseFunctionBody()
		decl = &ast.FunctionDecl{Token: nameTok, Name: nameTok.Literal, Parameters: params, Body: body}
		return true
	})
	if ok {
		return decl
	}
	return nil
}

// tryTupleAssignment disambiguates `[a, b] = expr` (tuple destructuring)
// from `[a, b]` parsed as an array-literal expression statement.
func (p *Parser) tryTupleAssignment() ast.Statement {
	var stmt *ast.TupleAssignment
	ok := p.try(func() bool {
		tok := p.advance() // '['
		var names []string
		p.skipContinuation()
		for !p.at(token.RBRACK) {
			if !p.at(token.IDENT) {
				return false
			}
			names = append(names, p.advance().Literal)
			p.skipContinuation()
			if p.at(token.COMMA) {
				p.advance()
				p.skipContinuation()
				continue
			}
			break
		}
		if !p.match(token.RBRACK) || !p.at(token.ASSIGN) {
			return false
		}
		p.advance() // '='
		p.skipContinuation()
		value := p.parseExpression()
		stmt = &ast.TupleAssignment{Token: tok, Names: names, Value: value}
		return true
	})
	if ok {
		return stmt
	}
	return nil
}

// parseExpressionOrAssignmentStatement parses a leading expression; if it
// is followed by `:=`, rewrites to a mutating assignment on the expression
// (supports `obj.field := ...` / `arr[i] := ...`).
func (p *Parser) parseExpressionOrAssignmentStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression()
	if p.at(token.DEFINE) {
		defTok := p.advance()
		p.skipContinuation()
		value := p.parseExpression()
		return &ast.Assignment{Token: defTok, Target: expr, Value: value}
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

// --- control flow ---

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.advance() // 'if'
	cond := p.parseTernary()
	then := p.parseBlock()
	stmt := &ast.IfStatement{Token: tok, Condition: cond, Then: then}
	for p.peekIsElseIf() {
		p.advance() // 'else'
		p.advance() // 'if'
		c := p.parseTernary()
		body := p.parseBlock()
		stmt.ElseIfs = append(stmt.ElseIfs, ast.ElseIfBranch{Condition: c, Body: body})
	}
	if p.isBareElse() {
		p.advance() // 'else'
		stmt.Else = p.parseBlock()
	}
	return stmt
}

// parseForStatement disambiguates `for v = lo to hi`, `for v in coll`, and
// `for [i, v] in coll` via a short lookahead.
func (p *Parser) parseForStatement() ast.Statement {
	tok := p.advance() // 'for'
	if p.at(token.LBRACK) {
		p.advance()
		idxTok, _ := p.expect(token.IDENT)
		p.expect(token.COMMA)
		itemTok, _ := p.expect(token.IDENT)
		p.expect(token.RBRACK)
		p.expect(token.IN)
		coll := p.parseTernary()
		body := p.parseBlock()
		return &ast.ForEachStatement{Token: tok, IndexVar: idxTok.Literal, ItemVar: itemTok.Literal, Collection: coll, Body: body}
	}
	nameTok, _ := p.expect(token.IDENT)
	if p.match(token.ASSIGN) {
		lo := p.parseTernary()
		p.expect(token.TO)
		hi := p.parseTernary()
		body := p.parseBlock()
		return &ast.ForRangeStatement{Token: tok, Var: nameTok.Literal, Lo: lo, Hi: hi, Body: body}
	}
	p.expect(token.IN)
	coll := p.parseTernary()
	body := p.parseBlock()
	return &ast.ForEachStatement{Token: tok, ItemVar: nameTok.Literal, Collection: coll, Body: body}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.advance() // 'while'
	cond := p.parseTernary()
	body := p.parseBlock()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

// --- type / enum / method declarations ---

func (p *Parser) parseTypeDecl() ast.Statement {
	tok := p.advance() // 'type'
	nameTok, _ := p.expect(token.IDENT)
	decl := &ast.TypeDecl{Token: tok, Name: nameTok.Literal}
	p.skipNewlines()
	if !p.match(token.INDENT) {
		return decl
	}
	for {
		p.skipNewlines()
		if p.at(token.DEDENT) || p.at(token.EOF) {
			break
		}
		var typTok token.Token
		if p.at(token.INT) || p.at(token.FLOAT) || p.at(token.IDENT) {
			typTok = p.advance()
		} else {
			break
		}
		fieldTyp := typTok.Literal
		if p.at(token.LBRACK) && p.peek(1).Type == token.RBRACK {
			p.advance()
			p.advance()
			fieldTyp += "[]"
		}
		fieldNameTok, ok := p.expect(token.IDENT)
		if !ok {
			break
		}
		field := ast.TypeField{Name: fieldNameTok.Literal, Type: fieldTyp}
		if p.match(token.ASSIGN) {
			field.Default = p.parseExpression()
		}
		decl.Fields = append(decl.Fields, field)
	}
	p.match(token.DEDENT)
	return decl
}

func (p *Parser) parseEnumDecl() ast.Statement {
	tok := p.advance() // 'enum'
	nameTok, _ := p.expect(token.IDENT)
	decl := &ast.EnumDecl{Token: tok, Name: nameTok.Literal}
	p.skipNewlines()
	if !p.match(token.INDENT) {
		return decl
	}
	for {
		p.skipNewlines()
		if p.at(token.DEDENT) || p.at(token.EOF) {
			break
		}
		fieldNameTok, ok := p.expect(token.IDENT)
		if !ok {
			break
		}
		field := ast.EnumField{Name: fieldNameTok.Literal}
		if p.match(token.ASSIGN) {
			titleTok, _ := p.expect(token.STRING)
			field.Title = titleTok.Literal
		}
		decl.Fields = append(decl.Fields, field)
	}
	p.match(token.DEDENT)
	return decl
}

func (p *Parser) parseMethodDecl() ast.Statement {
	tok := p.advance() // 'method'
	nameTok, _ := p.expect(token.IDENT)
	p.expect(token.LPAREN)
	var params []*ast.Identifier
	p.skipContinuation()
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		if p.at(token.INT) || p.at(token.FLOAT) || p.at(token.IDENT) {
			// Optional type annotation before the parameter name.
			if (p.peek(1).Type == token.IDENT) {
				p.advance()
			}
		}
		if !p.at(token.IDENT) {
			p.addError(ExpectedParameterName, p.cur().Pos, "expected parameter name, got %s", p.cur().Type)
			break
		}
		pt := p.advance()
		params = append(params, &ast.Identifier{Token: pt, Value: pt.Literal})
		p.skipContinuation()
		if p.at(token.COMMA) {
			p.advance()
			p.skipContinuation()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	p.expect(token.ARROW)
	body := p.parseFunctionBody()
	return &ast.MethodDecl{Token: tok, Name: nameTok.Literal, Parameters: params, Body: body}
}
