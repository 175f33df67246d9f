// Package parser builds an internal/ast tree from an internal/lexer
// token stream via recursive descent with precedence climbing for
// expressions. Like internal/lexer, this is front-end scaffolding
// external to the semantic core (spec.md section 1), kept separate so
// the core packages never import it.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aslc/aslc/internal/ast"
	"github.com/aslc/aslc/internal/lexer"
	"github.com/aslc/aslc/internal/token"
)

// Parser consumes tokens from a Lexer and produces a *ast.Program.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errors []string
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns the syntax errors accumulated during parsing.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf("%s: %s", p.cur.Pos, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(k token.Kind) token.Token {
	tok := p.cur
	if p.cur.Kind != k {
		p.errorf("expected %s, got %s (%q)", k, p.cur.Kind, p.cur.Literal)
	}
	p.next()
	return tok
}

// ParseProgram parses a whole source file into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Kind != token.EOF {
		if p.cur.Kind != token.FUNC {
			p.errorf("expected 'func', got %s", p.cur.Kind)
			p.next()
			continue
		}
		prog.Functions = append(prog.Functions, p.parseFunction())
	}
	return prog
}

func (p *Parser) parseFunction() *ast.Function {
	fn := &ast.Function{FuncPos: p.cur.Pos}
	p.expect(token.FUNC)
	nameTok := p.expect(token.IDENT)
	fn.Name = nameTok.Literal
	fn.NamePos = nameTok.Pos

	p.expect(token.LPAREN)
	if p.cur.Kind != token.RPAREN {
		fn.Parameters = append(fn.Parameters, p.parseParameter())
		for p.cur.Kind == token.COMMA {
			p.next()
			fn.Parameters = append(fn.Parameters, p.parseParameter())
		}
	}
	p.expect(token.RPAREN)

	if p.cur.Kind == token.COLON {
		p.next()
		fn.ReturnType = p.parseType()
	}

	for p.cur.Kind == token.VAR {
		fn.Locals = append(fn.Locals, p.parseVariableDecl())
	}

	for p.cur.Kind != token.ENDFUNC && p.cur.Kind != token.EOF {
		fn.Body = append(fn.Body, p.parseStatement())
	}
	p.expect(token.ENDFUNC)
	return fn
}

func (p *Parser) parseParameter() *ast.Parameter {
	nameTok := p.expect(token.IDENT)
	p.expect(token.COLON)
	data := p.parseData()
	return &ast.Parameter{Name: nameTok.Literal, NamePos: nameTok.Pos, Type: data}
}

func (p *Parser) parseVariableDecl() *ast.VariableDecl {
	decl := &ast.VariableDecl{VarPos: p.cur.Pos}
	p.expect(token.VAR)
	nameTok := p.expect(token.IDENT)
	decl.Names = append(decl.Names, nameTok.Literal)
	decl.NamePos = append(decl.NamePos, nameTok.Pos)
	for p.cur.Kind == token.COMMA {
		p.next()
		nameTok = p.expect(token.IDENT)
		decl.Names = append(decl.Names, nameTok.Literal)
		decl.NamePos = append(decl.NamePos, nameTok.Pos)
	}
	p.expect(token.COLON)
	decl.Type = p.parseData()
	return decl
}

func (p *Parser) parseData() ast.Data {
	if p.cur.Kind == token.ARRAY {
		return p.parseArrayType()
	}
	return p.parseType()
}

func (p *Parser) parseType() *ast.PrimitiveType {
	tok := p.cur
	switch tok.Kind {
	case token.INT, token.FLOAT, token.BOOL, token.CHAR:
		p.next()
		return &ast.PrimitiveType{Kind: tok.Kind, TypePos: tok.Pos}
	default:
		p.errorf("expected a type, got %s", tok.Kind)
		p.next()
		return &ast.PrimitiveType{Kind: token.INT, TypePos: tok.Pos}
	}
}

func (p *Parser) parseArrayType() *ast.ArrayType {
	arrPos := p.cur.Pos
	p.expect(token.ARRAY)
	p.expect(token.LBRACKET)
	sizeTok := p.expect(token.INTVAL)
	p.expect(token.RBRACKET)
	p.expect(token.OF)
	elem := p.parseType()
	size, _ := strconv.ParseUint(sizeTok.Literal, 10, 32)
	return &ast.ArrayType{Size: size, SizeText: sizeTok.Literal, Elem: elem, ArrPos: arrPos}
}

// ---- statements ----

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Kind {
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.READ:
		return p.parseReadStmt()
	case token.WRITE:
		return p.parseWriteStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.IDENT:
		return p.parseIdentLeadStmt()
	default:
		p.errorf("unexpected token starting statement: %s", p.cur.Kind)
		p.next()
		return &ast.AssignStmt{Left: &ast.LeftExpr{Base: &ast.IdentExpr{}}, Value: &ast.IntLit{}}
	}
}

func (p *Parser) parseIdentLeadStmt() ast.Stmt {
	nameTok := p.cur
	p.next()
	if p.cur.Kind == token.LPAREN {
		args := p.parseCallArgs()
		p.expect(token.SEMI)
		return &ast.ProcCallStmt{Name: nameTok.Literal, NamePos: nameTok.Pos, Args: args}
	}

	ident := &ast.IdentExpr{Name: nameTok.Literal, NamePos: nameTok.Pos}
	var left *ast.LeftExpr
	if p.cur.Kind == token.LBRACKET {
		lb := p.cur.Pos
		p.next()
		idx := p.parseExpr()
		p.expect(token.RBRACKET)
		left = &ast.LeftExpr{Base: &ast.ArrayAccessExpr{Ident: ident, Index: idx, LBPos: lb}}
	} else {
		left = &ast.LeftExpr{Base: ident}
	}
	assignAt := p.cur.Pos
	p.expect(token.ASSIGN)
	value := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.AssignStmt{Left: left, AssignAt: assignAt, Value: value}
}

func (p *Parser) parseCallArgs() []ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	if p.cur.Kind != token.RPAREN {
		args = append(args, p.parseExpr())
		for p.cur.Kind == token.COMMA {
			p.next()
			args = append(args, p.parseExpr())
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	ifPos := p.cur.Pos
	p.expect(token.IF)
	cond := p.parseExpr()
	p.expect(token.THEN)
	stmt := &ast.IfStmt{Cond: cond, IfPos: ifPos}
	for p.cur.Kind != token.ELSE && p.cur.Kind != token.ENDIF && p.cur.Kind != token.EOF {
		stmt.Then = append(stmt.Then, p.parseStatement())
	}
	if p.cur.Kind == token.ELSE {
		p.next()
		stmt.HasElse = true
		for p.cur.Kind != token.ENDIF && p.cur.Kind != token.EOF {
			stmt.Else = append(stmt.Else, p.parseStatement())
		}
	}
	p.expect(token.ENDIF)
	return stmt
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	whilePos := p.cur.Pos
	p.expect(token.WHILE)
	cond := p.parseExpr()
	p.expect(token.DO)
	stmt := &ast.WhileStmt{Cond: cond, WhilePos: whilePos}
	for p.cur.Kind != token.ENDWHILE && p.cur.Kind != token.EOF {
		stmt.Body = append(stmt.Body, p.parseStatement())
	}
	p.expect(token.ENDWHILE)
	return stmt
}

func (p *Parser) parseReadStmt() *ast.ReadStmt {
	readPos := p.cur.Pos
	p.expect(token.READ)
	left := p.parseLeftExpr()
	p.expect(token.SEMI)
	return &ast.ReadStmt{Target: left, ReadPos: readPos}
}

func (p *Parser) parseLeftExpr() *ast.LeftExpr {
	nameTok := p.expect(token.IDENT)
	ident := &ast.IdentExpr{Name: nameTok.Literal, NamePos: nameTok.Pos}
	if p.cur.Kind == token.LBRACKET {
		lb := p.cur.Pos
		p.next()
		idx := p.parseExpr()
		p.expect(token.RBRACKET)
		return &ast.LeftExpr{Base: &ast.ArrayAccessExpr{Ident: ident, Index: idx, LBPos: lb}}
	}
	return &ast.LeftExpr{Base: ident}
}

func (p *Parser) parseWriteStmt() ast.Stmt {
	writePos := p.cur.Pos
	p.expect(token.WRITE)
	if p.cur.Kind == token.STRINGVAL {
		text := p.cur.Literal
		p.next()
		p.expect(token.SEMI)
		return &ast.WriteStringStmt{Value: text, WritePos: writePos}
	}
	value := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.WriteExprStmt{Value: value, WritePos: writePos}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	returnPos := p.cur.Pos
	p.expect(token.RETURN)
	if p.cur.Kind == token.SEMI {
		p.next()
		return &ast.ReturnStmt{ReturnPos: returnPos}
	}
	value := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.ReturnStmt{Value: value, HasValue: true, ReturnPos: returnPos}
}

// ---- expressions: precedence climbing ----
//
// Precedence, lowest to highest: or < and < relational < additive <
// multiplicative < unary < primary.

func (p *Parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	x := p.parseAnd()
	for p.cur.Kind == token.OR {
		op := p.cur
		p.next()
		y := p.parseAnd()
		x = &ast.BinaryExpr{Op: op.Kind, OpPos: op.Pos, X: x, Y: y}
	}
	return x
}

func (p *Parser) parseAnd() ast.Expr {
	x := p.parseRelational()
	for p.cur.Kind == token.AND {
		op := p.cur
		p.next()
		y := p.parseRelational()
		x = &ast.BinaryExpr{Op: op.Kind, OpPos: op.Pos, X: x, Y: y}
	}
	return x
}

func isRelOp(k token.Kind) bool {
	switch k {
	case token.EQ, token.NEQ, token.LT, token.LE, token.GT, token.GE:
		return true
	}
	return false
}

func (p *Parser) parseRelational() ast.Expr {
	x := p.parseAdditive()
	for isRelOp(p.cur.Kind) {
		op := p.cur
		p.next()
		y := p.parseAdditive()
		x = &ast.BinaryExpr{Op: op.Kind, OpPos: op.Pos, X: x, Y: y}
	}
	return x
}

func (p *Parser) parseAdditive() ast.Expr {
	x := p.parseMultiplicative()
	for p.cur.Kind == token.PLUS || p.cur.Kind == token.MINUS {
		op := p.cur
		p.next()
		y := p.parseMultiplicative()
		x = &ast.BinaryExpr{Op: op.Kind, OpPos: op.Pos, X: x, Y: y}
	}
	return x
}

func (p *Parser) parseMultiplicative() ast.Expr {
	x := p.parseUnary()
	for p.cur.Kind == token.STAR || p.cur.Kind == token.SLASH || p.cur.Kind == token.PERCENT {
		op := p.cur
		p.next()
		y := p.parseUnary()
		x = &ast.BinaryExpr{Op: op.Kind, OpPos: op.Pos, X: x, Y: y}
	}
	return x
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur.Kind {
	case token.NOT, token.PLUS, token.MINUS:
		op := p.cur
		p.next()
		x := p.parseUnary()
		return &ast.UnaryExpr{Op: op.Kind, OpPos: op.Pos, X: x}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur
	switch tok.Kind {
	case token.LPAREN:
		p.next()
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return &ast.ParenExpr{X: x, LParen: tok.Pos}
	case token.INTVAL:
		p.next()
		return &ast.IntLit{Text: tok.Literal, LitPos: tok.Pos}
	case token.FLOATVAL:
		p.next()
		return &ast.FloatLit{Text: tok.Literal, LitPos: tok.Pos}
	case token.CHARVAL:
		p.next()
		r := rune(0)
		if len(tok.Literal) > 0 {
			r = []rune(tok.Literal)[0]
		}
		return &ast.CharLit{Value: r, LitPos: tok.Pos}
	case token.TRUE:
		p.next()
		return &ast.BoolLit{Value: true, LitPos: tok.Pos}
	case token.FALSE:
		p.next()
		return &ast.BoolLit{Value: false, LitPos: tok.Pos}
	case token.IDENT:
		p.next()
		switch p.cur.Kind {
		case token.LBRACKET:
			lb := p.cur.Pos
			p.next()
			idx := p.parseExpr()
			p.expect(token.RBRACKET)
			return &ast.ArrayAccessExpr{Ident: &ast.IdentExpr{Name: tok.Literal, NamePos: tok.Pos}, Index: idx, LBPos: lb}
		case token.LPAREN:
			args := p.parseCallArgs()
			return &ast.CallExpr{Name: tok.Literal, NamePos: tok.Pos, Args: args}
		default:
			return &ast.IdentExpr{Name: tok.Literal, NamePos: tok.Pos}
		}
	default:
		p.errorf("unexpected token in expression: %s (%q)", tok.Kind, tok.Literal)
		p.next()
		return &ast.IntLit{Text: "0", LitPos: tok.Pos}
	}
}

// ParseErrorsString joins accumulated syntax errors for display.
func (p *Parser) ParseErrorsString() string {
	return strings.Join(p.errors, "\n")
}
