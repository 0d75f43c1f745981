// Package parser implements Mini-C's predictive recursive-descent parser.
//
// Every nonterminal in the grammar has a matching parseX method below;
// there is no Pratt/precedence-table expression parser because the
// grammar's numbered rval2..rval8 ladder is already the precedence table,
// written out as recursive-descent calls.
package parser

import (
	"strconv"

	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/pkg/token"
)

// Parser builds a syntax tree from a lexer's token stream. It stops and
// records the first syntactic error it encounters; Errors() is non-empty
// afterward and the returned tree must not be passed to the analyzer.
type Parser struct {
	c    *cursor
	errs []*Error
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{c: newCursor(l)}
}

// Errors returns the syntactic errors recorded during parsing (at most
// one, per the report-first-error policy).
func (p *Parser) Errors() []*Error { return p.errs }

func (p *Parser) fail(err *Error) {
	if len(p.errs) == 0 {
		p.errs = append(p.errs, err)
	}
}

func (p *Parser) failed() bool { return len(p.errs) > 0 }

func (p *Parser) peek() token.Token  { return p.c.peek(0) }
func (p *Parser) peek2() token.Token { return p.c.peek(1) }
func (p *Parser) advance() token.Token {
	return p.c.next()
}

// expect consumes the next token if it has type tt, else records a
// syntax error and returns the zero Token.
func (p *Parser) expect(tt token.Type, code, what string) token.Token {
	tok := p.peek()
	if tok.Type != tt {
		p.fail(newError(tok.Pos, code, "expected %s, found %s", what, describe(tok)))
		return token.Token{}
	}
	return p.advance()
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of file"
	}
	if tok.Literal != "" {
		return tok.Type.String() + " " + tok.Literal
	}
	return tok.Type.String()
}

// ParseProgram parses a full translation unit: externs followed by
// top-level declarations. Parsing stops at the first syntax error.
func (p *Parser) ParseProgram() *ast.Program {
	startPos := p.peek().Pos
	prog := &ast.Program{StartPos: startPos}

	for !p.failed() && p.peek().Type == token.EXTERN {
		prog.Decls = append(prog.Decls, p.parseExtern())
	}
	for !p.failed() && p.peek().Type != token.EOF {
		prog.Decls = append(prog.Decls, p.parseDecl())
	}
	return prog
}

func (p *Parser) parseExtern() ast.Decl {
	pos := p.advance().Pos // 'extern'
	retType := p.parseTypeSpec()
	name := p.expect(token.IDENT, ErrExpectedIdent, "identifier")
	p.expect(token.LPAREN, ErrMissingLParen, "'('")
	params := p.parseParams()
	p.expect(token.RPAREN, ErrMissingRParen, "')'")
	p.expect(token.SEMI, ErrMissingSemicolon, "';'")
	return &ast.ExternDecl{ReturnType: retType, Name: name.Literal, Params: params, Position: pos}
}

// parseDecl disambiguates a global variable from a function declaration by
// looking at the token after the type keyword and identifier: `var_type
// IDENT ;` is a global, anything else (necessarily `(`) starts a function.
func (p *Parser) parseDecl() ast.Decl {
	pos := p.peek().Pos
	retType := p.parseTypeSpec()
	nameTok := p.expect(token.IDENT, ErrExpectedIdent, "identifier")

	if p.peek().Type == token.SEMI {
		if retType == ast.KindVoid {
			p.fail(newError(pos, ErrExpectedType, "expected int, float, or bool, found void"))
		}
		p.advance()
		return &ast.GlobalVarDecl{Type: retType, Name: nameTok.Literal, Position: pos}
	}

	p.expect(token.LPAREN, ErrMissingLParen, "'(' or ';'")
	params := p.parseParams()
	p.expect(token.RPAREN, ErrMissingRParen, "')'")
	body := p.parseBlock()
	return &ast.FuncDecl{ReturnType: retType, Name: nameTok.Literal, Params: params, Body: body, Position: pos}
}

// parseTypeSpec parses `void | var_type`.
func (p *Parser) parseTypeSpec() ast.TypeKind {
	tok := p.peek()
	switch tok.Type {
	case token.VOID_KW:
		p.advance()
		return ast.KindVoid
	case token.INT_KW, token.FLOAT_KW, token.BOOL_KW:
		return p.parseVarType()
	default:
		p.fail(newError(tok.Pos, ErrExpectedType, "expected a type, found %s", describe(tok)))
		return ast.KindInvalid
	}
}

// parseVarType parses `int | float | bool`.
func (p *Parser) parseVarType() ast.TypeKind {
	tok := p.peek()
	switch tok.Type {
	case token.INT_KW:
		p.advance()
		return ast.KindInt
	case token.FLOAT_KW:
		p.advance()
		return ast.KindFloat
	case token.BOOL_KW:
		p.advance()
		return ast.KindBool
	default:
		p.fail(newError(tok.Pos, ErrExpectedType, "expected int, float, or bool, found %s", describe(tok)))
		return ast.KindInvalid
	}
}

// parseParams parses `'void' | ε | param (',' param)*`.
func (p *Parser) parseParams() []ast.Param {
	if p.peek().Type == token.VOID_KW && p.peek2().Type == token.RPAREN {
		p.advance()
		return nil
	}
	if p.peek().Type == token.RPAREN {
		return nil
	}
	var params []ast.Param
	params = append(params, p.parseParam())
	for !p.failed() && p.peek().Type == token.COMMA {
		p.advance()
		params = append(params, p.parseParam())
	}
	return params
}

func (p *Parser) parseParam() ast.Param {
	pos := p.peek().Pos
	t := p.parseVarType()
	name := p.expect(token.IDENT, ErrExpectedIdent, "identifier")
	return ast.Param{Type: t, Name: name.Literal, Position: pos}
}

// parseBlock parses `'{' local_decl* stmt* '}'`.
func (p *Parser) parseBlock() *ast.Block {
	pos := p.expect(token.LBRACE, ErrMissingLBrace, "'{'").Pos
	blk := &ast.Block{Position: pos}
	for !p.failed() && p.isLocalDeclStart() {
		blk.Locals = append(blk.Locals, p.parseLocalDecl())
	}
	for !p.failed() && p.peek().Type != token.RBRACE && p.peek().Type != token.EOF {
		blk.Stmts = append(blk.Stmts, p.parseStmt())
	}
	p.expect(token.RBRACE, ErrMissingRBrace, "'}'")
	return blk
}

// isLocalDeclStart reports whether the upcoming tokens begin a local
// variable declaration (`var_type IDENT ;`) rather than a statement. A
// var_type token can also start an expression statement only via a cast,
// which Mini-C has no syntax for, so a leading var_type keyword always
// means a local declaration.
func (p *Parser) isLocalDeclStart() bool {
	switch p.peek().Type {
	case token.INT_KW, token.FLOAT_KW, token.BOOL_KW:
		return true
	default:
		return false
	}
}

func (p *Parser) parseLocalDecl() *ast.LocalVarDecl {
	pos := p.peek().Pos
	t := p.parseVarType()
	name := p.expect(token.IDENT, ErrExpectedIdent, "identifier")
	p.expect(token.SEMI, ErrMissingSemicolon, "';'")
	return &ast.LocalVarDecl{Type: t, Name: name.Literal, Position: pos}
}

// parseStmt parses `expr_stmt | block | if_stmt | while_stmt | return_stmt`.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.peek().Type {
	case token.LBRACE:
		pos := p.peek().Pos
		return &ast.BlockStmt{Block: p.parseBlock(), Position: pos}
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	pos := p.peek().Pos
	if p.peek().Type == token.SEMI {
		p.advance()
		return &ast.ExprStmt{Position: pos}
	}
	expr := p.parseExpr()
	p.expect(token.SEMI, ErrMissingSemicolon, "';'")
	return &ast.ExprStmt{X: expr, Position: pos}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	pos := p.advance().Pos // 'if'
	p.expect(token.LPAREN, ErrMissingLParen, "'('")
	cond := p.parseExpr()
	p.expect(token.RPAREN, ErrMissingRParen, "')'")
	thenPos := p.peek().Pos
	thenBlk := p.parseBlock()
	stmt := &ast.IfStmt{Cond: cond, Then: &ast.BlockStmt{Block: thenBlk, Position: thenPos}, Position: pos}
	if p.peek().Type == token.ELSE {
		p.advance()
		elsePos := p.peek().Pos
		elseBlk := p.parseBlock()
		stmt.Else = &ast.BlockStmt{Block: elseBlk, Position: elsePos}
	}
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	pos := p.advance().Pos // 'while'
	p.expect(token.LPAREN, ErrMissingLParen, "'('")
	cond := p.parseExpr()
	p.expect(token.RPAREN, ErrMissingRParen, "')'")
	body := p.parseStmt()
	return &ast.WhileStmt{Cond: cond, Body: body, Position: pos}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	pos := p.advance().Pos // 'return'
	stmt := &ast.ReturnStmt{Position: pos}
	if p.peek().Type != token.SEMI {
		stmt.Value = p.parseExpr()
	}
	p.expect(token.SEMI, ErrMissingSemicolon, "';'")
	return stmt
}

// parseExpr disambiguates `IDENT '=' expr` from the start of an r-value by
// peeking one token past a leading identifier.
func (p *Parser) parseExpr() ast.Expr {
	if p.peek().Type == token.IDENT && p.peek2().Type == token.ASSIGN {
		nameTok := p.advance()
		p.advance() // '='
		rhs := p.parseExpr()
		lhs := ast.NewVarRef(nameTok.Pos, nameTok.Literal)
		return ast.NewBinaryOp(nameTok.Pos, token.ASSIGN, lhs, rhs)
	}
	return p.parseRval()
}

func (p *Parser) parseRval() ast.Expr  { return p.parseLeftAssoc(p.parseRval2, token.OR) }
func (p *Parser) parseRval2() ast.Expr { return p.parseLeftAssoc(p.parseRval3, token.AND) }
func (p *Parser) parseRval3() ast.Expr {
	return p.parseLeftAssoc(p.parseRval4, token.EQ, token.NEQ)
}
func (p *Parser) parseRval4() ast.Expr {
	return p.parseLeftAssoc(p.parseRval5, token.LE, token.LT, token.GE, token.GT)
}
func (p *Parser) parseRval5() ast.Expr {
	return p.parseLeftAssoc(p.parseRval6, token.PLUS, token.MINUS)
}
func (p *Parser) parseRval6() ast.Expr {
	return p.parseLeftAssoc(p.parseRval7, token.STAR, token.SLASH, token.PERCENT)
}

// parseLeftAssoc implements one rung of the precedence ladder: parse one
// operand via next, then repeatedly consume any of ops followed by another
// operand, left-associating.
func (p *Parser) parseLeftAssoc(next func() ast.Expr, ops ...token.Type) ast.Expr {
	left := next()
	for !p.failed() && matches(p.peek().Type, ops) {
		opTok := p.advance()
		right := next()
		left = ast.NewBinaryOp(opTok.Pos, opTok.Type, left, right)
	}
	return left
}

func matches(t token.Type, ops []token.Type) bool {
	for _, o := range ops {
		if t == o {
			return true
		}
	}
	return false
}

// parseRval7 handles right-associative unary `-` and `!`.
func (p *Parser) parseRval7() ast.Expr {
	tok := p.peek()
	if tok.Type == token.MINUS || tok.Type == token.NOT {
		p.advance()
		operand := p.parseRval7()
		return ast.NewUnaryOp(tok.Pos, tok.Type, operand)
	}
	return p.parseRval8()
}

// parseRval8 parses `'(' expr ')' | IDENT ('(' args ')')? | literal`,
// disambiguating a call from a bare variable reference by peeking one
// token past the identifier.
func (p *Parser) parseRval8() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case token.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RPAREN, ErrMissingRParen, "')'")
		return e
	case token.IDENT:
		p.advance()
		if p.peek().Type == token.LPAREN {
			p.advance()
			args := p.parseArgs()
			p.expect(token.RPAREN, ErrMissingRParen, "')'")
			return ast.NewCallExpr(tok.Pos, tok.Literal, args)
		}
		return ast.NewVarRef(tok.Pos, tok.Literal)
	case token.INT:
		p.advance()
		return ast.NewIntLit(tok.Pos, parseInt(tok.Literal))
	case token.FLOAT:
		p.advance()
		return ast.NewFloatLit(tok.Pos, parseFloat(tok.Literal))
	case token.BOOLIT:
		p.advance()
		return ast.NewBoolLit(tok.Pos, tok.Literal == "true")
	default:
		p.fail(newError(tok.Pos, ErrInvalidExpr, "expected an expression, found %s", describe(tok)))
		return ast.NewIntLit(tok.Pos, 0)
	}
}

func (p *Parser) parseArgs() []ast.Expr {
	if p.peek().Type == token.RPAREN {
		return nil
	}
	var args []ast.Expr
	args = append(args, p.parseExpr())
	for !p.failed() && p.peek().Type == token.COMMA {
		p.advance()
		args = append(args, p.parseExpr())
	}
	return args
}

// parseInt and parseFloat convert a literal's lexeme into its numeric
// value. The scanner guarantees the lexeme matches the grammar's digit
// productions, so the only possible failure is a value out of range:
// parseInt then yields the nearest int32 bound and parseFloat yields ±Inf,
// and the range error is ignored.
func parseInt(lit string) int32 {
	v, _ := strconv.ParseInt(lit, 10, 32)
	return int32(v)
}

func parseFloat(lit string) float32 {
	v, _ := strconv.ParseFloat(lit, 32)
	return float32(v)
}
