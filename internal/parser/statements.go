package parser

import (
	"github.com/lunar-lang/lunar/internal/ast"
	"github.com/lunar-lang/lunar/internal/lexer"
)

// blockTerminators end a block without being consumed by it.
var blockTerminators = []lexer.TokenType{lexer.ELSE, lexer.ELSEIF, lexer.END, lexer.EOF}

// parseBlock consumes statements until else, elseif, end or EOF. Semicolons
// between statements are skipped.
func (p *Parser) parseBlock() *ast.Block {
	start := p.curTok.Span
	block := ast.NewBlock(make([]ast.Stmt, 0), lexer.Span{})

	for !p.curIs(blockTerminators...) {
		if p.curIs(lexer.SEMICOLON) {
			p.nextToken()
			continue
		}

		stmt := p.parseStmt()
		if stmt == nil {
			return nil
		}
		block.Stmts = append(block.Stmts, stmt)
	}

	if len(block.Stmts) == 0 {
		start.End = start.Start
		block.SetSpan(start)
	} else {
		block.SetSpan(mergeSpan(block.Stmts[0].Span(), p.prevTok.Span))
	}

	return block
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.curTok.Type {
	case lexer.LOCAL:
		if p.peekTok.Type == lexer.FUNCTION {
			p.nextToken()
			return nilStmt(p.parseFunction(true))
		}
		return nilStmt(p.parseAssignment(false))
	case lexer.IDENT:
		switch p.peekTok.Type {
		case lexer.ASSIGN:
			return nilStmt(p.parseAssignment(false))
		case lexer.LPAREN:
			return nilStmt(p.parseCall())
		}
		return p.parseExprStmt()
	case lexer.RETURN:
		return nilStmt(p.parseReturnStmt())
	case lexer.WHILE:
		return nilStmt(p.parseWhileStmt())
	case lexer.FOR:
		return nilStmt(p.parseForStmt())
	case lexer.IF:
		return nilStmt(p.parseIfStmt())
	case lexer.FUNCTION:
		return nilStmt(p.parseFunction(false))
	default:
		return p.parseExprStmt()
	}
}

// nilStmt keeps a typed nil pointer from becoming a non-nil ast.Stmt.
func nilStmt[T interface {
	ast.Stmt
	comparable
}](stmt T) ast.Stmt {
	var zero T
	if stmt == zero {
		return nil
	}
	return stmt
}

func (p *Parser) parseExprStmt() ast.Stmt {
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	return ast.NewExprStmt(expr, expr.Span())
}

// parseAssignment parses `[local] name = expr`. forceLocal marks the binding
// local even without the keyword (for-loop initializers).
func (p *Parser) parseAssignment(forceLocal bool) *ast.AssignStmt {
	start := p.curTok.Span
	isLocal := forceLocal

	if p.curIs(lexer.LOCAL) {
		isLocal = true
		p.nextToken()
	}

	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		return nil
	}
	name := ast.NewIdent(nameTok.Lexeme, nameTok.Span)

	if _, ok := p.expect(lexer.ASSIGN); !ok {
		return nil
	}

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	return ast.NewAssignStmt(name, value, isLocal, p.spanFrom(start))
}

// parseReturnStmt parses `return expr`. A bare `return` directly before the
// end of its block returns nil.
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.curTok.Span
	p.nextToken()

	if p.curIs(blockTerminators...) || p.curIs(lexer.SEMICOLON) {
		return ast.NewReturnStmt(ast.NewLiteral(nil, start), start)
	}

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	return ast.NewReturnStmt(value, p.spanFrom(start))
}

// parseIfStmt parses `if cond then block {elseif cond then block} [else block] end`.
func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.curTok.Span
	p.nextToken() // consume 'if' or 'elseif'

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	if _, ok := p.expect(lexer.THEN); !ok {
		return nil
	}

	then := p.parseBlock()
	if then == nil {
		return nil
	}

	var els *ast.Block

	switch p.curTok.Type {
	case lexer.ELSEIF:
		// The nested if consumes the shared 'end'.
		nested := p.parseIfStmt()
		if nested == nil {
			return nil
		}
		els = ast.NewBlock([]ast.Stmt{nested}, nested.Span())
		return ast.NewIfStmt(cond, then, els, p.spanFrom(start))

	case lexer.ELSE:
		p.nextToken()
		els = p.parseBlock()
		if els == nil {
			return nil
		}
	}

	if _, ok := p.expect(lexer.END); !ok {
		return nil
	}

	return ast.NewIfStmt(cond, then, els, p.spanFrom(start))
}

// parseWhileStmt parses `while cond do block end`.
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	start := p.curTok.Span
	p.nextToken()

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	if _, ok := p.expect(lexer.DO); !ok {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	if _, ok := p.expect(lexer.END); !ok {
		return nil
	}

	return ast.NewWhileStmt(cond, body, p.spanFrom(start))
}

// parseForStmt parses `for name = start, stop [, step] do block end`.
func (p *Parser) parseForStmt() *ast.ForStmt {
	start := p.curTok.Span
	p.nextToken()

	init := p.parseAssignment(true)
	if init == nil {
		return nil
	}

	if _, ok := p.expect(lexer.COMMA); !ok {
		return nil
	}

	stop := p.parseExpr()
	if stop == nil {
		return nil
	}

	var step ast.Expr
	if p.curIs(lexer.COMMA) {
		p.nextToken()
		step = p.parseExpr()
		if step == nil {
			return nil
		}
	}

	if _, ok := p.expect(lexer.DO); !ok {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	if _, ok := p.expect(lexer.END); !ok {
		return nil
	}

	return ast.NewForStmt(init, stop, step, body, p.spanFrom(start))
}

// parseFunction parses `function [name](params) block end`. A local function
// must be named.
func (p *Parser) parseFunction(isLocal bool) *ast.Function {
	start := p.curTok.Span
	if isLocal {
		start = p.prevTok.Span
	}

	if _, ok := p.expect(lexer.FUNCTION); !ok {
		return nil
	}

	name := ""
	if p.curIs(lexer.IDENT) {
		name = p.curTok.Lexeme
		p.nextToken()
	} else if isLocal {
		p.fail(string(lexer.IDENT), p.curTok)
		return nil
	}

	if _, ok := p.expect(lexer.LPAREN); !ok {
		return nil
	}

	params := make([]string, 0)
	for !p.curIs(lexer.RPAREN) {
		paramTok, ok := p.expect(lexer.IDENT)
		if !ok {
			return nil
		}
		params = append(params, paramTok.Lexeme)

		if !p.curIs(lexer.RPAREN) {
			if _, ok := p.expect(lexer.COMMA); !ok {
				return nil
			}
		}
	}

	if _, ok := p.expect(lexer.RPAREN); !ok {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	if _, ok := p.expect(lexer.END); !ok {
		return nil
	}

	return ast.NewFunction(name, params, body, isLocal, p.spanFrom(start))
}
