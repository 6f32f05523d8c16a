package parser

import (
	"github.com/lunar-lang/lunar/internal/ast"
	"github.com/lunar-lang/lunar/internal/lexer"
)

// Precedence tiers, lowest to highest. Each tier parses the next one for its
// operands, so binding strength follows the order of this table.
var (
	orOps         = []lexer.TokenType{lexer.OR}
	andOps        = []lexer.TokenType{lexer.AND}
	equalityOps   = []lexer.TokenType{lexer.EQUALS, lexer.NEQ}
	comparisonOps = []lexer.TokenType{lexer.LESS, lexer.LEQ, lexer.GREATER, lexer.GEQ}
	termOps       = []lexer.TokenType{lexer.PLUS, lexer.MINUS, lexer.DOTDOT}
	factorOps     = []lexer.TokenType{lexer.STAR, lexer.SLASH, lexer.PERCENT}
	unaryOps      = []lexer.TokenType{lexer.NOT, lexer.HASH, lexer.MINUS}
)

func (p *Parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	return p.parseBinary(p.parseAnd, orOps)
}

func (p *Parser) parseAnd() ast.Expr {
	return p.parseBinary(p.parseEquality, andOps)
}

func (p *Parser) parseEquality() ast.Expr {
	return p.parseBinary(p.parseComparison, equalityOps)
}

func (p *Parser) parseComparison() ast.Expr {
	return p.parseBinary(p.parseTerm, comparisonOps)
}

func (p *Parser) parseTerm() ast.Expr {
	return p.parseBinary(p.parseFactor, termOps)
}

func (p *Parser) parseFactor() ast.Expr {
	return p.parseBinary(p.parseUnary, factorOps)
}

// parseBinary parses a left-associative chain of operand (op operand)*.
func (p *Parser) parseBinary(operand func() ast.Expr, ops []lexer.TokenType) ast.Expr {
	left := operand()
	if left == nil {
		return nil
	}

	for p.curIs(ops...) {
		op := p.curTok
		p.nextToken()

		right := operand()
		if right == nil {
			return nil
		}

		left = ast.NewBinaryExpr(left, op, right, mergeSpan(left.Span(), right.Span()))
	}

	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if !p.curIs(unaryOps...) {
		return p.parsePrimary()
	}

	op := p.curTok
	p.nextToken()

	operand := p.parseUnary()
	if operand == nil {
		return nil
	}

	return ast.NewUnaryExpr(op, operand, mergeSpan(op.Span, operand.Span()))
}

func (p *Parser) parsePrimary() ast.Expr {
	if p.err != nil {
		return nil
	}

	tok := p.curTok

	switch tok.Type {
	case lexer.NUMBER, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.NIL:
		p.nextToken()
		return ast.NewLiteral(tok.Literal, tok.Span)

	case lexer.IDENT:
		if p.peekTok.Type == lexer.LPAREN {
			call := p.parseCall()
			if call == nil {
				return nil
			}
			return call
		}
		p.nextToken()
		return ast.NewIdent(tok.Lexeme, tok.Span)

	case lexer.LPAREN:
		p.nextToken()
		inner := p.parseExpr()
		if inner == nil {
			return nil
		}
		if _, ok := p.expect(lexer.RPAREN); !ok {
			return nil
		}
		return ast.NewGroupedExpr(inner, p.spanFrom(tok.Span))

	case lexer.FUNCTION:
		fn := p.parseFunction(false)
		if fn == nil {
			return nil
		}
		return fn

	default:
		p.fail("expression", tok)
		return nil
	}
}

// parseCall parses `name(arg, ...)`; curTok is the name.
func (p *Parser) parseCall() *ast.CallExpr {
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		return nil
	}
	name := ast.NewIdent(nameTok.Lexeme, nameTok.Span)

	if _, ok := p.expect(lexer.LPAREN); !ok {
		return nil
	}

	args := make([]ast.Expr, 0)
	for !p.curIs(lexer.RPAREN) {
		arg := p.parseExpr()
		if arg == nil {
			return nil
		}
		args = append(args, arg)

		if !p.curIs(lexer.RPAREN) {
			if _, ok := p.expect(lexer.COMMA); !ok {
				return nil
			}
		}
	}

	if _, ok := p.expect(lexer.RPAREN); !ok {
		return nil
	}

	return ast.NewCallExpr(name, args, p.spanFrom(nameTok.Span))
}
