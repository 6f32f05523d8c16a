package parser

import (
	"github.com/lunar-lang/lunar/internal/ast"
	"github.com/lunar-lang/lunar/internal/lexer"
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// Parser is a recursive-descent parser over a fully lexed token slice.
// Invariants:
//   - Lookahead: curTok is the token under examination and peekTok the one
//     after it. Both are only mutated via nextToken.
//   - Errors are fatal: the first error is kept in err and every parse
//     function returns nil once it is set, unwinding to the caller.
//   - Spans: a node's span runs from its first token to prevTok, the last
//     token consumed, composed via mergeSpan.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	curTok  lexer.Token
	peekTok lexer.Token
	prevTok lexer.Token

	err error

	filename string
}

// New returns a parser initialised with the provided source input. A lexing
// error is reported by the first Parse call.
func New(input string, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	lx := lexer.New(input)
	if cfg.filename != "" {
		lx.SetFilename(cfg.filename)
	}
	tokens, err := lx.Tokenize()

	p := newParser(tokens, cfg)
	p.err = err
	return p
}

// NewFromTokens returns a parser over a pre-built token sequence. A missing
// trailing EOF token is supplied.
func NewFromTokens(tokens []lexer.Token, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newParser(tokens, cfg)
}

func newParser(tokens []lexer.Token, cfg options) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.EOF {
		eof := lexer.Token{Type: lexer.EOF}
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1].Span
			eof.Span = lexer.Span{Filename: last.Filename, Line: last.Line, Column: last.Column + (last.End - last.Start), Start: last.End, End: last.End}
		} else {
			eof.Span = lexer.Span{Filename: cfg.filename, Line: 1, Column: 1}
		}
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}

	p := &Parser{
		tokens:   tokens,
		pos:      -2,
		filename: cfg.filename,
	}

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

// Err returns the first error encountered, if any.
func (p *Parser) Err() error {
	return p.err
}

// ParseProgram parses a whole source into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	if p.err != nil {
		return nil, p.err
	}

	program := ast.NewProgram(nil, p.curTok.Span)

	for p.curTok.Type != lexer.EOF {
		block := p.parseBlock()
		if block == nil {
			return nil, p.err
		}
		program.Blocks = append(program.Blocks, block)
		program.SetSpan(mergeSpan(program.Span(), block.Span()))

		// A block only stops early on else/elseif/end, none of which may
		// appear at the top level.
		if p.curTok.Type != lexer.EOF {
			p.fail(string(lexer.EOF), p.curTok)
			return nil, p.err
		}
	}

	return program, nil
}

// ParseExpression parses a single expression spanning the whole input.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	if p.err != nil {
		return nil, p.err
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil, p.err
	}
	if p.curTok.Type != lexer.EOF {
		p.fail(string(lexer.EOF), p.curTok)
		return nil, p.err
	}
	return expr, nil
}

// ParseProgram is a convenience wrapper that lexes and parses source.
func ParseProgram(input string, opts ...Option) (*ast.Program, error) {
	return New(input, opts...).ParseProgram()
}

// nextToken advances the parser's token window.
// Contract: after calling nextToken, curTok == old(peekTok) and
// prevTok == old(curTok). Past the end the window keeps yielding EOF.
func (p *Parser) nextToken() {
	p.prevTok = p.curTok
	p.curTok = p.peekTok
	p.pos++
	if next := p.pos + 1; next >= 0 && next < len(p.tokens) {
		p.peekTok = p.tokens[next]
	} else {
		p.peekTok = p.tokens[len(p.tokens)-1]
	}
}

// curIs reports whether the current token is one of the given types.
func (p *Parser) curIs(types ...lexer.TokenType) bool {
	for _, tt := range types {
		if p.curTok.Type == tt {
			return true
		}
	}
	return false
}

// expect consumes the current token when it matches tt; otherwise it records
// a fatal error naming the expected and the actual token kinds.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, bool) {
	if p.err != nil {
		return lexer.Token{}, false
	}
	if p.curTok.Type != tt {
		p.fail(string(tt), p.curTok)
		return lexer.Token{}, false
	}
	tok := p.curTok
	p.nextToken()
	return tok, true
}

// fail records the first parse error; later failures are ignored because
// parsing stops at the first one.
func (p *Parser) fail(expected string, found lexer.Token) {
	if p.err != nil {
		return
	}
	span := found.Span
	if span.Filename == "" && p.filename != "" {
		span.Filename = p.filename
	}
	p.err = newParseError(expected, found, span)
}

// mergeSpan assumes start.End <= end.End and returns a span covering both.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if span.Filename == "" {
		span.Filename = end.Filename
	}

	if span.Line == 0 && end.Line != 0 {
		span.Line = end.Line
		span.Column = end.Column
		span.Start = end.Start
	}

	if end.End > span.End {
		span.End = end.End
	}

	return span
}

// spanFrom covers start up to the last consumed token.
func (p *Parser) spanFrom(start lexer.Span) lexer.Span {
	return mergeSpan(start, p.prevTok.Span)
}
