package lexer

import (
	"strconv"
	"unicode"

	"github.com/lunar-lang/lunar/internal/diag"
)

type LexerErrorKind int

const (
	ErrUnterminatedString LexerErrorKind = iota
	ErrIllegalRune
	ErrMalformedNumber
)

// LexerError describes the first fault found while scanning. Lexing stops at
// the offending rune, so a source yields at most one LexerError per Tokenize.
type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (e LexerError) Error() string {
	return spanPrefix(e.Span) + e.Message
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	case ErrMalformedNumber:
		return diag.CodeLexerMalformedNumber
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     e.Span.ToDiag(),
	}
}

// ToDiag converts the span into the shared diagnostic representation.
func (s Span) ToDiag() diag.Span {
	return diag.Span{
		Filename: s.Filename,
		Line:     s.Line,
		Column:   s.Column,
		Start:    s.Start,
		End:      s.End,
	}
}

func spanPrefix(s Span) string {
	if s.Line == 0 {
		return ""
	}
	return s.ToDiag().String() + ": "
}

// Lexer represents the lexer state
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	filename string

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{}
	l.Reset(input)
	return l
}

// Reset rewinds the lexer onto a new input, clearing cursor, line, column and
// accumulated errors. The filename is kept.
func (l *Lexer) Reset(input string) {
	l.input = []rune(input)
	l.pos = -1 // start before first rune
	l.ch = 0
	l.line = 1
	l.column = 0 // will be 1 after first read()
	l.Errors = nil
	l.read()
}

// SetFilename attributes all subsequent spans to name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// Tokenize lexes the input into a token slice terminated by EOF. It stops at
// the first error and returns it alongside the tokens scanned so far.
func Tokenize(input string) ([]Token, error) {
	return New(input).Tokenize()
}

// Tokenize drains the lexer from its current position.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == ILLEGAL {
			return tokens, l.Errors[len(l.Errors)-1]
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// read advances the lexer to the next character.
// Line/column always reflect the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1
	inputLen := len(l.input)

	if l.pos >= inputLen {
		// We've moved past the last rune; normalize position to virtual EOF
		if prevPos >= 0 && prevPos < inputLen {
			if l.input[prevPos] == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
		} else if prevPos < 0 {
			// Empty input: column should point to the first position
			l.column = 1
		}
		l.pos = inputLen
		l.ch = 0
		return
	}

	l.ch = l.input[l.pos]

	if prevPos >= 0 && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentSpanStart captures the position of the character we're about to tokenize.
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos int, lexeme string, literal any) Token {
	return Token{
		Type:    tokType,
		Lexeme:  lexeme,
		Literal: literal,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      l.pos,
		},
	}
}

// single consumes the current rune as a one-character token.
func (l *Lexer) single(tokType TokenType) Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	raw := string(l.ch)
	l.read()
	return l.makeToken(tokType, startLine, startColumn, startPos, raw, nil)
}

// pair consumes a two-character token when the next rune is second,
// otherwise falls back to the single-character kind.
func (l *Lexer) pair(second rune, double, single TokenType) Token {
	if l.peek() != second {
		return l.single(single)
	}
	startLine, startColumn, startPos := l.currentSpanStart()
	raw := string(l.ch) + string(second)
	l.read()
	l.read()
	return l.makeToken(double, startLine, startColumn, startPos, raw, nil)
}

func (l *Lexer) illegal() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	raw := string(l.ch)
	msg := "illegal character " + strconv.QuoteRune(l.ch)
	l.read()
	tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, raw, nil)
	l.addError(ErrIllegalRune, msg, tok.Span)
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

// skipLineComment consumes a `--` comment up to, not including, the newline.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && !l.atEOF() {
		l.read()
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()

		if l.atEOF() {
			startLine, startColumn, startPos := l.currentSpanStart()
			return l.makeToken(EOF, startLine, startColumn, startPos, "", nil)
		}

		switch l.ch {
		case '-':
			if l.peek() == '-' {
				l.skipLineComment()
				continue
			}
			return l.single(MINUS)
		case '+':
			return l.single(PLUS)
		case '*':
			return l.single(STAR)
		case '/':
			return l.single(SLASH)
		case '%':
			return l.single(PERCENT)
		case '#':
			return l.single(HASH)
		case '(':
			return l.single(LPAREN)
		case ')':
			return l.single(RPAREN)
		case '{':
			return l.single(LBRACE)
		case '}':
			return l.single(RBRACE)
		case '[':
			return l.single(LBRACKET)
		case ']':
			return l.single(RBRACKET)
		case ',':
			return l.single(COMMA)
		case ';':
			return l.single(SEMICOLON)
		case '<':
			return l.pair('=', LEQ, LESS)
		case '>':
			return l.pair('=', GEQ, GREATER)
		case '=':
			return l.pair('=', EQUALS, ASSIGN)
		case '.':
			if l.peek() != '.' {
				return l.illegal()
			}
			return l.pair('.', DOTDOT, ILLEGAL)
		case '~':
			if l.peek() != '=' {
				return l.illegal()
			}
			return l.pair('=', NEQ, ILLEGAL)
		case '"':
			return l.readString()
		default:
			if isLetter(l.ch) {
				startLine, startColumn, startPos := l.currentSpanStart()
				literal := l.readIdentifier()
				tokType := LookupIdent(literal)
				var value any
				switch tokType {
				case TRUE:
					value = true
				case FALSE:
					value = false
				}
				return l.makeToken(tokType, startLine, startColumn, startPos, literal, value)
			}
			if isDigit(l.ch) {
				return l.readNumber()
			}
			return l.illegal()
		}
	}
}

// readIdentifier reads an identifier or keyword. Identifiers start with a
// letter and continue on letters, '_' and '-'.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || l.ch == '_' || l.ch == '-' {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readNumber reads an integer or a float with a single decimal point.
func (l *Lexer) readNumber() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	isFloat := false

	for isDigit(l.ch) {
		l.read()
	}

	// "1..2" is a number followed by DOTDOT, not a float.
	if l.ch == '.' && l.peek() != '.' {
		isFloat = true
		l.read()
		for isDigit(l.ch) {
			l.read()
		}
		if l.ch == '.' && isDigit(l.peek()) {
			for isDigit(l.ch) || l.ch == '.' {
				l.read()
			}
			return l.malformedNumber(startLine, startColumn, startPos, "more than one decimal point")
		}
	}

	lexeme := string(l.input[startPos:l.pos])
	if isFloat {
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return l.malformedNumber(startLine, startColumn, startPos, err.Error())
		}
		return l.makeToken(NUMBER, startLine, startColumn, startPos, lexeme, f)
	}

	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return l.malformedNumber(startLine, startColumn, startPos, "integer out of range")
	}
	return l.makeToken(NUMBER, startLine, startColumn, startPos, lexeme, n)
}

func (l *Lexer) malformedNumber(startLine, startColumn, startPos int, reason string) Token {
	lexeme := string(l.input[startPos:l.pos])
	tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, lexeme, nil)
	l.addError(ErrMalformedNumber, "malformed number "+strconv.Quote(lexeme)+": "+reason, tok.Span)
	return tok
}

// readString reads a string literal verbatim; there are no escape sequences
// and the literal may span lines.
func (l *Lexer) readString() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	l.read() // skip opening quote

	for l.ch != '"' {
		if l.atEOF() {
			tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, string(l.input[startPos:l.pos]), nil)
			l.addError(ErrUnterminatedString, "unterminated string literal", tok.Span)
			return tok
		}
		l.read()
	}
	l.read() // consume closing quote

	raw := string(l.input[startPos:l.pos])
	return l.makeToken(STRING, startLine, startColumn, startPos, raw, raw[1:len(raw)-1])
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}
