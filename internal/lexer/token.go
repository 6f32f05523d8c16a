package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // rune offset of the first rune
	End      int    // exclusive end offset
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Lexeme  string // exact text from source (strings keep their quotes)
	Literal any    // int64, float64, string, bool or nil
	Span    Span
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // count, is_done, first-name
	NUMBER TokenType = "NUMBER" // 42, 3.14
	STRING TokenType = "STRING" // "hello"

	// Operators
	PLUS    TokenType = "PLUS"    // +
	MINUS   TokenType = "MINUS"   // -
	STAR    TokenType = "STAR"    // *
	SLASH   TokenType = "SLASH"   // /
	PERCENT TokenType = "PERCENT" // %
	HASH    TokenType = "HASH"    // #
	DOTDOT  TokenType = "DOTDOT"  // ..
	ASSIGN  TokenType = "ASSIGN"  // =
	EQUALS  TokenType = "EQUALS"  // ==
	NEQ     TokenType = "NEQ"     // ~=
	LESS    TokenType = "LESS"    // <
	LEQ     TokenType = "LEQ"     // <=
	GREATER TokenType = "GREATER" // >
	GEQ     TokenType = "GEQ"     // >=

	// Delimiters
	COMMA     TokenType = "COMMA"
	SEMICOLON TokenType = "SEMICOLON"
	LPAREN    TokenType = "LPAREN"
	RPAREN    TokenType = "RPAREN"
	LBRACE    TokenType = "LBRACE"
	RBRACE    TokenType = "RBRACE"
	LBRACKET  TokenType = "LBRACKET"
	RBRACKET  TokenType = "RBRACKET"

	// Keywords
	FUNCTION TokenType = "FUNCTION"
	RETURN   TokenType = "RETURN"
	VAL      TokenType = "VAL"
	LOCAL    TokenType = "LOCAL"
	FOR      TokenType = "FOR"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	NIL      TokenType = "NIL"
	AND      TokenType = "AND"
	OR       TokenType = "OR"
	NOT      TokenType = "NOT"
	WHILE    TokenType = "WHILE"
	THEN     TokenType = "THEN"
	ELSE     TokenType = "ELSE"
	ELSEIF   TokenType = "ELSEIF"
	END      TokenType = "END"
	IF       TokenType = "IF"
	DO       TokenType = "DO"
)

var keywords = map[string]TokenType{
	"function": FUNCTION,
	"return":   RETURN,
	"val":      VAL,
	"local":    LOCAL,
	"for":      FOR,
	"true":     TRUE,
	"false":    FALSE,
	"nil":      NIL,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"while":    WHILE,
	"then":     THEN,
	"else":     ELSE,
	"elseif":   ELSEIF,
	"end":      END,
	"if":       IF,
	"do":       DO,
}

// LookupIdent checks if the identifier is a keyword. Matching is case-sensitive.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// String renders a token for debugging output.
func (t Token) String() string {
	if t.Type == EOF {
		return string(EOF)
	}
	return string(t.Type) + "(" + t.Lexeme + ")"
}
