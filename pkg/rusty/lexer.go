package rusty

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Rules are tried in order and the first match wins. Lowercase rules are
// elided by the participle lexer.
var lexDefinition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "comment", Pattern: `//[^\n]*`},
	{Name: "whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Unterminated", Pattern: `"[^"]*`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Operator", Pattern: `==|!=|>=|<=|[-+*/!=<>(){}\[\],;.]`},
	{Name: "Unknown", Pattern: `.`},
})

var lexSymbols = lexDefinition.Symbols()

// Lexer turns source text into tokens, one at a time
type Lexer struct {
	lex  lexer.Lexer
	done bool
}

// NewLexer prepares a single pass over source
func NewLexer(source string) (*Lexer, error) {
	lex, err := lexDefinition.LexString("", source)
	if err != nil {
		return nil, err
	}
	return &Lexer{lex: lex}, nil
}

// Next returns the next token. The final token is always TokenEOF and
// further calls keep returning it.
func (l *Lexer) Next() (Token, error) {
	raw, err := l.lex.Next()
	if err != nil {
		return Token{}, &LexError{Message: err.Error()}
	}
	line, column := raw.Pos.Line, raw.Pos.Column
	if raw.EOF() {
		l.done = true
		return Token{Kind: TokenEOF, Line: line, Column: column}, nil
	}

	switch raw.Type {
	case lexSymbols["Newline"]:
		return Token{Kind: TokenNewline, Lexeme: "\n", Line: line, Column: column}, nil

	case lexSymbols["Number"]:
		n, err := strconv.ParseFloat(raw.Value, 64)
		if err != nil {
			return Token{}, &LexError{Message: "Invalid number.", Char: raw.Value, Line: line, Column: column}
		}
		return Token{Kind: TokenNumber, Lexeme: raw.Value, Literal: n, Line: line, Column: column}, nil

	case lexSymbols["String"]:
		text := raw.Value[1 : len(raw.Value)-1]
		return Token{Kind: TokenString, Lexeme: raw.Value, Literal: text, Line: line, Column: column}, nil

	case lexSymbols["Unterminated"]:
		return Token{}, &LexError{Message: "Unterminated string.", Char: `"`, Line: line, Column: column}

	case lexSymbols["Ident"]:
		kind := TokenIdentifier
		if keyword, ok := keywords[raw.Value]; ok {
			kind = keyword
		}
		return Token{Kind: kind, Lexeme: raw.Value, Line: line, Column: column}, nil

	case lexSymbols["Operator"]:
		return Token{Kind: operators[raw.Value], Lexeme: raw.Value, Line: line, Column: column}, nil
	}

	return Token{}, &LexError{
		Message: fmt.Sprintf("Unexpected character '%v'.", raw.Value),
		Char:    raw.Value,
		Line:    line,
		Column:  column,
	}
}

// Done reports whether the end of input has been reached
func (l *Lexer) Done() bool {
	return l.done
}

// Scan tokenizes the whole source. It stops at the first lexical error.
func Scan(source string) ([]Token, error) {
	l, err := NewLexer(source)
	if err != nil {
		return nil, err
	}
	tokens := make([]Token, 0, len(source)/4+1)
	for {
		token, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Kind == TokenEOF {
			return tokens, nil
		}
	}
}
