package rusty

import "fmt"

// TokenKind classifies a lexeme
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNewline

	TokenNumber
	TokenString
	TokenIdentifier

	// Keywords
	TokenVar
	TokenFun
	TokenIf
	TokenElse
	TokenWhile
	TokenReturn
	TokenPrint
	TokenTrue
	TokenFalse
	TokenNil
	TokenAnd
	TokenOr

	// Punctuation and operators
	TokenLeftParen
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenComma
	TokenDot
	TokenSemicolon
	TokenEqual
	TokenEqualEqual
	TokenBangEqual
	TokenGreater
	TokenGreaterEqual
	TokenLess
	TokenLessEqual
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenBang
)

var tokenNames = map[TokenKind]string{
	TokenEOF:          "EOF",
	TokenNewline:      "newline",
	TokenNumber:       "number",
	TokenString:       "string",
	TokenIdentifier:   "identifier",
	TokenVar:          "var",
	TokenFun:          "fun",
	TokenIf:           "if",
	TokenElse:         "else",
	TokenWhile:        "while",
	TokenReturn:       "return",
	TokenPrint:        "print",
	TokenTrue:         "true",
	TokenFalse:        "false",
	TokenNil:          "nil",
	TokenAnd:          "and",
	TokenOr:           "or",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBrace:    "{",
	TokenRightBrace:   "}",
	TokenLeftBracket:  "[",
	TokenRightBracket: "]",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenSemicolon:    ";",
	TokenEqual:        "=",
	TokenEqualEqual:   "==",
	TokenBangEqual:    "!=",
	TokenGreater:      ">",
	TokenGreaterEqual: ">=",
	TokenLess:         "<",
	TokenLessEqual:    "<=",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenBang:         "!",
}

func (kind TokenKind) String() string {
	if name, ok := tokenNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(kind))
}

var keywords = map[string]TokenKind{
	"var":    TokenVar,
	"fun":    TokenFun,
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"return": TokenReturn,
	"print":  TokenPrint,
	"true":   TokenTrue,
	"false":  TokenFalse,
	"nil":    TokenNil,
	"and":    TokenAnd,
	"or":     TokenOr,
}

// Operators and punctuation keyed by their lexeme
var operators = map[string]TokenKind{
	"(":  TokenLeftParen,
	")":  TokenRightParen,
	"{":  TokenLeftBrace,
	"}":  TokenRightBrace,
	"[":  TokenLeftBracket,
	"]":  TokenRightBracket,
	",":  TokenComma,
	".":  TokenDot,
	";":  TokenSemicolon,
	"=":  TokenEqual,
	"==": TokenEqualEqual,
	"!=": TokenBangEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenStar,
	"/":  TokenSlash,
	"!":  TokenBang,
}

// Token is one lexeme with its position. Literal holds the decoded
// float64 for numbers and the unquoted text for strings.
type Token struct {
	Kind    TokenKind
	Lexeme  string
	Literal any
	Line    int
	Column  int
}

func (token Token) String() string {
	switch token.Kind {
	case TokenEOF:
		return "end of input"
	case TokenNewline:
		return "newline"
	}
	return fmt.Sprintf("'%v'", token.Lexeme)
}

// Pos formats the token position as line:column
func (token Token) Pos() string {
	return fmt.Sprintf("%d:%d", token.Line, token.Column)
}
