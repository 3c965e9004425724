package rusty

import (
	"errors"
	"fmt"
	"log/slog"
)

// Kinds of runtime failure, matched with errors.Is
var (
	ErrUndefinedVariable     = errors.New("undefined variable")
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrDivisionByZero        = errors.New("division by zero")
	ErrArity                 = errors.New("wrong number of arguments")
	ErrNotCallable           = errors.New("not callable")
	ErrProperty              = errors.New("property access")
	ErrReturnOutsideFunction = errors.New("return outside function")
	ErrStackOverflow         = errors.New("stack overflow")
	ErrNative                = errors.New("native function failed")
	ErrCanceled              = errors.New("canceled")
)

// LexError reports the first character the lexer could not accept
type LexError struct {
	Message string
	Char    string
	Line    int
	Column  int
}

func (e *LexError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("[line %d:%d] %s", e.Line, e.Column, e.Message)
}

func (e *LexError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("msg", e.Message),
		slog.String("char", e.Char),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
	)
}

// ParseError reports the first grammar violation. Index is the position
// of Token in the token stream.
type ParseError struct {
	Message string
	Token   Token
	Index   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d:%d] Error at %v (token %d): %s",
		e.Token.Line, e.Token.Column, e.Token, e.Index, e.Message)
}

func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("msg", e.Message),
		slog.String("token", e.Token.String()),
		slog.Int("index", e.Index),
		slog.Int("line", e.Token.Line),
		slog.Int("column", e.Token.Column),
	)
}

// RuntimeError aborts evaluation. Line is 0 when no source position
// is known.
type RuntimeError struct {
	Message string
	Line    int
	kind    error
	cause   error
}

func runtimeError(kind error, line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Line: line, kind: kind}
}

func (e *RuntimeError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
}

// Is matches the error kind. Errors returned by native functions stay
// reachable through Unwrap.
func (e *RuntimeError) Is(target error) bool {
	return e.kind != nil && e.kind == target
}

func (e *RuntimeError) Unwrap() error {
	return e.cause
}

func (e *RuntimeError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("msg", e.Message),
		slog.Int("line", e.Line),
	}
	if e.kind != nil {
		attrs = append(attrs, slog.String("kind", e.kind.Error()))
	}
	return slog.GroupValue(attrs...)
}

// returnSignal carries a return value up to the nearest function call
type returnSignal struct {
	value Value
	line  int
}

func (r *returnSignal) Error() string {
	return "return statement used outside of a function"
}
