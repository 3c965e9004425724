package rusty

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/posidron/rusty/pkg/log"
)

const (
	VERSION             = "0.1.0"
	DefaultMaxCallDepth = 1024
)

// Interpreter runs programs against one persistent global environment.
// It is not safe for concurrent use.
type Interpreter struct {
	globals       *Environment
	out           io.Writer
	logger        log.Logger
	maxCallDepth  int
	maxParseDepth int
	callDepth     int
}

type Option func(*Interpreter)

// WithOutput sets where print writes. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(interp *Interpreter) {
		if w != nil {
			interp.out = w
		}
	}
}

func WithLogger(logger log.Logger) Option {
	return func(interp *Interpreter) {
		interp.logger = logger
	}
}

// WithGlobals makes bindings visible to every program run by the
// interpreter
func WithGlobals(bindings GlobalBindings) Option {
	return func(interp *Interpreter) {
		bindings.install(interp.globals)
	}
}

func WithMaxCallDepth(n int) Option {
	return func(interp *Interpreter) {
		if n > 0 {
			interp.maxCallDepth = n
		}
	}
}

func WithMaxParseDepth(n int) Option {
	return func(interp *Interpreter) {
		if n > 0 {
			interp.maxParseDepth = n
		}
	}
}

func New(opts ...Option) *Interpreter {
	interp := &Interpreter{
		globals:       NewEnvironment(),
		out:           os.Stdout,
		maxCallDepth:  DefaultMaxCallDepth,
		maxParseDepth: DefaultMaxParseDepth,
	}
	for _, opt := range opts {
		opt(interp)
	}
	return interp
}

// Globals is the outermost environment. Top-level declarations persist
// here between runs.
func (interp *Interpreter) Globals() *Environment {
	return interp.globals
}

// Parse scans and parses source with the interpreter's nesting limit
func (interp *Interpreter) Parse(source string) ([]Stmt, error) {
	return ParseSource(source, WithMaxDepth(interp.maxParseDepth))
}

// Run lexes, parses and interprets source. The context is checked
// between top-level statements.
func (interp *Interpreter) Run(ctx context.Context, source string) error {
	statements, err := interp.Parse(source)
	if err != nil {
		interp.logger.DebugContext(ctx, "parse failed", slog.Any("error", err))
		return err
	}
	return interp.interpret(ctx, statements)
}

// Interpret executes statements in order. The first runtime error aborts
// the rest.
func (interp *Interpreter) Interpret(statements []Stmt) error {
	return interp.interpret(context.Background(), statements)
}

func (interp *Interpreter) interpret(ctx context.Context, statements []Stmt) error {
	start := time.Now()
	interp.callDepth = 0
	for _, statement := range statements {
		if err := ctx.Err(); err != nil {
			return &RuntimeError{Message: err.Error(), kind: ErrCanceled, cause: err}
		}
		if err := statement.Exec(interp, interp.globals); err != nil {
			if retSignal, ok := err.(*returnSignal); ok {
				err = runtimeError(ErrReturnOutsideFunction, retSignal.line,
					"Return statement outside of function.")
			}
			interp.logger.DebugContext(ctx, "runtime error", slog.Any("error", err))
			return err
		}
	}
	interp.logger.TraceContext(ctx, "interpreted",
		slog.Int("statements", len(statements)), slog.Duration("elapsed", time.Since(start)))
	return nil
}

// ReadProgram loads a script from disk
func ReadProgram(filename string) (string, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("while trying to read %s: %w", filename, err)
	}
	return string(b), nil
}

// RunProgram runs a whole script with a fresh interpreter
func RunProgram(ctx context.Context, filename string, source string, opts ...Option) error {
	interp := New(opts...)
	interp.logger.DebugContext(ctx, "running program", slog.String("file", filename))
	if err := interp.Run(ctx, source); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}
