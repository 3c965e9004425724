package repl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/posidron/rusty/pkg/log"
	"github.com/posidron/rusty/pkg/rusty"
)

// Session is one interpreter whose globals persist across inputs. Program
// output is collected per input so the caller decides where it goes.
type Session struct {
	interp *rusty.Interpreter
	out    *bytes.Buffer
	logger log.Logger
}

// NewSession builds the interpreter with opts. Any output writer in opts is
// replaced by the session's own buffer.
func NewSession(logger log.Logger, opts ...rusty.Option) *Session {
	out := &bytes.Buffer{}
	opts = append(append([]rusty.Option{}, opts...), rusty.WithOutput(out), rusty.WithLogger(logger))
	return &Session{
		interp: rusty.New(opts...),
		out:    out,
		logger: logger,
	}
}

// Eval runs one input. A trailing newline is added so a bare expression
// is terminated. Output printed before an error is still returned.
func (s *Session) Eval(ctx context.Context, input string) (string, error) {
	s.out.Reset()
	if !strings.HasSuffix(input, "\n") {
		input += "\n"
	}
	err := s.interp.Run(ctx, input)
	if err != nil {
		s.logger.DebugContext(ctx, "repl eval failed", slog.Any("error", err))
	}
	return s.out.String(), err
}

// Load runs a script file in the session.
func (s *Session) Load(ctx context.Context, path string) (string, error) {
	source, err := rusty.ReadProgram(path)
	if err != nil {
		return "", err
	}
	s.logger.DebugContext(ctx, "repl load", slog.String("path", path))
	out, err := s.Eval(ctx, source)
	if err != nil {
		return out, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Names lists the visible global names, for completion.
func (s *Session) Names() []string {
	return s.interp.Globals().Names()
}

// Members lists the member names of the global namespace or object called
// name, for completion after a dot.
func (s *Session) Members(name string) []string {
	value, err := s.interp.Globals().Get(name)
	if err != nil {
		return nil
	}
	var members map[string]rusty.Value
	switch v := value.(type) {
	case *rusty.NamespaceValue:
		members = v.Members
	case rusty.ObjectValue:
		members = v
	default:
		return nil
	}
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Env renders each global with its kind, one per line.
func (s *Session) Env() string {
	var b strings.Builder
	for _, name := range s.Names() {
		value, err := s.interp.Globals().Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "  %s %s\n", name, describe(value))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func describe(value rusty.Value) string {
	switch v := value.(type) {
	case *rusty.NamespaceValue:
		return fmt.Sprintf("namespace (%d members)", len(v.Members))
	case *rusty.FunctionValue:
		return fmt.Sprintf("fun(%d)", len(v.Decl.Params))
	case rusty.NativeFunctionValue:
		return "native(" + v.Arity.String() + ")"
	}
	return rusty.TypeName(value) + " = " + rusty.Stringify(value)
}
