package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/posidron/rusty/pkg/log"
	"github.com/posidron/rusty/pkg/rusty"
	"github.com/posidron/rusty/pkg/stdlib"
)

func newSession() *Session {
	return NewSession(log.Logger{}, rusty.WithGlobals(stdlib.Bindings()))
}

func TestSession_Persists(t *testing.T) {
	s := newSession()
	steps := []struct {
		input string
		want  string
	}{
		{"var a = 1", ""},
		{"fun double(x) { return x * 2; }", ""},
		{"print double(a)", "2\n"},
		{"a = a + 10", ""},
		{"print a", "11\n"},
	}
	for _, step := range steps {
		got, err := s.Eval(t.Context(), step.input)
		if err != nil {
			t.Fatalf("Eval(%q) error = %v", step.input, err)
		}
		if got != step.want {
			t.Errorf("Eval(%q) = %q, want %q", step.input, got, step.want)
		}
	}
}

func TestSession_ErrorKeepsSession(t *testing.T) {
	s := newSession()
	if _, err := s.Eval(t.Context(), "var a = 1"); err != nil {
		t.Fatal(err)
	}
	out, err := s.Eval(t.Context(), "print a\nprint missing")
	if !errors.Is(err, rusty.ErrUndefinedVariable) {
		t.Fatalf("Eval() error = %v, want %v", err, rusty.ErrUndefinedVariable)
	}
	if out != "1\n" {
		t.Errorf("Eval() output = %q, want output printed before the error", out)
	}
	if out, err := s.Eval(t.Context(), "print a"); err != nil || out != "1\n" {
		t.Errorf("Eval() after error = %q, %v", out, err)
	}
}

func TestSession_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.rs")
	if err := os.WriteFile(path, []byte("fun square(x) {\n  return x * x\n}\nprint \"loaded\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := newSession()
	out, err := s.Load(t.Context(), path)
	if err != nil || out != "loaded\n" {
		t.Fatalf("Load() = %q, %v", out, err)
	}
	if out, err := s.Eval(t.Context(), "print square(4)"); err != nil || out != "16\n" {
		t.Errorf("Eval() = %q, %v", out, err)
	}
	if _, err := s.Load(t.Context(), filepath.Join(t.TempDir(), "missing.rs")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestSession_Names(t *testing.T) {
	s := newSession()
	if _, err := s.Eval(t.Context(), "var zeta = [1]"); err != nil {
		t.Fatal(err)
	}
	names := s.Names()
	for _, want := range []string{"Math", "Array", "zeta"} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() = %v, missing %q", names, want)
		}
	}
	members := s.Members("Math")
	if !slices.Contains(members, "sqrt") || !slices.Contains(members, "PI") {
		t.Errorf("Members(Math) = %v", members)
	}
	if s.Members("zeta") != nil || s.Members("nope") != nil {
		t.Error("Members() of a non-namespace is not nil")
	}
	env := s.Env()
	if !strings.Contains(env, "zeta array = [1]") || !strings.Contains(env, "Math namespace") {
		t.Errorf("Env() = %q", env)
	}
}
