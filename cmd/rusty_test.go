package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/posidron/rusty/pkg/define"
	"github.com/posidron/rusty/pkg/rusty"
)

func script(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.rs")
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func noExit(t *testing.T) func(int) {
	return func(code int) { t.Fatalf("exit(%d) called", code) }
}

func TestRun_Script(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := script(t, "var x = Math.sqrt(limit)\n")
	err := run(t.Context(), noExit(t), "-D", "limit=16", "--history", filepath.Join(t.TempDir(), "h"), path)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tests := []struct {
		name string
		args func(t *testing.T) []string
		want error
	}{
		{
			"runtime error",
			func(t *testing.T) []string { return []string{script(t, "print 1 / 0\n")} },
			rusty.ErrDivisionByZero,
		},
		{
			"call depth flag",
			func(t *testing.T) []string {
				return []string{"--max-call-depth", "8", script(t, "fun f(n) { return f(n + 1); }\nf(0)\n")}
			},
			rusty.ErrStackOverflow,
		},
		{
			"bad definition",
			func(t *testing.T) []string { return []string{"-D", "oops", script(t, "")} },
			define.ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t.Context(), noExit(t), tt.args(t)...)
			if !errors.Is(err, tt.want) {
				t.Errorf("run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRun_ParseError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	err := run(t.Context(), noExit(t), script(t, "var = 1\n"))
	var parseErr *rusty.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("run() error = %v, want *rusty.ParseError", err)
	}
}

func TestRun_Dump(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := script(t, "print 1 + 2\n")
	for _, format := range []string{"source", "yaml", "json"} {
		if err := run(t.Context(), noExit(t), "--dump", format, path); err != nil {
			t.Errorf("run(--dump %s) error = %v", format, err)
		}
	}
}

func TestRun_ConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfg, []byte("max:\n  call:\n    depth: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	path := script(t, "fun f(n) { return f(n + 1); }\nf(0)\n")
	err := run(t.Context(), noExit(t), "--config", cfg, path)
	if !errors.Is(err, rusty.ErrStackOverflow) {
		t.Errorf("run() error = %v, want %v", err, rusty.ErrStackOverflow)
	}
}
