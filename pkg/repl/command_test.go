package repl

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want command
		load string
	}{
		{line: ".exit", want: command{Exit: true}},
		{line: ".quit", want: command{Exit: true}},
		{line: "  .help ", want: command{Help: true}},
		{line: ".clear", want: command{Clear: true}},
		{line: ".env", want: command{Env: true}},
		{line: ".load examples/fib.rs", load: "examples/fib.rs"},
		{line: ".load ./fib.rs", load: "./fib.rs"},
		{line: `.load "my file.rs"`, load: "my file.rs"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommand(tt.line)
			if err != nil {
				t.Fatalf("parseCommand() error = %v", err)
			}
			if tt.load != "" {
				if got.Load == nil || *got.Load != tt.load {
					t.Errorf("Load = %v, want %q", got.Load, tt.load)
				}
				return
			}
			if got.Load != nil || got.Exit != tt.want.Exit || got.Help != tt.want.Help ||
				got.Clear != tt.want.Clear || got.Env != tt.want.Env {
				t.Errorf("parseCommand() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	for _, line := range []string{".bogus", ".load", ".exit now", ".help me"} {
		if _, err := parseCommand(line); err == nil {
			t.Errorf("parseCommand(%q) error = nil, want error", line)
		}
	}
}

func TestIsCommand(t *testing.T) {
	if !isCommand(" .help") || isCommand("print 1") || isCommand("") {
		t.Error("isCommand() misclassified input")
	}
}
