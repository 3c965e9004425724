package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelWarn))
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestLogger_Trace_ShowsTraceLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithTimeLayout("none"))
	logger.Trace("call", slog.String("fn", "fib"))

	out := buf.String()
	if !strings.Contains(out, "level=TRACE") {
		t.Errorf("expected TRACE level, got %q", out)
	}
	if strings.Contains(out, "time=") {
		t.Errorf("expected no timestamp, got %q", out)
	}
}

func TestLogger_Make_WithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelInfo))
	logger.Info("started", slog.Int("n", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if record["msg"] != "started" || record["n"] != float64(3) {
		t.Errorf("unexpected record: %v", record)
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelInfo)).With(slog.String("component", "repl"))
	logger.Info("ready")

	if !strings.Contains(buf.String(), "component=repl") {
		t.Errorf("missing attribute: %q", buf.String())
	}
}

func TestLogger_Wrap_OverridesLevel(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError {
		t.Errorf("base level changed to %v", base.Level())
	}
	if wrapped.Level() != LevelDebug {
		t.Errorf("wrapped level = %v, want debug", wrapped.Level())
	}

	wrapped.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("wrapped logger did not write to base output: %q", buf.String())
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var logger Logger

	logger.Error("nothing happens")
	logger.With(slog.String("k", "v")).Info("still nothing")

	if logger.Level() != DefaultLevel {
		t.Errorf("zero logger level = %v", logger.Level())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat(" JSON ") != FormatJSON {
		t.Error("expected json")
	}
	if ParseFormat("text") != FormatText {
		t.Error("expected text")
	}
	if ParseFormat("xml") != DefaultFormat {
		t.Error("expected default format")
	}
}
