package repl

import (
	"path/filepath"
	"testing"
)

func TestHistory_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")
	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() of a missing file error = %v", err)
	}
	for _, line := range []string{"var a = 1", "print a", "  ", "print a", "var a = 1"} {
		if err := h.Add(line); err != nil {
			t.Fatalf("Add(%q) error = %v", line, err)
		}
	}

	want := []string{"print a", "var a = 1"}
	if h.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", h.Len(), len(want))
	}
	for i, line := range want {
		if got, ok := h.Get(i); !ok || got != line {
			t.Errorf("Get(%d) = %q, %v, want %q", i, got, ok, line)
		}
	}
	if _, ok := h.Get(len(want)); ok {
		t.Error("Get() past the end succeeded")
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if reloaded.Len() != len(want) {
		t.Fatalf("reloaded Len() = %d, want %d", reloaded.Len(), len(want))
	}
	if got, _ := reloaded.Get(1); got != "var a = 1" {
		t.Errorf("reloaded Get(1) = %q", got)
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")
	if err := h.Add("print 1"); err != nil {
		t.Fatal(err)
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
	if err := h.Load(); err != nil || h.Len() != 1 {
		t.Errorf("Load() = %v with Len() = %d, want the entry kept", err, h.Len())
	}
}
