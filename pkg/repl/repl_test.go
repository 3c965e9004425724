package repl

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func enter(m model) model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(model)
}

func TestModel_EvaluatesOnEnter(t *testing.T) {
	m := enter(typed(t, "var answer = 42"))
	if m.input.Value() != "" {
		t.Errorf("input after Enter = %q, want it cleared", m.input.Value())
	}
	out, err := m.session.Eval(t.Context(), "print answer")
	if err != nil || out != "42\n" {
		t.Errorf("Eval() = %q, %v", out, err)
	}
	if got, _ := m.history.Get(0); got != "var answer = 42" {
		t.Errorf("history = %q", got)
	}
}

func TestModel_ErrorContinues(t *testing.T) {
	m := enter(typed(t, "print missing"))
	if m.quitting {
		t.Fatal("a runtime error ended the session")
	}
	if _, err := m.session.Eval(t.Context(), "print 1"); err != nil {
		t.Errorf("Eval() after error = %v", err)
	}
}

func TestModel_Exit(t *testing.T) {
	m := enter(typed(t, ".exit"))
	if !m.quitting {
		t.Error(".exit did not quit")
	}
	if m.View() != "" {
		t.Errorf("View() = %q after quitting", m.View())
	}
}

func TestModel_CtrlC(t *testing.T) {
	m := typed(t, "var x")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(model)
	if m.quitting || m.input.Value() != "" {
		t.Fatalf("Ctrl+C on a non-empty line: quitting = %v, input = %q", m.quitting, m.input.Value())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(model).quitting {
		t.Error("Ctrl+C on an empty line did not quit")
	}
}

func TestModel_HistoryNavigation(t *testing.T) {
	m := typed(t, "print 1")
	m = enter(m)
	for _, r := range "print 2" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	m = enter(m)

	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyUp, "print 2"},
		{tea.KeyUp, "print 1"},
		{tea.KeyUp, "print 1"},
		{tea.KeyDown, "print 2"},
		{tea.KeyDown, ""},
	}
	for i, step := range steps {
		next, _ := m.Update(tea.KeyMsg{Type: step.key})
		m = next.(model)
		if got := m.input.Value(); got != step.want {
			t.Errorf("step %d: input = %q, want %q", i, got, step.want)
		}
	}
}

func TestModel_LoadCommand(t *testing.T) {
	path := filepath.Join("testdata", "square.rs")
	m := enter(typed(t, ".load "+path))
	out, err := m.session.Eval(t.Context(), "print square(3)")
	if err != nil || out != "9\n" {
		t.Errorf("Eval() = %q, %v", out, err)
	}
}
