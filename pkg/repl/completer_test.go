package repl

import (
	"context"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/posidron/rusty/pkg/log"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"member", "Math.sq", 7, "sq", 5, 7},
		{"after operator", "a + fo", 6, "fo", 4, 6},
		{"after paren", "double(fo", 9, "fo", 7, 9},
		{"after comma", "add(a, fo", 9, "fo", 7, 9},
		{"minus", "a-b", 3, "b", 2, 3},
		{"empty after dot", "Math.", 5, "", 5, 5},
		{"mid word", "foobar", 3, "foobar", 0, 6},
		{"cursor past end", "ab", 9, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestOwner(t *testing.T) {
	tests := []struct {
		input     string
		wordStart int
		want      string
	}{
		{"fo", 0, ""},
		{"Math.", 5, "Math"},
		{"x + Math.fl", 9, "Math"},
		{"a + ", 4, ""},
	}
	for _, tt := range tests {
		if got := owner(tt.input, tt.wordStart); got != tt.want {
			t.Errorf("owner(%q, %d) = %q, want %q", tt.input, tt.wordStart, got, tt.want)
		}
	}
}

func typed(t *testing.T, input string) model {
	t.Helper()
	m := newModel(context.Background(), newSession(), NewHistory(""), log.Logger{})
	for _, r := range input {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	return m
}

func TestComputeMatches(t *testing.T) {
	tests := []struct {
		name  string
		input string
		best  string
	}{
		{"global", "Mat", "Math"},
		{"member", "Math.sqr", "sqrt"},
		{"command", ".lo", ".load"},
		{"keyword", "whil", "while"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := typed(t, tt.input)
			if len(m.matches) == 0 {
				t.Fatalf("no matches for %q", tt.input)
			}
			if m.matches[0].Str != tt.best {
				t.Errorf("best match = %q, want %q", m.matches[0].Str, tt.best)
			}
		})
	}
}

func TestComputeMatches_AllMembersAfterDot(t *testing.T) {
	m := typed(t, "Time.")
	if len(m.matches) != 1 || m.matches[0].Str != "now" {
		t.Errorf("matches = %v, want [now]", m.matches)
	}
}

func TestTab_Completes(t *testing.T) {
	m := typed(t, "Time.")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := next.(model).input.Value(); got != "Time.now" {
		t.Errorf("input after Tab = %q, want %q", got, "Time.now")
	}
}

func TestTab_Cycles(t *testing.T) {
	m := typed(t, "String.")
	if len(m.matches) < 2 {
		t.Fatalf("matches = %v, want several", m.matches)
	}
	first := m.matches[0].Str
	second := m.matches[1].Str

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(model)
	if got := m.input.Value(); got != "String."+first {
		t.Errorf("first Tab = %q, want %q", got, "String."+first)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(model)
	if got := m.input.Value(); got != "String."+second {
		t.Errorf("second Tab = %q, want %q", got, "String."+second)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := next.(model).input.Value(); got != "String." {
		t.Errorf("Esc = %q, want the text from before cycling", got)
	}
}

func TestTab_CompletesAfterMultibyteText(t *testing.T) {
	m := typed(t, `print "héllo" + Time.`)
	if len(m.matches) != 1 || m.matches[0].Str != "now" {
		t.Fatalf("matches = %v, want [now]", m.matches)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(model)
	want := `print "héllo" + Time.now`
	if got := m.input.Value(); got != want {
		t.Errorf("input after Tab = %q, want %q", got, want)
	}
	if got, want := m.input.Position(), utf8.RuneCountInString(want); got != want {
		t.Errorf("cursor = %d, want %d", got, want)
	}
}

func TestByteOffset(t *testing.T) {
	tests := []struct {
		input string
		pos   int
		want  int
	}{
		{"abc", 2, 2},
		{"héllo", 2, 3},
		{"héllo", 5, 6},
		{"é", 9, 2},
	}
	for _, tt := range tests {
		if got := byteOffset(tt.input, tt.pos); got != tt.want {
			t.Errorf("byteOffset(%q, %d) = %d, want %d", tt.input, tt.pos, got, tt.want)
		}
	}
}
