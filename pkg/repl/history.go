package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// History keeps entered lines, oldest first. With a path, lines are
// loaded from and appended to that file; without one it lives in memory.
type History struct {
	path    string
	entries []string
	mutex   sync.RWMutex
}

func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with the contents of the history file. A
// missing file is an empty history.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer file.Close()

	h.entries = nil
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, line)
		}
	}
	return scanner.Err()
}

// Add records line. A repeat of an earlier line moves it to the end.
func (h *History) Add(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return nil
	}
	rewrite := false
	for i, entry := range h.entries {
		if entry == line {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			rewrite = true
			break
		}
	}
	h.entries = append(h.entries, line)

	if h.path == "" {
		return nil
	}
	if rewrite {
		return h.rewrite()
	}
	return h.append(line)
}

// Get returns the entry at i, where 0 is the oldest.
func (h *History) Get(i int) (string, bool) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}

func (h *History) Len() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.entries)
}

func (h *History) append(line string) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return err
	}
	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = file.WriteString(line + "\n")
	return err
}

// rewrite must be called with the mutex held.
func (h *History) rewrite() error {
	var b strings.Builder
	for _, entry := range h.entries {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}
