package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultHistorySize is the number of entries kept when none is configured.
const DefaultHistorySize = 1000

// History keeps the most recent command lines, optionally backed by a file.
type History struct {
	entries []string
	maxSize int
	file    string
}

// NewHistory creates a History persisted at file (empty keeps it in memory)
// holding at most maxSize entries.
func NewHistory(file string, maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultHistorySize
	}
	return &History{
		entries: make([]string, 0),
		maxSize: maxSize,
		file:    file,
	}
}

// Add adds a command to history. Repeating the previous entry is a no-op.
func (h *History) Add(cmd string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	h.trim()
}

// Get returns the history entry at index (0 = most recent).
func (h *History) Get(index int) string {
	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Load loads history from file. A missing file is not an error.
func (h *History) Load() error {
	if h.file == "" {
		return nil
	}
	file, err := os.Open(h.file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, line)
		}
	}
	h.trim()
	return scanner.Err()
}

// Save writes history to file, readable by the owner only since
// command lines carry contact details.
func (h *History) Save() error {
	if h.file == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.file), 0o700); err != nil {
		return err
	}

	var b strings.Builder
	for _, entry := range h.entries {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	return os.WriteFile(h.file, []byte(b.String()), 0o600)
}

func (h *History) trim() {
	if over := len(h.entries) - h.maxSize; over > 0 {
		h.entries = append([]string(nil), h.entries[over:]...)
	}
}
