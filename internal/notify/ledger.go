package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ledger is the durable store for the pending reminder collection. The
// collection is always read and written as a whole unit.
type Ledger interface {
	Load() (map[string]ReminderEntry, error)
	Store(entries map[string]ReminderEntry) error
}

// FileLedger keeps the collection in a JSON file, written via a temp
// file and rename.
type FileLedger struct {
	path string
}

func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

func (l *FileLedger) Load() (map[string]ReminderEntry, error) {
	out := make(map[string]ReminderEntry)
	if strings.TrimSpace(l.path) == "" {
		return out, nil
	}
	raw, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return out, fmt.Errorf("read reminder ledger: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return make(map[string]ReminderEntry), fmt.Errorf("decode reminder ledger: %w", err)
	}
	return out, nil
}

func (l *FileLedger) Store(entries map[string]ReminderEntry) error {
	if strings.TrimSpace(l.path) == "" {
		return nil
	}
	dir := filepath.Dir(l.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger dir: %w", err)
		}
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode reminder ledger: %w", err)
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write reminder ledger: %w", err)
	}
	return os.Rename(tmp, l.path)
}

// MemoryLedger is an in-process Ledger for tests.
type MemoryLedger struct {
	entries map[string]ReminderEntry
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]ReminderEntry)}
}

func (l *MemoryLedger) Load() (map[string]ReminderEntry, error) {
	out := make(map[string]ReminderEntry, len(l.entries))
	for id, entry := range l.entries {
		out[id] = entry
	}
	return out, nil
}

func (l *MemoryLedger) Store(entries map[string]ReminderEntry) error {
	next := make(map[string]ReminderEntry, len(entries))
	for id, entry := range entries {
		next[id] = entry
	}
	l.entries = next
	return nil
}
