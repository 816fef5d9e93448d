package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Question is one classified record in the bank. JSON field names match
// the persisted store format, so an existing question_bank.json loads
// unchanged.
type Question struct {
	Text   string `json:"text"`
	Type   string `json:"type"`
	Source string `json:"source"`
}

// Bank is the persistent question collection. All methods are safe for
// concurrent use.
type Bank struct {
	mu        sync.Mutex
	path      string
	questions []Question
	log       *slog.Logger
}

// Open loads the bank from path. A missing file starts an empty bank;
// a corrupt file is logged and also treated as empty, never fatal.
func Open(path string, log *slog.Logger) (*Bank, error) {
	b := &Bank{path: path, log: log}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return b, nil
		}
		log.Warn("bank file unreadable, starting empty", "path", path, "error", err)
		return b, nil
	}

	if err := json.Unmarshal(data, &b.questions); err != nil {
		log.Warn("bank file corrupt, starting empty", "path", path, "error", err)
		b.questions = nil
	}
	return b, nil
}

// ContainsText reports whether a question with exactly this text exists.
// Whitespace differences count as distinct.
func (b *Bank) ContainsText(text string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.containsLocked(text)
}

func (b *Bank) containsLocked(text string) bool {
	for i := range b.questions {
		if b.questions[i].Text == text {
			return true
		}
	}
	return false
}

// Add appends q unless its text is already present. Returns false for a
// duplicate so the caller can report the skip.
func (b *Bank) Add(q Question) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.containsLocked(q.Text) {
		return false
	}
	b.questions = append(b.questions, q)
	return true
}

// ByType returns all questions with exactly this type label, in
// insertion order.
func (b *Bank) ByType(qtype string) []Question {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Question
	for _, q := range b.questions {
		if q.Type == qtype {
			out = append(out, q)
		}
	}
	return out
}

// All returns a copy of every question in insertion order.
func (b *Bank) All() []Question {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Len returns the number of stored questions.
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.questions)
}

// CountByType returns the number of questions per type label.
func (b *Bank) CountByType() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	counts := make(map[string]int)
	for _, q := range b.questions {
		counts[q.Type]++
	}
	return counts
}

// Save writes the full collection as indented JSON. The write goes to a
// temp file in the same directory and is renamed into place, so a failed
// save never truncates the previous store.
func (b *Bank) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	questions := b.questions
	if questions == nil {
		questions = []Question{}
	}
	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bank: %w", err)
	}

	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, ".bank-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write bank: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace bank file: %w", err)
	}
	return nil
}
