package bank

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestOpen_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	b, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("expected empty bank, got %d questions", b.Len())
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("expected corrupt file to degrade to empty bank, got error: %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("expected empty bank, got %d questions", b.Len())
	}
}

func TestAdd_DuplicateText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	b, _ := Open(path, testLogger())

	q := Question{Text: "Which answer weakens the argument?", Type: "Weaken", Source: "p1.txt"}
	if !b.Add(q) {
		t.Fatal("expected first add to succeed")
	}
	// Same text, different source: still a duplicate.
	dup := Question{Text: q.Text, Type: "Weaken", Source: "p2.txt"}
	if b.Add(dup) {
		t.Error("expected second add with identical text to report duplicate")
	}
	if b.Len() != 1 {
		t.Errorf("expected 1 question, got %d", b.Len())
	}

	// Whitespace differences are distinct texts.
	spaced := Question{Text: q.Text + " ", Type: "Weaken", Source: "p3.txt"}
	if !b.Add(spaced) {
		t.Error("expected whitespace-variant text to be accepted")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	b, _ := Open(path, testLogger())

	want := []Question{
		{Text: "Q one", Type: "Strengthen", Source: "a.png"},
		{Text: "Q two", Type: "Main Point", Source: "b.txt"},
		{Text: "Q three", Type: "Unknown", Source: "c.jpg"},
	}
	for _, q := range want {
		if !b.Add(q) {
			t.Fatalf("add %q failed", q.Text)
		}
	}
	if err := b.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := reloaded.All()
	if len(got) != len(want) {
		t.Fatalf("expected %d questions after reload, got %d", len(want), len(got))
	}
	for i, q := range want {
		if got[i] != q {
			t.Errorf("question[%d]: expected %+v, got %+v", i, q, got[i])
		}
	}
}

func TestSave_EmptyBankWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	b, _ := Open(path, testLogger())
	if err := b.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved bank: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected empty bank to serialize as [], got %q", string(data))
	}
}

func TestByType_InsertionOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	b, _ := Open(path, testLogger())

	b.Add(Question{Text: "w1", Type: "Weaken", Source: "1"})
	b.Add(Question{Text: "s1", Type: "Strengthen", Source: "2"})
	b.Add(Question{Text: "w2", Type: "Weaken", Source: "3"})

	got := b.ByType("Weaken")
	if len(got) != 2 {
		t.Fatalf("expected 2 Weaken questions, got %d", len(got))
	}
	if got[0].Text != "w1" || got[1].Text != "w2" {
		t.Errorf("expected insertion order [w1 w2], got [%s %s]", got[0].Text, got[1].Text)
	}
	if len(b.ByType("Paradox")) != 0 {
		t.Error("expected no Paradox questions")
	}
}

func TestCountByType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	b, _ := Open(path, testLogger())

	b.Add(Question{Text: "w1", Type: "Weaken"})
	b.Add(Question{Text: "w2", Type: "Weaken"})
	b.Add(Question{Text: "f1", Type: "Flaw"})

	counts := b.CountByType()
	if counts["Weaken"] != 2 || counts["Flaw"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
