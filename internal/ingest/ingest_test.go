package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Intergalactyc/lsat/internal/bank"
	"github.com/Intergalactyc/lsat/internal/extract"
	"github.com/Intergalactyc/lsat/internal/taxonomy"
)

func newService(t *testing.T) (*Service, *bank.Bank, string) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	path := filepath.Join(t.TempDir(), "bank.json")
	b, err := bank.Open(path, log)
	if err != nil {
		t.Fatalf("open bank: %v", err)
	}
	return NewService(b, taxonomy.Default(), extract.Options{}, log), b, path
}

func TestIngestFile_TextClassifiedAndStored(t *testing.T) {
	svc, b, path := newService(t)

	res, err := svc.IngestFile(context.Background(), "q1.txt", []byte("Which one of the following most weakens the argument?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeIngested {
		t.Fatalf("expected outcome %q, got %q (%s)", OutcomeIngested, res.Outcome, res.Detail)
	}
	if res.Type != "Weaken" {
		t.Errorf("expected type %q, got %q", "Weaken", res.Type)
	}
	if b.Len() != 1 {
		t.Errorf("expected 1 question in bank, got %d", b.Len())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected bank file to be saved: %v", err)
	}
}

func TestIngestFile_EmptyExtractionSkipped(t *testing.T) {
	svc, b, _ := newService(t)

	res, err := svc.IngestFile(context.Background(), "blank.txt", []byte("   \n\t  "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeExtractFailed {
		t.Errorf("expected outcome %q, got %q", OutcomeExtractFailed, res.Outcome)
	}
	if b.Len() != 0 {
		t.Errorf("expected empty bank, got %d questions", b.Len())
	}
}

func TestIngestFile_UnsupportedExtension(t *testing.T) {
	svc, b, _ := newService(t)

	res, err := svc.IngestFile(context.Background(), "evil.exe", []byte("assume nothing"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeUnsupported {
		t.Errorf("expected outcome %q, got %q", OutcomeUnsupported, res.Outcome)
	}
	if b.Len() != 0 {
		t.Errorf("expected empty bank, got %d questions", b.Len())
	}
}

func TestIngestBatch_MixedOutcomes(t *testing.T) {
	svc, b, _ := newService(t)

	files := []File{
		{Filename: "a.txt", Data: []byte("The argument assumes that prices never fall.")},
		{Filename: "b.txt", Data: []byte("")},
		{Filename: "a-copy.txt", Data: []byte("The argument assumes that prices never fall.")},
		{Filename: "c.zip", Data: []byte("ignored")},
		{Filename: "d.txt", Data: []byte("What is the primary purpose of the passage?")},
	}
	results, err := svc.IngestBatch(context.Background(), files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}

	want := []Outcome{OutcomeIngested, OutcomeExtractFailed, OutcomeDuplicate, OutcomeUnsupported, OutcomeIngested}
	for i, res := range results {
		if res.Outcome != want[i] {
			t.Errorf("result[%d] (%s): expected outcome %q, got %q", i, res.Filename, want[i], res.Outcome)
		}
	}
	if results[0].Type != "Assumption" {
		t.Errorf("expected a.txt classified as Assumption, got %q", results[0].Type)
	}
	if results[4].Type != "Main Point" {
		t.Errorf("expected d.txt classified as Main Point, got %q", results[4].Type)
	}
	if b.Len() != 2 {
		t.Errorf("expected 2 questions in bank, got %d", b.Len())
	}
}

func TestIngestBatch_IdempotentAcrossBatches(t *testing.T) {
	svc, b, _ := newService(t)

	text := []byte("Identify the flaw in the reasoning above.")
	if _, err := svc.IngestBatch(context.Background(), []File{{Filename: "x.txt", Data: text}}); err != nil {
		t.Fatal(err)
	}
	results, err := svc.IngestBatch(context.Background(), []File{{Filename: "y.txt", Data: text}})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Outcome != OutcomeDuplicate {
		t.Errorf("expected duplicate on re-ingest, got %q", results[0].Outcome)
	}
	if b.Len() != 1 {
		t.Errorf("expected 1 question, got %d", b.Len())
	}
}

func TestIngestBatch_UnclassifiedStoredAsUnknown(t *testing.T) {
	svc, b, _ := newService(t)

	results, err := svc.IngestBatch(context.Background(), []File{
		{Filename: "odd.txt", Data: []byte("the quick brown fox jumps over the lazy dog")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Outcome != OutcomeIngested {
		t.Fatalf("expected ingested, got %q", results[0].Outcome)
	}
	if results[0].Type != taxonomy.Unknown {
		t.Errorf("expected type %q, got %q", taxonomy.Unknown, results[0].Type)
	}
	got := b.ByType(taxonomy.Unknown)
	if len(got) != 1 {
		t.Fatalf("expected 1 Unknown question, got %d", len(got))
	}
	// Text is stored verbatim, not trimmed or normalized.
	if got[0].Text != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("unexpected stored text %q", got[0].Text)
	}
}
