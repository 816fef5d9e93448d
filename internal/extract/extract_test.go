package extract

import (
	"context"
	"strings"
	"testing"
)

func TestIsSupportedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"scan.png", true},
		{"scan.JPG", true},
		{"scan.jpeg", true},
		{"notes.txt", true},
		{"notes.md", true},
		{"page.html", true},
		{"page.htm", true},
		{"prep.pdf", true},
		{"prep.docx", true},
		{"rows.csv", true},
		{"archive.zip", false},
		{"script.exe", false},
		{"noextension", false},
	}
	for _, tt := range tests {
		if got := IsSupportedExtension(tt.filename); got != tt.want {
			t.Errorf("IsSupportedExtension(%q): expected %v, got %v", tt.filename, tt.want, got)
		}
	}
}

func TestForFile_Registry(t *testing.T) {
	opts := Options{}

	tests := []struct {
		filename string
		want     string
	}{
		{"scan.png", "*extract.TesseractExtractor"},
		{"notes.txt", "*extract.TextExtractor"},
		{"notes.md", "*extract.MarkdownExtractor"},
		{"page.html", "*extract.HTMLExtractor"},
		{"prep.pdf", "*extract.PDFExtractor"},
		{"prep.docx", "*extract.DOCXExtractor"},
		{"rows.csv", "*extract.CSVExtractor"},
	}
	for _, tt := range tests {
		e, err := ForFile(tt.filename, opts)
		if err != nil {
			t.Errorf("ForFile(%q): unexpected error: %v", tt.filename, err)
			continue
		}
		if got := typeName(e); got != tt.want {
			t.Errorf("ForFile(%q): expected %s, got %s", tt.filename, tt.want, got)
		}
	}

	if _, err := ForFile("archive.zip", opts); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TesseractExtractor:
		return "*extract.TesseractExtractor"
	case *TextExtractor:
		return "*extract.TextExtractor"
	case *MarkdownExtractor:
		return "*extract.MarkdownExtractor"
	case *HTMLExtractor:
		return "*extract.HTMLExtractor"
	case *PDFExtractor:
		return "*extract.PDFExtractor"
	case *DOCXExtractor:
		return "*extract.DOCXExtractor"
	case *CSVExtractor:
		return "*extract.CSVExtractor"
	default:
		return "unknown"
	}
}

func TestTextExtractor_Verbatim(t *testing.T) {
	input := "  Which answer most weakens?\n\nSecond paragraph.\n"
	e := &TextExtractor{}
	got, err := e.Extract(context.Background(), strings.NewReader(input), "q.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != input {
		t.Errorf("expected verbatim text %q, got %q", input, got)
	}
}

func TestTextExtractor_Empty(t *testing.T) {
	e := &TextExtractor{}
	got, err := e.Extract(context.Background(), strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
