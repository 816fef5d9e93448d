package ingest

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/Intergalactyc/lsat/internal/bank"
	"github.com/Intergalactyc/lsat/internal/extract"
	"github.com/Intergalactyc/lsat/internal/taxonomy"
)

// Outcome is the per-file ingestion result reported back to the user.
type Outcome string

const (
	OutcomeIngested      Outcome = "ingested"
	OutcomeDuplicate     Outcome = "duplicate"
	OutcomeExtractFailed Outcome = "extract_failed"
	OutcomeUnsupported   Outcome = "unsupported"
)

// File is one upload in a batch.
type File struct {
	Filename string
	Data     []byte
}

// Result describes what happened to a single file.
type Result struct {
	Filename string  `json:"filename"`
	Outcome  Outcome `json:"outcome"`
	Type     string  `json:"type,omitempty"`
	Detail   string  `json:"detail,omitempty"`
}

// Service runs the extract → classify → dedup → store sequence. A batch
// holds the service lock end to end so concurrent ingests cannot
// interleave adds with the save.
type Service struct {
	mu   sync.Mutex
	bank *bank.Bank
	tax  taxonomy.Taxonomy
	opts extract.Options
	log  *slog.Logger
}

func NewService(b *bank.Bank, tax taxonomy.Taxonomy, opts extract.Options, log *slog.Logger) *Service {
	return &Service{bank: b, tax: tax, opts: opts, log: log}
}

// IngestFile processes a single upload and persists the bank.
func (s *Service) IngestFile(ctx context.Context, filename string, data []byte) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.ingestOne(ctx, filename, data)
	if res.Outcome != OutcomeIngested {
		return res, nil
	}
	if err := s.bank.Save(); err != nil {
		s.log.Error("bank save failed", "error", err)
		return res, err
	}
	return res, nil
}

// IngestBatch processes each file independently and saves the bank once
// at the end. One bad file never aborts the rest.
func (s *Service) IngestBatch(ctx context.Context, files []File) ([]Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]Result, 0, len(files))
	ingested := 0
	for _, f := range files {
		res := s.ingestOne(ctx, f.Filename, f.Data)
		if res.Outcome == OutcomeIngested {
			ingested++
		}
		results = append(results, res)
	}

	if ingested > 0 {
		if err := s.bank.Save(); err != nil {
			s.log.Error("bank save failed", "error", err)
			return results, err
		}
	}
	return results, nil
}

func (s *Service) ingestOne(ctx context.Context, filename string, data []byte) Result {
	log := s.log.With("filename", filename)

	extractor, err := extract.ForFile(filename, s.opts)
	if err != nil {
		log.Info("unsupported upload skipped", "error", err)
		return Result{Filename: filename, Outcome: OutcomeUnsupported, Detail: err.Error()}
	}

	text, err := extractor.Extract(ctx, bytes.NewReader(data), filename)
	if err != nil {
		log.Warn("extraction failed", "error", err)
		return Result{Filename: filename, Outcome: OutcomeExtractFailed, Detail: err.Error()}
	}
	if strings.TrimSpace(text) == "" {
		log.Warn("extraction produced no text")
		return Result{Filename: filename, Outcome: OutcomeExtractFailed, Detail: "no text extracted"}
	}

	qtype := s.tax.Classify(text)
	q := bank.Question{Text: text, Type: qtype, Source: filename}
	if !s.bank.Add(q) {
		log.Info("duplicate question skipped")
		return Result{Filename: filename, Outcome: OutcomeDuplicate, Type: qtype}
	}

	log.Info("question ingested", "type", qtype)
	return Result{Filename: filename, Outcome: OutcomeIngested, Type: qtype}
}
