package api

import (
	"encoding/json"
	"net/http"

	"github.com/Intergalactyc/lsat/internal/bank"
)

// handleListQuestions lists bank contents, optionally filtered by type.
func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	qtype := r.URL.Query().Get("type")

	questions := s.bank.All()
	if qtype != "" {
		questions = s.bank.ByType(qtype)
	}
	if questions == nil {
		questions = []bank.Question{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count":     len(questions),
		"questions": questions,
	})
}

// handleStats reports bank totals per category, grouped by section.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	counts := s.bank.CountByType()

	sections := make(map[string]map[string]int)
	for _, sec := range s.tax {
		byCat := make(map[string]int)
		for _, label := range sec.Labels() {
			byCat[label] = counts[label]
		}
		sections[sec.Name] = byCat
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"total":       s.bank.Len(),
		"by_type":     counts,
		"sections":    sections,
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
