package api

import (
	"net/http"
	"strconv"

	"github.com/Intergalactyc/lsat/internal/exam"
)

// handleExam composes a practice exam and serves it as a downloadable
// plain-text document. Section counts default to the configured
// structure and can be overridden per request; a seed makes the export
// reproducible.
func (s *Server) handleExam(w http.ResponseWriter, r *http.Request) {
	structure := exam.Structure{
		"LR": s.cfg.DefaultLRCount,
		"RC": s.cfg.DefaultRCCount,
	}
	if v := r.URL.Query().Get("lr"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, "lr must be a non-negative integer", http.StatusBadRequest)
			return
		}
		structure["LR"] = n
	}
	if v := r.URL.Query().Get("rc"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, "rc must be a non-negative integer", http.StatusBadRequest)
			return
		}
		structure["RC"] = n
	}

	composer := s.composer
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			jsonError(w, "seed must be an unsigned integer", http.StatusBadRequest)
			return
		}
		composer = exam.NewComposer(s.bank, s.tax, s.log, exam.WithSeed(seed))
	}

	questions, shortages := composer.Compose(structure)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="exam.txt"`)
	w.Header().Set("X-Exam-Questions", strconv.Itoa(len(questions)))
	w.Header().Set("X-Exam-Shortages", strconv.Itoa(len(shortages)))
	w.Write([]byte(exam.Render(questions)))
}
