package api

import (
	"log/slog"
	"net/http"

	"github.com/Intergalactyc/lsat/internal/bank"
	"github.com/Intergalactyc/lsat/internal/config"
	"github.com/Intergalactyc/lsat/internal/exam"
	"github.com/Intergalactyc/lsat/internal/ingest"
	"github.com/Intergalactyc/lsat/internal/pipeline"
	"github.com/Intergalactyc/lsat/internal/taxonomy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for the question bank.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	service      *ingest.Service
	composer     *exam.Composer
	bank         *bank.Bank
	tax          taxonomy.Taxonomy
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, svc *ingest.Service, composer *exam.Composer, b *bank.Bank, tax taxonomy.Taxonomy, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		service:      svc,
		composer:     composer,
		bank:         b,
		tax:          tax,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Post("/api/ingest", s.handleIngest)
	r.Get("/api/ingest/{jobID}/status", s.handleIngestStatus)
	r.Post("/api/ingest/batch", s.handleBatchIngest)

	r.Get("/api/exam", s.handleExam)
	r.Get("/api/questions", s.handleListQuestions)
	r.Get("/api/stats", s.handleStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
