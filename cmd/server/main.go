package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Intergalactyc/lsat/internal/api"
	"github.com/Intergalactyc/lsat/internal/bank"
	"github.com/Intergalactyc/lsat/internal/config"
	"github.com/Intergalactyc/lsat/internal/exam"
	"github.com/Intergalactyc/lsat/internal/extract"
	"github.com/Intergalactyc/lsat/internal/ingest"
	"github.com/Intergalactyc/lsat/internal/pipeline"
	"github.com/Intergalactyc/lsat/internal/taxonomy"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tax := taxonomy.Default()

	b, err := bank.Open(cfg.BankFile, log)
	if err != nil {
		log.Error("failed to open question bank", "error", err)
		os.Exit(1)
	}
	log.Info("question bank loaded", "path", cfg.BankFile, "questions", b.Len())

	extractOpts := extract.Options{
		TesseractLang:        cfg.TesseractLang,
		TesseractTimeout:     cfg.TesseractTimeout,
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	}
	svc := ingest.NewService(b, tax, extractOpts, log)
	composer := exam.NewComposer(b, tax, log)

	orch := pipeline.NewOrchestrator(cfg, svc, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, svc, composer, b, tax, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if err := b.Save(); err != nil {
			log.Error("final bank flush failed", "error", err)
		}
	}()

	log.Info("starting question bank server", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
