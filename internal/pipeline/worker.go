package pipeline

import (
	"context"
	"log/slog"

	"github.com/Intergalactyc/lsat/internal/ingest"
)

// Worker processes a single ingestion job.
type Worker struct {
	service *ingest.Service
	log     *slog.Logger
}

func NewWorker(svc *ingest.Service, log *slog.Logger) *Worker {
	return &Worker{service: svc, log: log}
}

// Process runs extraction, classification, and storage for one job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	job.SetStatus(StatusProcessing, "extracting")

	res, err := w.service.IngestFile(ctx, job.Filename, job.FileData())
	job.SetResult(res)
	if err != nil {
		// The question was accepted but the bank flush failed; surface it
		// as a job failure so the operator notices.
		log.Error("ingest failed", "error", err)
		job.SetStatus(StatusFailed, "saving")
		return
	}

	switch res.Outcome {
	case ingest.OutcomeIngested:
		log.Info("job completed", "type", res.Type)
		job.SetStatus(StatusCompleted, "done")
	case ingest.OutcomeDuplicate:
		log.Info("duplicate question, skipping")
		job.SetStatus(StatusDupSkipped, "dedup")
	default:
		log.Warn("job failed", "outcome", res.Outcome, "detail", res.Detail)
		job.SetStatus(StatusFailed, string(res.Outcome))
	}
}
