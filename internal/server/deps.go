package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/stylelens/stylelens/internal/pipeline"
	"github.com/stylelens/stylelens/internal/queue"
	"github.com/stylelens/stylelens/internal/store"
)

// The handlers consume their collaborators through the interfaces below.
//
//go:generate mockgen -source=deps.go -destination=mock_deps.go -package=server

// Store is the durable-store surface the submit handler needs.
type Store interface {
	CreateAnalysis(ctx context.Context, a *store.Analysis) error
	UpdateAnalysisStatus(ctx context.Context, id uuid.UUID, status store.Status, reason string) error
}

// Uploader stores the submitted image.
type Uploader interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Publisher enqueues the analysis job for the pipeline consumer.
type Publisher interface {
	PublishJob(ctx context.Context, job queue.AnalysisJob) error
}

// StatusReader answers status polls.
type StatusReader interface {
	GetStatus(ctx context.Context, analysisID uuid.UUID) (*pipeline.StatusView, error)
}

// ResultsReader fetches an analysis with its current objects.
type ResultsReader interface {
	GetResults(ctx context.Context, analysisID uuid.UUID) (*store.Analysis, bool, error)
}

// Refinery re-ranks one detected object under a free-text query.
type Refinery interface {
	Refine(ctx context.Context, analysisID, objectID uuid.UUID, query string) (*store.DetectedObject, error)
}
