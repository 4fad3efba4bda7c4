package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/stylelens/stylelens/internal/detector"
	"github.com/stylelens/stylelens/internal/llm"
	"github.com/stylelens/stylelens/internal/statuscache"
	"github.com/stylelens/stylelens/internal/store"
	"github.com/stylelens/stylelens/internal/vectorindex"
)

// The pipeline consumes its adapters through the narrow interfaces below so
// each stage can be exercised against mocks. The concrete clients live in
// their own packages.
//
//go:generate mockgen -source=deps.go -destination=mock_deps.go -package=pipeline

// Detector finds fashion items in an image.
type Detector interface {
	Detect(ctx context.Context, imageBytes []byte) ([]detector.Detection, error)
}

// Embedder turns a crop into a fixed-dimension vector.
type Embedder interface {
	EmbedImage(ctx context.Context, crop []byte) ([]float32, error)
}

// VectorSearcher queries the product index.
type VectorSearcher interface {
	Search(ctx context.Context, vector []float32, k int, filter *vectorindex.Filter) ([]vectorindex.Match, error)
}

// VisionModel is the LLM side of the pipeline.
type VisionModel interface {
	ExtractAttributes(ctx context.Context, crop []byte, category string) (*llm.Attributes, error)
	RerankProducts(ctx context.Context, crop []byte, category string, candidates []llm.Candidate, topK int) ([]string, error)
	ParseRefineQuery(ctx context.Context, query, category string) (*llm.RefineHints, error)
}

// ObjectStore stores and fetches image blobs.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, keyOrURL string) ([]byte, error)
}

// StatusCache is the fast status projection polled by clients.
type StatusCache interface {
	SetState(ctx context.Context, analysisID string, status string, progress int) error
	GetState(ctx context.Context, analysisID string) (*statuscache.StatusRecord, error)
}

// Repository is the durable store surface the pipeline needs.
type Repository interface {
	GetAnalysis(ctx context.Context, id uuid.UUID) (*store.Analysis, error)
	UpdateAnalysisStatus(ctx context.Context, id uuid.UUID, status store.Status, reason string) error
	SaveAnalysisResults(ctx context.Context, analysisID uuid.UUID, objects []store.DetectedObject, status store.Status, reason string) error
	GetResults(ctx context.Context, analysisID uuid.UUID) (*store.Analysis, error)
	GetDetectedObject(ctx context.Context, id uuid.UUID) (*store.DetectedObject, error)
	AppendRefinedObject(ctx context.Context, priorID uuid.UUID, refined *store.DetectedObject) error
	RecordRefineQuery(ctx context.Context, id uuid.UUID, query string) error
}
