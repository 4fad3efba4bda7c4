package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stylelens/stylelens/internal/detector"
	"github.com/stylelens/stylelens/internal/imaging"
	"github.com/stylelens/stylelens/internal/llm"
	"github.com/stylelens/stylelens/internal/logger"
	"github.com/stylelens/stylelens/internal/metrics"
	"github.com/stylelens/stylelens/internal/store"
	"github.com/stylelens/stylelens/internal/vectorindex"
)

// Worker runs the per-object stage sequence: crop, upload, attribute
// extraction, embedding, vector search, rerank. Upload and attribute
// extraction degrade on failure; embedding and search are fatal for the
// object. A worker never fails its siblings.
type Worker struct {
	cfg      Config
	objstore ObjectStore
	embedder Embedder
	searcher VectorSearcher
	vision   VisionModel
	reranker *Reranker
	metrics  *metrics.Metrics
	log      logger.Logger
}

// NewWorker builds a worker.
func NewWorker(
	cfg Config,
	objstore ObjectStore,
	embedder Embedder,
	searcher VectorSearcher,
	vision VisionModel,
	reranker *Reranker,
	m *metrics.Metrics,
	log logger.Logger,
) *Worker {
	return &Worker{
		cfg:      cfg,
		objstore: objstore,
		embedder: embedder,
		searcher: searcher,
		vision:   vision,
		reranker: reranker,
		metrics:  m,
		log:      log,
	}
}

// Process handles one detection. It always returns an outcome; errors are
// folded into failed outcomes with a coarse reason.
func (w *Worker) Process(ctx context.Context, analysisID uuid.UUID, imageBytes []byte, det detector.Detection, index int) ObjectOutcome {
	if err := ctx.Err(); err != nil {
		return failedOutcome(det, store.ReasonTimeout)
	}

	crop, err := w.stageCrop(imageBytes, det)
	if err != nil {
		w.log.Warn("crop failed", err, map[string]interface{}{
			"analysis_id": analysisID.String(),
			"category":    det.Category,
		})
		return failedOutcome(det, store.ReasonDetection)
	}

	cropURL := w.stageUpload(ctx, analysisID, index, crop)

	attrs := w.stageAttributes(ctx, crop, det.Category)

	vec, err := w.stageEmbed(ctx, crop)
	if err != nil {
		return w.failWith(ctx, det, err, store.ReasonEmbedding)
	}

	matches, err := w.stageSearch(ctx, vec, det.Category)
	if err != nil {
		return w.failWith(ctx, det, err, store.ReasonSearch)
	}

	ranked := w.stageRerank(ctx, crop, det.Category, vec, attrs, matches)

	return ObjectOutcome{
		Detection:  det,
		Status:     store.ObjectSucceeded,
		CropURL:    cropURL,
		Embedding:  vec,
		Attributes: attrs,
		Matches:    ranked,
	}
}

// failWith attributes context expiry to the deadline rather than the stage
// that happened to observe it.
func (w *Worker) failWith(ctx context.Context, det detector.Detection, err error, reason string) ObjectOutcome {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		reason = store.ReasonTimeout
	}
	w.log.Warn("object processing failed", err, map[string]interface{}{
		"category": det.Category,
		"reason":   reason,
	})
	w.metrics.ObjectOutcomes.WithLabelValues(string(store.ObjectFailed), reason).Inc()
	return failedOutcome(det, reason)
}

func (w *Worker) stageCrop(imageBytes []byte, det detector.Detection) ([]byte, error) {
	defer w.observe("crop", time.Now())
	return imaging.Crop(imageBytes, det.Box, w.cfg.CropPadding)
}

// stageUpload stores the crop. On exhausted retries the object continues
// with an empty crop URL; the match pipeline does not depend on it.
func (w *Worker) stageUpload(ctx context.Context, analysisID uuid.UUID, index int, crop []byte) string {
	defer w.observe("upload", time.Now())

	key := fmt.Sprintf("crops/%s/%d.jpg", analysisID, index)
	var url string
	err := retryTransient(ctx, w.cfg.RetryAttempts, func() error {
		var putErr error
		url, putErr = w.objstore.Put(ctx, key, crop, "image/jpeg")
		return putErr
	})
	if err != nil {
		w.log.Warn("crop upload degraded", err, map[string]interface{}{"key": key})
		return ""
	}
	return url
}

// stageAttributes extracts fashion attributes. Degrades to nil on failure;
// the reranker then scores attributes as zero.
func (w *Worker) stageAttributes(ctx context.Context, crop []byte, category string) *llm.Attributes {
	defer w.observe("attributes", time.Now())

	var attrs *llm.Attributes
	err := retryTransient(ctx, w.cfg.RetryAttempts, func() error {
		var exErr error
		attrs, exErr = w.vision.ExtractAttributes(ctx, crop, category)
		return exErr
	})
	if err != nil {
		w.log.Warn("attribute extraction degraded", err, map[string]interface{}{
			"category": category,
		})
		return nil
	}
	return attrs
}

func (w *Worker) stageEmbed(ctx context.Context, crop []byte) ([]float32, error) {
	defer w.observe("embed", time.Now())

	var vec []float32
	err := retryTransient(ctx, w.cfg.RetryAttempts, func() error {
		var embErr error
		vec, embErr = w.embedder.EmbedImage(ctx, crop)
		return embErr
	})
	return vec, err
}

func (w *Worker) stageSearch(ctx context.Context, vec []float32, category string) ([]vectorindex.Match, error) {
	defer w.observe("search", time.Now())

	filter := &vectorindex.Filter{Category: normalizeCategory(category)}
	var matches []vectorindex.Match
	err := retryTransient(ctx, w.cfg.RetryAttempts, func() error {
		var searchErr error
		matches, searchErr = w.searcher.Search(ctx, vec, w.cfg.SearchLimit, filter)
		return searchErr
	})
	return matches, err
}

func (w *Worker) stageRerank(ctx context.Context, crop []byte, category string, vec []float32, attrs *llm.Attributes, matches []vectorindex.Match) []store.ProductMatch {
	defer w.observe("rerank", time.Now())

	ranked, _ := w.reranker.Rerank(ctx, crop, category, vec, attrs, matches)
	return ranked
}

func (w *Worker) observe(stage string, started time.Time) {
	w.metrics.ObserveStage(stage, time.Since(started))
}
