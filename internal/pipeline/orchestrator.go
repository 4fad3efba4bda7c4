package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/stylelens/stylelens/internal/detector"
	"github.com/stylelens/stylelens/internal/imaging"
	"github.com/stylelens/stylelens/internal/logger"
	"github.com/stylelens/stylelens/internal/metrics"
	"github.com/stylelens/stylelens/internal/store"
	"github.com/stylelens/stylelens/internal/tracer"
)

// Orchestrator drives one analysis end to end: load and validate the image,
// detect objects, fan a worker out per object under a shared deadline, join,
// and hand all outcomes to the aggregator in a single call.
type Orchestrator struct {
	cfg        Config
	detector   Detector
	worker     *Worker
	aggregator *Aggregator
	objstore   ObjectStore
	cache      StatusCache
	repo       Repository
	metrics    *metrics.Metrics
	trace      *tracer.Tracer
	log        logger.Logger
}

// NewOrchestrator builds an orchestrator.
func NewOrchestrator(
	cfg Config,
	det Detector,
	worker *Worker,
	aggregator *Aggregator,
	objstore ObjectStore,
	cache StatusCache,
	repo Repository,
	m *metrics.Metrics,
	trace *tracer.Tracer,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		detector:   det,
		worker:     worker,
		aggregator: aggregator,
		objstore:   objstore,
		cache:      cache,
		repo:       repo,
		metrics:    m,
		trace:      trace,
		log:        log,
	}
}

// Start processes one submitted analysis. The error return reports whether
// the run itself could be carried out; a FAILED analysis with its status
// durably recorded is a successful run from the caller's perspective, so the
// queue consumer knows to ack rather than redeliver.
func (o *Orchestrator) Start(ctx context.Context, analysisID uuid.UUID, imageURL string) error {
	ctx, span := o.trace.StartSpan(ctx, "pipeline.analysis")
	defer span.End()
	o.trace.SetAttributes(span, map[string]interface{}{"analysis_id": analysisID.String()})

	o.metrics.AnalysesInProgress.Inc()
	defer o.metrics.AnalysesInProgress.Dec()

	o.setState(ctx, analysisID, string(store.StatusPending), 0)

	imageBytes, err := o.objstore.Get(ctx, imageURL)
	if err != nil {
		o.trace.RecordErrorOnSpan(span, err)
		return o.finalizeEarlyFailure(ctx, analysisID, store.ReasonUpload, fmt.Errorf("load image: %w", err))
	}

	// Pre-flight decode so undecodable uploads fail before any fan-out.
	if _, err := imaging.Decode(imageBytes); err != nil {
		o.trace.RecordErrorOnSpan(span, err)
		return o.finalizeEarlyFailure(ctx, analysisID, store.ReasonDetection, fmt.Errorf("decode image: %w", err))
	}

	// Durable first, then the cache projection. A stale transition just
	// means a competing writer got there already.
	if err := o.repo.UpdateAnalysisStatus(ctx, analysisID, store.StatusRunning, ""); err != nil && !errors.Is(err, store.ErrStaleTransition) {
		o.log.Warn("running transition not recorded", err, map[string]interface{}{
			"analysis_id": analysisID.String(),
		})
	}
	o.setState(ctx, analysisID, string(store.StatusRunning), 0)

	detections, err := o.detect(ctx, imageBytes)
	if err != nil {
		o.trace.RecordErrorOnSpan(span, err)
		return o.finalizeEarlyFailure(ctx, analysisID, store.ReasonDetection, err)
	}

	// Nothing detected is a valid, complete result.
	if len(detections) == 0 {
		_, err := o.aggregator.Reduce(o.persistCtx(ctx), analysisID, nil)
		return err
	}

	outcomes := o.fanOut(ctx, analysisID, imageBytes, detections)

	status, err := o.aggregator.Reduce(o.persistCtx(ctx), analysisID, outcomes)
	if err != nil {
		o.trace.RecordErrorOnSpan(span, err)
		return err
	}

	o.log.Info("analysis finished", nil, map[string]interface{}{
		"analysis_id": analysisID.String(),
		"status":      string(status),
		"objects":     len(outcomes),
	})
	return nil
}

// fanOut runs one worker per detection under the analysis deadline. Workers
// store their outcome into an indexed slot and never return an error, so a
// failing object cannot cancel its siblings. Progress is published on a best
// effort basis as workers finish.
func (o *Orchestrator) fanOut(ctx context.Context, analysisID uuid.UUID, imageBytes []byte, detections []detector.Detection) []ObjectOutcome {
	ctx, span := o.trace.StartSpan(ctx, "pipeline.fanout")
	defer span.End()
	o.trace.SetAttributes(span, map[string]interface{}{"objects": len(detections)})

	runCtx, cancel := context.WithTimeout(ctx, o.cfg.AnalysisTimeout)
	defer cancel()

	outcomes := make([]ObjectOutcome, len(detections))
	var finished atomic.Int64

	g, workerCtx := errgroup.WithContext(runCtx)
	g.SetLimit(o.cfg.WorkerConcurrency)

	for i, det := range detections {
		g.Go(func() error {
			outcomes[i] = o.worker.Process(workerCtx, analysisID, imageBytes, det, i)

			done := int(finished.Add(1))
			o.setState(ctx, analysisID, string(store.StatusRunning), progressOf(done, len(detections)))
			return nil
		})
	}
	// Workers never return errors, so Wait is purely a join barrier; it
	// fires exactly once after the last worker finishes.
	_ = g.Wait()

	return outcomes
}

func (o *Orchestrator) detect(ctx context.Context, imageBytes []byte) ([]detector.Detection, error) {
	ctx, span := o.trace.StartSpan(ctx, "pipeline.detect")
	defer span.End()

	var detections []detector.Detection
	err := retryTransient(ctx, o.cfg.RetryAttempts, func() error {
		var detErr error
		detections, detErr = o.detector.Detect(ctx, imageBytes)
		return detErr
	})
	return detections, err
}

// finalizeEarlyFailure records a pipeline-fatal failure that happened before
// fan-out.
func (o *Orchestrator) finalizeEarlyFailure(ctx context.Context, analysisID uuid.UUID, reason string, cause error) error {
	o.log.Error("analysis failed before fan-out", cause, map[string]interface{}{
		"analysis_id": analysisID.String(),
		"reason":      reason,
	})
	return o.aggregator.FinalizeFailure(o.persistCtx(ctx), analysisID, reason)
}

// setState publishes a progress snapshot. Losing one is harmless; the next
// write or the durable fallback covers it.
func (o *Orchestrator) setState(ctx context.Context, analysisID uuid.UUID, status string, progress int) {
	if err := o.cache.SetState(ctx, analysisID.String(), status, progress); err != nil {
		o.log.Warn("progress cache write failed", err, map[string]interface{}{
			"analysis_id": analysisID.String(),
		})
	}
}

// persistCtx detaches persistence from the analysis deadline so a timed-out
// run can still record its terminal state.
func (o *Orchestrator) persistCtx(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
