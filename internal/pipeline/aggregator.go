package pipeline

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/stylelens/stylelens/internal/logger"
	"github.com/stylelens/stylelens/internal/metrics"
	"github.com/stylelens/stylelens/internal/store"
)

// Aggregator turns the joined worker outcomes into the single durable batch
// write and the terminal status. It runs exactly once per analysis; the
// orchestrator's join barrier guarantees the single invocation.
type Aggregator struct {
	cfg     Config
	repo    Repository
	cache   StatusCache
	metrics *metrics.Metrics
	log     logger.Logger
}

// NewAggregator builds an aggregator.
func NewAggregator(cfg Config, repo Repository, cache StatusCache, m *metrics.Metrics, log logger.Logger) *Aggregator {
	return &Aggregator{cfg: cfg, repo: repo, cache: cache, metrics: m, log: log}
}

// Reduce persists all outcomes of one analysis in a single transaction and
// finalizes the status: DONE when at least one object succeeded (or there
// were none), FAILED when every object failed. The durable write commits
// before the cache sees the terminal state, so a cache reader can never get
// ahead of the store.
func (a *Aggregator) Reduce(ctx context.Context, analysisID uuid.UUID, outcomes []ObjectOutcome) (store.Status, error) {
	status, reason := terminalFor(outcomes)
	objects := buildObjects(analysisID, outcomes)

	stale := false
	err := retryTransient(ctx, a.cfg.RetryAttempts, func() error {
		saveErr := a.repo.SaveAnalysisResults(ctx, analysisID, objects, status, reason)
		if errors.Is(saveErr, store.ErrStaleTransition) {
			// Someone else already finalized this analysis. Not retryable.
			stale = true
			return nil
		}
		return saveErr
	})
	if stale {
		if current, getErr := a.repo.GetAnalysis(ctx, analysisID); getErr == nil {
			return current.Status, nil
		}
		return status, nil
	}
	if err != nil {
		a.log.Error("durable batch write exhausted retries", err, map[string]interface{}{
			"analysis_id": analysisID.String(),
		})
		return a.failPersistence(ctx, analysisID)
	}

	a.writeCache(ctx, analysisID, status)
	a.count(status, outcomes)
	return status, nil
}

// FinalizeFailure marks the analysis FAILED without a result batch, for
// pipeline-fatal errors that precede fan-out (bad image, detection down).
func (a *Aggregator) FinalizeFailure(ctx context.Context, analysisID uuid.UUID, reason string) error {
	stale := false
	err := retryTransient(ctx, a.cfg.RetryAttempts, func() error {
		updErr := a.repo.UpdateAnalysisStatus(ctx, analysisID, store.StatusFailed, reason)
		if errors.Is(updErr, store.ErrStaleTransition) {
			stale = true
			return nil
		}
		return updErr
	})
	if err != nil {
		return err
	}
	if stale {
		return nil
	}

	a.writeCache(ctx, analysisID, store.StatusFailed)
	a.metrics.AnalysesTotal.WithLabelValues(string(store.StatusFailed)).Inc()
	return nil
}

// failPersistence is the last resort when the batch write cannot land: the
// analysis is marked FAILED with reason "persistence" so clients stop
// polling a run whose results are lost.
func (a *Aggregator) failPersistence(ctx context.Context, analysisID uuid.UUID) (store.Status, error) {
	err := a.repo.UpdateAnalysisStatus(ctx, analysisID, store.StatusFailed, store.ReasonPersistence)
	if err != nil && !errors.Is(err, store.ErrStaleTransition) {
		a.log.Error("failed to mark analysis failed after persistence error", err, map[string]interface{}{
			"analysis_id": analysisID.String(),
		})
	}
	a.writeCache(ctx, analysisID, store.StatusFailed)
	a.metrics.AnalysesTotal.WithLabelValues(string(store.StatusFailed)).Inc()
	return store.StatusFailed, nil
}

// writeCache publishes the terminal state to the fast projection. Best
// effort: the durable store already holds the truth.
func (a *Aggregator) writeCache(ctx context.Context, analysisID uuid.UUID, status store.Status) {
	if err := a.cache.SetState(ctx, analysisID.String(), string(status), 100); err != nil {
		a.log.Warn("terminal status cache write failed", err, map[string]interface{}{
			"analysis_id": analysisID.String(),
		})
	}
}

func (a *Aggregator) count(status store.Status, outcomes []ObjectOutcome) {
	a.metrics.AnalysesTotal.WithLabelValues(string(status)).Inc()
	for _, o := range outcomes {
		a.metrics.ObjectOutcomes.WithLabelValues(string(o.Status), o.FailureReason).Inc()
		if o.Status == store.ObjectSucceeded {
			a.metrics.ProductMatchesTotal.WithLabelValues(o.Detection.Category).Add(float64(len(o.Matches)))
		}
	}
}

func terminalFor(outcomes []ObjectOutcome) (store.Status, string) {
	if len(outcomes) == 0 {
		return store.StatusDone, ""
	}
	for _, o := range outcomes {
		if o.Status == store.ObjectSucceeded {
			return store.StatusDone, ""
		}
	}
	return store.StatusFailed, store.ReasonAllFailed
}

func buildObjects(analysisID uuid.UUID, outcomes []ObjectOutcome) []store.DetectedObject {
	objects := make([]store.DetectedObject, len(outcomes))
	for i, o := range outcomes {
		obj := store.DetectedObject{
			AnalysisID: analysisID,
			Category:   o.Detection.Category,
			BBoxX1:     o.Detection.Box.X1,
			BBoxY1:     o.Detection.Box.Y1,
			BBoxX2:     o.Detection.Box.X2,
			BBoxY2:     o.Detection.Box.Y2,
			Confidence: o.Detection.Confidence,
			Status:     o.Status,
			CropURL:    o.CropURL,
			Embedding:  store.Vector(o.Embedding),
			Version:    1,
			Matches:    o.Matches,
		}
		if o.FailureReason != "" {
			reason := o.FailureReason
			obj.FailureReason = &reason
		}
		objects[i] = obj
	}
	return objects
}
