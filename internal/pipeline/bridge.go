package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stylelens/stylelens/internal/logger"
	"github.com/stylelens/stylelens/internal/statuscache"
	"github.com/stylelens/stylelens/internal/store"
)

// StatusView is the poll answer for one analysis. Progress is nil when the
// cache record expired and only the durable status is known.
type StatusView struct {
	Status    string     `json:"status"`
	Progress  *int       `json:"progress,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Bridge answers status polls from the fast cache and falls back to the
// durable store when the projection is gone.
type Bridge struct {
	cache StatusCache
	repo  Repository
	log   logger.Logger
}

// NewBridge builds a bridge.
func NewBridge(cache StatusCache, repo Repository, log logger.Logger) *Bridge {
	return &Bridge{cache: cache, repo: repo, log: log}
}

// GetStatus returns the current state of an analysis. Cache hits carry
// progress; durable fallbacks report progress only for terminal states,
// where it is 100 by definition.
func (b *Bridge) GetStatus(ctx context.Context, analysisID uuid.UUID) (*StatusView, error) {
	rec, err := b.cache.GetState(ctx, analysisID.String())
	if err == nil {
		return &StatusView{
			Status:    rec.Status,
			Progress:  &rec.Progress,
			UpdatedAt: &rec.UpdatedAt,
		}, nil
	}
	if !errors.Is(err, statuscache.ErrMiss) {
		b.log.Warn("status cache read failed, using durable store", err, map[string]interface{}{
			"analysis_id": analysisID.String(),
		})
	}

	a, err := b.repo.GetAnalysis(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	view := &StatusView{Status: string(a.Status), UpdatedAt: &a.UpdatedAt}
	if a.Status.Terminal() {
		full := 100
		view.Progress = &full
	}
	return view, nil
}

// GetResults returns the analysis with its current objects. complete is
// false while the analysis is still in flight, in which case the object set
// reflects only what has been durably written so far.
func (b *Bridge) GetResults(ctx context.Context, analysisID uuid.UUID) (a *store.Analysis, complete bool, err error) {
	a, err = b.repo.GetResults(ctx, analysisID)
	if err != nil {
		return nil, false, err
	}
	return a, a.Status.Terminal(), nil
}
