package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stylelens/stylelens/internal/statuscache"
	"github.com/stylelens/stylelens/internal/store"
)

func newTestBridge(t *testing.T) (*Bridge, *MockStatusCache, *MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	cache := NewMockStatusCache(ctrl)
	repo := NewMockRepository(ctrl)
	return NewBridge(cache, repo, noopLogger{}), cache, repo
}

func TestGetStatusCacheHit(t *testing.T) {
	b, cache, _ := newTestBridge(t)
	id := uuid.New()
	now := time.Now()

	cache.EXPECT().GetState(gomock.Any(), id.String()).
		Return(&statuscache.StatusRecord{Status: "RUNNING", Progress: 40, UpdatedAt: now}, nil)

	view, err := b.GetStatus(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "RUNNING", view.Status)
	require.NotNil(t, view.Progress)
	assert.Equal(t, 40, *view.Progress)
	require.NotNil(t, view.UpdatedAt)
	assert.Equal(t, now, *view.UpdatedAt)
}

func TestGetStatusCacheMissTerminalFallback(t *testing.T) {
	b, cache, repo := newTestBridge(t)
	id := uuid.New()

	cache.EXPECT().GetState(gomock.Any(), id.String()).Return(nil, statuscache.ErrMiss)
	repo.EXPECT().GetAnalysis(gomock.Any(), id).
		Return(&store.Analysis{ID: id, Status: store.StatusDone, UpdatedAt: time.Now()}, nil)

	view, err := b.GetStatus(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, string(store.StatusDone), view.Status)
	require.NotNil(t, view.Progress, "terminal states are complete by definition")
	assert.Equal(t, 100, *view.Progress)
}

func TestGetStatusCacheMissNonTerminalFallback(t *testing.T) {
	b, cache, repo := newTestBridge(t)
	id := uuid.New()

	cache.EXPECT().GetState(gomock.Any(), id.String()).Return(nil, statuscache.ErrMiss)
	repo.EXPECT().GetAnalysis(gomock.Any(), id).
		Return(&store.Analysis{ID: id, Status: store.StatusPending}, nil)

	view, err := b.GetStatus(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, string(store.StatusPending), view.Status)
	assert.Nil(t, view.Progress, "no progress claim without a cache record")
}

func TestGetStatusCacheErrorFallsBack(t *testing.T) {
	b, cache, repo := newTestBridge(t)
	id := uuid.New()

	cache.EXPECT().GetState(gomock.Any(), id.String()).Return(nil, errors.New("redis down"))
	repo.EXPECT().GetAnalysis(gomock.Any(), id).
		Return(&store.Analysis{ID: id, Status: store.StatusRunning}, nil)

	view, err := b.GetStatus(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, string(store.StatusRunning), view.Status)
}

func TestGetStatusUnknownAnalysis(t *testing.T) {
	b, cache, repo := newTestBridge(t)
	id := uuid.New()

	cache.EXPECT().GetState(gomock.Any(), id.String()).Return(nil, statuscache.ErrMiss)
	repo.EXPECT().GetAnalysis(gomock.Any(), id).Return(nil, store.ErrNotFound)

	_, err := b.GetStatus(context.Background(), id)

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetResults(t *testing.T) {
	b, _, repo := newTestBridge(t)
	id := uuid.New()

	repo.EXPECT().GetResults(gomock.Any(), id).
		Return(&store.Analysis{ID: id, Status: store.StatusDone}, nil)

	a, complete, err := b.GetResults(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, complete)
	assert.Equal(t, id, a.ID)
}

func TestGetResultsInFlight(t *testing.T) {
	b, _, repo := newTestBridge(t)
	id := uuid.New()

	repo.EXPECT().GetResults(gomock.Any(), id).
		Return(&store.Analysis{ID: id, Status: store.StatusRunning}, nil)

	_, complete, err := b.GetResults(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, complete)
}
