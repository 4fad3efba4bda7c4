package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stylelens/stylelens/internal/llm"
	"github.com/stylelens/stylelens/internal/store"
	"github.com/stylelens/stylelens/internal/vectorindex"
)

type refinerMocks struct {
	repo     *MockRepository
	vision   *MockVisionModel
	searcher *MockVectorSearcher
	objstore *MockObjectStore
}

func newTestRefiner(t *testing.T, cfg Config) (*Refiner, refinerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := refinerMocks{
		repo:     NewMockRepository(ctrl),
		vision:   NewMockVisionModel(ctrl),
		searcher: NewMockVectorSearcher(ctrl),
		objstore: NewMockObjectStore(ctrl),
	}
	reranker := NewReranker(cfg, m.vision, noopLogger{})
	r := NewRefiner(cfg, m.repo, m.vision, m.searcher, m.objstore, reranker, noopLogger{})
	return r, m
}

func refinableObject(analysisID uuid.UUID) *store.DetectedObject {
	return &store.DetectedObject{
		ID:         uuid.New(),
		AnalysisID: analysisID,
		Category:   "top",
		BBoxX1:     0.1, BBoxY1: 0.1, BBoxX2: 0.9, BBoxY2: 0.9,
		Confidence: 0.9,
		Status:     store.ObjectSucceeded,
		CropURL:    "crops/a/0.jpg",
		Embedding:  store.Vector{1, 0},
		Version:    1,
	}
}

func TestRefineAppendsNewVersion(t *testing.T) {
	cfg := testConfig()
	r, m := newTestRefiner(t, cfg)

	analysisID := uuid.New()
	obj := refinableObject(analysisID)
	hints := &llm.RefineHints{Colors: []string{"red"}}

	m.repo.EXPECT().GetAnalysis(gomock.Any(), analysisID).
		Return(&store.Analysis{ID: analysisID, Status: store.StatusDone}, nil)
	m.repo.EXPECT().GetDetectedObject(gomock.Any(), obj.ID).Return(obj, nil)
	m.vision.EXPECT().ParseRefineQuery(gomock.Any(), "in red please", "top").Return(hints, nil)
	m.searcher.EXPECT().
		Search(gomock.Any(), []float32{1, 0}, cfg.SearchLimit,
			&vectorindex.Filter{Category: "top", Colors: []string{"red"}}).
		Return([]vectorindex.Match{
			{ProductID: "p1", IndexScore: 0.8, Vector: []float32{1, 0}, Colors: []string{"red"}},
			{ProductID: "p2", IndexScore: 0.6, Vector: []float32{0, 1}, Colors: []string{"red"}},
		}, nil)
	m.objstore.EXPECT().Get(gomock.Any(), obj.CropURL).Return([]byte("crop"), nil)
	m.vision.EXPECT().
		RerankProducts(gomock.Any(), []byte("crop"), "top", gomock.Any(), cfg.FinalSize).
		Return([]string{"p2", "p1"}, nil)
	m.repo.EXPECT().
		AppendRefinedObject(gomock.Any(), obj.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, refined *store.DetectedObject) error {
			assert.Equal(t, analysisID, refined.AnalysisID)
			assert.Equal(t, 2, refined.Version)
			assert.Equal(t, obj.Embedding, refined.Embedding, "stored embedding is reused")
			require.Len(t, refined.Matches, 2)
			assert.Equal(t, "p2", refined.Matches[0].ProductID)
			assert.Equal(t, 1, refined.Matches[0].Rank)
			return nil
		})
	m.repo.EXPECT().RecordRefineQuery(gomock.Any(), analysisID, "in red please").Return(nil)

	refined, err := r.Refine(context.Background(), analysisID, obj.ID, "in red please")

	require.NoError(t, err)
	assert.Equal(t, 2, refined.Version)
}

func TestRefineCategoryOverrideFiltersButKeepsObjectCategory(t *testing.T) {
	cfg := testConfig()
	r, m := newTestRefiner(t, cfg)

	analysisID := uuid.New()
	obj := refinableObject(analysisID)
	obj.CropURL = ""

	m.repo.EXPECT().GetAnalysis(gomock.Any(), analysisID).
		Return(&store.Analysis{ID: analysisID, Status: store.StatusDone}, nil)
	m.repo.EXPECT().GetDetectedObject(gomock.Any(), obj.ID).Return(obj, nil)
	m.vision.EXPECT().ParseRefineQuery(gomock.Any(), gomock.Any(), "top").
		Return(&llm.RefineHints{Category: "outerwear"}, nil)
	m.searcher.EXPECT().
		Search(gomock.Any(), gomock.Any(), cfg.SearchLimit,
			&vectorindex.Filter{Category: "outer"}).
		Return([]vectorindex.Match{{ProductID: "p1", IndexScore: 0.8, Vector: []float32{1, 0}}}, nil)
	m.repo.EXPECT().
		AppendRefinedObject(gomock.Any(), obj.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, refined *store.DetectedObject) error {
			assert.Equal(t, "top", refined.Category, "the detected category is a fact about the image")
			return nil
		})
	m.repo.EXPECT().RecordRefineQuery(gomock.Any(), analysisID, gomock.Any()).Return(nil)

	_, err := r.Refine(context.Background(), analysisID, obj.ID, "show me jackets instead")
	require.NoError(t, err)
}

func TestRefinePriceSortReordersRanks(t *testing.T) {
	cfg := testConfig()
	r, m := newTestRefiner(t, cfg)

	analysisID := uuid.New()
	obj := refinableObject(analysisID)
	obj.CropURL = ""

	m.repo.EXPECT().GetAnalysis(gomock.Any(), analysisID).
		Return(&store.Analysis{ID: analysisID, Status: store.StatusDone}, nil)
	m.repo.EXPECT().GetDetectedObject(gomock.Any(), obj.ID).Return(obj, nil)
	m.vision.EXPECT().ParseRefineQuery(gomock.Any(), gomock.Any(), "top").
		Return(&llm.RefineHints{PriceSort: "asc"}, nil)
	m.searcher.EXPECT().
		Search(gomock.Any(), gomock.Any(), cfg.SearchLimit, gomock.Any()).
		Return([]vectorindex.Match{
			{ProductID: "expensive", IndexScore: 0.9, Vector: []float32{1, 0}, Price: 300},
			{ProductID: "cheap", IndexScore: 0.5, Vector: []float32{1, 0}, Price: 20},
			{ProductID: "mid", IndexScore: 0.7, Vector: []float32{1, 0}, Price: 80},
		}, nil)
	m.repo.EXPECT().
		AppendRefinedObject(gomock.Any(), obj.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, refined *store.DetectedObject) error {
			require.Len(t, refined.Matches, 3)
			assert.Equal(t, []string{"cheap", "mid", "expensive"}, []string{
				refined.Matches[0].ProductID,
				refined.Matches[1].ProductID,
				refined.Matches[2].ProductID,
			})
			assert.Equal(t, []int{1, 2, 3}, []int{
				refined.Matches[0].Rank,
				refined.Matches[1].Rank,
				refined.Matches[2].Rank,
			})
			return nil
		})
	m.repo.EXPECT().RecordRefineQuery(gomock.Any(), analysisID, gomock.Any()).Return(nil)

	_, err := r.Refine(context.Background(), analysisID, obj.ID, "cheapest first")
	require.NoError(t, err)
}

func TestRefineCropFetchFailureSkipsModelStage(t *testing.T) {
	cfg := testConfig()
	r, m := newTestRefiner(t, cfg)

	analysisID := uuid.New()
	obj := refinableObject(analysisID)

	m.repo.EXPECT().GetAnalysis(gomock.Any(), analysisID).
		Return(&store.Analysis{ID: analysisID, Status: store.StatusDone}, nil)
	m.repo.EXPECT().GetDetectedObject(gomock.Any(), obj.ID).Return(obj, nil)
	m.vision.EXPECT().ParseRefineQuery(gomock.Any(), gomock.Any(), "top").
		Return(&llm.RefineHints{Colors: []string{"blue"}}, nil)
	m.searcher.EXPECT().
		Search(gomock.Any(), gomock.Any(), cfg.SearchLimit, gomock.Any()).
		Return([]vectorindex.Match{{ProductID: "p1", IndexScore: 0.8, Vector: []float32{1, 0}}}, nil)
	m.objstore.EXPECT().Get(gomock.Any(), obj.CropURL).
		Return(nil, errors.New("object expired"))
	// No RerankProducts expectation: without a crop the hybrid order stands.
	m.repo.EXPECT().
		AppendRefinedObject(gomock.Any(), obj.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, refined *store.DetectedObject) error {
			require.Len(t, refined.Matches, 1)
			assert.Equal(t, store.RankSourceHybrid, refined.Matches[0].RankSource)
			return nil
		})
	m.repo.EXPECT().RecordRefineQuery(gomock.Any(), analysisID, gomock.Any()).Return(nil)

	_, err := r.Refine(context.Background(), analysisID, obj.ID, "in blue")
	require.NoError(t, err)
}

func TestRefineValidation(t *testing.T) {
	cfg := testConfig()
	analysisID := uuid.New()

	t.Run("analysis still running", func(t *testing.T) {
		r, m := newTestRefiner(t, cfg)
		m.repo.EXPECT().GetAnalysis(gomock.Any(), analysisID).
			Return(&store.Analysis{ID: analysisID, Status: store.StatusRunning}, nil)

		_, err := r.Refine(context.Background(), analysisID, uuid.New(), "in red")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("analysis not found", func(t *testing.T) {
		r, m := newTestRefiner(t, cfg)
		m.repo.EXPECT().GetAnalysis(gomock.Any(), analysisID).Return(nil, store.ErrNotFound)

		_, err := r.Refine(context.Background(), analysisID, uuid.New(), "in red")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("object from another analysis", func(t *testing.T) {
		r, m := newTestRefiner(t, cfg)
		obj := refinableObject(uuid.New())
		m.repo.EXPECT().GetAnalysis(gomock.Any(), analysisID).
			Return(&store.Analysis{ID: analysisID, Status: store.StatusDone}, nil)
		m.repo.EXPECT().GetDetectedObject(gomock.Any(), obj.ID).Return(obj, nil)

		_, err := r.Refine(context.Background(), analysisID, obj.ID, "in red")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("superseded object", func(t *testing.T) {
		r, m := newTestRefiner(t, cfg)
		obj := refinableObject(analysisID)
		newer := uuid.New()
		obj.SupersededBy = &newer
		m.repo.EXPECT().GetAnalysis(gomock.Any(), analysisID).
			Return(&store.Analysis{ID: analysisID, Status: store.StatusDone}, nil)
		m.repo.EXPECT().GetDetectedObject(gomock.Any(), obj.ID).Return(obj, nil)

		_, err := r.Refine(context.Background(), analysisID, obj.ID, "in red")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("failed object has no embedding", func(t *testing.T) {
		r, m := newTestRefiner(t, cfg)
		obj := refinableObject(analysisID)
		obj.Status = store.ObjectFailed
		obj.Embedding = nil
		m.repo.EXPECT().GetAnalysis(gomock.Any(), analysisID).
			Return(&store.Analysis{ID: analysisID, Status: store.StatusDone}, nil)
		m.repo.EXPECT().GetDetectedObject(gomock.Any(), obj.ID).Return(obj, nil)

		_, err := r.Refine(context.Background(), analysisID, obj.ID, "in red")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty query", func(t *testing.T) {
		r, m := newTestRefiner(t, cfg)
		obj := refinableObject(analysisID)
		m.repo.EXPECT().GetAnalysis(gomock.Any(), analysisID).
			Return(&store.Analysis{ID: analysisID, Status: store.StatusDone}, nil)
		m.repo.EXPECT().GetDetectedObject(gomock.Any(), obj.ID).Return(obj, nil)

		_, err := r.Refine(context.Background(), analysisID, obj.ID, "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestRefineQueryRecordFailureIsBestEffort(t *testing.T) {
	cfg := testConfig()
	r, m := newTestRefiner(t, cfg)

	analysisID := uuid.New()
	obj := refinableObject(analysisID)
	obj.CropURL = ""

	m.repo.EXPECT().GetAnalysis(gomock.Any(), analysisID).
		Return(&store.Analysis{ID: analysisID, Status: store.StatusDone}, nil)
	m.repo.EXPECT().GetDetectedObject(gomock.Any(), obj.ID).Return(obj, nil)
	m.vision.EXPECT().ParseRefineQuery(gomock.Any(), gomock.Any(), "top").
		Return(&llm.RefineHints{Colors: []string{"red"}}, nil)
	m.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), cfg.SearchLimit, gomock.Any()).
		Return([]vectorindex.Match{{ProductID: "p1", IndexScore: 0.8, Vector: []float32{1, 0}}}, nil)
	m.repo.EXPECT().AppendRefinedObject(gomock.Any(), obj.ID, gomock.Any()).Return(nil)
	m.repo.EXPECT().RecordRefineQuery(gomock.Any(), analysisID, gomock.Any()).
		Return(errors.New("column dropped"))

	refined, err := r.Refine(context.Background(), analysisID, obj.ID, "in red")

	require.NoError(t, err, "the appended version is already durable")
	assert.Equal(t, 2, refined.Version)
}
