package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stylelens/stylelens/internal/adapterr"
	"github.com/stylelens/stylelens/internal/detector"
	"github.com/stylelens/stylelens/internal/imaging"
	"github.com/stylelens/stylelens/internal/llm"
	"github.com/stylelens/stylelens/internal/store"
	"github.com/stylelens/stylelens/internal/vectorindex"
)

type workerMocks struct {
	objstore *MockObjectStore
	embedder *MockEmbedder
	searcher *MockVectorSearcher
	vision   *MockVisionModel
}

func newTestWorker(t *testing.T, cfg Config) (*Worker, workerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := workerMocks{
		objstore: NewMockObjectStore(ctrl),
		embedder: NewMockEmbedder(ctrl),
		searcher: NewMockVectorSearcher(ctrl),
		vision:   NewMockVisionModel(ctrl),
	}
	reranker := NewReranker(cfg, m.vision, noopLogger{})
	w := NewWorker(cfg, m.objstore, m.embedder, m.searcher, m.vision, reranker, testMetrics(), noopLogger{})
	return w, m
}

func testDetection() detector.Detection {
	return detector.Detection{
		Category:   "top",
		Box:        imaging.Box{X1: 0.1, Y1: 0.1, X2: 0.9, Y2: 0.9},
		Confidence: 0.92,
	}
}

func TestWorkerProcessSuccess(t *testing.T) {
	cfg := testConfig()
	w, m := newTestWorker(t, cfg)

	analysisID := uuid.New()
	img := testJPEG(t, 100, 100)
	det := testDetection()
	vec := []float32{1, 0}
	attrs := &llm.Attributes{Colors: []string{"red"}}

	m.objstore.EXPECT().
		Put(gomock.Any(), fmt.Sprintf("crops/%s/0.jpg", analysisID), gomock.Any(), "image/jpeg").
		Return("https://bucket/crops/0.jpg", nil)
	m.vision.EXPECT().
		ExtractAttributes(gomock.Any(), gomock.Any(), "top").
		Return(attrs, nil)
	m.embedder.EXPECT().
		EmbedImage(gomock.Any(), gomock.Any()).
		Return(vec, nil)
	m.searcher.EXPECT().
		Search(gomock.Any(), vec, cfg.SearchLimit, &vectorindex.Filter{Category: "top"}).
		Return([]vectorindex.Match{
			{ProductID: "p1", IndexScore: 0.8, Vector: vec, Colors: []string{"red"}},
		}, nil)
	m.vision.EXPECT().
		RerankProducts(gomock.Any(), gomock.Any(), "top", gomock.Any(), cfg.FinalSize).
		Return([]string{"p1"}, nil)

	out := w.Process(context.Background(), analysisID, img, det, 0)

	assert.Equal(t, store.ObjectSucceeded, out.Status)
	assert.Empty(t, out.FailureReason)
	assert.Equal(t, "https://bucket/crops/0.jpg", out.CropURL)
	assert.Equal(t, vec, out.Embedding)
	assert.Equal(t, attrs, out.Attributes)
	require.Len(t, out.Matches, 1)
	assert.Equal(t, "p1", out.Matches[0].ProductID)
	assert.Equal(t, 1, out.Matches[0].Rank)
	assert.Equal(t, store.RankSourceLLM, out.Matches[0].RankSource)
}

func TestWorkerProcessMapsCategoryForSearch(t *testing.T) {
	cfg := testConfig()
	w, m := newTestWorker(t, cfg)

	det := testDetection()
	det.Category = "bottom"

	m.objstore.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("url", nil)
	m.vision.EXPECT().ExtractAttributes(gomock.Any(), gomock.Any(), "bottom").Return(nil, nil)
	m.embedder.EXPECT().EmbedImage(gomock.Any(), gomock.Any()).Return([]float32{1}, nil)
	m.searcher.EXPECT().
		Search(gomock.Any(), gomock.Any(), cfg.SearchLimit, &vectorindex.Filter{Category: "pants"}).
		Return(nil, nil)

	out := w.Process(context.Background(), uuid.New(), testJPEG(t, 80, 80), det, 0)

	assert.Equal(t, store.ObjectSucceeded, out.Status)
	assert.Empty(t, out.Matches, "no candidates is a valid empty result")
}

func TestWorkerProcessUploadDegrades(t *testing.T) {
	cfg := testConfig()
	w, m := newTestWorker(t, cfg)

	m.objstore.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", adapterr.Permanent("put", errors.New("bucket gone")))
	m.vision.EXPECT().ExtractAttributes(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.embedder.EXPECT().EmbedImage(gomock.Any(), gomock.Any()).Return([]float32{1}, nil)
	m.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	out := w.Process(context.Background(), uuid.New(), testJPEG(t, 80, 80), testDetection(), 0)

	assert.Equal(t, store.ObjectSucceeded, out.Status, "upload failure must not fail the object")
	assert.Empty(t, out.CropURL)
}

func TestWorkerProcessAttributesDegrade(t *testing.T) {
	cfg := testConfig()
	w, m := newTestWorker(t, cfg)

	m.objstore.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("url", nil)
	m.vision.EXPECT().
		ExtractAttributes(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, adapterr.Transient("chat", errors.New("rate limited")))
	m.embedder.EXPECT().EmbedImage(gomock.Any(), gomock.Any()).Return([]float32{1}, nil)
	m.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]vectorindex.Match{{ProductID: "p1", IndexScore: 0.8, Vector: []float32{1}}}, nil)
	m.vision.EXPECT().
		RerankProducts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]string{"p1"}, nil)

	out := w.Process(context.Background(), uuid.New(), testJPEG(t, 80, 80), testDetection(), 0)

	assert.Equal(t, store.ObjectSucceeded, out.Status)
	assert.Nil(t, out.Attributes)
	require.Len(t, out.Matches, 1)
	assert.Zero(t, out.Matches[0].AttributeScore)
}

func TestWorkerProcessEmbeddingFatal(t *testing.T) {
	cfg := testConfig()
	w, m := newTestWorker(t, cfg)

	m.objstore.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("url", nil)
	m.vision.EXPECT().ExtractAttributes(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.embedder.EXPECT().
		EmbedImage(gomock.Any(), gomock.Any()).
		Return(nil, adapterr.Permanent("embed", errors.New("bad dimension")))

	out := w.Process(context.Background(), uuid.New(), testJPEG(t, 80, 80), testDetection(), 0)

	assert.Equal(t, store.ObjectFailed, out.Status)
	assert.Equal(t, store.ReasonEmbedding, out.FailureReason)
	assert.Empty(t, out.Matches)
}

func TestWorkerProcessSearchFatal(t *testing.T) {
	cfg := testConfig()
	w, m := newTestWorker(t, cfg)

	m.objstore.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("url", nil)
	m.vision.EXPECT().ExtractAttributes(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.embedder.EXPECT().EmbedImage(gomock.Any(), gomock.Any()).Return([]float32{1}, nil)
	m.searcher.EXPECT().
		Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, adapterr.Permanent("search", errors.New("collection missing")))

	out := w.Process(context.Background(), uuid.New(), testJPEG(t, 80, 80), testDetection(), 0)

	assert.Equal(t, store.ObjectFailed, out.Status)
	assert.Equal(t, store.ReasonSearch, out.FailureReason)
}

func TestWorkerProcessExpiredContext(t *testing.T) {
	w, _ := newTestWorker(t, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := w.Process(ctx, uuid.New(), testJPEG(t, 80, 80), testDetection(), 0)

	assert.Equal(t, store.ObjectFailed, out.Status)
	assert.Equal(t, store.ReasonTimeout, out.FailureReason)
}

func TestWorkerProcessInvalidBox(t *testing.T) {
	w, _ := newTestWorker(t, testConfig())

	det := testDetection()
	det.Box = imaging.Box{X1: 0.9, Y1: 0.1, X2: 0.1, Y2: 0.9}

	out := w.Process(context.Background(), uuid.New(), testJPEG(t, 80, 80), det, 0)

	assert.Equal(t, store.ObjectFailed, out.Status)
	assert.Equal(t, store.ReasonDetection, out.FailureReason)
}
