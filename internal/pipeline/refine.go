package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/stylelens/stylelens/internal/llm"
	"github.com/stylelens/stylelens/internal/logger"
	"github.com/stylelens/stylelens/internal/store"
	"github.com/stylelens/stylelens/internal/vectorindex"
)

// Refiner re-runs the search and rerank stages for one detected object with
// constraints parsed from a free-text query. The refined result is appended
// as a new object version; the original row, its siblings, and the overall
// analysis status are untouched.
type Refiner struct {
	cfg      Config
	repo     Repository
	vision   VisionModel
	searcher VectorSearcher
	objstore ObjectStore
	reranker *Reranker
	log      logger.Logger
}

// NewRefiner builds a refiner.
func NewRefiner(
	cfg Config,
	repo Repository,
	vision VisionModel,
	searcher VectorSearcher,
	objstore ObjectStore,
	reranker *Reranker,
	log logger.Logger,
) *Refiner {
	return &Refiner{
		cfg:      cfg,
		repo:     repo,
		vision:   vision,
		searcher: searcher,
		objstore: objstore,
		reranker: reranker,
		log:      log,
	}
}

// Refine produces a new version of the object ranked under the query's
// constraints. The stored embedding is reused, so no detection or embedding
// service round-trips happen here.
func (r *Refiner) Refine(ctx context.Context, analysisID, objectID uuid.UUID, query string) (*store.DetectedObject, error) {
	obj, err := r.validate(ctx, analysisID, objectID)
	if err != nil {
		return nil, err
	}

	hints, err := r.parseQuery(ctx, query, obj.Category)
	if err != nil {
		return nil, err
	}

	category := obj.Category
	if hints.Category != "" {
		category = hints.Category
	}

	filter := &vectorindex.Filter{
		Category:  normalizeCategory(category),
		Brand:     hints.Brand,
		Colors:    hints.Colors,
		Materials: hints.Materials,
		Pattern:   hints.Pattern,
	}

	var matches []vectorindex.Match
	err = retryTransient(ctx, r.cfg.RetryAttempts, func() error {
		var searchErr error
		matches, searchErr = r.searcher.Search(ctx, []float32(obj.Embedding), r.cfg.SearchLimit, filter)
		return searchErr
	})
	if err != nil {
		return nil, fmt.Errorf("refine: search: %w", err)
	}

	// The crop feeds the model rerank stage. Without one (upload degraded
	// on the original run) the hybrid order stands.
	var crop []byte
	if obj.CropURL != "" {
		if crop, err = r.objstore.Get(ctx, obj.CropURL); err != nil {
			r.log.Warn("crop unavailable for refine, skipping model rerank", err, map[string]interface{}{
				"object_id": objectID.String(),
			})
			crop = nil
		}
	}

	ranked, _ := r.reranker.Rerank(ctx, crop, category, []float32(obj.Embedding), hintAttributes(hints), matches)
	ranked = applyPriceSort(ranked, matches, hints.PriceSort)

	refined := &store.DetectedObject{
		AnalysisID: analysisID,
		Category:   obj.Category,
		BBoxX1:     obj.BBoxX1,
		BBoxY1:     obj.BBoxY1,
		BBoxX2:     obj.BBoxX2,
		BBoxY2:     obj.BBoxY2,
		Confidence: obj.Confidence,
		Status:     store.ObjectSucceeded,
		CropURL:    obj.CropURL,
		Embedding:  obj.Embedding,
		Version:    obj.Version + 1,
		Matches:    ranked,
	}

	if err := r.repo.AppendRefinedObject(ctx, objectID, refined); err != nil {
		return nil, fmt.Errorf("refine: append version: %w", err)
	}
	if err := r.repo.RecordRefineQuery(ctx, analysisID, query); err != nil {
		r.log.Warn("refine query not recorded", err, map[string]interface{}{
			"analysis_id": analysisID.String(),
		})
	}
	return refined, nil
}

// validate enforces the refine preconditions: the analysis exists and has
// reached a terminal state, the object belongs to it, is the current version,
// and carries an embedding to search with.
func (r *Refiner) validate(ctx context.Context, analysisID, objectID uuid.UUID) (*store.DetectedObject, error) {
	a, err := r.repo.GetAnalysis(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if !a.Status.Terminal() {
		return nil, fmt.Errorf("%w: analysis %s is still %s", ErrValidation, analysisID, a.Status)
	}

	obj, err := r.repo.GetDetectedObject(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if obj.AnalysisID != analysisID {
		return nil, fmt.Errorf("%w: object %s does not belong to analysis %s", ErrValidation, objectID, analysisID)
	}
	if obj.SupersededBy != nil {
		return nil, fmt.Errorf("%w: object %s is superseded", ErrValidation, objectID)
	}
	if obj.Status != store.ObjectSucceeded || len(obj.Embedding) == 0 {
		return nil, fmt.Errorf("%w: object %s has no embedding to refine against", ErrValidation, objectID)
	}
	return obj, nil
}

func (r *Refiner) parseQuery(ctx context.Context, query, category string) (*llm.RefineHints, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty refine query", ErrValidation)
	}

	var hints *llm.RefineHints
	err := retryTransient(ctx, r.cfg.RetryAttempts, func() error {
		var parseErr error
		hints, parseErr = r.vision.ParseRefineQuery(ctx, query, category)
		return parseErr
	})
	if err != nil {
		return nil, fmt.Errorf("refine: parse query: %w", err)
	}
	return hints, nil
}

// hintAttributes turns the parsed constraints into attributes for the
// reranker's attribute-overlap term, so candidates matching the query rank
// higher even within the filtered set.
func hintAttributes(hints *llm.RefineHints) *llm.Attributes {
	if hints == nil || hints.Empty() {
		return nil
	}
	return &llm.Attributes{
		Colors:    hints.Colors,
		Materials: hints.Materials,
		Pattern:   hints.Pattern,
	}
}

// applyPriceSort reorders the final candidates by catalog price when the
// query asked for it, reassigning ranks to stay gap-free.
func applyPriceSort(ranked []store.ProductMatch, matches []vectorindex.Match, direction string) []store.ProductMatch {
	if direction != "asc" && direction != "desc" {
		return ranked
	}

	price := make(map[string]float64, len(matches))
	for _, m := range matches {
		price[m.ProductID] = m.Price
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := price[ranked[i].ProductID], price[ranked[j].ProductID]
		if direction == "asc" {
			return pi < pj
		}
		return pi > pj
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
