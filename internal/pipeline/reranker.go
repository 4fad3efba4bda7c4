package pipeline

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/stylelens/stylelens/internal/llm"
	"github.com/stylelens/stylelens/internal/logger"
	"github.com/stylelens/stylelens/internal/store"
	"github.com/stylelens/stylelens/internal/vectorindex"
)

// Reranker orders search candidates in two stages. Stage one blends a visual
// cosine similarity, the index's own score, and an attribute-overlap score;
// stage two lets the vision model pick the best of the survivors. When the
// model is unavailable the stage-one order stands.
type Reranker struct {
	cfg    Config
	vision VisionModel
	log    logger.Logger
}

// NewReranker builds a reranker.
func NewReranker(cfg Config, vision VisionModel, log logger.Logger) *Reranker {
	return &Reranker{cfg: cfg, vision: vision, log: log}
}

type scoredMatch struct {
	match   vectorindex.Match
	visual  float64
	index   float64
	attr    float64
	blended float64
}

// Rerank produces the final ranked product matches for one object. crop may
// be nil, in which case the model stage is skipped and the hybrid order is
// final.
func (r *Reranker) Rerank(
	ctx context.Context,
	crop []byte,
	category string,
	queryVec []float32,
	attrs *llm.Attributes,
	matches []vectorindex.Match,
) ([]store.ProductMatch, string) {
	if len(matches) == 0 {
		return nil, store.RankSourceHybrid
	}

	scored := r.scoreStageOne(queryVec, attrs, matches)

	stageOne := scored
	if len(stageOne) > r.cfg.StageOneSize {
		stageOne = stageOne[:r.cfg.StageOneSize]
	}

	ranked, source := r.stageTwo(ctx, crop, category, stageOne)
	if len(ranked) > r.cfg.FinalSize {
		ranked = ranked[:r.cfg.FinalSize]
	}

	out := make([]store.ProductMatch, len(ranked))
	for i, s := range ranked {
		out[i] = store.ProductMatch{
			ProductID:        s.match.ProductID,
			VisualSimilarity: s.visual,
			IndexScore:       s.index,
			AttributeScore:   s.attr,
			BlendedScore:     s.blended,
			Rank:             i + 1,
			RankSource:       source,
		}
	}
	return out, source
}

// scoreStageOne computes the blended score for every candidate and sorts
// descending, breaking ties by lower product ID so the order is stable across
// runs. With hybrid scoring disabled, candidates are ordered by raw index
// score alone.
func (r *Reranker) scoreStageOne(queryVec []float32, attrs *llm.Attributes, matches []vectorindex.Match) []scoredMatch {
	minIdx, maxIdx := math.Inf(1), math.Inf(-1)
	for _, m := range matches {
		s := float64(m.IndexScore)
		minIdx = math.Min(minIdx, s)
		maxIdx = math.Max(maxIdx, s)
	}

	scored := make([]scoredMatch, len(matches))
	for i, m := range matches {
		// Cosine similarity mapped from [-1,1] to [0,1].
		visual := (cosine(queryVec, m.Vector) + 1) / 2

		// Index score min-max normalized across this candidate set.
		index := 0.0
		if maxIdx > minIdx {
			index = (float64(m.IndexScore) - minIdx) / (maxIdx - minIdx)
		}

		attr := attributeScore(attrs, m)

		blended := float64(m.IndexScore)
		if r.cfg.UseHybridRerank {
			blended = r.cfg.VisualWeight*visual + r.cfg.IndexWeight*index + r.cfg.AttributeWeight*attr
		}

		scored[i] = scoredMatch{match: m, visual: visual, index: index, attr: attr, blended: blended}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].blended != scored[j].blended {
			return scored[i].blended > scored[j].blended
		}
		return scored[i].match.ProductID < scored[j].match.ProductID
	})
	return scored
}

// stageTwo asks the vision model to order the survivors. Any model failure
// falls back to the stage-one order.
func (r *Reranker) stageTwo(ctx context.Context, crop []byte, category string, stageOne []scoredMatch) ([]scoredMatch, string) {
	if crop == nil || r.vision == nil {
		return stageOne, store.RankSourceHybrid
	}

	candidates := make([]llm.Candidate, len(stageOne))
	byID := make(map[string]scoredMatch, len(stageOne))
	for i, s := range stageOne {
		candidates[i] = llm.Candidate{
			ProductID: s.match.ProductID,
			Name:      s.match.Name,
			Brand:     s.match.Brand,
			Category:  s.match.Category,
			ImageURL:  s.match.ImageURL,
			Score:     s.blended,
		}
		byID[s.match.ProductID] = s
	}

	ids, err := r.vision.RerankProducts(ctx, crop, category, candidates, r.cfg.FinalSize)
	if err != nil {
		r.log.Warn("model rerank failed, keeping hybrid order", err, map[string]interface{}{
			"category": category,
		})
		return stageOne, store.RankSourceHybrid
	}

	ranked := make([]scoredMatch, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ranked = append(ranked, s)
		}
	}
	if len(ranked) == 0 {
		return stageOne, store.RankSourceHybrid
	}
	return ranked, store.RankSourceLLM
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// attributeScore is the fraction of extracted attributes the product shares.
// Nil attributes (extraction degraded) contribute zero.
func attributeScore(attrs *llm.Attributes, m vectorindex.Match) float64 {
	if attrs == nil {
		return 0
	}

	checked, matched := 0, 0

	if len(attrs.Colors) > 0 {
		checked++
		if overlaps(attrs.Colors, m.Colors) {
			matched++
		}
	}
	if len(attrs.Materials) > 0 {
		checked++
		if overlaps(attrs.Materials, m.Materials) {
			matched++
		}
	}
	if attrs.Pattern != "" {
		checked++
		if strings.EqualFold(attrs.Pattern, m.Pattern) {
			matched++
		}
	}
	if attrs.Style != "" {
		checked++
		if strings.EqualFold(attrs.Style, m.Style) {
			matched++
		}
	}

	if checked == 0 {
		return 0
	}
	return float64(matched) / float64(checked)
}

func overlaps(want, have []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(w, h) {
				return true
			}
		}
	}
	return false
}
