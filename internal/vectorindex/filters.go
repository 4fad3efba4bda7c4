package vectorindex

import (
	qdrant "github.com/qdrant/go-client/qdrant"
)

// buildFilter converts a Filter into the Qdrant wire representation.
// Returns nil when the filter imposes no constraints, which tells Qdrant to
// skip filtering entirely.
func buildFilter(f *Filter) *qdrant.Filter {
	if f.Empty() {
		return nil
	}

	var must []*qdrant.Condition

	if f.Category != "" {
		must = append(must, qdrant.NewMatch("category", f.Category))
	}
	if f.Brand != "" {
		must = append(must, qdrant.NewMatch("brand", f.Brand))
	}
	if len(f.Colors) > 0 {
		must = append(must, qdrant.NewMatchKeywords("colors", f.Colors...))
	}
	if len(f.Materials) > 0 {
		must = append(must, qdrant.NewMatchKeywords("materials", f.Materials...))
	}
	if f.Pattern != "" {
		must = append(must, qdrant.NewMatch("pattern", f.Pattern))
	}

	if len(must) == 0 {
		return nil
	}
	return &qdrant.Filter{Must: must}
}
