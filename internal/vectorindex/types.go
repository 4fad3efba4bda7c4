package vectorindex

// Match is one product returned by the similarity search, together with the
// catalog attributes and stored embedding the reranker scores against.
type Match struct {
	// ProductID is the catalog identifier of the matched product.
	ProductID string

	// IndexScore is the index's native relevance score for the query
	// vector (cosine similarity for our collections). Raw, not yet
	// normalized across the candidate set.
	IndexScore float32

	// Vector is the stored product embedding, used for the reranker's
	// visual-similarity term.
	Vector []float32

	// Catalog attributes from the point payload.
	Name      string
	Brand     string
	Category  string
	Colors    []string
	Materials []string
	Pattern   string
	Style     string
	ImageURL  string
	Price     float64
}

// Filter restricts a similarity search to products matching discrete
// attributes. Zero-valued fields impose no constraint.
type Filter struct {
	// Category restricts to one normalized catalog category.
	Category string

	// Brand requires an exact keyword match on the brand field.
	Brand string

	// Colors requires the product to carry at least one of the given
	// colors.
	Colors []string

	// Materials requires at least one of the given materials.
	Materials []string

	// Pattern requires an exact pattern match.
	Pattern string
}

// Empty reports whether the filter imposes no constraints.
func (f *Filter) Empty() bool {
	return f == nil ||
		(f.Category == "" && f.Brand == "" && len(f.Colors) == 0 &&
			len(f.Materials) == 0 && f.Pattern == "")
}
