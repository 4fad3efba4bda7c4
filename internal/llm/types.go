package llm

// Attributes are the fashion attributes a vision model extracts from one
// cropped item image.
type Attributes struct {
	Colors    []string `json:"colors"`
	Materials []string `json:"materials"`
	Pattern   string   `json:"pattern"`
	Style     string   `json:"style"`
	Details   []string `json:"details"`
}

// Candidate is one catalog product presented to the reranking model.
type Candidate struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Category  string  `json:"category"`
	ImageURL  string  `json:"image_url"`
	Score     float64 `json:"score"`
}

// RefineHints is the structured interpretation of a free-text refinement
// query. Empty fields mean the query said nothing about that axis.
type RefineHints struct {
	Colors    []string `json:"colors"`
	Materials []string `json:"materials"`
	Pattern   string   `json:"pattern"`
	Brand     string   `json:"brand"`
	Category  string   `json:"category"`

	// PriceSort is "asc", "desc", or empty when the query does not mention
	// price.
	PriceSort string `json:"price_sort"`
}

// Empty reports whether the model extracted nothing usable from the query.
func (h RefineHints) Empty() bool {
	return len(h.Colors) == 0 && len(h.Materials) == 0 &&
		h.Pattern == "" && h.Brand == "" && h.Category == "" && h.PriceSort == ""
}
