package pipeline

import (
	"errors"

	"github.com/stylelens/stylelens/internal/detector"
	"github.com/stylelens/stylelens/internal/llm"
	"github.com/stylelens/stylelens/internal/store"
)

// ErrValidation marks request errors the HTTP layer maps to 4xx responses.
var ErrValidation = errors.New("pipeline: validation")

// ObjectOutcome is the result of processing one detected object. Failed
// outcomes carry a coarse reason code instead of raw adapter error text.
type ObjectOutcome struct {
	Detection detector.Detection

	Status        store.ObjectStatus
	FailureReason string

	// Populated only for succeeded outcomes. CropURL may be empty when the
	// upload stage degraded.
	CropURL    string
	Embedding  []float32
	Attributes *llm.Attributes
	Matches    []store.ProductMatch
}

func failedOutcome(det detector.Detection, reason string) ObjectOutcome {
	return ObjectOutcome{
		Detection:     det,
		Status:        store.ObjectFailed,
		FailureReason: reason,
	}
}

// categoryMapping normalizes detector categories to the catalog taxonomy
// before search.
var categoryMapping = map[string]string{
	"bottom":    "pants",
	"outerwear": "outer",
}

func normalizeCategory(category string) string {
	if mapped, ok := categoryMapping[category]; ok {
		return mapped
	}
	return category
}
