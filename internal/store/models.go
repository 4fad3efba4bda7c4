package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the analysis lifecycle state machine:
//
//	PENDING → RUNNING → {DONE, FAILED}
//
// There is no transition out of DONE or FAILED.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusRunning Status = "RUNNING"
	StatusDone    Status = "DONE"
	StatusFailed  Status = "FAILED"
)

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// CanTransition reports whether the state machine admits s → next.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusRunning || next == StatusDone || next == StatusFailed
	case StatusRunning:
		return next == StatusDone || next == StatusFailed
	default:
		return false
	}
}

// ObjectStatus is the per-object outcome recorded by the aggregator.
type ObjectStatus string

const (
	ObjectSucceeded ObjectStatus = "succeeded"
	ObjectFailed    ObjectStatus = "failed"
)

// Failure reason categories surfaced to clients. Raw adapter error text never
// leaves the service.
const (
	ReasonDetection   = "detection"
	ReasonUpload      = "upload"
	ReasonEmbedding   = "embedding"
	ReasonSearch      = "search"
	ReasonRerank      = "rerank"
	ReasonPersistence = "persistence"
	ReasonTimeout     = "timeout"
	ReasonAllFailed   = "all_objects_failed"
)

// RankSource records which rerank stage produced the final ordering.
const (
	RankSourceHybrid = "hybrid"
	RankSourceLLM    = "llm"
)

// Vector stores an embedding as a JSON array column. Postgres jsonb keeps the
// row self-contained; the similarity search itself lives in Qdrant, so the
// stored copy only serves the refine workflow.
type Vector []float32

// Value implements driver.Valuer.
func (v Vector) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// Scan implements sql.Scanner.
func (v *Vector) Scan(src interface{}) error {
	if src == nil {
		*v = nil
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	default:
		return fmt.Errorf("cannot scan %T into Vector", src)
	}
}

// Analysis is one submitted image. Rows are never deleted, only soft-marked.
type Analysis struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        *int64    `gorm:"index"`
	ImageURL      string
	Status        Status `gorm:"type:varchar(16);index"`
	FailureReason string `gorm:"type:varchar(32)"`
	RefineQuery   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	IsDeleted     bool `gorm:"default:false"`

	Objects []DetectedObject `gorm:"foreignKey:AnalysisID"`
}

func (Analysis) TableName() string { return "analyses" }

// DetectedObject is one bounding region within an Analysis. Immutable once
// persisted; the refine workflow appends a new, higher-Version row and marks
// the old one superseded instead of mutating in place.
type DetectedObject struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AnalysisID uuid.UUID `gorm:"type:uuid;index"`
	Category   string    `gorm:"type:varchar(32)"`

	// Normalized bounding box, x1<x2 and y1<y2, all in [0,1].
	BBoxX1 float64
	BBoxY1 float64
	BBoxX2 float64
	BBoxY2 float64

	Confidence    float64
	Status        ObjectStatus `gorm:"type:varchar(16)"`
	FailureReason *string      `gorm:"type:varchar(32)"`
	CropURL       string
	Embedding     Vector `gorm:"type:jsonb"`

	// Refine history. Version starts at 1; SupersededBy points at the row
	// that replaced this one.
	Version      int        `gorm:"default:1"`
	SupersededBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time

	Matches []ProductMatch `gorm:"foreignKey:DetectedObjectID"`
}

func (DetectedObject) TableName() string { return "detected_objects" }

// Box returns the normalized bounding box.
func (o *DetectedObject) Box() (x1, y1, x2, y2 float64) {
	return o.BBoxX1, o.BBoxY1, o.BBoxX2, o.BBoxY2
}

// ProductMatch is one ranked product suggestion for a DetectedObject.
// Candidates of one object are totally ordered by Rank starting at 1 with no
// gaps. Never mutated, only superseded by a new run's rows.
type ProductMatch struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	DetectedObjectID uuid.UUID `gorm:"type:uuid;index"`
	ProductID        string    `gorm:"type:varchar(64);index"`

	VisualSimilarity float64
	IndexScore       float64
	AttributeScore   float64
	BlendedScore     float64

	Rank       int
	RankSource string `gorm:"type:varchar(8)"`

	CreatedAt time.Time
}

func (ProductMatch) TableName() string { return "product_matches" }
