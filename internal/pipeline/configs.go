package pipeline

import "time"

// Config holds the pipeline tuning parameters.
type Config struct {
	// WorkerConcurrency caps how many detected objects are processed in
	// parallel within one analysis.
	WorkerConcurrency int `yaml:"worker_concurrency" env:"PIPELINE_WORKER_CONCURRENCY"`

	// AnalysisTimeout is the deadline for one full analysis run. Workers
	// still in flight when it fires are counted as failed with reason
	// "timeout".
	AnalysisTimeout time.Duration `yaml:"analysis_timeout" env:"PIPELINE_ANALYSIS_TIMEOUT"`

	// SearchLimit is the K of the vector search.
	SearchLimit int `yaml:"search_limit" env:"PIPELINE_SEARCH_LIMIT"`

	// StageOneSize is how many candidates survive the hybrid scoring
	// stage and are shown to the reranking model.
	StageOneSize int `yaml:"stage_one_size" env:"PIPELINE_STAGE_ONE_SIZE"`

	// FinalSize is how many candidates are persisted per object.
	FinalSize int `yaml:"final_size" env:"PIPELINE_FINAL_SIZE"`

	// CropPadding expands each bounding box by this ratio of its own size
	// before cropping, clamped to the image bounds.
	CropPadding float64 `yaml:"crop_padding" env:"PIPELINE_CROP_PADDING"`

	// UseHybridRerank enables the score-blending first stage. When false,
	// candidates go to the reranking model ordered by raw index score.
	UseHybridRerank bool `yaml:"use_hybrid_rerank" env:"PIPELINE_USE_HYBRID_RERANK"`

	// RetryAttempts is how often a transient stage failure is attempted in
	// total, including the first try.
	RetryAttempts int `yaml:"retry_attempts" env:"PIPELINE_RETRY_ATTEMPTS"`

	// Blend weights of the hybrid scoring stage. They should sum to 1.
	VisualWeight    float64 `yaml:"visual_weight" env:"PIPELINE_VISUAL_WEIGHT"`
	IndexWeight     float64 `yaml:"index_weight" env:"PIPELINE_INDEX_WEIGHT"`
	AttributeWeight float64 `yaml:"attribute_weight" env:"PIPELINE_ATTRIBUTE_WEIGHT"`
}

// DefaultConfig returns the tuned production parameters.
func DefaultConfig() Config {
	return Config{
		WorkerConcurrency: 4,
		AnalysisTimeout:   5 * time.Minute,
		SearchLimit:       30,
		StageOneSize:      15,
		FinalSize:         5,
		CropPadding:       0.25,
		UseHybridRerank:   true,
		RetryAttempts:     3,
		VisualWeight:      0.70,
		IndexWeight:       0.15,
		AttributeWeight:   0.15,
	}
}
