package pipeline

import (
	"go.uber.org/fx"

	"github.com/stylelens/stylelens/internal/detector"
	"github.com/stylelens/stylelens/internal/embedding"
	"github.com/stylelens/stylelens/internal/llm"
	"github.com/stylelens/stylelens/internal/objectstore"
	"github.com/stylelens/stylelens/internal/statuscache"
	"github.com/stylelens/stylelens/internal/store"
	"github.com/stylelens/stylelens/internal/vectorindex"
)

// Module wires the pipeline components and binds the concrete adapter
// clients to the narrow interfaces the pipeline consumes.
var Module = fx.Module("pipeline",
	fx.Provide(
		func(c *detector.Client) Detector { return c },
		func(c *embedding.Client) Embedder { return c },
		func(c *vectorindex.Client) VectorSearcher { return c },
		func(c *llm.Client) VisionModel { return c },
		func(c *objectstore.Client) ObjectStore { return c },
		func(c *statuscache.Cache) StatusCache { return c },
		func(s *store.Store) Repository { return s },

		NewReranker,
		NewWorker,
		NewAggregator,
		NewOrchestrator,
		NewBridge,
		NewRefiner,
	),
)
