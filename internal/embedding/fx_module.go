package embedding

import "go.uber.org/fx"

// Module provides the embedding client to the fx graph.
var Module = fx.Module("embedding",
	fx.Provide(NewClient),
)
