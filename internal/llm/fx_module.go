package llm

import "go.uber.org/fx"

// Module provides the vision-language client to the fx graph.
var Module = fx.Module("llm",
	fx.Provide(NewClient),
)
