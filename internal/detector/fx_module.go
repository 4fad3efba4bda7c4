package detector

import "go.uber.org/fx"

// Module provides the detection client to the fx graph.
var Module = fx.Module("detector",
	fx.Provide(NewClient),
)
