package vectorindex

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the Qdrant client. The constructor performs the health
// check; the stop hook closes the gRPC connection.
var Module = fx.Module("vectorindex",
	fx.Provide(NewClient),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, c *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.Close()
		},
	})
}
