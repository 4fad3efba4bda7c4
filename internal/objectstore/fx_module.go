package objectstore

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the object store and ensures the bucket exists at startup.
var Module = fx.Module("objectstore",
	fx.Provide(NewClient),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, c *Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return c.EnsureBucket(ctx)
		},
	})
}
