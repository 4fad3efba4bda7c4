package statuscache

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the status cache to the fx container: ping on start, close
// on stop.
var Module = fx.Module("statuscache",
	fx.Provide(NewCache),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, c *Cache) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return c.Ping(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return c.Close()
		},
	})
}
