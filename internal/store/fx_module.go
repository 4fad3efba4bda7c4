package store

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the durable store to the fx container and manages its
// lifecycle: ping on start, drain the pool on stop.
var Module = fx.Module("store",
	fx.Provide(NewStore),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, s *Store) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Ping(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return s.Close()
		},
	})
}
