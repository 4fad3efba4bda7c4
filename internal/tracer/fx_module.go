package tracer

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the tracer and flushes spans on shutdown.
var Module = fx.Module("tracer",
	fx.Provide(NewClient),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, t *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			t.log.Info("shutting down tracer", nil, nil)
			return t.provider.Shutdown(ctx)
		},
	})
}
