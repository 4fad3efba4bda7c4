package logger

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the Logger to the fx container and flushes buffered
// entries on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.Module,
//	    fx.Provide(func() logger.Config { return cfg.Logger }),
//	    // other modules...
//	)
var Module = fx.Module("logger",
	fx.Provide(
		NewClient,
		func(c *Client) Logger { return c },
	),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync can fail on stderr; the logs are already out.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
