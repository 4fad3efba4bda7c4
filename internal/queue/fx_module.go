package queue

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

// Module provides the job queue client and ties the reconnect loop to the
// application lifecycle.
var Module = fx.Module("queue",
	fx.Provide(NewClient),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, client *Client) {
	wg := &sync.WaitGroup{}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				client.RetryConnection()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			client.GracefulShutdown()
			wg.Wait()
			return nil
		},
	})
}
