package consumer

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/stylelens/stylelens/internal/pipeline"
)

// Module runs the queue consumer for the application's lifetime.
var Module = fx.Module("consumer",
	fx.Provide(
		func(o *pipeline.Orchestrator) Runner { return o },
		NewConsumer,
	),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, c *Consumer) {
	runCtx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Run(runCtx, wg)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
