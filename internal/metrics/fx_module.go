package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/stylelens/stylelens/internal/logger"
)

// Module provides the metrics set and runs its HTTP listener for the
// application's lifetime.
var Module = fx.Module("metrics",
	fx.Provide(NewMetrics),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, m *Metrics, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("metrics server listening", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("metrics server failed", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return m.Server.Shutdown(ctx)
		},
	})
}
