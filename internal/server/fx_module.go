package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/stylelens/stylelens/internal/logger"
	"github.com/stylelens/stylelens/internal/objectstore"
	"github.com/stylelens/stylelens/internal/pipeline"
	"github.com/stylelens/stylelens/internal/queue"
	"github.com/stylelens/stylelens/internal/store"
)

// Module provides the HTTP API server, binds its collaborators, and ties the
// listener to the application lifecycle.
var Module = fx.Module("server",
	fx.Provide(
		func(s *store.Store) Store { return s },
		func(c *objectstore.Client) Uploader { return c },
		func(c *queue.Client) Publisher { return c },
		func(b *pipeline.Bridge) StatusReader { return b },
		func(b *pipeline.Bridge) ResultsReader { return b },
		func(r *pipeline.Refiner) Refinery { return r },

		NewServer,
	),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, s *Server, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", nil, map[string]interface{}{
					"address": s.cfg.Address,
				})
				if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server failed", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Shutdown(ctx)
		},
	})
}
