package config

import (
	"go.uber.org/fx"

	"github.com/stylelens/stylelens/internal/detector"
	"github.com/stylelens/stylelens/internal/embedding"
	"github.com/stylelens/stylelens/internal/llm"
	"github.com/stylelens/stylelens/internal/logger"
	"github.com/stylelens/stylelens/internal/metrics"
	"github.com/stylelens/stylelens/internal/objectstore"
	"github.com/stylelens/stylelens/internal/pipeline"
	"github.com/stylelens/stylelens/internal/queue"
	"github.com/stylelens/stylelens/internal/server"
	"github.com/stylelens/stylelens/internal/statuscache"
	"github.com/stylelens/stylelens/internal/store"
	"github.com/stylelens/stylelens/internal/tracer"
	"github.com/stylelens/stylelens/internal/vectorindex"
)

// Module loads the root config from the CONFIG_FILE path (optional) and
// fans its sections out as the per-package Config values the rest of the
// graph consumes.
func Module(path string) fx.Option {
	return fx.Module("config",
		fx.Provide(
			func() (*Config, error) { return Load(path) },
			func(c *Config) logger.Config { return c.Logger },
			func(c *Config) metrics.Config { return c.Metrics },
			func(c *Config) tracer.Config { return c.Tracer },
			func(c *Config) server.Config { return c.Server },
			func(c *Config) store.Config { return c.Store },
			func(c *Config) statuscache.Config { return c.StatusCache },
			func(c *Config) objectstore.Config { return c.ObjectStore },
			func(c *Config) vectorindex.Config { return c.VectorIndex },
			func(c *Config) detector.Config { return c.Detector },
			func(c *Config) embedding.Config { return c.Embedding },
			func(c *Config) llm.Config { return c.LLM },
			func(c *Config) queue.Config { return c.Queue },
			func(c *Config) pipeline.Config { return c.Pipeline },
		),
	)
}
