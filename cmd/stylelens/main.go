// Command stylelens runs the fashion analysis service: the HTTP API, the
// queue consumer, and the metrics endpoint, all in one process.
package main

import (
	"flag"
	"os"

	"go.uber.org/fx"

	"github.com/stylelens/stylelens/internal/config"
	"github.com/stylelens/stylelens/internal/consumer"
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

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to the YAML configuration file")
	flag.Parse()

	fx.New(
		config.Module(*configPath),
		logger.Module,
		metrics.Module,
		tracer.Module,

		store.Module,
		statuscache.Module,
		objectstore.Module,
		vectorindex.Module,

		detector.Module,
		embedding.Module,
		llm.Module,
		queue.Module,

		pipeline.Module,
		server.Module,
		consumer.Module,
	).Run()
}
