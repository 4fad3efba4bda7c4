// Package config assembles the service configuration from an optional YAML
// file and STYLELENS_-prefixed environment variables, with environment taking
// precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

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

// Config is the root configuration for the service.
type Config struct {
	Logger      logger.Config      `yaml:"logger"`
	Metrics     metrics.Config     `yaml:"metrics"`
	Tracer      tracer.Config      `yaml:"tracer"`
	Server      server.Config      `yaml:"server"`
	Store       store.Config       `yaml:"store"`
	StatusCache statuscache.Config `yaml:"status_cache"`
	ObjectStore objectstore.Config `yaml:"object_store"`
	VectorIndex vectorindex.Config `yaml:"vector_index"`
	Detector    detector.Config    `yaml:"detector"`
	Embedding   embedding.Config   `yaml:"embedding"`
	LLM         llm.Config         `yaml:"llm"`
	Queue       queue.Config       `yaml:"queue"`
	Pipeline    pipeline.Config    `yaml:"pipeline"`
}

// Load reads the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("stylelens")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	// Sub-package configs carry yaml tags, so decode against those instead
	// of mapstructure's default tag.
	err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" })
	if err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	register := func(prefix string, defaults map[string]any) {
		for key, val := range defaults {
			v.SetDefault(prefix+"."+key, val)
		}
	}

	lg := logger.DefaultConfig()
	register("logger", map[string]any{"level": lg.Level, "service_name": lg.ServiceName})

	mt := metrics.DefaultConfig()
	register("metrics", map[string]any{
		"address":                   mt.Address,
		"enable_default_collectors": mt.EnableDefaultCollectors,
		"service_name":              mt.ServiceName,
	})

	tr := tracer.DefaultConfig()
	register("tracer", map[string]any{
		"service_name":  tr.ServiceName,
		"app_env":       tr.AppEnv,
		"enable_export": tr.EnableExport,
	})

	sv := server.DefaultConfig()
	register("server", map[string]any{
		"address":       sv.Address,
		"max_body_size": sv.MaxBodySize,
	})

	st := store.DefaultConfig()
	register("store", map[string]any{
		"host": st.Host, "port": st.Port, "user": st.User,
		"password": st.Password, "db_name": st.DBName, "ssl_mode": st.SSLMode,
	})

	sc := statuscache.DefaultConfig()
	register("status_cache", map[string]any{
		"host": sc.Host, "port": sc.Port, "password": sc.Password,
		"db": sc.DB, "ttl": sc.TTL,
	})

	ob := objectstore.DefaultConfig()
	register("object_store", map[string]any{
		"endpoint": ob.Endpoint, "access_key": ob.AccessKey, "secret_key": ob.SecretKey,
		"bucket": ob.Bucket, "use_ssl": ob.UseSSL,
	})

	vi := vectorindex.DefaultConfig()
	register("vector_index", map[string]any{
		"host": vi.Host, "port": vi.Port, "api_key": vi.APIKey,
		"collection": vi.Collection, "use_tls": vi.UseTLS,
	})

	dt := detector.DefaultConfig()
	register("detector", map[string]any{
		"endpoint": dt.Endpoint, "timeout": dt.Timeout, "min_confidence": dt.MinConfidence,
	})

	em := embedding.DefaultConfig()
	register("embedding", map[string]any{
		"endpoint": em.Endpoint, "timeout": em.Timeout, "dimension": em.Dimension,
	})

	lm := llm.DefaultConfig()
	register("llm", map[string]any{
		"model": lm.Model, "max_tokens": lm.MaxTokens,
		"temperature": lm.Temperature, "timeout": lm.Timeout,
	})

	qu := queue.DefaultConfig()
	register("queue", map[string]any{
		"host": qu.Host, "port": qu.Port, "user": qu.User, "password": qu.Password,
		"exchange": qu.Exchange, "queue": qu.Queue, "routing_key": qu.RoutingKey,
		"prefetch_count":       qu.PrefetchCount,
		"dead_letter_exchange": qu.DeadLetterExchange,
		"dead_letter_queue":    qu.DeadLetterQueue,
	})

	pl := pipeline.DefaultConfig()
	register("pipeline", map[string]any{
		"worker_concurrency": pl.WorkerConcurrency,
		"analysis_timeout":   pl.AnalysisTimeout,
		"search_limit":       pl.SearchLimit,
		"stage_one_size":     pl.StageOneSize,
		"final_size":         pl.FinalSize,
		"crop_padding":       pl.CropPadding,
		"use_hybrid_rerank":  pl.UseHybridRerank,
		"retry_attempts":     pl.RetryAttempts,
	})
}
