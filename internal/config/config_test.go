package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "localhost", cfg.Store.Host)
	assert.Equal(t, 5432, cfg.Store.Port)
	assert.Equal(t, 24*time.Hour, cfg.StatusCache.TTL)
	assert.Equal(t, 30, cfg.Pipeline.SearchLimit)
	assert.Equal(t, 15, cfg.Pipeline.StageOneSize)
	assert.Equal(t, 5, cfg.Pipeline.FinalSize)
	assert.True(t, cfg.Pipeline.UseHybridRerank)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  address: ":9090"
store:
  host: db.internal
  port: 6432
pipeline:
  worker_concurrency: 8
  use_hybrid_rerank: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "db.internal", cfg.Store.Host)
	assert.Equal(t, 6432, cfg.Store.Port)
	assert.Equal(t, 8, cfg.Pipeline.WorkerConcurrency)
	assert.False(t, cfg.Pipeline.UseHybridRerank)

	// Untouched sections keep their defaults.
	assert.Equal(t, "localhost", cfg.StatusCache.Host)
}

func TestLoadEnvironmentWins(t *testing.T) {
	path := writeConfigFile(t, `
server:
  address: ":9090"
`)
	t.Setenv("STYLELENS_SERVER_ADDRESS", ":7070")
	t.Setenv("STYLELENS_STORE_PASSWORD", "sekrit")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "sekrit", cfg.Store.Password)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
