package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylelens/stylelens/internal/adapterr"
	"github.com/stylelens/stylelens/internal/logger"
)

type noopLogger struct{}

func (noopLogger) Debug(string, error, ...map[string]interface{}) {}
func (noopLogger) Info(string, error, ...map[string]interface{})  {}
func (noopLogger) Warn(string, error, ...map[string]interface{})  {}
func (noopLogger) Error(string, error, ...map[string]interface{}) {}

var _ logger.Logger = noopLogger{}

func newTestClient(t *testing.T, dim int, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.Dimension = dim

	c, err := NewClient(cfg, noopLogger{})
	require.NoError(t, err)
	return c
}

func TestEmbedImage(t *testing.T) {
	c := newTestClient(t, 3, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embed", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{0.1, 0.2, 0.3}})
	})

	vec, err := c.EmbedImage(context.Background(), []byte("crop"))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbedImageRejectsWrongDimension(t *testing.T) {
	c := newTestClient(t, 512, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{0.1, 0.2}})
	})

	_, err := c.EmbedImage(context.Background(), []byte("crop"))
	require.Error(t, err)
	assert.True(t, adapterr.IsPermanent(err))
}

func TestEmbedImageClassifiesRateLimitTransient(t *testing.T) {
	c := newTestClient(t, 3, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.EmbedImage(context.Background(), []byte("crop"))
	require.Error(t, err)
	assert.True(t, adapterr.IsTransient(err))
}
