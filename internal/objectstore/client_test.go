package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, cfg Config) *Client {
	t.Helper()
	c, err := NewClient(cfg, noopLogger{})
	require.NoError(t, err)
	return c
}

type noopLogger struct{}

func (noopLogger) Debug(string, error, ...map[string]interface{}) {}
func (noopLogger) Info(string, error, ...map[string]interface{})  {}
func (noopLogger) Warn(string, error, ...map[string]interface{})  {}
func (noopLogger) Error(string, error, ...map[string]interface{}) {}

func TestPublicURLWithBase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PublicBaseURL = "https://cdn.stylelens.io/"
	c := newTestClient(t, cfg)

	assert.Equal(t,
		"https://cdn.stylelens.io/stylelens/crops/a/0.jpg",
		c.publicURL("crops/a/0.jpg"))
}

func TestPublicURLFallsBackToEndpoint(t *testing.T) {
	cfg := DefaultConfig()
	c := newTestClient(t, cfg)

	assert.Equal(t,
		"http://localhost:9000/stylelens/crops/a/0.jpg",
		c.publicURL("crops/a/0.jpg"))
}

func TestKeyFromURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PublicBaseURL = "https://cdn.stylelens.io"
	c := newTestClient(t, cfg)

	assert.Equal(t, "crops/a/0.jpg",
		c.keyFromURL("https://cdn.stylelens.io/stylelens/crops/a/0.jpg"))

	// Bare keys pass through untouched.
	assert.Equal(t, "crops/a/0.jpg", c.keyFromURL("crops/a/0.jpg"))
}
