package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylelens/stylelens/internal/metrics"
)

type noopLogger struct{}

func (noopLogger) Debug(string, error, ...map[string]interface{}) {}
func (noopLogger) Info(string, error, ...map[string]interface{})  {}
func (noopLogger) Warn(string, error, ...map[string]interface{})  {}
func (noopLogger) Error(string, error, ...map[string]interface{}) {}

// testConfig keeps retries at one attempt so failure-path tests do not sit in
// backoff sleeps.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryAttempts = 1
	cfg.AnalysisTimeout = 5 * time.Second
	return cfg
}

func testMetrics() *metrics.Metrics {
	return metrics.NewMetrics(metrics.Config{ServiceName: "test"})
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestProgressOf(t *testing.T) {
	assert.Equal(t, 0, progressOf(0, 5))
	assert.Equal(t, 40, progressOf(2, 5))
	assert.Equal(t, 100, progressOf(5, 5))
	assert.Equal(t, 100, progressOf(7, 5), "overcount clamps to 100")
	assert.Equal(t, 100, progressOf(0, 0), "zero total means nothing left to do")
	assert.Equal(t, 0, progressOf(-1, 5))
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "pants", normalizeCategory("bottom"))
	assert.Equal(t, "outer", normalizeCategory("outerwear"))
	assert.Equal(t, "top", normalizeCategory("top"), "unmapped categories pass through")
	assert.Equal(t, "dress", normalizeCategory("dress"))
}
