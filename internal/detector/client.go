// Package detector is the object-detection adapter: it sends an image to the
// vision inference service and returns the fashion items found in it, each
// with a category, a normalized bounding box, and a confidence score.
package detector

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stylelens/stylelens/internal/adapterr"
	"github.com/stylelens/stylelens/internal/imaging"
	"github.com/stylelens/stylelens/internal/logger"
)

// Detection is one fashion item found in an image.
type Detection struct {
	Category   string      `json:"category"`
	Box        imaging.Box `json:"bbox"`
	Confidence float64     `json:"confidence"`
}

// Client calls the detection inference endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cfg        Config
	log        logger.Logger
}

// NewClient validates the config and builds the HTTP client.
func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("detector: missing endpoint")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
		log:        log,
	}, nil
}

// Detect finds fashion items in the image. Detections below the configured
// confidence floor and detections with degenerate boxes are dropped here so
// the pipeline never fans out over garbage.
func (c *Client) Detect(ctx context.Context, imageBytes []byte) ([]Detection, error) {
	reqBody := map[string]any{
		"image": base64.StdEncoding.EncodeToString(imageBytes),
	}

	var parsed struct {
		Detections []Detection `json:"detections"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/v1/detect", reqBody, &parsed); err != nil {
		return nil, err
	}

	out := make([]Detection, 0, len(parsed.Detections))
	for _, d := range parsed.Detections {
		if d.Confidence < c.cfg.MinConfidence {
			continue
		}
		if !d.Box.Valid() {
			c.log.Warn("dropping detection with invalid bbox", nil, map[string]interface{}{
				"category": d.Category,
				"bbox":     d.Box,
			})
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// postJSON sends an HTTP POST, handles status codes, and decodes the
// response. Non-2xx statuses are classified for the retry loop: 4xx is
// permanent (the image will not get better), everything else transient.
func (c *Client) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return adapterr.Permanent("detector: encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return adapterr.Permanent("detector: build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return adapterr.Transient("detector: http", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return adapterr.Transient("detector: http", fmt.Errorf("http %d for %s", resp.StatusCode, url))
	}
	if resp.StatusCode >= 300 {
		return adapterr.Permanent("detector: http", fmt.Errorf("http %d for %s", resp.StatusCode, url))
	}

	c.log.Debug("detector call completed", nil, map[string]interface{}{
		"duration_ms": time.Since(started).Milliseconds(),
	})

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return adapterr.Transient("detector: decode response", err)
		}
	}
	return nil
}
