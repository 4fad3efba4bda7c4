// Package embedding turns cropped item images into fixed-dimension vectors
// via the embedding inference service.
package embedding

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/stylelens/stylelens/internal/adapterr"
	"github.com/stylelens/stylelens/internal/logger"
)

// Client calls the embedding inference endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cfg        Config
	log        logger.Logger
}

// NewClient validates the config and builds the HTTP client.
func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("embedding: missing endpoint")
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("embedding: dimension must be positive, got %d", cfg.Dimension)
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

// EmbedImage embeds a single cropped image. The vector dimension is checked
// against the configured one so a misdeployed model surfaces here instead of
// as silent garbage in the vector index.
func (c *Client) EmbedImage(ctx context.Context, crop []byte) ([]float32, error) {
	reqBody := map[string]any{
		"image": base64.StdEncoding.EncodeToString(crop),
	}

	var parsed struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/v1/embed", reqBody, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Embedding) != c.cfg.Dimension {
		return nil, adapterr.Permanent("embedding: dimension",
			fmt.Errorf("expected %d dimensions, got %d", c.cfg.Dimension, len(parsed.Embedding)))
	}
	return parsed.Embedding, nil
}

func (c *Client) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return adapterr.Permanent("embedding: encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return adapterr.Permanent("embedding: build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return adapterr.Transient("embedding: http", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return adapterr.Transient("embedding: http", fmt.Errorf("http %d for %s", resp.StatusCode, url))
	}
	if resp.StatusCode >= 300 {
		return adapterr.Permanent("embedding: http", fmt.Errorf("http %d for %s", resp.StatusCode, url))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return adapterr.Transient("embedding: decode response", err)
		}
	}
	return nil
}
